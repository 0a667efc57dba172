package commands

import (
	"context"
	"fmt"

	"github.com/wolfeidau/coursekit/internal/lms"
)

type LoginCmd struct {
	Username string `arg:"" help:"Account username"`
	Password string `help:"Account password, read from stdin when empty" env:"COURSEKIT_PASSWORD"`
}

func (c *LoginCmd) Run(ctx context.Context, globals *Globals) error {
	password, err := globals.readSecret("Password", c.Password)
	if err != nil {
		return err
	}

	clients, err := globals.clients()
	if err != nil {
		return err
	}

	user, err := clients.API.Login(ctx, c.Username, password)
	if err != nil {
		return err
	}

	fmt.Fprintf(globals.out(), "Logged in as %s (%s)\n", user.Username, user.Role)
	return nil
}

type RegisterCmd struct {
	Username string `arg:"" help:"Account username"`
	Email    string `help:"Email address" required:""`
	Role     string `help:"Account role" enum:"student,lecturer" default:"student"`
	Password string `help:"Account password, read from stdin when empty" env:"COURSEKIT_PASSWORD"`
}

func (c *RegisterCmd) Run(ctx context.Context, globals *Globals) error {
	password, err := globals.readSecret("Password", c.Password)
	if err != nil {
		return err
	}

	clients, err := globals.clients()
	if err != nil {
		return err
	}

	user, err := clients.API.Register(ctx, lms.Registration{
		Username: c.Username,
		Email:    c.Email,
		Password: password,
		Role:     c.Role,
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(globals.out(), "Registered and logged in as %s (%s)\n", user.Username, user.Role)
	return nil
}

type LogoutCmd struct{}

func (c *LogoutCmd) Run(ctx context.Context, globals *Globals) error {
	clients, err := globals.clients()
	if err != nil {
		return err
	}

	if err := clients.API.Logout(); err != nil {
		return fmt.Errorf("failed to log out: %w", err)
	}

	fmt.Fprintln(globals.out(), "Logged out")
	return nil
}

type WhoamiCmd struct{}

func (c *WhoamiCmd) Run(ctx context.Context, globals *Globals) error {
	clients, err := globals.clients()
	if err != nil {
		return err
	}

	user, ok := clients.API.CurrentUser()
	if !ok {
		fmt.Fprintln(globals.out(), "Not logged in")
		return nil
	}

	fmt.Fprintf(globals.out(), "Username: %s\nRole:     %s\nUser ID:  %s\n", orDash(user.Username), user.Role, orDash(user.UserID))
	return nil
}
