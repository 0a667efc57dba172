package main

import (
	"context"
	"io"
	"os"
	"os/signal"
	"time"

	"github.com/alecthomas/kong"
	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog/log"

	"github.com/wolfeidau/coursekit/cmd/cli/internal/commands"
	"github.com/wolfeidau/coursekit/internal/logger"
	"github.com/wolfeidau/coursekit/internal/telemetry"
)

var (
	version = "dev"
	cli     struct {
		Login           commands.LoginCmd           `cmd:"" help:"Log in and store the session"`
		Register        commands.RegisterCmd        `cmd:"" help:"Create an account and log in"`
		Logout          commands.LogoutCmd          `cmd:"" help:"Forget the stored session"`
		Whoami          commands.WhoamiCmd          `cmd:"" help:"Show the logged in user"`
		Courses         commands.CoursesCmd         `cmd:"" help:"Browse and author courses"`
		Contents        commands.ContentsCmd        `cmd:"" help:"Manage course lessons"`
		Enroll          commands.EnrollCmd          `cmd:"" help:"Enroll in a course"`
		Enrollments     commands.EnrollmentsCmd     `cmd:"" help:"List my enrollments"`
		Progress        commands.ProgressCmd        `cmd:"" help:"Show my progress"`
		StudentProgress commands.StudentProgressCmd `cmd:"" name:"student-progress" help:"Show student progress for a course"`
		Categories      commands.CategoriesCmd      `cmd:"" help:"List and create categories"`
		Browse          commands.BrowseCmd          `cmd:"" help:"Search courses interactively"`

		APIURL       string           `name:"api-url" help:"Course API base URL" default:"http://localhost:8000/api" env:"COURSEKIT_API_URL"`
		SessionDir   string           `help:"Directory holding the session file (default ~/.coursekit)" env:"COURSEKIT_SESSION_DIR"`
		SessionRedis string           `help:"Keep the session in redis at this URL instead of a file" env:"COURSEKIT_SESSION_REDIS"`
		SessionName  string           `help:"Session name within redis" default:"default"`
		Timeout      time.Duration    `help:"Per request timeout" default:"30s"`
		Otel         bool             `help:"Export traces and metrics over OTLP."`
		Debug        bool             `help:"Enable debug mode."`
		Version      kong.VersionFlag `help:"Print version."`
	}
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	cmd := kong.Parse(&cli,
		kong.Name("coursekit"),
		kong.Description("Command line client for the course learning platform."),
		kong.Vars{
			"version": version,
		},
		kong.BindTo(ctx, (*context.Context)(nil)))

	log.Logger = logger.Setup(cli.Debug)

	if cli.Otel {
		shutdown, err := telemetry.InitTelemetry(ctx, "coursekit", version)
		if err != nil {
			log.Warn().Err(err).Msg("Failed to initialize telemetry, continuing without it")
			shutdown = func(ctx context.Context) error { return nil }
		}
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := shutdown(shutdownCtx); err != nil {
				log.Error().Err(err).Msg("Failed to shutdown telemetry")
			}
		}()
	}

	// Piped input supplies secrets, a terminal gets an interactive prompt.
	var stdin io.Reader
	if !isatty.IsTerminal(os.Stdin.Fd()) {
		stdin = os.Stdin
	}

	err := cmd.Run(&commands.Globals{
		Debug:      cli.Debug,
		Version:    version,
		APIURL:     cli.APIURL,
		SessionDir: cli.SessionDir,
		Timeout:    cli.Timeout,

		SessionRedisURL: cli.SessionRedis,
		SessionName:     cli.SessionName,
		Stdin:           stdin,
	})
	cmd.FatalIfErrorf(err)
}
