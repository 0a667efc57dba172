package commands

import (
	"context"

	"github.com/wolfeidau/coursekit/internal/tui"
)

type BrowseCmd struct{}

func (c *BrowseCmd) Run(ctx context.Context, globals *Globals) error {
	clients, err := globals.clients()
	if err != nil {
		return err
	}

	return tui.Run(ctx, clients.API)
}
