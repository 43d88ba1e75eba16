package cli

import (
	"context"
	"log"
)

func (a *App) getStatus() string {
	if a.isLoggedIn() {
		return "(logged in)"
	}
	return "(anonymous)"
}

func (a *App) Root(ctx context.Context) {
	log.Println("Welcome to newsdesk CLI (type 'help' for commands)")
	runREPL(ctx, a, a.getStatus, a.reader)
}
