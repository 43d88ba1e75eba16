package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	List(ctx context.Context, category string) error
	Approved(ctx context.Context) error
	Pending(ctx context.Context) error
	Show(ctx context.Context, id string) error
	Edit(ctx context.Context, id string) error
	Feature(ctx context.Context, id string, on bool) error
	Delete(ctx context.Context, id string) error
	Create(ctx context.Context) error
	Refresh(ctx context.Context) error
}

// runREPL starts a simple read–eval–print loop for the newsdesk CLI.
//
// It reads a line from the provided scanner, parses the first token as the
// command, and dispatches to methods on 'a'. Unknown commands are reported
// back to the user. The loop exits on scanner EOF or when the user types
// "exit" or "quit".
//
// Prompt & Commands
//
// The prompt shows the current status (from statusFn) and accepts commands:
//
//	Always:
//	  - help               — show available commands
//	  - login              — paste and save an auth token
//	  - list <category>    — list public items in a category
//	  - show <id>          — show a single item
//	  - exit | quit        — leave the program
//
//	Logged in:
//	  - approved           — list own approved items
//	  - pending            — list own pending items
//	  - edit <id>          — edit an item (kept locally if the backend is down)
//	  - feature <id>       — mark an item as featured
//	  - unfeature <id>     — clear the featured mark
//	  - delete <id>        — delete an item
//	  - create             — submit a new item
//	  - refresh            — re-pull both personal lists
//	  - logout             — discard the saved token
//
// Any errors returned by command handlers are ignored here; handlers should
// log their own errors. This keeps the REPL loop resilient and focused on I/O.
//
// The loop reads from the same buffered reader the command handlers prompt
// on, so a pasted block of lines is consumed in order instead of being split
// between two competing buffers.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		printlnFn(fmt.Sprintf("nd> %s > ", statusFn()))
		line, err := reader.ReadString('\n')
		if err != nil && line == "" {
			return
		}
		eof := err != nil
		parts := strings.Fields(line)
		if len(parts) == 0 {
			if eof {
				return
			}
			continue
		}
		cmd := parts[0]
		args := parts[1:]

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn("Available commands: list <category>, approved, pending, show <id>, edit <id>, feature <id>, unfeature <id>, delete <id>, create, refresh, logout, exit")
			} else {
				printlnFn("Available commands: login, list <category>, show <id>, exit")
			}

		case "login":
			_ = a.Login(ctx)

		case "logout":
			_ = a.Logout(ctx)

		case "l", "list":
			if len(args) == 0 {
				printlnFn("Usage: list <category>")
				continue
			}
			_ = a.List(ctx, args[0])

		case "approved":
			_ = a.Approved(ctx)

		case "pending":
			_ = a.Pending(ctx)

		case "show":
			if len(args) == 0 {
				printlnFn("Usage: show <id>")
				continue
			}
			_ = a.Show(ctx, args[0])

		case "edit":
			if len(args) == 0 {
				printlnFn("Usage: edit <id>")
				continue
			}
			_ = a.Edit(ctx, args[0])

		case "feature":
			if len(args) == 0 {
				printlnFn("Usage: feature <id>")
				continue
			}
			_ = a.Feature(ctx, args[0], true)

		case "unfeature":
			if len(args) == 0 {
				printlnFn("Usage: unfeature <id>")
				continue
			}
			_ = a.Feature(ctx, args[0], false)

		case "delete":
			if len(args) == 0 {
				printlnFn("Usage: delete <id>")
				continue
			}
			_ = a.Delete(ctx, args[0])

		case "create":
			_ = a.Create(ctx)

		case "refresh":
			_ = a.Refresh(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}

		if eof {
			return
		}
	}
}
