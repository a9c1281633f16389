package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	List(ctx context.Context) error
	More(ctx context.Context) error
	Search(ctx context.Context, query string) error
	Find(ctx context.Context, query string) error
	Favorite(ctx context.Context, id int) error
	Unfavorite(ctx context.Context, id int) error
	Add(ctx context.Context) error
	Edit(ctx context.Context, id int) error
	Resume(ctx context.Context, id int) error
	Abandon(ctx context.Context, id int) error
	Delete(ctx context.Context, id int) error
}

const helpText = `Available commands:
  (l)ist             show favorites and loaded contacts
  more               load the next page of contacts
  search <text>      filter the loaded contacts by name
  find <text>        search contacts on the server
  fav <id>           add a contact to favorites
  unfav <id>         remove a contact from favorites
  add                create a contact
  edit <id>          edit a contact
  resume <id>        finish an edit that failed half way
  abandon <id>       revert an edit that failed half way
  delete <id>        delete a contact
  exit | quit        leave the program`

// runREPL starts a simple read–eval–print loop for the contactbook CLI.
//
// It reads a line from reader, parses the first token as the command, and
// dispatches to methods on 'a'. Unknown commands and malformed arguments are
// reported back to the user. The loop exits on EOF or when the user types
// "exit" or "quit".
//
// Any errors returned by command handlers are ignored here; handlers report
// their own errors. This keeps the REPL loop resilient and focused on I/O.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		printlnFn(fmt.Sprintf("cb %s> ", statusFn()))
		line, err := reader.ReadString('\n')
		if err != nil && (!errors.Is(err, io.EOF) || line == "") {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, rest := parts[0], strings.Join(parts[1:], " ")

		switch cmd {
		case "help":
			printlnFn(helpText)

		case "l", "list":
			_ = a.List(ctx)

		case "more":
			_ = a.More(ctx)

		case "search":
			_ = a.Search(ctx, rest)

		case "find":
			if rest == "" {
				printlnFn("Usage: find <text>")
				continue
			}
			_ = a.Find(ctx, rest)

		case "add":
			_ = a.Add(ctx)

		case "fav", "unfav", "edit", "resume", "abandon", "delete":
			id, err := strconv.Atoi(rest)
			if err != nil {
				printlnFn(fmt.Sprintf("Usage: %s <id>", cmd))
				continue
			}
			switch cmd {
			case "fav":
				_ = a.Favorite(ctx, id)
			case "unfav":
				_ = a.Unfavorite(ctx, id)
			case "edit":
				_ = a.Edit(ctx, id)
			case "resume":
				_ = a.Resume(ctx, id)
			case "abandon":
				_ = a.Abandon(ctx, id)
			case "delete":
				_ = a.Delete(ctx, id)
			}

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}
