package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	drainAlert() string
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	List(ctx context.Context, args []string) error
	Show(ctx context.Context, args []string) error
	Add(ctx context.Context, args []string) error
	Edit(ctx context.Context, args []string) error
	Delete(ctx context.Context, args []string) error
	Restore(ctx context.Context, args []string) error
	Ref(ctx context.Context, args []string) error
	Theme(ctx context.Context, args []string) error
	Stats(ctx context.Context) error
}

const (
	helpLoggedOut = "Available commands: login, theme [dark|light], help, exit"
	helpLoggedIn  = "Available commands:\n" +
		"  list <entity> [page] [--deleted] [--force] [--sort=<column>] [--desc]\n" +
		"  show <entity> <id>\n" +
		"  add <entity>\n" +
		"  edit <entity> <id>\n" +
		"  delete <entity> <id> [--hard]\n" +
		"  restore <entity> <id>\n" +
		"  ref <list|add|edit|delete|restore> <type> [id] [--hard]\n" +
		"  theme [dark|light], stats, logout, help, exit"
)

// runREPL starts a simple read–eval–print loop for the console.
//
// It reads a line from reader, parses the first token as the command, and
// dispatches to methods on 'a' with the remaining tokens as arguments. Every
// command runs under a child context cancelled when it returns; afterwards
// the pending store alert, if any, is printed. The loop exits on EOF or when
// the user types "exit" or "quit".
//
// Commands other than help, login, theme and exit require a session.
//
// Errors returned by command handlers are printed and otherwise ignored so
// one failed command never ends the session.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		printlnFn(fmt.Sprintf("caseadmin %s> ", statusFn()))
		line, err := reader.ReadString('\n')
		if err != nil && (line == "" || !errors.Is(err, io.EOF)) {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		if cmd == "exit" || cmd == "quit" {
			printlnFn("Bye!")
			return
		}

		cctx, cancel := context.WithCancel(ctx)
		cerr := dispatchCommand(cctx, a, cmd, args)
		cancel()

		if cerr != nil {
			printlnFn("Error:", cerr)
		}
		if msg := a.drainAlert(); msg != "" {
			printlnFn(msg)
		}
		if err != nil {
			return
		}
	}
}

func dispatchCommand(ctx context.Context, a execIface, cmd string, args []string) error {
	switch cmd {
	case "help":
		if a.isLoggedIn() {
			printlnFn(helpLoggedIn)
		} else {
			printlnFn(helpLoggedOut)
		}
		return nil
	case "login":
		return a.Login(ctx)
	case "theme":
		return a.Theme(ctx, args)
	}

	switch cmd {
	case "logout", "l", "list", "show", "add", "edit", "delete", "restore", "ref", "stats":
		if !a.isLoggedIn() {
			printlnFn("Please login first")
			return nil
		}
	}

	switch cmd {
	case "logout":
		return a.Logout(ctx)
	case "l", "list":
		return a.List(ctx, args)
	case "show":
		return a.Show(ctx, args)
	case "add":
		return a.Add(ctx, args)
	case "edit":
		return a.Edit(ctx, args)
	case "delete":
		return a.Delete(ctx, args)
	case "restore":
		return a.Restore(ctx, args)
	case "ref":
		return a.Ref(ctx, args)
	case "stats":
		return a.Stats(ctx)
	default:
		printlnFn("Unknown command:", cmd)
	}
	return nil
}
