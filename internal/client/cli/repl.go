package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// printlnFn is a test seam for REPL output.
var printlnFn = fmt.Println

// execIface is the command surface the REPL dispatches to. App satisfies it.
type execIface interface {
	isLoggedIn() bool
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	Add(ctx context.Context) error
	List(ctx context.Context) error
	Search(ctx context.Context, args []string) error
	Profile(ctx context.Context) error
	Show(ctx context.Context, args []string) error
	Edit(ctx context.Context, args []string) error
	Delete(ctx context.Context, args []string) error
}

// runREPL reads commands line by line from reader and dispatches them to a.
// Video commands require a session. Handler errors are reported by the
// handlers themselves, so the loop ignores them. It returns on EOF, "exit"
// or "quit".
//
//	Not logged in:  help, register, login, exit | quit
//	Logged in:      help, add, (l)ist, search [title|artist] [term],
//	                show <id>, edit <id>, delete <id>, whoami | profile,
//	                logout, exit | quit
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		printlnFn(fmt.Sprintf("mv %s> ", statusFn()))

		line, err := reader.ReadString('\n')
		if err != nil && (!errors.Is(err, io.EOF) || line == "") {
			return
		}

		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn("Available commands: add, (l)ist, search [title|artist] [term], show <id>, edit <id>, delete <id>, whoami, logout, exit")
			} else {
				printlnFn("Available commands: register, login, exit")
			}

		case "register":
			_ = a.Register(ctx)

		case "login":
			_ = a.Login(ctx)

		case "logout":
			if requireLogin(a) {
				_ = a.Logout(ctx)
			}

		case "add":
			if requireLogin(a) {
				_ = a.Add(ctx)
			}

		case "l", "list":
			if requireLogin(a) {
				_ = a.List(ctx)
			}

		case "search":
			if requireLogin(a) {
				_ = a.Search(ctx, args)
			}

		case "whoami", "profile":
			if requireLogin(a) {
				_ = a.Profile(ctx)
			}

		case "show":
			if requireLogin(a) {
				_ = a.Show(ctx, args)
			}

		case "edit":
			if requireLogin(a) {
				_ = a.Edit(ctx, args)
			}

		case "delete":
			if requireLogin(a) {
				_ = a.Delete(ctx, args)
			}

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}

func requireLogin(a execIface) bool {
	if a.isLoggedIn() {
		return true
	}
	printlnFn("Please log in first")
	return false
}
