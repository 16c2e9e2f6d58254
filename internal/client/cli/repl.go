package cli

import (
	"bufio"
	"context"
	"fmt"
	"strconv"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	isAdmin() bool
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	Delete(ctx context.Context, username string) error
	Translate(ctx context.Context, reverse bool) error
	Speak(ctx context.Context) error
	Transcribe(ctx context.Context, path string) error
	History(ctx context.Context, limit int) error
	Clear(ctx context.Context) error
	Export(ctx context.Context) error
	Users(ctx context.Context) error
	Promote(ctx context.Context, username string) error
	All(ctx context.Context) error
	Reset(ctx context.Context, username string) error
}

const (
	helpLoggedOut = "Available commands: register, login, exit"
	helpLoggedIn  = "Available commands: translate, reverse, speak, transcribe <file>, history [n], clear, export, delete, logout, exit"
	helpAdmin     = "Admin commands: users, promote <user>, all, reset <user>, delete <user>"
)

// needsLogin lists the commands that only make sense with a session.
var needsLogin = map[string]bool{
	"translate": true, "reverse": true, "speak": true, "transcribe": true,
	"history": true, "clear": true, "export": true, "delete": true, "logout": true,
	"users": true, "promote": true, "all": true, "reset": true,
}

// runREPL starts a simple read-eval-print loop for the transkeeper CLI.
//
// It reads a line from reader, parses the first token as the command, and
// dispatches to methods on 'a'. Command prompts read from the same reader.
// Command errors are printed and the loop goes on. The loop exits on EOF or
// when the user types "exit" or "quit".
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		printlnFn(fmt.Sprintf("tk %s> ", statusFn()))
		line, rerr := reader.ReadString('\n')
		if rerr != nil && line == "" {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		if needsLogin[cmd] && !a.isLoggedIn() {
			printlnFn("Please login first")
			continue
		}

		var err error

		switch cmd {
		case "help":
			switch {
			case a.isAdmin():
				printlnFn(helpLoggedIn)
				printlnFn(helpAdmin)
			case a.isLoggedIn():
				printlnFn(helpLoggedIn)
			default:
				printlnFn(helpLoggedOut)
			}

		case "register":
			err = a.Register(ctx)

		case "login":
			err = a.Login(ctx)

		case "logout":
			err = a.Logout(ctx)

		case "delete":
			username := ""
			if len(args) > 0 {
				username = args[0]
			}
			err = a.Delete(ctx, username)

		case "translate", "t":
			err = a.Translate(ctx, false)

		case "reverse":
			err = a.Translate(ctx, true)

		case "speak":
			err = a.Speak(ctx)

		case "transcribe":
			if len(args) == 0 {
				printlnFn("Usage: transcribe <file>")
				continue
			}
			err = a.Transcribe(ctx, args[0])

		case "history", "h":
			limit := 0
			if len(args) > 0 {
				n, perr := strconv.Atoi(args[0])
				if perr != nil || n <= 0 {
					printlnFn("Usage: history [n]")
					continue
				}
				limit = n
			}
			err = a.History(ctx, limit)

		case "clear":
			err = a.Clear(ctx)

		case "export":
			err = a.Export(ctx)

		case "users":
			err = a.Users(ctx)

		case "promote":
			if len(args) == 0 {
				printlnFn("Usage: promote <user>")
				continue
			}
			err = a.Promote(ctx, args[0])

		case "all":
			err = a.All(ctx)

		case "reset":
			if len(args) == 0 {
				printlnFn("Usage: reset <user>")
				continue
			}
			err = a.Reset(ctx, args[0])

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}

		if err != nil {
			printlnFn("Error:", err)
		}
	}
}
