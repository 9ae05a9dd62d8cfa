package terminal

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"appdownloader/internal/api"
	"appdownloader/internal/controller"
	"appdownloader/internal/models"
	"appdownloader/internal/pkg/logger"
)

// ErrUnterminatedQuote is returned by SplitArgs for a line with an odd number of quotes.
var ErrUnterminatedQuote = errors.New("terminal: unterminated quote")

const helpText = `Commands:
  login <username> <password>      sign in
  signup <username> <password>     create an account
  show login|signup                switch between the two forms
  go home|apps|profile|points|tasks
  download <app id>                claim an app
  add "<name>" <url> "<category>" "<sub-category>" <points>
  upload <task id> [path]          attach a screenshot to a task
  logout
  help
  quit`

// Console is the shared line source and output of the shell and the picker.
type Console struct {
	scanner *bufio.Scanner
	out     io.Writer
}

// NewConsole reads lines from in and writes prompts to out.
func NewConsole(in io.Reader, out io.Writer) *Console {
	return &Console{scanner: bufio.NewScanner(in), out: out}
}

// Prompt writes prompt and returns the next line. io.EOF reports closed input.
func (console *Console) Prompt(prompt string) (string, error) {
	fmt.Fprint(console.out, prompt)
	if !console.scanner.Scan() {
		if err := console.scanner.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return console.scanner.Text(), nil
}

// Shell executes typed commands against a controller.
type Shell struct {
	ctrl    *controller.Controller
	console *Console
	log     *logger.Logger
}

// NewShell returns a Shell driving ctrl.
func NewShell(ctrl *controller.Controller, console *Console, l *logger.Logger) *Shell {
	return &Shell{ctrl: ctrl, console: console, log: l}
}

// Run reads and executes commands until quit, end of input or ctx is done.
func (shell *Shell) Run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		line, err := shell.console.Prompt("> ")
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
		if quit := shell.Execute(ctx, line); quit {
			return nil
		}
	}
}

// Execute runs one command line and reports whether the shell should exit.
func (shell *Shell) Execute(ctx context.Context, line string) bool {
	args, err := SplitArgs(line)
	if err != nil {
		shell.printf("%s\n", err)
		return false
	}
	if len(args) == 0 {
		return false
	}

	command, args := strings.ToLower(args[0]), args[1:]
	switch command {
	case "quit", "exit":
		return true
	case "help":
		shell.printf("%s\n", helpText)
	case "login":
		if len(args) != 2 {
			shell.usage("login <username> <password>")
			return false
		}
		shell.report(shell.ctrl.Login(ctx, args[0], args[1]))
	case "signup":
		if len(args) != 2 {
			shell.usage("signup <username> <password>")
			return false
		}
		shell.report(shell.ctrl.Signup(ctx, args[0], args[1]))
	case "show":
		shell.show(args)
	case "go":
		shell.navigate(ctx, args)
	case "download":
		id, ok := shell.intArg(args, "download <app id>")
		if !ok {
			return false
		}
		shell.report(shell.ctrl.DownloadApp(ctx, id))
	case "add":
		shell.addApp(ctx, args)
	case "upload":
		shell.upload(ctx, args)
	case "logout":
		shell.ctrl.Logout()
	default:
		shell.printf("unknown command %q, type help\n", command)
	}
	return false
}

func (shell *Shell) show(args []string) {
	if len(args) != 1 {
		shell.usage("show login|signup")
		return
	}
	switch strings.ToLower(args[0]) {
	case "login":
		shell.report(shell.ctrl.ShowLogin())
	case "signup":
		shell.report(shell.ctrl.ShowSignup())
	default:
		shell.usage("show login|signup")
	}
}

var viewAliases = map[string]controller.View{
	"apps":    controller.ViewAppList,
	"catalog": controller.ViewUserHome,
}

func (shell *Shell) navigate(ctx context.Context, args []string) {
	if len(args) != 1 {
		shell.usage("go home|apps|profile|points|tasks")
		return
	}
	name := strings.ToLower(args[0])
	if name == "home" {
		shell.report(shell.ctrl.Home(ctx))
		return
	}
	view, ok := viewAliases[name]
	if !ok {
		var err error
		if view, err = controller.ParseView(name); err != nil {
			shell.printf("%s\n", err)
			return
		}
	}
	shell.report(shell.ctrl.Navigate(ctx, view))
}

func (shell *Shell) addApp(ctx context.Context, args []string) {
	const usage = `add "<name>" <url> "<category>" "<sub-category>" <points>`
	if len(args) != 5 {
		shell.usage(usage)
		return
	}
	points, err := strconv.Atoi(args[4])
	if err != nil {
		shell.usage(usage)
		return
	}
	shell.report(shell.ctrl.AddApp(ctx, models.AddAppRequest{
		Name:        args[0],
		URL:         args[1],
		Category:    args[2],
		SubCategory: args[3],
		Points:      points,
	}))
}

func (shell *Shell) upload(ctx context.Context, args []string) {
	const usage = "upload <task id> [path]"
	if len(args) < 1 || len(args) > 2 {
		shell.usage(usage)
		return
	}
	taskID, ok := shell.intArg(args[:1], usage)
	if !ok {
		return
	}
	if len(args) == 1 {
		shell.report(shell.ctrl.PromptScreenshot(ctx, taskID))
		return
	}

	file, err := os.Open(args[1])
	if err != nil {
		shell.printf("cannot open %s: %s\n", args[1], err)
		return
	}
	defer file.Close()
	shell.report(shell.ctrl.UploadScreenshot(ctx, taskID, api.File{Name: filepath.Base(args[1]), Content: file}))
}

func (shell *Shell) intArg(args []string, usage string) (int, bool) {
	if len(args) != 1 {
		shell.usage(usage)
		return 0, false
	}
	n, err := strconv.Atoi(args[0])
	if err != nil {
		shell.usage(usage)
		return 0, false
	}
	return n, true
}

// report logs controller errors. The controller has already told the user what went wrong,
// except for programming errors such as a refused navigation.
func (shell *Shell) report(err error) {
	if err == nil {
		return
	}
	shell.log.Sugar().Debugf("Command failed: %s", err)
	switch {
	case errors.Is(err, controller.ErrNotAuthenticated):
		shell.printf("Please login first.\n")
	case errors.Is(err, controller.ErrAlreadyAuthenticated):
		shell.printf("Already logged in. Type logout first.\n")
	case errors.Is(err, controller.ErrViewNotAllowed), errors.Is(err, controller.ErrStaffOnly):
		shell.printf("Not available for your account.\n")
	case errors.Is(err, controller.ErrNoPicker):
		shell.printf("Give a path: upload <task id> <path>\n")
	}
}

func (shell *Shell) usage(usage string) {
	shell.printf("usage: %s\n", usage)
}

func (shell *Shell) printf(format string, args ...any) {
	fmt.Fprintf(shell.console.out, format, args...)
}

// SplitArgs splits a command line on spaces, keeping double-quoted runs together.
func SplitArgs(line string) ([]string, error) {
	var args []string
	var current strings.Builder
	inQuotes, inArg := false, false
	for _, r := range line {
		switch {
		case r == '"':
			inQuotes = !inQuotes
			inArg = true
		case (r == ' ' || r == '\t') && !inQuotes:
			if inArg {
				args = append(args, current.String())
				current.Reset()
				inArg = false
			}
		default:
			current.WriteRune(r)
			inArg = true
		}
	}
	if inQuotes {
		return nil, ErrUnterminatedQuote
	}
	if inArg {
		args = append(args, current.String())
	}
	return args, nil
}
