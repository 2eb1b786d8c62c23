package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"

	"github.com/prasetyowira/qrstudio/constant"
	"github.com/prasetyowira/qrstudio/domain/studio"
	"github.com/prasetyowira/qrstudio/infrastructure/logger"
)

const (
	prompt     = "qr> "
	savePrompt = "Save as (.png or .svg): "
)

const helpText = `Type text to set the input, then:
  :g, generate          encode the input and show a preview
  :s [PATH], save       save the last QR code (asks for a path if omitted)
  :c, clear             clear input and preview
  :p, preview           show the last preview again
  :set OPTION VALUE     ec (L|M|Q|H), box (2-40), border (1-16), fill (colour), bg (white|transparent)
  :h, help              show this help
  :q, quit              leave
`

var errQuit = errors.New("quit")

// Shell is a line-oriented front-end for a Studio. It implements studio.UI.
type Shell struct {
	in     *bufio.Scanner
	out    io.Writer
	studio *studio.Studio

	// pendingPath answers the next AskSavePath without prompting.
	pendingPath string
}

// NewShell creates a shell reading commands from in and writing to out.
func NewShell(in io.Reader, out io.Writer) *Shell {
	return &Shell{
		in:  bufio.NewScanner(in),
		out: out,
	}
}

// Attach binds the shell to the studio it drives.
func (s *Shell) Attach(st *studio.Studio) {
	s.studio = st
}

// QueueSavePath makes the next save prompt answer path.
func (s *Shell) QueueSavePath(path string) {
	s.pendingPath = path
}

func (s *Shell) Warn(title, message string)  { s.notice("!", title, message) }
func (s *Shell) Info(title, message string)  { s.notice("i", title, message) }
func (s *Shell) Error(title, message string) { s.notice("x", title, message) }

func (s *Shell) notice(mark, title, message string) {
	fmt.Fprintf(s.out, "[%s] %s: %s\n", mark, title, strings.ReplaceAll(message, "\n", " "))
}

// AskSavePath returns a queued path or reads one line from the input.
// End of input counts as cancelling.
func (s *Shell) AskSavePath(ctx context.Context) (string, error) {
	if s.pendingPath != "" {
		path := s.pendingPath
		s.pendingPath = ""
		return path, nil
	}

	fmt.Fprint(s.out, savePrompt)
	if !s.in.Scan() {
		fmt.Fprintln(s.out)
		return "", s.in.Err()
	}
	return strings.TrimSpace(s.in.Text()), nil
}

// Banner writes the studio title line.
func (s *Shell) Banner(title string, width, height int) {
	fmt.Fprintf(s.out, "%s (%dx%d). Type :h for help.\n", title, width, height)
}

// Run reads commands until end of input, :q or ctx is done.
func (s *Shell) Run(ctx context.Context) error {
	if s.studio == nil {
		return errors.New("shell is not attached to a studio")
	}

	for {
		if err := ctx.Err(); err != nil {
			return nil
		}

		fmt.Fprint(s.out, prompt)
		if !s.in.Scan() {
			fmt.Fprintln(s.out)
			if ctx.Err() != nil {
				return nil
			}
			return s.in.Err()
		}

		if err := s.Execute(ctx, s.in.Text()); err != nil {
			if errors.Is(err, errQuit) {
				return nil
			}
			logger.CtxDebug(ctx, constant.MsgCommandFailed, logger.LoggerInfo{
				ContextFunction: constant.CtxShell,
				Error: &logger.CustomError{
					Code:    constant.ErrCodeAppCommand,
					Message: err.Error(),
					Type:    constant.ErrTypeApp,
				},
			})
		}
	}
}

// Execute runs a single shell line. Lines that are not commands replace the input text.
func (s *Shell) Execute(ctx context.Context, line string) error {
	trimmed := strings.TrimSpace(line)
	verb, rest, _ := strings.Cut(trimmed, " ")
	rest = strings.TrimSpace(rest)

	// Bare words are commands only on their own; ":" commands take arguments
	if !strings.HasPrefix(verb, ":") && rest != "" {
		s.studio.SetInput(line)
		return nil
	}

	switch verb {
	case ":g", "generate":
		if err := s.studio.Generate(ctx); err != nil {
			return err
		}
		s.printPreview()
		return nil
	case ":s", "save":
		if rest != "" {
			s.QueueSavePath(rest)
		}
		err := s.studio.Save(ctx)
		s.pendingPath = ""
		return err
	case ":c", "clear":
		err := s.studio.Clear(ctx)
		fmt.Fprintln(s.out, s.studio.Status())
		return err
	case ":p", "preview":
		s.printPreview()
		return nil
	case ":set":
		return s.set(rest)
	case ":h", "help":
		fmt.Fprint(s.out, helpText)
		return nil
	case ":q", "quit", "exit":
		return errQuit
	}

	if strings.HasPrefix(trimmed, ":") {
		err := fmt.Errorf("unknown command %q", verb)
		s.Warn("Unknown command", fmt.Sprintf("%s (type :h for help)", verb))
		return err
	}

	s.studio.SetInput(line)
	return nil
}

func (s *Shell) set(args string) error {
	option, value, _ := strings.Cut(args, " ")
	value = strings.TrimSpace(value)

	var err error
	switch strings.ToLower(option) {
	case "ec":
		err = s.studio.SetErrorLevel(value)
	case "box":
		err = withInt(value, s.studio.SetBoxSize)
	case "border":
		err = withInt(value, s.studio.SetBorder)
	case "fill":
		err = s.studio.SetFillColor(value)
	case "bg":
		err = s.studio.SetBackground(value)
	default:
		err = fmt.Errorf("unknown option %q", option)
	}

	if err != nil {
		s.Warn(constant.TitleInvalidOptions, err.Error())
		return err
	}
	fmt.Fprintln(s.out, s.studio.BuildSpec())
	return nil
}

func withInt(value string, set func(int) error) error {
	n, err := strconv.Atoi(value)
	if err != nil {
		return fmt.Errorf("%q is not a number", value)
	}
	return set(n)
}

func (s *Shell) printPreview() {
	fmt.Fprint(s.out, s.studio.TerminalPreview())
	fmt.Fprintln(s.out)
	fmt.Fprintln(s.out, s.studio.Status())
}

// ConsoleSubscriber prints bus messages to out, like a log pane.
func ConsoleSubscriber(out io.Writer) func(string) {
	var mu sync.Mutex
	return func(message string) {
		mu.Lock()
		defer mu.Unlock()
		fmt.Fprintf(out, "» %s\n", message)
	}
}
