package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/prasetyowira/qrstudio/config"
	"github.com/prasetyowira/qrstudio/constant"
	appLogger "github.com/prasetyowira/qrstudio/infrastructure/logger"
	"github.com/spf13/pflag"
)

const usage = `Usage: qrstudio [command] [flags]

Commands:
  shell              interactive studio (default)
  generate TEXT      encode TEXT, print a preview, -o PATH saves it
  serve              run the HTTP API
  history            list recent exports

Flags:
`

var commands = map[string]bool{
	"shell":    true,
	"generate": true,
	"serve":    true,
	"history":  true,
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// splitCommand separates the subcommand from its flags. No subcommand means shell.
func splitCommand(args []string) (string, []string) {
	if len(args) > 0 && !strings.HasPrefix(args[0], "-") && commands[args[0]] {
		return args[0], args[1:]
	}
	return "shell", args
}

func run(ctx context.Context, args []string, in io.Reader, out, errOut io.Writer) int {
	name, rest := splitCommand(args)

	fs := pflag.NewFlagSet("qrstudio "+name, pflag.ContinueOnError)
	fs.SetOutput(errOut)
	fs.Usage = func() {
		fmt.Fprint(errOut, usage)
		fs.PrintDefaults()
	}
	opts := registerFlags(fs, name)

	if err := fs.Parse(rest); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return 0
		}
		return 2
	}

	cfg, err := config.Init(opts.configPath, fs)
	if err != nil {
		fmt.Fprintf(errOut, "%s: %v\n", constant.MsgFailedToLoadConfig, err)
		return 1
	}

	appLogger.Initialize(cfg.Log.IsProduction())
	defer appLogger.Close()

	appLogger.Info(constant.MsgApplicationStarting, appLogger.LoggerInfo{
		ContextFunction: constant.CtxMain,
		Data: map[string]interface{}{
			constant.DataCommand:     name,
			constant.DataConfigFile:  cfg.File,
			constant.DataDBPath:      cfg.History.DBPath,
			constant.DataEnvironment: cfg.Log.Level,
		},
	})

	a := &app{cfg: cfg, in: in, out: out}

	switch name {
	case "generate":
		err = a.generate(ctx, strings.Join(fs.Args(), " "), opts.output)
	case "serve":
		err = a.serve(ctx)
	case "history":
		err = a.history(ctx, opts.limit)
	default:
		err = a.shell(ctx)
	}

	if err != nil {
		appLogger.Error(constant.MsgCommandFailed, appLogger.LoggerInfo{
			ContextFunction: constant.CtxMain,
			Error: &appLogger.CustomError{
				Code:    constant.ErrCodeAppCommand,
				Message: err.Error(),
				Type:    constant.ErrTypeApp,
			},
			Data: map[string]interface{}{
				constant.DataCommand: name,
			},
		})
		return 1
	}
	return 0
}

type flagValues struct {
	configPath string
	output     string
	limit      int
}

func registerFlags(fs *pflag.FlagSet, command string) *flagValues {
	v := &flagValues{}

	fs.StringVar(&v.configPath, "config", "", "config file (default ./qrstudio.yaml or $HOME/.qrstudio/qrstudio.yaml)")
	fs.String("log-level", "INFO", "INFO for JSON logs, anything else for development logs")

	switch command {
	case "history":
		fs.String("db", "", "export history database")
		fs.IntVarP(&v.limit, "limit", "n", 20, "number of exports to list")
		return v
	case "serve":
		fs.Int("port", 8080, "HTTP port")
	case "generate":
		fs.StringVarP(&v.output, "output", "o", "", "save to PATH (.png or .svg)")
	case "shell":
		fs.Int("preview-max", 360, "largest preview side in pixels")
	}

	fs.String("db", "", "export history database, empty to use the configured one")
	fs.Int("cache-size", 256, "rendered QR cache entries")
	fs.String("ec", "M", "error correction level: L, M, Q or H")
	fs.Int("box", 10, "pixels per module (2-40)")
	fs.Int("border", 4, "quiet zone in modules (1-16)")
	fs.String("fill", "black", "module colour, a name or #hex")
	fs.String("bg", "white", "background: white or transparent")
	return v
}
