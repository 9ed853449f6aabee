package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/amirasaad/fxconvert/infra/initializer"
	"github.com/amirasaad/fxconvert/pkg/app"
	"github.com/amirasaad/fxconvert/pkg/config"
	"github.com/amirasaad/fxconvert/pkg/currency"
	"github.com/amirasaad/fxconvert/pkg/exchange/display"
	log "github.com/charmbracelet/log"
)

const usage = `Usage: cli [command] [arguments]
Commands:
  convert <amount> [from] [to]  convert an amount (defaults USD EUR)
  currencies                    list supported currencies
  help                          show this message
Without a command the converter runs interactively.`

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	colors := newPalette(stdout)

	cmd := ""
	if len(args) > 0 {
		cmd = args[0]
	}
	switch cmd {
	case "help", "-h", "--help":
		fmt.Fprintln(stdout, usage) //nolint:errcheck
		return 0
	case "", "convert", "currencies":
	default:
		colors.err.Fprintf(stderr, "Unknown command: %s\n", cmd) //nolint:errcheck
		fmt.Fprintln(stderr, usage)                              //nolint:errcheck
		return 2
	}

	cfg, err := config.Load(".env")
	if err != nil {
		colors.err.Fprintf(stderr, "failed to load configuration: %v\n", err) //nolint:errcheck
		return 1
	}
	if _, ok := os.LookupEnv("LOG_LEVEL"); !ok && cfg.Log != nil {
		cfg.Log.Level = int(log.WarnLevel)
	}

	if cmd == "currencies" {
		metaFile := ""
		if cfg.Currency != nil {
			metaFile = cfg.Currency.MetaFile
		}
		registry, err := currency.LoadRegistry(metaFile)
		if err != nil {
			colors.err.Fprintf(stderr, "failed to load currencies: %v\n", err) //nolint:errcheck
			return 1
		}
		listCurrencies(stdout, registry, colors)
		return 0
	}

	deps, err := initializer.InitializeDependencies(cfg, stderr)
	if err != nil {
		colors.err.Fprintln(stderr, display.Message(err)) //nolint:errcheck
		return 1
	}
	c := &cli{
		svc:    app.New(deps, cfg).ConversionService,
		in:     stdin,
		out:    stdout,
		colors: colors,
	}

	if cmd == "" {
		c.interactive(ctx)
		return 0
	}
	if len(args) < 2 {
		fmt.Fprintln(stderr, "Usage: convert <amount> [from] [to]") //nolint:errcheck
		return 2
	}
	if !c.convertArgs(ctx, args[1:]) {
		return 1
	}
	return 0
}
