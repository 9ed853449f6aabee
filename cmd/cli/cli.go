package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/amirasaad/fxconvert/pkg/currency"
	"github.com/amirasaad/fxconvert/pkg/exchange/display"
	"github.com/amirasaad/fxconvert/pkg/exchange/service"
	"github.com/amirasaad/fxconvert/pkg/money"
	"github.com/fatih/color"
	"golang.org/x/term"
)

type palette struct {
	ok     *color.Color
	err    *color.Color
	muted  *color.Color
	prompt *color.Color
}

// newPalette colours output only when out is a terminal and NO_COLOR is unset.
func newPalette(out io.Writer) palette {
	enabled := isTerminal(out) && os.Getenv("NO_COLOR") == ""
	mk := func(attrs ...color.Attribute) *color.Color {
		c := color.New(attrs...)
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
		return c
	}
	return palette{
		ok:     mk(color.FgGreen, color.Bold),
		err:    mk(color.FgRed),
		muted:  mk(color.Faint),
		prompt: mk(color.FgCyan),
	}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

type cli struct {
	svc    *service.Service
	in     io.Reader
	out    io.Writer
	colors palette
}

// convertArgs runs one conversion from "<amount> [from] [to]".
func (c *cli) convertArgs(ctx context.Context, args []string) bool {
	amount := args[0]
	from, to := "", ""
	if len(args) > 1 {
		from = args[1]
	}
	if len(args) > 2 {
		to = args[2]
	}
	return c.convert(ctx, amount, from, to)
}

func (c *cli) convert(ctx context.Context, amount, from, to string) bool {
	result, err := c.svc.Convert(ctx, amount, codeOrDefault(from, currency.DefaultSource), codeOrDefault(to, currency.DefaultTarget))
	state := display.Render(result, err)
	c.print(state)
	return state.OK
}

func (c *cli) print(state display.State) {
	if !state.OK {
		c.colors.err.Fprintln(c.out, state.Error) //nolint:errcheck
		return
	}
	c.colors.ok.Fprintln(c.out, state.Result)     //nolint:errcheck
	c.colors.muted.Fprintln(c.out, state.Updated) //nolint:errcheck
}

// interactive prompts for conversions until input ends or the user quits.
func (c *cli) interactive(ctx context.Context) {
	scanner := bufio.NewScanner(c.in)
	ask := func(label string) (string, bool) {
		c.colors.prompt.Fprint(c.out, label) //nolint:errcheck
		if !scanner.Scan() {
			return "", false
		}
		return strings.TrimSpace(scanner.Text()), true
	}

	fmt.Fprintln(c.out, "Currency converter. Enter q to quit.") //nolint:errcheck
	for ctx.Err() == nil {
		amount, ok := ask("Amount: ")
		if !ok || isQuit(amount) {
			return
		}
		from, ok := ask(fmt.Sprintf("From [%s]: ", currency.DefaultSource))
		if !ok {
			return
		}
		to, ok := ask(fmt.Sprintf("To [%s]: ", currency.DefaultTarget))
		if !ok {
			return
		}
		c.convert(ctx, amount, from, to)
	}
}

func listCurrencies(w io.Writer, registry *currency.Registry, colors palette) {
	for _, meta := range registry.List() {
		colors.ok.Fprintf(w, "%s", meta.Code)                 //nolint:errcheck
		fmt.Fprintf(w, "  %-4s %s\n", meta.Symbol, meta.Name) //nolint:errcheck
	}
}

func codeOrDefault(s string, fallback money.Code) money.Code {
	s = strings.ToUpper(strings.TrimSpace(s))
	if s == "" {
		return fallback
	}
	return money.Code(s)
}

func isQuit(s string) bool {
	switch strings.ToLower(s) {
	case "q", "quit", "exit":
		return true
	}
	return false
}
