package commands

import (
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/zwsim-project/zwsim-go/pkg/catalog"
)

// RenderOptions configures the render command.
type RenderOptions struct {
	Dir    string
	Base   string
	Locale string
	Key    string
	Vars   map[string]string
}

// RunRender runs the render command.
func RunRender(args []string, stdout, stderr io.Writer) int {
	opts, err := parseRenderArgs(args)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitCommandError
	}

	if opts.Key == "" {
		fmt.Fprintln(stderr, "Error: no key specified")
		printRenderUsage(stderr)
		return exitCommandError
	}

	bundle, err := catalog.LoadBundle(opts.Dir, opts.Base)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitCommandError
	}

	msg, ok := bundle.Lookup(opts.Locale, opts.Key)
	if !ok {
		fmt.Fprintf(stderr, "Error: key %q not found in locale %q or base %q\n",
			opts.Key, opts.Locale, opts.Base)
		return exitCommandError
	}

	fmt.Fprintln(stdout, catalog.Render(msg.Text, opts.Vars))
	return exitSuccess
}

func parseRenderArgs(args []string) (RenderOptions, error) {
	fs := flag.NewFlagSet("render", flag.ContinueOnError)
	opts := RenderOptions{Vars: make(map[string]string)}

	fs.StringVar(&opts.Dir, "dir", "translations", "Directory containing translation files")
	fs.StringVar(&opts.Base, "base", "en", "Base locale tag")
	fs.StringVar(&opts.Locale, "locale", "en", "Locale to render in")

	fs.Usage = func() {}

	if err := fs.Parse(args); err != nil {
		return opts, err
	}

	rest := fs.Args()
	if len(rest) == 0 {
		return opts, nil
	}
	opts.Key = rest[0]

	for _, arg := range rest[1:] {
		name, value, ok := strings.Cut(arg, "=")
		if !ok || name == "" {
			return opts, fmt.Errorf("invalid placeholder assignment %q (want name=value)", arg)
		}
		opts.Vars[name] = value
	}

	return opts, nil
}

func printRenderUsage(w io.Writer) {
	fmt.Fprintln(w, `
Usage: zwsim-i18n render [options] <key> [name=value...]

Options:
  --dir <path>      Directory containing translation files (default "translations")
  --base <locale>   Base locale used as fallback (default "en")
  --locale <locale> Locale to render in (default "en")

Examples:
  zwsim-i18n render --dir translations --locale de config.step.user.title host=hub.local`)
}
