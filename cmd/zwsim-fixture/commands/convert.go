package commands

import (
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/zwsim-project/zwsim-go/pkg/fixture"
)

// ConvertOptions configures the convert command.
type ConvertOptions struct {
	Output string
	Format string
	File   string
}

// RunConvert runs the convert command.
func RunConvert(args []string, stdout, stderr io.Writer) int {
	opts, err := parseConvertArgs(args)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitCommandError
	}

	if opts.File == "" {
		fmt.Fprintln(stderr, "Error: no input file specified")
		printConvertUsage(stderr)
		return exitCommandError
	}

	n, err := fixture.Load(opts.File)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitCommandError
	}

	format, err := targetFormat(opts)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitCommandError
	}

	data, err := fixture.Encode(n, format)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitCommandError
	}

	if opts.Output == "" || opts.Output == "-" {
		if _, err := stdout.Write(data); err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return exitCommandError
		}
		if format != fixture.FormatCBOR {
			fmt.Fprintln(stdout)
		}
		return exitSuccess
	}

	if err := os.WriteFile(opts.Output, data, 0644); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitCommandError
	}
	fmt.Fprintf(stdout, "Wrote %s (%s, %d bytes)\n", opts.Output, format, len(data))
	return exitSuccess
}

// targetFormat picks the output format: the explicit flag wins, then the
// output file extension, then JSON.
func targetFormat(opts ConvertOptions) (fixture.Format, error) {
	if opts.Format != "" {
		return fixture.ParseFormat(opts.Format)
	}

	if opts.Output != "" && opts.Output != "-" {
		ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(opts.Output)), ".")
		if ext != "" {
			return fixture.ParseFormat(ext)
		}
	}

	return fixture.FormatJSON, nil
}

func parseConvertArgs(args []string) (ConvertOptions, error) {
	fs := flag.NewFlagSet("convert", flag.ContinueOnError)
	opts := ConvertOptions{}

	fs.StringVar(&opts.Output, "o", "", "Output file (default: stdout)")
	fs.StringVar(&opts.Output, "output", "", "Output file (default: stdout)")
	fs.StringVar(&opts.Format, "format", "", "Output format (json, yaml, cbor)")
	fs.StringVar(&opts.Format, "f", "", "Output format (shorthand)")

	fs.Usage = func() {}

	if err := fs.Parse(args); err != nil {
		return opts, err
	}

	remaining := fs.Args()
	if len(remaining) > 0 {
		opts.File = remaining[0]
	}

	return opts, nil
}

func printConvertUsage(w io.Writer) {
	fmt.Fprintln(w, `
Usage: zwsim-fixture convert [options] <file>

Options:
  -o, --output   Output file (format inferred from extension; default stdout)
  -f, --format   Output format (json, yaml, cbor)

Examples:
  zwsim-fixture convert node52.yaml -o node52.json
  zwsim-fixture convert --format yaml node52.json
  zwsim-fixture convert node52.json -o node52.cbor`)
}
