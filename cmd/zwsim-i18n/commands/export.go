package commands

import (
	"encoding/csv"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/zwsim-project/zwsim-go/pkg/catalog"
)

// ExportOptions configures the export command.
type ExportOptions struct {
	Format string
	Output string
	Files  []string
}

// ExportRecord is one message row in the export output.
type ExportRecord struct {
	Locale       string   `json:"locale"`
	Key          string   `json:"key"`
	Text         string   `json:"text"`
	Placeholders []string `json:"placeholders,omitempty"`
}

// RunExport runs the export command.
func RunExport(args []string, stdout, stderr io.Writer) int {
	opts, err := parseExportArgs(args)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitCommandError
	}

	if len(opts.Files) == 0 {
		fmt.Fprintln(stderr, "Error: no files specified")
		printExportUsage(stderr)
		return exitCommandError
	}

	var records []ExportRecord
	for _, file := range opts.Files {
		c, err := catalog.Load(file)
		if err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return exitCommandError
		}
		for _, m := range c.Messages() {
			records = append(records, ExportRecord{
				Locale:       c.Locale,
				Key:          m.Key,
				Text:         m.Text,
				Placeholders: m.Placeholders,
			})
		}
	}

	out := stdout
	if opts.Output != "" {
		f, err := os.Create(opts.Output)
		if err != nil {
			fmt.Fprintf(stderr, "Error: failed to create output file: %v\n", err)
			return exitCommandError
		}
		defer f.Close()
		out = f
	}

	switch opts.Format {
	case "jsonl":
		err = exportJSONL(out, records)
	case "csv":
		err = exportCSV(out, records)
	default:
		fmt.Fprintf(stderr, "Error: unknown format %q (want jsonl or csv)\n", opts.Format)
		return exitCommandError
	}
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitCommandError
	}

	if opts.Output != "" {
		fmt.Fprintf(stdout, "Exported %d messages to %s\n", len(records), opts.Output)
	}
	return exitSuccess
}

func exportJSONL(w io.Writer, records []ExportRecord) error {
	enc := json.NewEncoder(w)
	for _, record := range records {
		if err := enc.Encode(record); err != nil {
			return fmt.Errorf("failed to encode record: %w", err)
		}
	}
	return nil
}

func exportCSV(w io.Writer, records []ExportRecord) error {
	cw := csv.NewWriter(w)

	if err := cw.Write([]string{"locale", "key", "text", "placeholders"}); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, record := range records {
		row := []string{
			record.Locale,
			record.Key,
			record.Text,
			strings.Join(record.Placeholders, " "),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}

func parseExportArgs(args []string) (ExportOptions, error) {
	fs := flag.NewFlagSet("export", flag.ContinueOnError)
	opts := ExportOptions{}

	fs.StringVar(&opts.Format, "format", "jsonl", "Output format: jsonl or csv")
	fs.StringVar(&opts.Output, "o", "", "Output file (default stdout)")
	fs.StringVar(&opts.Output, "output", "", "Output file (default stdout)")

	fs.Usage = func() {}

	if err := fs.Parse(args); err != nil {
		return opts, err
	}

	opts.Files = fs.Args()
	return opts, nil
}

func printExportUsage(w io.Writer) {
	fmt.Fprintln(w, `
Usage: zwsim-i18n export [options] <files...>

Options:
  --format <fmt>  Output format: jsonl or csv (default "jsonl")
  -o <path>       Write output to a file instead of stdout

Examples:
  zwsim-i18n export translations/en.json
  zwsim-i18n export --format csv -o messages.csv translations/*.json`)
}
