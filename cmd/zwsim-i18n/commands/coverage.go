package commands

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"

	"github.com/zwsim-project/zwsim-go/pkg/catalog"
)

// CoverageOptions configures the coverage command.
type CoverageOptions struct {
	Dir     string
	Base    string
	JSON    bool
	Verbose bool
	Locales []string
}

// RunCoverage runs the coverage command.
func RunCoverage(args []string, stdout, stderr io.Writer) int {
	opts, err := parseCoverageArgs(args)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitCommandError
	}

	bundle, err := catalog.LoadBundle(opts.Dir, opts.Base)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitCommandError
	}

	locales := opts.Locales
	if len(locales) == 0 {
		for _, l := range bundle.Locales() {
			if l != opts.Base {
				locales = append(locales, l)
			}
		}
	}

	if len(locales) == 0 {
		fmt.Fprintf(stderr, "Error: no locales to report besides base %q\n", opts.Base)
		return exitCommandError
	}

	incomplete := false
	reports := make([]*CoverageOutput, 0, len(locales))

	for _, locale := range locales {
		cov, err := bundle.Coverage(locale)
		if err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return exitCommandError
		}

		report := coverageOutput(cov)
		reports = append(reports, report)

		if !cov.Complete() {
			incomplete = true
		}

		if !opts.JSON {
			printCoverage(stdout, cov, opts.Verbose)
		}
	}

	if opts.JSON {
		output, _ := json.MarshalIndent(reports, "", "  ")
		fmt.Fprintln(stdout, string(output))
	}

	if incomplete {
		return exitValidation
	}
	return exitSuccess
}

// CoverageOutput represents a locale's coverage report.
type CoverageOutput struct {
	Locale     string         `json:"locale"`
	Base       string         `json:"base"`
	Translated int            `json:"translated"`
	Total      int            `json:"total"`
	Percent    float64        `json:"percent"`
	Complete   bool           `json:"complete"`
	Missing    []string       `json:"missing,omitempty"`
	Extra      []string       `json:"extra,omitempty"`
	Mismatches []MismatchInfo `json:"placeholderMismatches,omitempty"`
}

// MismatchInfo describes a placeholder divergence from the base locale.
type MismatchInfo struct {
	Key  string   `json:"key"`
	Base []string `json:"base"`
	Got  []string `json:"got"`
}

func coverageOutput(cov *catalog.Coverage) *CoverageOutput {
	out := &CoverageOutput{
		Locale:     cov.Locale,
		Base:       cov.Base,
		Translated: cov.Translated,
		Total:      cov.Total,
		Percent:    cov.Percent(),
		Complete:   cov.Complete(),
		Missing:    cov.Missing,
		Extra:      cov.Extra,
	}
	for _, m := range cov.PlaceholderMismatches {
		out.Mismatches = append(out.Mismatches, MismatchInfo{Key: m.Key, Base: m.Base, Got: m.Got})
	}
	return out
}

func printCoverage(w io.Writer, cov *catalog.Coverage, verbose bool) {
	status := "complete"
	if !cov.Complete() {
		status = "incomplete"
	}
	fmt.Fprintf(w, "%s: %d/%d keys (%.1f%%) - %s\n",
		cov.Locale, cov.Translated, cov.Total, cov.Percent(), status)

	if verbose || !cov.Complete() {
		for _, key := range cov.Missing {
			fmt.Fprintf(w, "  missing   %s\n", key)
		}
		for _, key := range cov.Extra {
			fmt.Fprintf(w, "  extra     %s\n", key)
		}
		for _, m := range cov.PlaceholderMismatches {
			fmt.Fprintf(w, "  mismatch  %s: base placeholders %v, got %v\n", m.Key, m.Base, m.Got)
		}
	}
}

func parseCoverageArgs(args []string) (CoverageOptions, error) {
	fs := flag.NewFlagSet("coverage", flag.ContinueOnError)
	opts := CoverageOptions{}

	fs.StringVar(&opts.Dir, "dir", "translations", "Directory containing translation files")
	fs.StringVar(&opts.Base, "base", "en", "Base locale tag")
	fs.BoolVar(&opts.JSON, "json", false, "Output results as JSON")
	fs.BoolVar(&opts.Verbose, "verbose", false, "List missing and extra keys for complete locales too")
	fs.BoolVar(&opts.Verbose, "v", false, "List missing and extra keys (shorthand)")

	fs.Usage = func() {}

	if err := fs.Parse(args); err != nil {
		return opts, err
	}

	opts.Locales = fs.Args()
	return opts, nil
}
