package commands

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"

	"github.com/zwsim-project/zwsim-go/pkg/catalog"
	"github.com/zwsim-project/zwsim-go/pkg/lint"
)

const (
	exitSuccess      = 0
	exitCommandError = 1
	exitValidation   = 2
)

// ValidateOptions configures the validate command.
type ValidateOptions struct {
	Strict  bool
	JSON    bool
	Verbose bool
	Files   []string
}

// RunValidate runs the validate command.
func RunValidate(args []string, stdout, stderr io.Writer) int {
	opts, err := parseValidateArgs(args)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitCommandError
	}

	if len(opts.Files) == 0 {
		fmt.Fprintln(stderr, "Error: no files specified")
		printValidateUsage(stderr)
		return exitCommandError
	}

	registry := catalog.NewDefaultRegistry()

	hasErrors := false
	results := make(map[string]*ValidationOutput)

	for _, file := range opts.Files {
		result := validateFile(file, registry, opts)
		results[file] = result

		if !result.Valid {
			hasErrors = true
		}

		if !opts.JSON {
			printValidationResult(stdout, file, result, opts.Verbose)
		}
	}

	if opts.JSON {
		output, _ := json.MarshalIndent(results, "", "  ")
		fmt.Fprintln(stdout, string(output))
	}

	if hasErrors {
		return exitValidation
	}
	return exitSuccess
}

// ValidationOutput represents the validation result for a file.
type ValidationOutput struct {
	Valid    bool          `json:"valid"`
	Locale   string        `json:"locale,omitempty"`
	Keys     int           `json:"keys,omitempty"`
	Errors   []IssueOutput `json:"errors,omitempty"`
	Warnings []IssueOutput `json:"warnings,omitempty"`
}

// IssueOutput represents a validation issue.
type IssueOutput struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Key     string `json:"key,omitempty"`
}

func validateFile(path string, registry *lint.Registry[*catalog.Catalog], opts ValidateOptions) *ValidationOutput {
	output := &ValidationOutput{Valid: true}

	c, err := catalog.Load(path)
	if err != nil {
		output.Valid = false
		output.Errors = append(output.Errors, IssueOutput{
			Code:    "PARSE",
			Message: err.Error(),
		})
		return output
	}

	output.Locale = c.Locale
	output.Keys = c.Len()

	minSeverity := lint.SeverityWarning
	if opts.Strict {
		minSeverity = lint.SeverityInfo
	}

	result := catalog.Validate(c, registry, minSeverity)
	output.Valid = result.Valid

	for _, e := range result.Errors {
		output.Errors = append(output.Errors, IssueOutput{Code: e.Code, Message: e.Message, Key: e.Key})
	}
	for _, w := range result.Warnings {
		output.Warnings = append(output.Warnings, IssueOutput{Code: w.Code, Message: w.Message, Key: w.Key})
	}

	return output
}

func printValidationResult(w io.Writer, file string, result *ValidationOutput, verbose bool) {
	if result.Valid && len(result.Errors) == 0 && len(result.Warnings) == 0 {
		fmt.Fprintf(w, "%s: OK (%d keys)\n", file, result.Keys)
		return
	}

	if result.Valid && len(result.Warnings) > 0 {
		fmt.Fprintf(w, "%s: OK (with %d warnings)\n", file, len(result.Warnings))
	} else if !result.Valid {
		fmt.Fprintf(w, "%s: FAILED (%d errors, %d warnings)\n", file, len(result.Errors), len(result.Warnings))
	}

	if verbose || !result.Valid {
		for _, e := range result.Errors {
			if e.Key != "" {
				fmt.Fprintf(w, "  ERROR [%s] %s: %s\n", e.Key, e.Code, e.Message)
			} else {
				fmt.Fprintf(w, "  ERROR %s: %s\n", e.Code, e.Message)
			}
		}
	}

	if verbose {
		for _, warn := range result.Warnings {
			if warn.Key != "" {
				fmt.Fprintf(w, "  WARNING [%s] %s: %s\n", warn.Key, warn.Code, warn.Message)
			} else {
				fmt.Fprintf(w, "  WARNING %s: %s\n", warn.Code, warn.Message)
			}
		}
	}
}

func parseValidateArgs(args []string) (ValidateOptions, error) {
	fs := flag.NewFlagSet("validate", flag.ContinueOnError)
	opts := ValidateOptions{}

	fs.BoolVar(&opts.Strict, "strict", false, "Enable strict validation mode")
	fs.BoolVar(&opts.JSON, "json", false, "Output results as JSON")
	fs.BoolVar(&opts.Verbose, "verbose", false, "Show all warnings")
	fs.BoolVar(&opts.Verbose, "v", false, "Show all warnings (shorthand)")

	fs.Usage = func() {}

	if err := fs.Parse(args); err != nil {
		return opts, err
	}

	opts.Files = fs.Args()
	return opts, nil
}

func printValidateUsage(w io.Writer) {
	fmt.Fprintln(w, `
Usage: zwsim-i18n validate [options] <files...>

Options:
  --strict     Enable strict validation (info rules included)
  --json       Output results as JSON
  -v, --verbose  Show all warnings

Examples:
  zwsim-i18n validate translations/en.json
  zwsim-i18n validate --strict --json translations/*.json`)
}
