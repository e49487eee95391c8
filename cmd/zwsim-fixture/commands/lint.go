package commands

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/zwsim-project/zwsim-go/pkg/fixture"
	"github.com/zwsim-project/zwsim-go/pkg/fixture/rules"
	"github.com/zwsim-project/zwsim-go/pkg/lint"
)

// LintOptions configures the lint command.
type LintOptions struct {
	JSON    bool
	Verbose bool
	Files   []string
}

// LintIssue represents a single lint issue.
type LintIssue struct {
	Code       string `json:"code"`
	Severity   string `json:"severity"`
	Message    string `json:"message"`
	Subject    string `json:"subject,omitempty"`
	Suggestion string `json:"suggestion,omitempty"`
}

// LintOutput represents the lint results for a file.
type LintOutput struct {
	File   string      `json:"file"`
	Issues []LintIssue `json:"issues"`
	Clean  bool        `json:"clean"`
}

// RunLint runs the lint command.
func RunLint(args []string, stdout, stderr io.Writer) int {
	opts, err := parseLintArgs(args)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitCommandError
	}

	if len(opts.Files) == 0 {
		fmt.Fprintln(stderr, "Error: no files specified")
		printLintUsage(stderr)
		return exitCommandError
	}

	results := make([]LintOutput, 0, len(opts.Files))
	hasIssues := false

	for _, file := range opts.Files {
		output := lintFile(file)
		results = append(results, output)

		if !output.Clean {
			hasIssues = true
		}

		if !opts.JSON {
			printLintResult(stdout, output, opts.Verbose)
		}
	}

	if opts.JSON {
		out, _ := json.MarshalIndent(results, "", "  ")
		fmt.Fprintln(stdout, string(out))
	}

	if hasIssues {
		return exitValidation
	}
	return exitSuccess
}

func lintFile(path string) LintOutput {
	output := LintOutput{File: path, Clean: true}

	n, err := fixture.Load(path)
	if err != nil {
		output.Clean = false
		output.Issues = append(output.Issues, LintIssue{
			Code:     "PARSE",
			Severity: "error",
			Message:  err.Error(),
		})
		return output
	}

	registry := rules.NewDefaultRegistry()
	for _, v := range registry.Run(n) {
		severity := "info"
		switch v.Severity {
		case lint.SeverityError:
			severity = "error"
			output.Clean = false
		case lint.SeverityWarning:
			severity = "warning"
		}

		subject := ""
		if len(v.Subjects) > 0 {
			subject = v.Subjects[0]
		}

		output.Issues = append(output.Issues, LintIssue{
			Code:       v.RuleID,
			Severity:   severity,
			Message:    v.Message,
			Subject:    subject,
			Suggestion: v.Suggestion,
		})
	}

	// Additional lint checks (beyond validation rules)

	if n.Name == "" {
		output.Issues = append(output.Issues, LintIssue{
			Code:       "LINT-NAME",
			Severity:   "suggestion",
			Message:    "Node has no name",
			Suggestion: "Set \"name\" so logs and discovery show something readable",
		})
	}

	if n.DeviceClass == nil {
		output.Issues = append(output.Issues, LintIssue{
			Code:       "LINT-DEVICECLASS",
			Severity:   "suggestion",
			Message:    "Node has no device class",
			Suggestion: "Add \"deviceClass\" with basic/generic/specific entries",
		})
	}

	if n.FirmwareVersion == "" {
		output.Issues = append(output.Issues, LintIssue{
			Code:       "LINT-FIRMWARE",
			Severity:   "suggestion",
			Message:    "Node has no firmware version",
			Suggestion: "Set \"firmwareVersion\" (e.g. \"1.0\")",
		})
	}

	// Sort issues by severity, then by subject
	sort.Slice(output.Issues, func(i, j int) bool {
		if output.Issues[i].Severity != output.Issues[j].Severity {
			return severityOrder(output.Issues[i].Severity) < severityOrder(output.Issues[j].Severity)
		}
		return output.Issues[i].Subject < output.Issues[j].Subject
	})

	return output
}

func severityOrder(s string) int {
	switch s {
	case "error":
		return 0
	case "warning":
		return 1
	case "info":
		return 2
	case "suggestion":
		return 3
	default:
		return 4
	}
}

func printLintResult(w io.Writer, output LintOutput, verbose bool) {
	if output.Clean && len(output.Issues) == 0 {
		fmt.Fprintf(w, "%s: clean\n", output.File)
		return
	}

	errors := 0
	warnings := 0
	suggestions := 0
	for _, issue := range output.Issues {
		switch issue.Severity {
		case "error":
			errors++
		case "warning":
			warnings++
		default:
			suggestions++
		}
	}

	var parts []string
	if errors > 0 {
		parts = append(parts, fmt.Sprintf("%d errors", errors))
	}
	if warnings > 0 {
		parts = append(parts, fmt.Sprintf("%d warnings", warnings))
	}
	if suggestions > 0 {
		parts = append(parts, fmt.Sprintf("%d suggestions", suggestions))
	}

	fmt.Fprintf(w, "%s: %s\n", output.File, strings.Join(parts, ", "))

	for _, issue := range output.Issues {
		if !verbose && (issue.Severity == "suggestion" || issue.Severity == "info") {
			continue
		}

		prefix := strings.ToUpper(issue.Severity)
		if issue.Subject != "" {
			fmt.Fprintf(w, "  %s [%s] %s: %s\n", prefix, issue.Subject, issue.Code, issue.Message)
		} else {
			fmt.Fprintf(w, "  %s %s: %s\n", prefix, issue.Code, issue.Message)
		}
		if verbose && issue.Suggestion != "" {
			fmt.Fprintf(w, "    -> %s\n", issue.Suggestion)
		}
	}
}

func parseLintArgs(args []string) (LintOptions, error) {
	fs := flag.NewFlagSet("lint", flag.ContinueOnError)
	opts := LintOptions{}

	fs.BoolVar(&opts.JSON, "json", false, "Output results as JSON")
	fs.BoolVar(&opts.Verbose, "verbose", false, "Show all issues including suggestions")
	fs.BoolVar(&opts.Verbose, "v", false, "Show all issues (shorthand)")

	fs.Usage = func() {}

	if err := fs.Parse(args); err != nil {
		return opts, err
	}

	opts.Files = fs.Args()
	return opts, nil
}

func printLintUsage(w io.Writer) {
	fmt.Fprintln(w, `
Usage: zwsim-fixture lint [options] <files...>

Options:
  --json       Output results as JSON
  -v, --verbose  Show all issues including suggestions

Examples:
  zwsim-fixture lint node52.json
  zwsim-fixture lint --verbose fixtures/*.yaml`)
}
