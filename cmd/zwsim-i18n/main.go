// zwsim-i18n is a CLI tool for translation table validation, coverage
// reporting, and export.
package main

import (
	"fmt"
	"os"

	"github.com/zwsim-project/zwsim-go/cmd/zwsim-i18n/commands"
)

const (
	exitSuccess      = 0
	exitCommandError = 1
	exitValidation   = 2
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(exitCommandError)
	}

	cmd := os.Args[1]
	args := os.Args[2:]

	var exitCode int
	switch cmd {
	case "validate":
		exitCode = commands.RunValidate(args, os.Stdout, os.Stderr)
	case "coverage":
		exitCode = commands.RunCoverage(args, os.Stdout, os.Stderr)
	case "render":
		exitCode = commands.RunRender(args, os.Stdout, os.Stderr)
	case "export":
		exitCode = commands.RunExport(args, os.Stdout, os.Stderr)
	case "help", "-h", "--help":
		printUsage()
		exitCode = exitSuccess
	case "version", "-v", "--version":
		fmt.Println("zwsim-i18n version 0.1.0")
		exitCode = exitSuccess
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", cmd)
		printUsage()
		exitCode = exitCommandError
	}

	os.Exit(exitCode)
}

func printUsage() {
	fmt.Println(`zwsim-i18n - translation table validation and coverage tool

Usage:
  zwsim-i18n <command> [options] [files...]

Commands:
  validate   Validate translation files (duplicate keys, placeholders, schema)
  coverage   Report locale coverage against the base locale
  render     Resolve a key with placeholder substitution
  export     Export translation entries as JSONL or CSV

Options:
  -h, --help     Show this help message
  -v, --version  Show version information

Examples:
  zwsim-i18n validate translations/en.json
  zwsim-i18n coverage --dir translations de fr
  zwsim-i18n render --dir translations --locale de config.step.user.title host=hub.local
  zwsim-i18n export --format csv translations/en.json

For command-specific help, run:
  zwsim-i18n <command> --help`)
}
