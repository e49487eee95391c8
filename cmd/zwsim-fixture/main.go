// zwsim-fixture is a CLI tool for device fixture validation, linting,
// and conversion.
package main

import (
	"fmt"
	"os"

	"github.com/zwsim-project/zwsim-go/cmd/zwsim-fixture/commands"
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
	case "lint":
		exitCode = commands.RunLint(args, os.Stdout, os.Stderr)
	case "show":
		exitCode = commands.RunShow(args, os.Stdout, os.Stderr)
	case "convert":
		exitCode = commands.RunConvert(args, os.Stdout, os.Stderr)
	case "help", "-h", "--help":
		printUsage()
		exitCode = exitSuccess
	case "version", "-v", "--version":
		fmt.Println("zwsim-fixture version 0.1.0")
		exitCode = exitSuccess
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", cmd)
		printUsage()
		exitCode = exitCommandError
	}

	os.Exit(exitCode)
}

func printUsage() {
	fmt.Println(`zwsim-fixture - device fixture validation and conversion tool

Usage:
  zwsim-fixture <command> [options] [files...]

Commands:
  validate   Validate fixtures against the capability rules
  lint       Check fixtures for style and consistency issues
  show       Display fixture contents in various formats
  convert    Convert between fixture formats (JSON, YAML, CBOR)

Options:
  -h, --help     Show this help message
  -v, --version  Show version information

Examples:
  zwsim-fixture validate node52.json
  zwsim-fixture lint --verbose fixtures/*.json
  zwsim-fixture show --values node52.json
  zwsim-fixture convert node52.yaml -o node52.json

For command-specific help, run:
  zwsim-fixture <command> --help`)
}
