package commands

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/zwsim-project/zwsim-go/pkg/commandclass"
	"github.com/zwsim-project/zwsim-go/pkg/fixture"
)

// ShowOptions configures the show command.
type ShowOptions struct {
	Format string // text, json, yaml
	Class  string // filter values by command class
	Values bool   // include values in text output
	File   string
}

// ShowOutput represents the fixture data for display.
type ShowOutput struct {
	File           string        `json:"file,omitempty" yaml:"file,omitempty"`
	NodeID         int           `json:"node_id" yaml:"node_id"`
	Name           string        `json:"name,omitempty" yaml:"name,omitempty"`
	Status         string        `json:"status" yaml:"status"`
	Ready          bool          `json:"ready" yaml:"ready"`
	Manufacturer   string        `json:"manufacturer" yaml:"manufacturer"`
	Product        string        `json:"product" yaml:"product"`
	Firmware       string        `json:"firmware,omitempty" yaml:"firmware,omitempty"`
	CommandClasses []ClassOutput `json:"command_classes" yaml:"command_classes"`
	Values         []ValueOutput `json:"values,omitempty" yaml:"values,omitempty"`
}

// ClassOutput represents one declared command class.
type ClassOutput struct {
	ID      string `json:"id" yaml:"id"`
	Name    string `json:"name" yaml:"name"`
	Version int    `json:"version" yaml:"version"`
	Secure  bool   `json:"secure,omitempty" yaml:"secure,omitempty"`
	Values  int    `json:"values" yaml:"values"`
}

// ValueOutput represents one value.
type ValueOutput struct {
	ID      string `json:"id" yaml:"id"`
	Label   string `json:"label,omitempty" yaml:"label,omitempty"`
	Type    string `json:"type" yaml:"type"`
	Access  string `json:"access" yaml:"access"`
	Unit    string `json:"unit,omitempty" yaml:"unit,omitempty"`
	Current any    `json:"current,omitempty" yaml:"current,omitempty"`
}

// RunShow runs the show command.
func RunShow(args []string, stdout, stderr io.Writer) int {
	opts, err := parseShowArgs(args)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitCommandError
	}

	if opts.File == "" {
		fmt.Fprintln(stderr, "Error: no file specified")
		printShowUsage(stderr)
		return exitCommandError
	}

	n, err := fixture.Load(opts.File)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitCommandError
	}

	output, err := buildShowOutput(n, opts)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitCommandError
	}
	output.File = opts.File

	switch opts.Format {
	case "json":
		data, _ := json.MarshalIndent(output, "", "  ")
		fmt.Fprintln(stdout, string(data))
	case "yaml":
		data, _ := yaml.Marshal(output)
		fmt.Fprint(stdout, string(data))
	default:
		printShowText(stdout, output, opts)
	}

	return exitSuccess
}

func buildShowOutput(n *fixture.Node, opts ShowOptions) (ShowOutput, error) {
	output := ShowOutput{
		NodeID:       n.NodeID,
		Name:         n.Name,
		Status:       n.Status.String(),
		Ready:        n.Ready,
		Manufacturer: fmt.Sprintf("0x%04x", n.ManufacturerID),
		Product:      fmt.Sprintf("0x%04x:0x%04x", n.ProductType, n.ProductID),
		Firmware:     n.FirmwareVersion,
	}

	var filter commandclass.ID
	if opts.Class != "" {
		cc, ok := commandclass.Resolve(opts.Class)
		if !ok {
			return output, fmt.Errorf("unknown command class %q", opts.Class)
		}
		filter = cc
	}

	for _, info := range n.CommandClasses {
		if filter != 0 && info.ID != filter {
			continue
		}
		output.CommandClasses = append(output.CommandClasses, ClassOutput{
			ID:      fmt.Sprintf("0x%02x", int(info.ID)),
			Name:    info.Name,
			Version: info.Version,
			Secure:  info.IsSecure,
			Values:  len(n.ValuesFor(info.ID)),
		})
	}
	sort.Slice(output.CommandClasses, func(i, j int) bool {
		return output.CommandClasses[i].ID < output.CommandClasses[j].ID
	})

	if opts.Values || opts.Format != "text" {
		for i := range n.Values {
			v := &n.Values[i]
			if filter != 0 && v.CommandClass != filter {
				continue
			}
			output.Values = append(output.Values, ValueOutput{
				ID:      v.ID().String(),
				Label:   v.Metadata.Label,
				Type:    v.Metadata.Type,
				Access:  accessString(v.Metadata),
				Unit:    v.Metadata.Unit,
				Current: v.Current,
			})
		}
	}

	return output, nil
}

func accessString(meta fixture.Metadata) string {
	var s string
	if meta.Readable {
		s += "R"
	}
	if meta.Writeable {
		s += "W"
	}
	if s == "" {
		return "-"
	}
	return s
}

func printShowText(w io.Writer, output ShowOutput, opts ShowOptions) {
	fmt.Fprintf(w, "File: %s\n", output.File)
	fmt.Fprintf(w, "Node: %d", output.NodeID)
	if output.Name != "" {
		fmt.Fprintf(w, " (%s)", output.Name)
	}
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Status: %s", output.Status)
	if output.Ready {
		fmt.Fprint(w, ", ready")
	}
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Manufacturer: %s\n", output.Manufacturer)
	fmt.Fprintf(w, "Product: %s\n", output.Product)
	if output.Firmware != "" {
		fmt.Fprintf(w, "Firmware: %s\n", output.Firmware)
	}

	fmt.Fprintln(w, "\nCommand classes:")
	for _, cc := range output.CommandClasses {
		secure := ""
		if cc.Secure {
			secure = ", secure"
		}
		fmt.Fprintf(w, "  %s %s (v%d%s): %d values\n", cc.ID, cc.Name, cc.Version, secure, cc.Values)
	}

	if opts.Values {
		fmt.Fprintln(w, "\nValues:")
		for _, v := range output.Values {
			label := ""
			if v.Label != "" {
				label = " " + v.Label
			}
			unit := ""
			if v.Unit != "" {
				unit = " " + v.Unit
			}
			fmt.Fprintf(w, "  %-36s [%s %s]%s = %v%s\n", v.ID, v.Access, v.Type, label, v.Current, unit)
		}
	}

	fmt.Fprintf(w, "\nTotal: %d command classes", len(output.CommandClasses))
	if opts.Values {
		fmt.Fprintf(w, ", %d values", len(output.Values))
	}
	fmt.Fprintln(w)
}

func parseShowArgs(args []string) (ShowOptions, error) {
	fs := flag.NewFlagSet("show", flag.ContinueOnError)
	opts := ShowOptions{}

	fs.StringVar(&opts.Format, "format", "text", "Output format (text, json, yaml)")
	fs.StringVar(&opts.Format, "f", "text", "Output format (shorthand)")
	fs.StringVar(&opts.Class, "class", "", "Filter by command class (name, decimal, or hex)")
	fs.BoolVar(&opts.Values, "values", false, "Include values in text output")

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

func printShowUsage(w io.Writer) {
	fmt.Fprintln(w, `
Usage: zwsim-fixture show [options] <file>

Options:
  -f, --format   Output format (text, json, yaml)
  --class        Filter by command class (name, decimal, or hex)
  --values       Include values in text output

Examples:
  zwsim-fixture show node52.json
  zwsim-fixture show --values --class "Binary Switch" node52.json
  zwsim-fixture show --format yaml node52.json`)
}
