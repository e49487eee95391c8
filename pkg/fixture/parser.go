package fixture

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/zwsim-project/zwsim-go/pkg/commandclass"
)

// LoadError provides details about a fixture loading error.
type LoadError struct {
	// File is the path to the file that failed to load.
	File string

	// Message describes the error.
	Message string

	// Cause is the underlying error, if any.
	Cause error
}

func (e *LoadError) Error() string {
	if e.File != "" {
		return e.File + ": " + e.Message
	}
	return e.Message
}

func (e *LoadError) Unwrap() error {
	return e.Cause
}

// ParseJSON parses a node fixture from JSON bytes.
func ParseJSON(data []byte) (*Node, error) {
	var n Node
	if err := json.Unmarshal(data, &n); err != nil {
		return nil, &LoadError{
			Message: "failed to parse JSON",
			Cause:   err,
		}
	}
	return finishParse(&n)
}

// ParseYAML parses a node fixture from YAML bytes.
func ParseYAML(data []byte) (*Node, error) {
	var n Node
	if err := yaml.Unmarshal(data, &n); err != nil {
		return nil, &LoadError{
			Message: "failed to parse YAML",
			Cause:   err,
		}
	}
	return finishParse(&n)
}

// finishParse validates required fields, fills derived names, and builds
// the value index. Everything beyond required-field presence is left to
// the validator rules.
func finishParse(n *Node) (*Node, error) {
	if n.NodeID == 0 {
		return nil, &LoadError{
			Message: "fixture node id is required",
		}
	}

	if len(n.CommandClasses) == 0 {
		return nil, &LoadError{
			Message: "fixture must declare at least one command class",
		}
	}

	// Fill omitted display names from the command class registry.
	for i := range n.CommandClasses {
		if n.CommandClasses[i].Name == "" {
			n.CommandClasses[i].Name = commandclass.Name(n.CommandClasses[i].ID)
		}
	}
	for i := range n.Values {
		if n.Values[i].CommandClassName == "" {
			n.Values[i].CommandClassName = commandclass.Name(n.Values[i].CommandClass)
		}
	}

	n.reindex()
	return n, nil
}

// Load reads a fixture from a file. The format is chosen by extension:
// .json for JSON, .yaml/.yml for YAML, .cbor for CBOR.
func Load(path string) (*Node, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{
			File:    path,
			Message: "failed to read file",
			Cause:   err,
		}
	}

	var n *Node
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		n, err = ParseJSON(data)
	case ".yaml", ".yml":
		n, err = ParseYAML(data)
	case ".cbor":
		n, err = Decode(data, FormatCBOR)
	default:
		return nil, &LoadError{
			File:    path,
			Message: fmt.Sprintf("unsupported fixture extension %q", filepath.Ext(path)),
		}
	}

	if err != nil {
		if le, ok := err.(*LoadError); ok {
			le.File = path
			return nil, le
		}
		return nil, &LoadError{
			File:    path,
			Message: err.Error(),
		}
	}

	return n, nil
}

// LoadDirectory loads all fixtures from a directory.
// Only files with .json, .yaml, or .yml extensions are loaded.
func LoadDirectory(dir string) ([]*Node, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, &LoadError{
			File:    dir,
			Message: "failed to read directory",
			Cause:   err,
		}
	}

	var nodes []*Node
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		ext := strings.ToLower(filepath.Ext(entry.Name()))
		if ext != ".json" && ext != ".yaml" && ext != ".yml" {
			continue
		}

		n, err := Load(filepath.Join(dir, entry.Name()))
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, n)
	}

	return nodes, nil
}
