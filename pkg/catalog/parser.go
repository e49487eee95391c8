package catalog

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// LoadError provides details about a catalog loading error.
type LoadError struct {
	// File is the path to the file that failed to load.
	File string

	// Key is the dotted key path where the error occurred (if known).
	Key string

	// Message describes the error.
	Message string

	// Cause is the underlying error, if any.
	Cause error
}

func (e *LoadError) Error() string {
	msg := e.Message
	if e.Key != "" {
		msg = e.Key + ": " + msg
	}
	if e.File != "" {
		return e.File + ": " + msg
	}
	return msg
}

func (e *LoadError) Unwrap() error {
	return e.Cause
}

// ParseJSON parses a translation file into a flattened catalog.
//
// The document must be a JSON object whose leaves are strings. Parsing
// walks the token stream rather than unmarshalling into a map, so
// duplicate keys within an object are detected (maps would silently keep
// the last one) and document order is preserved.
func ParseJSON(locale string, data []byte) (*Catalog, error) {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return nil, &LoadError{Message: "failed to parse JSON", Cause: err}
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, &LoadError{Message: "translation file must be a JSON object"}
	}

	entries, err := parseObject(dec, "")
	if err != nil {
		return nil, err
	}

	// Consume the closing brace of the root object.
	if _, err := dec.Token(); err != nil {
		return nil, &LoadError{Message: "failed to parse JSON", Cause: err}
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, &LoadError{Message: "trailing data after translation object"}
	}

	return newCatalog(locale, entries), nil
}

// parseObject consumes the members of an already-opened JSON object and
// returns the flattened messages under prefix. The closing '}' is left
// for the caller at the root level and consumed here for nested objects.
func parseObject(dec *json.Decoder, prefix string) ([]Message, error) {
	var entries []Message
	seen := make(map[string]bool)

	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, &LoadError{Message: "failed to parse JSON", Cause: err}
		}
		key := keyTok.(string)

		path := key
		if prefix != "" {
			path = prefix + "." + key
		}

		if seen[key] {
			return nil, &LoadError{
				Key:     path,
				Message: "duplicate key",
			}
		}
		seen[key] = true

		valTok, err := dec.Token()
		if err != nil {
			return nil, &LoadError{Message: "failed to parse JSON", Cause: err}
		}

		switch v := valTok.(type) {
		case json.Delim:
			if v != '{' {
				return nil, &LoadError{
					Key:     path,
					Message: fmt.Sprintf("unexpected %v; translation values must be strings or objects", v),
				}
			}
			nested, err := parseObject(dec, path)
			if err != nil {
				return nil, err
			}
			// Consume the nested object's closing brace.
			if _, err := dec.Token(); err != nil {
				return nil, &LoadError{Message: "failed to parse JSON", Cause: err}
			}
			entries = append(entries, nested...)

		case string:
			entries = append(entries, Message{
				Key:          path,
				Text:         v,
				Placeholders: Placeholders(v),
			})

		default:
			return nil, &LoadError{
				Key:     path,
				Message: fmt.Sprintf("leaf value %v is not a string", valTok),
			}
		}
	}

	return entries, nil
}

// Load reads a translation file. The locale is taken from the file name
// ("de.json" -> "de").
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{
			File:    path,
			Message: "failed to read file",
			Cause:   err,
		}
	}

	locale := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))

	c, err := ParseJSON(locale, data)
	if err != nil {
		if le, ok := err.(*LoadError); ok {
			le.File = path
			return nil, le
		}
		return nil, &LoadError{File: path, Message: err.Error()}
	}

	return c, nil
}

// LoadBundle loads all .json translation files from a directory into a
// bundle with the given base locale. The base locale's file must be
// present.
func LoadBundle(dir, base string) (*Bundle, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, &LoadError{
			File:    dir,
			Message: "failed to read directory",
			Cause:   err,
		}
	}

	b := NewBundle(base)
	for _, entry := range entries {
		if entry.IsDir() || strings.ToLower(filepath.Ext(entry.Name())) != ".json" {
			continue
		}

		c, err := Load(filepath.Join(dir, entry.Name()))
		if err != nil {
			return nil, err
		}
		b.Add(c)
	}

	if _, ok := b.BaseCatalog(); !ok {
		return nil, &LoadError{
			File:    dir,
			Message: fmt.Sprintf("base locale %q not found", base),
		}
	}

	return b, nil
}
