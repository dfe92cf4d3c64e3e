package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

// Output formats.
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// encode writes v as JSON or YAML. It reports false for the text format,
// which every command renders itself.
func encode(w io.Writer, format string, v any) (bool, error) {
	switch format {
	case FormatJSON:
		data, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return true, fmt.Errorf("failed to encode JSON: %w", err)
		}

		_, err = fmt.Fprintln(w, string(data))

		return true, err

	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)

		if err := enc.Encode(v); err != nil {
			return true, fmt.Errorf("failed to encode YAML: %w", err)
		}

		return true, enc.Close()

	default:
		return false, nil
	}
}

// writeResults prints path results. In text form a single result is one
// path per line; several results are grouped under their type names.
func writeResults(w io.Writer, format string, results []Result) error {
	if done, err := encode(w, format, results); done {
		return err
	}

	grouped := len(results) > 1

	var b strings.Builder

	for i, res := range results {
		if grouped {
			if i > 0 {
				b.WriteByte('\n')
			}

			b.WriteString(res.Type + ":\n")
		}

		indent := ""
		if grouped {
			indent = "  "
		}

		if res.Outline != "" {
			for line := range strings.Lines(res.Outline) {
				b.WriteString(indent + "# " + line)
			}
		}

		if res.Leaf {
			b.WriteString(indent + "(leaf type, no field paths)\n")
			continue
		}

		for _, p := range res.Paths {
			b.WriteString(indent + p + "\n")
		}
	}

	_, err := io.WriteString(w, b.String())

	return err
}
