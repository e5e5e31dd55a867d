package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// render writes v in the format selected by --output. YAML output goes
// through JSON first so field names match the wire format.
func render(w io.Writer, format string, v any) error {
	switch format {
	case "", "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case "yaml":
		raw, err := json.Marshal(v)
		if err != nil {
			return err
		}
		var generic any
		if err := yaml.Unmarshal(raw, &generic); err != nil {
			return err
		}
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(generic); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unknown output format %q, expected json or yaml", format)
	}
}

func (a *app) print(cmd *cobra.Command, v any) error {
	format, _ := cmd.Flags().GetString("output")
	return render(a.out, format, v)
}

// referenceOutput is printed by initiate commands
type referenceOutput struct {
	Reference string `json:"reference"`
}

// statusOutput is printed by commands without a response body
type statusOutput struct {
	Reference string `json:"reference,omitempty"`
	Result    string `json:"result"`
}
