package main

import (
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"biosphere-server/internal/archive"
)

// render writes v as indented JSON or as YAML. YAML goes through JSON first
// so both formats share the archive's attribute names.
func render(w io.Writer, format string, v any) error {
	raw, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode output: %w", err)
	}

	if format != "yaml" {
		_, err = fmt.Fprintln(w, string(raw))
		return err
	}

	var generic any
	if err := json.Unmarshal(raw, &generic); err != nil {
		return fmt.Errorf("failed to re-read output: %w", err)
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(generic); err != nil {
		return fmt.Errorf("failed to encode yaml: %w", err)
	}
	return enc.Close()
}

// export writes doc to --out when set and notes the path on stderr.
func (o *options) export(doc archive.Document) error {
	if o.out == "" {
		return nil
	}
	if err := archive.WriteFile(o.out, doc); err != nil {
		return err
	}
	fmt.Fprintf(o.stderr, "wrote %s\n", o.out)
	return nil
}
