package diagram

import (
	"fmt"
	stdio "io"
	"os"
)

// ReadSource reads raw diagram text from path. A path of "-" reads stdin.
// The returned text is raw: callers are expected to run it through the
// sanitizer before trusting its structure.
func ReadSource(path string) (string, error) {
	if path == "-" {
		data, err := stdio.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", path, err)
	}
	return string(data), nil
}

// WriteOutput writes data to path, or to stdout when path is empty.
func WriteOutput(path string, data []byte) error {
	if path == "" {
		_, err := os.Stdout.Write(data)
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// ExportJSON writes a Graph to a JSON file at path, or stdout when path is
// empty. The format can be re-imported with [ImportJSON] for round-trip
// processing.
func ExportJSON(g Graph, path string) error {
	data, err := MarshalGraph(g)
	if err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return WriteOutput(path, append(data, '\n'))
}

// ImportJSON reads a JSON file at path and returns the decoded Graph.
func ImportJSON(path string) (Graph, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Graph{}, fmt.Errorf("open %s: %w", path, err)
	}
	g, err := UnmarshalGraph(data)
	if err != nil {
		return Graph{}, fmt.Errorf("decode %s: %w", path, err)
	}
	return g, nil
}
