// Package manifest reads and rewrites the host project's package.json.
// Only the scripts block is touched: a fixed set of CLI entries is merged
// in, every other key in the document is carried through untouched.
package manifest

import (
	"encoding/json"
	"fmt"
	"os"
)

// Document is a parsed package.json. Unrecognized keys survive a
// load/save round trip; key order is normalized to alphabetical.
type Document map[string]interface{}

// Load parses the manifest at path. A missing or malformed file is a hard
// error: without a valid package.json the host project cannot be wired up.
func Load(path string) (Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading manifest %s: %w", path, err)
	}

	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing manifest %s: %w", path, err)
	}
	return doc, nil
}

// Save writes the document back with 2-space indentation and a trailing
// newline, matching the formatting package managers emit.
func (d Document) Save(path string) error {
	data, err := json.MarshalIndent(d, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling manifest: %w", err)
	}
	data = append(data, '\n')

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing manifest %s: %w", path, err)
	}
	return nil
}

// Scripts returns the scripts block, creating it when absent.
func (d Document) Scripts() map[string]interface{} {
	if raw, ok := d["scripts"]; ok {
		if scripts, ok := raw.(map[string]interface{}); ok {
			return scripts
		}
	}
	scripts := make(map[string]interface{})
	d["scripts"] = scripts
	return scripts
}

// MergeScripts injects the given entries into the scripts block. An entry
// whose name already exists is overridden; every other existing script is
// preserved.
func (d Document) MergeScripts(entries map[string]string) {
	scripts := d.Scripts()
	for name, cmd := range entries {
		scripts[name] = cmd
	}
}
