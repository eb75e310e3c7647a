package catalog

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"
)

// Catalog maps canonical category keys to their word counts. It is loaded
// once at startup and immutable afterwards; inject it where needed instead
// of reaching for package state.
type Catalog struct {
	sizes        map[string]int
	keys         []string
	defaultLevel string
}

// New builds a Catalog from an explicit size map. Keys iterate in sorted
// order so suffix resolution is deterministic.
func New(sizes map[string]int, defaultLevel string) *Catalog {
	c := &Catalog{
		sizes:        make(map[string]int, len(sizes)),
		keys:         make([]string, 0, len(sizes)),
		defaultLevel: defaultLevel,
	}
	for key, size := range sizes {
		c.sizes[key] = size
		c.keys = append(c.keys, key)
	}
	sort.Strings(c.keys)
	return c
}

// Load reads every <key>.json word list under dir in fsys and builds a
// Catalog. The key is the filename without extension, the size the length
// of the JSON array in the file.
func Load(fsys fs.FS, dir, defaultLevel string) (*Catalog, error) {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog directory %s: %w", dir, err)
	}

	sizes := make(map[string]int)
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, ".json") {
			continue
		}

		raw, err := fs.ReadFile(fsys, path.Join(dir, name))
		if err != nil {
			return nil, fmt.Errorf("failed to read category file %s: %w", name, err)
		}

		var words []json.RawMessage
		if err := json.Unmarshal(raw, &words); err != nil {
			return nil, fmt.Errorf("invalid word list %s: %w", name, err)
		}

		key := strings.TrimSuffix(name, ".json")
		sizes[key] = len(words)
	}

	if len(sizes) == 0 {
		return nil, fmt.Errorf("no category files found in %s", dir)
	}

	return New(sizes, defaultLevel), nil
}

// Size returns the word count for a canonical key.
func (c *Catalog) Size(key string) (int, bool) {
	n, ok := c.sizes[key]
	return n, ok
}

// Keys returns the canonical keys in sorted order.
func (c *Catalog) Keys() []string {
	return c.keys
}

// Len returns the number of categories.
func (c *Catalog) Len() int {
	return len(c.keys)
}

// Resolve normalizes a raw category string against this catalog's keys.
func (c *Catalog) Resolve(raw string) (string, bool) {
	return Resolve(raw, c.keys, c.defaultLevel)
}
