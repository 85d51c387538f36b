package scrape

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	jsonpatch "github.com/evanphx/json-patch/v5"
)

// Cache is a directory of JSON documents keyed by a sanitized cache key.
// Scrape results land here so repeat runs never refetch.
type Cache struct {
	dir string
}

// NewCache opens (creating if needed) the cache directory.
func NewCache(dir string) (*Cache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("cache dir: %w", err)
	}
	return &Cache{dir: dir}, nil
}

var unsafeKeyRe = regexp.MustCompile(`[^\w\-]`)

func (c *Cache) path(key string) string {
	return filepath.Join(c.dir, "ascension_"+unsafeKeyRe.ReplaceAllString(key, "_")+".json")
}

// Load unmarshals the cached document for key into v. A missing or
// unreadable document is a miss, never an error.
func (c *Cache) Load(key string, v interface{}) bool {
	data, err := os.ReadFile(c.path(key))
	if err != nil {
		return false
	}
	return json.Unmarshal(data, v) == nil
}

// Save writes v as the document for key.
func (c *Cache) Save(key string, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(c.path(key), data, 0o644)
}

// MergeField folds a single field into the document for key as a JSON
// merge patch, so a growing document (like the item detail cache) never
// gets rewritten from a possibly stale in-memory copy.
func (c *Cache) MergeField(key, field string, v interface{}) error {
	doc, err := os.ReadFile(c.path(key))
	if err != nil {
		doc = []byte("{}")
	}
	val, err := json.Marshal(v)
	if err != nil {
		return err
	}
	patch, err := json.Marshal(map[string]json.RawMessage{field: val})
	if err != nil {
		return err
	}
	merged, err := jsonpatch.MergePatch(doc, patch)
	if err != nil {
		return fmt.Errorf("merge cache %q: %w", key, err)
	}
	var indented map[string]json.RawMessage
	if err := json.Unmarshal(merged, &indented); err != nil {
		return err
	}
	data, err := json.MarshalIndent(indented, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(c.path(key), data, 0o644)
}
