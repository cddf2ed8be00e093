// Package cache keeps the reports of trace files between runs, keyed by
// the trace contents and the configuration they were inferred under.
package cache

import (
	"crypto/md5"
	"encoding/gob"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/gnolang/tinfer/internal/config"
	tt "github.com/gnolang/tinfer/internal/types"
)

const cacheFile = "tinfer_cache.gob"

type Entry struct {
	Key       string
	Reports   []tt.PointReport
	CreatedAt time.Time
}

type Cache struct {
	dir     string
	maxAge  time.Duration
	mutex   sync.Mutex
	entries map[string]Entry
}

// New opens the cache stored in dir, creating dir if needed. Entries older
// than maxAge are ignored; a zero maxAge keeps entries forever.
func New(dir string, maxAge time.Duration) (*Cache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create cache directory: %w", err)
	}

	c := &Cache{
		dir:     dir,
		maxAge:  maxAge,
		entries: make(map[string]Entry),
	}
	if err := c.load(); err != nil {
		return nil, fmt.Errorf("failed to load cache: %w", err)
	}
	return c, nil
}

func (c *Cache) load() error {
	file, err := os.Open(filepath.Join(c.dir, cacheFile))
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return err
	}
	defer file.Close()

	return gob.NewDecoder(file).Decode(&c.entries)
}

func (c *Cache) save() error {
	file, err := os.Create(filepath.Join(c.dir, cacheFile))
	if err != nil {
		return fmt.Errorf("failed to create cache file: %w", err)
	}
	defer file.Close()

	if err := gob.NewEncoder(file).Encode(c.entries); err != nil {
		return fmt.Errorf("failed to encode cache file: %w", err)
	}
	return nil
}

// Get returns the reports stored for path when key still matches.
func (c *Cache) Get(path, key string) ([]tt.PointReport, bool) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	entry, ok := c.entries[path]
	if !ok {
		return nil, false
	}
	if entry.Key != key || c.expired(entry) {
		delete(c.entries, path)
		return nil, false
	}
	return normalize(entry.Reports), true
}

// normalize restores the empty slices gob decodes as nil.
func normalize(reports []tt.PointReport) []tt.PointReport {
	for i := range reports {
		if reports[i].Findings == nil {
			reports[i].Findings = []tt.Finding{}
		}
	}
	return reports
}

func (c *Cache) expired(e Entry) bool {
	return c.maxAge > 0 && time.Since(e.CreatedAt) > c.maxAge
}

// Set stores the reports of path under key and writes the cache file.
func (c *Cache) Set(path, key string, reports []tt.PointReport) error {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.entries[path] = Entry{
		Key:       key,
		Reports:   reports,
		CreatedAt: time.Now(),
	}
	return c.save()
}

func (c *Cache) Len() int {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	return len(c.entries)
}

func (c *Cache) InvalidateAll() error {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.entries = make(map[string]Entry)
	return c.save()
}

// Key hashes the trace at path together with cfg. Any change to either
// yields a different key.
func Key(path string, cfg *config.Config) (string, error) {
	hash := md5.New()

	d, err := yaml.Marshal(cfg)
	if err != nil {
		return "", err
	}
	hash.Write(d)

	file, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	if _, err := io.Copy(hash, file); err != nil {
		return "", fmt.Errorf("failed to calculate hash: %w", err)
	}
	return fmt.Sprintf("%x", hash.Sum(nil)), nil
}
