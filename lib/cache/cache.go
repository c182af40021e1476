package cache

import (
	"encoding/gob"
	"os"
	"path/filepath"
	"strings"
)

// Repo is one cached clone.
type Repo struct {
	URL    string
	Branch string
	Path   string
}

// Cache indexes shallow clones kept under the user cache directory, so
// repeated scan-repo runs skip the network. The index lives in a gob
// file next to the clones.
type Cache struct {
	BaseDir string
	Repos   []Repo
}

// Init ensures the cache directory exists and loads the index if one is
// present.
func (c *Cache) Init() error {
	dir, err := os.UserCacheDir()
	if err != nil {
		return err
	}

	c.BaseDir = filepath.Join(dir, "assertion-analyzer", "repos")
	if err := os.MkdirAll(c.BaseDir, 0700); err != nil {
		return err
	}
	return c.load()
}

func (c *Cache) indexFile() string {
	return filepath.Join(c.BaseDir, "index.bin")
}

func (c *Cache) load() error {
	file, err := os.Open(c.indexFile())
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	defer file.Close()

	return gob.NewDecoder(file).Decode(&c.Repos)
}

// Save rewrites the index file.
func (c *Cache) Save() error {
	file, err := os.Create(c.indexFile())
	if err != nil {
		return err
	}
	defer file.Close()

	return gob.NewEncoder(file).Encode(c.Repos)
}

// CloneDir is where a clone of url at branch belongs.
func (c *Cache) CloneDir(url, branch string) string {
	return filepath.Join(c.BaseDir, strings.TrimPrefix(url, "https://"), branch)
}

// Lookup returns the cached clone for url at branch. Entries whose tree
// has gone missing on disk are ignored.
func (c *Cache) Lookup(url, branch string) (Repo, bool) {
	for _, r := range c.Repos {
		if r.URL == url && r.Branch == branch {
			if _, err := os.Stat(r.Path); err == nil {
				return r, true
			}
		}
	}
	return Repo{}, false
}

// Add records a clone and persists the index.
func (c *Cache) Add(r Repo) error {
	c.Repos = append(c.Repos, r)
	return c.Save()
}

// Remove deletes the clone for url at branch and drops it from the
// index.
func (c *Cache) Remove(url, branch string) error {
	kept := c.Repos[:0]
	for _, r := range c.Repos {
		if r.URL == url && r.Branch == branch {
			if err := os.RemoveAll(r.Path); err != nil {
				return err
			}
			continue
		}
		kept = append(kept, r)
	}
	c.Repos = kept
	return c.Save()
}
