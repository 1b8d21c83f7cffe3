package plan

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// Key identifies a plan by everything that shapes it.
type Key [sha256.Size]byte

// KeyFor hashes the target, variant, working directory and argv.
func KeyFor(target, variant, dir string, argv []string) Key {
	h := sha256.New()
	for _, part := range append([]string{target, variant, dir}, argv...) {
		h.Write([]byte(part))
		h.Write([]byte{0})
	}
	var k Key
	copy(k[:], h.Sum(nil))
	return k
}

// Cache keeps plans under the user cache directory. Safe for concurrent
// use.
type Cache struct {
	mu  sync.RWMutex
	dir string
}

// OpenCache opens $XDG_CACHE_HOME/<app>, falling back to ~/.cache/<app>.
func OpenCache(app string) (*Cache, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		base = filepath.Join(home, ".cache")
	}
	return OpenCacheAt(filepath.Join(base, app))
}

// OpenCacheAt opens a cache rooted at dir.
func OpenCacheAt(dir string) (*Cache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &Cache{dir: dir}, nil
}

func (c *Cache) pathFor(key Key) string {
	// подкаталог "plans", чтобы кэш было удобно чистить
	return filepath.Join(c.dir, "plans", hex.EncodeToString(key[:])+".mp")
}

// Put stores f under key.
func (c *Cache) Put(key Key, f *File) error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return WriteFile(c.pathFor(key), f)
}

// Get loads the plan for key. A missing or outdated entry is a miss.
func (c *Cache) Get(key Key) (*File, bool, error) {
	if c == nil {
		return nil, false, nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	f, err := ReadFile(c.pathFor(key))
	switch {
	case err == nil:
		return f, true, nil
	case errors.Is(err, os.ErrNotExist), errors.Is(err, ErrSchema):
		return nil, false, nil
	default:
		return nil, false, err
	}
}

// DropAll removes every cached plan.
func (c *Cache) DropAll() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	old := c.dir + ".old-" + time.Now().Format("20060102150405")
	if err := os.Rename(c.dir, old); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	return os.RemoveAll(old)
}
