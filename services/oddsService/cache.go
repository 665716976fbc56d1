package oddsService

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"blackLedger/models/external"
)

const DefaultCacheTTL = 20 * time.Minute

// CacheEntries maps "{sport}_{market}" to the best-odds rows for that key.
type CacheEntries map[string][]external.OddsPick

// CacheBackend persists the whole cache as one object with one modification
// time. A missing cache loads as empty with a zero time.
type CacheBackend interface {
	Load(ctx context.Context) (CacheEntries, time.Time, error)
	Save(ctx context.Context, entries CacheEntries) error
}

type FetchFunc func(ctx context.Context, sportKey string, market string) ([]external.OddsPick, error)

// OddsCache fronts FetchFunc with a backend whose validity is global: while
// the backend was written within the TTL, every key is served from it, and
// a key that is absent reads as empty rather than a miss. Once stale, a read
// refreshes only the requested key, so other keys can stay stale past the
// window until they are read themselves.
type OddsCache struct {
	backend CacheBackend
	fetch   FetchFunc
	ttl     time.Duration
	now     func() time.Time
}

func NewOddsCache(backend CacheBackend, fetch FetchFunc, ttl time.Duration, now func() time.Time) *OddsCache {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	if now == nil {
		now = time.Now
	}
	return &OddsCache{
		backend: backend,
		fetch:   fetch,
		ttl:     ttl,
		now:     now,
	}
}

func CacheKey(sportKey string, market string) string {
	return fmt.Sprintf("%s_%s", sportKey, market)
}

func (c *OddsCache) GetCachedOrFresh(ctx context.Context, sportKey string, market string) ([]external.OddsPick, error) {
	key := CacheKey(sportKey, market)

	entries, modified, err := c.backend.Load(ctx)
	if err != nil {
		log.Printf("Error loading odds cache, fetching fresh: %v", err)
		entries = CacheEntries{}
		modified = time.Time{}
	}

	if !modified.IsZero() && c.now().Sub(modified) < c.ttl {
		if cached, ok := entries[key]; ok {
			return cached, nil
		}
		return []external.OddsPick{}, nil
	}

	fresh, err := c.fetch(ctx, sportKey, market)
	if err != nil {
		return nil, err
	}
	if fresh == nil {
		fresh = []external.OddsPick{}
	}

	entries[key] = fresh
	if err := c.backend.Save(ctx, entries); err != nil {
		log.Printf("Error writing odds cache: %v", err)
	}

	return fresh, nil
}

// FileBackend stores the cache as a JSON file; the file's mtime is the cache
// timestamp.
type FileBackend struct {
	Path string
}

func NewFileBackend(path string) *FileBackend {
	return &FileBackend{Path: path}
}

func (f *FileBackend) Load(ctx context.Context) (CacheEntries, time.Time, error) {
	info, err := os.Stat(f.Path)
	if errors.Is(err, os.ErrNotExist) {
		return CacheEntries{}, time.Time{}, nil
	}
	if err != nil {
		return nil, time.Time{}, err
	}

	raw, err := os.ReadFile(f.Path)
	if err != nil {
		return nil, time.Time{}, err
	}

	entries := CacheEntries{}
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, time.Time{}, fmt.Errorf("error parsing odds cache %s: %w", f.Path, err)
	}
	return entries, info.ModTime(), nil
}

func (f *FileBackend) Save(ctx context.Context, entries CacheEntries) error {
	raw, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return err
	}
	if dir := filepath.Dir(f.Path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}

	tmp := f.Path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, f.Path)
}
