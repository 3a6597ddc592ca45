package sharedstrings

import (
	"fmt"
	"os"
	"path/filepath"

	lru "github.com/hashicorp/golang-lru/v2"
	jsoniter "github.com/json-iterator/go"
	"go.uber.org/zap"
)

// DefaultPageSize is the number of strings per disk page.
const DefaultPageSize = 10000

// readCacheSize bounds how many non-active pages stay loaded at once.
const readCacheSize = 4

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// DiskStoreOptions configures a DiskStore.
type DiskStoreOptions struct {
	// PageSize is the number of strings per page. Zero means
	// DefaultPageSize.
	PageSize int
	// Logger receives flush and load events. Nil means no logging.
	Logger *zap.Logger
}

// DiskStore partitions the shared-string index space into fixed-size pages.
// The active page lives in memory; when a write targets a strictly higher
// page number the active page is serialized to one JSON file under the
// store's directory and a new active page begins (write-behind,
// flush-on-page-transition). Reads of non-active pages go through a small
// LRU of loaded pages.
//
// The store performs no locking: a single owner must sequence writes and
// reads, and no two stores may share a directory concurrently. Callers must
// invoke Cleanup on every exit path to remove the page files.
type DiskStore struct {
	dir      string
	pageSize int
	logger   *zap.Logger

	activePage int
	active     []string
	count      int

	cache   *lru.Cache[int, []string]
	lastErr error
}

// NewDiskStore creates a disk-paged store writing pages under dir. The
// directory is created on first flush and removed by Cleanup.
func NewDiskStore(dir string, opts DiskStoreOptions) *DiskStore {
	pageSize := opts.PageSize
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	// lru.New only fails for a non-positive size
	cache, _ := lru.New[int, []string](readCacheSize)
	return &DiskStore{
		dir:      dir,
		pageSize: pageSize,
		logger:   logger,
		cache:    cache,
	}
}

// AddString records value at index, flushing the active page first when the
// index belongs to a higher page. Writes to an already-flushed page return
// ErrStalePage.
func (d *DiskStore) AddString(index int, value string) error {
	page := index / d.pageSize
	if page < d.activePage {
		return fmt.Errorf("index %d: %w", index, ErrStalePage)
	}
	if page > d.activePage {
		if err := d.flushActive(); err != nil {
			return err
		}
		d.activePage = page
		d.active = d.active[:0]
	}

	offset := index % d.pageSize
	for len(d.active) <= offset {
		d.active = append(d.active, "")
	}
	d.active[offset] = value

	if index+1 > d.count {
		d.count = index + 1
	}
	return nil
}

// GetString returns the string at index. Indices on the active page are
// served from memory. Other pages are loaded from their file through the
// read cache; a missing file means the page was never flushed and yields
// absent. Genuine load failures also yield absent but are logged and
// retained, see LastErr.
func (d *DiskStore) GetString(index int) (string, bool) {
	page := index / d.pageSize
	offset := index % d.pageSize

	if page == d.activePage {
		if offset >= len(d.active) {
			return "", false
		}
		return d.active[offset], true
	}

	values, ok := d.loadPage(page)
	if !ok || offset >= len(values) {
		return "", false
	}
	return values[offset], true
}

func (d *DiskStore) loadPage(page int) ([]string, bool) {
	if values, ok := d.cache.Get(page); ok {
		return values, true
	}

	data, err := os.ReadFile(d.pagePath(page))
	if err != nil {
		if !os.IsNotExist(err) {
			d.lastErr = err
			d.logger.Warn("shared string page load failed", zap.Int("page", page), zap.Error(err))
		}
		return nil, false
	}

	var values []string
	if err := json.Unmarshal(data, &values); err != nil {
		d.lastErr = err
		d.logger.Warn("shared string page decode failed", zap.Int("page", page), zap.Error(err))
		return nil, false
	}

	d.cache.Add(page, values)
	return values, true
}

// Count returns the maximum observed index + 1 across all writes.
func (d *DiskStore) Count() int {
	return d.count
}

// Cleanup removes the page directory and drops all in-memory state. It is
// idempotent; removal failures are swallowed as best-effort reclamation.
func (d *DiskStore) Cleanup() {
	if err := os.RemoveAll(d.dir); err != nil {
		d.logger.Warn("shared string cleanup failed", zap.String("dir", d.dir), zap.Error(err))
	}
	d.cache.Purge()
	d.active = nil
	d.activePage = 0
	d.count = 0
}

// LastErr returns the most recent swallowed page load or decode failure,
// for callers that need to distinguish "not yet flushed" from real I/O
// errors after the fact.
func (d *DiskStore) LastErr() error {
	return d.lastErr
}

// Flush forces the active page to disk without starting a new one. Used
// when the dictionary is complete and will only be read back from here on.
func (d *DiskStore) Flush() error {
	return d.flushActive()
}

func (d *DiskStore) flushActive() error {
	if len(d.active) == 0 {
		return nil
	}
	// MkdirAll tolerates the directory already existing, including the
	// case where another flush created it first
	if err := os.MkdirAll(d.dir, 0o755); err != nil {
		return fmt.Errorf("create page dir: %w", err)
	}
	data, err := json.Marshal(d.active)
	if err != nil {
		return fmt.Errorf("encode page %d: %w", d.activePage, err)
	}
	path := d.pagePath(d.activePage)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write page %d: %w", d.activePage, err)
	}
	d.logger.Debug("flushed shared string page",
		zap.Int("page", d.activePage), zap.Int("strings", len(d.active)))
	return nil
}

// pagePath names the page file deterministically by page number.
func (d *DiskStore) pagePath(page int) string {
	return filepath.Join(d.dir, fmt.Sprintf("page_%d.json", page))
}
