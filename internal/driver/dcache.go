package driver

import (
	"encoding/hex"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/vmihailenco/msgpack/v5"

	"tcab/internal/project"
	"tcab/internal/token"
)

// Current schema version - increment when DiskPayload format changes
const diskCacheSchemaVersion uint16 = 1

// DiskCache хранит препроцессированные потоки модулей на диске.
// Thread-safe for concurrent access.
type DiskCache struct {
	mu  sync.RWMutex
	dir string
}

// CachedToken is a token without its file: the file is the module itself.
type CachedToken struct {
	Text string
	Line uint32
}

// DiskPayload stores one module after lexing, normalization and directives.
type DiskPayload struct {
	// Schema version for safe invalidation when format changes
	Schema uint16

	Path        string
	ContentHash project.Digest
	DefinesHash project.Digest
	Tokens      []CachedToken
}

// DefaultCacheDir returns $XDG_CACHE_HOME/app or ~/.cache/app.
func DefaultCacheDir(app string) (string, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		base = filepath.Join(home, ".cache")
	}
	return filepath.Join(base, app), nil
}

// OpenDiskCache initializes and returns a disk cache at the standard location.
func OpenDiskCache(app string) (*DiskCache, error) {
	dir, err := DefaultCacheDir(app)
	if err != nil {
		return nil, err
	}
	return OpenDiskCacheAt(dir)
}

// OpenDiskCacheAt opens (creating if needed) a disk cache rooted at dir.
func OpenDiskCacheAt(dir string) (*DiskCache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &DiskCache{dir: dir}, nil
}

// Dir returns the cache root.
func (c *DiskCache) Dir() string {
	if c == nil {
		return ""
	}
	return c.dir
}

func (c *DiskCache) pathFor(key project.Digest) string {
	hexKey := hex.EncodeToString(key[:])
	// Для удобства читаемости/очистки — подкаталог "mods".
	return filepath.Join(c.dir, "mods", hexKey+".mp")
}

// Put serializes and writes a payload to the disk cache.
func (c *DiskCache) Put(key project.Digest, payload *DiskPayload) (err error) {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	p := c.pathFor(key)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(filepath.Dir(p), "tmp-*")
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = f.Close()
			_ = os.Remove(f.Name())
		}
	}()

	if err = msgpack.NewEncoder(f).Encode(payload); err != nil {
		return err
	}
	if err = f.Close(); err != nil {
		return err
	}
	// Атомарная замена
	return os.Rename(f.Name(), p)
}

// Get reads and deserializes a payload from the disk cache.
func (c *DiskCache) Get(key project.Digest, out *DiskPayload) (bool, error) {
	if c == nil {
		return false, nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	p := c.pathFor(key)
	f, err := os.Open(p)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	defer func() {
		_ = f.Close()
	}()
	if err := msgpack.NewDecoder(f).Decode(out); err != nil {
		return false, err
	}
	if out.Schema != diskCacheSchemaVersion {
		return false, nil
	}
	return true, nil
}

// DropAll invalidates the cache, useful after format changes.
func (c *DiskCache) DropAll() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	// тривиально: переименуем каталог и удалим
	old := c.dir + ".old-" + time.Now().Format("20060102150405")
	if err := os.Rename(c.dir, old); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	return os.RemoveAll(old)
}

// IsSHA256 performs a basic sanity check that the digest is a non-zero SHA-256 value.
func IsSHA256(d project.Digest) bool {
	var z project.Digest
	return d != z
}

func streamToPayload(path string, content, defines project.Digest, ts token.Stream) *DiskPayload {
	payload := &DiskPayload{
		Schema:      diskCacheSchemaVersion,
		Path:        path,
		ContentHash: content,
		DefinesHash: defines,
		Tokens:      make([]CachedToken, len(ts)),
	}
	for i, tok := range ts {
		payload.Tokens[i] = CachedToken{Text: tok.Text, Line: tok.Line}
	}
	return payload
}

// payloadToStream восстанавливает поток; Kind классифицируется заново.
func payloadToStream(payload *DiskPayload) token.Stream {
	if payload == nil || payload.Schema != diskCacheSchemaVersion {
		return nil
	}
	ts := make(token.Stream, len(payload.Tokens))
	for i, ct := range payload.Tokens {
		ts[i] = token.New(payload.Path, ct.Line, ct.Text)
	}
	return ts
}
