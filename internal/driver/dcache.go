package driver

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"os"
	"path/filepath"
	"sync"

	"github.com/vmihailenco/msgpack/v5"

	"dxspv/internal/scan"
	"dxspv/internal/sm4"
	"dxspv/internal/trace"
)

// Bump when the payload layout changes; старые записи просто
// перестанут находиться.
const diskCacheSchemaVersion uint16 = 1

// Digest keys a cache entry by the container's content.
type Digest [sha256.Size]byte

// DigestOf hashes a container.
func DigestOf(data []byte) Digest {
	return sha256.Sum256(data)
}

// DiskCache stores scan results keyed by container digest, so batch
// runs over unchanged shaders skip the token stream entirely.
// Thread-safe for concurrent access.
type DiskCache struct {
	mu  sync.RWMutex
	dir string
}

// DiskPayload is the serialized form of one scan result.
type DiskPayload struct {
	Schema uint16

	// Shader header
	ShaderType uint8
	Major      uint8
	Minor      uint8

	// Outcome
	Status   uint8
	Messages string

	// Binding table, flattened
	Bindings []DiskBinding
}

// DiskBinding mirrors scan.Binding field for field.
type DiskBinding struct {
	Kind        uint8
	Space       uint32
	Index       uint32
	Shape       uint8
	ElementType uint8
	Flags       uint32
	Count       uint32
}

// OpenDiskCache initializes a disk cache at the standard location.
func OpenDiskCache(app string) (*DiskCache, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		base = filepath.Join(home, ".cache")
	}
	return OpenDiskCacheAt(filepath.Join(base, app))
}

// OpenDiskCacheAt initializes a disk cache rooted at dir.
func OpenDiskCacheAt(dir string) (*DiskCache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &DiskCache{dir: dir}, nil
}

func (c *DiskCache) pathFor(key Digest) string {
	return filepath.Join(c.dir, "scans", hex.EncodeToString(key[:])+".mp")
}

// Put serializes and writes a payload. Атомарная замена через rename,
// чтобы параллельный Get не увидел недописанный файл.
func (c *DiskCache) Put(key Digest, payload *DiskPayload) error {
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
	defer os.Remove(f.Name())

	if err := msgpack.NewEncoder(f).Encode(payload); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	return os.Rename(f.Name(), p)
}

// Get reads a payload. Returns false without error when the entry is
// absent or written by an older schema.
func (c *DiskCache) Get(key Digest, out *DiskPayload) (bool, error) {
	if c == nil {
		return false, nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	f, err := os.Open(c.pathFor(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	defer f.Close()

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
	if err := os.RemoveAll(filepath.Join(c.dir, "scans")); err != nil {
		return err
	}
	return nil
}

// resultToPayload flattens a scan result for caching.
func resultToPayload(res Result) *DiskPayload {
	p := &DiskPayload{
		Schema:     diskCacheSchemaVersion,
		ShaderType: uint8(res.Version.Type),
		Major:      res.Version.Major,
		Minor:      res.Version.Minor,
		Status:     uint8(res.Status),
		Messages:   res.Messages,
	}
	p.Bindings = make([]DiskBinding, len(res.Bindings))
	for i, b := range res.Bindings {
		p.Bindings[i] = DiskBinding{
			Kind:        uint8(b.Kind),
			Space:       b.Space,
			Index:       b.Index,
			Shape:       uint8(b.Shape),
			ElementType: uint8(b.ElementType),
			Flags:       uint32(b.Flags),
			Count:       b.Count,
		}
	}
	return p
}

// payloadToResult rebuilds a scan result from its cached form.
func payloadToResult(p *DiskPayload) Result {
	res := Result{
		Status: Status(p.Status),
		Version: sm4.Version{
			Type:  sm4.ShaderType(p.ShaderType),
			Major: p.Major,
			Minor: p.Minor,
		},
		Messages: p.Messages,
	}
	if len(p.Bindings) > 0 {
		res.Bindings = make([]scan.Binding, len(p.Bindings))
		for i, b := range p.Bindings {
			res.Bindings[i] = scan.Binding{
				Kind:        scan.BindingKind(b.Kind),
				Space:       b.Space,
				Index:       b.Index,
				Shape:       sm4.ResourceShape(b.Shape),
				ElementType: scan.ElementType(b.ElementType),
				Flags:       scan.BindingFlags(b.Flags),
				Count:       b.Count,
			}
		}
	}
	return res
}

// CachedScan is Scan with a read-through disk cache. Only successful
// scans are cached; failures re-run so their diagnostics stay fresh.
// A nil cache degrades to a plain Scan.
func CachedScan(data []byte, opts Options, cache *DiskCache) (Result, error) {
	key := DigestOf(data)
	var payload DiskPayload
	if ok, err := cache.Get(key, &payload); err == nil && ok {
		return payloadToResult(&payload), nil
	}

	res, err := Scan(data, opts)
	if err == nil {
		if putErr := cache.Put(key, resultToPayload(res)); putErr != nil && opts.Tracer != nil {
			opts.Tracer.Emitf(trace.LevelWarn, "scan cache write failed: %v", putErr)
		}
	}
	return res, err
}
