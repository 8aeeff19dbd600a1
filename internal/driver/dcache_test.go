package driver

import (
	"testing"

	"dxspv/internal/scan"
	"dxspv/internal/sm4"
	"dxspv/internal/testkit"
)

func TestDiskCacheRoundTrip(t *testing.T) {
	cache, err := OpenDiskCacheAt(t.TempDir())
	if err != nil {
		t.Fatalf("OpenDiskCacheAt: %v", err)
	}

	in := Result{
		Status:  StatusOK,
		Version: sm4.Version{Type: sm4.ShaderCompute, Major: 5, Minor: 0},
		Bindings: []scan.Binding{
			{Kind: scan.KindUnorderedAccess, Index: 2, Shape: sm4.ShapeRawBuffer,
				ElementType: scan.ElemUInt, Flags: scan.FlagUAVRead, Count: 1},
		},
		Messages: "shader.dxbc:2:1: E3001: something\n",
	}
	key := DigestOf([]byte("shader-bytes"))
	if err := cache.Put(key, resultToPayload(in)); err != nil {
		t.Fatalf("Put: %v", err)
	}

	var payload DiskPayload
	ok, err := cache.Get(key, &payload)
	if err != nil || !ok {
		t.Fatalf("Get: ok=%v err=%v", ok, err)
	}
	out := payloadToResult(&payload)
	if out.Version != in.Version {
		t.Fatalf("version = %v, want %v", out.Version, in.Version)
	}
	if out.Messages != in.Messages {
		t.Fatalf("messages = %q", out.Messages)
	}
	if len(out.Bindings) != 1 || out.Bindings[0] != in.Bindings[0] {
		t.Fatalf("bindings = %+v", out.Bindings)
	}
}

func TestDiskCacheMiss(t *testing.T) {
	cache, err := OpenDiskCacheAt(t.TempDir())
	if err != nil {
		t.Fatalf("OpenDiskCacheAt: %v", err)
	}
	var payload DiskPayload
	ok, err := cache.Get(DigestOf([]byte("absent")), &payload)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if ok {
		t.Fatal("hit on a key never stored")
	}
}

func TestDiskCacheSchemaMismatch(t *testing.T) {
	cache, err := OpenDiskCacheAt(t.TempDir())
	if err != nil {
		t.Fatalf("OpenDiskCacheAt: %v", err)
	}
	key := DigestOf([]byte("old"))
	if err := cache.Put(key, &DiskPayload{Schema: diskCacheSchemaVersion + 1}); err != nil {
		t.Fatalf("Put: %v", err)
	}
	var payload DiskPayload
	ok, err := cache.Get(key, &payload)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if ok {
		t.Fatal("entry with a foreign schema must read as a miss")
	}
}

func TestCachedScanHitSkipsRescan(t *testing.T) {
	cache, err := OpenDiskCacheAt(t.TempDir())
	if err != nil {
		t.Fatalf("OpenDiskCacheAt: %v", err)
	}

	a := sm4.NewAssembler(sm4.ShaderCompute, 5, 0)
	a.DclUAVRaw(3)
	a.Ret()
	data := testkit.Shader(a.Words())

	first, err := CachedScan(data, scanOpts(), cache)
	if err != nil {
		t.Fatalf("CachedScan: %v", err)
	}
	second, err := CachedScan(data, scanOpts(), cache)
	if err != nil {
		t.Fatalf("CachedScan (cached): %v", err)
	}
	if len(second.Bindings) != len(first.Bindings) {
		t.Fatalf("cached result differs: %+v vs %+v", second, first)
	}
	if second.Bindings[0] != first.Bindings[0] {
		t.Fatalf("cached binding differs: %+v vs %+v", second.Bindings[0], first.Bindings[0])
	}
}

func TestCachedScanNilCache(t *testing.T) {
	a := sm4.NewAssembler(sm4.ShaderPixel, 4, 1)
	a.Ret()
	res, err := CachedScan(testkit.Shader(a.Words()), scanOpts(), nil)
	if err != nil {
		t.Fatalf("CachedScan: %v", err)
	}
	if res.Version.String() != "ps_4_1" {
		t.Fatalf("version = %s", res.Version)
	}
}

func TestDiskCacheDropAll(t *testing.T) {
	cache, err := OpenDiskCacheAt(t.TempDir())
	if err != nil {
		t.Fatalf("OpenDiskCacheAt: %v", err)
	}
	key := DigestOf([]byte("x"))
	if err := cache.Put(key, &DiskPayload{Schema: diskCacheSchemaVersion}); err != nil {
		t.Fatalf("Put: %v", err)
	}
	if err := cache.DropAll(); err != nil {
		t.Fatalf("DropAll: %v", err)
	}
	var payload DiskPayload
	if ok, _ := cache.Get(key, &payload); ok {
		t.Fatal("entry survived DropAll")
	}
}
