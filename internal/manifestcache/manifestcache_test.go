package manifestcache

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/tsoniclang/tsonic/internal/manifest"
)

func openTestCache(t *testing.T) *Cache {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cache.db")
	c, err := Open(path)
	if err != nil {
		t.Fatalf("unexpected error opening cache: %v", err)
	}
	t.Cleanup(func() { c.Close() })
	return c
}

func TestGet_MissOnEmptyCache(t *testing.T) {
	c := openTestCache(t)
	_, ok, err := c.Get(context.Background(), []byte(`{"assembly":"A"}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok {
		t.Error("expected a miss on an empty cache")
	}
}

func TestPutThenGet_RoundTripsTheDecodedManifest(t *testing.T) {
	c := openTestCache(t)
	data := []byte(`{"assembly":"System.Collections"}`)
	m := &manifest.Manifest{Assembly: "System.Collections", Exports: map[string]manifest.Export{}}

	if err := c.Put(context.Background(), data, m); err != nil {
		t.Fatalf("unexpected error putting: %v", err)
	}
	got, ok, err := c.Get(context.Background(), data)
	if err != nil {
		t.Fatalf("unexpected error getting: %v", err)
	}
	if !ok {
		t.Fatal("expected a hit after Put")
	}
	if got.Assembly != "System.Collections" {
		t.Errorf("expected assembly System.Collections, got %q", got.Assembly)
	}
}

func TestPut_OverwritesAnExistingEntryForTheSameContent(t *testing.T) {
	c := openTestCache(t)
	data := []byte(`{"assembly":"A"}`)
	if err := c.Put(context.Background(), data, &manifest.Manifest{Assembly: "A"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := c.Put(context.Background(), data, &manifest.Manifest{Assembly: "A-updated"}); err != nil {
		t.Fatalf("unexpected error on overwrite: %v", err)
	}
	got, ok, err := c.Get(context.Background(), data)
	if err != nil || !ok {
		t.Fatalf("expected a hit, err=%v ok=%v", err, ok)
	}
	if got.Assembly != "A-updated" {
		t.Errorf("expected overwritten assembly A-updated, got %q", got.Assembly)
	}
}

func TestGetOrDecode_DecodesOnceAndCachesTheResult(t *testing.T) {
	c := openTestCache(t)
	data := []byte(`{"assembly":"B"}`)
	calls := 0
	decode := func(d []byte) (*manifest.Manifest, error) {
		calls++
		return manifest.DecodeJSON(d)
	}

	first, err := c.GetOrDecode(context.Background(), data, decode)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := c.GetOrDecode(context.Background(), data, decode)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if calls != 1 {
		t.Errorf("expected decode to run exactly once, ran %d times", calls)
	}
	if first.Assembly != "B" || second.Assembly != "B" {
		t.Errorf("expected both results to carry assembly B, got %+v %+v", first, second)
	}
}

func TestKeyFor_IsDeterministicAcrossCalls(t *testing.T) {
	data := []byte(`{"assembly":"C"}`)
	if keyFor(data) != keyFor(append([]byte{}, data...)) {
		t.Error("expected identical content to produce identical cache keys")
	}
	if keyFor(data) == keyFor([]byte(`{"assembly":"D"}`)) {
		t.Error("expected different content to produce different cache keys")
	}
}
