package cache

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestKey_Deterministic(t *testing.T) {
	a := Key("gpt-4o-mini", 0.7, "write a post about coffee")
	b := Key("gpt-4o-mini", 0.7, "write a post about coffee")
	if a != b {
		t.Errorf("same inputs must produce the same key: %s vs %s", a, b)
	}
	if !strings.HasPrefix(a, "inkwell:v1:") {
		t.Errorf("key missing version prefix: %s", a)
	}
}

func TestKey_SensitiveToInputs(t *testing.T) {
	base := Key("gpt-4o-mini", 0.7, "prompt")
	if Key("gpt-4o", 0.7, "prompt") == base {
		t.Error("different model must change the key")
	}
	if Key("gpt-4o-mini", 0.8, "prompt") == base {
		t.Error("different temperature must change the key")
	}
	if Key("gpt-4o-mini", 0.7, "other prompt") == base {
		t.Error("different prompt must change the key")
	}
}

func TestMemoryCache_SetGet(t *testing.T) {
	c := NewMemoryCache(time.Minute, time.Minute)

	if err := c.Set("k", []byte("value"), 0); err != nil {
		t.Fatalf("set: %v", err)
	}
	got, found := c.Get("k")
	if !found || !bytes.Equal(got, []byte("value")) {
		t.Errorf("expected hit with %q, got %q (found=%v)", "value", got, found)
	}

	if _, found := c.Get("missing"); found {
		t.Error("unknown key must miss")
	}
}

func TestMemoryCache_TTLExpiry(t *testing.T) {
	c := NewMemoryCache(time.Minute, time.Minute)

	if err := c.Set("k", []byte("value"), 10*time.Millisecond); err != nil {
		t.Fatalf("set: %v", err)
	}
	time.Sleep(30 * time.Millisecond)

	if _, found := c.Get("k"); found {
		t.Error("entry must expire after its TTL")
	}
}

func TestMemoryCache_DeleteAndClear(t *testing.T) {
	c := NewMemoryCache(time.Minute, time.Minute)
	c.Set("a", []byte("1"), 0)
	c.Set("b", []byte("2"), 0)

	if err := c.Delete("a"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, found := c.Get("a"); found {
		t.Error("deleted key must miss")
	}

	if err := c.Clear(); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if _, found := c.Get("b"); found {
		t.Error("cleared cache must miss")
	}
}

func TestDiskCache_SetGet(t *testing.T) {
	c := NewDiskCache(t.TempDir(), time.Hour)

	key := Key("gpt-4o-mini", 0.7, "prompt")
	if err := c.Set(key, []byte("cached response"), 0); err != nil {
		t.Fatalf("set: %v", err)
	}

	got, found := c.Get(key)
	if !found || !bytes.Equal(got, []byte("cached response")) {
		t.Errorf("expected hit, got %q (found=%v)", got, found)
	}
}

func TestDiskCache_SurvivesNewInstance(t *testing.T) {
	dir := t.TempDir()

	first := NewDiskCache(dir, time.Hour)
	if err := first.Set("k", []byte("persisted"), 0); err != nil {
		t.Fatalf("set: %v", err)
	}

	second := NewDiskCache(dir, time.Hour)
	got, found := second.Get("k")
	if !found || !bytes.Equal(got, []byte("persisted")) {
		t.Errorf("expected entry to survive restart, got %q (found=%v)", got, found)
	}
}

func TestDiskCache_ExpiredEntryPruned(t *testing.T) {
	dir := t.TempDir()
	c := NewDiskCache(dir, time.Hour)

	if err := c.Set("k", []byte("stale"), -time.Minute); err != nil {
		t.Fatalf("set: %v", err)
	}
	if _, found := c.Get("k"); found {
		t.Error("expired entry must miss")
	}
	if _, err := os.Stat(filepath.Join(dir, "k.json")); !os.IsNotExist(err) {
		t.Error("expired entry must be removed from disk")
	}
}

func TestDiskCache_CorruptEntryMisses(t *testing.T) {
	dir := t.TempDir()
	c := NewDiskCache(dir, time.Hour)

	if err := os.WriteFile(filepath.Join(dir, "k.json"), []byte("not json"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, found := c.Get("k"); found {
		t.Error("corrupt entry must miss")
	}
}

func TestDiskCache_Clear(t *testing.T) {
	dir := t.TempDir()
	c := NewDiskCache(dir, time.Hour)
	c.Set("a", []byte("1"), 0)
	c.Set("b", []byte("2"), 0)

	if err := c.Clear(); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if _, found := c.Get("a"); found {
		t.Error("cleared cache must miss")
	}
}

func TestLayeredCache_SetWritesBothLayers(t *testing.T) {
	dir := t.TempDir()
	c := NewLayeredCache(time.Minute, dir, time.Hour)

	if err := c.Set("k", []byte("value"), 0); err != nil {
		t.Fatalf("set: %v", err)
	}

	if _, found := c.Get("k"); !found {
		t.Error("expected layered hit")
	}
	disk := NewDiskCache(dir, time.Hour)
	if _, found := disk.Get("k"); !found {
		t.Error("expected entry in disk layer")
	}
}

func TestLayeredCache_DiskHitPromotedToMemory(t *testing.T) {
	dir := t.TempDir()

	// Seed disk only, then read through a fresh layered cache
	disk := NewDiskCache(dir, time.Hour)
	if err := disk.Set("k", []byte("from disk"), 0); err != nil {
		t.Fatalf("seed: %v", err)
	}

	c := NewLayeredCache(time.Minute, dir, time.Hour)
	got, found := c.Get("k")
	if !found || !bytes.Equal(got, []byte("from disk")) {
		t.Fatalf("expected disk hit, got %q (found=%v)", got, found)
	}

	// Removing the disk entry must not evict the promoted copy
	if err := disk.Delete("k"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, found := c.Get("k"); !found {
		t.Error("expected promoted entry to serve from memory")
	}
}

func TestLayeredCache_DeleteRemovesBothLayers(t *testing.T) {
	dir := t.TempDir()
	c := NewLayeredCache(time.Minute, dir, time.Hour)
	c.Set("k", []byte("value"), 0)

	if err := c.Delete("k"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, found := c.Get("k"); found {
		t.Error("deleted key must miss in both layers")
	}
}
