package cache

import (
	"testing"
	"time"
)

func TestNewCache(t *testing.T) {
	c := NewCache()
	if c == nil {
		t.Fatal("NewCache returned nil")
	}
}

func TestGetInstance(t *testing.T) {
	inst := GetInstance()
	if inst == nil {
		t.Fatal("GetInstance returned nil")
	}
	if GetInstance() != inst {
		t.Error("GetInstance should return same instance")
	}
}

func TestSet_Get(t *testing.T) {
	c := NewCache()
	c.Set("k", "val", 0, nil)
	got, ok := c.Get("k")
	if !ok {
		t.Fatal("Get: want true")
	}
	if got != "val" {
		t.Errorf("Get = %v, want val", got)
	}
}

func TestGet_Missing(t *testing.T) {
	c := NewCache()
	if _, ok := c.Get("nonexistent-key-xyz"); ok {
		t.Error("Get missing key: want false")
	}
}

func TestGet_Expired(t *testing.T) {
	c := NewCache()
	c.m.Store("old", cacheItem{Value: 1, ExpiresAt: time.Now().Add(-time.Second).UnixNano()})
	if _, ok := c.Get("old"); ok {
		t.Error("expired entry should not be returned")
	}
	if _, stored := c.m.Load("old"); stored {
		t.Error("expired entry should be evicted on read")
	}
}

func TestGetOrDefault(t *testing.T) {
	c := NewCache()
	def := "default"
	if got := c.GetOrDefault("k", def); got != def {
		t.Errorf("GetOrDefault missing = %v, want %v", got, def)
	}
	c.Set("k", "stored", 0, nil)
	if got := c.GetOrDefault("k", def); got != "stored" {
		t.Errorf("GetOrDefault found = %v, want stored", got)
	}
}

func TestDeleteMany(t *testing.T) {
	c := NewCache()
	c.Set("dm1", 1, 0, nil)
	c.Set("dm2", 2, 0, nil)
	c.DeleteMany("dm1", "dm2")
	if _, ok := c.Get("dm1"); ok {
		t.Error("DeleteMany: dm1 should be gone")
	}
	if _, ok := c.Get("dm2"); ok {
		t.Error("DeleteMany: dm2 should be gone")
	}
}

func TestSetN_GetN_DeleteN(t *testing.T) {
	c := NewCache()
	c.SetN([]interface{}{"collections", "p1", "p2"}, "composite-val", 0, nil)
	got, ok := c.GetN("collections", "p1", "p2")
	if !ok || got != "composite-val" {
		t.Errorf("GetN = %v, %v; want composite-val, true", got, ok)
	}
	c.DeleteN("collections", "p1", "p2")
	if _, ok = c.GetN("collections", "p1", "p2"); ok {
		t.Error("DeleteN: key should be gone")
	}
}

func TestDeleteByTag(t *testing.T) {
	c := NewCache()
	c.Set("a", 1, 0, []string{"catalog"})
	c.Set("b", 2, 0, []string{"catalog"})
	c.Set("c", 3, 0, []string{"other"})

	if keys := c.GetKeysByTag("catalog"); len(keys) != 2 {
		t.Fatalf("GetKeysByTag = %d keys, want 2", len(keys))
	}
	c.DeleteByTag("catalog")
	if _, ok := c.Get("a"); ok {
		t.Error("a should be flushed")
	}
	if _, ok := c.Get("b"); ok {
		t.Error("b should be flushed")
	}
	if _, ok := c.Get("c"); !ok {
		t.Error("c should survive")
	}
}
