package api

import (
	"testing"

	"github.com/nutriscope/nutriscope/pkg/scoring"
)

func TestResultCacheEviction(t *testing.T) {
	c := NewResultCache(2)

	c.Put("a", &scoring.Result{TableID: "a"})
	c.Put("b", &scoring.Result{TableID: "b"})
	c.Put("c", &scoring.Result{TableID: "c"})

	if c.Get("a") != nil {
		t.Error("expected oldest entry to be evicted")
	}
	if c.Get("b") == nil || c.Get("c") == nil {
		t.Error("expected recent entries to remain")
	}
}

func TestResultCacheLRUOrder(t *testing.T) {
	c := NewResultCache(2)

	c.Put("a", &scoring.Result{TableID: "a"})
	c.Put("b", &scoring.Result{TableID: "b"})

	// Touch "a" so "b" becomes the eviction candidate
	if c.Get("a") == nil {
		t.Fatal("expected a to be cached")
	}
	c.Put("c", &scoring.Result{TableID: "c"})

	if c.Get("b") != nil {
		t.Error("expected least recently used entry to be evicted")
	}
	if got := c.Get("a"); got == nil || got.TableID != "a" {
		t.Error("expected touched entry to survive eviction")
	}
}

func TestResultCacheMissReturnsNil(t *testing.T) {
	c := NewResultCache(0) // defaults to 20
	if c.Get("missing") != nil {
		t.Error("expected nil for missing entry")
	}
}
