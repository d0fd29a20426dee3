package cache

import (
	"fmt"
	"sync"
	"testing"
	"time"
)

func TestCache_Set_Get_Len(t *testing.T) {
	c := New[string, string]()
	defer c.Close()

	if l := c.Len(); l != 0 {
		t.Errorf("Expected initial length 0, got %d", l)
	}

	c.Set("plugin.dir", "/usr/lib/plugins")
	val, ok := c.Get("plugin.dir")
	if !ok {
		t.Errorf("Expected 'plugin.dir' to be found")
	}
	if val != "/usr/lib/plugins" {
		t.Errorf("Expected value '/usr/lib/plugins', got '%s'", val)
	}
	if l := c.Len(); l != 1 {
		t.Errorf("Expected length 1 after Set, got %d", l)
	}

	if _, ok := c.Get("nonexistent"); ok {
		t.Errorf("Expected 'nonexistent' to not be found")
	}
}

func TestCache_TTL_Expiration(t *testing.T) {
	c := New[string, string](
		WithDefaultTTL[string, string](20 * time.Millisecond),
	)
	defer c.Close()

	c.SetWithTTL("permanent", "stays", 0)
	c.Set("temporary", "expires")

	if _, ok := c.Get("temporary"); !ok {
		t.Errorf("'temporary' should exist immediately after set")
	}

	time.Sleep(30 * time.Millisecond)

	if val, ok := c.Get("temporary"); ok {
		t.Errorf("'temporary' should have expired, but got value: %s", val)
	}
	if _, ok := c.Get("permanent"); !ok {
		t.Errorf("'permanent' has no TTL and should still exist")
	}
}

func TestCache_NegativeTTL_Deletes(t *testing.T) {
	c := New[string, string]()
	defer c.Close()

	c.Set("k", "v")
	c.SetWithTTL("k", "v2", -time.Second)
	if _, ok := c.Get("k"); ok {
		t.Errorf("negative TTL should delete the key")
	}
}

func TestCache_GetOrSet(t *testing.T) {
	c := New[string, int]()
	defer c.Close()

	v, loaded := c.GetOrSet("count", 1)
	if loaded || v != 1 {
		t.Errorf("expected store of 1, got v=%d loaded=%v", v, loaded)
	}
	v, loaded = c.GetOrSet("count", 2)
	if !loaded || v != 1 {
		t.Errorf("expected load of 1, got v=%d loaded=%v", v, loaded)
	}
}

func TestCache_DeleteExpired(t *testing.T) {
	c := New[string, string]()
	defer c.Close()

	c.SetWithTTL("a", "1", 5*time.Millisecond)
	c.SetWithTTL("b", "2", time.Hour)
	time.Sleep(10 * time.Millisecond)

	c.DeleteExpired()
	if l := c.Len(); l != 1 {
		t.Errorf("Expected length 1 after DeleteExpired, got %d", l)
	}
}

func TestCache_Range_And_Clean(t *testing.T) {
	c := New[string, string]()
	defer c.Close()

	for i := 0; i < 5; i++ {
		c.Set(fmt.Sprintf("k%d", i), "v")
	}

	seen := 0
	c.Range(func(key, value string) bool {
		seen++
		return true
	})
	if seen != 5 {
		t.Errorf("Expected Range to visit 5 items, visited %d", seen)
	}

	// Early termination.
	seen = 0
	c.Range(func(key, value string) bool {
		seen++
		return false
	})
	if seen != 1 {
		t.Errorf("Expected Range to stop after 1 item, visited %d", seen)
	}

	c.Clean()
	if l := c.Len(); l != 0 {
		t.Errorf("Expected length 0 after Clean, got %d", l)
	}
}

func TestCache_ConcurrentAccess(t *testing.T) {
	c := New[int, int]()
	defer c.Close()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			c.Set(n, n*2)
			c.Get(n)
		}(i)
	}
	wg.Wait()

	if l := c.Len(); l != 50 {
		t.Errorf("Expected 50 items after concurrent writes, got %d", l)
	}
}
