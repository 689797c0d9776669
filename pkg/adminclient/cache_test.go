package adminclient

import (
	"testing"
	"time"
)

func TestListCache_PutGet(t *testing.T) {
	cache := NewListCache(5 * time.Minute)
	key := CacheKey(map[string]string{"page": "1", "status": "pending"})

	cache.Put(key, CachedPage{
		Items: []PageItem{{ID: "1", Title: "a"}, {ID: "2", Title: "b"}},
		Total: 12,
	})

	page, ok := cache.Get(key)
	if !ok {
		t.Fatal("刚写入的页应能命中")
	}
	if len(page.Items) != 2 || page.Total != 12 {
		t.Fatalf("缓存内容不对: %+v", page)
	}

	if _, ok := cache.Get(CacheKey(map[string]string{"page": "2"})); ok {
		t.Fatal("未写入的键不应命中")
	}
}

func TestListCache_TTLClamped(t *testing.T) {
	if c := NewListCache(time.Second); c.ttl != MinCacheTTL {
		t.Fatalf("过小的 TTL 应收敛到下限, 实际 %v", c.ttl)
	}
	if c := NewListCache(time.Hour); c.ttl != MaxCacheTTL {
		t.Fatalf("过大的 TTL 应收敛到上限, 实际 %v", c.ttl)
	}
}

func TestCacheKey_Stable(t *testing.T) {
	a := CacheKey(map[string]string{"page": "1", "status": "pending"})
	b := CacheKey(map[string]string{"status": "pending", "page": "1"})
	if a != b {
		t.Fatalf("同一组参数应生成同一个键: %q vs %q", a, b)
	}
}

func TestListCache_RemoveID(t *testing.T) {
	cache := NewListCache(5 * time.Minute)
	cache.Put("p1", CachedPage{
		Items: []PageItem{{ID: "1"}, {ID: "2"}, {ID: "3"}},
		Total: 30,
	})
	cache.Put("p2", CachedPage{
		Items: []PageItem{{ID: "2"}, {ID: "4"}},
		Total: 30,
	})

	// 乐观删除：所有缓存页里的该条目立即消失
	cache.RemoveID("2")

	p1, _ := cache.Get("p1")
	if len(p1.Items) != 2 || p1.Total != 29 {
		t.Fatalf("p1 删除后不对: %+v", p1)
	}
	for _, it := range p1.Items {
		if it.ID == "2" {
			t.Fatal("条目 2 应已从 p1 移除")
		}
	}

	p2, _ := cache.Get("p2")
	if len(p2.Items) != 1 || p2.Items[0].ID != "4" {
		t.Fatalf("p2 删除后不对: %+v", p2)
	}
}

func TestListCache_Invalidate(t *testing.T) {
	cache := NewListCache(5 * time.Minute)
	cache.Put("a", CachedPage{Total: 1})
	cache.Put("b", CachedPage{Total: 2})

	cache.Invalidate()
	if cache.Len() != 0 {
		t.Fatalf("整体失效后应为空, 实际 %d", cache.Len())
	}
	if _, ok := cache.Get("a"); ok {
		t.Fatal("失效后不应命中")
	}
}
