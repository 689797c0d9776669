package adminclient

import (
	"sort"
	"strings"
	"sync"
	"time"
)

// ==================== 列表页缓存 ====================

// 软过期区间：过期后下次读取返回未命中，由调用方重新拉取
const (
	MinCacheTTL = 2 * time.Minute
	MaxCacheTTL = 10 * time.Minute
)

// CachedPage 一页列表数据
type CachedPage struct {
	Items []PageItem
	Total int64
}

type cacheEntry struct {
	page       CachedPage
	expiration int64
}

// ListCache 按查询参数缓存列表页
// 删除走乐观更新：先从缓存页剔除条目，再后台整体失效
type ListCache struct {
	entries sync.Map
	ttl     time.Duration
}

// NewListCache ttl 超出区间时收敛到边界
func NewListCache(ttl time.Duration) *ListCache {
	if ttl < MinCacheTTL {
		ttl = MinCacheTTL
	}
	if ttl > MaxCacheTTL {
		ttl = MaxCacheTTL
	}
	return &ListCache{ttl: ttl}
}

// CacheKey 由查询参数生成稳定键
func CacheKey(params map[string]string) string {
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	for i, k := range keys {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(k)
		b.WriteByte('=')
		b.WriteString(params[k])
	}
	return b.String()
}

// Put 写入一页
func (c *ListCache) Put(key string, page CachedPage) {
	c.entries.Store(key, cacheEntry{
		page:       page,
		expiration: time.Now().Add(c.ttl).UnixNano(),
	})
}

// Get 读取一页，过期条目惰性删除
func (c *ListCache) Get(key string) (CachedPage, bool) {
	v, ok := c.entries.Load(key)
	if !ok {
		return CachedPage{}, false
	}
	entry := v.(cacheEntry)
	if time.Now().UnixNano() > entry.expiration {
		c.entries.Delete(key)
		return CachedPage{}, false
	}
	return entry.page, true
}

// RemoveID 乐观更新：从所有缓存页剔除指定条目并扣减总数
// 不等服务端确认，删除请求失败时调用方应 Invalidate 回源
func (c *ListCache) RemoveID(id string) {
	c.entries.Range(func(key, v interface{}) bool {
		entry := v.(cacheEntry)
		items := entry.page.Items
		for i, item := range items {
			if item.ID == id {
				entry.page.Items = append(items[:i:i], items[i+1:]...)
				if entry.page.Total > 0 {
					entry.page.Total--
				}
				c.entries.Store(key, entry)
				break
			}
		}
		return true
	})
}

// Invalidate 整体失效，下一次读取全部未命中
func (c *ListCache) Invalidate() {
	c.entries.Range(func(key, _ interface{}) bool {
		c.entries.Delete(key)
		return true
	})
}

// InvalidateAsync 后台失效，不阻塞交互路径
func (c *ListCache) InvalidateAsync() {
	go c.Invalidate()
}

// Len 当前缓存页数，含未清理的过期条目
func (c *ListCache) Len() int {
	n := 0
	c.entries.Range(func(_, _ interface{}) bool {
		n++
		return true
	})
	return n
}
