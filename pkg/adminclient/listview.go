package adminclient

import (
	"context"
	"sort"
	"strconv"
	"strings"
	"time"
)

// ==================== 列表页状态 ====================

// ListState 列表页的显式状态容器
// 过滤/搜索变更把页码重置为 1，翻页不重置，这条规则是显式迁移而非副作用
type ListState struct {
	Page       int
	Status     string
	Search     string
	CategoryID int64
}

// NewListState 初始状态：第一页，无过滤
func NewListState() ListState {
	return ListState{Page: 1}
}

// WithPage 翻页，不影响过滤条件
func (s ListState) WithPage(page int) ListState {
	if page < 1 {
		page = 1
	}
	s.Page = page
	return s
}

// WithStatus 切换状态过滤，页码重置为 1
func (s ListState) WithStatus(status string) ListState {
	s.Status = status
	s.Page = 1
	return s
}

// WithSearch 修改搜索词，页码重置为 1
func (s ListState) WithSearch(search string) ListState {
	s.Search = search
	s.Page = 1
	return s
}

// WithCategory 切换分类过滤，页码重置为 1
func (s ListState) WithCategory(categoryID int64) ListState {
	s.CategoryID = categoryID
	s.Page = 1
	return s
}

// Params 转为查询参数，零值字段不传
func (s ListState) Params() map[string]string {
	params := map[string]string{
		"page": strconv.Itoa(s.Page),
	}
	if s.Status != "" {
		params["status"] = s.Status
	}
	if s.Search != "" {
		params["search"] = s.Search
	}
	if s.CategoryID > 0 {
		params["categoryId"] = strconv.FormatInt(s.CategoryID, 10)
	}
	return params
}

// ==================== 列表控制器 ====================

// FetchFunc 按当前参数取一页数据
type FetchFunc func(ctx context.Context, params map[string]string) error

// ListController 持有状态并保证每次状态迁移恰好触发一次拉取
type ListController struct {
	state ListState
	fetch FetchFunc
}

// NewListController 创建控制器，Load 之前不发请求
func NewListController(fetch FetchFunc) *ListController {
	return &ListController{
		state: NewListState(),
		fetch: fetch,
	}
}

// State 当前状态快照
func (c *ListController) State() ListState {
	return c.state
}

// Load 按当前状态拉取（挂载时调用一次）
func (c *ListController) Load(ctx context.Context) error {
	return c.fetch(ctx, c.state.Params())
}

// SetPage 翻页并拉取
func (c *ListController) SetPage(ctx context.Context, page int) error {
	c.state = c.state.WithPage(page)
	return c.fetch(ctx, c.state.Params())
}

// SetStatus 切换状态过滤并拉取
func (c *ListController) SetStatus(ctx context.Context, status string) error {
	c.state = c.state.WithStatus(status)
	return c.fetch(ctx, c.state.Params())
}

// SetSearch 修改搜索词并拉取
func (c *ListController) SetSearch(ctx context.Context, search string) error {
	c.state = c.state.WithSearch(search)
	return c.fetch(ctx, c.state.Params())
}

// SetCategory 切换分类过滤并拉取
func (c *ListController) SetCategory(ctx context.Context, categoryID int64) error {
	c.state = c.state.WithCategory(categoryID)
	return c.fetch(ctx, c.state.Params())
}

// ==================== 分页窗口 ====================

// PageWindow 计算页码按钮窗口
// 总页数 <= 5 时全部显示；否则以当前页为中心开 5 页窗口，
// 起点夹在 [1, totalPages-4] 内
func PageWindow(totalPages, currentPage int) []int {
	if totalPages <= 0 {
		return nil
	}
	if totalPages <= 5 {
		pages := make([]int, totalPages)
		for i := range pages {
			pages[i] = i + 1
		}
		return pages
	}

	start := currentPage - 2
	if start < 1 {
		start = 1
	}
	if start > totalPages-4 {
		start = totalPages - 4
	}

	pages := make([]int, 5)
	for i := range pages {
		pages[i] = start + i
	}
	return pages
}

// ==================== 勾选管理 ====================

// Selection 复选框选择集
type Selection map[string]struct{}

// NewSelection 创建空选择集
func NewSelection() Selection {
	return make(Selection)
}

// Toggle 切换单条
func (s Selection) Toggle(id string) {
	if _, ok := s[id]; ok {
		delete(s, id)
	} else {
		s[id] = struct{}{}
	}
}

// Has 是否已选
func (s Selection) Has(id string) bool {
	_, ok := s[id]
	return ok
}

// ToggleAll 全选开关：在"恰好当前可见集合"与空集之间切换
// 只作用于本页可见行，与跨页总数无关
func (s Selection) ToggleAll(visibleIDs []string) {
	if s.allSelected(visibleIDs) {
		for k := range s {
			delete(s, k)
		}
		return
	}
	for k := range s {
		delete(s, k)
	}
	for _, id := range visibleIDs {
		s[id] = struct{}{}
	}
}

func (s Selection) allSelected(visibleIDs []string) bool {
	if len(s) != len(visibleIDs) {
		return false
	}
	for _, id := range visibleIDs {
		if _, ok := s[id]; !ok {
			return false
		}
	}
	return true
}

// IDs 已选 id 列表（排序后返回，便于测试与稳定请求顺序）
func (s Selection) IDs() []string {
	ids := make([]string, 0, len(s))
	for id := range s {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Len 已选数量
func (s Selection) Len() int {
	return len(s)
}

// ==================== 页内后过滤 ====================

// PageItem 后过滤/排序操作的行视图
// 只覆盖已拉取的当前页，过滤结果只会小于等于页大小
type PageItem struct {
	ID           string
	Title        string
	Content      string
	Reporter     string
	CreatedAt    time.Time
	CommentCount int
}

// FilterItems 子串匹配过滤（标题/内容/举报人，大小写不敏感）
func FilterItems(items []PageItem, keyword string) []PageItem {
	if keyword == "" {
		return items
	}
	kw := strings.ToLower(keyword)
	out := make([]PageItem, 0, len(items))
	for _, it := range items {
		if strings.Contains(strings.ToLower(it.Title), kw) ||
			strings.Contains(strings.ToLower(it.Content), kw) ||
			strings.Contains(strings.ToLower(it.Reporter), kw) {
			out = append(out, it)
		}
	}
	return out
}

// SortItems 页内排序，key: created_at | comments；desc 为逆序
func SortItems(items []PageItem, key string, desc bool) {
	sort.SliceStable(items, func(i, j int) bool {
		// 逆序交换操作数而不是取反，相等元素保持稳定顺序
		a, b := items[i], items[j]
		if desc {
			a, b = b, a
		}
		switch key {
		case "comments":
			return a.CommentCount < b.CommentCount
		default:
			return a.CreatedAt.Before(b.CreatedAt)
		}
	})
}
