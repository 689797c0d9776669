package adminclient

import (
	"context"
	"reflect"
	"testing"
	"time"
)

// ==================== 列表状态流转 ====================

func TestListController_EveryTransitionFetchesOnce(t *testing.T) {
	fetches := 0
	var lastParams map[string]string
	ctl := NewListController(func(ctx context.Context, params map[string]string) error {
		fetches++
		lastParams = params
		return nil
	})

	if err := ctl.Load(context.Background()); err != nil {
		t.Fatalf("初始加载失败: %v", err)
	}
	if fetches != 1 {
		t.Fatalf("初始加载应触发 1 次请求, 实际 %d", fetches)
	}

	if err := ctl.SetPage(context.Background(), 3); err != nil {
		t.Fatalf("翻页失败: %v", err)
	}
	if fetches != 2 {
		t.Fatalf("翻页应再触发 1 次请求, 实际共 %d", fetches)
	}
	if lastParams["page"] != "3" {
		t.Fatalf("翻页后 page 参数应为 3, 实际 %s", lastParams["page"])
	}

	if err := ctl.SetStatus(context.Background(), "pending"); err != nil {
		t.Fatalf("切换状态失败: %v", err)
	}
	if fetches != 3 {
		t.Fatalf("切换状态应再触发 1 次请求, 实际共 %d", fetches)
	}
	// 切换筛选必须回到第一页
	if got := ctl.State().Page; got != 1 {
		t.Fatalf("切换筛选后应回到第 1 页, 实际第 %d 页", got)
	}
	if lastParams["page"] != "1" || lastParams["status"] != "pending" {
		t.Fatalf("请求参数不对: %v", lastParams)
	}
}

func TestListController_SearchAndCategoryResetPage(t *testing.T) {
	ctl := NewListController(func(ctx context.Context, params map[string]string) error {
		return nil
	})

	ctl.SetPage(context.Background(), 7)
	ctl.SetSearch(context.Background(), "mug")
	if got := ctl.State().Page; got != 1 {
		t.Fatalf("搜索后应回到第 1 页, 实际第 %d 页", got)
	}

	ctl.SetPage(context.Background(), 4)
	ctl.SetCategory(context.Background(), 9)
	st := ctl.State()
	if st.Page != 1 {
		t.Fatalf("切换分类后应回到第 1 页, 实际第 %d 页", st.Page)
	}
	// 已有的搜索词不受翻页/分类影响
	if st.Search != "mug" {
		t.Fatalf("搜索词不应被清掉, 实际 %q", st.Search)
	}
}

func TestListState_ParamsOmitZero(t *testing.T) {
	params := NewListState().Params()
	if params["page"] != "1" {
		t.Fatalf("page 恒定存在, 实际 %v", params)
	}
	if _, ok := params["status"]; ok {
		t.Fatalf("零值 status 不应出现在参数里: %v", params)
	}

	params = NewListState().WithStatus("approved").WithCategory(3).Params()
	if params["status"] != "approved" || params["categoryId"] != "3" {
		t.Fatalf("参数映射不对: %v", params)
	}
}

// ==================== 分页窗口 ====================

func TestPageWindow(t *testing.T) {
	cases := []struct {
		total   int
		current int
		want    []int
	}{
		{0, 1, nil},
		{1, 1, []int{1}},
		{3, 2, []int{1, 2, 3}},
		{5, 5, []int{1, 2, 3, 4, 5}},
		{12, 1, []int{1, 2, 3, 4, 5}},
		{12, 2, []int{1, 2, 3, 4, 5}},
		{12, 3, []int{1, 2, 3, 4, 5}},
		{12, 6, []int{4, 5, 6, 7, 8}},
		{12, 10, []int{8, 9, 10, 11, 12}},
		{12, 12, []int{8, 9, 10, 11, 12}},
	}

	for _, c := range cases {
		got := PageWindow(c.total, c.current)
		if !reflect.DeepEqual(got, c.want) {
			t.Errorf("PageWindow(%d, %d) = %v, 期望 %v", c.total, c.current, got, c.want)
		}
	}
}

// ==================== 多选 ====================

func TestSelection_Toggle(t *testing.T) {
	sel := NewSelection()
	sel.Toggle("5")
	if !sel.Has("5") {
		t.Fatal("选中后 Has 应为 true")
	}
	sel.Toggle("5")
	if sel.Has("5") {
		t.Fatal("再次切换应取消选中")
	}
}

func TestSelection_ToggleAll(t *testing.T) {
	visible := []string{"1", "2", "3"}

	sel := NewSelection()
	sel.Toggle("2")

	// 部分选中 -> 全选当前可见集
	sel.ToggleAll(visible)
	if sel.Len() != 3 {
		t.Fatalf("全选后应有 3 条, 实际 %d", sel.Len())
	}
	if got := sel.IDs(); !reflect.DeepEqual(got, []string{"1", "2", "3"}) {
		t.Fatalf("全选结果不对: %v", got)
	}

	// 全部选中 -> 清空
	sel.ToggleAll(visible)
	if sel.Len() != 0 {
		t.Fatalf("再次全选应清空, 实际剩 %d 条", sel.Len())
	}
}

func TestSelection_ToggleAllReplacesStale(t *testing.T) {
	sel := NewSelection()
	sel.Toggle("99") // 翻页前留下的旧选中项

	sel.ToggleAll([]string{"1", "2"})
	if sel.Has("99") {
		t.Fatal("全选应先清掉不可见的旧选中项")
	}
	if sel.Len() != 2 {
		t.Fatalf("全选后应只有当前可见的 2 条, 实际 %d", sel.Len())
	}
}

// ==================== 页内过滤与排序 ====================

func TestFilterItems(t *testing.T) {
	items := []PageItem{
		{ID: "1", Title: "Fake Shop Warning", Reporter: "alice"},
		{ID: "2", Title: "正常评论", Content: "很好用", Reporter: "bob"},
		{ID: "3", Title: "spam link", Content: "check FAKE deals", Reporter: "carol"},
	}

	got := FilterItems(items, "fake")
	if len(got) != 2 {
		t.Fatalf("大小写不敏感匹配应命中 2 条, 实际 %d", len(got))
	}

	got = FilterItems(items, "bob")
	if len(got) != 1 || got[0].ID != "2" {
		t.Fatalf("按举报人过滤结果不对: %v", got)
	}

	got = FilterItems(items, "")
	if len(got) != 3 {
		t.Fatalf("空关键词应返回全部, 实际 %d", len(got))
	}
}

func TestSortItems(t *testing.T) {
	base := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	items := []PageItem{
		{ID: "a", CreatedAt: base.Add(2 * time.Hour), CommentCount: 1},
		{ID: "b", CreatedAt: base, CommentCount: 9},
		{ID: "c", CreatedAt: base.Add(time.Hour), CommentCount: 5},
	}

	SortItems(items, "comments", true)
	if items[0].ID != "b" || items[2].ID != "a" {
		t.Fatalf("按评论数降序不对: %v %v %v", items[0].ID, items[1].ID, items[2].ID)
	}

	SortItems(items, "created_at", false)
	if items[0].ID != "b" || items[2].ID != "a" {
		t.Fatalf("按时间升序不对: %v %v %v", items[0].ID, items[1].ID, items[2].ID)
	}
}

func TestSortItemsStableOnEqualKeys(t *testing.T) {
	// 评论数相同的元素在降序下也要保持原始相对顺序
	items := []PageItem{
		{ID: "a", CommentCount: 3},
		{ID: "b", CommentCount: 3},
		{ID: "c", CommentCount: 7},
		{ID: "d", CommentCount: 3},
	}

	SortItems(items, "comments", true)
	if items[0].ID != "c" {
		t.Fatalf("最高评论数应排首位, 实际 %s", items[0].ID)
	}
	if items[1].ID != "a" || items[2].ID != "b" || items[3].ID != "d" {
		t.Fatalf("相等键应保持稳定顺序: %s %s %s", items[1].ID, items[2].ID, items[3].ID)
	}
}
