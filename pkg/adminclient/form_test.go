package adminclient

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
)

// ==================== slug 联动 ====================

func TestFormController_SlugFollowsName(t *testing.T) {
	fc := NewFormController(nil)

	fc.SetName("Fake Shop Warning")
	if got := fc.Form().Slug; got != "fake-shop-warning" {
		t.Fatalf("slug 应跟随名称生成, 实际 %q", got)
	}

	fc.SetName("Trusted Seller")
	if got := fc.Form().Slug; got != "trusted-seller" {
		t.Fatalf("名称变更后 slug 应重新生成, 实际 %q", got)
	}
}

func TestFormController_SlugDetachesOnDirectEdit(t *testing.T) {
	fc := NewFormController(nil)

	fc.SetName("Old Name")
	fc.SetSlug("my-custom-slug")
	if !fc.Form().SlugManuallyEdited {
		t.Fatal("直接编辑 slug 后应置脱离标记")
	}

	// 脱离之后名称编辑不再覆盖 slug
	fc.SetName("Completely New Name")
	if got := fc.Form().Slug; got != "my-custom-slug" {
		t.Fatalf("脱离后 slug 不应再跟随名称, 实际 %q", got)
	}
}

// ==================== 水合 ====================

func TestHydrateMerchant_LegacyKeyFallback(t *testing.T) {
	// 三代键名：seoTitle > metaTitle > seo.title
	raw := map[string]interface{}{
		"name":      "Demo Shop",
		"slug":      "demo-shop",
		"metaTitle": "来自旧字段的标题",
		"seo": map[string]interface{}{
			"title":       "最旧的嵌套标题",
			"description": "嵌套描述",
		},
	}

	form := hydrateMerchant(raw)
	if form.SEOTitle != "来自旧字段的标题" {
		t.Fatalf("应取第一个非空的历史键, 实际 %q", form.SEOTitle)
	}
	if form.SEODescription != "嵌套描述" {
		t.Fatalf("描述应回落到嵌套键, 实际 %q", form.SEODescription)
	}
}

func TestHydrateMerchant_CustomSlugStaysDetached(t *testing.T) {
	form := hydrateMerchant(map[string]interface{}{
		"name": "Demo Shop",
		"slug": "handpicked-slug",
	})
	if !form.SlugManuallyEdited {
		t.Fatal("已保存的自定义 slug 应视为手动编辑过")
	}

	form = hydrateMerchant(map[string]interface{}{
		"name": "Demo Shop",
		"slug": "demo-shop",
	})
	if form.SlugManuallyEdited {
		t.Fatal("与名称派生值一致的 slug 不应视为手动编辑")
	}
}

// ==================== 校验与提交 ====================

func newCountingServer(t *testing.T, requests *int64) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(requests, 1)
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{"merchant": map[string]interface{}{"id": 1}})
	}))
}

func fillValidForm(fc *FormController) {
	fc.SetName("Demo Shop")
	fc.SetField("description", "A merchant under review")
	fc.SetCategory(3)
}

func TestFormController_ValidationBlocksRequest(t *testing.T) {
	var requests int64
	srv := newCountingServer(t, &requests)
	defer srv.Close()

	fc := NewFormController(NewClient(srv.URL))
	fc.SetName("Demo Shop")
	// 缺描述、缺分类、邮箱非法
	fc.SetField("email", "not-an-email")

	err := fc.Submit(context.Background(), ActionSaveDraft, nil)
	if err == nil {
		t.Fatal("校验失败时 Submit 应返回错误")
	}
	if atomic.LoadInt64(&requests) != 0 {
		t.Fatalf("校验失败时不应发出任何请求, 实际发了 %d 次", requests)
	}

	errs := fc.Errors()
	for _, field := range []string{"description", "categoryId", "email"} {
		if errs[field] == "" {
			t.Errorf("字段 %s 应有校验错误: %v", field, errs)
		}
	}
}

func TestFormController_EditClearsFieldError(t *testing.T) {
	fc := NewFormController(nil)
	fc.SetName("Demo Shop")
	fc.Validate()

	if fc.Errors()["description"] == "" {
		t.Fatal("描述为空应有校验错误")
	}

	fc.SetField("description", "filled in")
	if fc.Errors()["description"] != "" {
		t.Fatal("编辑字段应清除该字段的错误")
	}
	// 其他字段的错误保留
	if fc.Errors()["categoryId"] == "" {
		t.Fatal("未编辑的字段错误应保留")
	}
}

func TestFormController_SubmitSuccess(t *testing.T) {
	var requests int64
	srv := newCountingServer(t, &requests)
	defer srv.Close()

	fc := NewFormController(NewClient(srv.URL))
	fillValidForm(fc)

	if err := fc.Submit(context.Background(), ActionPublish, nil); err != nil {
		t.Fatalf("提交失败: %v", err)
	}
	if atomic.LoadInt64(&requests) != 1 {
		t.Fatalf("成功路径恰好发 1 次请求, 实际 %d", requests)
	}
}

func TestFormController_ServerFieldErrorsSurface(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusConflict)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"error":  "validation failed",
			"fields": map[string]string{"slug": "slug 已被占用"},
		})
	}))
	defer srv.Close()

	fc := NewFormController(NewClient(srv.URL))
	fillValidForm(fc)

	if err := fc.Submit(context.Background(), ActionSaveDraft, nil); err == nil {
		t.Fatal("服务端报错时 Submit 应返回错误")
	}
	if got := fc.Errors()["slug"]; got != "slug 已被占用" {
		t.Fatalf("服务端字段错误应落到对应字段, 实际 %v", fc.Errors())
	}
}

func TestFormController_NetworkErrorNoRetry(t *testing.T) {
	var requests int64
	srv := newCountingServer(t, &requests)
	srv.Close() // 直接关掉端口制造网络错误

	fc := NewFormController(NewClient(srv.URL))
	fillValidForm(fc)

	if err := fc.Submit(context.Background(), ActionSaveDraft, nil); err == nil {
		t.Fatal("网络错误时 Submit 应返回错误")
	}
	if fc.Errors()["general"] == "" {
		t.Fatalf("网络错误应给统一的 general 提示, 实际 %v", fc.Errors())
	}
	if atomic.LoadInt64(&requests) != 0 {
		t.Fatal("网络错误不应自动重试")
	}
}

// ==================== 水合请求 ====================

func TestFormController_Hydrate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/merchants/7" {
			t.Errorf("水合请求路径不对: %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{
			"merchant": map[string]interface{}{
				"name":       "Demo Shop",
				"slug":       "demo-shop",
				"categoryId": float64(3),
				"seoTitle":   "现行键标题",
			},
		})
	}))
	defer srv.Close()

	fc := NewFormController(NewClient(srv.URL))
	if err := fc.Hydrate(context.Background(), 7); err != nil {
		t.Fatalf("水合失败: %v", err)
	}

	form := fc.Form()
	if form.ID != 7 || form.Name != "Demo Shop" || form.CategoryID != 3 {
		t.Fatalf("水合结果不对: %+v", form)
	}
	if form.SEOTitle != "现行键标题" {
		t.Fatalf("现行键存在时优先取现行键, 实际 %q", form.SEOTitle)
	}
}
