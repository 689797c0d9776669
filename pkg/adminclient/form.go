package adminclient

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/gosimple/slug"
)

// ==================== 表单控制器 ====================

// MerchantForm 商家表单的规范化本地状态
// 服务端可能用多个历史键名暴露同一语义字段，水合时按固定顺序取第一个非空值
type MerchantForm struct {
	ID          int64
	Name        string
	Slug        string
	Description string
	CategoryID  int64
	Email       string
	Phone       string
	Website     string
	Address     string

	SEOTitle       string
	SEODescription string

	// slug 一旦被直接编辑就脱离 name 驱动的自动生成
	SlugManuallyEdited bool
}

// FormController 创建/编辑页控制器
// 校验失败绝不发请求；同一时刻最多一个提交在途
type FormController struct {
	client *Client

	mu           sync.Mutex
	form         MerchantForm
	errors       map[string]string
	isSubmitting bool
}

// NewFormController 新建空表单
func NewFormController(client *Client) *FormController {
	return &FormController{
		client: client,
		errors: make(map[string]string),
	}
}

// Form 当前表单快照
func (fc *FormController) Form() MerchantForm {
	fc.mu.Lock()
	defer fc.mu.Unlock()
	return fc.form
}

// Errors 当前错误快照
func (fc *FormController) Errors() map[string]string {
	fc.mu.Lock()
	defer fc.mu.Unlock()
	out := make(map[string]string, len(fc.errors))
	for k, v := range fc.errors {
		out[k] = v
	}
	return out
}

// ==================== 水合 ====================

// Hydrate 编辑模式：按 id 拉取并映射到规范化本地形态
func (fc *FormController) Hydrate(ctx context.Context, id int64) error {
	result := fc.client.Get(ctx, fmt.Sprintf("/api/merchants/%d", id), nil)
	if result.Err != nil {
		return result.Err
	}

	var envelope struct {
		Merchant json.RawMessage `json:"merchant"`
	}
	if err := json.Unmarshal(result.Data, &envelope); err != nil {
		return err
	}

	var raw map[string]interface{}
	if err := json.Unmarshal(envelope.Merchant, &raw); err != nil {
		return err
	}

	fc.mu.Lock()
	defer fc.mu.Unlock()
	fc.form = hydrateMerchant(raw)
	fc.form.ID = id
	fc.errors = make(map[string]string)
	return nil
}

// hydrateMerchant 把服务端形态映射为规范化本地形态
// SEO 标题历史上出现过 seoTitle / metaTitle / seo.title 三种键，按此顺序取第一个非空
func hydrateMerchant(raw map[string]interface{}) MerchantForm {
	form := MerchantForm{
		Name:        rawString(raw, "name"),
		Slug:        rawString(raw, "slug"),
		Description: rawString(raw, "description"),
		CategoryID:  rawInt64(raw, "categoryId"),
		Email:       rawString(raw, "email"),
		Phone:       rawString(raw, "phone"),
		Website:     rawString(raw, "website"),
		Address:     rawString(raw, "address"),
	}

	form.SEOTitle = firstNonEmpty(
		rawString(raw, "seoTitle"),
		rawString(raw, "metaTitle"),
		nestedString(raw, "seo", "title"),
	)
	form.SEODescription = firstNonEmpty(
		rawString(raw, "seoDescription"),
		rawString(raw, "metaDescription"),
		nestedString(raw, "seo", "description"),
	)

	// 已保存的 slug 视为既成事实，不再跟随 name 重新生成
	if form.Slug != "" {
		form.SlugManuallyEdited = form.Slug != slug.Make(form.Name)
	}
	return form
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func rawString(raw map[string]interface{}, key string) string {
	if v, ok := raw[key].(string); ok {
		return v
	}
	return ""
}

func rawInt64(raw map[string]interface{}, key string) int64 {
	if v, ok := raw[key].(float64); ok {
		return int64(v)
	}
	return 0
}

func nestedString(raw map[string]interface{}, outer, inner string) string {
	if m, ok := raw[outer].(map[string]interface{}); ok {
		return rawString(m, inner)
	}
	return ""
}

// ==================== 编辑 ====================

// SetName 编辑名称；slug 未脱离时同步重新生成
func (fc *FormController) SetName(name string) {
	fc.mu.Lock()
	defer fc.mu.Unlock()
	fc.form.Name = name
	delete(fc.errors, "name")
	if !fc.form.SlugManuallyEdited {
		fc.form.Slug = slug.Make(name)
		delete(fc.errors, "slug")
	}
}

// SetSlug 直接编辑 slug：置脱离标记，此后 name 编辑不再影响 slug
func (fc *FormController) SetSlug(value string) {
	fc.mu.Lock()
	defer fc.mu.Unlock()
	fc.form.Slug = value
	fc.form.SlugManuallyEdited = true
	delete(fc.errors, "slug")
}

// SetField 编辑其余字段，清除该字段错误
func (fc *FormController) SetField(field, value string) {
	fc.mu.Lock()
	defer fc.mu.Unlock()
	switch field {
	case "description":
		fc.form.Description = value
	case "email":
		fc.form.Email = value
	case "phone":
		fc.form.Phone = value
	case "website":
		fc.form.Website = value
	case "address":
		fc.form.Address = value
	case "seoTitle":
		fc.form.SEOTitle = value
	case "seoDescription":
		fc.form.SEODescription = value
	}
	delete(fc.errors, field)
}

// SetCategory 选择分类
func (fc *FormController) SetCategory(id int64) {
	fc.mu.Lock()
	defer fc.mu.Unlock()
	fc.form.CategoryID = id
	delete(fc.errors, "categoryId")
}

// ==================== 校验 ====================

// Validate 与服务端一致的提交前校验
// 失败时填充按字段的错误表并返回 false，提交被拦截
func (fc *FormController) Validate() bool {
	fc.mu.Lock()
	defer fc.mu.Unlock()
	return fc.validateLocked()
}

func (fc *FormController) validateLocked() bool {
	errs := make(map[string]string)

	if strings.TrimSpace(fc.form.Name) == "" {
		errs["name"] = "名称不能为空"
	}
	if strings.TrimSpace(fc.form.Slug) == "" {
		errs["slug"] = "slug 不能为空"
	} else if !slug.IsSlug(fc.form.Slug) {
		errs["slug"] = "slug 格式不合法"
	}
	if strings.TrimSpace(fc.form.Description) == "" {
		errs["description"] = "描述不能为空"
	}
	if fc.form.CategoryID <= 0 {
		errs["categoryId"] = "请选择分类"
	}
	if fc.form.Email != "" && !strings.Contains(fc.form.Email, "@") {
		errs["email"] = "邮箱格式不正确"
	}
	if fc.form.Website != "" && !strings.HasPrefix(fc.form.Website, "http") {
		errs["website"] = "网址需以 http 开头"
	}

	if len(errs) > 0 {
		fc.errors = errs
		return false
	}
	fc.errors = make(map[string]string)
	return true
}

// ==================== 提交 ====================

// 提交动作
const (
	ActionSaveDraft = "save_draft"
	ActionPublish   = "publish"
)

// ErrSubmitInFlight 已有提交在途
var ErrSubmitInFlight = errors.New("submit already in flight")

// Submit 提交表单
// 校验失败不发请求；API 错误进 errors["general"]，网络错误给统一文案，不自动重试
func (fc *FormController) Submit(ctx context.Context, action string, payload *MultipartPayload) error {
	fc.mu.Lock()
	if fc.isSubmitting {
		fc.mu.Unlock()
		return ErrSubmitInFlight
	}
	if !fc.validateLocked() {
		fc.mu.Unlock()
		return errors.New("validation failed")
	}
	fc.isSubmitting = true
	form := fc.form
	fc.mu.Unlock()

	defer func() {
		fc.mu.Lock()
		fc.isSubmitting = false
		fc.mu.Unlock()
	}()

	params := map[string]string{"action": action}

	var result Result
	if payload != nil && payload.HasFiles() {
		fc.fillPayload(payload, form)
		if form.ID > 0 {
			result = fc.client.PostMultipart(ctx, "PUT", fmt.Sprintf("/api/merchants/%d", form.ID), payload, params)
		} else {
			result = fc.client.PostMultipart(ctx, "POST", "/api/merchants", payload, params)
		}
	} else {
		body := fc.jsonBody(form)
		if form.ID > 0 {
			result = fc.client.Request(ctx, "PUT", fmt.Sprintf("/api/merchants/%d", form.ID), body, params)
		} else {
			result = fc.client.Request(ctx, "POST", "/api/merchants", body, params)
		}
	}

	if result.Err != nil {
		fc.mu.Lock()
		defer fc.mu.Unlock()

		var apiErr *APIError
		if errors.As(result.Err, &apiErr) {
			if len(apiErr.Fields) > 0 {
				for k, v := range apiErr.Fields {
					fc.errors[k] = v
				}
			} else {
				fc.errors["general"] = apiErr.Message
			}
		} else {
			fc.errors["general"] = "网络错误，请稍后重试"
		}
		return result.Err
	}

	return nil
}

// jsonBody 无文件时的 JSON 请求体
func (fc *FormController) jsonBody(form MerchantForm) map[string]interface{} {
	return map[string]interface{}{
		"name":        form.Name,
		"slug":        form.Slug,
		"description": form.Description,
		"categoryId":  form.CategoryID,
		"email":       form.Email,
		"phone":       form.Phone,
		"website":     form.Website,
		"address":     form.Address,
		"seo": map[string]string{
			"title":       form.SEOTitle,
			"description": form.SEODescription,
		},
	}
}

// fillPayload multipart 提交时把标量字段写进载荷
func (fc *FormController) fillPayload(payload *MultipartPayload, form MerchantForm) {
	payload.SetField("name", form.Name)
	payload.SetField("slug", form.Slug)
	payload.SetField("description", form.Description)
	payload.SetField("categoryId", strconv.FormatInt(form.CategoryID, 10))
	payload.SetField("email", form.Email)
	payload.SetField("phone", form.Phone)
	payload.SetField("website", form.Website)
	payload.SetField("address", form.Address)
	_ = payload.SetJSONField("seo", map[string]string{
		"title":       form.SEOTitle,
		"description": form.SEODescription,
	})
}
