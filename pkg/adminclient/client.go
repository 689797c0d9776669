// Package adminclient 是后台管理端的编排层：
// 封装 API 访问、列表页状态机、表单控制器、页面缓存与批量执行器。
// 服务端是唯一数据权威，这里只持有瞬态副本。
package adminclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
)

// ==================== 结果归一化 ====================

// Result 统一的请求结果：要么有 Data，要么有 Err
type Result struct {
	Data       json.RawMessage
	StatusCode int
	Err        error
}

// APIError 服务端返回的业务错误（非 2xx，带 {error} 响应体）
type APIError struct {
	StatusCode int
	Message    string
	// 表单校验失败时按字段返回
	Fields map[string]string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error (HTTP %d): %s", e.StatusCode, e.Message)
}

// NetworkError 传输层失败（连接、超时等），与业务错误区分展示
type NetworkError struct {
	Cause error
}

func (e *NetworkError) Error() string {
	return "network error: " + e.Cause.Error()
}

func (e *NetworkError) Unwrap() error { return e.Cause }

// ==================== 客户端 ====================

// Client API 客户端门面
// request(method, path, body?, params?) -> {data, error}
type Client struct {
	http *resty.Client
}

// NewClient 创建客户端，baseURL 形如 http://localhost:8080
func NewClient(baseURL string) *Client {
	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(20*time.Second).
		SetHeader("User-Agent", "ReviewHub-Admin/1.0").
		SetHeader("Accept", "application/json")

	return &Client{http: client}
}

// SetToken 设置 Bearer Token
func (c *Client) SetToken(token string) *Client {
	c.http.SetAuthToken(token)
	return c
}

// SetDebug 打开请求日志
func (c *Client) SetDebug(debug bool) *Client {
	c.http.SetDebug(debug)
	return c
}

// Request 发起请求并归一化结果
// body 为 nil 时不带请求体；params 为查询参数
func (c *Client) Request(ctx context.Context, method, path string, body interface{}, params map[string]string) Result {
	req := c.http.R().SetContext(ctx)
	if params != nil {
		req.SetQueryParams(params)
	}
	if body != nil {
		req.SetHeader("Content-Type", "application/json").SetBody(body)
	}

	resp, err := req.Execute(method, path)
	if err != nil {
		return Result{Err: &NetworkError{Cause: err}}
	}

	return normalize(resp)
}

// Get 便捷 GET
func (c *Client) Get(ctx context.Context, path string, params map[string]string) Result {
	return c.Request(ctx, resty.MethodGet, path, nil, params)
}

// Post 便捷 POST
func (c *Client) Post(ctx context.Context, path string, body interface{}) Result {
	return c.Request(ctx, resty.MethodPost, path, body, nil)
}

// Put 便捷 PUT
func (c *Client) Put(ctx context.Context, path string, body interface{}) Result {
	return c.Request(ctx, resty.MethodPut, path, body, nil)
}

// Patch 便捷 PATCH
func (c *Client) Patch(ctx context.Context, path string, body interface{}) Result {
	return c.Request(ctx, resty.MethodPatch, path, body, nil)
}

// Delete 便捷 DELETE
func (c *Client) Delete(ctx context.Context, path string) Result {
	return c.Request(ctx, resty.MethodDelete, path, nil, nil)
}

// ==================== multipart 提交 ====================

// FilePart 待上传文件
type FilePart struct {
	FieldName string
	FileName  string
	Content   []byte
}

// MultipartPayload multipart 提交载荷
// 嵌套对象（SEO / UTM / FAQ 等）以 JSON 字符串字段随二进制部分一起提交
type MultipartPayload struct {
	fields map[string]string
	files  []FilePart
}

// NewMultipartPayload 创建空载荷
func NewMultipartPayload() *MultipartPayload {
	return &MultipartPayload{fields: make(map[string]string)}
}

// SetField 设置普通字段
func (p *MultipartPayload) SetField(name, value string) *MultipartPayload {
	p.fields[name] = value
	return p
}

// SetJSONField 序列化嵌套对象为 JSON 字符串字段
func (p *MultipartPayload) SetJSONField(name string, value interface{}) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("序列化 %s 失败: %w", name, err)
	}
	p.fields[name] = string(raw)
	return nil
}

// AddFile 附加文件
func (p *MultipartPayload) AddFile(fieldName, fileName string, content []byte) *MultipartPayload {
	p.files = append(p.files, FilePart{FieldName: fieldName, FileName: fileName, Content: content})
	return p
}

// HasFiles 是否带文件（决定是否走 multipart）
func (p *MultipartPayload) HasFiles() bool {
	return len(p.files) > 0
}

// PostMultipart 提交 multipart 表单
func (c *Client) PostMultipart(ctx context.Context, method, path string, payload *MultipartPayload, params map[string]string) Result {
	req := c.http.R().SetContext(ctx).SetFormData(payload.fields)
	if params != nil {
		req.SetQueryParams(params)
	}
	for _, f := range payload.files {
		req.SetFileReader(f.FieldName, f.FileName, bytes.NewReader(f.Content))
	}

	resp, err := req.Execute(method, path)
	if err != nil {
		return Result{Err: &NetworkError{Cause: err}}
	}

	return normalize(resp)
}

// ==================== 内部 ====================

// errBody 服务端错误响应体
type errBody struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields"`
}

// normalize 把 HTTP 响应归一化为 Result
func normalize(resp *resty.Response) Result {
	if resp.IsSuccess() {
		return Result{Data: json.RawMessage(resp.Body()), StatusCode: resp.StatusCode()}
	}

	var body errBody
	msg := "request failed"
	var fields map[string]string
	if err := json.Unmarshal(resp.Body(), &body); err == nil && body.Error != "" {
		msg = body.Error
		fields = body.Fields
	}

	return Result{
		StatusCode: resp.StatusCode(),
		Err: &APIError{
			StatusCode: resp.StatusCode(),
			Message:    msg,
			Fields:     fields,
		},
	}
}

// Decode 把 Data 解析到目标结构
func (r Result) Decode(dst interface{}) error {
	if r.Err != nil {
		return r.Err
	}
	if len(r.Data) == 0 {
		return nil
	}
	return json.Unmarshal(r.Data, dst)
}
