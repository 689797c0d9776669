package adminclient

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClient_SuccessResult(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "pending", r.URL.Query().Get("status"), "查询参数应透传")
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{
			"merchants": []map[string]interface{}{{"id": 1}},
		})
	}))
	defer srv.Close()

	result := NewClient(srv.URL).Get(context.Background(), "/api/merchants",
		map[string]string{"status": "pending"})
	assert.NoError(t, result.Err)

	var resp struct {
		Merchants []struct {
			ID int64 `json:"id"`
		} `json:"merchants"`
	}
	assert.NoError(t, result.Decode(&resp))
	if assert.Len(t, resp.Merchants, 1) {
		assert.Equal(t, int64(1), resp.Merchants[0].ID)
	}
}

func TestClient_APIErrorWithFields(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"error":  "validation failed",
			"fields": map[string]string{"name": "名称必填"},
		})
	}))
	defer srv.Close()

	result := NewClient(srv.URL).Post(context.Background(), "/api/merchants", map[string]string{})

	var apiErr *APIError
	if !errors.As(result.Err, &apiErr) {
		t.Fatalf("非 2xx 应归一化为 APIError, 实际 %T", result.Err)
	}
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
	assert.Equal(t, "validation failed", apiErr.Message)
	assert.Equal(t, "名称必填", apiErr.Fields["name"], "字段错误应透传")
}

func TestClient_NetworkError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	result := NewClient(srv.URL).Get(context.Background(), "/api/merchants", nil)

	var netErr *NetworkError
	if !errors.As(result.Err, &netErr) {
		t.Fatalf("传输层失败应归一化为 NetworkError, 实际 %T", result.Err)
	}

	// 与业务错误互斥
	var apiErr *APIError
	assert.False(t, errors.As(result.Err, &apiErr), "网络错误不应同时匹配 APIError")
}

func TestMultipartPayload(t *testing.T) {
	payload := NewMultipartPayload()
	payload.SetField("name", "Demo Shop")
	assert.NoError(t, payload.SetJSONField("seo", map[string]string{"title": "t"}))
	payload.AddFile("logoFile", "logo.png", []byte{0x89, 0x50})

	assert.True(t, payload.HasFiles(), "带文件的载荷 HasFiles 应为 true")

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.NoError(t, r.ParseMultipartForm(1<<20))
		assert.Equal(t, "Demo Shop", r.FormValue("name"))

		var seo map[string]string
		if assert.NoError(t, json.Unmarshal([]byte(r.FormValue("seo")), &seo), "JSON 字段应是字符串化的对象") {
			assert.Equal(t, "t", seo["title"])
		}

		file, _, err := r.FormFile("logoFile")
		if assert.NoError(t, err, "文件字段缺失") {
			data, _ := io.ReadAll(file)
			assert.Len(t, data, 2, "文件内容不对")
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"message": "ok"})
	}))
	defer srv.Close()

	result := NewClient(srv.URL).PostMultipart(context.Background(), "POST", "/api/merchants", payload, nil)
	assert.NoError(t, result.Err)
}
