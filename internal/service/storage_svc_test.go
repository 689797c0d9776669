package service

import (
	"bytes"
	"context"
	"errors"
	"mime/multipart"
	"net/http/httptest"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"
	"time"
)

// makeFileHeader 构造 multipart 文件头，模拟表单上传
func makeFileHeader(t *testing.T, field, filename string, data []byte) *multipart.FileHeader {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	fw, err := w.CreateFormFile(field, filename)
	if err != nil {
		t.Fatalf("创建表单文件失败: %v", err)
	}
	if _, err := fw.Write(data); err != nil {
		t.Fatalf("写入表单文件失败: %v", err)
	}
	w.Close()

	req := httptest.NewRequest("POST", "/upload", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	if err := req.ParseMultipartForm(32 << 20); err != nil {
		t.Fatalf("解析 multipart 失败: %v", err)
	}
	return req.MultipartForm.File[field][0]
}

// pngBytes 带 PNG 魔数的最小内容，让 DetectContentType 识别为 image/png
func pngBytes() []byte {
	return append([]byte("\x89PNG\r\n\x1a\n"), bytes.Repeat([]byte{0}, 32)...)
}

func TestLocalStorage_UploadAndDelete(t *testing.T) {
	dir := t.TempDir()
	store, err := NewLocalStorage(&StorageConfig{
		BasePath: dir,
		Endpoint: "http://localhost:8080/uploads/",
	})
	if err != nil {
		t.Fatalf("创建本地存储失败: %v", err)
	}

	url, err := store.Upload(context.Background(), pngBytes(), "logo.png", "image/png")
	if err != nil {
		t.Fatalf("上传失败: %v", err)
	}
	if !strings.HasPrefix(url, "http://localhost:8080/uploads/") {
		t.Fatalf("URL 前缀不对: %s", url)
	}
	if !strings.HasSuffix(url, ".png") {
		t.Fatalf("应保留扩展名: %s", url)
	}

	key := strings.TrimPrefix(url, "http://localhost:8080/uploads/")
	path := filepath.Join(dir, filepath.FromSlash(key))
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("上传后文件应存在: %v", err)
	}

	if err := store.Delete(context.Background(), url); err != nil {
		t.Fatalf("删除失败: %v", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatalf("删除后文件应不存在")
	}

	// 本地存储的签名 URL 就是原 URL
	signed, err := store.GetSignedURL(context.Background(), url, time.Minute)
	if err != nil || signed != url {
		t.Fatalf("签名 URL 应原样返回: %s, %v", signed, err)
	}
}

func TestLocalStorage_DeleteBadURL(t *testing.T) {
	store, err := NewLocalStorage(&StorageConfig{BasePath: t.TempDir()})
	if err != nil {
		t.Fatalf("创建本地存储失败: %v", err)
	}
	if err := store.Delete(context.Background(), "https://other.example.com/x.png"); err == nil {
		t.Fatalf("无法解析的 URL 应报错")
	}
}

func TestStorageService_UploadImage(t *testing.T) {
	svc, err := NewStorageService(&StorageConfig{
		Provider: "local",
		BasePath: t.TempDir(),
	})
	if err != nil {
		t.Fatalf("创建存储服务失败: %v", err)
	}

	fh := makeFileHeader(t, "file", "shot.png", pngBytes())
	url, err := svc.UploadImage(context.Background(), fh)
	if err != nil {
		t.Fatalf("上传图片失败: %v", err)
	}
	if url == "" {
		t.Fatalf("应返回访问 URL")
	}
}

func TestStorageService_UploadRejectsNonImage(t *testing.T) {
	svc, err := NewStorageService(&StorageConfig{
		Provider: "local",
		BasePath: t.TempDir(),
	})
	if err != nil {
		t.Fatalf("创建存储服务失败: %v", err)
	}

	fh := makeFileHeader(t, "file", "note.txt", []byte("plain text, not an image"))
	_, err = svc.UploadImage(context.Background(), fh)
	var fe FieldErrors
	if !errors.As(err, &fe) {
		t.Fatalf("非图片应返回校验错误, 实际 %v", err)
	}
	if fe["file"] == "" {
		t.Fatalf("应带 file 字段错误: %v", fe)
	}
}

func TestStorageService_UploadRejectsOversize(t *testing.T) {
	svc, err := NewStorageService(&StorageConfig{
		Provider: "local",
		BasePath: t.TempDir(),
	})
	if err != nil {
		t.Fatalf("创建存储服务失败: %v", err)
	}

	fh := makeFileHeader(t, "file", "big.png", pngBytes())
	fh.Size = maxImageSize + 1
	_, err = svc.UploadImage(context.Background(), fh)
	var fe FieldErrors
	if !errors.As(err, &fe) {
		t.Fatalf("超大文件应返回校验错误, 实际 %v", err)
	}
}

func TestNewStorageProvider_Unknown(t *testing.T) {
	if _, err := NewStorageProvider(&StorageConfig{Provider: "ftp"}); err == nil {
		t.Fatalf("未知提供者应报错")
	}
}

func TestGenerateObjectKey(t *testing.T) {
	key := generateObjectKey("avatar.webp")
	// 日期目录/uuid.扩展名
	pattern := regexp.MustCompile(`^\d{4}/\d{2}/\d{2}/[0-9a-f-]{36}\.webp$`)
	if !pattern.MatchString(key) {
		t.Fatalf("对象 key 格式不对: %s", key)
	}

	// 无扩展名回退到 .jpg
	if !strings.HasSuffix(generateObjectKey("noext"), ".jpg") {
		t.Fatalf("无扩展名应回退到 .jpg")
	}

	if generateObjectKey("a.png") == generateObjectKey("a.png") {
		t.Fatalf("两次生成应不同")
	}
}
