package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestGenerateAndParseToken(t *testing.T) {
	access, refresh, err := GenerateTokenPair(7, "alice", "editor")
	if err != nil {
		t.Fatalf("生成 Token 对失败: %v", err)
	}

	claims, err := ParseToken(access)
	if err != nil {
		t.Fatalf("解析 Access Token 失败: %v", err)
	}
	if claims.UserID != 7 || claims.Username != "alice" || claims.Role != "editor" {
		t.Fatalf("Claims 不对: %+v", claims)
	}
	if claims.Subject != "access" {
		t.Fatalf("Access Token 的 Subject 应为 access, 实际 %s", claims.Subject)
	}

	refreshClaims, err := ParseToken(refresh)
	if err != nil {
		t.Fatalf("解析 Refresh Token 失败: %v", err)
	}
	if refreshClaims.Subject != "refresh" {
		t.Fatalf("Refresh Token 的 Subject 应为 refresh, 实际 %s", refreshClaims.Subject)
	}
}

func TestParseToken_Garbage(t *testing.T) {
	if _, err := ParseToken("not.a.token"); err == nil {
		t.Fatal("垃圾 Token 应解析失败")
	}
}

// ==================== 中间件 ====================

func newAuthTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/me", JWTAuth(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"userId": GetUserID(c), "role": GetUserRole(c)})
	})
	r.GET("/admin", JWTAuth(), RequireRole("super_admin"), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "ok"})
	})
	return r
}

func TestJWTAuth_MissingAndMalformedHeader(t *testing.T) {
	r := newAuthTestRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/me", nil)
	r.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("无认证头应 401, 实际 %d", w.Code)
	}

	w = httptest.NewRecorder()
	req = httptest.NewRequest("GET", "/me", nil)
	req.Header.Set("Authorization", "Basic abc")
	r.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("非 Bearer 头应 401, 实际 %d", w.Code)
	}
}

func TestJWTAuth_RefreshTokenRejectedOnAccessRoute(t *testing.T) {
	r := newAuthTestRouter()

	_, refresh, _ := GenerateTokenPair(7, "alice", "editor")
	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/me", nil)
	req.Header.Set("Authorization", "Bearer "+refresh)
	r.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("Refresh Token 不能当 Access 用, 实际 %d", w.Code)
	}
}

func TestJWTAuth_ValidToken(t *testing.T) {
	r := newAuthTestRouter()

	access, _, _ := GenerateTokenPair(7, "alice", "editor")
	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/me", nil)
	req.Header.Set("Authorization", "Bearer "+access)
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("合法 Token 应放行, 实际 %d: %s", w.Code, w.Body.String())
	}
}

func TestRequireRole(t *testing.T) {
	r := newAuthTestRouter()

	editorToken, _, _ := GenerateTokenPair(7, "alice", "editor")
	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/admin", nil)
	req.Header.Set("Authorization", "Bearer "+editorToken)
	r.ServeHTTP(w, req)
	if w.Code != http.StatusForbidden {
		t.Fatalf("角色不符应 403, 实际 %d", w.Code)
	}

	adminToken, _, _ := GenerateTokenPair(1, "root", "super_admin")
	w = httptest.NewRecorder()
	req = httptest.NewRequest("GET", "/admin", nil)
	req.Header.Set("Authorization", "Bearer "+adminToken)
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("超管应放行, 实际 %d", w.Code)
	}
}

func TestOptionalAuth(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/reviews", OptionalAuth(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"userId": GetUserID(c)})
	})

	// 匿名照常放行，userId 为 0
	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/reviews", nil)
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("匿名请求应放行, 实际 %d", w.Code)
	}

	// 坏 Token 也放行，只是不注入身份
	w = httptest.NewRecorder()
	req = httptest.NewRequest("GET", "/reviews", nil)
	req.Header.Set("Authorization", "Bearer garbage")
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("坏 Token 的可选认证应放行, 实际 %d", w.Code)
	}
}
