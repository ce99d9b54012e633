package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"vetclinic/internal/auth"
	"vetclinic/internal/domain"

	"github.com/gin-gonic/gin"
)

const testAPIKey = "clinic-key"

func newGateRouter(t *testing.T, ts auth.TokenService) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()

	api := r.Group("/api", APIKey(testAPIKey))
	api.POST("/users/login", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	protected := api.Group("", Auth(ts))
	protected.GET("/whoami", func(c *gin.Context) {
		ident, ok := GetIdentity(c)
		if !ok {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "no identity"})
			return
		}
		c.JSON(http.StatusOK, ident)
	})
	protected.GET("/admin-only", RequireRoles(domain.RoleAdmin), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	return r
}

func doRequest(r *gin.Engine, method, path, apiKey, bearer string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	if apiKey != "" {
		req.Header.Set("X-API-Key", apiKey)
	}
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAPIKeyStage(t *testing.T) {
	ts := auth.NewTokenService("test-secret")
	r := newGateRouter(t, ts)

	if w := doRequest(r, http.MethodPost, "/api/users/login", "", ""); w.Code != http.StatusUnauthorized {
		t.Fatalf("missing key: got %d", w.Code)
	}
	if w := doRequest(r, http.MethodPost, "/api/users/login", "wrong", ""); w.Code != http.StatusUnauthorized {
		t.Fatalf("wrong key: got %d", w.Code)
	}
	if w := doRequest(r, http.MethodPost, "/api/users/login", testAPIKey, ""); w.Code != http.StatusOK {
		t.Fatalf("valid key: got %d", w.Code)
	}
}

func TestLoginBypassesTokenStageOnly(t *testing.T) {
	ts := auth.NewTokenService("test-secret")
	r := newGateRouter(t, ts)

	// login needs no bearer token but still needs the key
	if w := doRequest(r, http.MethodPost, "/api/users/login", testAPIKey, ""); w.Code != http.StatusOK {
		t.Fatalf("login with key only: got %d", w.Code)
	}
	if w := doRequest(r, http.MethodGet, "/api/whoami", testAPIKey, ""); w.Code != http.StatusUnauthorized {
		t.Fatalf("protected route without token: got %d", w.Code)
	}
}

func TestTokenStageRejections(t *testing.T) {
	ts := auth.NewTokenService("test-secret")
	r := newGateRouter(t, ts)

	other := auth.NewTokenService("other-secret")
	forged, err := other.Issue(1, domain.RoleAdmin)
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}

	expiredSvc := auth.TokenService{Secret: []byte("test-secret"), TTL: -time.Minute}
	expired, err := expiredSvc.Issue(1, domain.RoleAdmin)
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}

	for name, token := range map[string]string{
		"garbage":       "not.a.token",
		"bad signature": forged,
		"expired":       expired,
	} {
		w := doRequest(r, http.MethodGet, "/api/whoami", testAPIKey, token)
		if w.Code != http.StatusUnauthorized {
			t.Fatalf("%s: got %d", name, w.Code)
		}
		// the body must not reveal which check failed
		if body := w.Body.String(); body != `{"error":"unauthorized"}` {
			t.Fatalf("%s: body leaked detail: %s", name, body)
		}
	}
}

func TestIdentityAttachedToContext(t *testing.T) {
	ts := auth.NewTokenService("test-secret")
	r := newGateRouter(t, ts)

	token, err := ts.Issue(7, domain.RoleVeterinarian)
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}

	w := doRequest(r, http.MethodGet, "/api/whoami", testAPIKey, token)
	if w.Code != http.StatusOK {
		t.Fatalf("got %d body %s", w.Code, w.Body.String())
	}
	if body := w.Body.String(); body != `{"userId":7,"role":"Veterinarian"}` {
		t.Fatalf("unexpected identity payload: %s", body)
	}
}

func TestRequireRoles(t *testing.T) {
	ts := auth.NewTokenService("test-secret")
	r := newGateRouter(t, ts)

	vetToken, err := ts.Issue(7, domain.RoleVeterinarian)
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}
	adminToken, err := ts.Issue(1, domain.RoleAdmin)
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}

	if w := doRequest(r, http.MethodGet, "/api/admin-only", testAPIKey, vetToken); w.Code != http.StatusForbidden {
		t.Fatalf("veterinarian on admin route: got %d", w.Code)
	}
	if w := doRequest(r, http.MethodGet, "/api/admin-only", testAPIKey, adminToken); w.Code != http.StatusOK {
		t.Fatalf("admin on admin route: got %d", w.Code)
	}
}
