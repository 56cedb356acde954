package routes

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"buildestate-server/utils"

	"github.com/kataras/iris/v12"
	"github.com/kataras/iris/v12/middleware/jwt"
)

const testSecret = "testsecret"

// buildTestApp wires the admin guard in front of a stub handler so the RBAC
// behavior can be checked without a database.
func buildTestApp() *iris.Application {
	app := iris.New()

	accessTokenVerifier := jwt.NewVerifier(jwt.HS256, []byte(testSecret))
	accessTokenVerifierMiddleware := accessTokenVerifier.Verify(func() interface{} { return new(utils.AccessToken) })

	admin := app.Party("/api/admin", accessTokenVerifierMiddleware, utils.AdminOnlyMiddleware)
	{
		admin.Get("/ping", func(ctx iris.Context) {
			ctx.JSON(iris.Map{"success": true})
		})
	}
	return app
}

func signTestToken(isAdmin bool) string {
	signer := jwt.NewSigner(jwt.HS256, testSecret, 0)
	token, _ := signer.Sign(utils.AccessToken{ID: 1, IsAdmin: isAdmin})
	return string(token)
}

func TestAdminRBAC(t *testing.T) {
	app := buildTestApp()
	if err := app.Build(); err != nil {
		t.Fatalf("failed to build app: %v", err)
	}

	// No token
	req := httptest.NewRequest(http.MethodGet, "/api/admin/ping", nil)
	resp := httptest.NewRecorder()
	app.ServeHTTP(resp, req)
	if resp.Code == http.StatusOK {
		t.Fatalf("expected non-200 without token, got %d", resp.Code)
	}

	// Regular user token
	req2 := httptest.NewRequest(http.MethodGet, "/api/admin/ping", nil)
	req2.Header.Set("Authorization", "Bearer "+signTestToken(false))
	resp2 := httptest.NewRecorder()
	app.ServeHTTP(resp2, req2)
	if resp2.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for non-admin, got %d", resp2.Code)
	}

	// Admin token
	req3 := httptest.NewRequest(http.MethodGet, "/api/admin/ping", nil)
	req3.Header.Set("Authorization", "Bearer "+signTestToken(true))
	resp3 := httptest.NewRecorder()
	app.ServeHTTP(resp3, req3)
	if resp3.Code != http.StatusOK {
		t.Fatalf("expected 200 for admin, got %d", resp3.Code)
	}
}
