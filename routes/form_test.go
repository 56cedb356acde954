package routes

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/kataras/iris/v12"
)

// Validation runs before any storage access, so bad contact-form payloads can
// be checked without a database.
func buildFormTestApp() *iris.Application {
	app := iris.New()
	app.Validator = validator.New()
	app.Post("/api/forms/submit", SubmitForm)
	return app
}

func TestSubmitFormRejectsInvalidPayload(t *testing.T) {
	app := buildFormTestApp()
	if err := app.Build(); err != nil {
		t.Fatalf("failed to build app: %v", err)
	}

	cases := []struct {
		name string
		body string
		want int
	}{
		{"missing name", `{"email":"a@b.com","message":"hello there"}`, http.StatusUnprocessableEntity},
		{"bad email", `{"name":"Asha","email":"not-an-email","message":"hello there"}`, http.StatusUnprocessableEntity},
		{"missing message", `{"name":"Asha","email":"a@b.com"}`, http.StatusUnprocessableEntity},
		{"bad phone", `{"name":"Asha","email":"a@b.com","phone":"12345","message":"hello there"}`, http.StatusBadRequest},
	}

	for _, tc := range cases {
		req := httptest.NewRequest(http.MethodPost, "/api/forms/submit", strings.NewReader(tc.body))
		req.Header.Set("Content-Type", "application/json")
		resp := httptest.NewRecorder()
		app.ServeHTTP(resp, req)
		if resp.Code != tc.want {
			t.Errorf("%s: expected %d, got %d", tc.name, tc.want, resp.Code)
		}
	}
}
