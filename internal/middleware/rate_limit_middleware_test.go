package middleware

import (
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

func testContext(t *testing.T, method, target, body string) *gin.Context {
	t.Helper()
	gin.SetMode(gin.TestMode)

	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	c.Request = httptest.NewRequest(method, target, reader)
	return c
}

func TestEmailFromRequest(t *testing.T) {
	t.Run("query parameter", func(t *testing.T) {
		c := testContext(t, "GET", "/play?email=q%40example.com", "")
		if got := emailFromRequest(c); got != "q@example.com" {
			t.Fatalf("expected query email, got %q", got)
		}
	})

	t.Run("json body", func(t *testing.T) {
		payload := `{"email":"body@example.com","name":"Bea"}`
		c := testContext(t, "POST", "/play", payload)

		if got := emailFromRequest(c); got != "body@example.com" {
			t.Fatalf("expected body email, got %q", got)
		}

		// The handler downstream must still be able to bind the payload.
		rest, err := io.ReadAll(c.Request.Body)
		if err != nil {
			t.Fatalf("failed to re-read body: %v", err)
		}
		if string(rest) != payload {
			t.Fatalf("body not restored, got %q", rest)
		}
	})

	t.Run("query wins over body", func(t *testing.T) {
		c := testContext(t, "POST", "/play?email=q%40example.com", `{"email":"body@example.com"}`)
		if got := emailFromRequest(c); got != "q@example.com" {
			t.Fatalf("expected query email, got %q", got)
		}
	})

	t.Run("malformed body", func(t *testing.T) {
		c := testContext(t, "POST", "/play", `{"email":`)
		if got := emailFromRequest(c); got != "" {
			t.Fatalf("expected empty email, got %q", got)
		}
	})

	t.Run("no body", func(t *testing.T) {
		c := testContext(t, "GET", "/play", "")
		if got := emailFromRequest(c); got != "" {
			t.Fatalf("expected empty email, got %q", got)
		}
	})
}
