package app

import (
	"context"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
)

// Shutdown can race a failed Start (bad database URL, port in use), so it
// must tolerate whatever subset of the server actually came up.
func TestServerShutdownBeforeStart(t *testing.T) {
	gin.SetMode(gin.TestMode)
	srv := NewServer()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		t.Fatalf("shutdown before start failed: %v", err)
	}
}
