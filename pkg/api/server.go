package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// NewServer wraps the router in an http.Server with sane timeouts.
func NewServer(router *gin.Engine, port string) *http.Server {
	return &http.Server{
		Addr:         ":" + port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}
}

// Shutdown drains the server within the given timeout.
func Shutdown(srv *http.Server, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	return srv.Shutdown(ctx)
}
