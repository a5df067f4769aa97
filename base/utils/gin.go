package utils

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/pkg/errors"
)

// ReadHeaderTimeout same as nginx default
const ReadHeaderTimeout = 60 * time.Second

type ErrorResponse struct {
	Error string `json:"error"`
}

// RunServer serves handler on port until ctx is cancelled
func RunServer(ctx context.Context, handler http.Handler, port int) error {
	addr := fmt.Sprintf(":%d", port)
	srv := http.Server{Addr: addr, Handler: handler, ReadHeaderTimeout: ReadHeaderTimeout, MaxHeaderBytes: 65535}
	closed := make(chan struct{})
	go func() {
		defer close(closed)
		<-ctx.Done()
		err := srv.Shutdown(context.Background())
		if err != nil {
			LogError("err", err.Error(), "server shutting down failed")
			return
		}
		LogInfo("server closed successfully")
	}()

	err := srv.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		return errors.Wrap(err, "server listening failed")
	}
	<-closed
	return nil
}
