package httpx

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"hpportal/internal/platform/logger"
)

func RecoveryMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				if err == http.ErrAbortHandler {
					panic(err)
				}
				logger.FromContext(r.Context()).Error("panic recovered",
					logger.String("panic", fmt.Sprint(err)),
					logger.String("stack", string(debug.Stack())),
				)

				var wroteHeader bool
				if rw, ok := w.(*responseWriter); ok {
					wroteHeader = rw.wroteHeader()
				}

				if !wroteHeader {
					JSONErrorWithRequest(r, w, http.StatusInternalServerError, "INTERNAL_ERROR", "An internal error occurred", nil)
				}
			}
		}()
		next.ServeHTTP(w, r)
	})
}
