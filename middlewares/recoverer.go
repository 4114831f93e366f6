package middlewares

import (
	"fmt"
	"net/http"
	"runtime/debug"
	"stashspace/handlers/api"

	"github.com/sirupsen/logrus"
)

// Recoverer converts route panics into the JSON error envelope so a broken
// handler never takes the process down.
func Recoverer(exposeErrors bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rvr := recover()
				if rvr == nil {
					return
				}
				if rvr == http.ErrAbortHandler {
					panic(rvr)
				}
				logrus.WithFields(logrus.Fields{
					"panic": rvr,
					"path":  r.URL.Path,
					"stack": string(debug.Stack()),
				}).Error("Recovered from panic in request handler")
				api.Error(w, r, http.StatusInternalServerError, "Internal server error",
					fmt.Errorf("%v", rvr), exposeErrors)
			}()
			next.ServeHTTP(w, r)
		})
	}
}
