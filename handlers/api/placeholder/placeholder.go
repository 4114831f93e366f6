package placeholder

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Path segments are substituted as-is; the label repeats the requested size.
const document = `<svg xmlns="http://www.w3.org/2000/svg" width="%[1]s" height="%[2]s" viewBox="0 0 %[1]s %[2]s"><rect width="100%%" height="100%%" fill="#e2e8f0"/><text x="50%%" y="50%%" font-family="sans-serif" font-size="16" fill="#64748b" text-anchor="middle" dominant-baseline="middle">%[1]sx%[2]s</text></svg>`

// Handle draws a placeholder SVG of the requested dimensions.
func Handle() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		width := chi.URLParam(r, "width")
		height := chi.URLParam(r, "height")
		w.Header().Set("Content-Type", "image/svg+xml")
		fmt.Fprintf(w, document, width, height)
	}
}
