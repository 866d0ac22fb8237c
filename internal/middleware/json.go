package middleware

import (
	"log"
	"mime"
	"net/http"

	"dustbin-dashboard/pkg/utils"
)

// maxBodyBytes bounds request bodies; the dashboard only sends small forms
const maxBodyBytes = 64 << 10

// RequireJSON rejects request bodies that are not declared as JSON and caps their size
func RequireJSON(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
		if err != nil || mediaType != "application/json" {
			log.Printf("❌ Rejected %s %s: Content-Type %q", r.Method, r.URL.Path, r.Header.Get("Content-Type"))
			utils.RespondError(w, http.StatusUnsupportedMediaType, "Content-Type must be application/json")
			return
		}

		r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
		next.ServeHTTP(w, r)
	})
}
