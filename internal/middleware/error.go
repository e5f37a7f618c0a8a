package middleware

import (
	"bytes"
	"encoding/json"
	"log"
	"net/http"
	"strings"
)

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error"`
}

// responseRecorder is a custom ResponseWriter that holds back error
// responses so they can be normalized before reaching the client.
type responseRecorder struct {
	http.ResponseWriter
	statusCode int
	body       bytes.Buffer
}

func (r *responseRecorder) WriteHeader(statusCode int) {
	r.statusCode = statusCode
	if statusCode < 400 {
		r.ResponseWriter.WriteHeader(statusCode)
	}
}

func (r *responseRecorder) Write(b []byte) (int, error) {
	if r.statusCode >= 400 {
		// Buffer the original error body instead of writing it
		return r.body.Write(b)
	}
	return r.ResponseWriter.Write(b)
}

// ErrorHandler is a middleware that recovers from panics and makes sure
// every error response is JSON. Handlers that already produced a JSON
// body pass through untouched; plain text errors such as the router's
// default 404 page are wrapped in an ErrorResponse.
func ErrorHandler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec := &responseRecorder{ResponseWriter: w, statusCode: 200}
		defer func() {
			if err := recover(); err != nil {
				log.Printf("Error: %v", err)
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusInternalServerError)
				json.NewEncoder(w).Encode(ErrorResponse{Error: "Internal Server Error"})
				return
			}

			if rec.statusCode < 400 {
				return
			}

			body := strings.TrimSpace(rec.body.String())
			if body == "" {
				body = http.StatusText(rec.statusCode)
			}
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(rec.statusCode)
			if strings.HasPrefix(body, "{") || strings.HasPrefix(body, "[") {
				// Already JSON, pass it through as-is
				w.Write([]byte(body))
				return
			}
			json.NewEncoder(w).Encode(ErrorResponse{Error: body})
		}()

		next.ServeHTTP(rec, r)
	})
}
