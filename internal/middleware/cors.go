package middleware

import (
	"net/http"

	"github.com/rs/cors"
)

// DevOrigins are the local dashboard dev servers that are always allowed.
var DevOrigins = []string{
	"http://localhost:3000",
	"http://localhost:5173",
	"http://127.0.0.1:3000",
	"http://127.0.0.1:5173",
}

// CORS allows the dev origins plus extra, for the methods and headers the API uses.
func CORS(extra []string) *cors.Cors {
	origins := make([]string, 0, len(DevOrigins)+len(extra))
	origins = append(origins, DevOrigins...)
	for _, o := range extra {
		if o != "" {
			origins = append(origins, o)
		}
	}
	return cors.New(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders:   []string{"Content-Type", HeaderRequestID, "X-Board-ID"},
		ExposedHeaders:   []string{HeaderRequestID},
		AllowCredentials: true,
	})
}
