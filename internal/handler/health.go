package handler

import (
	"io"
	"net/http"
)

// HandleRoot answers the liveness probe at GET /.
func HandleRoot(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = io.WriteString(w, "Server is running 🚀")
}
