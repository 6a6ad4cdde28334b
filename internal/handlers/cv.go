package handlers

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
)

// CVHandler serves the résumé behind the chat's download button.
type CVHandler struct {
	path string
}

func NewCVHandler(path string) *CVHandler {
	return &CVHandler{path: path}
}

func (h *CVHandler) Download(w http.ResponseWriter, r *http.Request) {
	if h.path == "" {
		writeJSON(w, http.StatusNotFound, errorResp("CV is not available", r))
		return
	}

	f, err := os.Open(h.path)
	if err != nil {
		writeJSON(w, http.StatusNotFound, errorResp("CV is not available", r))
		return
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil || info.IsDir() {
		writeJSON(w, http.StatusNotFound, errorResp("CV is not available", r))
		return
	}

	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filepath.Base(h.path)))
	http.ServeContent(w, r, info.Name(), info.ModTime(), f)
}
