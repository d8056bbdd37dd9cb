package httpserver

import (
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"villamarket/internal/app"
	"villamarket/internal/domain"
)

type MediaHandlers struct {
	S *app.MediaService
}

func NewMediaHandlers(s *app.MediaService) *MediaHandlers {
	return &MediaHandlers{S: s}
}

func (s *Server) MountMediaHandlers(h *MediaHandlers) {
	s.MountRoot("Media Service")
	s.mux.Post("/media/upload", h.upload)
	s.mux.Get("/media/{object}", h.fetch)
}

func (h *MediaHandlers) upload(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxImageBytes); err != nil {
		writeError(w, domain.Wrap(domain.KindInvalid, "invalid multipart form", err))
		return
	}
	file, hdr, err := r.FormFile("file")
	if err != nil {
		writeProblem(w, http.StatusBadRequest, "Bad Request", "file part is required")
		return
	}
	defer file.Close()

	url, err := h.S.Upload(r.Context(), hdr.Filename, partContentType(hdr), file, hdr.Size)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"url": url})
}

func (h *MediaHandlers) fetch(w http.ResponseWriter, r *http.Request) {
	object := chi.URLParam(r, "object")
	rc, contentType, err := h.S.Fetch(r.Context(), object)
	if err != nil {
		writeError(w, err)
		return
	}
	defer rc.Close()

	if contentType != "" {
		w.Header().Set("Content-Type", contentType)
	}
	w.WriteHeader(http.StatusOK)
	if _, err := io.Copy(w, rc); err != nil {
		// Headers are already out; nothing useful to send the client.
		return
	}
}
