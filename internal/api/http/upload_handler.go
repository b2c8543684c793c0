package http

import (
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"equiptrack-backend/internal/domain"
	"equiptrack-backend/internal/storage"

	"github.com/google/uuid"
)

// uploadKinds maps the declared attachment kind to its storage prefix.
var uploadKinds = map[string]string{
	"id_document":     "id_documents",
	"signature":       "signatures",
	"equipment_photo": "equipment_photos",
}

// UploadHandler stores multipart attachments and returns the blob reference.
// Workflow payloads carry the reference string, never the bytes.
type UploadHandler struct {
	blobs       storage.BlobStorage
	maxFileSize int64
}

func NewUploadHandler(blobs storage.BlobStorage, maxFileSizeMB int64) *UploadHandler {
	return &UploadHandler{
		blobs:       blobs,
		maxFileSize: maxFileSizeMB << 20,
	}
}

func (h *UploadHandler) Upload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxFileSize)
	if err := r.ParseMultipartForm(h.maxFileSize); err != nil {
		writeError(w, fmt.Errorf("%w: file too large or malformed upload", domain.ErrValidation))
		return
	}

	kind := r.FormValue("kind")
	prefix, ok := uploadKinds[kind]
	if !ok {
		writeError(w, fmt.Errorf("%w: unknown upload kind %q", domain.ErrValidation, kind))
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, fmt.Errorf("%w: file field is required", domain.ErrValidation))
		return
	}
	defer file.Close()

	ext := strings.ToLower(filepath.Ext(header.Filename))
	key := fmt.Sprintf("%s/%s%s", prefix, uuid.New().String(), ext)
	if err := h.blobs.Save(r.Context(), key, file); err != nil {
		writeError(w, fmt.Errorf("store upload: %w", err))
		return
	}

	writeJSON(w, http.StatusCreated, map[string]string{"path": key})
}

// Download streams a stored blob back. Used for QR labels and attachments.
func (h *UploadHandler) Download(w http.ResponseWriter, r *http.Request) {
	key := r.URL.Query().Get("key")
	if key == "" {
		writeError(w, fmt.Errorf("%w: key parameter is required", domain.ErrValidation))
		return
	}

	reader, err := h.blobs.Read(r.Context(), key)
	if err != nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "file not found"})
		return
	}
	defer reader.Close()

	contentType := "application/octet-stream"
	switch strings.ToLower(filepath.Ext(key)) {
	case ".jpg", ".jpeg":
		contentType = "image/jpeg"
	case ".png":
		contentType = "image/png"
	case ".pdf":
		contentType = "application/pdf"
	}
	w.Header().Set("Content-Type", contentType)
	io.Copy(w, reader)
}
