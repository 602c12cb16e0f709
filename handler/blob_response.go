package handler

import (
	"net/http"
	"strconv"
)

type blobResponse struct {
	contentType string
	body        []byte
	cache       string
}

func (b blobResponse) Render(w http.ResponseWriter, r *http.Request) error {
	w.Header().Set("Content-Type", b.contentType)
	w.Header().Set("Content-Length", strconv.Itoa(len(b.body)))
	if b.cache != "" {
		w.Header().Set("Cache-Control", b.cache)
	}
	w.WriteHeader(http.StatusOK)
	_, err := w.Write(b.body)
	return err
}

// Blob responds with raw bytes of the given content type.
func Blob(contentType string, body []byte) Response {
	return blobResponse{contentType: contentType, body: body}
}

// CachedBlob is Blob with a Cache-Control header.
func CachedBlob(contentType, cacheControl string, body []byte) Response {
	return blobResponse{contentType: contentType, body: body, cache: cacheControl}
}
