package api

import (
	"errors"
	"io"
	"log"
	"net/http"

	"joelearn/media-api/internal/service"

	"github.com/gin-gonic/gin"
)

// MediaHandler holds the media service dependency.
type MediaHandler struct {
	mediaService service.MediaService
}

// NewMediaHandler creates a new MediaHandler.
func NewMediaHandler(mediaService service.MediaService) *MediaHandler {
	return &MediaHandler{mediaService: mediaService}
}

// GenerateSignature signs the caller's upload parameters together with a
// server-generated timestamp. The body is an arbitrary flat object of
// string fields (e.g. {"folder": "joe-learn-videos"}); an empty body is
// valid. Any failure is a signing failure and maps to a generic 500, with
// detail kept server-side.
func (h *MediaHandler) GenerateSignature(c *gin.Context) {
	var params map[string]string
	if err := c.ShouldBindJSON(&params); err != nil && !errors.Is(err, io.EOF) {
		log.Printf("ERROR: reading signature params: %v", err)
		abortWithError(c, http.StatusInternalServerError, "Failed to generate signature.")
		return
	}

	signed, err := h.mediaService.GenerateSignature(c.Request.Context(), params)
	if err != nil {
		log.Printf("ERROR: generating upload signature: %v", err)
		abortWithError(c, http.StatusInternalServerError, "Failed to generate signature.")
		return
	}

	c.JSON(http.StatusOK, signed)
}

// UploadRaw is the legacy path where this server relays the file bytes to
// the storage provider itself instead of issuing a direct-upload credential.
func (h *MediaHandler) UploadRaw(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: file is required.")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		log.Printf("ERROR: opening multipart file: %v", err)
		abortWithError(c, http.StatusInternalServerError, "Failed to upload file.")
		return
	}
	defer file.Close()

	object, err := h.mediaService.UploadRaw(
		c.Request.Context(),
		file,
		c.PostForm("folder"),
		fileHeader.Filename,
		fileHeader.Header.Get("Content-Type"),
	)
	if err != nil {
		log.Printf("ERROR: relaying upload of '%s': %v", fileHeader.Filename, err)
		abortWithError(c, http.StatusInternalServerError, "Failed to upload file.")
		return
	}

	c.JSON(http.StatusOK, object)
}
