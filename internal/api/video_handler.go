package api

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"joelearn/media-api/internal/domain"
	"joelearn/media-api/internal/service"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// VideoHandler holds the video service dependency.
type VideoHandler struct {
	videoService service.VideoService
}

// NewVideoHandler creates a new VideoHandler.
func NewVideoHandler(videoService service.VideoService) *VideoHandler {
	return &VideoHandler{videoService: videoService}
}

// --- DTOs for API (Data Transfer Objects) ---

// UploadVideoRequest defines the expected JSON for registering an uploaded
// video. Duration is a pointer so that an explicit 0 passes the required
// check while an absent field does not.
type UploadVideoRequest struct {
	Title       string   `json:"title" binding:"required"`
	TeacherName string   `json:"teacherName" binding:"required"`
	Subject     string   `json:"subject" binding:"required"`
	URL         string   `json:"url" binding:"required"`
	PublicID    string   `json:"public_id" binding:"required"`
	Duration    *float64 `json:"duration" binding:"required"`
}

// VideoResponse is the DTO for returning video records.
type VideoResponse struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Teacher     string    `json:"teacher"`
	Subject     string    `json:"subject"`
	URL         string    `json:"url"`
	PublicID    string    `json:"public_id"`
	Duration    float64   `json:"duration"`
	Views       int64     `json:"views"`
	Completions int64     `json:"completions"`
	CreatedAt   time.Time `json:"createdAt"`
}

// MapVideoToResponse converts a domain.Video to the VideoResponse DTO.
func MapVideoToResponse(v *domain.Video) VideoResponse {
	if v == nil {
		return VideoResponse{}
	}
	return VideoResponse{
		ID:          v.ID.Hex(),
		Title:       v.Title,
		Teacher:     v.Teacher,
		Subject:     v.Subject,
		URL:         v.URL,
		PublicID:    v.PublicID,
		Duration:    v.Duration,
		Views:       v.Views,
		Completions: v.Completions,
		CreatedAt:   v.CreatedAt,
	}
}

// MapVideosToResponse converts a slice of domain.Video to response DTOs.
func MapVideosToResponse(videos []domain.Video) []VideoResponse {
	responses := make([]VideoResponse, len(videos))
	for i, v := range videos {
		responses[i] = MapVideoToResponse(&v)
	}
	return responses
}

// --- Handler Methods ---

// UploadVideo registers the metadata record for a video whose bytes have
// already been uploaded directly to the storage provider.
func (h *VideoHandler) UploadVideo(c *gin.Context) {
	var req UploadVideoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	video, err := h.videoService.CreateVideo(
		c.Request.Context(),
		req.Title,
		req.TeacherName,
		req.Subject,
		req.URL,
		req.PublicID,
		*req.Duration,
	)
	if err != nil {
		if errors.Is(err, service.ErrValidationFailed) {
			abortWithError(c, http.StatusBadRequest, "All video fields are required.")
		} else {
			log.Printf("ERROR: creating video record: %v", err)
			abortWithError(c, http.StatusInternalServerError, "Failed to save video.")
		}
		return
	}

	c.JSON(http.StatusCreated, MapVideoToResponse(video))
}

// ListVideos returns every video record, newest first.
func (h *VideoHandler) ListVideos(c *gin.Context) {
	videos, err := h.videoService.ListVideos(c.Request.Context())
	if err != nil {
		log.Printf("ERROR: listing videos: %v", err)
		abortWithError(c, http.StatusInternalServerError, "Failed to fetch videos.")
		return
	}

	if videos == nil {
		c.JSON(http.StatusOK, []VideoResponse{})
		return
	}

	c.JSON(http.StatusOK, MapVideosToResponse(videos))
}

// RecordView increments the views counter of a video.
func (h *VideoHandler) RecordView(c *gin.Context) {
	h.increment(c, h.videoService.RecordView, "View recorded.")
}

// RecordCompletion increments the completions counter of a video.
func (h *VideoHandler) RecordCompletion(c *gin.Context) {
	h.increment(c, h.videoService.RecordCompletion, "Completion recorded.")
}

// increment performs a blind counter increment. A malformed or unknown id is
// not distinguished from any other store failure here: the increment is
// attempted without an existence pre-check and every failure surfaces as a
// generic 500.
func (h *VideoHandler) increment(c *gin.Context, op func(ctx context.Context, id primitive.ObjectID) error, ack string) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err == nil {
		err = op(c.Request.Context(), id)
	}
	if err != nil {
		log.Printf("ERROR: incrementing counter for video %s: %v", c.Param("id"), err)
		abortWithError(c, http.StatusInternalServerError, "Failed to update video.")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": ack})
}
