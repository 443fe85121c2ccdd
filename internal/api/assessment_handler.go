package api

import (
	"errors"
	"log"
	"net/http"
	"time"

	"joelearn/media-api/internal/domain"
	"joelearn/media-api/internal/service"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AssessmentHandler holds the assessment service dependency.
type AssessmentHandler struct {
	assessmentService service.AssessmentService
}

// NewAssessmentHandler creates a new AssessmentHandler.
func NewAssessmentHandler(assessmentService service.AssessmentService) *AssessmentHandler {
	return &AssessmentHandler{assessmentService: assessmentService}
}

// --- DTOs for API (Data Transfer Objects) ---

// UploadAssessmentRequest defines the expected JSON for registering an
// uploaded assessment PDF.
type UploadAssessmentRequest struct {
	Title       string `json:"title" binding:"required"`
	TeacherName string `json:"teacherName" binding:"required"`
	URL         string `json:"url" binding:"required"`
	PublicID    string `json:"public_id" binding:"required"`
}

// RenameAssessmentRequest defines the expected JSON for the title update.
type RenameAssessmentRequest struct {
	Title string `json:"title" binding:"required"`
}

// AssessmentResponse is the DTO for returning assessment records.
type AssessmentResponse struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Teacher   string    `json:"teacher"`
	URL       string    `json:"url"`
	PublicID  string    `json:"public_id"`
	CreatedAt time.Time `json:"createdAt"`
}

// MapAssessmentToResponse converts a domain.Assessment to the response DTO.
func MapAssessmentToResponse(a *domain.Assessment) AssessmentResponse {
	if a == nil {
		return AssessmentResponse{}
	}
	return AssessmentResponse{
		ID:        a.ID.Hex(),
		Title:     a.Title,
		Teacher:   a.Teacher,
		URL:       a.URL,
		PublicID:  a.PublicID,
		CreatedAt: a.CreatedAt,
	}
}

// MapAssessmentsToResponse converts a slice of domain.Assessment to DTOs.
func MapAssessmentsToResponse(assessments []domain.Assessment) []AssessmentResponse {
	responses := make([]AssessmentResponse, len(assessments))
	for i, a := range assessments {
		responses[i] = MapAssessmentToResponse(&a)
	}
	return responses
}

// --- Handler Methods ---

// UploadAssessment registers the metadata record for an assessment whose
// file has already been uploaded directly to the storage provider.
func (h *AssessmentHandler) UploadAssessment(c *gin.Context) {
	var req UploadAssessmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	assessment, err := h.assessmentService.CreateAssessment(
		c.Request.Context(),
		req.Title,
		req.TeacherName,
		req.URL,
		req.PublicID,
	)
	if err != nil {
		if errors.Is(err, service.ErrValidationFailed) {
			abortWithError(c, http.StatusBadRequest, "All assessment fields are required.")
		} else {
			log.Printf("ERROR: creating assessment record: %v", err)
			abortWithError(c, http.StatusInternalServerError, "Failed to save assessment.")
		}
		return
	}

	c.JSON(http.StatusCreated, MapAssessmentToResponse(assessment))
}

// ListAssessments returns every assessment record, newest first.
func (h *AssessmentHandler) ListAssessments(c *gin.Context) {
	assessments, err := h.assessmentService.ListAssessments(c.Request.Context())
	if err != nil {
		log.Printf("ERROR: listing assessments: %v", err)
		abortWithError(c, http.StatusInternalServerError, "Failed to fetch assessments.")
		return
	}

	if assessments == nil {
		c.JSON(http.StatusOK, []AssessmentResponse{})
		return
	}

	c.JSON(http.StatusOK, MapAssessmentsToResponse(assessments))
}

// RenameAssessment updates the title of an assessment, its only mutable
// field. A missing record is not given its own status here; like the video
// counters, the update is attempted blind and failures map to 500.
func (h *AssessmentHandler) RenameAssessment(c *gin.Context) {
	var req RenameAssessmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: title is required.")
		return
	}

	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err == nil {
		err = h.assessmentService.RenameAssessment(c.Request.Context(), id, req.Title)
	}
	if err != nil {
		if errors.Is(err, service.ErrValidationFailed) {
			abortWithError(c, http.StatusBadRequest, "Validation error: title is required.")
			return
		}
		log.Printf("ERROR: renaming assessment %s: %v", c.Param("id"), err)
		abortWithError(c, http.StatusInternalServerError, "Failed to update assessment.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Assessment updated."})
}

// DeleteAssessment removes the record and cascades the delete to the stored
// object. This is the one endpoint where a missing record is an explicit 404.
func (h *AssessmentHandler) DeleteAssessment(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		// An unparsable id cannot name an existing record.
		abortWithError(c, http.StatusNotFound, "Assessment not found.")
		return
	}

	if err := h.assessmentService.DeleteAssessment(c.Request.Context(), id); err != nil {
		if errors.Is(err, service.ErrAssessmentNotFound) {
			abortWithError(c, http.StatusNotFound, "Assessment not found.")
			return
		}
		log.Printf("ERROR: deleting assessment %s: %v", c.Param("id"), err)
		abortWithError(c, http.StatusInternalServerError, "Failed to delete assessment.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Assessment deleted."})
}
