package api

import (
	"net/http"

	"joelearn/media-api/internal/service"

	"github.com/gin-gonic/gin"
)

// SetupRoutes wires every endpoint onto the router. Handlers get their
// services here rather than reaching for globals so tests can substitute
// in-memory fakes.
func SetupRoutes(
	router *gin.Engine,
	videoService service.VideoService,
	assessmentService service.AssessmentService,
	mediaService service.MediaService,
) {
	videoHandler := NewVideoHandler(videoService)
	assessmentHandler := NewAssessmentHandler(assessmentService)
	mediaHandler := NewMediaHandler(mediaService)

	router.Use(CORSMiddleware())

	apiGroup := router.Group("/api")
	{
		apiGroup.GET("/", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"message": "Joe Learn media API is running."})
		})

		apiGroup.POST("/generate-signature", mediaHandler.GenerateSignature)
		apiGroup.POST("/upload-raw", mediaHandler.UploadRaw)

		apiGroup.GET("/videos", videoHandler.ListVideos)
		apiGroup.POST("/upload-video", videoHandler.UploadVideo)
		apiGroup.POST("/videos/:id/view", videoHandler.RecordView)
		apiGroup.POST("/videos/:id/complete", videoHandler.RecordCompletion)

		apiGroup.GET("/assessments", assessmentHandler.ListAssessments)
		apiGroup.POST("/upload-assessment", assessmentHandler.UploadAssessment)
		apiGroup.PUT("/assessments/:id", assessmentHandler.RenameAssessment)
		apiGroup.DELETE("/assessments/:id", assessmentHandler.DeleteAssessment)
	}
}
