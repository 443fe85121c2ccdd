package service

import (
	"context"
	"errors"
	"log"

	"joelearn/media-api/internal/domain"
	"joelearn/media-api/internal/repository"
	"joelearn/media-api/internal/storage"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Cloudinary stores PDF assessments under the image resource type.
const assessmentResourceType = "image"

// AssessmentService manages assessment metadata records and cascades record
// deletion to the storage provider.
type AssessmentService interface {
	CreateAssessment(ctx context.Context, title, teacher, url, publicID string) (*domain.Assessment, error)
	ListAssessments(ctx context.Context) ([]domain.Assessment, error)
	// RenameAssessment sets the title, the only mutable field.
	RenameAssessment(ctx context.Context, id primitive.ObjectID, title string) error
	// DeleteAssessment removes the stored object and then the record. The
	// two writes are not coordinated transactionally; a failure between
	// them leaves the stores inconsistent (known gap, see DESIGN.md).
	DeleteAssessment(ctx context.Context, id primitive.ObjectID) error
}

type assessmentService struct {
	assessmentRepo repository.AssessmentRepository
	mediaStorage   storage.MediaStorage
}

// NewAssessmentService creates a new instance of assessmentService.
func NewAssessmentService(assessmentRepo repository.AssessmentRepository, mediaStorage storage.MediaStorage) AssessmentService {
	return &assessmentService{
		assessmentRepo: assessmentRepo,
		mediaStorage:   mediaStorage,
	}
}

func (s *assessmentService) CreateAssessment(ctx context.Context, title, teacher, url, publicID string) (*domain.Assessment, error) {
	if title == "" || teacher == "" || url == "" || publicID == "" {
		return nil, ErrValidationFailed
	}

	assessment := &domain.Assessment{
		Title:    title,
		Teacher:  teacher,
		URL:      url,
		PublicID: publicID,
	}

	if _, err := s.assessmentRepo.Create(ctx, assessment); err != nil {
		return nil, err
	}
	return assessment, nil
}

func (s *assessmentService) ListAssessments(ctx context.Context) ([]domain.Assessment, error) {
	return s.assessmentRepo.List(ctx)
}

func (s *assessmentService) RenameAssessment(ctx context.Context, id primitive.ObjectID, title string) error {
	if title == "" {
		return ErrValidationFailed
	}
	if id == primitive.NilObjectID {
		return ErrValidationFailed
	}

	err := s.assessmentRepo.UpdateTitle(ctx, id, title)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrAssessmentNotFound
		}
		return err
	}
	return nil
}

func (s *assessmentService) DeleteAssessment(ctx context.Context, id primitive.ObjectID) error {
	if id == primitive.NilObjectID {
		return ErrValidationFailed
	}

	// The existence check is what distinguishes a 404 from a server fault
	// at the API layer; it also yields the public_id for the cascade.
	assessment, err := s.assessmentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrAssessmentNotFound
		}
		return err
	}

	// Destroy the stored object first so no record outlives its object.
	// If the record delete below fails we are left with a dangling record;
	// there is no compensation step.
	if err := s.mediaStorage.Destroy(ctx, assessment.PublicID, assessmentResourceType); err != nil {
		return err
	}

	if err := s.assessmentRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			// Deleted concurrently after our existence check. The object is
			// gone and so is the record; treat as success.
			log.Printf("INFO: assessment %s vanished during delete cascade", id.Hex())
			return nil
		}
		return err
	}
	return nil
}
