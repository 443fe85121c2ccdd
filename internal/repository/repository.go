package repository

import (
	"context"

	"joelearn/media-api/internal/domain"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Error constants for the repository layer.
var (
	ErrNotFound     = RepositoryError("not found")
	ErrUpdateFailed = RepositoryError("update failed")
	ErrDeleteFailed = RepositoryError("delete failed")
)

// RepositoryError helps distinguish repository errors from other failures.
type RepositoryError string

func (e RepositoryError) Error() string {
	return string(e)
}

// Counter fields on a video record that may be incremented.
const (
	VideoFieldViews       = "views"
	VideoFieldCompletions = "completions"
)

// VideoRepository defines the interface for interacting with video records.
type VideoRepository interface {
	Create(ctx context.Context, video *domain.Video) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Video, error)
	// List returns all video records, newest creation first.
	List(ctx context.Context) ([]domain.Video, error)
	// IncrementField applies a blind atomic $inc on a counter field. It does
	// not pre-check existence; a missing id surfaces as ErrNotFound after
	// the store reports zero matched documents.
	IncrementField(ctx context.Context, id primitive.ObjectID, field string, delta int64) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// AssessmentRepository defines the interface for interacting with assessment records.
type AssessmentRepository interface {
	Create(ctx context.Context, assessment *domain.Assessment) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Assessment, error)
	List(ctx context.Context) ([]domain.Assessment, error)
	// UpdateTitle sets the title field; title is the only mutable field on
	// an assessment.
	UpdateTitle(ctx context.Context, id primitive.ObjectID, title string) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}
