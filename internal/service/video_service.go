package service

import (
	"context"
	"errors"

	"joelearn/media-api/internal/domain"
	"joelearn/media-api/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// --- Error Definitions ---
var (
	ErrValidationFailed   = errors.New("validation failed")
	ErrVideoNotFound      = errors.New("video not found")
	ErrAssessmentNotFound = errors.New("assessment not found")
)

// VideoService manages video metadata records and their engagement counters.
type VideoService interface {
	// CreateVideo persists a record for a video that has already been
	// uploaded to the storage provider. duration of zero is valid.
	CreateVideo(ctx context.Context, title, teacher, subject, url, publicID string, duration float64) (*domain.Video, error)
	ListVideos(ctx context.Context) ([]domain.Video, error)
	// RecordView increments the views counter by one. The increment is a
	// blind atomic add; a missing id surfaces as an error after the write
	// attempt, not before.
	RecordView(ctx context.Context, id primitive.ObjectID) error
	RecordCompletion(ctx context.Context, id primitive.ObjectID) error
}

type videoService struct {
	videoRepo repository.VideoRepository
}

// NewVideoService creates a new instance of videoService.
func NewVideoService(videoRepo repository.VideoRepository) VideoService {
	return &videoService{videoRepo: videoRepo}
}

func (s *videoService) CreateVideo(ctx context.Context, title, teacher, subject, url, publicID string, duration float64) (*domain.Video, error) {
	if title == "" || teacher == "" || subject == "" || url == "" || publicID == "" {
		return nil, ErrValidationFailed
	}
	if duration < 0 {
		return nil, ErrValidationFailed
	}

	video := &domain.Video{
		Title:    title,
		Teacher:  teacher,
		Subject:  subject,
		URL:      url,
		PublicID: publicID,
		Duration: duration,
	}

	if _, err := s.videoRepo.Create(ctx, video); err != nil {
		return nil, err
	}
	// ID, counters and CreatedAt were assigned by the repository; the
	// struct already holds the full representation to return.
	return video, nil
}

func (s *videoService) ListVideos(ctx context.Context) ([]domain.Video, error) {
	return s.videoRepo.List(ctx)
}

func (s *videoService) RecordView(ctx context.Context, id primitive.ObjectID) error {
	return s.increment(ctx, id, repository.VideoFieldViews)
}

func (s *videoService) RecordCompletion(ctx context.Context, id primitive.ObjectID) error {
	return s.increment(ctx, id, repository.VideoFieldCompletions)
}

func (s *videoService) increment(ctx context.Context, id primitive.ObjectID, field string) error {
	if id == primitive.NilObjectID {
		return ErrValidationFailed
	}
	err := s.videoRepo.IncrementField(ctx, id, field, 1)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrVideoNotFound
		}
		return err
	}
	return nil
}
