package mongo

import (
	"context"
	"errors"
	"log"
	"time"

	"joelearn/media-api/internal/domain"
	"joelearn/media-api/internal/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const assessmentCollectionName = "assessments"

// mongoAssessmentRepository implements repository.AssessmentRepository
type mongoAssessmentRepository struct {
	collection *mongo.Collection
}

// NewMongoAssessmentRepository creates a new assessment repository backed by MongoDB.
func NewMongoAssessmentRepository(db *mongo.Database) repository.AssessmentRepository {
	return &mongoAssessmentRepository{
		collection: db.Collection(assessmentCollectionName),
	}
}

// Create inserts a new assessment record.
func (r *mongoAssessmentRepository) Create(ctx context.Context, assessment *domain.Assessment) (primitive.ObjectID, error) {
	if assessment.Title == "" || assessment.Teacher == "" {
		return primitive.NilObjectID, errors.New("assessment title and teacher are required")
	}
	if assessment.URL == "" || assessment.PublicID == "" {
		return primitive.NilObjectID, errors.New("assessment url and public_id are required")
	}

	assessment.ID = primitive.NewObjectID()
	assessment.CreatedAt = time.Now().UTC()

	result, err := r.collection.InsertOne(ctx, assessment)
	if err != nil {
		return primitive.NilObjectID, err
	}

	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted ID")
	}

	return insertedID, nil
}

// GetByID retrieves an assessment record by its ID.
func (r *mongoAssessmentRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Assessment, error) {
	var assessment domain.Assessment
	filter := bson.M{"_id": id}

	err := r.collection.FindOne(ctx, filter).Decode(&assessment)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &assessment, nil
}

// List retrieves every assessment record, newest first.
func (r *mongoAssessmentRepository) List(ctx context.Context) ([]domain.Assessment, error) {
	var assessments []domain.Assessment

	findOptions := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})

	cursor, err := r.collection.Find(ctx, bson.M{}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &assessments); err != nil {
		return nil, err
	}

	if err = cursor.Err(); err != nil {
		return nil, err
	}

	return assessments, nil
}

// UpdateTitle sets the title of an existing assessment. Every other field is
// immutable, so the update is a single $set rather than a whole-document
// replace.
func (r *mongoAssessmentRepository) UpdateTitle(ctx context.Context, id primitive.ObjectID, title string) error {
	if title == "" {
		return errors.New("assessment title cannot be empty")
	}

	filter := bson.M{"_id": id}
	update := bson.M{"$set": bson.M{"title": title}}

	result, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return err
	}

	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}

	return nil
}

// Delete removes an assessment record.
func (r *mongoAssessmentRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}

	if result.DeletedCount == 0 {
		return repository.ErrNotFound
	}

	return nil
}

// EnsureAssessmentIndexes creates necessary indexes for the assessments collection.
func EnsureAssessmentIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "createdAt", Value: -1}},
			Options: options.Index(),
		},
		{
			Keys:    bson.D{{Key: "public_id", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	}

	_, err := collection.Indexes().CreateMany(ctx, indexes)
	if err != nil {
		log.Printf("WARN: Failed to create indexes for collection %s: %v", collection.Name(), err)
	}
}
