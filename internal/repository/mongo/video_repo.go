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

const videoCollectionName = "videos"

// mongoVideoRepository implements repository.VideoRepository
type mongoVideoRepository struct {
	collection *mongo.Collection
}

// NewMongoVideoRepository creates a new video repository backed by MongoDB.
func NewMongoVideoRepository(db *mongo.Database) repository.VideoRepository {
	return &mongoVideoRepository{
		collection: db.Collection(videoCollectionName),
	}
}

// Create inserts a new video record. Counters start at zero and CreatedAt is
// assigned here so the value returned to the caller matches what was stored.
func (r *mongoVideoRepository) Create(ctx context.Context, video *domain.Video) (primitive.ObjectID, error) {
	if video.Title == "" || video.Teacher == "" || video.Subject == "" {
		return primitive.NilObjectID, errors.New("video title, teacher and subject are required")
	}
	if video.URL == "" || video.PublicID == "" {
		return primitive.NilObjectID, errors.New("video url and public_id are required")
	}

	video.ID = primitive.NewObjectID()
	video.Views = 0
	video.Completions = 0
	video.CreatedAt = time.Now().UTC()

	result, err := r.collection.InsertOne(ctx, video)
	if err != nil {
		return primitive.NilObjectID, err
	}

	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted ID")
	}

	return insertedID, nil
}

// GetByID retrieves a video record by its ID.
func (r *mongoVideoRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Video, error) {
	var video domain.Video
	filter := bson.M{"_id": id}

	err := r.collection.FindOne(ctx, filter).Decode(&video)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &video, nil
}

// List retrieves every video record, newest first. No pagination is applied;
// the collection is expected to stay small enough for an unbounded read.
func (r *mongoVideoRepository) List(ctx context.Context) ([]domain.Video, error) {
	var videos []domain.Video

	findOptions := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})

	cursor, err := r.collection.Find(ctx, bson.M{}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &videos); err != nil {
		return nil, err
	}

	if err = cursor.Err(); err != nil {
		return nil, err
	}

	return videos, nil
}

// IncrementField performs a blind $inc on a counter field. There is no
// existence pre-check; if the record was deleted between the client's read
// and this write, the zero MatchedCount maps to ErrNotFound.
func (r *mongoVideoRepository) IncrementField(ctx context.Context, id primitive.ObjectID, field string, delta int64) error {
	if field != repository.VideoFieldViews && field != repository.VideoFieldCompletions {
		return errors.New("field is not an incrementable counter: " + field)
	}

	filter := bson.M{"_id": id}
	update := bson.M{"$inc": bson.M{field: delta}}

	result, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return err
	}

	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}

	return nil
}

// Delete removes a video record.
func (r *mongoVideoRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}

	if result.DeletedCount == 0 {
		return repository.ErrNotFound
	}

	return nil
}

// EnsureVideoIndexes creates necessary indexes for the videos collection.
func EnsureVideoIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			// Listing is always sorted by creation time descending.
			Keys:    bson.D{{Key: "createdAt", Value: -1}},
			Options: options.Index(),
		},
		{
			// public_id uniquely identifies the stored object backing a record.
			Keys:    bson.D{{Key: "public_id", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	}

	_, err := collection.Indexes().CreateMany(ctx, indexes)
	if err != nil {
		log.Printf("WARN: Failed to create indexes for collection %s: %v", collection.Name(), err)
	}
}
