// internal/domain/video.go
package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Video is the metadata record for an educational video whose bytes live
// with the storage provider. The server never handles the file itself on
// the signed-upload flow; it only brokers the credential and keeps this
// record.
type Video struct {
	ID      primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title   string             `bson:"title" json:"title"`
	Teacher string             `bson:"teacher" json:"teacher"`
	Subject string             `bson:"subject" json:"subject"`

	URL      string  `bson:"url" json:"url"`             // delivery URL returned by the provider after upload
	PublicID string  `bson:"public_id" json:"public_id"` // provider identifier, needed for destroy
	Duration float64 `bson:"duration" json:"duration"`   // seconds; zero is a legal duration

	// Engagement counters. Only ever incremented, never reset.
	Views       int64 `bson:"views" json:"views"`
	Completions int64 `bson:"completions" json:"completions"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
}
