// internal/domain/assessment.go
package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Assessment is the metadata record for an uploaded assessment PDF.
// Title may be renamed after creation; everything else is immutable once set.
type Assessment struct {
	ID      primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title   string             `bson:"title" json:"title"`
	Teacher string             `bson:"teacher" json:"teacher"`

	URL      string `bson:"url" json:"url"`
	PublicID string `bson:"public_id" json:"public_id"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
}
