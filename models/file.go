package models

import "time"

// StoredFile wraps an uploaded blob; other records refer to it by ID.
type StoredFile struct {
	ID          string    `bson:"id" json:"id"`
	Name        string    `bson:"name" json:"name"`
	ContentType string    `bson:"contentType" json:"contentType"`
	Size        int64     `bson:"size" json:"size"`
	Backend     string    `bson:"backend" json:"backend"`
	ObjectKey   string    `bson:"objectKey" json:"-"`
	CreatedBy   string    `bson:"createdBy,omitempty" json:"createdBy,omitempty"`
	CreatedAt   time.Time `bson:"createdAt" json:"createdAt"`
}
