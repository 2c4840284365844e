package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Project represents a volunteer project stored in MongoDB
type Project struct {
	ID          primitive.ObjectID `json:"_id,omitempty" bson:"_id,omitempty"`
	Title       string             `json:"title" bson:"title"`
	Description string             `json:"description" bson:"description"`
	Location    string             `json:"location" bson:"location"`
	StartDate   time.Time          `json:"startDate" bson:"start_date"`
	EndDate     time.Time          `json:"endDate" bson:"end_date"`
	Keys        []string           `json:"keys" bson:"keys"` // Rateable aspects, insertion order preserved
	Image       string             `json:"image,omitempty" bson:"image,omitempty"`
	CreatedAt   time.Time          `json:"createdAt" bson:"created_at"`
	UpdatedAt   time.Time          `json:"updatedAt" bson:"updated_at"`
}

// HasKey reports whether key is one of the project's rateable aspects.
func (p *Project) HasKey(key string) bool {
	for _, k := range p.Keys {
		if k == key {
			return true
		}
	}
	return false
}

// CreateProjectRequest defines the request body for creating a new project
type CreateProjectRequest struct {
	Title       string   `json:"title" validate:"required,min=2,max=120"`
	Description string   `json:"description" validate:"required,min=1,max=5000"`
	Location    string   `json:"location" validate:"required,min=1,max=200"`
	StartDate   string   `json:"startDate" validate:"required"`
	EndDate     string   `json:"endDate" validate:"required"`
	Keys        []string `json:"keys" validate:"omitempty,dive,min=1,max=50"`
	Image       string   `json:"image,omitempty" validate:"omitempty,url"`
}

// UpdateProjectRequest defines the request body for updating an existing project
type UpdateProjectRequest struct {
	Title       string   `json:"title" validate:"required,min=2,max=120"`
	Description string   `json:"description" validate:"required,min=1,max=5000"`
	Location    string   `json:"location" validate:"required,min=1,max=200"`
	StartDate   string   `json:"startDate" validate:"required"`
	EndDate     string   `json:"endDate" validate:"required"`
	Keys        []string `json:"keys" validate:"omitempty,dive,min=1,max=50"`
	Image       string   `json:"image,omitempty" validate:"omitempty,url"`
}

// RatingSummary is the on-demand aggregate of a project's review set.
// OverallRating is nil when the project has no reviews ("N/A", never zero).
type RatingSummary struct {
	OverallRating *float64           `json:"overallRating"`
	KeyAverages   map[string]float64 `json:"keyAverages"` // Keys with no ratings are absent
	ReviewCount   int                `json:"reviewCount"`
}

// ProjectWithRating is a project enriched with its current rating summary.
type ProjectWithRating struct {
	Project
	RatingSummary
}
