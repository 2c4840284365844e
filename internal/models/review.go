package models

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Review represents a reviewer's rating of a project
type Review struct {
	gorm.Model    `json:"-"`
	ID            uint                              `json:"id" gorm:"primaryKey"`
	ProjectID     string                            `json:"projectId" gorm:"index"` // ID of the rated project (MongoDB ObjectID as string)
	UserID        uint                              `json:"userId" gorm:"index"`    // ID of the reviewer who wrote the review
	Comment       string                            `json:"comment"`
	OverallRating int                               `json:"overallRating"`
	KeyRatings    datatypes.JSONType[map[string]int] `json:"keyRatings"` // Per-aspect ratings, key set a subset of the project's keys
}

// CreateReviewRequest defines the request body for submitting a new review
type CreateReviewRequest struct {
	ProjectID     string         `json:"projectId" validate:"required"`
	Comment       string         `json:"comment" validate:"required,min=1,max=2000"`
	OverallRating int            `json:"overallRating" validate:"required,min=1,max=5"`
	KeyRatings    map[string]int `json:"keyRatings" validate:"omitempty,dive,min=1,max=5"`
}

// UpdateReviewRequest defines the request body for updating an existing review
type UpdateReviewRequest struct {
	Comment       string         `json:"comment" validate:"required,min=1,max=2000"`
	OverallRating int            `json:"overallRating" validate:"required,min=1,max=5"`
	KeyRatings    map[string]int `json:"keyRatings" validate:"omitempty,dive,min=1,max=5"`
}

// ReviewWithAuthor is a review enriched with the reviewer's public identity.
type ReviewWithAuthor struct {
	Review
	AuthorName string `json:"authorName"`
}
