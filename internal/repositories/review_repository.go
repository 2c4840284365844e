package repositories

import (
	"github.com/medetk/volunteerhub/backend/internal/models"
	"gorm.io/gorm"
)

// ReviewRepository defines the interface for review data operations
type ReviewRepository interface {
	CreateReview(review *models.Review) error
	GetReviewByID(id uint) (*models.Review, error)
	// GetReviewsByProjectID returns the full review set of a project in a
	// single query, so aggregation always sees a consistent snapshot.
	GetReviewsByProjectID(projectID string) ([]models.Review, error)
	GetAllReviews() ([]models.Review, error)
	UpdateReview(review *models.Review) error
	DeleteReview(id uint) error
	DeleteReviewsByProjectID(projectID string) error
}

// PostgresReviewRepository implements ReviewRepository for PostgreSQL
type PostgresReviewRepository struct {
	db *gorm.DB
}

// NewPostgresReviewRepository creates a new PostgresReviewRepository
func NewPostgresReviewRepository(db *gorm.DB) *PostgresReviewRepository {
	return &PostgresReviewRepository{db: db}
}

// CreateReview creates a new review in PostgreSQL
func (r *PostgresReviewRepository) CreateReview(review *models.Review) error {
	return r.db.Create(review).Error
}

// GetReviewByID retrieves a review by ID from PostgreSQL
func (r *PostgresReviewRepository) GetReviewByID(id uint) (*models.Review, error) {
	var review models.Review
	if err := r.db.First(&review, id).Error; err != nil {
		return nil, err
	}
	return &review, nil
}

// GetReviewsByProjectID retrieves all reviews for a project, newest first
func (r *PostgresReviewRepository) GetReviewsByProjectID(projectID string) ([]models.Review, error) {
	var reviews []models.Review
	if err := r.db.Where("project_id = ?", projectID).
		Order("created_at DESC").
		Find(&reviews).Error; err != nil {
		return nil, err
	}
	return reviews, nil
}

// GetAllReviews retrieves every review, newest first (admin moderation view)
func (r *PostgresReviewRepository) GetAllReviews() ([]models.Review, error) {
	var reviews []models.Review
	if err := r.db.Order("created_at DESC").Find(&reviews).Error; err != nil {
		return nil, err
	}
	return reviews, nil
}

// UpdateReview updates an existing review in PostgreSQL
func (r *PostgresReviewRepository) UpdateReview(review *models.Review) error {
	return r.db.Save(review).Error
}

// DeleteReview deletes a review by ID from PostgreSQL
func (r *PostgresReviewRepository) DeleteReview(id uint) error {
	return r.db.Delete(&models.Review{}, id).Error
}

// DeleteReviewsByProjectID removes all reviews of a deleted project
func (r *PostgresReviewRepository) DeleteReviewsByProjectID(projectID string) error {
	return r.db.Where("project_id = ?", projectID).Delete(&models.Review{}).Error
}
