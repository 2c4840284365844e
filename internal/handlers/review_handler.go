package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/medetk/volunteerhub/backend/internal/authz"
	"github.com/medetk/volunteerhub/backend/internal/models"
	"github.com/medetk/volunteerhub/backend/internal/notifications"
	"github.com/medetk/volunteerhub/backend/internal/repositories"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// ReviewHandler handles HTTP requests related to reviews
type ReviewHandler struct {
	reviewRepository  repositories.ReviewRepository
	projectRepository repositories.ProjectRepository
	userRepository    repositories.UserRepository
	dispatcher        *notifications.Dispatcher
}

// NewReviewHandler creates a new ReviewHandler
func NewReviewHandler(
	reviewRepo repositories.ReviewRepository,
	projectRepo repositories.ProjectRepository,
	userRepo repositories.UserRepository,
	dispatcher *notifications.Dispatcher,
) *ReviewHandler {
	return &ReviewHandler{
		reviewRepository:  reviewRepo,
		projectRepository: projectRepo,
		userRepository:    userRepo,
		dispatcher:        dispatcher,
	}
}

// RegisterReviewRoutes registers review-related routes
func (h *ReviewHandler) RegisterReviewRoutes(g *echo.Group) {
	g.GET("/reviews/:project_id", h.GetReviewsByProject)
	g.POST("/reviews", h.CreateReview)
	g.PUT("/reviews/:id", h.UpdateReview)
	g.DELETE("/reviews/:id", h.DeleteReview)
}

// RegisterAdminRoutes registers moderation routes on the admin group
func (h *ReviewHandler) RegisterAdminRoutes(g *echo.Group) {
	g.GET("/reviews", h.GetAllReviews)
	g.PUT("/reviews/:id", h.UpdateReview)
	g.DELETE("/reviews/:id", h.DeleteReview)
}

// GetReviewsByProject retrieves all reviews for a project, with author names
func (h *ReviewHandler) GetReviewsByProject(c echo.Context) error {
	projectID := c.Param("project_id")

	if _, err := h.projectRepository.GetProjectByID(c.Request().Context(), projectID); err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Project not found")
	}

	reviews, err := h.reviewRepository.GetReviewsByProjectID(projectID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, h.withAuthors(reviews))
}

// GetAllReviews retrieves every review for the admin moderation panel
func (h *ReviewHandler) GetAllReviews(c echo.Context) error {
	actor, err := currentUser(c, h.userRepository)
	if err != nil {
		return err
	}
	if err := authz.Authorize(actor, authz.ActionModerate, nil); err != nil {
		return denied(err)
	}

	reviews, err := h.reviewRepository.GetAllReviews()
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, h.withAuthors(reviews))
}

// CreateReview submits a new review for a project
func (h *ReviewHandler) CreateReview(c echo.Context) error {
	actor, err := currentUser(c, h.userRepository)
	if err != nil {
		return err
	}
	if err := authz.Authorize(actor, authz.ActionCreateReview, nil); err != nil {
		return denied(err)
	}

	var req models.CreateReviewRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	validate := validator.New()
	if err := validate.Struct(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	project, err := h.projectRepository.GetProjectByID(c.Request().Context(), req.ProjectID)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Project not found")
	}

	comment, keyRatings, err := validateReviewContent(project, req.Comment, req.KeyRatings)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	review := &models.Review{
		ProjectID:     req.ProjectID,
		UserID:        actor.ID,
		Comment:       comment,
		OverallRating: req.OverallRating,
		KeyRatings:    datatypes.NewJSONType(keyRatings),
	}

	if err := h.reviewRepository.CreateReview(review); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	h.dispatcher.ReviewAdded(actor, project, review)

	return c.JSON(http.StatusCreated, review)
}

// UpdateReview updates an existing review (author or admin)
func (h *ReviewHandler) UpdateReview(c echo.Context) error {
	actor, err := currentUser(c, h.userRepository)
	if err != nil {
		return err
	}

	reviewID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid review ID")
	}

	review, err := h.reviewRepository.GetReviewByID(uint(reviewID))
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return echo.NewHTTPError(http.StatusNotFound, "Review not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	if err := authz.Authorize(actor, authz.ActionUpdateReview, &authz.Resource{OwnerID: review.UserID}); err != nil {
		return denied(err)
	}

	var req models.UpdateReviewRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	validate := validator.New()
	if err := validate.Struct(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	project, err := h.projectRepository.GetProjectByID(c.Request().Context(), review.ProjectID)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Project not found")
	}

	comment, keyRatings, err := validateReviewContent(project, req.Comment, req.KeyRatings)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	review.Comment = comment
	review.OverallRating = req.OverallRating
	review.KeyRatings = datatypes.NewJSONType(keyRatings)

	if err := h.reviewRepository.UpdateReview(review); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, review)
}

// DeleteReview deletes a review (author or admin)
func (h *ReviewHandler) DeleteReview(c echo.Context) error {
	actor, err := currentUser(c, h.userRepository)
	if err != nil {
		return err
	}

	reviewID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid review ID")
	}

	review, err := h.reviewRepository.GetReviewByID(uint(reviewID))
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return echo.NewHTTPError(http.StatusNotFound, "Review not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	if err := authz.Authorize(actor, authz.ActionDeleteReview, &authz.Resource{OwnerID: review.UserID}); err != nil {
		return denied(err)
	}

	if err := h.reviewRepository.DeleteReview(uint(reviewID)); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.NoContent(http.StatusNoContent)
}

// validateReviewContent trims the comment and checks the key ratings
// against the project's key set. Unknown keys are rejected, not dropped.
func validateReviewContent(project *models.Project, comment string, keyRatings map[string]int) (string, map[string]int, error) {
	comment = strings.TrimSpace(comment)
	if comment == "" {
		return "", nil, fmt.Errorf("comment must not be empty")
	}

	cleaned := make(map[string]int, len(keyRatings))
	for key, rating := range keyRatings {
		if !project.HasKey(key) {
			return "", nil, fmt.Errorf("unknown project key: %s", key)
		}
		if rating < 1 || rating > 5 {
			return "", nil, fmt.Errorf("rating for key %q must be between 1 and 5", key)
		}
		cleaned[key] = rating
	}
	return comment, cleaned, nil
}

// withAuthors enriches reviews with the reviewer's display name.
func (h *ReviewHandler) withAuthors(reviews []models.Review) []models.ReviewWithAuthor {
	enriched := make([]models.ReviewWithAuthor, len(reviews))
	nameCache := make(map[uint]string)

	for i, r := range reviews {
		enriched[i] = models.ReviewWithAuthor{Review: r}
		if name, ok := nameCache[r.UserID]; ok {
			enriched[i].AuthorName = name
		} else if user, err := h.userRepository.GetUserByID(r.UserID); err == nil {
			nameCache[r.UserID] = user.Name
			enriched[i].AuthorName = user.Name
		}
	}
	return enriched
}
