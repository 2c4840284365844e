package handlers

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/medetk/volunteerhub/backend/internal/authz"
	"github.com/medetk/volunteerhub/backend/internal/models"
	"github.com/medetk/volunteerhub/backend/internal/notifications"
	"github.com/medetk/volunteerhub/backend/internal/ratings"
	"github.com/medetk/volunteerhub/backend/internal/repositories"
)

// ProjectHandler handles the public project feed and admin project management
type ProjectHandler struct {
	projectRepository  repositories.ProjectRepository
	reviewRepository   repositories.ReviewRepository
	questionRepository repositories.QuestionRepository
	userRepository     repositories.UserRepository
	dispatcher         *notifications.Dispatcher
}

// NewProjectHandler creates a new ProjectHandler
func NewProjectHandler(
	projectRepo repositories.ProjectRepository,
	reviewRepo repositories.ReviewRepository,
	questionRepo repositories.QuestionRepository,
	userRepo repositories.UserRepository,
	dispatcher *notifications.Dispatcher,
) *ProjectHandler {
	return &ProjectHandler{
		projectRepository:  projectRepo,
		reviewRepository:   reviewRepo,
		questionRepository: questionRepo,
		userRepository:     userRepo,
		dispatcher:         dispatcher,
	}
}

// RegisterPublicRoutes registers the unauthenticated discovery routes
func (h *ProjectHandler) RegisterPublicRoutes(g *echo.Group) {
	g.GET("/projects", h.GetProjects)
	g.GET("/projects/:id", h.GetProject)
}

// RegisterAdminRoutes registers project management routes on the admin group
func (h *ProjectHandler) RegisterAdminRoutes(g *echo.Group) {
	g.GET("/projects", h.GetProjects)
	g.POST("/projects", h.CreateProject)
	g.PUT("/projects/:id", h.UpdateProject)
	g.DELETE("/projects/:id", h.DeleteProject)
}

// GetProjects returns the project feed with rating summaries
func (h *ProjectHandler) GetProjects(c echo.Context) error {
	projects, err := h.projectRepository.GetAllProjects(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	feed := make([]models.ProjectWithRating, 0, len(projects))
	for _, p := range projects {
		reviews, err := h.reviewRepository.GetReviewsByProjectID(p.ID.Hex())
		if err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
		feed = append(feed, models.ProjectWithRating{
			Project:       p,
			RatingSummary: ratings.Summarize(p.Keys, reviews),
		})
	}

	return c.JSON(http.StatusOK, feed)
}

// GetProject returns one project with its rating summary
func (h *ProjectHandler) GetProject(c echo.Context) error {
	project, err := h.projectRepository.GetProjectByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Project not found")
	}

	reviews, err := h.reviewRepository.GetReviewsByProjectID(project.ID.Hex())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, models.ProjectWithRating{
		Project:       *project,
		RatingSummary: ratings.Summarize(project.Keys, reviews),
	})
}

// CreateProject creates a new project and notifies users about it
func (h *ProjectHandler) CreateProject(c echo.Context) error {
	actor, err := currentUser(c, h.userRepository)
	if err != nil {
		return err
	}
	if err := authz.Authorize(actor, authz.ActionManageProjects, nil); err != nil {
		return denied(err)
	}

	var req models.CreateProjectRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	validate := validator.New()
	if err := validate.Struct(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	project, err := projectFromRequest(req.Title, req.Description, req.Location, req.StartDate, req.EndDate, req.Keys, req.Image)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.projectRepository.CreateProject(c.Request().Context(), project); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	h.dispatcher.ProjectAdded(actor, project)

	return c.JSON(http.StatusCreated, project)
}

// UpdateProject updates an existing project
func (h *ProjectHandler) UpdateProject(c echo.Context) error {
	actor, err := currentUser(c, h.userRepository)
	if err != nil {
		return err
	}
	if err := authz.Authorize(actor, authz.ActionManageProjects, nil); err != nil {
		return denied(err)
	}

	id := c.Param("id")
	if _, err := h.projectRepository.GetProjectByID(c.Request().Context(), id); err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Project not found")
	}

	var req models.UpdateProjectRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	validate := validator.New()
	if err := validate.Struct(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	project, err := projectFromRequest(req.Title, req.Description, req.Location, req.StartDate, req.EndDate, req.Keys, req.Image)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.projectRepository.UpdateProject(c.Request().Context(), id, project); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	updated, err := h.projectRepository.GetProjectByID(c.Request().Context(), id)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, updated)
}

// DeleteProject deletes a project along with its reviews and questions
func (h *ProjectHandler) DeleteProject(c echo.Context) error {
	actor, err := currentUser(c, h.userRepository)
	if err != nil {
		return err
	}
	if err := authz.Authorize(actor, authz.ActionManageProjects, nil); err != nil {
		return denied(err)
	}

	id := c.Param("id")
	if err := h.projectRepository.DeleteProject(c.Request().Context(), id); err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Project not found")
	}

	if err := h.reviewRepository.DeleteReviewsByProjectID(id); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if err := h.questionRepository.DeleteQuestionsByProjectID(c.Request().Context(), id); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.NoContent(http.StatusNoContent)
}

// projectFromRequest validates the date range and key set and builds the
// project entity. Keys keep their submitted order; duplicates are rejected.
func projectFromRequest(title, description, location, startDate, endDate string, keys []string, image string) (*models.Project, error) {
	start, err := parseDate(startDate)
	if err != nil {
		return nil, err
	}
	end, err := parseDate(endDate)
	if err != nil {
		return nil, err
	}
	if end.Before(start) {
		return nil, fmt.Errorf("endDate must not be before startDate")
	}

	cleaned := make([]string, 0, len(keys))
	seen := make(map[string]bool, len(keys))
	for _, k := range keys {
		k = strings.TrimSpace(k)
		if k == "" {
			continue
		}
		if seen[k] {
			return nil, fmt.Errorf("duplicate project key: %s", k)
		}
		seen[k] = true
		cleaned = append(cleaned, k)
	}

	return &models.Project{
		Title:       title,
		Description: description,
		Location:    location,
		StartDate:   start,
		EndDate:     end,
		Keys:        cleaned,
		Image:       image,
	}, nil
}

// parseDate accepts the date-input format used by the admin panel as well
// as full RFC 3339 timestamps.
func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, s)
}
