package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/medetk/volunteerhub/backend/internal/authz"
	"github.com/medetk/volunteerhub/backend/internal/models"
	"github.com/medetk/volunteerhub/backend/internal/notifications"
	"github.com/medetk/volunteerhub/backend/internal/repositories"
)

// QuestionHandler handles HTTP requests related to questions and answers
type QuestionHandler struct {
	questionRepository repositories.QuestionRepository
	projectRepository  repositories.ProjectRepository
	userRepository     repositories.UserRepository
	dispatcher         *notifications.Dispatcher
}

// NewQuestionHandler creates a new QuestionHandler
func NewQuestionHandler(
	questionRepo repositories.QuestionRepository,
	projectRepo repositories.ProjectRepository,
	userRepo repositories.UserRepository,
	dispatcher *notifications.Dispatcher,
) *QuestionHandler {
	return &QuestionHandler{
		questionRepository: questionRepo,
		projectRepository:  projectRepo,
		userRepository:     userRepo,
		dispatcher:         dispatcher,
	}
}

// RegisterQuestionRoutes registers question-related routes. PUT on a
// question is the legacy answer endpoint older clients still call; it
// appends to the thread exactly like the answers route.
func (h *QuestionHandler) RegisterQuestionRoutes(g *echo.Group) {
	g.GET("/questions/:project_id", h.GetQuestionsByProject)
	g.POST("/questions", h.CreateQuestion)
	g.POST("/questions/:id/answers", h.AppendAnswer)
	g.PUT("/questions/:id", h.AppendAnswer)
}

// RegisterAdminRoutes registers moderation routes on the admin group
func (h *QuestionHandler) RegisterAdminRoutes(g *echo.Group) {
	g.GET("/questions", h.GetAllQuestions)
	g.DELETE("/questions/:id", h.DeleteQuestion)
}

// GetQuestionsByProject retrieves all questions for a project
func (h *QuestionHandler) GetQuestionsByProject(c echo.Context) error {
	projectID := c.Param("project_id")

	if _, err := h.projectRepository.GetProjectByID(c.Request().Context(), projectID); err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Project not found")
	}

	questions, err := h.questionRepository.GetQuestionsByProjectID(c.Request().Context(), projectID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, questions)
}

// GetAllQuestions retrieves every question for the admin moderation panel
func (h *QuestionHandler) GetAllQuestions(c echo.Context) error {
	actor, err := currentUser(c, h.userRepository)
	if err != nil {
		return err
	}
	if err := authz.Authorize(actor, authz.ActionModerate, nil); err != nil {
		return denied(err)
	}

	questions, err := h.questionRepository.GetAllQuestions(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, questions)
}

// CreateQuestion posts a new question on a project
func (h *QuestionHandler) CreateQuestion(c echo.Context) error {
	actor, err := currentUser(c, h.userRepository)
	if err != nil {
		return err
	}
	if err := authz.Authorize(actor, authz.ActionAskQuestion, nil); err != nil {
		return denied(err)
	}

	var req models.CreateQuestionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	validate := validator.New()
	if err := validate.Struct(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	text := strings.TrimSpace(req.Question)
	if text == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "question must not be empty")
	}

	if _, err := h.projectRepository.GetProjectByID(c.Request().Context(), req.ProjectID); err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Project not found")
	}

	question := &models.Question{
		ProjectID: req.ProjectID,
		UserID:    actor.ID,
		AskerName: actor.Name,
		Question:  text,
	}

	if err := h.questionRepository.CreateQuestion(c.Request().Context(), question); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusCreated, question)
}

// AppendAnswer adds one answer to a question's thread and notifies the asker
func (h *QuestionHandler) AppendAnswer(c echo.Context) error {
	actor, err := currentUser(c, h.userRepository)
	if err != nil {
		return err
	}
	if err := authz.Authorize(actor, authz.ActionAnswerQuestion, nil); err != nil {
		return denied(err)
	}

	questionID := c.Param("id")

	var req models.AppendAnswerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	validate := validator.New()
	if err := validate.Struct(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	text := strings.TrimSpace(req.Answer)
	if text == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "answer must not be empty")
	}

	question, err := h.questionRepository.GetQuestionByID(c.Request().Context(), questionID)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Question not found")
	}

	answer := models.Answer{
		Answer:       text,
		AnswererID:   actor.ID,
		AnswererName: actor.Name,
		AnsweredAt:   time.Now(),
	}

	if err := h.questionRepository.AppendAnswer(c.Request().Context(), questionID, answer); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	projectTitle := ""
	if project, err := h.projectRepository.GetProjectByID(c.Request().Context(), question.ProjectID); err == nil {
		projectTitle = project.Title
	}
	h.dispatcher.QuestionAnswered(actor, question, projectTitle)

	return c.JSON(http.StatusCreated, answer)
}

// DeleteQuestion removes a question and its thread
func (h *QuestionHandler) DeleteQuestion(c echo.Context) error {
	actor, err := currentUser(c, h.userRepository)
	if err != nil {
		return err
	}
	if err := authz.Authorize(actor, authz.ActionModerate, nil); err != nil {
		return denied(err)
	}

	if err := h.questionRepository.DeleteQuestion(c.Request().Context(), c.Param("id")); err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Question not found")
	}

	return c.NoContent(http.StatusNoContent)
}
