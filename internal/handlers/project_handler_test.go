package handlers

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"

	"github.com/medetk/volunteerhub/backend/internal/models"
	"github.com/medetk/volunteerhub/backend/internal/notifications"
)

type projectFixture struct {
	handler   *ProjectHandler
	users     *fakeUserRepo
	reviews   *fakeReviewRepo
	questions *fakeQuestionRepo
	projects  *fakeProjectRepo
	notifs    *fakeNotificationRepo
	admin     *models.User
	viewer    *models.User
}

func newProjectFixture() *projectFixture {
	users := newFakeUserRepo()
	reviews := &fakeReviewRepo{}
	questions := &fakeQuestionRepo{}
	projects := newFakeProjectRepo()
	notifs := &fakeNotificationRepo{}

	f := &projectFixture{
		users:     users,
		reviews:   reviews,
		questions: questions,
		projects:  projects,
		notifs:    notifs,
	}
	f.admin = users.add(models.User{Name: "Aida", Email: "aida@example.com", Role: models.RoleAdmin, IsApproved: true})
	f.viewer = users.add(models.User{Name: "Vera", Email: "vera@example.com", Role: models.RoleViewer})

	dispatcher := notifications.NewDispatcher(notifs, users)
	f.handler = NewProjectHandler(projects, reviews, questions, users, dispatcher)
	return f
}

func validProjectRequest() models.CreateProjectRequest {
	return models.CreateProjectRequest{
		Title:       "Beach Cleanup",
		Description: "Two weeks of coastal work.",
		Location:    "Aktau",
		StartDate:   "2026-06-01",
		EndDate:     "2026-06-14",
		Keys:        []string{"food", "safety"},
	}
}

func (f *projectFixture) create(t *testing.T, actor *models.User, req models.CreateProjectRequest) (int, error) {
	c, rec := newTestContext(t, http.MethodPost, "/api/v1/admin/projects", req, actor)
	err := f.handler.CreateProject(c)
	return httpCode(err, rec), err
}

func TestCreateProject_AdminOnly(t *testing.T) {
	f := newProjectFixture()

	code, err := f.create(t, f.viewer, validProjectRequest())
	assert.Error(t, err)
	assert.Equal(t, http.StatusForbidden, code)

	code, err = f.create(t, f.admin, validProjectRequest())
	require.NoError(t, err)
	assert.Equal(t, http.StatusCreated, code)
	assert.Len(t, f.projects.projects, 1)
}

func TestCreateProject_InvalidDateRange(t *testing.T) {
	f := newProjectFixture()
	req := validProjectRequest()
	req.StartDate = "2026-06-14"
	req.EndDate = "2026-06-01"

	code, err := f.create(t, f.admin, req)
	assert.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Empty(t, f.projects.projects)
}

func TestCreateProject_DuplicateKeysRejected(t *testing.T) {
	f := newProjectFixture()
	req := validProjectRequest()
	req.Keys = []string{"food", "food"}

	code, err := f.create(t, f.admin, req)
	assert.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestCreateProject_KeysPreserveOrder(t *testing.T) {
	f := newProjectFixture()
	req := validProjectRequest()
	req.Keys = []string{"safety", " food ", "housing"}

	_, err := f.create(t, f.admin, req)
	require.NoError(t, err)

	for _, p := range f.projects.projects {
		assert.Equal(t, []string{"safety", "food", "housing"}, p.Keys)
	}
}

func TestCreateProject_NotifiesUsers(t *testing.T) {
	f := newProjectFixture()

	_, err := f.create(t, f.admin, validProjectRequest())
	require.NoError(t, err)

	require.Len(t, f.notifs.notifications, 1)
	n := f.notifs.notifications[0]
	assert.Equal(t, models.NotificationProjectAdded, n.Type)
	assert.Equal(t, f.viewer.ID, n.RecipientID, "the creating admin is not notified")
}

func TestGetProject_IncludesRatingSummary(t *testing.T) {
	f := newProjectFixture()
	project := f.projects.add(models.Project{Title: "Beach Cleanup", Keys: []string{"food", "safety"}})
	f.reviews.reviews = append(f.reviews.reviews,
		&models.Review{ID: 1, ProjectID: project.ID.Hex(), UserID: 1, OverallRating: 4,
			KeyRatings: datatypes.NewJSONType(map[string]int{"food": 5})},
		&models.Review{ID: 2, ProjectID: project.ID.Hex(), UserID: 2, OverallRating: 2,
			KeyRatings: datatypes.NewJSONType(map[string]int{"safety": 3})},
	)

	c, rec := newTestContext(t, http.MethodGet, "/", nil, nil)
	c.SetParamNames("id")
	c.SetParamValues(project.ID.Hex())
	require.NoError(t, f.handler.GetProject(c))

	var resp models.ProjectWithRating
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotNil(t, resp.OverallRating)
	assert.Equal(t, 3.0, *resp.OverallRating)
	assert.Equal(t, 5.0, resp.KeyAverages["food"])
	assert.Equal(t, 3.0, resp.KeyAverages["safety"])
	assert.Equal(t, 2, resp.ReviewCount)
}

func TestGetProject_NoReviewsHasNilRating(t *testing.T) {
	f := newProjectFixture()
	project := f.projects.add(models.Project{Title: "Tree Planting"})

	c, rec := newTestContext(t, http.MethodGet, "/", nil, nil)
	c.SetParamNames("id")
	c.SetParamValues(project.ID.Hex())
	require.NoError(t, f.handler.GetProject(c))

	var resp models.ProjectWithRating
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Nil(t, resp.OverallRating, "no reviews renders as null, never 0")
}

func TestDeleteProject_CascadesReviewsAndQuestions(t *testing.T) {
	f := newProjectFixture()
	project := f.projects.add(models.Project{Title: "Beach Cleanup"})
	f.reviews.reviews = append(f.reviews.reviews,
		&models.Review{ID: 1, ProjectID: project.ID.Hex(), UserID: 2, OverallRating: 4})
	f.questions.add(models.Question{ProjectID: project.ID.Hex(), UserID: 2, Question: "When?"})

	c, rec := newTestContext(t, http.MethodDelete, "/", nil, f.admin)
	c.SetParamNames("id")
	c.SetParamValues(project.ID.Hex())
	require.NoError(t, f.handler.DeleteProject(c))
	assert.Equal(t, http.StatusNoContent, rec.Code)

	assert.Empty(t, f.projects.projects)
	assert.Empty(t, f.reviews.reviews)
	assert.Empty(t, f.questions.questions)
}
