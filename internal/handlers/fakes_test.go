package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"gorm.io/gorm"

	"github.com/medetk/volunteerhub/backend/internal/models"
)

// In-memory repository fakes shared by the handler tests.

type fakeUserRepo struct {
	nextID uint
	users  map[uint]*models.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[uint]*models.User{}}
}

func (f *fakeUserRepo) add(u models.User) *models.User {
	if u.ID == 0 {
		f.nextID++
		u.ID = f.nextID
	} else if u.ID > f.nextID {
		f.nextID = u.ID
	}
	f.users[u.ID] = &u
	return &u
}

func (f *fakeUserRepo) CreateUser(user *models.User) error {
	f.nextID++
	user.ID = f.nextID
	f.users[user.ID] = user
	return nil
}

func (f *fakeUserRepo) GetUserByID(id uint) (*models.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *u
	return &copied, nil
}

func (f *fakeUserRepo) GetUserByEmail(email string) (*models.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			copied := *u
			return &copied, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserRepo) GetUsers() ([]models.User, error) {
	var out []models.User
	for id := uint(1); id <= f.nextID; id++ {
		if u, ok := f.users[id]; ok {
			out = append(out, *u)
		}
	}
	return out, nil
}

func (f *fakeUserRepo) GetUsersByRole(role string) ([]models.User, error) {
	all, _ := f.GetUsers()
	var out []models.User
	for _, u := range all {
		if u.Role == role {
			out = append(out, u)
		}
	}
	return out, nil
}

func (f *fakeUserRepo) SetUserRole(id uint, role string, approved bool) error {
	u, ok := f.users[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	u.Role = role
	u.IsApproved = approved
	return nil
}

func (f *fakeUserRepo) ApproveUser(id uint) (bool, error) {
	u, ok := f.users[id]
	if !ok {
		return false, gorm.ErrRecordNotFound
	}
	if u.Role != models.RoleReviewer {
		return false, nil
	}
	u.IsApproved = true
	return true, nil
}

func (f *fakeUserRepo) DeleteUser(id uint) error {
	delete(f.users, id)
	return nil
}

type fakeReviewRepo struct {
	nextID  uint
	reviews []*models.Review
}

func (f *fakeReviewRepo) CreateReview(review *models.Review) error {
	f.nextID++
	review.ID = f.nextID
	f.reviews = append(f.reviews, review)
	return nil
}

func (f *fakeReviewRepo) GetReviewByID(id uint) (*models.Review, error) {
	for _, r := range f.reviews {
		if r.ID == id {
			copied := *r
			return &copied, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeReviewRepo) GetReviewsByProjectID(projectID string) ([]models.Review, error) {
	var out []models.Review
	for _, r := range f.reviews {
		if r.ProjectID == projectID {
			out = append(out, *r)
		}
	}
	return out, nil
}

func (f *fakeReviewRepo) GetAllReviews() ([]models.Review, error) {
	var out []models.Review
	for _, r := range f.reviews {
		out = append(out, *r)
	}
	return out, nil
}

func (f *fakeReviewRepo) UpdateReview(review *models.Review) error {
	for i, r := range f.reviews {
		if r.ID == review.ID {
			copied := *review
			f.reviews[i] = &copied
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (f *fakeReviewRepo) DeleteReview(id uint) error {
	for i, r := range f.reviews {
		if r.ID == id {
			f.reviews = append(f.reviews[:i], f.reviews[i+1:]...)
			return nil
		}
	}
	return nil
}

func (f *fakeReviewRepo) DeleteReviewsByProjectID(projectID string) error {
	var kept []*models.Review
	for _, r := range f.reviews {
		if r.ProjectID != projectID {
			kept = append(kept, r)
		}
	}
	f.reviews = kept
	return nil
}

type fakeProjectRepo struct {
	projects map[string]*models.Project
}

func newFakeProjectRepo() *fakeProjectRepo {
	return &fakeProjectRepo{projects: map[string]*models.Project{}}
}

func (f *fakeProjectRepo) add(p models.Project) *models.Project {
	if p.ID.IsZero() {
		p.ID = primitive.NewObjectID()
	}
	f.projects[p.ID.Hex()] = &p
	return &p
}

func (f *fakeProjectRepo) CreateProject(ctx context.Context, project *models.Project) error {
	project.ID = primitive.NewObjectID()
	f.projects[project.ID.Hex()] = project
	return nil
}

func (f *fakeProjectRepo) GetProjectByID(ctx context.Context, id string) (*models.Project, error) {
	p, ok := f.projects[id]
	if !ok {
		return nil, fmt.Errorf("project not found")
	}
	copied := *p
	return &copied, nil
}

func (f *fakeProjectRepo) GetAllProjects(ctx context.Context) ([]models.Project, error) {
	var out []models.Project
	for _, p := range f.projects {
		out = append(out, *p)
	}
	return out, nil
}

func (f *fakeProjectRepo) UpdateProject(ctx context.Context, id string, project *models.Project) error {
	stored, ok := f.projects[id]
	if !ok {
		return fmt.Errorf("project not found")
	}
	project.ID = stored.ID
	f.projects[id] = project
	return nil
}

func (f *fakeProjectRepo) DeleteProject(ctx context.Context, id string) error {
	if _, ok := f.projects[id]; !ok {
		return fmt.Errorf("project not found")
	}
	delete(f.projects, id)
	return nil
}

type fakeQuestionRepo struct {
	questions []*models.Question
}

func (f *fakeQuestionRepo) add(q models.Question) *models.Question {
	if q.ID.IsZero() {
		q.ID = primitive.NewObjectID()
	}
	q.Normalize()
	f.questions = append(f.questions, &q)
	return &q
}

func (f *fakeQuestionRepo) CreateQuestion(ctx context.Context, question *models.Question) error {
	question.ID = primitive.NewObjectID()
	if question.Answers == nil {
		question.Answers = []models.Answer{}
	}
	f.questions = append(f.questions, question)
	return nil
}

func (f *fakeQuestionRepo) GetQuestionByID(ctx context.Context, id string) (*models.Question, error) {
	for _, q := range f.questions {
		if q.ID.Hex() == id {
			copied := *q
			copied.Normalize()
			return &copied, nil
		}
	}
	return nil, fmt.Errorf("question not found")
}

func (f *fakeQuestionRepo) GetQuestionsByProjectID(ctx context.Context, projectID string) ([]models.Question, error) {
	var out []models.Question
	for _, q := range f.questions {
		if q.ProjectID == projectID {
			copied := *q
			copied.Normalize()
			out = append(out, copied)
		}
	}
	return out, nil
}

func (f *fakeQuestionRepo) GetAllQuestions(ctx context.Context) ([]models.Question, error) {
	var out []models.Question
	for _, q := range f.questions {
		copied := *q
		copied.Normalize()
		out = append(out, copied)
	}
	return out, nil
}

func (f *fakeQuestionRepo) AppendAnswer(ctx context.Context, id string, answer models.Answer) error {
	for _, q := range f.questions {
		if q.ID.Hex() == id {
			q.Normalize()
			q.Answers = append(q.Answers, answer)
			return nil
		}
	}
	return fmt.Errorf("question not found")
}

func (f *fakeQuestionRepo) DeleteQuestion(ctx context.Context, id string) error {
	for i, q := range f.questions {
		if q.ID.Hex() == id {
			f.questions = append(f.questions[:i], f.questions[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("question not found")
}

func (f *fakeQuestionRepo) DeleteQuestionsByProjectID(ctx context.Context, projectID string) error {
	var kept []*models.Question
	for _, q := range f.questions {
		if q.ProjectID != projectID {
			kept = append(kept, q)
		}
	}
	f.questions = kept
	return nil
}

type fakeNotificationRepo struct {
	nextID        uint
	notifications []*models.Notification
}

func (f *fakeNotificationRepo) CreateNotification(n *models.Notification) error {
	f.nextID++
	n.ID = f.nextID
	f.notifications = append(f.notifications, n)
	return nil
}

func (f *fakeNotificationRepo) GetByID(id uint) (*models.Notification, error) {
	for _, n := range f.notifications {
		if n.ID == id {
			copied := *n
			return &copied, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeNotificationRepo) GetByRecipientID(recipientID uint) ([]models.Notification, error) {
	var out []models.Notification
	for i := len(f.notifications) - 1; i >= 0; i-- {
		if f.notifications[i].RecipientID == recipientID {
			out = append(out, *f.notifications[i])
		}
	}
	return out, nil
}

func (f *fakeNotificationRepo) GetUnreadCount(recipientID uint) (int64, error) {
	var count int64
	for _, n := range f.notifications {
		if n.RecipientID == recipientID && !n.IsRead {
			count++
		}
	}
	return count, nil
}

func (f *fakeNotificationRepo) MarkAsRead(notificationID uint) error {
	for _, n := range f.notifications {
		if n.ID == notificationID && !n.IsRead {
			n.IsRead = true
		}
	}
	return nil
}

func (f *fakeNotificationRepo) MarkAllAsRead(recipientID uint) error {
	for _, n := range f.notifications {
		if n.RecipientID == recipientID && !n.IsRead {
			n.IsRead = true
		}
	}
	return nil
}

// newTestContext builds an echo context carrying an optional JSON body and
// the JWT claims of the acting user.
func newTestContext(t *testing.T, method, target string, body interface{}, actor *models.User) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encoding request body: %v", err)
		}
	}

	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := echo.New().NewContext(req, rec)

	if actor != nil {
		c.Set("user", &models.JwtCustomClaims{UserID: actor.ID, Email: actor.Email, Role: actor.Role})
	}
	return c, rec
}

// httpCode extracts the status code from a handler error, or falls back to
// the recorded status for successful calls.
func httpCode(err error, rec *httptest.ResponseRecorder) int {
	if err == nil {
		return rec.Code
	}
	if he, ok := err.(*echo.HTTPError); ok {
		return he.Code
	}
	return http.StatusInternalServerError
}
