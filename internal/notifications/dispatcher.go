// Package notifications turns content events into per-recipient feed
// entries. Dispatch is fire-and-continue: a failed insert is logged and
// never surfaces to the action that triggered it.
package notifications

import (
	"fmt"
	"log"
	"time"

	"github.com/medetk/volunteerhub/backend/internal/models"
	"github.com/medetk/volunteerhub/backend/internal/repositories"
)

// Dispatcher fans notification events out to their recipients.
type Dispatcher struct {
	notificationRepository repositories.NotificationRepository
	userRepository         repositories.UserRepository
}

// NewDispatcher creates a new Dispatcher
func NewDispatcher(notifRepo repositories.NotificationRepository, userRepo repositories.UserRepository) *Dispatcher {
	return &Dispatcher{
		notificationRepository: notifRepo,
		userRepository:         userRepo,
	}
}

// ProjectAdded notifies every user except the creating admin that a new
// project is open for discovery.
func (d *Dispatcher) ProjectAdded(actor *models.User, project *models.Project) {
	users, err := d.userRepository.GetUsers()
	if err != nil {
		log.Printf("notifications: listing recipients for project_added: %v", err)
		return
	}
	for _, u := range users {
		if u.ID == actor.ID {
			continue
		}
		d.deliver(&models.Notification{
			Type:        models.NotificationProjectAdded,
			ActorID:     actor.ID,
			RecipientID: u.ID,
			ProjectID:   project.ID.Hex(),
			Title:       "New project added",
			Message:     fmt.Sprintf("%q is now open in %s", project.Title, project.Location),
		})
	}
}

// ReviewAdded notifies the admin set, minus the review's author, that a
// project received a new review.
func (d *Dispatcher) ReviewAdded(actor *models.User, project *models.Project, review *models.Review) {
	admins, err := d.userRepository.GetUsersByRole(models.RoleAdmin)
	if err != nil {
		log.Printf("notifications: listing recipients for review_added: %v", err)
		return
	}
	for _, admin := range admins {
		if admin.ID == actor.ID {
			continue
		}
		d.deliver(&models.Notification{
			Type:        models.NotificationReviewAdded,
			ActorID:     actor.ID,
			RecipientID: admin.ID,
			ProjectID:   review.ProjectID,
			Title:       "New review",
			Message:     fmt.Sprintf("%s rated %q %d/5", actor.Name, project.Title, review.OverallRating),
		})
	}
}

// QuestionAnswered notifies the original asker only. Nothing is sent when
// the asker answered their own question.
func (d *Dispatcher) QuestionAnswered(actor *models.User, question *models.Question, projectTitle string) {
	if question.UserID == actor.ID {
		return
	}
	d.deliver(&models.Notification{
		Type:        models.NotificationQuestionAnswered,
		ActorID:     actor.ID,
		RecipientID: question.UserID,
		ProjectID:   question.ProjectID,
		Title:       "Your question was answered",
		Message:     fmt.Sprintf("%s answered your question about %q", actor.Name, projectTitle),
	})
}

func (d *Dispatcher) deliver(n *models.Notification) {
	n.CreatedAt = time.Now()
	if err := d.notificationRepository.CreateNotification(n); err != nil {
		log.Printf("notifications: delivering %s to user %d: %v", n.Type, n.RecipientID, err)
	}
}
