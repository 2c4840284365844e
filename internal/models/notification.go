package models

import "time"

// Notification types dispatched by the platform.
const (
	NotificationProjectAdded     = "project_added"
	NotificationReviewAdded      = "review_added"
	NotificationQuestionAnswered = "question_answered"
)

// Notification represents a per-recipient feed entry (PostgreSQL)
type Notification struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Type        string    `json:"type" gorm:"size:30;index"` // project_added, review_added, question_answered
	ActorID     uint      `json:"actorId" gorm:"index"`      // User whose action triggered the notification
	RecipientID uint      `json:"recipientId" gorm:"index"`
	ProjectID   string    `json:"projectId,omitempty"` // Related project, if any (MongoDB ObjectID as string)
	Title       string    `json:"title"`
	Message     string    `json:"message"`
	IsRead      bool      `json:"isRead" gorm:"default:false;index"`
	CreatedAt   time.Time `json:"createdAt" gorm:"index"`
}
