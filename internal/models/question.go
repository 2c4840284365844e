package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Answer is a single entry in a question's answer thread
type Answer struct {
	Answer       string    `json:"answer" bson:"answer"`
	AnswererID   uint      `json:"answererId" bson:"answerer_id"`
	AnswererName string    `json:"answererName" bson:"answerer_name"`
	AnsweredAt   time.Time `json:"answeredAt" bson:"answered_at"`
}

// Question represents a visitor question on a project, stored in MongoDB.
// Answers is an append-only thread; the Legacy* fields cover documents
// written before threads existed and are folded in by Normalize.
type Question struct {
	ID        primitive.ObjectID `json:"_id,omitempty" bson:"_id,omitempty"`
	ProjectID string             `json:"projectId" bson:"project_id"`
	UserID    uint               `json:"userId" bson:"user_id"` // ID of the asker
	AskerName string             `json:"askerName" bson:"asker_name"`
	Question  string             `json:"question" bson:"question"`
	Answers   []Answer           `json:"answers" bson:"answers"`
	CreatedAt time.Time          `json:"createdAt" bson:"created_at"`

	LegacyAnswer     string     `json:"-" bson:"answer,omitempty"`
	LegacyAnswerer   string     `json:"-" bson:"answerer,omitempty"`
	LegacyAnsweredAt *time.Time `json:"-" bson:"answered_at,omitempty"`
}

// Normalize folds a legacy single-answer document into the answer thread.
// Documents that already carry a thread are returned unchanged; the legacy
// fields are cleared either way so they are never written back.
func (q *Question) Normalize() {
	if len(q.Answers) == 0 && q.LegacyAnswer != "" {
		a := Answer{
			Answer:       q.LegacyAnswer,
			AnswererName: q.LegacyAnswerer,
		}
		if q.LegacyAnsweredAt != nil {
			a.AnsweredAt = *q.LegacyAnsweredAt
		}
		q.Answers = []Answer{a}
	}
	if q.Answers == nil {
		q.Answers = []Answer{}
	}
	q.LegacyAnswer = ""
	q.LegacyAnswerer = ""
	q.LegacyAnsweredAt = nil
}

// CreateQuestionRequest defines the request body for asking a new question
type CreateQuestionRequest struct {
	ProjectID string `json:"projectId" validate:"required"`
	Question  string `json:"question" validate:"required,min=1,max=2000"`
}

// AppendAnswerRequest defines the request body for answering a question
type AppendAnswerRequest struct {
	Answer string `json:"answer" validate:"required,min=1,max=5000"`
}
