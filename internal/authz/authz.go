// Package authz decides whether an actor may perform an action on a
// resource. All role and approval gates live here; handlers never inspect
// roles directly.
package authz

import (
	"fmt"

	"github.com/medetk/volunteerhub/backend/internal/models"
)

// Action identifies an operation subject to authorization.
type Action string

const (
	ActionCreateReview   Action = "create_review"
	ActionUpdateReview   Action = "update_review"
	ActionDeleteReview   Action = "delete_review"
	ActionAskQuestion    Action = "ask_question"
	ActionAnswerQuestion Action = "answer_question"
	ActionManageProjects Action = "manage_projects"
	ActionManageUsers    Action = "manage_users"
	ActionModerate       Action = "moderate_content" // delete any review/question
)

// Resource carries the resource attributes authorization rules depend on.
// OwnerID is the author of the targeted review for ownership-gated actions.
type Resource struct {
	OwnerID uint
}

// DeniedError explains why an action was refused.
type DeniedError struct {
	Action Action
	Reason string
}

func (e *DeniedError) Error() string {
	return fmt.Sprintf("%s denied: %s", e.Action, e.Reason)
}

func deny(action Action, reason string) error {
	return &DeniedError{Action: action, Reason: reason}
}

// Authorize applies the role rules in precedence order: admins may do
// everything, unauthenticated actors may do nothing, then per-action gates.
// A nil error means the action is allowed.
func Authorize(actor *models.User, action Action, res *Resource) error {
	if actor != nil && actor.Role == models.RoleAdmin {
		return nil
	}
	if actor == nil {
		return deny(action, "authentication required")
	}

	switch action {
	case ActionCreateReview, ActionAnswerQuestion:
		if actor.Role != models.RoleReviewer {
			return deny(action, "requires reviewer role")
		}
		if !actor.IsApproved {
			return deny(action, "reviewer account pending admin approval")
		}
		return nil

	case ActionAskQuestion:
		if actor.Role != models.RoleViewer {
			return deny(action, "requires viewer role")
		}
		return nil

	case ActionUpdateReview, ActionDeleteReview:
		if res == nil || res.OwnerID != actor.ID {
			return deny(action, "not the author of this review")
		}
		return nil

	case ActionManageProjects, ActionManageUsers, ActionModerate:
		return deny(action, "requires admin role")

	default:
		return deny(action, "unknown action")
	}
}

// IsDenied reports whether err is an authorization denial.
func IsDenied(err error) bool {
	_, ok := err.(*DeniedError)
	return ok
}
