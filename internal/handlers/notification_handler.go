package handlers

import (
	"net/http"
	"sort"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/medetk/volunteerhub/backend/internal/models"
	"github.com/medetk/volunteerhub/backend/internal/repositories"
	"gorm.io/gorm"
)

// NotificationHandler handles notification-related HTTP requests
type NotificationHandler struct {
	notificationRepository repositories.NotificationRepository
	userRepository         repositories.UserRepository
}

// NewNotificationHandler creates a new NotificationHandler
func NewNotificationHandler(notifRepo repositories.NotificationRepository, userRepo repositories.UserRepository) *NotificationHandler {
	return &NotificationHandler{
		notificationRepository: notifRepo,
		userRepository:         userRepo,
	}
}

// RegisterNotificationRoutes registers notification routes
func (h *NotificationHandler) RegisterNotificationRoutes(g *echo.Group) {
	g.GET("/notifications", h.GetNotifications)
	g.GET("/notifications/unread-count", h.GetUnreadCount)
	g.PUT("/notifications/:id/read", h.MarkAsRead)
	g.PUT("/notifications/mark-all-read", h.MarkAllAsRead)
}

// GetNotifications returns the actor's feed. Filtering (all|unread|read)
// and sorting (newest|oldest) are read-side projections over the stored
// set, controlled by query params.
func (h *NotificationHandler) GetNotifications(c echo.Context) error {
	actor, err := currentUser(c, h.userRepository)
	if err != nil {
		return err
	}

	notifications, err := h.notificationRepository.GetByRecipientID(actor.ID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	switch c.QueryParam("filter") {
	case "unread":
		notifications = filterNotifications(notifications, false)
	case "read":
		notifications = filterNotifications(notifications, true)
	}

	// Stored order is newest first; flip on demand.
	if c.QueryParam("sort") == "oldest" {
		sort.SliceStable(notifications, func(i, j int) bool {
			return notifications[i].CreatedAt.Before(notifications[j].CreatedAt)
		})
	}

	unread := 0
	for _, n := range notifications {
		if !n.IsRead {
			unread++
		}
	}

	return c.JSON(http.StatusOK, echo.Map{
		"notifications": notifications,
		"unreadCount":   unread,
	})
}

// GetUnreadCount returns the unread notification count
func (h *NotificationHandler) GetUnreadCount(c echo.Context) error {
	actor, err := currentUser(c, h.userRepository)
	if err != nil {
		return err
	}

	count, err := h.notificationRepository.GetUnreadCount(actor.ID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{"count": count})
}

// MarkAsRead marks one notification as read. Only the recipient may do so;
// marking an already-read notification again is a no-op, not an error.
func (h *NotificationHandler) MarkAsRead(c echo.Context) error {
	actor, err := currentUser(c, h.userRepository)
	if err != nil {
		return err
	}

	notifID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid notification ID")
	}

	notification, err := h.notificationRepository.GetByID(uint(notifID))
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return echo.NewHTTPError(http.StatusNotFound, "Notification not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	if notification.RecipientID != actor.ID {
		return echo.NewHTTPError(http.StatusForbidden, "Not the recipient of this notification")
	}

	if err := h.notificationRepository.MarkAsRead(uint(notifID)); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true})
}

// MarkAllAsRead marks every unread notification of the actor as read
func (h *NotificationHandler) MarkAllAsRead(c echo.Context) error {
	actor, err := currentUser(c, h.userRepository)
	if err != nil {
		return err
	}

	if err := h.notificationRepository.MarkAllAsRead(actor.ID); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true})
}

func filterNotifications(notifications []models.Notification, read bool) []models.Notification {
	filtered := make([]models.Notification, 0, len(notifications))
	for _, n := range notifications {
		if n.IsRead == read {
			filtered = append(filtered, n)
		}
	}
	return filtered
}
