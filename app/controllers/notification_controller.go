package controllers

import (
	"net/http"

	"picshare/app/services"
)

type NotificationController struct {
	notifications *services.NotificationService
}

func NewNotificationController(notifications *services.NotificationService) *NotificationController {
	return &NotificationController{notifications: notifications}
}

// Index returns the caller's most recent notifications
func (nc *NotificationController) Index(w http.ResponseWriter, r *http.Request) {
	actorID, ok := actor(w, r)
	if !ok {
		return
	}
	list, err := nc.notifications.ListNotifications(actorID)
	if err != nil {
		sendError(w, err)
		return
	}
	sendJSON(w, http.StatusOK, list)
}

// MarkRead marks all of the caller's notifications as read
func (nc *NotificationController) MarkRead(w http.ResponseWriter, r *http.Request) {
	actorID, ok := actor(w, r)
	if !ok {
		return
	}
	updated, err := nc.notifications.MarkAllRead(actorID)
	if err != nil {
		sendError(w, err)
		return
	}
	sendJSON(w, http.StatusOK, map[string]int{"updated": updated})
}
