package entity

import (
	"github.com/nu7hatch/gouuid"
	"time"
)

type NotificationType string

const (
	SuccessNotification NotificationType = "success"
	ErrorNotification   NotificationType = "error"
)

type Notification struct {
	ID          string           `json:"id"`
	Type        NotificationType `json:"type"`
	Message     string           `json:"message"`
	Description string           `json:"description"`
	CreatedAt   time.Time        `json:"createdAt"`
}

func NewNotification(notificationType NotificationType, message, description string) Notification {
	id, _ := uuid.NewV4()
	return Notification{
		ID:          id.String(),
		Type:        notificationType,
		Message:     message,
		Description: description,
		CreatedAt:   time.Now(),
	}
}

func (n Notification) IsError() bool {
	return n.Type == ErrorNotification
}
