package handler

import (
	"time"

	"github.com/ykuzmenko/smartsend/internal/models"
	"github.com/ykuzmenko/smartsend/internal/settings"
)

// ProfileRequest is the POST /api/profile body. Absent fields leave the
// stored profile untouched.
type ProfileRequest struct {
	AnonID      string  `json:"anon_id"`
	PhoneNumber *string `json:"phone_number"`
	OptIn       *bool   `json:"opt_in"`
	Channel     *string `json:"channel"`
}

// EventRequest is the POST /api/events body.
type EventRequest struct {
	AnonID  string         `json:"anon_id"`
	Type    string         `json:"type"`
	Payload models.JSONMap `json:"payload"`
}

// MessageRequest is the POST /api/messages/send body.
type MessageRequest struct {
	AnonID       string         `json:"anon_id"`
	Template     string         `json:"template"`
	ProductInfo  models.JSONMap `json:"product_info"`
	ForceChannel string         `json:"force_channel"`
}

// AdminSettingsRequest is the POST /api/admin/settings body.
type AdminSettingsRequest = settings.Update

type SendMessageResponse struct {
	Success   bool   `json:"success"`
	MessageID string `json:"message_id,omitempty"`
	Channel   string `json:"channel,omitempty"`
	Error     string `json:"error,omitempty"`
}

type EventResponse struct {
	Success bool   `json:"success"`
	EventID string `json:"event_id"`
}

type DeleteResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type ConvertResponse struct {
	Success bool `json:"success"`
}

type RootResponse struct {
	Message string `json:"message"`
}

type ErrorResponse struct {
	Error     string    `json:"error"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}
