package service

import "github.com/ykuzmenko/smartsend/internal/models"

// ProfileUpsert carries a partial profile update request. Nil fields are
// not changed; a phone number also derives the hash and masked forms.
type ProfileUpsert struct {
	AnonID      string
	PhoneNumber *string
	OptIn       *bool
	Channel     *string
}

// SendRequest asks for an outbound message to be sent.
type SendRequest struct {
	AnonID       string
	Template     string
	ProductInfo  models.JSONMap
	ForceChannel string
}

// SendResult reports a successful send: the created message id and the
// channel the routing policy resolved.
type SendResult struct {
	MessageID string
	Channel   string
}

// HealthStatus summarizes the health of the service's dependencies.
type HealthStatus struct {
	Status         string `json:"status"`
	DatabaseStatus string `json:"database_status"`
	RedisStatus    string `json:"redis_status"`
}
