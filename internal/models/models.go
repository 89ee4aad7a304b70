// Package models defines data structures used throughout the application.
package models

import (
	"database/sql"
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// MessageStatus is the delivery-lifecycle state of an outbound message.
type MessageStatus string

const (
	MessageStatusSent      MessageStatus = "sent"
	MessageStatusDelivered MessageStatus = "delivered"
	MessageStatusRead      MessageStatus = "read"
	MessageStatusClicked   MessageStatus = "clicked"
	// MessageStatusFailed is reserved for real delivery failures and is
	// never produced by the lifecycle simulator.
	MessageStatusFailed MessageStatus = "failed"
)

// Channel is the delivery medium for outbound messages.
const (
	ChannelWhatsapp  = "whatsapp"
	ChannelSMS       = "sms"
	ChannelInstagram = "instagram"
)

// JSONMap is a schemaless JSON object stored in a JSONB column. The core
// never interprets its contents.
type JSONMap map[string]interface{}

// Value implements driver.Valuer.
func (m JSONMap) Value() (driver.Value, error) {
	if m == nil {
		return nil, nil
	}
	return json.Marshal(m)
}

// Scan implements sql.Scanner.
func (m *JSONMap) Scan(src interface{}) error {
	if src == nil {
		*m = nil
		return nil
	}
	b, ok := src.([]byte)
	if !ok {
		return fmt.Errorf("unsupported type %T for JSONMap", src)
	}
	return json.Unmarshal(b, m)
}

// Profile holds per-anonymous-user consent and channel preference.
type Profile struct {
	AnonID      string         `db:"anon_id" json:"anon_id"`
	PhoneNumber sql.NullString `db:"phone_number" json:"phone_number,omitempty"`
	PhoneHash   sql.NullString `db:"phone_hash" json:"phone_hash,omitempty"`
	MaskedPhone sql.NullString `db:"masked_phone" json:"masked_phone,omitempty"`
	OptIn       bool           `db:"opt_in" json:"opt_in"`
	Channel     sql.NullString `db:"channel" json:"channel,omitempty"`
	CreatedAt   time.Time      `db:"created_at" json:"created_at"`
}

// ProfileUpdate carries the fields of a partial profile update. Nil fields
// are left untouched.
type ProfileUpdate struct {
	PhoneNumber *string
	PhoneHash   *string
	MaskedPhone *string
	OptIn       *bool
	Channel     *string
}

// Event is an immutable behavioral event (add_to_cart, view, ...).
type Event struct {
	ID        string    `db:"id" json:"id"`
	AnonID    string    `db:"anon_id" json:"anon_id"`
	Type      string    `db:"type" json:"type"`
	Payload   JSONMap   `db:"payload" json:"payload"`
	Timestamp time.Time `db:"timestamp" json:"timestamp"`
}

// Message is an outbound message record driven through the delivery
// lifecycle by the simulator.
type Message struct {
	ID          string         `db:"id" json:"id"`
	AnonID      string         `db:"anon_id" json:"anon_id"`
	Template    string         `db:"template" json:"template"`
	Channel     string         `db:"channel" json:"channel"`
	Status      MessageStatus  `db:"status" json:"status"`
	ProductInfo JSONMap        `db:"product_info" json:"product_info,omitempty"`
	CreatedAt   time.Time      `db:"created_at" json:"created_at"`
	DeliveredAt sql.NullTime   `db:"delivered_at" json:"delivered_at,omitempty"`
	ReadAt      sql.NullTime   `db:"read_at" json:"read_at,omitempty"`
	ClickedAt   sql.NullTime   `db:"clicked_at" json:"clicked_at,omitempty"`
	Converted   bool           `db:"converted" json:"converted"`
	ConvertedAt sql.NullTime   `db:"converted_at" json:"converted_at,omitempty"`
}

// Product is a catalog item used for demo storefront seeding.
type Product struct {
	ID       string  `db:"id" json:"id"`
	Name     string  `db:"name" json:"name"`
	Price    float64 `db:"price" json:"price"`
	ImageURL string  `db:"image_url" json:"image_url"`
	Stock    int     `db:"stock" json:"stock"`
	Category string  `db:"category" json:"category"`
}

// Analytics is the funnel aggregate computed on demand from the message
// and profile collections.
type Analytics struct {
	Sent        int `json:"sent"`
	Delivered   int `json:"delivered"`
	Read        int `json:"read"`
	Clicks      int `json:"clicks"`
	Conversions int `json:"conversions"`
	OptOuts     int `json:"opt_outs"`
}

// LogEntry is one row of the unified activity log merging events and
// messages, newest first.
type LogEntry struct {
	Type        string      `json:"type"`
	Timestamp   time.Time   `json:"timestamp"`
	Description string      `json:"description"`
	Data        interface{} `json:"data"`
}
