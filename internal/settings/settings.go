// Package settings holds the process-local admin channel-availability
// flags. The flags are deliberately volatile: they reset on restart and
// are never written to storage.
package settings

import "sync"

// Flags are the channel-availability switches read by every send-message
// evaluation.
type Flags struct {
	WhatsappActive  bool `json:"whatsapp_active"`
	SMSActive       bool `json:"sms_active"`
	InstagramActive bool `json:"instagram_active"`
}

// Update is a partial update of Flags. Nil fields are left untouched.
type Update struct {
	WhatsappActive  *bool `json:"whatsapp_active"`
	SMSActive       *bool `json:"sms_active"`
	InstagramActive *bool `json:"instagram_active"`
}

// Store is the shared mutable settings instance. Reads and writes are
// mutex-guarded so concurrent request handlers never observe a torn
// update.
type Store struct {
	mu    sync.RWMutex
	flags Flags
}

// NewStore returns a store with all channels active.
func NewStore() *Store {
	return &Store{
		flags: Flags{
			WhatsappActive:  true,
			SMSActive:       true,
			InstagramActive: true,
		},
	}
}

// Snapshot returns a copy of the current flags.
func (s *Store) Snapshot() Flags {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.flags
}

// Apply merges the provided fields into the current flags and returns the
// result. Last write wins.
func (s *Store) Apply(u Update) Flags {
	s.mu.Lock()
	defer s.mu.Unlock()

	if u.WhatsappActive != nil {
		s.flags.WhatsappActive = *u.WhatsappActive
	}
	if u.SMSActive != nil {
		s.flags.SMSActive = *u.SMSActive
	}
	if u.InstagramActive != nil {
		s.flags.InstagramActive = *u.InstagramActive
	}

	return s.flags
}
