// Package routing decides which channel an outbound message is sent on,
// based on user preference, an optional explicit override, and the live
// admin channel-availability flags.
package routing

import (
	"errors"

	"github.com/ykuzmenko/smartsend/internal/models"
	"github.com/ykuzmenko/smartsend/internal/settings"
)

var (
	// ErrNotOptedIn is returned when the profile is missing or the user
	// has not consented to outbound messaging.
	ErrNotOptedIn = errors.New("user not opted in")

	// ErrNoActiveChannel is returned when the resolved channel is sms and
	// sms is disabled.
	ErrNoActiveChannel = errors.New("no active channels available")
)

// Resolve picks the delivery channel for a message. The candidate is the
// explicit override if provided, else the profile's stored channel, else
// whatsapp. A whatsapp candidate falls back to sms (one hop) when
// whatsapp is disabled; an sms candidate with sms disabled is rejected
// outright. The instagram flag is not consulted: an instagram candidate
// always goes through.
func Resolve(profile *models.Profile, override string, flags settings.Flags) (string, error) {
	if profile == nil || !profile.OptIn {
		return "", ErrNotOptedIn
	}

	channel := override
	if channel == "" && profile.Channel.Valid {
		channel = profile.Channel.String
	}
	if channel == "" {
		channel = models.ChannelWhatsapp
	}

	if channel == models.ChannelWhatsapp && !flags.WhatsappActive {
		channel = models.ChannelSMS
	} else if channel == models.ChannelSMS && !flags.SMSActive {
		return "", ErrNoActiveChannel
	}

	return channel, nil
}
