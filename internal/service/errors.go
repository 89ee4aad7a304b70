package service

import "errors"

// ErrNoCartEvents is returned by TriggerAbandonedCart when the user has
// no recorded add_to_cart events.
var ErrNoCartEvents = errors.New("no cart items found")
