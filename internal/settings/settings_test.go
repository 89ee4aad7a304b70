package settings_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ykuzmenko/smartsend/internal/settings"
)

func boolPtr(b bool) *bool {
	return &b
}

func TestStore_Defaults(t *testing.T) {
	store := settings.NewStore()

	flags := store.Snapshot()
	assert.True(t, flags.WhatsappActive)
	assert.True(t, flags.SMSActive)
	assert.True(t, flags.InstagramActive)
}

func TestStore_Apply_PartialUpdate(t *testing.T) {
	store := settings.NewStore()

	flags := store.Apply(settings.Update{WhatsappActive: boolPtr(false)})

	assert.False(t, flags.WhatsappActive)
	assert.True(t, flags.SMSActive)
	assert.True(t, flags.InstagramActive)

	// Fields not mentioned in a later update keep their values.
	flags = store.Apply(settings.Update{SMSActive: boolPtr(false)})
	assert.False(t, flags.WhatsappActive)
	assert.False(t, flags.SMSActive)
}

func TestStore_Apply_Empty(t *testing.T) {
	store := settings.NewStore()

	flags := store.Apply(settings.Update{})

	assert.Equal(t, store.Snapshot(), flags)
}

func TestStore_ConcurrentAccess(t *testing.T) {
	store := settings.NewStore()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func(active bool) {
			defer wg.Done()
			store.Apply(settings.Update{WhatsappActive: boolPtr(active)})
		}(i%2 == 0)
		go func() {
			defer wg.Done()
			_ = store.Snapshot()
		}()
	}
	wg.Wait()

	// SMS and Instagram flags were never written.
	flags := store.Snapshot()
	assert.True(t, flags.SMSActive)
	assert.True(t, flags.InstagramActive)
}
