package service

import "github.com/ykuzmenko/smartsend/internal/settings"

type adminService struct {
	store *settings.Store
}

func NewAdminService(store *settings.Store) AdminService {
	return &adminService{
		store: store,
	}
}

// Settings returns the current channel-availability flags.
func (s *adminService) Settings() settings.Flags {
	return s.store.Snapshot()
}

// UpdateSettings applies a partial flags update and returns the result.
func (s *adminService) UpdateSettings(update settings.Update) settings.Flags {
	return s.store.Apply(update)
}
