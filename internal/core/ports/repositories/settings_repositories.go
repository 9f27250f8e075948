package repositories

import "context"

// SettingsRepositoryFacade persists small device-level preferences in the
// local store. The mode preference survives process restarts and is read once
// at startup by the store mode controller.
type SettingsRepositoryFacade interface {
	// LoadSharedModePreference returns whether shared mode was active when the
	// process last ran. Defaults to false when never written.
	LoadSharedModePreference(ctx context.Context) (bool, error)

	// SaveSharedModePreference persists the mode preference.
	SaveSharedModePreference(ctx context.Context, shared bool) error
}
