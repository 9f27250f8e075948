package services

import (
	"context"

	"github.com/bizledger/bizledger_app/internal/core/domain"
	portsrepo "github.com/bizledger/bizledger_app/internal/core/ports/repositories"
)

// StoreModeSvcFacade owns the single source of truth for which backend is
// active and performs the switch between them.
type StoreModeSvcFacade interface {
	// Mode returns the currently active store mode.
	Mode() domain.StoreMode

	// ModeState returns the active mode together with the last switch time.
	ModeState() domain.ModeState

	// State maps the mode and the acting user onto the combined state machine
	// (Local / SharedUnauthenticated / SharedAuthenticated).
	State(actorUserID string) domain.SyncState

	// SwitchMode swaps the active backend. Switching to shared requires a
	// non-empty acting user (but no permission row: unauthorized reads of
	// shared data simply come back empty). Switching to the already-active
	// mode is a no-op that still re-emits the mode-changed event.
	SwitchMode(ctx context.Context, target domain.StoreMode, actorUserID string) error

	// ActiveRepos returns the repository set of the active backend. Callers
	// see either the fully-old or fully-new backend, never a torn state.
	ActiveRepos() portsrepo.BackendRepositories
}
