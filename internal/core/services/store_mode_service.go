package services

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/bizledger/bizledger_app/internal/apperrors"
	"github.com/bizledger/bizledger_app/internal/core/domain"
	portsrepo "github.com/bizledger/bizledger_app/internal/core/ports/repositories"
	portssvc "github.com/bizledger/bizledger_app/internal/core/ports/services"
	"github.com/bizledger/bizledger_app/internal/platform/analytics"
	"github.com/bizledger/bizledger_app/internal/platform/events"
)

// storeModeService implements the StoreModeSvcFacade interface. It is the
// single source of truth for which backend is active; the swap is the only
// operation in the core requiring exclusive mutual exclusion.
type storeModeService struct {
	BaseService
	localRepos   portsrepo.BackendRepositories
	sharedRepos  portsrepo.BackendRepositories
	sharedOK     bool // shared backend configured and reachable at startup
	settingsRepo portsrepo.SettingsRepositoryFacade
	bus          *events.Bus
	analytics    *analytics.Client

	switchMu sync.Mutex // serializes SwitchMode; TryLock detects reentrancy

	mu           sync.RWMutex // guards mode and lastSwitchAt
	mode         domain.StoreMode
	lastSwitchAt time.Time
}

// NewStoreModeService creates the store mode controller. The persisted
// preference is read once here, at startup; a preference for shared mode is
// honored only when a shared backend is actually configured.
func NewStoreModeService(
	ctx context.Context,
	localRepos portsrepo.BackendRepositories,
	sharedRepos portsrepo.BackendRepositories,
	sharedOK bool,
	settingsRepo portsrepo.SettingsRepositoryFacade,
	bus *events.Bus,
	analyticsClient *analytics.Client,
) (portssvc.StoreModeSvcFacade, error) {
	s := &storeModeService{
		localRepos:   localRepos,
		sharedRepos:  sharedRepos,
		sharedOK:     sharedOK,
		settingsRepo: settingsRepo,
		bus:          bus,
		analytics:    analyticsClient,
		mode:         domain.ModeLocal,
	}

	sharedPreferred, err := settingsRepo.LoadSharedModePreference(ctx)
	if err != nil {
		return nil, err
	}
	if sharedPreferred && sharedOK {
		s.mode = domain.ModeShared
	} else if sharedPreferred && !sharedOK {
		s.LogInfo(ctx, "Shared mode preferred but shared backend unavailable, starting local")
	}

	return s, nil
}

var _ portssvc.StoreModeSvcFacade = (*storeModeService)(nil)

// Mode returns the currently active store mode.
func (s *storeModeService) Mode() domain.StoreMode {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.mode
}

// ModeState returns the active mode together with the last switch time.
func (s *storeModeService) ModeState() domain.ModeState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return domain.ModeState{Active: s.mode, LastSwitchAt: s.lastSwitchAt}
}

// State maps the mode and the acting user onto the combined state machine.
func (s *storeModeService) State(actorUserID string) domain.SyncState {
	if s.Mode() == domain.ModeLocal {
		return domain.StateLocal
	}
	if actorUserID == "" {
		return domain.StateSharedUnauthenticated
	}
	return domain.StateSharedAuthenticated
}

// ActiveRepos returns the repository set of the active backend.
func (s *storeModeService) ActiveRepos() portsrepo.BackendRepositories {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.mode == domain.ModeShared {
		return s.sharedRepos
	}
	return s.localRepos
}

// SwitchMode swaps the active backend in two phases: validate preconditions,
// then persist the preference and atomically swap the active pointer under the
// writer lock, then emit ModeChanged. No reader can observe a torn state, and
// a failure anywhere leaves the mode unchanged. Switching to the active mode
// is a no-op that still re-emits the event.
func (s *storeModeService) SwitchMode(ctx context.Context, target domain.StoreMode, actorUserID string) error {
	if !target.IsValid() {
		return apperrors.NewValidationFailedError("unknown store mode " + string(target))
	}

	if !s.switchMu.TryLock() {
		return apperrors.ErrModeSwitchInProgress
	}
	defer s.switchMu.Unlock()

	// Phase 1: preconditions. Switching to shared needs an authenticated
	// actor, but deliberately not a permission row: reads of shared data may
	// come back empty, writes are rejected by the mutation gateway.
	if target == domain.ModeShared {
		if actorUserID == "" {
			return apperrors.ErrUnauthorized
		}
		if !s.sharedOK {
			return apperrors.NewAppError(503, "shared backend is not configured", nil)
		}
	}

	if err := s.settingsRepo.SaveSharedModePreference(ctx, target == domain.ModeShared); err != nil {
		s.LogError(ctx, err, "Failed to persist store mode preference")
		return err
	}

	// Phase 2: the swap itself.
	s.mu.Lock()
	from := s.mode
	s.mode = target
	s.lastSwitchAt = time.Now()
	s.mu.Unlock()

	// Phase 3: fan out. Consumers must tolerate redundant events.
	s.bus.Publish(events.ModeChanged{From: from, To: target})
	if s.analytics != nil {
		s.analytics.Enqueue(actorUserID, "mode_switched", map[string]any{
			"from": string(from),
			"to":   string(target),
		})
	}

	s.LogInfo(ctx, "Store mode switched",
		slog.String("from", string(from)),
		slog.String("to", string(target)),
		slog.String("actor_id", actorUserID))
	return nil
}
