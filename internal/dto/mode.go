package dto

import (
	"time"

	"github.com/bizledger/bizledger_app/internal/core/domain"
)

// --- Store mode DTOs ---

// SwitchModeRequest asks for the active backend to change.
type SwitchModeRequest struct {
	Target domain.StoreMode `json:"target" binding:"required,oneof=LOCAL SHARED"`
}

// ModeStateResponse reports the active backend and the combined sync state.
type ModeStateResponse struct {
	Active       domain.StoreMode `json:"active"`
	State        domain.SyncState `json:"state"`
	LastSwitchAt time.Time        `json:"lastSwitchAt"`
}
