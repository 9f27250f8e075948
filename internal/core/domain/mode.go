package domain

import "time"

// StoreMode is the Local/Shared axis: which persistence backend is active.
// It is orthogonal to the Role/Permission axis.
type StoreMode string

const (
	ModeLocal  StoreMode = "LOCAL"
	ModeShared StoreMode = "SHARED"
)

// IsValid reports whether m is a known store mode.
func (m StoreMode) IsValid() bool {
	return m == ModeLocal || m == ModeShared
}

// ModeState is the process-wide view of the active backend. It is mutated only
// by the store mode service and read by everything else.
type ModeState struct {
	Active       StoreMode `json:"active"`
	LastSwitchAt time.Time `json:"lastSwitchAt"`
}

// SyncState is the combined store-mode/authentication state machine.
// SharedUnauthenticated is transient and read-only: reads of shared data may
// return empty, writes are rejected downstream.
type SyncState string

const (
	StateLocal                 SyncState = "LOCAL"
	StateSharedUnauthenticated SyncState = "SHARED_UNAUTHENTICATED"
	StateSharedAuthenticated   SyncState = "SHARED_AUTHENTICATED"
)
