package domain

import "time"

// AccountSettingsRecordID is the synthetic record id that account-level audit
// entries (such as the bootstrap admin elevation) are logged against.
const AccountSettingsRecordID = "account-settings"

// FieldChange is one raw audit row: a single field of a single record changed
// by one actor at one moment. Values are stored in their human-readable
// formatted form, not internal representations.
type FieldChange struct {
	ChangeID  string    `json:"changeID"`
	RecordID  string    `json:"recordID"`
	Field     string    `json:"field"`
	OldValue  string    `json:"oldValue"`
	NewValue  string    `json:"newValue"`
	ActorID   string    `json:"actorID"`
	ChangedAt time.Time `json:"changedAt"`
}

// ChangeSet is one logical, multi-field edit reconstructed from individually
// logged field changes. Changes is never empty; every member shares the same
// record, actor and grouping-window timestamp. ChangeSets are append-only.
type ChangeSet struct {
	ChangeSetID string        `json:"changeSetID"` // id of the newest member row
	RecordID    string        `json:"recordID"`
	ActorID     string        `json:"actorID"`
	Timestamp   time.Time     `json:"timestamp"` // group key, truncated to the grouping window
	Changes     []FieldChange `json:"changes"`
}
