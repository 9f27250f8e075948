package domain

import "time"

// InvitationStatus is the lifecycle state of an invitation code.
// Once the status leaves PENDING the code is permanently inert.
type InvitationStatus string

const (
	InvitationPending  InvitationStatus = "PENDING"
	InvitationAccepted InvitationStatus = "ACCEPTED"
	InvitationRevoked  InvitationStatus = "REVOKED"
)

// InviteCodeLength is the exact length of an invitation code.
const InviteCodeLength = 6

// InviteCodeAlphabet is the character set invitation codes are drawn from:
// uppercase letters and digits, with easily confused glyphs (I, L, O, 0, 1)
// excluded. Input is normalized to uppercase before lookup.
const InviteCodeAlphabet = "ABCDEFGHJKMNPQRSTUVWXYZ23456789"

// Invitation is a single-use, emailed, time-unbounded code binding a role to
// whoever redeems it first. Codes are unique only among pending invitations;
// inert codes may be reissued later.
type Invitation struct {
	InvitationID string           `json:"invitationID"`
	Code         string           `json:"code"`
	IssuerID     string           `json:"issuerID"`
	InviteeEmail string           `json:"inviteeEmail"`
	Role         Role             `json:"role"`
	Status       InvitationStatus `json:"status"`
	CreatedAt    time.Time        `json:"createdAt"`
	AcceptedBy   *string          `json:"acceptedBy,omitempty"`
	AcceptedAt   *time.Time       `json:"acceptedAt,omitempty"`
}
