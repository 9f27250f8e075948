package domain_test

import (
	"strings"
	"testing"

	"github.com/bizledger/bizledger_app/internal/core/domain"
	"github.com/stretchr/testify/assert"
)

func TestRole_Meets(t *testing.T) {
	tests := []struct {
		name     string
		role     domain.Role
		required domain.Role
		want     bool
	}{
		{"viewer meets viewer", domain.RoleViewer, domain.RoleViewer, true},
		{"viewer does not meet editor", domain.RoleViewer, domain.RoleEditor, false},
		{"viewer does not meet admin", domain.RoleViewer, domain.RoleAdmin, false},
		{"editor meets viewer", domain.RoleEditor, domain.RoleViewer, true},
		{"editor meets editor", domain.RoleEditor, domain.RoleEditor, true},
		{"editor does not meet admin", domain.RoleEditor, domain.RoleAdmin, false},
		{"admin meets everything", domain.RoleAdmin, domain.RoleAdmin, true},
		{"unknown role meets nothing", domain.Role("OWNER"), domain.RoleViewer, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.role.Meets(tt.required))
		})
	}
}

func TestRole_IsValid(t *testing.T) {
	assert.True(t, domain.RoleViewer.IsValid())
	assert.True(t, domain.RoleEditor.IsValid())
	assert.True(t, domain.RoleAdmin.IsValid())
	assert.False(t, domain.Role("").IsValid())
	assert.False(t, domain.Role("viewer").IsValid(), "roles are case-sensitive")
}

func TestStoreMode_IsValid(t *testing.T) {
	assert.True(t, domain.ModeLocal.IsValid())
	assert.True(t, domain.ModeShared.IsValid())
	assert.False(t, domain.StoreMode("HYBRID").IsValid())
}

func TestIsValidCategory(t *testing.T) {
	for _, c := range domain.Categories {
		assert.True(t, domain.IsValidCategory(c), "category %q should be valid", c)
	}
	assert.False(t, domain.IsValidCategory("supplies"), "categories are case-sensitive")
	assert.False(t, domain.IsValidCategory(""))
}

func TestInviteCodeAlphabet_ExcludesConfusableGlyphs(t *testing.T) {
	for _, confusable := range "ILO01" {
		assert.False(t, strings.ContainsRune(domain.InviteCodeAlphabet, confusable),
			"alphabet should not contain %q", confusable)
	}
	// Every character uppercases to itself, so case normalization is safe.
	assert.Equal(t, strings.ToUpper(domain.InviteCodeAlphabet), domain.InviteCodeAlphabet)
}
