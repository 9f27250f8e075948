package repositories

import (
	"context"

	"github.com/bizledger/bizledger_app/internal/core/domain"
)

// PermissionReader defines read operations for shared-scope permissions.
type PermissionReader interface {
	// FindPermissionByUserID retrieves the single permission row for a user.
	FindPermissionByUserID(ctx context.Context, userID string) (*domain.Permission, error)

	// ListPermissions retrieves every permission row in the shared scope.
	ListPermissions(ctx context.Context) ([]domain.Permission, error)
}

// PermissionWriter defines write operations for shared-scope permissions.
type PermissionWriter interface {
	// UpsertPermission inserts or replaces the permission row for
	// permission.UserID. The latest grant wins; roles are not cumulative.
	UpsertPermission(ctx context.Context, permission domain.Permission) error
}

// PermissionRepositoryFacade combines all permission-related repository interfaces.
type PermissionRepositoryFacade interface {
	PermissionReader
	PermissionWriter
}
