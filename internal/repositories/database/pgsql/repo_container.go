package pgsql

import (
	portsrepo "github.com/bizledger/bizledger_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

// NewBackendRepositories creates the shared backend's record, business and
// audit repositories over one connection pool.
func NewBackendRepositories(dbPool *pgxpool.Pool) portsrepo.BackendRepositories {
	return portsrepo.BackendRepositories{
		RecordRepo:   newPgxRecordRepository(dbPool),
		BusinessRepo: newPgxBusinessRepository(dbPool),
		AuditRepo:    newPgxAuditRepository(dbPool),
	}
}

// NewSharedRepositories creates the repositories for data that exists only in
// the shared store: invitations, permissions and user accounts.
func NewSharedRepositories(dbPool *pgxpool.Pool) portsrepo.SharedRepositories {
	return portsrepo.SharedRepositories{
		InvitationRepo: newPgxInvitationRepository(dbPool),
		PermissionRepo: newPgxPermissionRepository(dbPool),
		UserRepo:       newPgxUserRepository(dbPool),
	}
}
