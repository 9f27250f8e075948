package sqlite

import (
	portsrepo "github.com/bizledger/bizledger_app/internal/core/ports/repositories"
)

// NewBackendRepositories creates the local backend's record, business and
// audit repositories over the store's database handle.
func NewBackendRepositories(store *Store) portsrepo.BackendRepositories {
	return portsrepo.BackendRepositories{
		RecordRepo:   newSQLiteRecordRepository(store.db),
		BusinessRepo: newSQLiteBusinessRepository(store.db),
		AuditRepo:    newSQLiteAuditRepository(store.db),
	}
}

// NewSettingsRepository creates the device-preference repository.
func NewSettingsRepository(store *Store) portsrepo.SettingsRepositoryFacade {
	return newSQLiteSettingsRepository(store.db)
}
