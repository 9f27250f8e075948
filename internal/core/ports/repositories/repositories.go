package repositories

// BackendRepositories holds the repositories owned by one persistence backend
// (local or shared). The store mode controller swaps this set wholesale when
// the active backend changes; Record, Business and ChangeSet data cease to be
// visible when their backend is inactive.
type BackendRepositories struct {
	RecordRepo   RecordRepositoryFacade
	BusinessRepo BusinessRepositoryFacade
	AuditRepo    AuditRepositoryFacade
}

// SharedRepositories holds data that exists only in the shared backend and is
// not affected by mode switches: invitations, permissions and user accounts.
type SharedRepositories struct {
	InvitationRepo InvitationRepositoryFacade
	PermissionRepo PermissionRepositoryFacade
	UserRepo       UserRepositoryFacade
}
