package services

import (
	"context"

	portsrepo "github.com/bizledger/bizledger_app/internal/core/ports/repositories"
	portssvc "github.com/bizledger/bizledger_app/internal/core/ports/services"
	"github.com/bizledger/bizledger_app/internal/platform/analytics"
	"github.com/bizledger/bizledger_app/internal/platform/config"
	"github.com/bizledger/bizledger_app/internal/platform/events"
)

// ContainerDeps bundles everything NewServiceContainer needs to wire the
// services together.
type ContainerDeps struct {
	Cfg          *config.Config
	LocalRepos   portsrepo.BackendRepositories
	SharedRepos  portsrepo.BackendRepositories
	SharedOK     bool
	SharedData   portsrepo.SharedRepositories
	SettingsRepo portsrepo.SettingsRepositoryFacade
	Bus          *events.Bus
	Analytics    *analytics.Client
}

// NewServiceContainer creates the service container with properly initialized
// dependencies. Two audit service instances come out of one implementation:
// one follows the active backend (record mutations audit into whichever store
// owns the record), the other is pinned to the shared backend for
// account-level entries like role changes.
func NewServiceContainer(ctx context.Context, deps ContainerDeps) (*portssvc.ServiceContainer, error) {
	container := &portssvc.ServiceContainer{}

	storeMode, err := NewStoreModeService(
		ctx,
		deps.LocalRepos,
		deps.SharedRepos,
		deps.SharedOK,
		deps.SettingsRepo,
		deps.Bus,
		deps.Analytics,
	)
	if err != nil {
		return nil, err
	}
	container.StoreMode = storeMode

	activeAudit := NewAuditService(func() portsrepo.AuditRepositoryFacade {
		return storeMode.ActiveRepos().AuditRepo
	}, deps.Cfg.AuditGroupWindow)
	container.Audit = activeAudit

	sharedAudit := NewAuditService(func() portsrepo.AuditRepositoryFacade {
		return deps.SharedRepos.AuditRepo
	}, deps.Cfg.AuditGroupWindow)

	container.AccessControl = NewAccessControlService(
		deps.SharedData.InvitationRepo,
		deps.SharedData.PermissionRepo,
		sharedAudit,
		deps.Cfg.SetupSecret,
		deps.Analytics,
	)

	container.Record = NewRecordService(storeMode, container.AccessControl, activeAudit)
	container.Business = NewBusinessService(storeMode, container.AccessControl)
	container.Sync = NewSyncService(deps.Bus, deps.Cfg.SyncDebounceWindow)

	container.User = NewUserService(deps.SharedData.UserRepo)
	container.TokenService = NewTokenService(deps.Cfg, container.User)
	container.GoogleOAuthHandler = NewGoogleOAuthHandlerService(deps.Cfg)

	return container, nil
}
