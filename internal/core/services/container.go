package services

import (
	portsrepo "github.com/SscSPs/document_tracking_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/document_tracking_app/internal/core/ports/services"
)

// NewServiceContainer wires every service against the repositories. The
// dispatcher is shared, so all services emit side effects the same way.
// It is returned separately so callers can drain queued mail on shutdown.
func NewServiceContainer(repos *portsrepo.RepositoryProvider, opts ...ServiceOption) (*portssvc.ServiceContainer, *Dispatcher) {
	dispatcher := NewDispatcher(repos.NotificationRepo, repos.ActivityLogRepo, repos.UserRepo, opts...)

	container := &portssvc.ServiceContainer{
		Document:     NewDocumentService(repos.TxManager, repos.DocumentRepo, repos.VersionRepo, dispatcher, opts...),
		Routing:      NewRoutingService(repos, dispatcher, opts...),
		Signature:    NewSignatureService(repos, dispatcher, opts...),
		Workflow:     NewWorkflowService(repos, dispatcher, opts...),
		Dispatcher:   dispatcher,
		Notification: dispatcher,
		Identity:     NewIdentityService(repos.UserRepo),
	}
	return container, dispatcher
}
