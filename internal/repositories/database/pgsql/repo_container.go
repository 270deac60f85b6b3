package pgsql

import (
	portsrepo "github.com/SscSPs/document_tracking_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	documentRepo := newPgxDocumentRepository(dbPool)
	requestRepo := newPgxRequestRepository(dbPool)
	notificationRepo := newPgxNotificationRepository(dbPool)

	return portsrepo.RepositoryProvider{
		TxManager:        newPgxTxManager(dbPool),
		DocumentRepo:     documentRepo,
		VersionRepo:      documentRepo,
		RequestRepo:      requestRepo,
		StatusRepo:       requestRepo,
		PlaceholderRepo:  newPgxPlaceholderRepository(dbPool),
		NotificationRepo: notificationRepo,
		ActivityLogRepo:  notificationRepo,
		UserRepo:         newPgxUserRepository(dbPool),
	}
}
