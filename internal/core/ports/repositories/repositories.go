package repositories

// RepositoryProvider holds all repository interfaces needed by services.
// This makes passing dependencies to the service container constructor cleaner.
type RepositoryProvider struct {
	TxManager        TransactionManager
	DocumentRepo     DocumentRepositoryFacade
	VersionRepo      VersionRepositoryFacade
	RequestRepo      RequestRepositoryFacade
	StatusRepo       StatusReader
	PlaceholderRepo  PlaceholderRepositoryFacade
	NotificationRepo NotificationRepositoryFacade
	ActivityLogRepo  ActivityLogRepositoryFacade
	UserRepo         UserReader
}
