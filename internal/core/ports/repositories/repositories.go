package repositories

// RepositoryProvider bundles every repository implementation so the
// composition root can wire services in one pass.
type RepositoryProvider struct {
	RoomRepo      RoomRepository
	ExpenseRepo   ExpenseRepository
	ItineraryRepo ItineraryRepository
	DocumentRepo  DocumentRepository
}
