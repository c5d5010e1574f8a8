package repository

import "context"

// TxRepos is the set of repositories bound to one transaction.
type TxRepos interface {
	Users() UserRepository
	Restaurants() RestaurantRepository
	Products() ProductRepository
	Orders() OrderRepository
	AuditLogs() AuditLogRepository
}

// TransactionManager hides begin/commit/rollback from the usecases.
type TransactionManager interface {
	WithinTx(ctx context.Context, fn func(r TxRepos) error) error
}
