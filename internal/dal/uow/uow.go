package uow

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/micromart/orders/internal/dal/interfaces/iorderitemrepo"
	"github.com/micromart/orders/internal/dal/interfaces/iorderrepo"
	"github.com/micromart/orders/internal/dal/interfaces/ioutboxrepo"
	"github.com/micromart/orders/internal/dal/interfaces/ireceiptrepo"
	"github.com/micromart/orders/internal/dal/postgres"
	orderrepo "github.com/micromart/orders/internal/dal/repositories/order/postgres"
	orderitemrepo "github.com/micromart/orders/internal/dal/repositories/orderitem/postgres"
	outboxrepo "github.com/micromart/orders/internal/dal/repositories/outbox/postgres"
	receiptrepo "github.com/micromart/orders/internal/dal/repositories/receipt/postgres"
)

type unitOfWork struct {
	client *postgres.Client
	tx     pgx.Tx

	orderRepo     iorderrepo.IOrderRepository
	orderItemRepo iorderitemrepo.IOrderItemRepository
	receiptRepo   ireceiptrepo.IReceiptRepository
	outboxRepo    ioutboxrepo.IOutboxRepository
}

// NewUnitOfWork creates a unit of work whose repositories run against the
// pool until Begin switches them onto a shared transaction.
func NewUnitOfWork(client *postgres.Client) *unitOfWork {
	u := &unitOfWork{client: client}
	u.bind(client.Pool())

	return u
}

func (u *unitOfWork) bind(conn postgres.GenericConn) {
	u.orderRepo = orderrepo.NewPostgresOrderRepository(conn)
	u.orderItemRepo = orderitemrepo.NewPostgresOrderItemRepository(conn)
	u.receiptRepo = receiptrepo.NewPostgresReceiptRepository(conn)
	u.outboxRepo = outboxrepo.NewPostgresOutboxRepository(conn)
}

func (u *unitOfWork) OrderRepository() iorderrepo.IOrderRepository {
	return u.orderRepo
}

func (u *unitOfWork) OrderItemRepository() iorderitemrepo.IOrderItemRepository {
	return u.orderItemRepo
}

func (u *unitOfWork) ReceiptRepository() ireceiptrepo.IReceiptRepository {
	return u.receiptRepo
}

func (u *unitOfWork) OutboxRepository() ioutboxrepo.IOutboxRepository {
	return u.outboxRepo
}

func (u *unitOfWork) Begin(ctx context.Context) error {
	tx, err := u.client.Pool().Begin(ctx)
	if err != nil {
		return err
	}

	u.tx = tx
	u.bind(tx)

	return nil
}

func (u *unitOfWork) Commit(ctx context.Context) error {
	if u.tx == nil {
		return nil
	}

	return u.tx.Commit(ctx)
}

func (u *unitOfWork) Rollback(ctx context.Context) error {
	if u.tx == nil {
		return nil
	}

	return u.tx.Rollback(ctx)
}
