package ordersvc

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/micromart/orders/internal/dal/interfaces/iorderitemrepo"
	"github.com/micromart/orders/internal/dal/interfaces/iorderrepo"
	"github.com/micromart/orders/internal/dal/interfaces/ioutboxrepo"
	"github.com/micromart/orders/internal/dal/interfaces/ireceiptrepo"
	"github.com/micromart/orders/internal/dal/postgres"
	orderrepo "github.com/micromart/orders/internal/dal/repositories/order/postgres"
	"github.com/micromart/orders/internal/dal/uow"
	"github.com/micromart/orders/internal/service/apperr"
	"github.com/micromart/orders/internal/service/models/currency"
	"github.com/micromart/orders/internal/service/models/order"
	"github.com/micromart/orders/internal/service/models/orderitem"
	"github.com/micromart/orders/internal/service/models/outbox"
	"github.com/micromart/orders/internal/service/models/payment"
	"github.com/micromart/orders/internal/service/models/product"
	"github.com/micromart/orders/internal/service/models/receipt"
	"github.com/spf13/viper"
)

type unitOfWork interface {
	Begin(ctx context.Context) error
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error

	OrderRepository() iorderrepo.IOrderRepository
	OrderItemRepository() iorderitemrepo.IOrderItemRepository
	ReceiptRepository() ireceiptrepo.IReceiptRepository
	OutboxRepository() ioutboxrepo.IOutboxRepository
}

// catalogClient resolves product identifiers against the catalog service.
type catalogClient interface {
	Validate(ctx context.Context, productIDs []int64) ([]product.Product, error)
}

// paymentClient creates checkout sessions in the payment service.
type paymentClient interface {
	CreateSession(ctx context.Context, req payment.SessionRequest) (*payment.Session, error)
}

// OrderService orchestrates the purchase-order lifecycle: pricing against the
// catalog, atomic persistence, status transitions and payment confirmations.
type OrderService struct {
	pgClient   *postgres.Client
	catalog    catalogClient
	payments   paymentClient
	uowFactory func() unitOfWork
}

func (s *OrderService) newUOW() unitOfWork {
	return s.uowFactory()
}

// option is a function that configures the OrderService.
type option func(*OrderService)

// MustNewOrderService creates a new OrderService.
func MustNewOrderService(opts ...option) *OrderService {
	s := &OrderService{}
	for _, opt := range opts {
		opt(s)
	}

	if s.uowFactory == nil {
		s.uowFactory = func() unitOfWork {
			return uow.NewUnitOfWork(s.pgClient)
		}
	}

	return s
}

// WithPostgresClient sets the Postgres client for the OrderService.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithPostgresClient(pgClient *postgres.Client) option {
	return func(s *OrderService) {
		s.pgClient = pgClient
	}
}

// WithCatalogClient sets the product-catalog client for the OrderService.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithCatalogClient(client catalogClient) option {
	return func(s *OrderService) {
		s.catalog = client
	}
}

// WithPaymentClient sets the payment client for the OrderService.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithPaymentClient(client paymentClient) option {
	return func(s *OrderService) {
		s.payments = client
	}
}

// WithUnitOfWorkFactory overrides how units of work are created.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithUnitOfWorkFactory(factory func() unitOfWork) option {
	return func(s *OrderService) {
		s.uowFactory = factory
	}
}

// CreateOrder validates and prices the requested items against the catalog,
// persists the order with its lines atomically and returns the order with
// line names decorated from the already-fetched catalog result. Validation
// strictly precedes persistence, so a failed validation persists nothing.
func (s *OrderService) CreateOrder(
	ctx context.Context,
	items []orderitem.CreateItem,
) (*order.Order, error) {
	if len(items) == 0 {
		return nil, apperr.New(http.StatusBadRequest, "order must contain at least one item")
	}

	productIDs := distinctProductIDs(items)

	products, err := s.catalog.Validate(ctx, productIDs)
	if err != nil {
		return nil, err
	}

	byID := make(map[int64]product.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	// A partial catalog reply must fail loudly. Indexing a missing entry
	// would otherwise price the line at zero.
	var missing []int64
	for _, id := range productIDs {
		if _, ok := byID[id]; !ok {
			missing = append(missing, id)
		}
	}
	if len(missing) > 0 {
		return nil, apperr.ProductsNotFound(missing)
	}

	var totalAmountCents int64
	totalItems := 0
	for _, item := range items {
		totalAmountCents += byID[item.ProductID].PriceCents * int64(item.Quantity)
		totalItems += item.Quantity
	}

	now := time.Now()
	ord := order.Order{
		ID:               uuid.NewString(),
		Status:           order.StatusPending,
		TotalItems:       totalItems,
		TotalAmountCents: totalAmountCents,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	orderItems := make([]orderitem.OrderItem, len(items))
	for i, item := range items {
		orderItems[i] = orderitem.OrderItem{
			OrderID:    ord.ID,
			ProductID:  item.ProductID,
			Quantity:   item.Quantity,
			PriceCents: byID[item.ProductID].PriceCents,
			CreatedAt:  now,
			UpdatedAt:  now,
		}
	}

	work := s.newUOW()
	if err := work.Begin(ctx); err != nil {
		return nil, err
	}
	defer func() {
		_ = work.Rollback(ctx)
	}()

	inserted, err := work.OrderRepository().Insert(ctx, ord)
	if err != nil {
		return nil, err
	}

	insertedItems, err := work.OrderItemRepository().BulkInsert(ctx, orderItems)
	if err != nil {
		return nil, err
	}
	inserted.OrderItems = insertedItems

	if err := stageEvent(ctx, work.OutboxRepository(), "order.created", inserted); err != nil {
		return nil, err
	}

	if err := work.Commit(ctx); err != nil {
		return nil, err
	}

	decorate(inserted, byID)

	return inserted, nil
}

// GetOrders returns a page of orders matching the optional status filter.
// Line names are not decorated in the list view to avoid one remote call per
// page item.
func (s *OrderService) GetOrders(
	ctx context.Context,
	page int,
	limit int,
	status *order.Status,
) (*order.Page, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}

	work := s.newUOW()

	filter := &order.QueryOrdersModel{
		Status: status,
		Limit:  limit,
		Offset: (page - 1) * limit,
	}

	total, err := work.OrderRepository().Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	orders, err := work.OrderRepository().Query(ctx, filter)
	if err != nil {
		return nil, err
	}

	return &order.Page{
		Data: orders,
		Meta: order.PageMeta{
			Total:    total,
			Page:     page,
			LastPage: int(math.Ceil(float64(total) / float64(limit))),
		},
	}, nil
}

// GetOrder retrieves a single order with its lines, decorated with product
// names from a fresh catalog call. Names are looked up again instead of being
// cached from creation because catalog data may have changed since.
func (s *OrderService) GetOrder(ctx context.Context, id string) (*order.Order, error) {
	work := s.newUOW()

	ord, err := work.OrderRepository().GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, orderrepo.ErrNotFound) {
			return nil, apperr.OrderNotFound(id)
		}

		return nil, err
	}

	items, err := work.OrderItemRepository().ListByOrderID(ctx, id)
	if err != nil {
		return nil, err
	}
	ord.OrderItems = items

	if len(items) == 0 {
		return ord, nil
	}

	productIDs := make([]int64, 0, len(items))
	seen := make(map[int64]struct{}, len(items))
	for _, item := range items {
		if _, ok := seen[item.ProductID]; ok {
			continue
		}
		seen[item.ProductID] = struct{}{}
		productIDs = append(productIDs, item.ProductID)
	}

	products, err := s.catalog.Validate(ctx, productIDs)
	if err != nil {
		return nil, err
	}

	byID := make(map[int64]product.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	var missing []int64
	for _, id := range productIDs {
		if _, ok := byID[id]; !ok {
			missing = append(missing, id)
		}
	}
	if len(missing) > 0 {
		return nil, apperr.ProductsNotFound(missing)
	}

	decorate(ord, byID)

	return ord, nil
}

// ChangeStatus moves an order to the requested status. Requesting the current
// status is an idempotent no-op that returns the decorated order without a
// write. Any status may move to any other; no transition graph is enforced.
// After a real transition the returned order is not re-decorated, so its line
// names may be missing.
func (s *OrderService) ChangeStatus(
	ctx context.Context,
	id string,
	status order.Status,
) (*order.Order, error) {
	ord, err := s.GetOrder(ctx, id)
	if err != nil {
		return nil, err
	}

	if ord.Status == status {
		return ord, nil
	}

	work := s.newUOW()

	updated, err := work.OrderRepository().UpdateStatus(ctx, id, status)
	if err != nil {
		if errors.Is(err, orderrepo.ErrNotFound) {
			return nil, apperr.OrderNotFound(id)
		}

		return nil, err
	}

	return updated, nil
}

// CreatePaymentSession forwards the order to the payment service and returns
// the checkout session verbatim. No local state changes.
func (s *OrderService) CreatePaymentSession(
	ctx context.Context,
	ord *order.Order,
) (*payment.Session, error) {
	cur, err := currency.ParseCurrency(viper.GetString("payments.currency"))
	if err != nil {
		cur = currency.CurrencyUSD
	}

	items := make([]payment.SessionItem, len(ord.OrderItems))
	for i, item := range ord.OrderItems {
		items[i] = payment.SessionItem{
			Name:       item.ProductName,
			PriceCents: item.PriceCents,
			Quantity:   item.Quantity,
		}
	}

	return s.payments.CreateSession(ctx, payment.SessionRequest{
		OrderID:  ord.ID,
		Currency: cur,
		Items:    items,
	})
}

// PaidOrder applies a payment-confirmation event: it sets the paid fields and
// PAID status and stores the receipt as one transaction. Delivery is assumed
// at-least-once, so a repeated event re-applies last-write-wins and never
// creates a second receipt.
func (s *OrderService) PaidOrder(ctx context.Context, evt payment.PaidEvent) (*order.Order, error) {
	now := time.Now()

	work := s.newUOW()
	if err := work.Begin(ctx); err != nil {
		return nil, err
	}
	defer func() {
		_ = work.Rollback(ctx)
	}()

	updated, err := work.OrderRepository().MarkPaid(ctx, evt.OrderID, evt.StripePaymentID, now)
	if err != nil {
		if errors.Is(err, orderrepo.ErrNotFound) {
			return nil, apperr.OrderNotFound(evt.OrderID)
		}

		return nil, err
	}

	err = work.ReceiptRepository().Upsert(ctx, receipt.Receipt{
		OrderID:    evt.OrderID,
		ReceiptURL: evt.ReceiptURL,
		CreatedAt:  now,
		UpdatedAt:  now,
	})
	if err != nil {
		return nil, err
	}

	if err := stageEvent(ctx, work.OutboxRepository(), "order.paid", updated); err != nil {
		return nil, err
	}

	if err := work.Commit(ctx); err != nil {
		return nil, err
	}

	return updated, nil
}

func distinctProductIDs(items []orderitem.CreateItem) []int64 {
	seen := make(map[int64]struct{}, len(items))
	ids := make([]int64, 0, len(items))
	for _, item := range items {
		if _, ok := seen[item.ProductID]; ok {
			continue
		}
		seen[item.ProductID] = struct{}{}
		ids = append(ids, item.ProductID)
	}

	return ids
}

func decorate(ord *order.Order, byID map[int64]product.Product) {
	for i := range ord.OrderItems {
		ord.OrderItems[i].ProductName = byID[ord.OrderItems[i].ProductID].Name
	}
}

func stageEvent(
	ctx context.Context,
	repo ioutboxrepo.IOutboxRepository,
	routingKey string,
	payload any,
) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal %s event: %w", routingKey, err)
	}

	exchange := viper.GetString("rabbitmq.events_exchange")
	maxRetries := viper.GetInt("rabbitmq.outbox.max_retries")
	if maxRetries == 0 {
		maxRetries = 5
	}

	now := time.Now()

	return repo.Insert(ctx, outbox.Message{
		ExchangeName: exchange,
		RoutingKey:   routingKey,
		Payload:      body,
		ContentType:  "application/json",
		MaxRetries:   maxRetries,
		CreatedAt:    now,
		UpdatedAt:    now,
		NextRetryAt:  now,
	})
}
