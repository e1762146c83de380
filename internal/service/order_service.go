package service

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/vikas-0-3/farmer/internal/adapter/email"
	"github.com/vikas-0-3/farmer/internal/adapter/nats"
	"github.com/vikas-0-3/farmer/internal/domain/entity"
	"github.com/vikas-0-3/farmer/internal/platform/logger"
	"github.com/vikas-0-3/farmer/internal/repository"
)

const (
	SubjectOrderCreated       = "orders.created"
	SubjectOrderStatusChanged = "orders.status_changed"
)

type OrderItemInput struct {
	ProductID primitive.ObjectID
	Quantity  int
}

type OrderItemView struct {
	Product  *entity.Product `json:"product"`
	Quantity int             `json:"quantity"`
}

type OrderView struct {
	ID          primitive.ObjectID `json:"_id"`
	UserID      primitive.ObjectID `json:"user"`
	Items       []OrderItemView    `json:"products"`
	TotalAmount float64            `json:"totalAmount"`
	Status      string             `json:"status"`
	CreatedAt   time.Time          `json:"createdAt"`
	UpdatedAt   time.Time          `json:"updatedAt"`
}

type orderCreatedEvent struct {
	OrderID     string  `json:"orderId"`
	UserID      string  `json:"userId"`
	TotalAmount float64 `json:"totalAmount"`
	ItemCount   int     `json:"itemCount"`
}

type orderStatusEvent struct {
	OrderID string `json:"orderId"`
	Status  string `json:"status"`
}

type OrderService interface {
	Create(ctx context.Context, userID primitive.ObjectID, items []OrderItemInput, totalAmount float64) (*entity.Order, error)
	ListForUser(ctx context.Context, userID primitive.ObjectID) ([]*OrderView, error)
	ListAll(ctx context.Context) ([]*OrderView, error)
	UpdateStatus(ctx context.Context, orderID primitive.ObjectID, status string) (*entity.Order, error)
}

type orderService struct {
	orders    repository.OrderRepository
	products  repository.ProductRepository
	users     repository.UserRepository
	publisher nats.MessagePublisher
	mailer    email.Sender // nil when SMTP is not configured
	log       logger.Logger
}

func NewOrderService(
	orders repository.OrderRepository,
	products repository.ProductRepository,
	users repository.UserRepository,
	publisher nats.MessagePublisher,
	mailer email.Sender,
	log logger.Logger,
) OrderService {
	return &orderService{
		orders:    orders,
		products:  products,
		users:     users,
		publisher: publisher,
		mailer:    mailer,
		log:       log.With("service", "order"),
	}
}

// Create persists the order and then fans out best-effort side effects
// (event publish, receipt email). The order stands even when those fail.
func (s *orderService) Create(ctx context.Context, userID primitive.ObjectID, items []OrderItemInput, totalAmount float64) (*entity.Order, error) {
	orderItems := make([]entity.OrderItem, 0, len(items))
	for _, in := range items {
		orderItems = append(orderItems, entity.OrderItem{ProductID: in.ProductID, Quantity: in.Quantity})
	}

	order, err := entity.NewOrder(userID, orderItems, totalAmount)
	if err != nil {
		return nil, err
	}
	if _, err := s.orders.Create(ctx, order); err != nil {
		return nil, err
	}
	s.log.Infof("order created: %s (user %s, total %.2f)", order.ID.Hex(), userID.Hex(), totalAmount)

	event := orderCreatedEvent{
		OrderID:     order.ID.Hex(),
		UserID:      userID.Hex(),
		TotalAmount: totalAmount,
		ItemCount:   len(order.Items),
	}
	if err := s.publisher.Publish(ctx, SubjectOrderCreated, event); err != nil {
		s.log.Warnf("failed to publish order created event for %s: %v", order.ID.Hex(), err)
	}

	s.sendReceipt(ctx, order)
	return order, nil
}

func (s *orderService) sendReceipt(ctx context.Context, order *entity.Order) {
	if s.mailer == nil {
		return
	}
	user, err := s.users.GetByID(ctx, order.UserID)
	if err != nil {
		s.log.Warnf("cannot send receipt for order %s: %v", order.ID.Hex(), err)
		return
	}

	subject := fmt.Sprintf("Order %s received", order.ID.Hex())
	body := fmt.Sprintf(
		"Hi %s,\n\nWe received your order %s with %d item(s), total %.2f.\nCurrent status: %s.\n",
		user.Name, order.ID.Hex(), len(order.Items), order.TotalAmount, order.Status,
	)
	if err := s.mailer.Send(ctx, []string{user.Email}, subject, "", body); err != nil {
		s.log.Warnf("failed to send receipt for order %s: %v", order.ID.Hex(), err)
	}
}

func (s *orderService) ListForUser(ctx context.Context, userID primitive.ObjectID) ([]*OrderView, error) {
	orders, err := s.orders.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.resolve(ctx, orders)
}

func (s *orderService) ListAll(ctx context.Context) ([]*OrderView, error) {
	orders, err := s.orders.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	return s.resolve(ctx, orders)
}

func (s *orderService) resolve(ctx context.Context, orders []*entity.Order) ([]*OrderView, error) {
	idSet := make(map[primitive.ObjectID]struct{})
	for _, order := range orders {
		for _, item := range order.Items {
			idSet[item.ProductID] = struct{}{}
		}
	}
	ids := make([]primitive.ObjectID, 0, len(idSet))
	for id := range idSet {
		ids = append(ids, id)
	}
	products, err := s.products.GetManyByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	views := make([]*OrderView, 0, len(orders))
	for _, order := range orders {
		items := make([]OrderItemView, 0, len(order.Items))
		for _, item := range order.Items {
			items = append(items, OrderItemView{Product: products[item.ProductID], Quantity: item.Quantity})
		}
		views = append(views, &OrderView{
			ID:          order.ID,
			UserID:      order.UserID,
			Items:       items,
			TotalAmount: order.TotalAmount,
			Status:      order.Status,
			CreatedAt:   order.CreatedAt,
			UpdatedAt:   order.UpdatedAt,
		})
	}
	return views, nil
}

func (s *orderService) UpdateStatus(ctx context.Context, orderID primitive.ObjectID, status string) (*entity.Order, error) {
	if status == "" {
		return nil, ErrEmptyStatus
	}

	order, err := s.orders.UpdateStatus(ctx, orderID, status)
	if err != nil {
		return nil, err
	}
	s.log.Infof("order %s status set to %q", orderID.Hex(), status)

	event := orderStatusEvent{OrderID: orderID.Hex(), Status: status}
	if err := s.publisher.Publish(ctx, SubjectOrderStatusChanged, event); err != nil {
		s.log.Warnf("failed to publish status event for order %s: %v", orderID.Hex(), err)
	}
	return order, nil
}
