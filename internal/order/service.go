package order

import (
	"context"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/tiendalabs/tiendago/internal/domain"
)

// Validation failures detectable with errors.Is. They reject the whole
// request before or during the write; nothing is persisted.
var (
	ErrEmptyOrder         = errors.New("order must contain at least one product line")
	ErrInvalidQuantity    = errors.New("line quantity must be a positive integer")
	ErrProductUnavailable = errors.New("product does not exist or is inactive")
	ErrMissingCustomer    = errors.New("missing customer identity")
)

// IsValidation reports whether err rejects the caller's input rather than
// signalling a persistence failure.
func IsValidation(err error) bool {
	return errors.Is(err, ErrEmptyOrder) ||
		errors.Is(err, ErrInvalidQuantity) ||
		errors.Is(err, ErrProductUnavailable) ||
		errors.Is(err, ErrMissingCustomer)
}

// TopicOrderCreated is published on the event bus after a successful checkout
// with (orderID, customerID, total) arguments.
const TopicOrderCreated = "order:created"

// Publisher posts an event to the in-process bus. May be nil.
type Publisher func(topic string, args ...interface{})

// CreatedOrder is the composed checkout result returned to the boundary.
type CreatedOrder struct {
	ID         int64              `json:"id"`
	CustomerID int64              `json:"cliente_id"`
	Status     string             `json:"estado"`
	Total      float64            `json:"total"`
	Lines      []domain.OrderLine `json:"productos"`
	LineCount  int                `json:"total_productos"`
}

// Service orchestrates the order workflow: validate the submitted cart,
// persist header plus lines atomically, and compose per-customer history.
type Service struct {
	repo    Repository
	publish Publisher
}

func NewService(repo Repository, publish Publisher) *Service {
	return &Service{repo: repo, publish: publish}
}

// CreateOrder persists a checkout for the authenticated customer. The
// customer identity must come from the verified credential, never from the
// request payload. Unit prices are captured from the current product rows and
// the total is recomputed server-side.
func (s *Service) CreateOrder(ctx context.Context, customerID int64, lines []CartLine) (*CreatedOrder, error) {
	if customerID <= 0 {
		return nil, ErrMissingCustomer
	}
	if len(lines) == 0 {
		return nil, ErrEmptyOrder
	}
	for _, ln := range lines {
		if ln.ProductID <= 0 {
			return nil, errors.Wrapf(ErrProductUnavailable, "product %d", ln.ProductID)
		}
		if ln.Quantity < 1 {
			return nil, errors.Wrapf(ErrInvalidQuantity, "product %d quantity %d", ln.ProductID, ln.Quantity)
		}
	}

	hdr, created, err := s.repo.CreateOrder(ctx, customerID, lines)
	if err != nil {
		zap.L().Error("order creation failed",
			zap.Int64("customer_id", customerID),
			zap.Int("lines", len(lines)),
			zap.Error(err))
		return nil, err
	}

	zap.L().Info("order created",
		zap.Int64("order_id", hdr.ID),
		zap.Int64("customer_id", customerID),
		zap.Float64("total", hdr.Total),
		zap.Int("lines", len(created)))

	if s.publish != nil {
		s.publish(TopicOrderCreated, hdr.ID, customerID, hdr.Total)
	}

	return &CreatedOrder{
		ID:         hdr.ID,
		CustomerID: hdr.CustomerID,
		Status:     hdr.Status,
		Total:      hdr.Total,
		Lines:      created,
		LineCount:  len(created),
	}, nil
}

// ListCustomerOrders returns the customer's full order history, newest first,
// each header composed with its detailed lines. An empty history yields an
// empty slice, never an error.
func (s *Service) ListCustomerOrders(ctx context.Context, customerID int64) ([]CustomerOrder, error) {
	if customerID <= 0 {
		return nil, ErrMissingCustomer
	}
	orders, err := s.repo.ListOrdersWithLines(ctx, customerID)
	if err != nil {
		zap.L().Error("order listing failed",
			zap.Int64("customer_id", customerID),
			zap.Error(err))
		return nil, err
	}
	return orders, nil
}
