package order

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/tiendalabs/tiendago/internal/domain"
	"github.com/tiendalabs/tiendago/pkg/common"
)

// CartLine is one submitted cart entry: product reference plus quantity.
// Unit price is never part of the submission; it is captured server-side.
type CartLine struct {
	ProductID int64 `json:"producto_id"`
	Quantity  int   `json:"cantidad"`
}

// LineDetail is an order line joined with its product row for presentation.
type LineDetail struct {
	LineID       int64   `json:"id"`
	ProductID    int64   `json:"producto_id"`
	ProductName  string  `json:"producto_nombre"`
	ProductPrice float64 `json:"producto_precio"`
	ProductImage string  `json:"producto_imagen"`
	Quantity     int     `json:"cantidad"`
}

// CustomerOrder is one order header composed with its detailed lines.
type CustomerOrder struct {
	ID         int64        `json:"id"`
	CustomerID int64        `json:"cliente_id"`
	Status     string       `json:"estado"`
	Total      float64      `json:"total"`
	CreatedAt  time.Time    `json:"fecha"`
	Lines      []LineDetail `json:"productos"`
}

// Repository handles order persistence. The primitive insert/list operations
// exist for granular callers; the workflow itself only uses the atomic
// CreateOrder and the single-query ListOrdersWithLines.
type Repository interface {
	// InsertOrderHeader creates an order header with status pendiente.
	// Fails when customerID violates the customer foreign key.
	InsertOrderHeader(ctx context.Context, customerID int64, total float64) (*domain.Order, error)

	// InsertOrderLine creates one line. Fails when orderID or productID
	// violates its foreign key.
	InsertOrderLine(ctx context.Context, orderID, productID int64, quantity int, unitPrice float64) (*domain.OrderLine, error)

	// ListOrderHeaders returns a customer's headers, newest first.
	ListOrderHeaders(ctx context.Context, customerID int64) ([]domain.Order, error)

	// ListOrderLinesWithProduct returns an order's lines joined with product
	// name, live price and image.
	ListOrderLinesWithProduct(ctx context.Context, orderID int64) ([]LineDetail, error)

	// CreateOrder writes the header and all lines in one transaction,
	// capturing each unit price from the current product row and recomputing
	// the total. Any failure rolls back the whole order.
	CreateOrder(ctx context.Context, customerID int64, lines []CartLine) (*domain.Order, []domain.OrderLine, error)

	// ListOrdersWithLines returns a customer's orders with nested line detail
	// in a single join-and-group round trip, newest first.
	ListOrdersWithLines(ctx context.Context, customerID int64) ([]CustomerOrder, error)
}

// GormRepository is the GORM implementation of Repository.
type GormRepository struct {
	db *gorm.DB
}

func NewGormRepository(db *gorm.DB) *GormRepository {
	return &GormRepository{db: db}
}

func (r *GormRepository) InsertOrderHeader(ctx context.Context, customerID int64, total float64) (*domain.Order, error) {
	hdr := &domain.Order{
		ID:         common.UUIDint64(),
		CustomerID: customerID,
		Status:     domain.OrderStatusPending,
		Total:      total,
	}
	if err := r.db.WithContext(ctx).Create(hdr).Error; err != nil {
		return nil, errors.Wrap(err, "insert order header")
	}
	return hdr, nil
}

func (r *GormRepository) InsertOrderLine(ctx context.Context, orderID, productID int64, quantity int, unitPrice float64) (*domain.OrderLine, error) {
	line := &domain.OrderLine{
		ID:        common.UUIDint64(),
		OrderID:   orderID,
		ProductID: productID,
		Quantity:  quantity,
		UnitPrice: unitPrice,
	}
	if err := r.db.WithContext(ctx).Create(line).Error; err != nil {
		return nil, errors.Wrap(err, "insert order line")
	}
	return line, nil
}

func (r *GormRepository) ListOrderHeaders(ctx context.Context, customerID int64) ([]domain.Order, error) {
	var headers []domain.Order
	err := r.db.WithContext(ctx).
		Where("customer_id = ?", customerID).
		Order("created_at DESC, id DESC").
		Find(&headers).Error
	if err != nil {
		return nil, errors.Wrap(err, "list order headers")
	}
	return headers, nil
}

func (r *GormRepository) ListOrderLinesWithProduct(ctx context.Context, orderID int64) ([]LineDetail, error) {
	details := make([]LineDetail, 0)
	err := r.db.WithContext(ctx).
		Table("order_lines AS l").
		Select(`l.id AS line_id, l.quantity,
			p.id AS product_id, p.name AS product_name,
			p.price AS product_price, p.image_url AS product_image`).
		Joins("JOIN products p ON p.id = l.product_id").
		Where("l.order_id = ?", orderID).
		Order("l.id ASC").
		Scan(&details).Error
	if err != nil {
		return nil, errors.Wrap(err, "list order lines")
	}
	return details, nil
}

func (r *GormRepository) CreateOrder(ctx context.Context, customerID int64, lines []CartLine) (*domain.Order, []domain.OrderLine, error) {
	var (
		hdr     *domain.Order
		created []domain.OrderLine
	)
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		hdr = &domain.Order{
			ID:         common.UUIDint64(),
			CustomerID: customerID,
			Status:     domain.OrderStatusPending,
		}
		if err := tx.Create(hdr).Error; err != nil {
			return errors.Wrap(err, "insert order header")
		}

		total := decimal.Zero
		for _, ln := range lines {
			var p domain.Product
			err := tx.Where("id = ? AND active = ?", ln.ProductID, true).First(&p).Error
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errors.Wrapf(ErrProductUnavailable, "product %d", ln.ProductID)
			}
			if err != nil {
				return errors.Wrapf(err, "load product %d", ln.ProductID)
			}

			line := domain.OrderLine{
				ID:        common.UUIDint64(),
				OrderID:   hdr.ID,
				ProductID: p.ID,
				Quantity:  ln.Quantity,
				UnitPrice: p.Price,
			}
			if err := tx.Create(&line).Error; err != nil {
				return errors.Wrapf(err, "insert line for product %d", ln.ProductID)
			}
			created = append(created, line)

			total = total.Add(decimal.NewFromFloat(p.Price).
				Mul(decimal.NewFromInt(int64(ln.Quantity))))
		}

		hdr.Total = total.Round(2).InexactFloat64()
		if err := tx.Model(&domain.Order{}).Where("id = ?", hdr.ID).
			Update("total", hdr.Total).Error; err != nil {
			return errors.Wrap(err, "update order total")
		}
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	return hdr, created, nil
}

// orderLineRow is one row of the orders/lines/products join. Line columns are
// pointers because the LEFT JOIN yields NULLs for line-less orders.
type orderLineRow struct {
	OrderID      int64
	CustomerID   int64
	Status       string
	Total        float64
	CreatedAt    time.Time
	LineID       *int64
	Quantity     *int
	ProductID    *int64
	ProductName  *string
	ProductPrice *float64
	ProductImage *string
}

func (r *GormRepository) ListOrdersWithLines(ctx context.Context, customerID int64) ([]CustomerOrder, error) {
	var rows []orderLineRow
	err := r.db.WithContext(ctx).
		Table("orders AS o").
		Select(`o.id AS order_id, o.customer_id, o.status, o.total, o.created_at,
			l.id AS line_id, l.quantity,
			p.id AS product_id, p.name AS product_name,
			p.price AS product_price, p.image_url AS product_image`).
		Joins("LEFT JOIN order_lines l ON l.order_id = o.id").
		Joins("LEFT JOIN products p ON p.id = l.product_id").
		Where("o.customer_id = ?", customerID).
		Order("o.created_at DESC, o.id DESC, l.id ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, errors.Wrap(err, "list orders with lines")
	}

	// Rows for one order are contiguous thanks to the ordering clause.
	result := make([]CustomerOrder, 0)
	for _, row := range rows {
		if len(result) == 0 || result[len(result)-1].ID != row.OrderID {
			result = append(result, CustomerOrder{
				ID:         row.OrderID,
				CustomerID: row.CustomerID,
				Status:     row.Status,
				Total:      row.Total,
				CreatedAt:  row.CreatedAt,
				Lines:      make([]LineDetail, 0),
			})
		}
		if row.LineID == nil || row.ProductID == nil {
			continue
		}
		cur := &result[len(result)-1]
		detail := LineDetail{
			LineID:    *row.LineID,
			ProductID: *row.ProductID,
		}
		if row.Quantity != nil {
			detail.Quantity = *row.Quantity
		}
		if row.ProductName != nil {
			detail.ProductName = *row.ProductName
		}
		if row.ProductPrice != nil {
			detail.ProductPrice = *row.ProductPrice
		}
		if row.ProductImage != nil {
			detail.ProductImage = *row.ProductImage
		}
		cur.Lines = append(cur.Lines, detail)
	}
	return result, nil
}
