package console

import (
	"context"
	"net/url"
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
	goerrors "github.com/goliatone/go-errors"
)

// OrderStatus is the backend's order lifecycle state.
type OrderStatus = string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusPacked    OrderStatus = "packed"
	OrderStatusShipped   OrderStatus = "shipped"
	OrderStatusDelivered OrderStatus = "delivered"
	OrderStatusCancelled OrderStatus = "cancelled"
	OrderStatusReturned  OrderStatus = "returned"
)

// Order is a read model; the console never mutates it beyond the
// explicit ship/cancel actions.
type Order struct {
	ID         string      `json:"id"`
	ProductID  string      `json:"productId"`
	Title      string      `json:"title"`
	Quantity   int         `json:"quantity"`
	Amount     float64     `json:"amount"`
	Status     OrderStatus `json:"status"`
	TrackingID string      `json:"trackingId,omitempty"`
	PlacedAt   *time.Time  `json:"placedAt,omitempty"`
	UpdatedAt  *time.Time  `json:"updatedAt,omitempty"`
}

// Open reports whether the order still needs seller action.
func (o Order) Open() bool {
	switch o.Status {
	case OrderStatusPending, OrderStatusPacked:
		return true
	default:
		return false
	}
}

// OrdersAPI wraps the order tracking endpoints.
type OrdersAPI struct {
	client *Client
	logger Logger
}

func NewOrdersAPI(client *Client) *OrdersAPI {
	return &OrdersAPI{
		client: client,
		logger: defLogger{},
	}
}

func (o *OrdersAPI) WithLogger(logger Logger) *OrdersAPI {
	if logger != nil {
		o.logger = logger
	}
	return o
}

func (o *OrdersAPI) List(ctx context.Context, status OrderStatus, opts ...RequestOption) ([]Order, error) {
	path := "/orders"
	if status != "" {
		path += "?" + url.Values{"status": []string{status}}.Encode()
	}

	var orders []Order
	if err := o.client.Get(ctx, path, &orders, opts...); err != nil {
		return nil, err
	}
	return orders, nil
}

func (o *OrdersAPI) Get(ctx context.Context, id string, opts ...RequestOption) (*Order, error) {
	order := &Order{}
	if err := o.client.Get(ctx, "/orders/"+id, order, opts...); err != nil {
		return nil, err
	}
	return order, nil
}

// ShipRequest marks an order shipped with its courier tracking id.
type ShipRequest struct {
	TrackingID string `form:"tracking_id" json:"trackingId"`
	Courier    string `form:"courier" json:"courier"`
}

func (r ShipRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.TrackingID, validation.Required, validation.Length(4, 60)),
		validation.Field(&r.Courier, validation.Required, validation.Length(2, 60)),
	)
}

func (o *OrdersAPI) Ship(ctx context.Context, id string, payload ShipRequest, opts ...RequestOption) error {
	if err := payload.Validate(); err != nil {
		return goerrors.Wrap(err, goerrors.CategoryValidation, "invalid ship payload")
	}
	return o.client.Post(ctx, "/orders/"+id+"/ship", payload, nil, opts...)
}

func (o *OrdersAPI) Cancel(ctx context.Context, id, reason string, opts ...RequestOption) error {
	payload := map[string]string{"reason": reason}
	return o.client.Post(ctx, "/orders/"+id+"/cancel", payload, nil, opts...)
}

// Summarize buckets orders by status for the orders page header.
func Summarize(orders []Order) map[OrderStatus]int {
	summary := map[OrderStatus]int{}
	for _, order := range orders {
		summary[order.Status]++
	}
	return summary
}
