package console

import (
	"context"
	"fmt"
	"net/url"

	validation "github.com/go-ozzo/ozzo-validation"
	goerrors "github.com/goliatone/go-errors"
)

// Product is the catalog row as the backend reports it.
type Product struct {
	ID         string     `json:"id,omitempty"`
	Title      string     `json:"title"`
	Category   string     `json:"category"`
	SizeScheme SizeScheme `json:"sizeScheme,omitempty"`
	Sizes      []string   `json:"sizes,omitempty"`
	Price      float64    `json:"price"`
	CostPrice  float64    `json:"costPrice,omitempty"`
	Stock      int        `json:"stock"`
	ImageURL   string     `json:"imageUrl,omitempty"`
	Active     bool       `json:"active"`
}

// ProductPayload is the create/update body.
type ProductPayload struct {
	Title      string     `form:"title" json:"title"`
	Category   string     `form:"category" json:"category"`
	SizeScheme SizeScheme `form:"size_scheme" json:"sizeScheme,omitempty"`
	Sizes      []string   `json:"sizes,omitempty"`
	Price      float64    `form:"price" json:"price"`
	CostPrice  float64    `form:"cost_price" json:"costPrice,omitempty"`
	Stock      int        `form:"stock" json:"stock"`
	ImageURL   string     `form:"image_url" json:"imageUrl,omitempty"`
}

// Validate will validate the payload
func (p ProductPayload) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.Title, validation.Required, validation.Length(3, 200)),
		validation.Field(&p.Category, validation.Required, validation.Length(2, 100)),
		validation.Field(&p.Price, validation.Required, validation.Min(1.0)),
		validation.Field(&p.Stock, validation.Min(0)),
	)
}

// ListProductsQuery narrows the catalog listing.
type ListProductsQuery struct {
	Search   string
	Category string
	Page     int
	PerPage  int
}

func (q ListProductsQuery) encode() string {
	values := url.Values{}
	if q.Search != "" {
		values.Set("q", q.Search)
	}
	if q.Category != "" {
		values.Set("category", q.Category)
	}
	if q.Page > 0 {
		values.Set("page", fmt.Sprintf("%d", q.Page))
	}
	if q.PerPage > 0 {
		values.Set("per_page", fmt.Sprintf("%d", q.PerPage))
	}
	if encoded := values.Encode(); encoded != "" {
		return "?" + encoded
	}
	return ""
}

// ProductsAPI wraps the catalog CRUD endpoints.
type ProductsAPI struct {
	client *Client
	logger Logger
}

func NewProductsAPI(client *Client) *ProductsAPI {
	return &ProductsAPI{
		client: client,
		logger: defLogger{},
	}
}

func (p *ProductsAPI) WithLogger(logger Logger) *ProductsAPI {
	if logger != nil {
		p.logger = logger
	}
	return p
}

func (p *ProductsAPI) List(ctx context.Context, query ListProductsQuery, opts ...RequestOption) ([]Product, error) {
	var products []Product
	if err := p.client.Get(ctx, "/products"+query.encode(), &products, opts...); err != nil {
		return nil, err
	}
	return products, nil
}

func (p *ProductsAPI) Get(ctx context.Context, id string, opts ...RequestOption) (*Product, error) {
	product := &Product{}
	if err := p.client.Get(ctx, "/products/"+id, product, opts...); err != nil {
		return nil, err
	}
	return product, nil
}

// Create validates the payload, infers the size scheme from the
// category when the form left it empty, and files the product.
func (p *ProductsAPI) Create(ctx context.Context, payload ProductPayload, opts ...RequestOption) (*Product, error) {
	if err := payload.Validate(); err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryValidation, "invalid product payload")
	}

	if payload.SizeScheme == "" {
		payload.SizeScheme = InferSizeScheme(payload.Category)
	}
	if len(payload.Sizes) == 0 {
		payload.Sizes = SizeOptionsFor(payload.SizeScheme)
	}

	product := &Product{}
	if err := p.client.Post(ctx, "/products", payload, product, opts...); err != nil {
		return nil, err
	}
	return product, nil
}

func (p *ProductsAPI) Update(ctx context.Context, id string, payload ProductPayload, opts ...RequestOption) (*Product, error) {
	if err := payload.Validate(); err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryValidation, "invalid product payload")
	}

	if payload.SizeScheme == "" {
		payload.SizeScheme = InferSizeScheme(payload.Category)
	}

	product := &Product{}
	if err := p.client.Put(ctx, "/products/"+id, payload, product, opts...); err != nil {
		return nil, err
	}
	return product, nil
}

func (p *ProductsAPI) Delete(ctx context.Context, id string, opts ...RequestOption) error {
	return p.client.Delete(ctx, "/products/"+id, opts...)
}

// LowStock lists products at or below the given threshold. The
// dashboard treats a failure here as an empty list, not a page error.
func (p *ProductsAPI) LowStock(ctx context.Context, threshold int, opts ...RequestOption) ([]Product, error) {
	var products []Product
	path := fmt.Sprintf("/products/low-stock?threshold=%d", threshold)
	if err := p.client.Get(ctx, path, &products, opts...); err != nil {
		return nil, err
	}
	return products, nil
}
