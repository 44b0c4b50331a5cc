package console

import (
	"context"
	"sync/atomic"

	"golang.org/x/sync/errgroup"
)

// SellerStats is the dashboard's headline numbers.
type SellerStats struct {
	TotalOrders    int     `json:"totalOrders"`
	OpenOrders     int     `json:"openOrders"`
	TotalRevenue   float64 `json:"totalRevenue"`
	PendingPayout  float64 `json:"pendingPayout"`
	ActiveProducts int     `json:"activeProducts"`
}

// DashboardData is the fan-out result rendered by the dashboard page.
// Every section degrades independently: a failed sub-fetch leaves its
// zero value and flips Partial, it never fails the page.
type DashboardData struct {
	Profile  *Profile    `json:"profile,omitempty"`
	Stats    SellerStats `json:"stats"`
	LowStock []Product   `json:"lowStock,omitempty"`
	Partial  bool        `json:"partial,omitempty"`
}

// DashboardAPI aggregates the dashboard's parallel reads.
type DashboardAPI struct {
	seller   *SellerAPI
	products *ProductsAPI
	client   *Client
	logger   Logger

	lowStockThreshold int
}

func NewDashboardAPI(client *Client, seller *SellerAPI, products *ProductsAPI) *DashboardAPI {
	return &DashboardAPI{
		seller:            seller,
		products:          products,
		client:            client,
		logger:            defLogger{},
		lowStockThreshold: 5,
	}
}

func (d *DashboardAPI) WithLogger(logger Logger) *DashboardAPI {
	if logger != nil {
		d.logger = logger
	}
	return d
}

func (d *DashboardAPI) WithLowStockThreshold(threshold int) *DashboardAPI {
	if threshold > 0 {
		d.lowStockThreshold = threshold
	}
	return d
}

// Overview fans out to profile, stats and low-stock in parallel and
// joins once all three settle. Sub-calls run with local error handling
// so a single failure cannot fire three competing redirects.
func (d *DashboardAPI) Overview(ctx context.Context) (*DashboardData, error) {
	data := &DashboardData{}
	var partial atomic.Bool

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		profile, err := d.seller.Me(gctx, WithLocalErrorHandling())
		if err != nil {
			d.logger.Warn("dashboard profile fetch failed: %v", err)
			partial.Store(true)
			return nil
		}
		data.Profile = profile
		return nil
	})

	g.Go(func() error {
		stats := SellerStats{}
		if err := d.client.Get(gctx, "/seller/stats", &stats, WithLocalErrorHandling()); err != nil {
			d.logger.Warn("dashboard stats fetch failed: %v", err)
			partial.Store(true)
			return nil
		}
		data.Stats = stats
		return nil
	})

	g.Go(func() error {
		lowStock, err := d.products.LowStock(gctx, d.lowStockThreshold, WithLocalErrorHandling())
		if err != nil {
			d.logger.Warn("dashboard low-stock fetch failed: %v", err)
			partial.Store(true)
			return nil
		}
		data.LowStock = lowStock
		return nil
	})

	// Sub-fetches swallow their own failures, so the only error left is
	// a canceled context.
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data.Partial = partial.Load()
	return data, nil
}
