package console_test

import (
	"testing"

	console "github.com/goliatone/go-console"
	"github.com/stretchr/testify/assert"
)

func TestEstimateMargin(t *testing.T) {
	tests := []struct {
		name string
		in   console.MarginInput
		want console.MarginEstimate
	}{
		{
			name: "typical listing",
			in: console.MarginInput{
				SellingPrice:  1000,
				CostPrice:     600,
				CommissionPct: 15,
				ShippingFee:   50,
				TaxOnFeesPct:  18,
			},
			want: console.MarginEstimate{
				Commission: 150,
				TaxOnFees:  36,
				NetPayout:  764,
				Margin:     164,
				MarginPct:  16.4,
			},
		},
		{
			name: "loss making listing goes negative",
			in: console.MarginInput{
				SellingPrice:  200,
				CostPrice:     300,
				CommissionPct: 20,
				ShippingFee:   60,
				TaxOnFeesPct:  18,
			},
			want: console.MarginEstimate{
				Commission: 40,
				TaxOnFees:  18,
				NetPayout:  82,
				Margin:     -218,
				MarginPct:  -109,
			},
		},
		{
			name: "zero fees",
			in: console.MarginInput{
				SellingPrice: 500,
				CostPrice:    200,
			},
			want: console.MarginEstimate{
				NetPayout: 500,
				Margin:    300,
				MarginPct: 60,
			},
		},
		{
			name: "fractional amounts round to paise",
			in: console.MarginInput{
				SellingPrice:  999,
				CostPrice:     500,
				CommissionPct: 12.5,
				ShippingFee:   49,
				TaxOnFeesPct:  18,
			},
			want: console.MarginEstimate{
				Commission: 124.88,
				TaxOnFees:  31.3,
				NetPayout:  793.83,
				Margin:     293.83,
				MarginPct:  29.41,
			},
		},
		{
			name: "zero selling price",
			in: console.MarginInput{
				CostPrice: 250,
			},
			want: console.MarginEstimate{
				Margin: -250,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := console.EstimateMargin(tt.in)
			assert.InDelta(t, tt.want.Commission, got.Commission, 0.01)
			assert.InDelta(t, tt.want.TaxOnFees, got.TaxOnFees, 0.01)
			assert.InDelta(t, tt.want.NetPayout, got.NetPayout, 0.01)
			assert.InDelta(t, tt.want.Margin, got.Margin, 0.01)
			assert.InDelta(t, tt.want.MarginPct, got.MarginPct, 0.01)
		})
	}
}
