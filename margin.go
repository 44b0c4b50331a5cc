package console

import "math"

// MarginInput is what the pricing form knows before listing a product.
// Amounts are rupees; rates are percentages.
type MarginInput struct {
	SellingPrice  float64 `json:"sellingPrice"`
	CostPrice     float64 `json:"costPrice"`
	CommissionPct float64 `json:"commissionPct"`
	ShippingFee   float64 `json:"shippingFee"`
	TaxOnFeesPct  float64 `json:"taxOnFeesPct"`
}

// MarginEstimate is the client-side settlement preview. It is only an
// estimate; authoritative settlement math lives server side.
type MarginEstimate struct {
	Commission float64 `json:"commission"`
	TaxOnFees  float64 `json:"taxOnFees"`
	NetPayout  float64 `json:"netPayout"`
	Margin     float64 `json:"margin"`
	MarginPct  float64 `json:"marginPct"`
}

// EstimateMargin computes the settlement preview shown next to the
// price field. Values are rounded to paise.
func EstimateMargin(in MarginInput) MarginEstimate {
	if in.SellingPrice <= 0 {
		return MarginEstimate{Margin: -roundPaise(in.CostPrice)}
	}

	commission := in.SellingPrice * in.CommissionPct / 100
	taxOnFees := (commission + in.ShippingFee) * in.TaxOnFeesPct / 100
	netPayout := in.SellingPrice - commission - in.ShippingFee - taxOnFees
	margin := netPayout - in.CostPrice

	estimate := MarginEstimate{
		Commission: roundPaise(commission),
		TaxOnFees:  roundPaise(taxOnFees),
		NetPayout:  roundPaise(netPayout),
		Margin:     roundPaise(margin),
	}

	if in.SellingPrice > 0 {
		estimate.MarginPct = roundPaise(margin / in.SellingPrice * 100)
	}

	return estimate
}

func roundPaise(v float64) float64 {
	return math.Round(v*100) / 100
}
