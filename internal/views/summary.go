package views

import (
	"pr-tracker-api-server/internal/models"

	"github.com/shopspring/decimal"
)

// ViewSummary aggregates one view. OrderValue is the sum of
// vendorPrice x quantity over the view's rows.
type ViewSummary struct {
	Orders     int             `json:"orders"`
	Requests   int             `json:"requests"`
	Quantity   decimal.Decimal `json:"quantity"`
	OrderValue decimal.Decimal `json:"orderValue"`
}

type Summary struct {
	Pipeline  ViewSummary `json:"pipeline"`
	InTransit ViewSummary `json:"inTransit"`
	Business  ViewSummary `json:"business"`
}

// Summarize computes totals with exact decimal arithmetic so that sums of
// prices do not drift.
func Summarize(v Views) Summary {
	business := make([]models.SupplyOpsPipeline, len(v.Business))
	for i, b := range v.Business {
		business[i] = b.SupplyOpsPipeline
	}
	return Summary{
		Pipeline:  summarize(v.Pipeline),
		InTransit: summarize(v.InTransit),
		Business:  summarize(business),
	}
}

func summarize(orders []models.SupplyOpsPipeline) ViewSummary {
	s := ViewSummary{Quantity: decimal.Zero, OrderValue: decimal.Zero}
	requests := make(map[string]struct{})
	for _, o := range orders {
		qty := decimal.NewFromFloat(o.SKU.Quantity)
		price := decimal.NewFromFloat(o.Vendor.VendorPrice)
		s.Orders++
		s.Quantity = s.Quantity.Add(qty)
		s.OrderValue = s.OrderValue.Add(price.Mul(qty))
		requests[o.Request.ID] = struct{}{}
	}
	s.Requests = len(requests)
	return s
}
