package models

// SupplyOpsPipeline is one request/SKU/vendor order row. It is built fresh
// from the mirrored requests on every query and owns nothing.
type SupplyOpsPipeline struct {
	Request  PurchaseRequest `json:"request"`
	SKU      SKU             `json:"sku"`
	Vendor   Vendor          `json:"vendor"`
	PONumber string          `json:"poNumber"`
	POStatus POStatus        `json:"poStatus"`
}

// SupplyOpsBusiness is a pipeline row with SKU and request fields
// denormalized for the business view.
type SupplyOpsBusiness struct {
	SupplyOpsPipeline
	UnmaskedProductName *string      `json:"unmaskedProductName"`
	SuperCategory       *string      `json:"superCategory"`
	Brand               *string      `json:"brand"`
	ASV                 *float64     `json:"asv"`
	Seasonality         *string      `json:"seasonality"`
	SeasonDuration      *string      `json:"seasonDuration"`
	ProposedWh          string       `json:"proposedWh"`
	InitiatedBy         string       `json:"initiatedBy"`
	History             []HistoryLog `json:"history"`
}

// NewSupplyOpsPipeline builds an order row for vendor v of sku s in pr.
func NewSupplyOpsPipeline(pr PurchaseRequest, s SKU, v Vendor) SupplyOpsPipeline {
	return SupplyOpsPipeline{
		Request:  pr,
		SKU:      s,
		Vendor:   v,
		PONumber: v.PONumber,
		POStatus: v.POStatus.Normalize(),
	}
}

// NewSupplyOpsBusiness denormalizes an order row. History is returned in
// timestamp order.
func NewSupplyOpsBusiness(p SupplyOpsPipeline) SupplyOpsBusiness {
	return SupplyOpsBusiness{
		SupplyOpsPipeline:   p,
		UnmaskedProductName: p.SKU.UnmaskedProductName,
		SuperCategory:       p.SKU.SuperCategory,
		Brand:               p.SKU.Brand,
		ASV:                 p.SKU.ASV,
		Seasonality:         p.SKU.Seasonality,
		SeasonDuration:      p.SKU.SeasonDuration,
		ProposedWh:          p.Request.ProposedWh,
		InitiatedBy:         p.Request.InitiatedBy,
		History:             SortedHistory(p.Request.History),
	}
}
