// server/internal/models/purchase_request.go
package models

import "sort"

// Known purchase request status labels. Status is an open string on the
// document; these are the values the UI and the view classifier rely on.
const (
	StatusRequestCreated     = "Request Created"
	StatusPendingApproval    = "Pending Approval"
	StatusApproved           = "Approved"
	StatusApprovedPendingPO  = "Approved - Pending PO Creation"
	StatusPendingAtSupplyOps = "Pending at Supply Ops"
	StatusDispatched         = "Dispatched"
	StatusCompleted          = "Completed"
	StatusCancelled          = "Cancelled"
)

// Vendor is one supplier quote for a SKU.
type Vendor struct {
	VendorID              string       `bson:"vendorId" json:"vendorId"`
	VendorPrice           float64      `bson:"vendorPrice" json:"vendorPrice"`
	SupplyPoc             string       `bson:"supplyPoc" json:"supplyPoc"` // point of contact on the supply team
	VendorPaymentTerms    string       `bson:"vendorPaymentTerms" json:"vendorPaymentTerms"`
	BrandInvoiceAlignment string       `bson:"brandInvoiceAlignment" json:"brandInvoiceAlignment"`
	PickupAddress         string       `bson:"pickupAddress" json:"pickupAddress"`
	FlashSale             bool         `bson:"flashSale" json:"flashSale"`
	ExpectedPickupTime    int64        `bson:"expectedPickupTime" json:"expectedPickupTime"` // epoch ms
	VendorStatus          VendorStatus `bson:"vendorStatus" json:"vendorStatus"`

	// Set by Supply Ops once a purchase order is issued against this quote.
	PONumber string   `bson:"poNumber,omitempty" json:"poNumber"`
	POStatus POStatus `bson:"poStatus" json:"poStatus"`
}

// POIssued reports whether a purchase order exists for this quote.
func (v Vendor) POIssued() bool {
	return v.POStatus.Normalize() != POStatusNotIssued
}

// SKU is a stock keeping unit being sourced inside a purchase request.
type SKU struct {
	SKU                 string   `bson:"sku" json:"sku"`
	Quantity            float64  `bson:"quantity" json:"quantity"`
	ExpectedPrice       float64  `bson:"expectedPrice" json:"expectedPrice"`
	Vendors             []Vendor `bson:"vendors" json:"vendors"`
	UnmaskedProductName *string  `bson:"unmaskedProductName" json:"unmaskedProductName"`
	SuperCategory       *string  `bson:"superCategory" json:"superCategory"`
	Brand               *string  `bson:"brand" json:"brand"`
	ASV                 *float64 `bson:"asv" json:"asv"` // average sale value
	Seasonality         *string  `bson:"seasonality" json:"seasonality"`
	SeasonDuration      *string  `bson:"seasonDuration" json:"seasonDuration"`
}

// Vendor returns the quote with the given vendor id.
func (s SKU) Vendor(vendorID string) (Vendor, bool) {
	for _, v := range s.Vendors {
		if v.VendorID == vendorID {
			return v, true
		}
	}
	return Vendor{}, false
}

// HistoryLog is an immutable audit entry.
type HistoryLog struct {
	Status    string `bson:"status" json:"status"`
	User      string `bson:"user" json:"user"`
	Timestamp int64  `bson:"timestamp" json:"timestamp"` // epoch ms
}

// PurchaseRequest is the root aggregate mirrored from the remote collection.
// ID is assigned by the store and is never part of the stored payload.
type PurchaseRequest struct {
	ID          string       `bson:"-" json:"id"`
	ProposedWh  string       `bson:"proposedWh" json:"proposedWh"`
	SKUs        []SKU        `bson:"skus" json:"skus"`
	Status      string       `bson:"status" json:"status"`
	InitiatedBy string       `bson:"initiatedBy" json:"initiatedBy"`
	History     []HistoryLog `bson:"history" json:"history"`
	CreatedAt   int64        `bson:"createdAt" json:"createdAt"` // epoch ms
}

// SKU returns the SKU entry with the given identifier.
func (pr PurchaseRequest) SKU(sku string) (SKU, bool) {
	for _, s := range pr.SKUs {
		if s.SKU == sku {
			return s, true
		}
	}
	return SKU{}, false
}

// Transition records a status change. History is append-only.
func (pr *PurchaseRequest) Transition(status, user string, at int64) {
	pr.Status = status
	pr.History = append(pr.History, HistoryLog{Status: status, User: user, Timestamp: at})
}

// SortedHistory returns a copy of history ordered by timestamp, oldest first.
// The store does not guarantee chronological order, so callers that display
// or audit history go through here instead of trusting feed order.
func SortedHistory(history []HistoryLog) []HistoryLog {
	sorted := make([]HistoryLog, len(history))
	copy(sorted, history)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Timestamp < sorted[j].Timestamp
	})
	return sorted
}

// Notification is the single user-facing message slot.
type Notification struct {
	Show    bool   `json:"show"`
	Title   string `json:"title"`
	Message string `json:"message"`
}
