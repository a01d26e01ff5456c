package views

import (
	"testing"

	"pr-tracker-api-server/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestSummarize(t *testing.T) {
	requests := []models.PurchaseRequest{
		{ID: "PR-1", Status: models.StatusApproved, SKUs: []models.SKU{
			{SKU: "A", Quantity: 3, Vendors: []models.Vendor{{VendorID: "V1", VendorPrice: 0.1, POStatus: models.POStatusIssued}}},
			{SKU: "B", Quantity: 2, Vendors: []models.Vendor{{VendorID: "V2", VendorPrice: 0.2, POStatus: models.POStatusIssued}}},
		}},
		{ID: "PR-2", Status: models.StatusApproved, SKUs: []models.SKU{
			{SKU: "C", Quantity: 10, Vendors: []models.Vendor{{VendorID: "V3", VendorPrice: 150.75, POStatus: models.POStatusReceivedAtWH}}},
		}},
	}

	s := Summarize(FromRequests(requests))

	assert.Equal(t, 2, s.Pipeline.Orders)
	assert.Equal(t, 1, s.Pipeline.Requests)
	assert.Equal(t, "5", s.Pipeline.Quantity.String())
	assert.Equal(t, "0.7", s.Pipeline.OrderValue.String())

	assert.Equal(t, 0, s.InTransit.Orders)
	assert.True(t, s.InTransit.OrderValue.IsZero())

	assert.Equal(t, 1, s.Business.Orders)
	assert.Equal(t, "1507.5", s.Business.OrderValue.String())
}
