package supply

import (
	"testing"

	"pr-tracker-api-server/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func contextRequests() []models.PurchaseRequest {
	return []models.PurchaseRequest{
		{ID: "PR-0", SKUs: []models.SKU{{SKU: "SKU-1", Vendors: []models.Vendor{{VendorID: "OTHER"}}}}},
		{
			ID:          "PR-1",
			ProposedWh:  "Warehouse-North",
			InitiatedBy: "jane",
			Status:      models.StatusApproved,
			CreatedAt:   1000,
			SKUs: []models.SKU{{SKU: "SKU-1", Quantity: 5, Vendors: []models.Vendor{
				{VendorID: "VAGM-1", VendorPrice: 9.5},
			}}},
		},
	}
}

func TestWithContextMatches(t *testing.T) {
	in := models.SupplyInput{
		CpID:                        "CP-1",
		SkuID:                       "SKU-1",
		VendorAgmID:                 "VAGM-1",
		VendorName:                  "Global",
		CpWithGst:                   12,
		SupplyOrderBookModifiedTime: 5000,
	}

	out, ok := WithContext(in, contextRequests())

	require.True(t, ok)
	require.NotNil(t, out.PurchaseRequest)
	assert.Equal(t, "PR-1", out.PurchaseRequest.ID)
	assert.Equal(t, 5.0, out.SKU.Quantity)
	assert.Equal(t, 12.0, out.SKU.CpWithGst)
	assert.Equal(t, 9.5, out.Vendor.VendorPrice)
	assert.Equal(t, "Global", out.Vendor.VendorName)
	assert.Equal(t, "Warehouse-North", out.ProposedWh)
	assert.Equal(t, "Warehouse-North", out.WarehouseName)
	assert.Equal(t, int64(1000), out.CreatedAt)
	assert.Equal(t, int64(5000), out.UpdatedAt)
}

func TestWithContextNoMatch(t *testing.T) {
	out, ok := WithContext(models.SupplyInput{SkuID: "SKU-9", VendorAgmID: "VAGM-1"}, contextRequests())
	assert.False(t, ok)
	assert.Nil(t, out.PurchaseRequest)
	assert.Equal(t, "SKU-9", out.SKU.SKU.SKU)
}

func TestReconcile(t *testing.T) {
	inputs := []models.SupplyInput{
		{SkuID: "SKU-1", VendorAgmID: "VAGM-1"},
		{SkuID: "SKU-1", VendorAgmID: "VAGM-1", POIssued: true, PONumber: "PO-55"},
		{SkuID: "SKU-2", VendorAgmID: "VAGM-1", POIssued: true, PONumber: "PO-56"},
	}

	orders := Reconcile(inputs, contextRequests())

	require.Len(t, orders, 1)
	assert.Equal(t, "PO-55", orders[0].PONumber)
	assert.Equal(t, models.POStatusIssued, orders[0].POStatus)
	assert.Equal(t, "PR-1", orders[0].Request.ID)
}
