package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSupplyInputPatchApply(t *testing.T) {
	in := SupplyInput{
		AgmID:     "AGM-1",
		CpID:      "CP-1",
		CpWithGst: 100,
		Remarks:   "old",
		OpsStatus: OpsOrderPending,
	}
	price := 120.5
	remarks := "new"
	status := OpsDispatched
	issued := true

	out := SupplyInputPatch{
		CpWithGst: &price,
		Remarks:   &remarks,
		OpsStatus: &status,
		POIssued:  &issued,
	}.Apply(in)

	assert.Equal(t, 120.5, out.CpWithGst)
	assert.Equal(t, "new", out.Remarks)
	assert.Equal(t, OpsDispatched, out.OpsStatus)
	assert.True(t, out.POIssued)
	assert.Equal(t, "AGM-1", out.AgmID)
	assert.Equal(t, "CP-1", out.CpID)
	assert.Equal(t, "old", in.Remarks, "input is not modified")
}

func TestSupplyInputPatchEmpty(t *testing.T) {
	in := SupplyInput{AgmID: "AGM-1", PickupPin: 560001}
	assert.Equal(t, in, SupplyInputPatch{}.Apply(in))
}

func TestSupplyInputOverlayKeepsUnsetFields(t *testing.T) {
	stored := SupplyInput{AgmID: "AGM-1", SkuID: "SKU-1", VendorAgmID: "VAGM-1", QuantityAvailable: 10, Remarks: "keep"}

	out := stored.Overlay(SupplyInput{CpID: "CP-1", QuantityAvailable: 75})

	assert.Equal(t, "AGM-1", out.AgmID)
	assert.Equal(t, "SKU-1", out.SkuID)
	assert.Equal(t, "VAGM-1", out.VendorAgmID)
	assert.Equal(t, "keep", out.Remarks)
	assert.Equal(t, 75.0, out.QuantityAvailable)
	assert.Equal(t, "CP-1", out.CpID)
	assert.Empty(t, stored.CpID, "receiver is not modified")
}
