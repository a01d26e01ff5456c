package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSortedHistory(t *testing.T) {
	history := []HistoryLog{
		{Status: StatusApproved, User: "b", Timestamp: 300},
		{Status: StatusRequestCreated, User: "a", Timestamp: 100},
		{Status: StatusPendingApproval, User: "a", Timestamp: 200},
		{Status: "Note", User: "c", Timestamp: 200},
	}

	sorted := SortedHistory(history)

	require.Len(t, sorted, 4)
	assert.Equal(t, StatusRequestCreated, sorted[0].Status)
	assert.Equal(t, StatusPendingApproval, sorted[1].Status, "equal timestamps keep stored order")
	assert.Equal(t, "Note", sorted[2].Status)
	assert.Equal(t, StatusApproved, sorted[3].Status)
	assert.Equal(t, StatusApproved, history[0].Status, "input is not reordered")
}

func TestSortedHistoryEmpty(t *testing.T) {
	assert.Empty(t, SortedHistory(nil))
}

func TestTransitionAppendsHistory(t *testing.T) {
	pr := PurchaseRequest{ID: "PR-1", Status: StatusRequestCreated}
	pr.Transition(StatusPendingApproval, "jane", 10)
	pr.Transition(StatusApproved, "john", 20)

	assert.Equal(t, StatusApproved, pr.Status)
	assert.Equal(t, []HistoryLog{
		{Status: StatusPendingApproval, User: "jane", Timestamp: 10},
		{Status: StatusApproved, User: "john", Timestamp: 20},
	}, pr.History)
}

func TestLookupHelpers(t *testing.T) {
	pr := PurchaseRequest{SKUs: []SKU{{
		SKU:     "SKU-1",
		Vendors: []Vendor{{VendorID: "V1"}, {VendorID: "V2", POStatus: POStatusIssued}},
	}}}

	s, ok := pr.SKU("SKU-1")
	require.True(t, ok)
	v, ok := s.Vendor("V2")
	require.True(t, ok)
	assert.True(t, v.POIssued())

	_, ok = s.Vendor("V9")
	assert.False(t, ok)
	_, ok = pr.SKU("SKU-9")
	assert.False(t, ok)
}

func TestNewSupplyOpsBusinessDenormalizes(t *testing.T) {
	brand := "Acme"
	pr := PurchaseRequest{
		ID:          "PR-1",
		ProposedWh:  "WH-1",
		InitiatedBy: "jane",
		History:     []HistoryLog{{Status: "b", Timestamp: 2}, {Status: "a", Timestamp: 1}},
	}
	s := SKU{SKU: "SKU-1", Brand: &brand}
	v := Vendor{VendorID: "V1", PONumber: "PO-1"}

	p := NewSupplyOpsPipeline(pr, s, v)
	assert.Equal(t, POStatusNotIssued, p.POStatus)
	assert.Equal(t, "PO-1", p.PONumber)

	b := NewSupplyOpsBusiness(p)
	assert.Equal(t, &brand, b.Brand)
	assert.Nil(t, b.SuperCategory)
	assert.Equal(t, "WH-1", b.ProposedWh)
	assert.Equal(t, "jane", b.InitiatedBy)
	assert.Equal(t, "a", b.History[0].Status)
}
