package database

import (
	"testing"
	"time"

	"pr-tracker-api-server/internal/models"
	"pr-tracker-api-server/internal/views"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPurchaseRequestFixtures(t *testing.T) {
	now := time.UnixMilli(1700000000000)
	fixtures := PurchaseRequestFixtures(now)
	require.Len(t, fixtures, 2)

	open := fixtures[0]
	assert.Equal(t, models.StatusApproved, open.Status)
	require.Len(t, open.History, 2)
	assert.Equal(t, models.StatusApproved, open.History[len(open.History)-1].Status)

	v := views.FromRequests(fixtures)
	require.Len(t, v.Pipeline, 1)
	assert.Equal(t, "PO-789012", v.Pipeline[0].PONumber)
	assert.Empty(t, v.InTransit)
	require.Len(t, v.Business, 1)
	assert.Equal(t, "PR-2023-002", v.Business[0].Request.ID)
	assert.Equal(t, "CasaPlus", *v.Business[0].Brand)
}
