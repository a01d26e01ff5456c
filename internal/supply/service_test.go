package supply

import (
	"context"
	"testing"
	"time"

	"pr-tracker-api-server/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestService() *Service {
	s := NewService(NewMemoryStore(), 0, zap.NewNop())
	n := 0
	s.newID = func() string {
		n++
		return []string{"", "aaaa0001", "aaaa0002", "aaaa0003", "aaaa0004"}[n]
	}
	s.now = func() time.Time { return time.UnixMilli(1700000000000) }
	return s
}

func TestCreateAssignsCpID(t *testing.T) {
	s := newTestService()

	resp, err := s.Create(context.Background(), models.SupplyInput{AgmID: "AGM-1", SkuID: "SKU-1"})
	require.NoError(t, err)

	assert.True(t, resp.Success)
	assert.Equal(t, "Supply Input created successfully.", resp.Message)
	require.NotNil(t, resp.Data)
	assert.Equal(t, "CP-aaaa0001", resp.Data.CpID)

	stored, ok, err := s.Get(context.Background(), "CP-aaaa0001")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "AGM-1", stored.AgmID)
}

func TestCreateReportsMissingFields(t *testing.T) {
	s := newTestService()

	resp, err := s.Create(context.Background(), models.SupplyInput{SkuID: "SKU-1"})
	require.NoError(t, err)
	assert.False(t, resp.Success)
	assert.Nil(t, resp.Data)
	assert.Equal(t, map[string]string{"agmId": "Required"}, resp.Errors)

	resp, err = s.Create(context.Background(), models.SupplyInput{})
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"agmId": "Required", "skuId": "Required"}, resp.Errors)

	all, err := s.FetchAll(context.Background())
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestUpdateMergesPatch(t *testing.T) {
	s := newTestService()
	created, err := s.Create(context.Background(), models.SupplyInput{AgmID: "AGM-1", SkuID: "SKU-1", Remarks: "old"})
	require.NoError(t, err)

	remarks := "urgent"
	resp, err := s.Update(context.Background(), created.Data.CpID, models.SupplyInputPatch{Remarks: &remarks})
	require.NoError(t, err)

	assert.True(t, resp.Success)
	assert.Equal(t, "Supply Input updated successfully.", resp.Message)
	assert.Equal(t, "urgent", resp.Data.Remarks)
	assert.Equal(t, "AGM-1", resp.Data.AgmID)
	assert.Equal(t, int64(1700000000000), resp.Data.SupplyOrderBookModifiedTime)
}

func TestUpdateUnknownID(t *testing.T) {
	s := newTestService()

	resp, err := s.Update(context.Background(), "CP-missing", models.SupplyInputPatch{})
	require.NoError(t, err)
	assert.False(t, resp.Success)
	assert.Equal(t, "Supply Input not found.", resp.Message)
}

func TestBulkCreateCountsFailures(t *testing.T) {
	s := newTestService()

	result, err := s.BulkOperation(context.Background(), models.BulkSupplyInputRequest{
		Operation: models.BulkCreate,
		SupplyInputs: []models.SupplyInput{
			{AgmID: "AGM-1", SkuID: "SKU-1"},
			{AgmID: "AGM-2"},
			{AgmID: "AGM-3", SkuID: "SKU-3"},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, "BATCH-aaaa0001", result.BatchID)
	assert.Equal(t, int64(1700000000000), result.ProcessedAt)
	assert.Equal(t, 2, result.Results.Successful)
	assert.Equal(t, 1, result.Results.Failed)
	assert.Equal(t, []string{"item 1: missing required fields skuId"}, result.Results.Errors)
	require.Len(t, result.SupplyInputs, 3)
	assert.Equal(t, "CP-aaaa0002", result.SupplyInputs[0].CpID)
	assert.Equal(t, "CP-aaaa0003", result.SupplyInputs[2].CpID)
}

func TestBulkUpdateAndDelete(t *testing.T) {
	s := newTestService()
	created, err := s.Create(context.Background(), models.SupplyInput{AgmID: "AGM-1", SkuID: "SKU-1"})
	require.NoError(t, err)

	replacement := *created.Data
	replacement.Remarks = "bulk"
	result, err := s.BulkOperation(context.Background(), models.BulkSupplyInputRequest{
		Operation:    models.BulkUpdate,
		BatchID:      "BATCH-1",
		SupplyInputs: []models.SupplyInput{replacement, {CpID: "CP-nope"}, {}},
	})
	require.NoError(t, err)
	assert.Equal(t, "BATCH-1", result.BatchID)
	assert.Equal(t, 1, result.Results.Successful)
	assert.Equal(t, 2, result.Results.Failed)
	assert.Equal(t, "item 1: supply input CP-nope not found", result.Results.Errors[0])
	assert.Equal(t, "item 2: cpId is required", result.Results.Errors[1])

	stored, _, err := s.Get(context.Background(), replacement.CpID)
	require.NoError(t, err)
	assert.Equal(t, "bulk", stored.Remarks)

	result, err = s.BulkOperation(context.Background(), models.BulkSupplyInputRequest{
		Operation:    models.BulkDelete,
		SupplyInputs: []models.SupplyInput{{CpID: replacement.CpID}},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, result.Results.Successful)

	_, ok, err := s.Get(context.Background(), replacement.CpID)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestBulkUpdateMergesIntoStoredRecord(t *testing.T) {
	s := newTestService()
	created, err := s.Create(context.Background(), models.SupplyInput{AgmID: "AGM-1", SkuID: "SKU-1", VendorAgmID: "VAGM-1"})
	require.NoError(t, err)
	cpID := created.Data.CpID

	result, err := s.BulkOperation(context.Background(), models.BulkSupplyInputRequest{
		Operation:    models.BulkUpdate,
		SupplyInputs: []models.SupplyInput{{CpID: cpID, QuantityAvailable: 75}},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, result.Results.Successful)
	assert.Equal(t, 0, result.Results.Failed)
	assert.Equal(t, "AGM-1", result.SupplyInputs[0].AgmID)

	stored, ok, err := s.Get(context.Background(), cpID)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "AGM-1", stored.AgmID)
	assert.Equal(t, "SKU-1", stored.SkuID)
	assert.Equal(t, "VAGM-1", stored.VendorAgmID)
	assert.Equal(t, 75.0, stored.QuantityAvailable)
	assert.Equal(t, int64(1700000000000), stored.SupplyOrderBookModifiedTime)
}

func TestBulkUpdateRejectsRecordMissingRequiredFields(t *testing.T) {
	s := newTestService()
	require.NoError(t, s.store.Insert(context.Background(), models.SupplyInput{CpID: "CP-legacy", SkuID: "SKU-1"}))

	result, err := s.BulkOperation(context.Background(), models.BulkSupplyInputRequest{
		Operation:    models.BulkUpdate,
		SupplyInputs: []models.SupplyInput{{CpID: "CP-legacy", Remarks: "touch"}},
	})
	require.NoError(t, err)
	assert.Equal(t, 0, result.Results.Successful)
	assert.Equal(t, []string{"item 0: missing required fields agmId"}, result.Results.Errors)

	stored, _, err := s.Get(context.Background(), "CP-legacy")
	require.NoError(t, err)
	assert.Empty(t, stored.Remarks)
}

func TestLatencyHonoursContext(t *testing.T) {
	s := NewService(NewMemoryStore(), time.Hour, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := s.FetchAll(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestMemoryStoreOrderAndNotFound(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()
	require.NoError(t, store.Insert(ctx, models.SupplyInput{CpID: "CP-1"}))
	require.NoError(t, store.Insert(ctx, models.SupplyInput{CpID: "CP-2"}))
	assert.Error(t, store.Insert(ctx, models.SupplyInput{CpID: "CP-1"}))

	list, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "CP-1", list[0].CpID)

	assert.ErrorIs(t, store.Delete(ctx, "CP-9"), ErrNotFound)
	assert.ErrorIs(t, store.Replace(ctx, models.SupplyInput{CpID: "CP-9"}), ErrNotFound)
	_, err = store.Get(ctx, "CP-9")
	assert.ErrorIs(t, err, ErrNotFound)
}
