// Package supply implements the Supply Ops request/response boundary for
// supply inputs. Validation failures and unknown ids come back as
// unsuccessful responses; only infrastructure failures are Go errors.
package supply

import (
	"context"
	"errors"
	"fmt"
	"time"

	"pr-tracker-api-server/internal/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	msgCreated        = "Supply Input created successfully."
	msgCreateMissing  = "Failed to create Supply Input. Missing required fields."
	msgUpdated        = "Supply Input updated successfully."
	msgNotFound       = "Supply Input not found."
	requiredFieldText = "Required"
)

type Service struct {
	store   Store
	latency time.Duration
	logger  *zap.Logger
	now     func() time.Time
	newID   func() string
}

// NewService returns a Service over store. latency, when positive, delays
// every call to mimic a remote backend.
func NewService(store Store, latency time.Duration, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		store:   store,
		latency: latency,
		logger:  logger,
		now:     time.Now,
		newID:   func() string { return uuid.New().String()[:8] },
	}
}

func (s *Service) wait(ctx context.Context) error {
	if s.latency <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(s.latency)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func validate(in models.SupplyInput) map[string]string {
	errs := map[string]string{}
	if in.AgmID == "" {
		errs["agmId"] = requiredFieldText
	}
	if in.SkuID == "" {
		errs["skuId"] = requiredFieldText
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}

// Create stores in under a newly assigned cpId.
func (s *Service) Create(ctx context.Context, in models.SupplyInput) (models.SupplyInputResponse, error) {
	if err := s.wait(ctx); err != nil {
		return models.SupplyInputResponse{}, err
	}
	created, errs, err := s.create(ctx, in)
	if err != nil {
		return models.SupplyInputResponse{}, err
	}
	if errs != nil {
		return models.SupplyInputResponse{Success: false, Message: msgCreateMissing, Errors: errs}, nil
	}
	return models.SupplyInputResponse{Success: true, Message: msgCreated, Data: &created}, nil
}

func (s *Service) create(ctx context.Context, in models.SupplyInput) (models.SupplyInput, map[string]string, error) {
	if errs := validate(in); errs != nil {
		return models.SupplyInput{}, errs, nil
	}
	in.CpID = fmt.Sprintf("CP-%s", s.newID())
	if err := s.store.Insert(ctx, in); err != nil {
		return models.SupplyInput{}, nil, err
	}
	s.logger.Info("supply input created", zap.String("cpId", in.CpID), zap.String("agmId", in.AgmID))
	return in, nil, nil
}

// Update merges patch into the stored record with the given cpId.
func (s *Service) Update(ctx context.Context, cpID string, patch models.SupplyInputPatch) (models.SupplyInputResponse, error) {
	if err := s.wait(ctx); err != nil {
		return models.SupplyInputResponse{}, err
	}
	current, err := s.store.Get(ctx, cpID)
	if errors.Is(err, ErrNotFound) {
		return models.SupplyInputResponse{Success: false, Message: msgNotFound}, nil
	}
	if err != nil {
		return models.SupplyInputResponse{}, err
	}

	updated := patch.Apply(current)
	updated.CpID = current.CpID
	updated.SupplyOrderBookModifiedTime = s.now().UnixMilli()
	if err := s.store.Replace(ctx, updated); err != nil {
		if errors.Is(err, ErrNotFound) {
			return models.SupplyInputResponse{Success: false, Message: msgNotFound}, nil
		}
		return models.SupplyInputResponse{}, err
	}
	return models.SupplyInputResponse{Success: true, Message: msgUpdated, Data: &updated}, nil
}

// Get returns one supply input; ok is false when cpID is unknown.
func (s *Service) Get(ctx context.Context, cpID string) (models.SupplyInput, bool, error) {
	in, err := s.store.Get(ctx, cpID)
	if errors.Is(err, ErrNotFound) {
		return models.SupplyInput{}, false, nil
	}
	if err != nil {
		return models.SupplyInput{}, false, err
	}
	return in, true, nil
}

func (s *Service) FetchAll(ctx context.Context) ([]models.SupplyInput, error) {
	if err := s.wait(ctx); err != nil {
		return nil, err
	}
	return s.store.List(ctx)
}

// BulkOperation applies one operation to every record and reports per-item
// failures in the results instead of aborting the batch.
func (s *Service) BulkOperation(ctx context.Context, req models.BulkSupplyInputRequest) (models.BulkSupplyInputOperation, error) {
	if err := s.wait(ctx); err != nil {
		return models.BulkSupplyInputOperation{}, err
	}

	batchID := req.BatchID
	if batchID == "" {
		batchID = fmt.Sprintf("BATCH-%s", s.newID())
	}
	result := models.BulkSupplyInputOperation{
		Operation:    req.Operation,
		SupplyInputs: make([]models.SupplyInput, 0, len(req.SupplyInputs)),
		BatchID:      batchID,
		Results:      models.BulkResults{Errors: []string{}},
	}

	for i, in := range req.SupplyInputs {
		processed, failure, err := s.applyBulk(ctx, req.Operation, in)
		if err != nil {
			return models.BulkSupplyInputOperation{}, err
		}
		result.SupplyInputs = append(result.SupplyInputs, processed)
		if failure != "" {
			result.Results.Failed++
			result.Results.Errors = append(result.Results.Errors, fmt.Sprintf("item %d: %s", i, failure))
			continue
		}
		result.Results.Successful++
	}

	result.ProcessedAt = s.now().UnixMilli()
	s.logger.Info("bulk supply operation processed",
		zap.String("batchId", batchID),
		zap.String("operation", string(req.Operation)),
		zap.Int("successful", result.Results.Successful),
		zap.Int("failed", result.Results.Failed),
	)
	return result, nil
}

func (s *Service) applyBulk(ctx context.Context, op models.BulkOperation, in models.SupplyInput) (models.SupplyInput, string, error) {
	switch op {
	case models.BulkCreate:
		created, errs, err := s.create(ctx, in)
		if err != nil {
			return in, "", err
		}
		if errs != nil {
			return in, fmt.Sprintf("missing required fields %s", joinKeys(errs)), nil
		}
		return created, "", nil
	case models.BulkUpdate:
		if in.CpID == "" {
			return in, "cpId is required", nil
		}
		current, err := s.store.Get(ctx, in.CpID)
		if errors.Is(err, ErrNotFound) {
			return in, fmt.Sprintf("supply input %s not found", in.CpID), nil
		}
		if err != nil {
			return in, "", err
		}
		merged := current.Overlay(in)
		if errs := validate(merged); errs != nil {
			return in, fmt.Sprintf("missing required fields %s", joinKeys(errs)), nil
		}
		merged.SupplyOrderBookModifiedTime = s.now().UnixMilli()
		err = s.store.Replace(ctx, merged)
		if errors.Is(err, ErrNotFound) {
			return in, fmt.Sprintf("supply input %s not found", in.CpID), nil
		}
		return merged, "", err
	case models.BulkDelete:
		if in.CpID == "" {
			return in, "cpId is required", nil
		}
		err := s.store.Delete(ctx, in.CpID)
		if errors.Is(err, ErrNotFound) {
			return in, fmt.Sprintf("supply input %s not found", in.CpID), nil
		}
		return in, "", err
	}
	return in, fmt.Sprintf("unsupported operation %q", op), nil
}

func joinKeys(m map[string]string) string {
	// agmId before skuId keeps messages stable.
	keys := ""
	for _, k := range []string{"agmId", "skuId"} {
		if _, ok := m[k]; ok {
			if keys != "" {
				keys += ", "
			}
			keys += k
		}
	}
	return keys
}
