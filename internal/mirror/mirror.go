// Package mirror keeps a local, observable copy of the remote purchase
// request collection in step with its change feed.
package mirror

import (
	"fmt"
	"sync"
	"sync/atomic"

	"pr-tracker-api-server/internal/feed"
	"pr-tracker-api-server/internal/models"
	"pr-tracker-api-server/internal/notify"
	"pr-tracker-api-server/internal/state"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

const (
	DataErrorTitle   = "Data Error"
	DataErrorMessage = "Could not load purchase requests from the database."
)

// Mirror replaces the requests value with every batch the feed delivers.
// A feed error keeps the last good collection. Subscribers of the injected
// values run while the mirror holds its lock and must not call Start or Stop.
type Mirror struct {
	feed     feed.Feed
	requests *state.Value[[]models.PurchaseRequest]
	loading  *state.Value[bool]
	notifier *notify.Channel
	logger   *zap.Logger

	mu         sync.Mutex
	generation uint64
	active     uint64 // generation of the live subscription, 0 when detached
	settled    bool   // first batch or error seen for the live subscription
	cancel     func()

	epoch    string
	revision atomic.Uint64
	applying atomic.Uint64 // revision being published to subscribers
}

// New wires a mirror to its feed and the state it writes.
func New(
	f feed.Feed,
	requests *state.Value[[]models.PurchaseRequest],
	loading *state.Value[bool],
	notifier *notify.Channel,
	logger *zap.Logger,
) *Mirror {
	if f == nil || requests == nil || loading == nil || notifier == nil {
		panic("mirror: feed, requests, loading and notifier are required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Mirror{
		feed:     f,
		requests: requests,
		loading:  loading,
		notifier: notifier,
		logger:   logger,
		epoch:    uuid.New().String(),
	}
}

// Start detaches any live subscription, sets loading and subscribes to the
// feed. The returned function detaches this subscription only; calling it
// after a newer Start is a no-op.
func (m *Mirror) Start() func() {
	m.Stop()

	m.mu.Lock()
	m.generation++
	gen := m.generation
	m.active = gen
	m.settled = false
	m.loading.Set(true)
	m.mu.Unlock()

	cancel, err := m.feed.Subscribe(
		func(docs []feed.Document) { m.onSnapshot(gen, docs) },
		func(err error) { m.onError(gen, err) },
	)
	if err != nil {
		panic(fmt.Sprintf("mirror: subscribe: %v", err))
	}

	m.mu.Lock()
	if m.active != gen {
		m.mu.Unlock()
		cancel()
		return func() {}
	}
	m.cancel = cancel
	m.mu.Unlock()

	m.logger.Info("purchase request mirror started", zap.Uint64("generation", gen))
	return func() { m.stop(gen) }
}

// Stop detaches the live subscription. It is idempotent.
func (m *Mirror) Stop() {
	m.mu.Lock()
	gen := m.active
	m.mu.Unlock()
	if gen != 0 {
		m.stop(gen)
	}
}

func (m *Mirror) stop(gen uint64) {
	m.mu.Lock()
	if m.active != gen {
		m.mu.Unlock()
		return
	}
	m.active = 0
	cancel := m.cancel
	m.cancel = nil
	m.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	m.logger.Info("purchase request mirror stopped", zap.Uint64("generation", gen))
}

func (m *Mirror) onSnapshot(gen uint64, docs []feed.Document) {
	requests := make([]models.PurchaseRequest, 0, len(docs))
	for _, doc := range docs {
		pr, err := m.decode(doc)
		if err != nil {
			m.onError(gen, err)
			return
		}
		requests = append(requests, pr)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.active != gen {
		return
	}
	next := m.revision.Load() + 1
	m.applying.Store(next)
	m.requests.Set(requests)
	m.revision.Store(next)
	if !m.settled {
		m.settled = true
		m.loading.Set(false)
	}
}

func (m *Mirror) onError(gen uint64, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.active != gen {
		return
	}
	m.logger.Error("error fetching purchase requests", zap.Error(err))
	m.notifier.Notify(DataErrorTitle, DataErrorMessage)
	if !m.settled {
		m.settled = true
		m.loading.Set(false)
	}
}

// decode builds a PurchaseRequest field by field so the store identity is
// the only source of ID. A payload field named "id" that disagrees with it
// is logged and ignored.
func (m *Mirror) decode(doc feed.Document) (models.PurchaseRequest, error) {
	var payload models.PurchaseRequest
	if err := bson.Unmarshal(doc.Payload, &payload); err != nil {
		return models.PurchaseRequest{}, fmt.Errorf("failed to decode purchase request %s: %w", doc.ID, err)
	}

	if shadow, err := doc.Payload.LookupErr("id"); err == nil {
		if s := feed.IdentityString(shadow); s != doc.ID {
			m.logger.Warn("payload id differs from document identity; using document identity",
				zap.String("documentID", doc.ID),
				zap.String("payloadID", s),
			)
		}
	}

	skus := make([]models.SKU, len(payload.SKUs))
	for i, s := range payload.SKUs {
		vendors := make([]models.Vendor, len(s.Vendors))
		for j, v := range s.Vendors {
			v.VendorStatus = v.VendorStatus.Normalize()
			v.POStatus = v.POStatus.Normalize()
			vendors[j] = v
		}
		s.Vendors = vendors
		skus[i] = s
	}

	history := make([]models.HistoryLog, len(payload.History))
	copy(history, payload.History)

	return models.PurchaseRequest{
		ID:          doc.ID,
		ProposedWh:  payload.ProposedWh,
		SKUs:        skus,
		Status:      payload.Status,
		InitiatedBy: payload.InitiatedBy,
		History:     history,
		CreatedAt:   payload.CreatedAt,
	}, nil
}

// Requests returns the latest mirrored collection.
func (m *Mirror) Requests() []models.PurchaseRequest {
	return m.requests.Get()
}

func (m *Mirror) Loading() bool {
	return m.loading.Get()
}

// Revision counts the batches applied by this mirror. It only grows after
// the batch is visible through Requests.
func (m *Mirror) Revision() uint64 {
	return m.revision.Load()
}

// Epoch identifies this mirror instance. Revisions are only comparable
// within one epoch.
func (m *Mirror) Epoch() string {
	return m.epoch
}

// Get returns the mirrored request with the given id.
func (m *Mirror) Get(id string) (models.PurchaseRequest, bool) {
	for _, pr := range m.requests.Get() {
		if pr.ID == id {
			return pr, true
		}
	}
	return models.PurchaseRequest{}, false
}

// OnChange calls fn after every applied batch.
func (m *Mirror) OnChange(fn func(revision uint64, requests []models.PurchaseRequest)) func() {
	return m.requests.Subscribe(func(requests []models.PurchaseRequest) {
		fn(m.applying.Load(), requests)
	})
}
