package supply

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"pr-tracker-api-server/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var ErrNotFound = errors.New("supply input not found")

// Store persists supply inputs keyed by cpId.
type Store interface {
	Insert(ctx context.Context, in models.SupplyInput) error
	Get(ctx context.Context, cpID string) (models.SupplyInput, error)
	Replace(ctx context.Context, in models.SupplyInput) error
	Delete(ctx context.Context, cpID string) error
	List(ctx context.Context) ([]models.SupplyInput, error)
}

// MongoStore keeps supply inputs in their own collection, separate from
// the nested purchase request documents.
type MongoStore struct {
	Collection *mongo.Collection
}

func NewMongoStore(db *mongo.Database, collection string) *MongoStore {
	return &MongoStore{Collection: db.Collection(collection)}
}

// EnsureIndexes creates the unique cpId index.
func (s *MongoStore) EnsureIndexes(ctx context.Context) error {
	_, err := s.Collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "cpId", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("failed to create cpId index: %w", err)
	}
	return nil
}

func (s *MongoStore) Insert(ctx context.Context, in models.SupplyInput) error {
	if _, err := s.Collection.InsertOne(ctx, in); err != nil {
		return fmt.Errorf("failed to insert supply input %s: %w", in.CpID, err)
	}
	return nil
}

func (s *MongoStore) Get(ctx context.Context, cpID string) (models.SupplyInput, error) {
	var in models.SupplyInput
	err := s.Collection.FindOne(ctx, bson.M{"cpId": cpID}).Decode(&in)
	if err == mongo.ErrNoDocuments {
		return models.SupplyInput{}, ErrNotFound
	}
	if err != nil {
		return models.SupplyInput{}, fmt.Errorf("failed to find supply input %s: %w", cpID, err)
	}
	return in, nil
}

func (s *MongoStore) Replace(ctx context.Context, in models.SupplyInput) error {
	result, err := s.Collection.ReplaceOne(ctx, bson.M{"cpId": in.CpID}, in)
	if err != nil {
		return fmt.Errorf("failed to replace supply input %s: %w", in.CpID, err)
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *MongoStore) Delete(ctx context.Context, cpID string) error {
	result, err := s.Collection.DeleteOne(ctx, bson.M{"cpId": cpID})
	if err != nil {
		return fmt.Errorf("failed to delete supply input %s: %w", cpID, err)
	}
	if result.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *MongoStore) List(ctx context.Context) ([]models.SupplyInput, error) {
	cursor, err := s.Collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to query supply inputs: %w", err)
	}
	defer cursor.Close(context.Background())

	var inputs []models.SupplyInput
	if err = cursor.All(ctx, &inputs); err != nil {
		return nil, fmt.Errorf("failed to decode supply inputs: %w", err)
	}
	if inputs == nil {
		inputs = []models.SupplyInput{}
	}
	return inputs, nil
}

// MemoryStore is an in-process Store for tests and local runs without MongoDB.
type MemoryStore struct {
	mu    sync.RWMutex
	data  map[string]models.SupplyInput
	order []string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: make(map[string]models.SupplyInput)}
}

func (s *MemoryStore) Insert(_ context.Context, in models.SupplyInput) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.data[in.CpID]; ok {
		return fmt.Errorf("supply input %s already exists", in.CpID)
	}
	s.data[in.CpID] = in
	s.order = append(s.order, in.CpID)
	return nil
}

func (s *MemoryStore) Get(_ context.Context, cpID string) (models.SupplyInput, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	in, ok := s.data[cpID]
	if !ok {
		return models.SupplyInput{}, ErrNotFound
	}
	return in, nil
}

func (s *MemoryStore) Replace(_ context.Context, in models.SupplyInput) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.data[in.CpID]; !ok {
		return ErrNotFound
	}
	s.data[in.CpID] = in
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, cpID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.data[cpID]; !ok {
		return ErrNotFound
	}
	delete(s.data, cpID)
	for i, id := range s.order {
		if id == cpID {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}

func (s *MemoryStore) List(_ context.Context) ([]models.SupplyInput, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	inputs := make([]models.SupplyInput, 0, len(s.order))
	for _, id := range s.order {
		inputs = append(inputs, s.data[id])
	}
	return inputs, nil
}
