package feed

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

var errNilCallback = errors.New("feed: snapshot and error callbacks are required")

// MongoFeed mirrors a whole MongoDB collection through a change stream.
// Change streams need a replica set or sharded cluster.
type MongoFeed struct {
	Collection *mongo.Collection
	Logger     *zap.Logger
}

func NewMongoFeed(collection *mongo.Collection, logger *zap.Logger) *MongoFeed {
	return &MongoFeed{Collection: collection, Logger: logger}
}

// Subscribe starts one goroutine that sends the initial snapshot and then a
// fresh snapshot after every change event. The subscription ends on the
// first error or when cancel is called.
func (f *MongoFeed) Subscribe(onSnapshot func([]Document), onError func(error)) (func(), error) {
	if onSnapshot == nil || onError == nil {
		return nil, errNilCallback
	}

	ctx, cancel := context.WithCancel(context.Background())
	go f.run(ctx, onSnapshot, onError)

	var once sync.Once
	return func() { once.Do(cancel) }, nil
}

func (f *MongoFeed) run(ctx context.Context, onSnapshot func([]Document), onError func(error)) {
	// Open the stream before the first read so no change between the two is lost.
	stream, err := f.Collection.Watch(ctx, mongo.Pipeline{})
	if err != nil {
		f.fail(ctx, onError, fmt.Errorf("failed to open change stream on %s: %w", f.Collection.Name(), err))
		return
	}
	defer stream.Close(context.Background())

	if !f.deliver(ctx, onSnapshot, onError) {
		return
	}

	for stream.Next(ctx) {
		// Coalesce a burst of events into one snapshot.
		for stream.RemainingBatchLength() > 0 {
			if !stream.TryNext(ctx) {
				break
			}
		}
		if !f.deliver(ctx, onSnapshot, onError) {
			return
		}
	}

	if err := stream.Err(); err != nil {
		f.fail(ctx, onError, fmt.Errorf("change stream on %s failed: %w", f.Collection.Name(), err))
	}
}

func (f *MongoFeed) deliver(ctx context.Context, onSnapshot func([]Document), onError func(error)) bool {
	docs, err := f.snapshot(ctx)
	if err != nil {
		f.fail(ctx, onError, err)
		return false
	}
	if ctx.Err() != nil {
		return false
	}
	onSnapshot(docs)
	return true
}

func (f *MongoFeed) snapshot(ctx context.Context) ([]Document, error) {
	cursor, err := f.Collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", f.Collection.Name(), err)
	}
	defer cursor.Close(context.Background())

	docs := []Document{}
	for cursor.Next(ctx) {
		// cursor.Current is reused by the next call to Next.
		raw := make(bson.Raw, len(cursor.Current))
		copy(raw, cursor.Current)

		id, err := raw.LookupErr("_id")
		if err != nil {
			return nil, fmt.Errorf("document in %s has no _id: %w", f.Collection.Name(), err)
		}
		docs = append(docs, Document{ID: IdentityString(id), Payload: raw})
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", f.Collection.Name(), err)
	}
	return docs, nil
}

// fail reports err unless the subscription was cancelled.
func (f *MongoFeed) fail(ctx context.Context, onError func(error), err error) {
	if ctx.Err() != nil {
		return
	}
	if f.Logger != nil {
		f.Logger.Warn("change feed error", zap.String("collection", f.Collection.Name()), zap.Error(err))
	}
	onError(err)
}
