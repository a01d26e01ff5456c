// Package feed is the boundary to the remote document collection. A Feed
// pushes the complete current document set to its subscriber on subscribe
// and again after every change.
package feed

import (
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"
)

// Document is one stored document: the identity assigned by the store and
// the raw field payload.
type Document struct {
	ID      string
	Payload bson.Raw
}

// Feed delivers full snapshots of a collection. Callbacks of one
// subscription are never invoked concurrently and arrive in emission order.
// The returned cancel function is idempotent.
type Feed interface {
	Subscribe(onSnapshot func([]Document), onError func(error)) (cancel func(), err error)
}

// IdentityString renders a store identity (_id) as an opaque string.
func IdentityString(v bson.RawValue) string {
	switch v.Type {
	case bsontype.ObjectID:
		return v.ObjectID().Hex()
	case bsontype.String:
		return v.StringValue()
	default:
		return v.String()
	}
}
