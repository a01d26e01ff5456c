package models

import (
	"encoding/json"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"
)

var (
	ErrUnknownVendorStatus = errors.New("unknown vendor status")
	ErrUnknownPOStatus     = errors.New("unknown PO status")
)

// VendorStatus is the approval state of a vendor quote.
type VendorStatus string

const (
	VendorStatusPending  VendorStatus = "Pending"
	VendorStatusApproved VendorStatus = "Approved"
	VendorStatusRejected VendorStatus = "Rejected"
)

// ParseVendorStatus maps a stored label to a VendorStatus. Older documents
// omit the field entirely; those quotes are still pending.
func ParseVendorStatus(s string) (VendorStatus, error) {
	switch VendorStatus(s) {
	case "":
		return VendorStatusPending, nil
	case VendorStatusPending, VendorStatusApproved, VendorStatusRejected:
		return VendorStatus(s), nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownVendorStatus, s)
}

func (s VendorStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(s.Normalize()))
}

func (s *VendorStatus) UnmarshalJSON(data []byte) error {
	var raw *string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	label := ""
	if raw != nil {
		label = *raw
	}
	parsed, err := ParseVendorStatus(label)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// Normalize maps the zero value to VendorStatusPending.
func (s VendorStatus) Normalize() VendorStatus {
	if s == "" {
		return VendorStatusPending
	}
	return s
}

func (s VendorStatus) MarshalBSONValue() (bsontype.Type, []byte, error) {
	return bson.MarshalValue(string(s.Normalize()))
}

func (s *VendorStatus) UnmarshalBSONValue(t bsontype.Type, data []byte) error {
	label, err := bsonLabel(t, data)
	if err != nil {
		return err
	}
	parsed, err := ParseVendorStatus(label)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// POStatus is the lifecycle of the purchase order raised against a vendor
// quote. POStatusNotIssued replaces the empty-string / null sentinel used by
// older documents.
type POStatus string

const (
	POStatusNotIssued    POStatus = "Not Issued"
	POStatusIssued       POStatus = "Issued"
	POStatusDispatched   POStatus = "Dispatched"
	POStatusReceivedAtWH POStatus = "Received at WH"
	POStatusCancelled    POStatus = "Cancelled"
)

// ParsePOStatus maps a stored label to a POStatus.
func ParsePOStatus(s string) (POStatus, error) {
	switch POStatus(s) {
	case "":
		return POStatusNotIssued, nil
	case POStatusNotIssued, POStatusIssued, POStatusDispatched, POStatusReceivedAtWH, POStatusCancelled:
		return POStatus(s), nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownPOStatus, s)
}

// Normalize maps the zero value, left behind when a document has no
// poStatus field at all, to POStatusNotIssued.
func (s POStatus) Normalize() POStatus {
	if s == "" {
		return POStatusNotIssued
	}
	return s
}

// Terminal reports whether the order can no longer move.
func (s POStatus) Terminal() bool {
	return s == POStatusReceivedAtWH || s == POStatusCancelled
}

func (s POStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(s.Normalize()))
}

func (s *POStatus) UnmarshalJSON(data []byte) error {
	var raw *string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	label := ""
	if raw != nil {
		label = *raw
	}
	parsed, err := ParsePOStatus(label)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

func (s POStatus) MarshalBSONValue() (bsontype.Type, []byte, error) {
	return bson.MarshalValue(string(s.Normalize()))
}

func (s *POStatus) UnmarshalBSONValue(t bsontype.Type, data []byte) error {
	label, err := bsonLabel(t, data)
	if err != nil {
		return err
	}
	parsed, err := ParsePOStatus(label)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// bsonLabel reads a string value, treating null and undefined as empty.
func bsonLabel(t bsontype.Type, data []byte) (string, error) {
	if t == bsontype.Null || t == bsontype.Undefined {
		return "", nil
	}
	var label string
	if err := (bson.RawValue{Type: t, Value: data}).Unmarshal(&label); err != nil {
		return "", err
	}
	return label, nil
}
