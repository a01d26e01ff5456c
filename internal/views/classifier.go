// Package views derives the pipeline, in-transit and business order views
// from purchase requests. Every function here is pure.
package views

import "pr-tracker-api-server/internal/models"

// Kind names the view an order row belongs to.
type Kind string

const (
	KindNone      Kind = ""
	KindPipeline  Kind = "pipeline"
	KindInTransit Kind = "in-transit"
	KindBusiness  Kind = "business"
)

// IsTerminal: the PO was received or cancelled, or the request itself is
// completed or cancelled.
func IsTerminal(o models.SupplyOpsPipeline) bool {
	if o.POStatus.Normalize().Terminal() {
		return true
	}
	return o.Request.Status == models.StatusCompleted || o.Request.Status == models.StatusCancelled
}

// IsDispatched: the PO or the request reports dispatch.
func IsDispatched(o models.SupplyOpsPipeline) bool {
	return o.POStatus.Normalize() == models.POStatusDispatched || o.Request.Status == models.StatusDispatched
}

// IsIssued: a purchase order exists and is open.
func IsIssued(o models.SupplyOpsPipeline) bool {
	return o.POStatus.Normalize() == models.POStatusIssued
}

// Classify returns the single view o belongs to. Terminal wins over
// dispatched, which wins over issued.
func Classify(o models.SupplyOpsPipeline) Kind {
	switch {
	case IsTerminal(o):
		return KindBusiness
	case IsDispatched(o):
		return KindInTransit
	case IsIssued(o):
		return KindPipeline
	default:
		return KindNone
	}
}

// Views is a partition of order rows.
type Views struct {
	Pipeline  []models.SupplyOpsPipeline `json:"pipeline"`
	InTransit []models.SupplyOpsPipeline `json:"inTransit"`
	Business  []models.SupplyOpsBusiness `json:"business"`
}

// Project flattens requests into one row per vendor quote that has a
// purchase order. Quotes without a PO are in no view.
func Project(requests []models.PurchaseRequest) []models.SupplyOpsPipeline {
	var orders []models.SupplyOpsPipeline
	for _, pr := range requests {
		for _, s := range pr.SKUs {
			for _, v := range s.Vendors {
				if !v.POIssued() {
					continue
				}
				orders = append(orders, models.NewSupplyOpsPipeline(pr, s, v))
			}
		}
	}
	return orders
}

// Partition sorts orders into the three views, preserving input order.
func Partition(orders []models.SupplyOpsPipeline) Views {
	v := Views{
		Pipeline:  []models.SupplyOpsPipeline{},
		InTransit: []models.SupplyOpsPipeline{},
		Business:  []models.SupplyOpsBusiness{},
	}
	for _, o := range orders {
		switch Classify(o) {
		case KindPipeline:
			v.Pipeline = append(v.Pipeline, o)
		case KindInTransit:
			v.InTransit = append(v.InTransit, o)
		case KindBusiness:
			v.Business = append(v.Business, models.NewSupplyOpsBusiness(o))
		}
	}
	return v
}

// FromRequests projects and partitions in one step.
func FromRequests(requests []models.PurchaseRequest) Views {
	return Partition(Project(requests))
}

func Pipeline(orders []models.SupplyOpsPipeline) []models.SupplyOpsPipeline {
	return Partition(orders).Pipeline
}

func InTransit(orders []models.SupplyOpsPipeline) []models.SupplyOpsPipeline {
	return Partition(orders).InTransit
}

func Business(orders []models.SupplyOpsPipeline) []models.SupplyOpsBusiness {
	return Partition(orders).Business
}
