package supply

import "pr-tracker-api-server/internal/models"

// WithContext joins in with the purchase request whose SKU matches in.SkuID
// and which carries a quote from in.VendorAgmID. ok is false when no request
// matches; the result then carries only the supply input's own data.
func WithContext(in models.SupplyInput, requests []models.PurchaseRequest) (models.SupplyInputWithContext, bool) {
	out := models.SupplyInputWithContext{
		SupplyInput:   in,
		SKU:           enhanceSKU(models.SKU{SKU: in.SkuID}, in),
		Vendor:        enhanceVendor(models.Vendor{VendorID: in.VendorAgmID, SupplyPoc: in.SupplyPoc}, in),
		WarehouseName: in.WarehouseName,
		UpdatedAt:     latest(in.SupplyOrderBookModifiedTime, in.ApprovalTime, in.SupplyOrderBookTime),
	}

	for i := range requests {
		pr := requests[i]
		s, ok := pr.SKU(in.SkuID)
		if !ok {
			continue
		}
		v, ok := s.Vendor(in.VendorAgmID)
		if !ok {
			continue
		}
		out.PurchaseRequest = &pr
		out.SKU = enhanceSKU(s, in)
		out.Vendor = enhanceVendor(v, in)
		out.ProposedWh = pr.ProposedWh
		out.InitiatedBy = pr.InitiatedBy
		out.CreatedAt = pr.CreatedAt
		out.UpdatedAt = latest(out.UpdatedAt, pr.CreatedAt)
		if out.WarehouseName == "" {
			out.WarehouseName = pr.ProposedWh
		}
		return out, true
	}
	return out, false
}

// Reconcile turns supply inputs into order rows for the view classifier.
// Inputs that match no request are skipped. A PO number recorded on the
// supply input marks the quote issued when the request itself has none.
func Reconcile(inputs []models.SupplyInput, requests []models.PurchaseRequest) []models.SupplyOpsPipeline {
	var orders []models.SupplyOpsPipeline
	for _, in := range inputs {
		ctx, ok := WithContext(in, requests)
		if !ok {
			continue
		}
		v := ctx.Vendor.Vendor
		if !v.POIssued() && in.POIssued && in.PONumber != "" {
			v.PONumber = in.PONumber
			v.POStatus = models.POStatusIssued
		}
		if !v.POIssued() {
			continue
		}
		orders = append(orders, models.NewSupplyOpsPipeline(*ctx.PurchaseRequest, ctx.SKU.SKU, v))
	}
	return orders
}

func enhanceSKU(s models.SKU, in models.SupplyInput) models.EnhancedSKU {
	return models.EnhancedSKU{
		SKU:                           s,
		SkuIDFromModule:               in.SkuIDSkuModule,
		CpWithGst:                     in.CpWithGst,
		QuantityAvailable:             in.QuantityAvailable,
		ExpiryDetails:                 in.ExpiryDetails,
		PackagingCondition:            in.PackagingCondition,
		InventoryQuantity:             in.InventoryQuantity,
		WarehouseQuantityAgainstOrder: in.WarehouseQuantityAgainstOrder,
		QuantityAgainstOrder:          in.QuantityAgainstOrder,
	}
}

func enhanceVendor(v models.Vendor, in models.SupplyInput) models.EnhancedVendor {
	return models.EnhancedVendor{
		Vendor:                       v,
		VendorAgmID:                  in.VendorAgmID,
		VendorName:                   in.VendorName,
		VendorDistrict:               in.VendorDistrictSi,
		VendorState:                  in.VendorStateSi,
		VendorPin:                    in.VendorPinSi,
		VendorMoq:                    in.VendorMoq,
		VendorQRCondition:            in.VendorQRCondition,
		ExpiryDetails:                in.ExpiryDetails,
		PackagingCondition:           in.PackagingCondition,
		PriceValidity:                in.PriceValidity,
		VendorReadyForManifestations: in.VendorReadyForManifestations,
		CompanyBilling:               in.CompanyBilling,
		AdvanceAmount:                in.AdvanceAmount,
	}
}

func latest(ts ...int64) int64 {
	var m int64
	for _, t := range ts {
		if t > m {
			m = t
		}
	}
	return m
}
