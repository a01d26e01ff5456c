// server/internal/models/supply_input.go
package models

import "reflect"

type SupplyTeamSegment string

const (
	SegmentRetail    SupplyTeamSegment = "Retail"
	SegmentWholesale SupplyTeamSegment = "Wholesale"
)

type VendorQRCondition string

const (
	QRFullyIntact     VendorQRCondition = "Fully Intact on master pack and internal pack"
	QRScratchedMaster VendorQRCondition = "Scratched on master box but code on internal pack is intact"
	QRScratchedBoth   VendorQRCondition = "Scratched on both inside and outside"
)

type DemandOrderStatus string

const (
	DemandOrderBooked DemandOrderStatus = "Order Booked"
	DemandDropped     DemandOrderStatus = "Dropped"
	DemandOnHold      DemandOrderStatus = "On Hold"
)

type SupplyBookingStatus string

const (
	SupplyBooked          SupplyBookingStatus = "Supply Booked"
	SupplyAvailable       SupplyBookingStatus = "Available Supply"
	SupplyOOS             SupplyBookingStatus = "Supply OOS"
	SupplyDispatched      SupplyBookingStatus = "Supply Dispatched"
	SupplyClosedPartially SupplyBookingStatus = "Closed - Partially"
)

type BookedAgainst string

const (
	BookedAgainstInventory               BookedAgainst = "Inventory"
	BookedAgainstOrder                   BookedAgainst = "Order"
	BookedAgainstOrdersInventory         BookedAgainst = "Orders + Inventory"
	BookedAgainstOrdersPendency          BookedAgainst = "Orders + Pendency"
	BookedAgainstOrdersPendencyInventory BookedAgainst = "Orders + Pendency + Inventory"
	BookedAgainstPendency                BookedAgainst = "Pendency"
)

type TypeOfPurchase string

const (
	PurchaseReadyAtSellerWH          TypeOfPurchase = "Ready to move at seller's WH"
	PurchaseMaterialInTransit        TypeOfPurchase = "Material in transit towards seller's WH"
	PurchaseReadyAtCnFNotBilled      TypeOfPurchase = "Ready to move at company's CnF but not billed yet, To be picked from CnF"
	PurchaseReadyAtCnFPickFromSeller TypeOfPurchase = "Ready to move at company's CnF but not billed yet, To be picked from Seller WH"
	PurchaseNoneOfAbove              TypeOfPurchase = "None of the above"
)

type BrandInvoiceAlignment string

const (
	InvoiceAligned     BrandInvoiceAlignment = "Aligned"
	InvoiceNotAligned  BrandInvoiceAlignment = "Not Aligned"
	InvoiceNotRequired BrandInvoiceAlignment = "Not required for this product"
)

type DispatchType string

const (
	DispatchCritical DispatchType = "Critical"
	DispatchRegular  DispatchType = "Regular"
)

type OpsStatus string

const (
	OpsFTLAligned                   OpsStatus = "FTL Aligned"
	OpsEDDShared                    OpsStatus = "EDD shared by vendor"
	OpsPTLAligned                   OpsStatus = "PTL Aligned"
	OpsVendorConfirmationPending    OpsStatus = "Vendor Confirmation Pending"
	OpsOrderPending                 OpsStatus = "Order Pending"
	OpsPendingAtSupplyOps           OpsStatus = "Pending at Supply Ops"
	OpsDispatched                   OpsStatus = "Dispatched"
	OpsPartialDispatched            OpsStatus = "Partial Dispatched"
	OpsOOS                          OpsStatus = "OOS"
	OpsRealignedToOtherVendor       OpsStatus = "Realigned to other vendor"
	OpsPendingAtDemand              OpsStatus = "Pending at Demand"
	OpsPermanentlyCancelled         OpsStatus = "Permanently Cancelled"
	OpsPartialDispatchRestCancelled OpsStatus = "Partial Dispatch & Rest Cancelled"
	OpsOrderPendingForecastFilled   OpsStatus = "Order Pending Forecast Filled"
)

type ApprovalStatus string

const (
	ApprovalApproved ApprovalStatus = "Approved"
	ApprovalRejected ApprovalStatus = "Rejected"
	ApprovalPending  ApprovalStatus = "Pending"
)

// SupplyInput is the flattened Supply Ops record for one vendor-SKU supply
// commitment. It is a projection used for data entry and bulk operations,
// not the authoritative nested model.
type SupplyInput struct {
	// basic information
	AgmID                              string            `bson:"agmId" json:"agmId"`
	SkuIDSkuModule                     string            `bson:"skuIdSkuModule" json:"skuIdSkuModule"`
	CpWithGst                          float64           `bson:"cpWithGst" json:"cpWithGst"`
	QuantityAvailable                  float64           `bson:"quantityAvailable" json:"quantityAvailable"`
	Description                        string            `bson:"description,omitempty" json:"description,omitempty"`
	SupplyPoc                          string            `bson:"supplyPoc" json:"supplyPoc"`
	SupplyTeamSegment                  SupplyTeamSegment `bson:"supplyTeamSegment" json:"supplyTeamSegment"`
	VendorAgmID                        string            `bson:"vendorAgmId" json:"vendorAgmId"`
	SkuID                              string            `bson:"skuId" json:"skuId"`
	PickupLocationSameAsVendorLocation bool              `bson:"pickupLocationSameAsVendorLocation" json:"pickupLocationSameAsVendorLocation"`
	PickupDistrict                     string            `bson:"pickupDistrict" json:"pickupDistrict"`
	PickupState                        string            `bson:"pickupState" json:"pickupState"`
	PickupPin                          int               `bson:"pickupPin" json:"pickupPin"`
	VendorQRCondition                  VendorQRCondition `bson:"vendorQrCondition,omitempty" json:"vendorQrCondition,omitempty"`
	VendorMoq                          float64           `bson:"vendorMoq,omitempty" json:"vendorMoq,omitempty"`
	ExpiryDetails                      string            `bson:"expiryDetails,omitempty" json:"expiryDetails,omitempty"`
	PackagingCondition                 string            `bson:"packagingCondition,omitempty" json:"packagingCondition,omitempty"`
	SupplyStatus                       string            `bson:"supplyStatus,omitempty" json:"supplyStatus,omitempty"`
	RemainingQuantity                  float64           `bson:"remainingQuantity,omitempty" json:"remainingQuantity,omitempty"`

	// auto-filled
	VendorName              string `bson:"vendorName" json:"vendorName"`
	CpID                    string `bson:"cpId,omitempty" json:"cpId,omitempty"`
	CurrentSupplyBookStatus string `bson:"currentSupplyBookStatus,omitempty" json:"currentSupplyBookStatus,omitempty"`
	VendorDistrictSi        string `bson:"vendorDistrictSi,omitempty" json:"vendorDistrictSi,omitempty"`
	VendorStateSi           string `bson:"vendorStateSi,omitempty" json:"vendorStateSi,omitempty"`
	VendorPinSi             int    `bson:"vendorPinSi,omitempty" json:"vendorPinSi,omitempty"`

	// order
	DemandOrderStatus             DemandOrderStatus     `bson:"demandOrderStatus,omitempty" json:"demandOrderStatus,omitempty"`
	EstimateBookedQuantity        float64               `bson:"estimateBookedQuantity,omitempty" json:"estimateBookedQuantity,omitempty"`
	Estimates                     string                `bson:"estimates,omitempty" json:"estimates,omitempty"`
	SupplyOrderBookTime           int64                 `bson:"supplyOrderBookTime,omitempty" json:"supplyOrderBookTime,omitempty"`
	SupplyOrderBookModifiedTime   int64                 `bson:"supplyOrderBookModifiedTime,omitempty" json:"supplyOrderBookModifiedTime,omitempty"`
	CriticalShippingAddress       string                `bson:"criticalShippingAddress,omitempty" json:"criticalShippingAddress,omitempty"`
	Remarks                       string                `bson:"remarks,omitempty" json:"remarks,omitempty"`
	History                       string                `bson:"history,omitempty" json:"history,omitempty"`
	SupplyBookedQuantity          float64               `bson:"supplyBookedQuantity,omitempty" json:"supplyBookedQuantity,omitempty"`
	SupplyBookingStatus           SupplyBookingStatus   `bson:"supplyBookingStatus,omitempty" json:"supplyBookingStatus,omitempty"`
	BookedAgainst                 BookedAgainst         `bson:"bookedAgainst,omitempty" json:"bookedAgainst,omitempty"`
	TypeOfPurchase                TypeOfPurchase        `bson:"typeOfPurchase,omitempty" json:"typeOfPurchase,omitempty"`
	InventoryQuantity             float64               `bson:"inventoryQuantity,omitempty" json:"inventoryQuantity,omitempty"`
	WarehouseQuantityAgainstOrder float64               `bson:"warehouseQuantityAgainstOrder,omitempty" json:"warehouseQuantityAgainstOrder,omitempty"`
	QuantityAgainstOrder          float64               `bson:"quantityAgainstOrder,omitempty" json:"quantityAgainstOrder,omitempty"`
	WarehouseName                 string                `bson:"warehouseName,omitempty" json:"warehouseName,omitempty"`
	PickupDate                    int64                 `bson:"pickupDate" json:"pickupDate"`
	AdvanceAmount                 float64               `bson:"advanceAmount,omitempty" json:"advanceAmount,omitempty"`
	VendorReadyForBrandInvoice    BrandInvoiceAlignment `bson:"vendorReadyForBrandInvoice,omitempty" json:"vendorReadyForBrandInvoice,omitempty"`
	PriceValidity                 int64                 `bson:"priceValidity,omitempty" json:"priceValidity,omitempty"`
	VendorReadyForManifestations  bool                  `bson:"vendorReadyForManifestations,omitempty" json:"vendorReadyForManifestations,omitempty"`
	CompanyBilling                bool                  `bson:"companyBilling,omitempty" json:"companyBilling,omitempty"`

	// order status
	DispatchType          DispatchType `bson:"dispatchType,omitempty" json:"dispatchType,omitempty"`
	OpsStatus             OpsStatus    `bson:"opsStatus,omitempty" json:"opsStatus,omitempty"`
	ReasonOfDelayInPickup string       `bson:"reasonOfDelayInPickup,omitempty" json:"reasonOfDelayInPickup,omitempty"`
	POIssued              bool         `bson:"poIssued,omitempty" json:"poIssued,omitempty"`
	RevisedPickupDate     int64        `bson:"revisedPickupDate,omitempty" json:"revisedPickupDate,omitempty"`
	PONumber              string       `bson:"poNumber,omitempty" json:"poNumber,omitempty"`
	SupplyOpsRemarks      string       `bson:"supplyOpsRemarks,omitempty" json:"supplyOpsRemarks,omitempty"`

	// approvals
	ApprovalStatus  ApprovalStatus `bson:"approvalStatus,omitempty" json:"approvalStatus,omitempty"`
	ApproverRemarks string         `bson:"approverRemarks,omitempty" json:"approverRemarks,omitempty"`
	ApprovedBy      string         `bson:"approvedBy,omitempty" json:"approvedBy,omitempty"`
	ApprovalTime    int64          `bson:"approvalTime,omitempty" json:"approvalTime,omitempty"`
}

// SupplyInputPatch carries a partial update. Nil fields are left untouched.
type SupplyInputPatch struct {
	CpWithGst                  *float64               `json:"cpWithGst,omitempty"`
	QuantityAvailable          *float64               `json:"quantityAvailable,omitempty"`
	Description                *string                `json:"description,omitempty"`
	SupplyPoc                  *string                `json:"supplyPoc,omitempty"`
	PickupDistrict             *string                `json:"pickupDistrict,omitempty"`
	PickupState                *string                `json:"pickupState,omitempty"`
	PickupPin                  *int                   `json:"pickupPin,omitempty"`
	SupplyStatus               *string                `json:"supplyStatus,omitempty"`
	RemainingQuantity          *float64               `json:"remainingQuantity,omitempty"`
	DemandOrderStatus          *DemandOrderStatus     `json:"demandOrderStatus,omitempty"`
	Remarks                    *string                `json:"remarks,omitempty"`
	SupplyBookedQuantity       *float64               `json:"supplyBookedQuantity,omitempty"`
	SupplyBookingStatus        *SupplyBookingStatus   `json:"supplyBookingStatus,omitempty"`
	BookedAgainst              *BookedAgainst         `json:"bookedAgainst,omitempty"`
	WarehouseName              *string                `json:"warehouseName,omitempty"`
	PickupDate                 *int64                 `json:"pickupDate,omitempty"`
	AdvanceAmount              *float64               `json:"advanceAmount,omitempty"`
	VendorReadyForBrandInvoice *BrandInvoiceAlignment `json:"vendorReadyForBrandInvoice,omitempty"`
	DispatchType               *DispatchType          `json:"dispatchType,omitempty"`
	OpsStatus                  *OpsStatus             `json:"opsStatus,omitempty"`
	ReasonOfDelayInPickup      *string                `json:"reasonOfDelayInPickup,omitempty"`
	POIssued                   *bool                  `json:"poIssued,omitempty"`
	RevisedPickupDate          *int64                 `json:"revisedPickupDate,omitempty"`
	PONumber                   *string                `json:"poNumber,omitempty"`
	SupplyOpsRemarks           *string                `json:"supplyOpsRemarks,omitempty"`
	ApprovalStatus             *ApprovalStatus        `json:"approvalStatus,omitempty"`
	ApproverRemarks            *string                `json:"approverRemarks,omitempty"`
}

// Apply merges the patch into in and returns the result.
func (p SupplyInputPatch) Apply(in SupplyInput) SupplyInput {
	setFloat(&in.CpWithGst, p.CpWithGst)
	setFloat(&in.QuantityAvailable, p.QuantityAvailable)
	setString(&in.Description, p.Description)
	setString(&in.SupplyPoc, p.SupplyPoc)
	setString(&in.PickupDistrict, p.PickupDistrict)
	setString(&in.PickupState, p.PickupState)
	if p.PickupPin != nil {
		in.PickupPin = *p.PickupPin
	}
	setString(&in.SupplyStatus, p.SupplyStatus)
	setFloat(&in.RemainingQuantity, p.RemainingQuantity)
	if p.DemandOrderStatus != nil {
		in.DemandOrderStatus = *p.DemandOrderStatus
	}
	setString(&in.Remarks, p.Remarks)
	setFloat(&in.SupplyBookedQuantity, p.SupplyBookedQuantity)
	if p.SupplyBookingStatus != nil {
		in.SupplyBookingStatus = *p.SupplyBookingStatus
	}
	if p.BookedAgainst != nil {
		in.BookedAgainst = *p.BookedAgainst
	}
	setString(&in.WarehouseName, p.WarehouseName)
	setInt64(&in.PickupDate, p.PickupDate)
	setFloat(&in.AdvanceAmount, p.AdvanceAmount)
	if p.VendorReadyForBrandInvoice != nil {
		in.VendorReadyForBrandInvoice = *p.VendorReadyForBrandInvoice
	}
	if p.DispatchType != nil {
		in.DispatchType = *p.DispatchType
	}
	if p.OpsStatus != nil {
		in.OpsStatus = *p.OpsStatus
	}
	setString(&in.ReasonOfDelayInPickup, p.ReasonOfDelayInPickup)
	if p.POIssued != nil {
		in.POIssued = *p.POIssued
	}
	setInt64(&in.RevisedPickupDate, p.RevisedPickupDate)
	setString(&in.PONumber, p.PONumber)
	setString(&in.SupplyOpsRemarks, p.SupplyOpsRemarks)
	if p.ApprovalStatus != nil {
		in.ApprovalStatus = *p.ApprovalStatus
	}
	setString(&in.ApproverRemarks, p.ApproverRemarks)
	return in
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}

func setFloat(dst *float64, v *float64) {
	if v != nil {
		*dst = *v
	}
}

func setInt64(dst *int64, v *int64) {
	if v != nil {
		*dst = *v
	}
}

// Overlay returns in with every non-zero field of update copied over it.
// A zero field in update leaves the stored value alone, so Overlay cannot
// clear a field.
func (in SupplyInput) Overlay(update SupplyInput) SupplyInput {
	dst := reflect.ValueOf(&in).Elem()
	src := reflect.ValueOf(update)
	for i := 0; i < src.NumField(); i++ {
		if f := src.Field(i); !f.IsZero() {
			dst.Field(i).Set(f)
		}
	}
	return in
}

// EnhancedVendor is a vendor quote enriched with Supply Input data.
type EnhancedVendor struct {
	Vendor                       `bson:",inline"`
	VendorAgmID                  string            `bson:"vendorAgmId" json:"vendorAgmId"`
	VendorName                   string            `bson:"vendorName" json:"vendorName"`
	VendorDistrict               string            `bson:"vendorDistrict,omitempty" json:"vendorDistrict,omitempty"`
	VendorState                  string            `bson:"vendorState,omitempty" json:"vendorState,omitempty"`
	VendorPin                    int               `bson:"vendorPin,omitempty" json:"vendorPin,omitempty"`
	VendorMoq                    float64           `bson:"vendorMoq,omitempty" json:"vendorMoq,omitempty"`
	VendorQRCondition            VendorQRCondition `bson:"vendorQrCondition,omitempty" json:"vendorQrCondition,omitempty"`
	ExpiryDetails                string            `bson:"expiryDetails,omitempty" json:"expiryDetails,omitempty"`
	PackagingCondition           string            `bson:"packagingCondition,omitempty" json:"packagingCondition,omitempty"`
	PriceValidity                int64             `bson:"priceValidity,omitempty" json:"priceValidity,omitempty"`
	VendorReadyForManifestations bool              `bson:"vendorReadyForManifestations,omitempty" json:"vendorReadyForManifestations,omitempty"`
	CompanyBilling               bool              `bson:"companyBilling,omitempty" json:"companyBilling,omitempty"`
	AdvanceAmount                float64           `bson:"advanceAmount,omitempty" json:"advanceAmount,omitempty"`
}

// EnhancedSKU is a SKU enriched with Supply Input data.
type EnhancedSKU struct {
	SKU                           `bson:",inline"`
	SkuIDFromModule               string  `bson:"skuIdFromModule" json:"skuIdFromModule"`
	CpWithGst                     float64 `bson:"cpWithGst" json:"cpWithGst"`
	QuantityAvailable             float64 `bson:"quantityAvailable" json:"quantityAvailable"`
	ExpiryDetails                 string  `bson:"expiryDetails,omitempty" json:"expiryDetails,omitempty"`
	PackagingCondition            string  `bson:"packagingCondition,omitempty" json:"packagingCondition,omitempty"`
	InventoryQuantity             float64 `bson:"inventoryQuantity,omitempty" json:"inventoryQuantity,omitempty"`
	WarehouseQuantityAgainstOrder float64 `bson:"warehouseQuantityAgainstOrder,omitempty" json:"warehouseQuantityAgainstOrder,omitempty"`
	QuantityAgainstOrder          float64 `bson:"quantityAgainstOrder,omitempty" json:"quantityAgainstOrder,omitempty"`
}

// SupplyInputWithContext joins a supply input with the purchase request,
// SKU and vendor it commits against.
type SupplyInputWithContext struct {
	SupplyInput     SupplyInput      `json:"supplyInput"`
	PurchaseRequest *PurchaseRequest `json:"purchaseRequest,omitempty"`
	SKU             EnhancedSKU      `json:"sku"`
	Vendor          EnhancedVendor   `json:"vendor"`
	WarehouseName   string           `json:"warehouseName,omitempty"`
	ProposedWh      string           `json:"proposedWh"`
	InitiatedBy     string           `json:"initiatedBy"`
	CreatedAt       int64            `json:"createdAt"`
	UpdatedAt       int64            `json:"updatedAt"`
}

// SupplyInputFormData is the raw form shape; numeric fields arrive as strings.
type SupplyInputFormData struct {
	AgmID             string `json:"agmId"`
	SkuIDSkuModule    string `json:"skuIdSkuModule"`
	CpWithGst         string `json:"cpWithGst"`
	QuantityAvailable string `json:"quantityAvailable"`
	SupplyPoc         string `json:"supplyPoc"`
	SupplyTeamSegment string `json:"supplyTeamSegment"`
	VendorAgmID       string `json:"vendorAgmId"`
	SkuID             string `json:"skuId"`
	PickupDistrict    string `json:"pickupDistrict"`
	PickupState       string `json:"pickupState"`
	PickupPin         string `json:"pickupPin"`
	VendorName        string `json:"vendorName"`
	PickupDate        string `json:"pickupDate"`

	Description                        string `json:"description,omitempty"`
	PickupLocationSameAsVendorLocation bool   `json:"pickupLocationSameAsVendorLocation,omitempty"`
	VendorQRCondition                  string `json:"vendorQrCondition,omitempty"`
	VendorMoq                          string `json:"vendorMoq,omitempty"`
	ExpiryDetails                      string `json:"expiryDetails,omitempty"`
	PackagingCondition                 string `json:"packagingCondition,omitempty"`
	SupplyStatus                       string `json:"supplyStatus,omitempty"`
}

// SupplyInputResponse is returned by every single-record supply operation.
type SupplyInputResponse struct {
	Success bool              `json:"success"`
	Message string            `json:"message"`
	Data    *SupplyInput      `json:"data,omitempty"`
	Errors  map[string]string `json:"errors,omitempty"`
}

type BulkOperation string

const (
	BulkCreate BulkOperation = "create"
	BulkUpdate BulkOperation = "update"
	BulkDelete BulkOperation = "delete"
)

// BulkSupplyInputRequest is the input of a bulk operation.
type BulkSupplyInputRequest struct {
	Operation    BulkOperation `json:"operation" binding:"required,oneof=create update delete"`
	SupplyInputs []SupplyInput `json:"supplyInputs" binding:"required"`
	BatchID      string        `json:"batchId"`
}

type BulkResults struct {
	Successful int      `json:"successful"`
	Failed     int      `json:"failed"`
	Errors     []string `json:"errors"`
}

// BulkSupplyInputOperation echoes the request with processing results.
type BulkSupplyInputOperation struct {
	Operation    BulkOperation `json:"operation"`
	SupplyInputs []SupplyInput `json:"supplyInputs"`
	BatchID      string        `json:"batchId"`
	ProcessedAt  int64         `json:"processedAt"`
	Results      BulkResults   `json:"results"`
}
