package supply

import (
	"strconv"
	"strings"
	"time"

	"pr-tracker-api-server/internal/models"
)

const (
	invalidNumberText = "Must be a number"
	invalidDateText   = "Must be a date (YYYY-MM-DD) or epoch milliseconds"
	invalidChoiceText = "Unknown value"
)

// ParseForm converts raw form input into a SupplyInput. The returned map is
// nil when the form is valid and otherwise holds one message per field.
func ParseForm(form models.SupplyInputFormData) (models.SupplyInput, map[string]string) {
	errs := map[string]string{}

	required := map[string]string{
		"agmId":             form.AgmID,
		"skuIdSkuModule":    form.SkuIDSkuModule,
		"cpWithGst":         form.CpWithGst,
		"quantityAvailable": form.QuantityAvailable,
		"supplyPoc":         form.SupplyPoc,
		"supplyTeamSegment": form.SupplyTeamSegment,
		"vendorAgmId":       form.VendorAgmID,
		"skuId":             form.SkuID,
		"pickupDistrict":    form.PickupDistrict,
		"pickupState":       form.PickupState,
		"pickupPin":         form.PickupPin,
		"vendorName":        form.VendorName,
		"pickupDate":        form.PickupDate,
	}
	for field, value := range required {
		if strings.TrimSpace(value) == "" {
			errs[field] = requiredFieldText
		}
	}

	in := models.SupplyInput{
		AgmID:                              strings.TrimSpace(form.AgmID),
		SkuIDSkuModule:                     strings.TrimSpace(form.SkuIDSkuModule),
		SupplyPoc:                          strings.TrimSpace(form.SupplyPoc),
		VendorAgmID:                        strings.TrimSpace(form.VendorAgmID),
		SkuID:                              strings.TrimSpace(form.SkuID),
		PickupDistrict:                     form.PickupDistrict,
		PickupState:                        form.PickupState,
		VendorName:                         form.VendorName,
		Description:                        form.Description,
		PickupLocationSameAsVendorLocation: form.PickupLocationSameAsVendorLocation,
		ExpiryDetails:                      form.ExpiryDetails,
		PackagingCondition:                 form.PackagingCondition,
		SupplyStatus:                       form.SupplyStatus,
	}

	in.CpWithGst = parseFloat(errs, "cpWithGst", form.CpWithGst)
	in.QuantityAvailable = parseFloat(errs, "quantityAvailable", form.QuantityAvailable)
	in.VendorMoq = parseFloat(errs, "vendorMoq", form.VendorMoq)
	if pin := strings.TrimSpace(form.PickupPin); pin != "" {
		n, err := strconv.Atoi(pin)
		if err != nil {
			errs["pickupPin"] = invalidNumberText
		}
		in.PickupPin = n
	}
	if date := strings.TrimSpace(form.PickupDate); date != "" {
		ms, ok := parseDate(date)
		if !ok {
			errs["pickupDate"] = invalidDateText
		}
		in.PickupDate = ms
	}

	if seg := strings.TrimSpace(form.SupplyTeamSegment); seg != "" {
		switch s := models.SupplyTeamSegment(seg); s {
		case models.SegmentRetail, models.SegmentWholesale:
			in.SupplyTeamSegment = s
		default:
			errs["supplyTeamSegment"] = invalidChoiceText
		}
	}
	if qr := strings.TrimSpace(form.VendorQRCondition); qr != "" {
		switch c := models.VendorQRCondition(qr); c {
		case models.QRFullyIntact, models.QRScratchedMaster, models.QRScratchedBoth:
			in.VendorQRCondition = c
		default:
			errs["vendorQrCondition"] = invalidChoiceText
		}
	}

	if len(errs) == 0 {
		return in, nil
	}
	return in, errs
}

// parseFloat records a field error only when a non-blank value fails to parse;
// blank required fields are reported by the caller.
func parseFloat(errs map[string]string, field, raw string) float64 {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		errs[field] = invalidNumberText
		return 0
	}
	return f
}

func parseDate(raw string) (int64, bool) {
	if ms, err := strconv.ParseInt(raw, 10, 64); err == nil {
		return ms, true
	}
	for _, layout := range []string{"2006-01-02", time.RFC3339} {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.UnixMilli(), true
		}
	}
	return 0, false
}
