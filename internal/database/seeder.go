// server/internal/database/seeder.go
package database

import (
	"context"
	"fmt"
	"time"

	"pr-tracker-api-server/internal/auth"
	"pr-tracker-api-server/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

const (
	superAdminEmail    = "superadmin@example.com"
	superAdminPassword = "superadminpassword"
)

func SeedSuperAdmin(ctx context.Context, db *mongo.Database, logger *zap.Logger) error {
	userCollection := db.Collection(UsersCollection)

	count, err := userCollection.CountDocuments(ctx, bson.M{"email": superAdminEmail})
	if err != nil {
		return fmt.Errorf("failed to count users: %w", err)
	}
	if count > 0 {
		logger.Info("Super admin already exists. Seeding skipped.")
		return nil
	}

	logger.Info("Super admin not found. Seeding...")
	hashedPassword, err := auth.HashPassword(superAdminPassword)
	if err != nil {
		return err
	}

	superAdmin := models.User{
		UserID:   "superadmin",
		Email:    superAdminEmail,
		Name:     "Super Admin",
		Password: hashedPassword,
		Role:     models.RoleSuperAdmin,
		Status:   "active",
	}
	if _, err = userCollection.InsertOne(ctx, superAdmin); err != nil {
		return fmt.Errorf("failed to insert super admin: %w", err)
	}

	logger.Info("Super admin seeded successfully.")
	return nil
}

// purchaseRequestDocument is the stored shape: the identity lives in _id and
// the request fields sit beside it.
type purchaseRequestDocument struct {
	ID                     string `bson:"_id"`
	models.PurchaseRequest `bson:",inline"`
}

// SeedPurchaseRequests inserts the demo requests when the collection is empty.
func SeedPurchaseRequests(ctx context.Context, coll *mongo.Collection, now time.Time, logger *zap.Logger) error {
	count, err := coll.EstimatedDocumentCount(ctx)
	if err != nil {
		return fmt.Errorf("failed to count purchase requests: %w", err)
	}
	if count > 0 {
		logger.Info("Purchase requests present. Seeding skipped.", zap.Int64("count", count))
		return nil
	}

	fixtures := PurchaseRequestFixtures(now)
	docs := make([]interface{}, len(fixtures))
	for i, pr := range fixtures {
		docs[i] = purchaseRequestDocument{ID: pr.ID, PurchaseRequest: pr}
	}
	if _, err := coll.InsertMany(ctx, docs); err != nil {
		return fmt.Errorf("failed to seed purchase requests: %w", err)
	}
	logger.Info("Purchase requests seeded", zap.Int("count", len(docs)))
	return nil
}

func strPtr(s string) *string     { return &s }
func floatPtr(f float64) *float64 { return &f }

// PurchaseRequestFixtures returns one request with an open PO and one
// cancelled request, timestamped relative to now.
func PurchaseRequestFixtures(now time.Time) []models.PurchaseRequest {
	ms := now.UnixMilli()
	hour := time.Hour.Milliseconds()

	open := models.PurchaseRequest{
		ID:          "PR-2023-001",
		ProposedWh:  "Warehouse-North",
		Status:      models.StatusRequestCreated,
		InitiatedBy: "Jane Smith",
		CreatedAt:   ms - 2*hour,
		SKUs: []models.SKU{{
			SKU:                 "SKU-ABC-001",
			Quantity:            100,
			ExpectedPrice:       160,
			UnmaskedProductName: strPtr("Gadget X Pro"),
			SuperCategory:       strPtr("Electronics"),
			Brand:               strPtr("TechGadget"),
			ASV:                 floatPtr(155.5),
			Seasonality:         strPtr("High"),
			SeasonDuration:      strPtr("Q4"),
			Vendors: []models.Vendor{{
				VendorID:              "VAGM-001",
				VendorPrice:           150.75,
				SupplyPoc:             "Alice Johnson",
				VendorPaymentTerms:    "NET30",
				BrandInvoiceAlignment: string(models.InvoiceAligned),
				PickupAddress:         "123 Industrial Rd, Sector 10, Noida",
				FlashSale:             true,
				ExpectedPickupTime:    ms + 24*hour,
				VendorStatus:          models.VendorStatusApproved,
				PONumber:              "PO-789012",
				POStatus:              models.POStatusIssued,
			}},
		}},
	}
	open.Transition(models.StatusPendingApproval, "Jane Smith", ms-2*hour)
	open.Transition(models.StatusApproved, "John Doe", ms-hour)

	cancelled := models.PurchaseRequest{
		ID:          "PR-2023-002",
		ProposedWh:  "Warehouse-South",
		Status:      models.StatusRequestCreated,
		InitiatedBy: "Ravi Kumar",
		CreatedAt:   ms - 48*hour,
		SKUs: []models.SKU{{
			SKU:           "SKU-XYZ-002",
			Quantity:      40,
			ExpectedPrice: 75,
			SuperCategory: strPtr("Home"),
			Brand:         strPtr("CasaPlus"),
			Vendors: []models.Vendor{{
				VendorID:              "VAGM-002",
				VendorPrice:           72.5,
				SupplyPoc:             "Bob Green",
				VendorPaymentTerms:    "NET15",
				BrandInvoiceAlignment: string(models.InvoiceNotRequired),
				PickupAddress:         "45 Ring Rd, Whitefield, Bangalore",
				ExpectedPickupTime:    ms - 24*hour,
				VendorStatus:          models.VendorStatusApproved,
				PONumber:              "PO-789013",
				POStatus:              models.POStatusCancelled,
			}},
		}},
	}
	cancelled.Transition(models.StatusApproved, "John Doe", ms-47*hour)
	cancelled.Transition(models.StatusCancelled, "Ravi Kumar", ms-30*hour)

	return []models.PurchaseRequest{open, cancelled}
}
