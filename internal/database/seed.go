package database

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/propmart/catalog-backend/internal/domain"
)

// SeedReport summarizes what a seeding run created. Re-running against an
// already seeded database is a no-op per row.
type SeedReport struct {
	CreatedProducts   int `json:"created_products"`
	CreatedProperties int `json:"created_properties"`
}

func demoProducts() []domain.Product {
	return []domain.Product{
		{Name: "Apartment Alpha", Category: domain.CategoryResidential, Brand: "b1", Price: decimal.RequireFromString("10.00"), Rating: 3.5, Quantity: 5},
		{Name: "Office Beta", Category: domain.CategoryCommercial, Brand: "b2", Price: decimal.RequireFromString("20.00"), Rating: 4.0, Quantity: 8},
		{Name: "Cottage Gamma", Category: domain.CategoryResidential, Brand: "b1", Price: decimal.RequireFromString("40.00"), Rating: 4.2, Quantity: 2},
		{Name: "Warehouse Delta", Category: domain.CategoryCommercial, Brand: "b3", Price: decimal.RequireFromString("50.00"), Rating: 3.9, Quantity: 12},
	}
}

func demoProperties(now time.Time) []domain.Property {
	day := now.UTC().Truncate(24 * time.Hour)
	return []domain.Property{
		{Content: "Schedule viewing for Apartment Alpha", Priority: "high", Flag: "open", CreatedAt: now, ExpireDate: day.Add(6 * time.Hour)},
		{Content: "Renew Office Beta listing", Priority: "medium", Flag: "open", CreatedAt: now, ExpireDate: day.Add(3 * 24 * time.Hour)},
		{Content: "Archive Warehouse Delta photos", Priority: "low", Flag: "done", CreatedAt: now, ExpireDate: day.Add(10 * 24 * time.Hour)},
	}
}

// Seed loads the demo catalog. Rows are matched by name/content so the seeder
// can run at every startup without duplicating data.
func Seed(db *gorm.DB) (*SeedReport, error) {
	report := &SeedReport{}

	for _, p := range demoProducts() {
		res := db.Where("name = ?", p.Name).FirstOrCreate(&p)
		if res.Error != nil {
			return nil, res.Error
		}
		if res.RowsAffected > 0 {
			report.CreatedProducts++
		}
	}
	for _, p := range demoProperties(time.Now()) {
		res := db.Where("content = ?", p.Content).FirstOrCreate(&p)
		if res.Error != nil {
			return nil, res.Error
		}
		if res.RowsAffected > 0 {
			report.CreatedProperties++
		}
	}
	return report, nil
}
