package postgres

import (
	"strings"
	"testing"

	"myFoodMarket/domain"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// newDryRunDB opens a session that builds SQL without touching a server, so
// the predicate composition can be asserted against the generated statement.
func newDryRunDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(postgres.Open("host=localhost user=app dbname=app"), &gorm.Config{
		DryRun:               true,
		DisableAutomaticPing: true,
	})
	if err != nil {
		t.Fatalf("open dry-run db: %v", err)
	}
	return db
}

func hasVar(vars []interface{}, want interface{}) bool {
	for _, v := range vars {
		if v == want {
			return true
		}
	}
	return false
}

func TestProductFilterAppliesPriceBounds(t *testing.T) {
	db := newDryRunDB(t)
	minPrice, maxPrice := 10.0, 20.0

	var products []domain.Product
	tx := applyProductFilter(
		db.Model(&domain.Product{}).Where("is_available = ?", true),
		domain.ProductFilter{MinPrice: &minPrice, MaxPrice: &maxPrice},
	).Find(&products)
	if tx.Error != nil {
		t.Fatalf("build statement: %v", tx.Error)
	}

	sql := tx.Statement.SQL.String()
	if !strings.Contains(sql, "base_price >= $") {
		t.Errorf("missing lower price bound in %q", sql)
	}
	if !strings.Contains(sql, "base_price <= $") {
		t.Errorf("missing upper price bound in %q", sql)
	}
	if !hasVar(tx.Statement.Vars, 10.0) || !hasVar(tx.Statement.Vars, 20.0) {
		t.Errorf("bound values not in statement vars: %v", tx.Statement.Vars)
	}
}

func TestProductFilterEmptyAddsNoPredicates(t *testing.T) {
	db := newDryRunDB(t)

	var products []domain.Product
	tx := applyProductFilter(
		db.Model(&domain.Product{}).Where("is_available = ?", true),
		domain.ProductFilter{},
	).Find(&products)
	if tx.Error != nil {
		t.Fatalf("build statement: %v", tx.Error)
	}

	sql := tx.Statement.SQL.String()
	for _, column := range []string{"base_price", "category", "rating", "calories", "ILIKE"} {
		if strings.Contains(sql, column) {
			t.Errorf("empty filter produced predicate on %s: %q", column, sql)
		}
	}
	if !strings.Contains(sql, "is_available = $") {
		t.Errorf("availability predicate missing from %q", sql)
	}
}

func TestProductFilterTextSearch(t *testing.T) {
	db := newDryRunDB(t)
	q := "taco"

	var products []domain.Product
	tx := applyProductFilter(
		db.Model(&domain.Product{}),
		domain.ProductFilter{Query: &q},
	).Find(&products)
	if tx.Error != nil {
		t.Fatalf("build statement: %v", tx.Error)
	}

	sql := tx.Statement.SQL.String()
	if !strings.Contains(sql, "name ILIKE $") || !strings.Contains(sql, "description ILIKE $") {
		t.Errorf("text search should match name or description, got %q", sql)
	}
	if !hasVar(tx.Statement.Vars, "%taco%") {
		t.Errorf("wildcarded query not in statement vars: %v", tx.Statement.Vars)
	}
}

func TestHealthyProductsPredicate(t *testing.T) {
	db := newDryRunDB(t)

	var products []domain.Product
	tx := healthyProducts(db.Model(&domain.Product{})).Find(&products)
	if tx.Error != nil {
		t.Fatalf("build statement: %v", tx.Error)
	}

	sql := tx.Statement.SQL.String()
	for _, fragment := range []string{"is_organic = $", "is_vegan = $", "calories <= $"} {
		if !strings.Contains(sql, fragment) {
			t.Errorf("healthy predicate missing %q in %q", fragment, sql)
		}
	}
	if !hasVar(tx.Statement.Vars, 500) {
		t.Errorf("calorie ceiling not in statement vars: %v", tx.Statement.Vars)
	}
}

func TestQuickPreparationPredicate(t *testing.T) {
	db := newDryRunDB(t)

	var products []domain.Product
	tx := quickPreparation(db.Model(&domain.Product{})).Find(&products)
	if tx.Error != nil {
		t.Fatalf("build statement: %v", tx.Error)
	}

	sql := tx.Statement.SQL.String()
	if !strings.Contains(sql, "preparation_time ILIKE $") {
		t.Errorf("preparation-time pattern missing from %q", sql)
	}
	for _, pattern := range []string{"%5%", "%10%", "%15%"} {
		if !hasVar(tx.Statement.Vars, pattern) {
			t.Errorf("pattern %q not in statement vars: %v", pattern, tx.Statement.Vars)
		}
	}
}
