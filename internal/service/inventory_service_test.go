package service

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"go-kickcraft/internal/ledger"
	"go-kickcraft/internal/model"
	"go-kickcraft/internal/repository"
	"go-kickcraft/internal/ws"
)

func setupService(t *testing.T) (InventoryService, repository.ShoeRepository) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	if err := db.AutoMigrate(&model.Shoe{}, &model.User{}); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	hub := ws.NewHub()
	go hub.Run()

	repo := repository.NewShoeRepo(db)
	return NewInventoryService(repo, db, hub), repo
}

func createShoe(t *testing.T, svc InventoryService) *model.Shoe {
	t.Helper()
	shoe := &model.Shoe{
		Name:     "Air Zoom",
		Brand:    "Nike",
		Category: "Running",
		Price:    4999,
		Discount: 10,
		Stock:    25,
		Sales:    40,
	}
	if err := svc.CreateShoe(shoe, "tester", "Tester"); err != nil {
		t.Fatalf("CreateShoe() error = %v", err)
	}
	return shoe
}

func updateFor(shoe *model.Shoe) ledger.Update {
	return ledger.Update{
		Name:     shoe.Name,
		Brand:    shoe.Brand,
		Category: shoe.Category,
		Price:    shoe.Price,
		Discount: shoe.Discount,
		Stock:    shoe.Stock,
		Sales:    shoe.Sales,
	}
}

func TestCreateShoeStartsWithEmptyLedger(t *testing.T) {
	svc, repo := setupService(t)

	shoe := &model.Shoe{
		Name:  "Classic",
		Brand: "Reebok",
		Sales: 10,
		// A caller trying to smuggle in history is ignored.
		SalesHistory: []model.HistoryEntry{{Sales: 999}},
	}
	if err := svc.CreateShoe(shoe, "tester", "Tester"); err != nil {
		t.Fatalf("CreateShoe() error = %v", err)
	}

	found, err := repo.FindByID(shoe.ID)
	if err != nil {
		t.Fatalf("FindByID() error = %v", err)
	}
	if len(found.SalesHistory) != 0 {
		t.Errorf("expected empty ledger on create, got %d entries", len(found.SalesHistory))
	}
}

func TestCreateShoeValidation(t *testing.T) {
	svc, _ := setupService(t)

	err := svc.CreateShoe(&model.Shoe{Brand: "Nike"}, "tester", "Tester")
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation for missing name, got %v", err)
	}
}

func TestUpdateShoeChangedSalesGrowsLedgerByOne(t *testing.T) {
	svc, repo := setupService(t)
	shoe := createShoe(t, svc)

	in := updateFor(shoe)
	in.Sales = 55
	in.Price = 4499

	updated, err := svc.UpdateShoe(shoe.ID, in, "tester", "Tester")
	if err != nil {
		t.Fatalf("UpdateShoe() error = %v", err)
	}
	if len(updated.SalesHistory) != 1 {
		t.Fatalf("expected 1 ledger entry, got %d", len(updated.SalesHistory))
	}
	entry := updated.SalesHistory[0]
	if entry.Sales != 55 || entry.Price != 4499 || entry.Discount != 10 {
		t.Errorf("unexpected snapshot: %+v", entry)
	}

	// Persisted, not just in-memory.
	found, err := repo.FindByID(shoe.ID)
	if err != nil {
		t.Fatalf("FindByID() error = %v", err)
	}
	if len(found.SalesHistory) != 1 || found.Sales != 55 {
		t.Errorf("ledger not persisted with fields: sales=%d entries=%d", found.Sales, len(found.SalesHistory))
	}
}

func TestUpdateShoeUnchangedSalesNeverGrowsLedger(t *testing.T) {
	svc, repo := setupService(t)
	shoe := createShoe(t, svc)

	in := updateFor(shoe)
	in.Price = 3999
	in.Discount = 25
	in.Stock = 5

	for i := 0; i < 3; i++ {
		if _, err := svc.UpdateShoe(shoe.ID, in, "tester", "Tester"); err != nil {
			t.Fatalf("UpdateShoe() error = %v", err)
		}
	}

	found, err := repo.FindByID(shoe.ID)
	if err != nil {
		t.Fatalf("FindByID() error = %v", err)
	}
	if len(found.SalesHistory) != 0 {
		t.Errorf("resubmitting the same sales figure grew the ledger to %d entries", len(found.SalesHistory))
	}
	if found.Price != 3999 || found.Discount != 25 || found.Stock != 5 {
		t.Errorf("scalar fields should still update: %+v", found)
	}
}

func TestUpdateShoeEachChangeAppendsExactlyOne(t *testing.T) {
	svc, repo := setupService(t)
	shoe := createShoe(t, svc)

	in := updateFor(shoe)
	for i, sales := range []int{45, 50, 45} {
		in.Sales = sales
		if _, err := svc.UpdateShoe(shoe.ID, in, "tester", "Tester"); err != nil {
			t.Fatalf("UpdateShoe() error = %v", err)
		}
		found, _ := repo.FindByID(shoe.ID)
		if len(found.SalesHistory) != i+1 {
			t.Fatalf("after change %d expected %d entries, got %d", i, i+1, len(found.SalesHistory))
		}
	}
}

func TestUpdateShoeValidationRejectsWithoutPartialWrite(t *testing.T) {
	svc, repo := setupService(t)
	shoe := createShoe(t, svc)

	in := updateFor(shoe)
	in.Discount = 150
	in.Sales = 99

	if _, err := svc.UpdateShoe(shoe.ID, in, "tester", "Tester"); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}

	found, _ := repo.FindByID(shoe.ID)
	if found.Sales != 40 || found.Discount != 10 || len(found.SalesHistory) != 0 {
		t.Errorf("rejected update must leave the record untouched: %+v", found)
	}
}

func TestUpdateShoeNotFound(t *testing.T) {
	svc, _ := setupService(t)

	in := ledger.Update{Name: "x", Brand: "y"}
	if _, err := svc.UpdateShoe(uuid.New(), in, "tester", "Tester"); !errors.Is(err, ErrShoeNotFound) {
		t.Fatalf("expected ErrShoeNotFound, got %v", err)
	}
}

func TestDeleteShoeRemovesRecordAndHistory(t *testing.T) {
	svc, _ := setupService(t)
	shoe := createShoe(t, svc)

	in := updateFor(shoe)
	in.Sales = 60
	if _, err := svc.UpdateShoe(shoe.ID, in, "tester", "Tester"); err != nil {
		t.Fatalf("UpdateShoe() error = %v", err)
	}

	if err := svc.DeleteShoe(shoe.ID, "tester", "Tester"); err != nil {
		t.Fatalf("DeleteShoe() error = %v", err)
	}

	if _, err := svc.GetShoe(shoe.ID); !errors.Is(err, ErrShoeNotFound) {
		t.Errorf("expected ErrShoeNotFound after delete, got %v", err)
	}

	all, err := svc.ListShoes("")
	if err != nil {
		t.Fatalf("ListShoes() error = %v", err)
	}
	if len(all) != 0 {
		t.Errorf("deleted shoe reappeared in list: %d shoes", len(all))
	}

	if err := svc.DeleteShoe(shoe.ID, "tester", "Tester"); !errors.Is(err, ErrShoeNotFound) {
		t.Errorf("expected ErrShoeNotFound on second delete, got %v", err)
	}
}

func TestListShoesSearch(t *testing.T) {
	svc, _ := setupService(t)
	createShoe(t, svc) // Nike Air Zoom, Running

	other := &model.Shoe{Name: "Classic", Brand: "Reebok", Category: "Casual"}
	if err := svc.CreateShoe(other, "tester", "Tester"); err != nil {
		t.Fatalf("CreateShoe() error = %v", err)
	}

	all, err := svc.ListShoes("")
	if err != nil {
		t.Fatalf("ListShoes() error = %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("expected 2 shoes, got %d", len(all))
	}

	matched, err := svc.ListShoes("nik")
	if err != nil {
		t.Fatalf("ListShoes() error = %v", err)
	}
	if len(matched) != 1 || matched[0].Brand != "Nike" {
		t.Errorf("expected the Nike shoe, got %+v", matched)
	}
}
