package service

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go-kickcraft/internal/analytics"
	"go-kickcraft/internal/ledger"
	"go-kickcraft/internal/model"
	"go-kickcraft/internal/repository"
	"go-kickcraft/internal/ws"
	"go-kickcraft/pkg/validator"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	// ErrShoeNotFound: the requested id has no matching record. Surfaced to
	// the caller, never retried.
	ErrShoeNotFound = errors.New("shoe not found")
	// ErrValidation: malformed or out-of-range field. The request is
	// rejected with no partial write.
	ErrValidation = errors.New("validation failed")
)

type InventoryService interface {
	CreateShoe(req *model.Shoe, userID, userName string) error
	ListShoes(query string) ([]model.Shoe, error)
	GetShoe(id uuid.UUID) (*model.Shoe, error)
	UpdateShoe(id uuid.UUID, in ledger.Update, userID, userName string) (*model.Shoe, error)
	DeleteShoe(id uuid.UUID, userID, userName string) error
}

type inventoryService struct {
	shoeRepo repository.ShoeRepository
	db       *gorm.DB
	wsHub    *ws.Hub
}

func NewInventoryService(repo repository.ShoeRepository, db *gorm.DB, hub *ws.Hub) InventoryService {
	return &inventoryService{
		shoeRepo: repo,
		db:       db,
		wsHub:    hub,
	}
}

func validationError(errs []*validator.ErrorResponse) error {
	first := errs[0]
	return fmt.Errorf("%w: field '%s' failed on tag '%s'", ErrValidation, first.FailedField, first.Tag)
}

func (s *inventoryService) CreateShoe(req *model.Shoe, userID, userName string) error {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		return validationError(errs)
	}

	// A shoe starts its life with an empty ledger regardless of what the
	// caller sent.
	req.SalesHistory = nil
	req.CreatedBy = userID
	req.UpdatedBy = userID
	req.CreatedByUserID = &userID
	req.UpdatedByUserID = &userID

	if err := s.shoeRepo.Create(req); err != nil {
		return err
	}

	s.broadcast("shoe_created", req, userID, userName,
		fmt.Sprintf("%s added shoe '%s'", userName, req.Name))
	return nil
}

// ListShoes returns the collection, optionally narrowed by the dashboard's
// case-insensitive name/brand/category search.
func (s *inventoryService) ListShoes(query string) ([]model.Shoe, error) {
	shoes, err := s.shoeRepo.FindAll()
	if err != nil {
		return nil, err
	}
	return analytics.Search(shoes, query), nil
}

func (s *inventoryService) GetShoe(id uuid.UUID) (*model.Shoe, error) {
	shoe, err := s.shoeRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrShoeNotFound
		}
		return nil, err
	}
	return shoe, nil
}

// UpdateShoe replaces all mutable fields wholesale and lets the ledger
// decide whether the sales change warrants a history snapshot. Read,
// ledger decision and write run in one transaction, and the ledger lives
// on the row itself, so a concurrent reader never observes updated fields
// without the matching history entry. Two writers racing on sales remain
// last-write-wins at the store layer.
func (s *inventoryService) UpdateShoe(id uuid.UUID, in ledger.Update, userID, userName string) (*model.Shoe, error) {
	if errs := validator.ValidateStruct(&in); len(errs) > 0 {
		return nil, validationError(errs)
	}

	var updated *model.Shoe
	var appended *model.HistoryEntry

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var existing model.Shoe
		if err := tx.Set("gorm:query_option", "FOR UPDATE").First(&existing, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrShoeNotFound
			}
			return err
		}

		appended = ledger.Apply(&existing, in, time.Now())
		existing.UpdatedBy = userID
		existing.UpdatedByUserID = &userID

		// Single row write: scalar fields and the jsonb ledger commit
		// together.
		if err := tx.Save(&existing).Error; err != nil {
			return err
		}

		updated = &existing
		return nil
	})
	if err != nil {
		return nil, err
	}

	message := fmt.Sprintf("%s updated shoe '%s'", userName, updated.Name)
	if appended != nil {
		message = fmt.Sprintf("%s updated shoe '%s' (sales now %d)", userName, updated.Name, appended.Sales)
	}
	s.broadcast("shoe_updated", updated, userID, userName, message)

	return updated, nil
}

// DeleteShoe removes the record together with its entire history; the
// ledger lives on the row, so nothing can be orphaned.
func (s *inventoryService) DeleteShoe(id uuid.UUID, userID, userName string) error {
	shoe, err := s.GetShoe(id)
	if err != nil {
		return err
	}

	rows, err := s.shoeRepo.Delete(id)
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrShoeNotFound
	}

	s.broadcast("shoe_deleted", shoe, userID, userName,
		fmt.Sprintf("%s deleted shoe '%s'", userName, shoe.Name))
	return nil
}

func (s *inventoryService) broadcast(action string, shoe *model.Shoe, userID, userName, message string) {
	go func() {
		payload := map[string]interface{}{
			"type":   "inventory_update",
			"action": action,
			"shoe": map[string]interface{}{
				"id":       shoe.ID,
				"name":     shoe.Name,
				"brand":    shoe.Brand,
				"category": shoe.Category,
				"price":    shoe.Price,
				"discount": shoe.Discount,
				"stock":    shoe.Stock,
				"sales":    shoe.Sales,
			},
			"user": map[string]interface{}{
				"id":   userID,
				"name": userName,
			},
			"message": message,
		}
		msg, _ := json.Marshal(payload)
		s.wsHub.Broadcast <- msg
	}()
}
