package repository

import (
	"go-kickcraft/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ShoeRepository interface {
	Create(shoe *model.Shoe) error
	FindAll() ([]model.Shoe, error)
	FindByID(id uuid.UUID) (*model.Shoe, error)
	Save(shoe *model.Shoe) error
	Delete(id uuid.UUID) (int64, error)
}

type shoeRepo struct {
	db *gorm.DB
}

func NewShoeRepo(db *gorm.DB) ShoeRepository {
	return &shoeRepo{db}
}

func (r *shoeRepo) Create(shoe *model.Shoe) error {
	return r.db.Create(shoe).Error
}

func (r *shoeRepo) FindAll() ([]model.Shoe, error) {
	var shoes []model.Shoe
	err := r.db.Order("created_at ASC").Find(&shoes).Error
	return shoes, err
}

func (r *shoeRepo) FindByID(id uuid.UUID) (*model.Shoe, error) {
	var shoe model.Shoe
	err := r.db.First(&shoe, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &shoe, nil
}

// Save writes the whole record, including the sales_history column, in a
// single UPDATE so scalar fields and an appended ledger entry commit
// together.
func (r *shoeRepo) Save(shoe *model.Shoe) error {
	return r.db.Save(shoe).Error
}

// Delete soft-deletes the shoe; the embedded ledger disappears with the row
// in the same statement. Returns the number of rows affected so callers can
// distinguish not-found.
func (r *shoeRepo) Delete(id uuid.UUID) (int64, error) {
	result := r.db.Delete(&model.Shoe{}, "id = ?", id)
	return result.RowsAffected, result.Error
}
