package repository

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/ehospital/medications/internal/domain/drug"
)

type DrugRepository struct {
	db *gorm.DB
}

func NewDrugRepository(db *gorm.DB) *DrugRepository {
	return &DrugRepository{db: db}
}

func (r *DrugRepository) Create(ctx context.Context, d *drug.Drug) error {
	err := r.db.WithContext(ctx).Create(d).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		// The composite unique index fired: a concurrent insert won the
		// check-then-act race. Surface the same error the pre-check uses.
		return drug.ErrDrugAlreadyExists
	}
	return err
}

func (r *DrugRepository) GetByID(ctx context.Context, id int) (*drug.Drug, error) {
	var d drug.Drug
	err := r.db.WithContext(ctx).
		Where("id = ? AND is_deleted = false", id).
		First(&d).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, drug.ErrDrugNotFound
	}
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *DrugRepository) GetAny(ctx context.Context, id int) (*drug.Drug, error) {
	var d drug.Drug
	err := r.db.WithContext(ctx).First(&d, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, drug.ErrDrugNotFound
	}
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *DrugRepository) FindByComposition(ctx context.Context, name, typ string, dose float64, doseUnit string) (*drug.Drug, error) {
	var d drug.Drug
	err := r.db.WithContext(ctx).
		Where("name = ? AND type = ? AND dose = ? AND dose_unit = ?", name, typ, dose, doseUnit).
		First(&d).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, drug.ErrDrugNotFound
	}
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *DrugRepository) Update(ctx context.Context, d *drug.Drug) error {
	// Save writes every column, including a cleared deleted flag on
	// resurrection, which plain Updates would skip as a zero value.
	return r.db.WithContext(ctx).Save(d).Error
}

func (r *DrugRepository) SoftDelete(ctx context.Context, id int) error {
	return r.db.WithContext(ctx).
		Model(&drug.Drug{}).
		Where("id = ?", id).
		Update("is_deleted", true).Error
}

func (r *DrugRepository) List(ctx context.Context) ([]*drug.Drug, error) {
	var drugs []*drug.Drug
	err := r.db.WithContext(ctx).
		Where("is_deleted = false").
		Order("name ASC").
		Find(&drugs).Error
	return drugs, err
}

// escapeLike neutralises LIKE wildcards in user-provided prefixes.
func escapeLike(s string) string {
	replacer := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return replacer.Replace(s)
}

func (r *DrugRepository) ListByName(ctx context.Context, namePrefix string) ([]*drug.Drug, error) {
	var drugs []*drug.Drug
	err := r.db.WithContext(ctx).
		Where("name ILIKE ? AND is_deleted = false", escapeLike(namePrefix)+"%").
		Order("name ASC").
		Find(&drugs).Error
	return drugs, err
}
