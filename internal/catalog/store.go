package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/example/harvest/internal/models"
)

// Store is the single writer of the catalog tables.
type Store struct {
	db *gorm.DB
}

// NewStore constructs a Store on top of an initialized connection.
func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

// Save replaces the whole catalog with data in one transaction: the contact
// row is upserted, every variety, sub-product and product row is deleted and
// the new tree is inserted in list order. Any failure rolls everything back.
func (s *Store) Save(ctx context.Context, data SiteData) error {
	prepared, err := Prepare(data)
	if err != nil {
		return err
	}

	contact, err := json.Marshal(prepared.Contact)
	if err != nil {
		return fmt.Errorf("encode contact: %w", err)
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		entry := models.ConfigEntry{Key: models.ContactConfigKey, Value: string(contact)}
		if err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"value"}),
		}).Create(&entry).Error; err != nil {
			return fmt.Errorf("upsert contact: %w", err)
		}

		all := tx.Session(&gorm.Session{AllowGlobalUpdate: true})
		if err := all.Delete(&models.Variety{}).Error; err != nil {
			return fmt.Errorf("clear varieties: %w", err)
		}
		if err := all.Delete(&models.SubProduct{}).Error; err != nil {
			return fmt.Errorf("clear sub-products: %w", err)
		}
		if err := all.Delete(&models.Product{}).Error; err != nil {
			return fmt.Errorf("clear products: %w", err)
		}

		for i, p := range prepared.Products {
			row := productRow(p, i)
			if err := tx.Omit(clause.Associations).Create(&row).Error; err != nil {
				return fmt.Errorf("insert product %q: %w", p.Slug, err)
			}

			for _, name := range p.Varieties {
				variety := models.Variety{ProductSlug: p.Slug, Name: name}
				if err := tx.Create(&variety).Error; err != nil {
					return fmt.Errorf("insert variety %q of %q: %w", name, p.Slug, err)
				}
			}

			for j, t := range p.Types {
				sub := subProductRow(t, j)
				if err := tx.Create(&sub).Error; err != nil {
					return fmt.Errorf("insert sub-product %q: %w", t.Slug, err)
				}
			}
		}

		return nil
	})
	if err != nil {
		return fmt.Errorf("save site data: %w", err)
	}

	zap.L().Info("catalog saved", zap.Int("products", len(prepared.Products)))
	return nil
}

// IsEmpty reports whether no product rows exist.
func (s *Store) IsEmpty(ctx context.Context) (bool, error) {
	var count int64
	if err := s.db.WithContext(ctx).Model(&models.Product{}).Count(&count).Error; err != nil {
		return false, err
	}
	return count == 0, nil
}

// SeedFromFile loads the catalog from a JSON file when the store holds no
// products yet. A missing file is not an error. It reports whether a seed
// was written.
func (s *Store) SeedFromFile(ctx context.Context, path string) (bool, error) {
	empty, err := s.IsEmpty(ctx)
	if err != nil || !empty {
		return false, err
	}

	raw, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		zap.L().Info("no catalog seed file", zap.String("path", path))
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("read seed file: %w", err)
	}

	var data SiteData
	if err := json.Unmarshal(raw, &data); err != nil {
		return false, fmt.Errorf("parse seed file %s: %w", path, err)
	}

	if err := s.Save(ctx, data); err != nil {
		return false, err
	}

	zap.L().Info("catalog seeded", zap.String("path", path), zap.Int("products", len(data.Products)))
	return true, nil
}

func productRow(p Product, position int) models.Product {
	return models.Product{
		Slug:                p.Slug,
		Position:            position,
		Title:               p.Title,
		Origin:              p.Origin,
		Description:         p.Description,
		DetailedDescription: p.DetailedDescription,
		Image:               p.Image,
		Climate:             p.Climate,
		GrowingSeason:       p.GrowingSeason,
		Yield:               p.Yield,
		IsHighDemand:        models.Flag(p.IsHighDemand),
	}
}

func subProductRow(t SubProduct, position int) models.SubProduct {
	return models.SubProduct{
		Slug:                t.Slug,
		ParentSlug:          t.ParentSlug,
		Position:            position,
		Title:               t.Title,
		Origin:              t.Origin,
		Description:         t.Description,
		DetailedDescription: t.DetailedDescription,
		Image:               t.Image,
		Climate:             t.Climate,
		GrowingSeason:       t.GrowingSeason,
		Yield:               t.Yield,
		IsHighDemand:        models.Flag(t.IsHighDemand),
	}
}
