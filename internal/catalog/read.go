package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/example/harvest/internal/models"
)

// Load rebuilds the nested SiteData from the stored rows. Every call re-reads
// the store. A missing or unreadable contact value yields an empty
// ContactInfo instead of an error.
func (s *Store) Load(ctx context.Context) (*SiteData, error) {
	db := s.db.WithContext(ctx)

	contact, err := loadContact(db)
	if err != nil {
		return nil, err
	}

	var products []models.Product
	if err := db.Order("position asc, slug asc").Find(&products).Error; err != nil {
		return nil, fmt.Errorf("load products: %w", err)
	}

	var varieties []models.Variety
	if err := db.Order("id asc").Find(&varieties).Error; err != nil {
		return nil, fmt.Errorf("load varieties: %w", err)
	}

	var subProducts []models.SubProduct
	if err := db.Order("position asc, slug asc").Find(&subProducts).Error; err != nil {
		return nil, fmt.Errorf("load sub-products: %w", err)
	}

	return assemble(contact, products, varieties, subProducts), nil
}

func loadContact(db *gorm.DB) (ContactInfo, error) {
	var entry models.ConfigEntry
	err := db.Where(&models.ConfigEntry{Key: models.ContactConfigKey}).Take(&entry).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ContactInfo{}, nil
	}
	if err != nil {
		return ContactInfo{}, fmt.Errorf("load contact: %w", err)
	}

	var contact ContactInfo
	if err := json.Unmarshal([]byte(entry.Value), &contact); err != nil {
		zap.L().Warn("stored contact info is unreadable, using empty defaults", zap.Error(err))
		return ContactInfo{}, nil
	}
	return contact, nil
}

// assemble joins the three row sets by slug. Rows whose parent is missing are
// dropped.
func assemble(contact ContactInfo, products []models.Product, varieties []models.Variety, subProducts []models.SubProduct) *SiteData {
	namesBySlug := make(map[string][]string, len(products))
	for _, v := range varieties {
		namesBySlug[v.ProductSlug] = append(namesBySlug[v.ProductSlug], v.Name)
	}

	typesBySlug := make(map[string][]SubProduct, len(products))
	for _, sp := range subProducts {
		typesBySlug[sp.ParentSlug] = append(typesBySlug[sp.ParentSlug], SubProduct{
			Details:    subProductDetails(sp),
			ParentSlug: sp.ParentSlug,
		})
	}

	out := &SiteData{Contact: contact, Products: make([]Product, 0, len(products))}
	for _, p := range products {
		names := namesBySlug[p.Slug]
		if names == nil {
			names = []string{}
		}
		types := typesBySlug[p.Slug]
		if types == nil {
			types = []SubProduct{}
		}
		delete(namesBySlug, p.Slug)
		delete(typesBySlug, p.Slug)

		out.Products = append(out.Products, Product{
			Details:   productDetails(p),
			Varieties: names,
			Types:     types,
		})
	}

	for slug := range namesBySlug {
		zap.L().Warn("ignoring varieties of unknown product", zap.String("product", slug))
	}
	for slug := range typesBySlug {
		zap.L().Warn("ignoring sub-products of unknown product", zap.String("product", slug))
	}

	return out
}

func productDetails(p models.Product) Details {
	return Details{
		Slug:                p.Slug,
		Title:               p.Title,
		Origin:              p.Origin,
		Description:         p.Description,
		DetailedDescription: p.DetailedDescription,
		Image:               p.Image,
		Climate:             p.Climate,
		GrowingSeason:       p.GrowingSeason,
		Yield:               p.Yield,
		IsHighDemand:        bool(p.IsHighDemand),
	}
}

func subProductDetails(sp models.SubProduct) Details {
	return Details{
		Slug:                sp.Slug,
		Title:               sp.Title,
		Origin:              sp.Origin,
		Description:         sp.Description,
		DetailedDescription: sp.DetailedDescription,
		Image:               sp.Image,
		Climate:             sp.Climate,
		GrowingSeason:       sp.GrowingSeason,
		Yield:               sp.Yield,
		IsHighDemand:        bool(sp.IsHighDemand),
	}
}
