package models

// Product is a top-level catalog entry keyed by its slug.
type Product struct {
	Slug                string       `gorm:"primaryKey" json:"slug" csv:"slug"`
	Position            int          `gorm:"not null;default:0" json:"-" csv:"position"`
	Title               string       `json:"title" csv:"title"`
	Origin              string       `json:"origin" csv:"origin"`
	Description         string       `json:"description" csv:"description"`
	DetailedDescription string       `json:"detailedDescription" csv:"detailed_description"`
	Image               string       `json:"image" csv:"image"`
	Climate             string       `json:"climate" csv:"climate"`
	GrowingSeason       string       `json:"growingSeason" csv:"growing_season"`
	Yield               string       `json:"yield" csv:"yield"`
	IsHighDemand        Flag         `gorm:"not null;default:false" json:"isHighDemand" csv:"is_high_demand"`
	SubProducts         []SubProduct `gorm:"foreignKey:ParentSlug;references:Slug;constraint:OnDelete:CASCADE" json:"-" csv:"-"`
	Varieties           []Variety    `gorm:"foreignKey:ProductSlug;references:Slug;constraint:OnDelete:CASCADE" json:"-" csv:"-"`
}

// SubProduct is a second-level catalog entry owned by a Product.
type SubProduct struct {
	Slug                string `gorm:"primaryKey" json:"slug" csv:"slug"`
	ParentSlug          string `gorm:"index;not null" json:"parentSlug" csv:"parent_slug"`
	Position            int    `gorm:"not null;default:0" json:"-" csv:"position"`
	Title               string `json:"title" csv:"title"`
	Origin              string `json:"origin" csv:"origin"`
	Description         string `json:"description" csv:"description"`
	DetailedDescription string `json:"detailedDescription" csv:"detailed_description"`
	Image               string `json:"image" csv:"image"`
	Climate             string `json:"climate" csv:"climate"`
	GrowingSeason       string `json:"growingSeason" csv:"growing_season"`
	Yield               string `json:"yield" csv:"yield"`
	IsHighDemand        Flag   `gorm:"not null;default:false" json:"isHighDemand" csv:"is_high_demand"`
}

// Variety is a free-text tag on a Product. Duplicate names are allowed.
type Variety struct {
	ID          uint   `gorm:"primaryKey;autoIncrement" json:"id" csv:"id"`
	ProductSlug string `gorm:"index;not null" json:"productSlug" csv:"product_slug"`
	Name        string `json:"name" csv:"name"`
}
