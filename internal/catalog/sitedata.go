// Package catalog owns the site data: contact info and the two-level product
// catalog. Writes replace the whole catalog in one transaction; reads rebuild
// the nested shape from independent row sets.
package catalog

// ContactInfo is the singleton contact record shown across the site.
type ContactInfo struct {
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
	WhatsApp string `json:"whatsapp"`
}

// Details are the display attributes shared by products and sub-products.
type Details struct {
	Slug                string `json:"slug"`
	Title               string `json:"title"`
	Origin              string `json:"origin"`
	Description         string `json:"description"`
	DetailedDescription string `json:"detailedDescription,omitempty"`
	Image               string `json:"image"`
	Climate             string `json:"climate,omitempty"`
	GrowingSeason       string `json:"growingSeason,omitempty"`
	Yield               string `json:"yield,omitempty"`
	IsHighDemand        bool   `json:"isHighDemand"`
}

// SubProduct is a second catalog level under a Product.
type SubProduct struct {
	Details
	ParentSlug string `json:"parentSlug"`
}

// Product is a top-level catalog entry with its varieties and sub-products.
type Product struct {
	Details
	Varieties []string     `json:"varieties"`
	Types     []SubProduct `json:"types"`
}

// SiteData is the complete editable catalog exchanged with the admin UI.
type SiteData struct {
	Contact  ContactInfo `json:"contact"`
	Products []Product   `json:"products"`
}
