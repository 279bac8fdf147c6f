package catalog

import (
	"regexp"
	"sort"
	"strings"
)

var originSeparator = regexp.MustCompile(`(?i),|&| and `)

// Query narrows a product listing. Zero values match everything.
type Query struct {
	Search         string
	Origin         string
	HighDemandOnly bool
}

// OriginParts splits a free-text origin such as "India, Nepal and Bhutan"
// into its trimmed parts.
func OriginParts(origin string) []string {
	var parts []string
	for _, part := range originSeparator.Split(origin, -1) {
		if part = strings.TrimSpace(part); part != "" {
			parts = append(parts, part)
		}
	}
	return parts
}

// Filter returns the products matching q, preserving order. Search matches
// product title, description and origin, plus sub-product title and
// description, case-insensitively.
func Filter(products []Product, q Query) []Product {
	search := strings.ToLower(strings.TrimSpace(q.Search))
	origin := strings.ToLower(strings.TrimSpace(q.Origin))

	out := make([]Product, 0, len(products))
	for _, p := range products {
		if search != "" && !matchesSearch(p, search) {
			continue
		}
		if origin != "" && !hasOrigin(p, origin) {
			continue
		}
		if q.HighDemandOnly && !p.IsHighDemand {
			continue
		}
		out = append(out, p)
	}
	return out
}

func matchesSearch(p Product, q string) bool {
	if containsFold(p.Title, q) || containsFold(p.Description, q) || containsFold(p.Origin, q) {
		return true
	}
	for _, t := range p.Types {
		if containsFold(t.Title, q) || containsFold(t.Description, q) {
			return true
		}
	}
	return false
}

func hasOrigin(p Product, origin string) bool {
	for _, part := range OriginParts(p.Origin) {
		if strings.ToLower(part) == origin {
			return true
		}
	}
	return false
}

func containsFold(s, lowered string) bool {
	return strings.Contains(strings.ToLower(s), lowered)
}

// Origins lists the distinct origin parts across products, sorted.
func Origins(products []Product) []string {
	seen := make(map[string]struct{})
	out := []string{}
	for _, p := range products {
		for _, part := range OriginParts(p.Origin) {
			if _, ok := seen[part]; ok {
				continue
			}
			seen[part] = struct{}{}
			out = append(out, part)
		}
	}
	sort.Strings(out)
	return out
}

// Featured ranks high-demand products first, keeping list order within each
// group, and returns at most limit entries.
func Featured(products []Product, limit int) []Product {
	ranked := make([]Product, len(products))
	copy(ranked, products)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].IsHighDemand && !ranked[j].IsHighDemand
	})
	if limit >= 0 && len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}

// FindProduct returns the product with slug.
func (d *SiteData) FindProduct(slug string) (Product, bool) {
	for _, p := range d.Products {
		if p.Slug == slug {
			return p, true
		}
	}
	return Product{}, false
}

// FindSubProduct returns the sub-product with slug together with its parent.
func (d *SiteData) FindSubProduct(slug string) (SubProduct, Product, bool) {
	for _, p := range d.Products {
		for _, t := range p.Types {
			if t.Slug == slug {
				return t, p, true
			}
		}
	}
	return SubProduct{}, Product{}, false
}
