package catalog

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// ErrInvalidSiteData marks a save rejected before touching the store.
var ErrInvalidSiteData = errors.New("invalid site data")

var slugStrip = regexp.MustCompile(`[^A-Za-z0-9_-]`)

// Slugify lower-cases title, turns spaces into hyphens and drops everything
// outside [A-Za-z0-9_-].
func Slugify(title string) string {
	slug := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(title)), " ", "-")
	return slugStrip.ReplaceAllString(slug, "")
}

// isURLSafe reports whether slug is already in the form Slugify produces.
func isURLSafe(slug string) bool {
	return Slugify(slug) == slug
}

// Prepare returns a normalised copy of data ready to be written: missing
// slugs are derived from titles, sub-products are re-parented to their owning
// product and blank varieties are dropped. Empty, duplicate or non-URL-safe
// slugs are rejected rather than silently overwriting one another.
func Prepare(data SiteData) (SiteData, error) {
	out := SiteData{Contact: data.Contact, Products: make([]Product, 0, len(data.Products))}

	productSlugs := make(map[string]struct{}, len(data.Products))
	subSlugs := make(map[string]struct{})

	for i, p := range data.Products {
		p.Slug = strings.TrimSpace(p.Slug)
		if p.Slug == "" {
			p.Slug = Slugify(p.Title)
		}
		if p.Slug == "" {
			return SiteData{}, fmt.Errorf("%w: product %d has no slug or title", ErrInvalidSiteData, i+1)
		}
		if !isURLSafe(p.Slug) {
			return SiteData{}, fmt.Errorf("%w: product slug %q is not URL-safe", ErrInvalidSiteData, p.Slug)
		}
		if _, dup := productSlugs[p.Slug]; dup {
			return SiteData{}, fmt.Errorf("%w: duplicate product slug %q", ErrInvalidSiteData, p.Slug)
		}
		productSlugs[p.Slug] = struct{}{}

		varieties := make([]string, 0, len(p.Varieties))
		for _, v := range p.Varieties {
			if v = strings.TrimSpace(v); v != "" {
				varieties = append(varieties, v)
			}
		}
		p.Varieties = varieties

		types := make([]SubProduct, 0, len(p.Types))
		for j, t := range p.Types {
			t.Slug = strings.TrimSpace(t.Slug)
			if t.Slug == "" {
				if titleSlug := Slugify(t.Title); titleSlug != "" {
					t.Slug = p.Slug + "-" + titleSlug
				}
			}
			if t.Slug == "" {
				return SiteData{}, fmt.Errorf("%w: sub-product %d of %q has no slug or title", ErrInvalidSiteData, j+1, p.Slug)
			}
			if !isURLSafe(t.Slug) {
				return SiteData{}, fmt.Errorf("%w: sub-product slug %q is not URL-safe", ErrInvalidSiteData, t.Slug)
			}
			if _, dup := subSlugs[t.Slug]; dup {
				return SiteData{}, fmt.Errorf("%w: duplicate sub-product slug %q", ErrInvalidSiteData, t.Slug)
			}
			subSlugs[t.Slug] = struct{}{}

			t.ParentSlug = p.Slug
			types = append(types, t)
		}
		p.Types = types

		out.Products = append(out.Products, p)
	}

	return out, nil
}
