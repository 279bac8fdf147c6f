package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlugify(t *testing.T) {
	cases := map[string]string{
		"Rice":                "rice",
		"Nuts & Seeds":        "nuts--seeds",
		"Fruits & Vegetables": "fruits--vegetables",
		"  Cow Dung  ":        "cow-dung",
		"Moringa (Dried)":     "moringa-dried",
		"snake_case Title":    "snake_case-title",
		"Épices":              "pices",
		"!!!":                 "",
	}
	for in, want := range cases {
		assert.Equal(t, want, Slugify(in), in)
	}
}

func TestPrepareDerivesSlugsAndReparents(t *testing.T) {
	in := SiteData{Products: []Product{{
		Details:   Details{Title: "Basmati Rice"},
		Varieties: []string{" Long grain ", "", "   "},
		Types: []SubProduct{
			{Details: Details{Title: "Pusa 1121"}, ParentSlug: "somewhere-else"},
			{Details: Details{Slug: "explicit", Title: "Whatever"}},
		},
	}}}

	out, err := Prepare(in)
	require.NoError(t, err)
	require.Len(t, out.Products, 1)

	p := out.Products[0]
	assert.Equal(t, "basmati-rice", p.Slug)
	assert.Equal(t, []string{"Long grain"}, p.Varieties)
	require.Len(t, p.Types, 2)
	assert.Equal(t, "basmati-rice-pusa-1121", p.Types[0].Slug)
	assert.Equal(t, "basmati-rice", p.Types[0].ParentSlug)
	assert.Equal(t, "explicit", p.Types[1].Slug)
	assert.Equal(t, "basmati-rice", p.Types[1].ParentSlug)

	assert.Equal(t, "somewhere-else", in.Products[0].Types[0].ParentSlug, "input must not be mutated")
}

func TestPrepareRejectsDuplicateProductSlugs(t *testing.T) {
	_, err := Prepare(SiteData{Products: []Product{
		{Details: Details{Title: "Rice"}},
		{Details: Details{Slug: "rice", Title: "Other rice"}},
	}})
	assert.ErrorIs(t, err, ErrInvalidSiteData)
	assert.Contains(t, err.Error(), `"rice"`)
}

func TestPrepareRejectsDuplicateSubProductSlugsAcrossParents(t *testing.T) {
	_, err := Prepare(SiteData{Products: []Product{
		{Details: Details{Slug: "rice"}, Types: []SubProduct{{Details: Details{Slug: "premium"}}}},
		{Details: Details{Slug: "spices"}, Types: []SubProduct{{Details: Details{Slug: "premium"}}}},
	}})
	assert.ErrorIs(t, err, ErrInvalidSiteData)
}

func TestPrepareRejectsUnnamedEntries(t *testing.T) {
	_, err := Prepare(SiteData{Products: []Product{{Details: Details{Title: "***"}}}})
	assert.ErrorIs(t, err, ErrInvalidSiteData)

	_, err = Prepare(SiteData{Products: []Product{{
		Details: Details{Slug: "rice"},
		Types:   []SubProduct{{}},
	}}})
	assert.ErrorIs(t, err, ErrInvalidSiteData)
}

func TestPrepareRejectsUnsafeSlugs(t *testing.T) {
	for _, slug := range []string{"a/b", "Rice", "rice basmati", "rice?x=1", "../admin", "épices"} {
		_, err := Prepare(SiteData{Products: []Product{{Details: Details{Slug: slug, Title: "Rice"}}}})
		assert.ErrorIs(t, err, ErrInvalidSiteData, slug)
		assert.ErrorContains(t, err, "not URL-safe", slug)

		_, err = Prepare(SiteData{Products: []Product{{
			Details: Details{Slug: "rice"},
			Types:   []SubProduct{{Details: Details{Slug: slug, Title: "Basmati"}}},
		}}})
		assert.ErrorIs(t, err, ErrInvalidSiteData, slug)
	}

	out, err := Prepare(SiteData{Products: []Product{{Details: Details{Slug: "  rice_2-b  "}}}})
	require.NoError(t, err)
	assert.Equal(t, "rice_2-b", out.Products[0].Slug)
}
