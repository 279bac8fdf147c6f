package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/example/harvest/internal/catalog"
	"github.com/example/harvest/internal/middleware"
	"github.com/example/harvest/internal/utils"
)

const defaultFeaturedLimit = 3

// SiteHandler serves the catalog to the admin editor and the public pages.
type SiteHandler struct {
	store *catalog.Store
}

// NewSiteHandler constructs SiteHandler.
func NewSiteHandler(store *catalog.Store) *SiteHandler {
	return &SiteHandler{store: store}
}

func (h *SiteHandler) load(c *fiber.Ctx) (*catalog.SiteData, error) {
	data, err := h.store.Load(c.UserContext())
	if err != nil {
		zap.L().Error("failed to load site data", zap.Error(err))
		return nil, fiber.NewError(fiber.StatusInternalServerError, "failed to load data")
	}
	return data, nil
}

// GetSiteData returns the whole catalog.
func (h *SiteHandler) GetSiteData(c *fiber.Ctx) error {
	data, err := h.load(c)
	if err != nil {
		return err
	}
	return c.JSON(data)
}

// SaveSiteData replaces the whole catalog with the request body.
func (h *SiteHandler) SaveSiteData(c *fiber.Ctx) error {
	var data catalog.SiteData
	if err := c.BodyParser(&data); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	err := h.store.Save(c.UserContext(), data)
	utils.RecordCatalogSave(err == nil)

	if errors.Is(err, catalog.ErrInvalidSiteData) {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	if err != nil {
		zap.L().Error("failed to save site data", zap.Error(err))
		return fiber.NewError(fiber.StatusInternalServerError, "failed to save data")
	}

	if username, ok := middleware.CurrentUsername(c); ok {
		zap.L().Info("catalog replaced", zap.String("admin", username), zap.Int("products", len(data.Products)))
	}

	return c.JSON(fiber.Map{"success": true})
}

// ListProducts returns products filtered by search, origin and highDemand.
func (h *SiteHandler) ListProducts(c *fiber.Ctx) error {
	data, err := h.load(c)
	if err != nil {
		return err
	}

	products := catalog.Filter(data.Products, catalog.Query{
		Search:         c.Query("search"),
		Origin:         c.Query("origin"),
		HighDemandOnly: c.QueryBool("highDemand", false),
	})

	return c.JSON(fiber.Map{"success": true, "data": products})
}

// FeaturedProducts returns the homepage selection.
func (h *SiteHandler) FeaturedProducts(c *fiber.Ctx) error {
	data, err := h.load(c)
	if err != nil {
		return err
	}

	limit := c.QueryInt("limit", defaultFeaturedLimit)
	if limit < 0 {
		limit = defaultFeaturedLimit
	}

	return c.JSON(fiber.Map{"success": true, "data": catalog.Featured(data.Products, limit)})
}

// ListOrigins returns the distinct origins for the filter dropdown.
func (h *SiteHandler) ListOrigins(c *fiber.Ctx) error {
	data, err := h.load(c)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "data": catalog.Origins(data.Products)})
}

// GetProduct resolves a slug to a product or, failing that, a sub-product.
func (h *SiteHandler) GetProduct(c *fiber.Ctx) error {
	data, err := h.load(c)
	if err != nil {
		return err
	}

	slug := c.Params("slug")
	if product, ok := data.FindProduct(slug); ok {
		return c.JSON(fiber.Map{"success": true, "kind": "product", "data": product})
	}
	if sub, parent, ok := data.FindSubProduct(slug); ok {
		return c.JSON(fiber.Map{
			"success": true,
			"kind":    "subProduct",
			"data":    sub,
			"parent":  parent.Details,
		})
	}

	return fiber.NewError(fiber.StatusNotFound, "product not found")
}
