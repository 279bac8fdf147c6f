package handlers

import (
	"context"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/example/harvest/internal/models"
	"github.com/example/harvest/internal/utils"
)

const notifyTimeout = 15 * time.Second

// EnquiryNotifier is told about every stored enquiry.
type EnquiryNotifier interface {
	NotifyNewEnquiry(ctx context.Context, msg models.Message) error
}

// EnquiryHandler accepts public contact form submissions and lists them for
// the admin.
type EnquiryHandler struct {
	db       *gorm.DB
	notifier EnquiryNotifier
}

// NewEnquiryHandler constructs EnquiryHandler. notifier may be nil.
func NewEnquiryHandler(db *gorm.DB, notifier EnquiryNotifier) *EnquiryHandler {
	return &EnquiryHandler{db: db, notifier: notifier}
}

type enquiryRequest struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	ProductType string `json:"productType"`
	Quantity    string `json:"quantity"`
	Destination string `json:"destination"`
	Message     string `json:"message"`
}

// CreateEnquiry stores a new message from the contact form.
func (h *EnquiryHandler) CreateEnquiry(c *fiber.Ctx) error {
	var req enquiryRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	msg := models.Message{
		Name:        strings.TrimSpace(req.Name),
		Email:       strings.TrimSpace(req.Email),
		ProductType: strings.TrimSpace(req.ProductType),
		Quantity:    strings.TrimSpace(req.Quantity),
		Destination: strings.TrimSpace(req.Destination),
	}
	if msg.Name == "" || msg.Email == "" || msg.ProductType == "" || msg.Quantity == "" || msg.Destination == "" {
		return fiber.NewError(fiber.StatusBadRequest, "missing required fields")
	}
	if note := strings.TrimSpace(req.Message); note != "" {
		msg.Message = &note
	}

	if err := h.db.WithContext(c.UserContext()).Create(&msg).Error; err != nil {
		zap.L().Error("failed to store enquiry", zap.Error(err))
		return fiber.NewError(fiber.StatusInternalServerError, "failed to submit enquiry")
	}

	utils.EnquiriesSubmittedTotal.Inc()
	zap.L().Info("enquiry received", zap.Uint("id", msg.ID), zap.String("product", msg.ProductType))

	if h.notifier != nil {
		go func(msg models.Message) {
			ctx, cancel := context.WithTimeout(context.Background(), notifyTimeout)
			defer cancel()
			if err := h.notifier.NotifyNewEnquiry(ctx, msg); err != nil {
				zap.L().Warn("enquiry notification failed", zap.Uint("id", msg.ID), zap.Error(err))
			}
		}(msg)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "id": msg.ID})
}

// ListEnquiries returns every message, newest first.
func (h *EnquiryHandler) ListEnquiries(c *fiber.Ctx) error {
	messages := []models.Message{}
	if err := h.db.WithContext(c.UserContext()).
		Order("created_at desc").
		Order("id desc").
		Find(&messages).Error; err != nil {
		return err
	}

	return c.JSON(fiber.Map{"success": true, "data": messages})
}
