package handlers

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/example/harvest/internal/services"
)

// UploadHandler stores admin image uploads.
type UploadHandler struct {
	blobs services.BlobStore
}

// NewUploadHandler constructs UploadHandler.
func NewUploadHandler(blobs services.BlobStore) *UploadHandler {
	return &UploadHandler{blobs: blobs}
}

// Upload stores the multipart field "file" and returns its public URL.
func (h *UploadHandler) Upload(c *fiber.Ctx) error {
	header, err := c.FormFile("file")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "no file uploaded")
	}

	file, err := header.Open()
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "unreadable file")
	}
	defer file.Close()

	url, err := h.blobs.Put(c.UserContext(), header.Filename, file)
	if err != nil {
		zap.L().Error("upload failed", zap.String("filename", header.Filename), zap.Error(err))
		return fiber.NewError(fiber.StatusInternalServerError, "upload failed")
	}

	return c.JSON(fiber.Map{"url": url})
}
