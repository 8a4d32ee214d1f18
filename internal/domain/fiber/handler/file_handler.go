package handler

import (
	"errors"
	"os"

	"github.com/fadilmartias/applicant-portal/internal/util"
	"github.com/gofiber/fiber/v2"
)

// FileOpener resolves a signed download token to a file on disk.
type FileOpener interface {
	Open(token string) (string, error)
}

// FileHandler serves documents stored by the local file backend.
type FileHandler struct {
	files FileOpener
}

func NewFileHandler(files FileOpener) *FileHandler {
	return &FileHandler{files: files}
}

func (h *FileHandler) RegisterRoutes(app *fiber.App) {
	app.Get("/files/:token", h.Download)
}

func (h *FileHandler) Download(c *fiber.Ctx) error {
	path, err := h.files.Open(c.Params("token"))
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusForbidden,
			Message: "File link is invalid or has expired.",
		}, err)
	}
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusNotFound,
			Message: "Requested file not available.",
		})
	}
	c.Set(fiber.HeaderCacheControl, "private, no-store")
	return c.SendFile(path)
}
