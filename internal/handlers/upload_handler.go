package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"alfredoptarigan/jd-resume-matcher/internal/models"
	"alfredoptarigan/jd-resume-matcher/internal/repositories"
	"alfredoptarigan/jd-resume-matcher/internal/services"
)

type UploadHandler struct {
	repo   repositories.SessionRepository
	loader services.CandidateLoader
}

func NewUploadHandler(
	repo repositories.SessionRepository,
	loader services.CandidateLoader,
) *UploadHandler {
	return &UploadHandler{
		repo:   repo,
		loader: loader,
	}
}

// HandleSelectFile handles PUT /sessions/:id/files/:slot
func (h *UploadHandler) HandleSelectFile(c *fiber.Ctx) error {
	session, err := lookupSession(c, h.repo)
	if err != nil {
		return err
	}

	slot, err := models.ParseSlot(c.Params("slot"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "file is required",
		})
	}

	file, err := h.loader.FromMultipart(fileHeader)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	if err := session.SelectFile(slot, file); err != nil {
		status := fiber.StatusBadRequest
		if errors.Is(err, services.ErrSessionBusy) || errors.Is(err, services.ErrSessionCompleted) {
			status = fiber.StatusConflict
		}
		return c.Status(status).JSON(fiber.Map{
			"error":   err.Error(),
			"session": session.Snapshot(),
		})
	}

	return c.JSON(models.SelectFileResponse{
		Slot:    slot,
		Session: session.Snapshot(),
	})
}
