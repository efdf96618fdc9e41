package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"alfredoptarigan/jd-resume-matcher/internal/repositories"
	"alfredoptarigan/jd-resume-matcher/internal/services"
)

type SessionHandler struct {
	repo       repositories.SessionRepository
	newSession func() services.UploadController
}

func NewSessionHandler(
	repo repositories.SessionRepository,
	newSession func() services.UploadController,
) *SessionHandler {
	return &SessionHandler{
		repo:       repo,
		newSession: newSession,
	}
}

// HandleCreate handles POST /sessions
func (h *SessionHandler) HandleCreate(c *fiber.Ctx) error {
	session := h.newSession()
	if err := h.repo.Create(session); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create session",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(session.Snapshot())
}

// HandleHealth handles GET /health
func (h *SessionHandler) HandleHealth(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":   "healthy",
		"sessions": h.repo.Count(),
		"time":     time.Now(),
	})
}

// HandleReset handles POST /sessions/:id/reset
func (h *SessionHandler) HandleReset(c *fiber.Ctx) error {
	session, err := lookupSession(c, h.repo)
	if err != nil {
		return err
	}

	session.Reset()
	return c.JSON(session.Snapshot())
}

// HandleDelete handles DELETE /sessions/:id
func (h *SessionHandler) HandleDelete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid session ID format")
	}

	if err := h.repo.Delete(id); err != nil {
		return fiber.NewError(fiber.StatusNotFound, "Session not found")
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func lookupSession(c *fiber.Ctx, repo repositories.SessionRepository) (services.UploadController, error) {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Invalid session ID format")
	}

	session, err := repo.FindByID(id)
	if err != nil {
		return nil, fiber.NewError(fiber.StatusNotFound, "Session not found")
	}
	return session, nil
}
