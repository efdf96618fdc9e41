package handlers

import (
	"github.com/gofiber/fiber/v2"

	"alfredoptarigan/jd-resume-matcher/internal/models"
	"alfredoptarigan/jd-resume-matcher/internal/repositories"
	"alfredoptarigan/jd-resume-matcher/internal/services"
)

type ResultHandler struct {
	repo repositories.SessionRepository
}

func NewResultHandler(repo repositories.SessionRepository) *ResultHandler {
	return &ResultHandler{
		repo: repo,
	}
}

// HandleGetSession handles GET /sessions/:id
func (h *ResultHandler) HandleGetSession(c *fiber.Ctx) error {
	session, err := lookupSession(c, h.repo)
	if err != nil {
		return err
	}

	return c.JSON(session.Snapshot())
}

// HandleNormalize handles POST /normalize. The body is a raw analysis
// payload; the response is its report view.
func (h *ResultHandler) HandleNormalize(c *fiber.Ctx) error {
	payload, err := models.ParsePayload(c.Body())
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(services.Normalize(payload))
}
