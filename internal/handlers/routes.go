package handlers

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"alfredoptarigan/jd-resume-matcher/internal/models"
	"alfredoptarigan/jd-resume-matcher/internal/services"
)

type Handlers struct {
	Session    *SessionHandler
	Upload     *UploadHandler
	Evaluation *EvaluationHandler
	Result     *ResultHandler
}

// RegisterRoutes mounts the API under router (normally /api/v1).
func RegisterRoutes(router fiber.Router, h Handlers) {
	router.Get("/health", h.Session.HandleHealth)

	router.Post("/sessions", h.Session.HandleCreate)
	router.Get("/sessions/:id", h.Result.HandleGetSession)
	router.Put("/sessions/:id/files/:slot", h.Upload.HandleSelectFile)
	router.Post("/sessions/:id/submit", h.Evaluation.HandleSubmit)
	router.Post("/sessions/:id/reset", h.Session.HandleReset)
	router.Delete("/sessions/:id", h.Session.HandleDelete)
	router.Post("/normalize", h.Result.HandleNormalize)
}

// ErrorHandler renders errors returned from handlers as JSON. It also sees
// bodies fasthttp refused against BodyLimit; those never reach a session, so
// upload routes only get the file size message back.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError

	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		code = fiberErr.Code
	}

	message := err.Error()
	if code == fiber.StatusRequestEntityTooLarge && strings.Contains(c.Path(), "/files/") {
		message = services.MsgFileTooLarge
	}

	return c.Status(code).JSON(models.ErrorResponse{
		Error: message,
		Code:  code,
	})
}
