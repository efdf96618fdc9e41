package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"alfredoptarigan/jd-resume-matcher/internal/models"
	"alfredoptarigan/jd-resume-matcher/internal/repositories"
	"alfredoptarigan/jd-resume-matcher/internal/services"
)

var errQueueUnavailable = errors.New("analysis queue is unavailable")

type EvaluationHandler struct {
	repo   repositories.SessionRepository
	worker services.Worker
}

func NewEvaluationHandler(
	repo repositories.SessionRepository,
	worker services.Worker,
) *EvaluationHandler {
	return &EvaluationHandler{
		repo:   repo,
		worker: worker,
	}
}

// HandleSubmit handles POST /sessions/:id/submit
func (h *EvaluationHandler) HandleSubmit(c *fiber.Ctx) error {
	session, err := lookupSession(c, h.repo)
	if err != nil {
		return err
	}

	submission, err := session.Begin()
	switch {
	case errors.Is(err, services.ErrMissingFiles):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":   err.Error(),
			"session": session.Snapshot(),
		})
	case errors.Is(err, services.ErrSessionCompleted):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error":   err.Error(),
			"session": session.Snapshot(),
		})
	case err != nil:
		return err
	}

	// Already submitting: nothing new is sent.
	if submission == nil {
		return c.JSON(models.SubmitResponse{
			Accepted: false,
			Session:  session.Snapshot(),
		})
	}

	job := services.SubmissionJob{Session: session, Submission: submission}
	if !h.worker.EnqueueJob(job) {
		session.Abandon(submission, errQueueUnavailable)
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"error":   "Analysis queue is unavailable, please try again later",
			"session": session.Snapshot(),
		})
	}

	return c.Status(fiber.StatusAccepted).JSON(models.SubmitResponse{
		Accepted: true,
		Session:  session.Snapshot(),
	})
}
