package handlers

import (
	"errors"
	"log"
	"time"

	"moodbloom/internal/repositories"
	"moodbloom/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// MoodHandler handles HTTP requests for the mood journal.
type MoodHandler struct {
	service  *services.MoodService
	validate *validator.Validate
}

// NewMoodHandler creates a new MoodHandler.
func NewMoodHandler(service *services.MoodService) *MoodHandler {
	return &MoodHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the mood journal routes with the Fiber app.
// The caller is expected to mount these behind the auth middleware.
func (h *MoodHandler) RegisterRoutes(router fiber.Router) {
	moodRoutes := router.Group("/moods")
	moodRoutes.Post("/", h.HandleRecordMood)
	moodRoutes.Get("/", h.HandleListMoods)
	moodRoutes.Get("/statistics", h.HandleStatistics)
	moodRoutes.Get("/:id", h.HandleGetMood)
	moodRoutes.Put("/:id", h.HandleUpdateMood)
	moodRoutes.Delete("/:id", h.HandleDeleteMood)
}

// RecordMoodRequest represents the request body for a new mood entry.
// RecordedAt is optional and defaults to the submission time.
type RecordMoodRequest struct {
	Mood       int       `json:"mood" validate:"required,min=1,max=10"`
	Note       string    `json:"note" validate:"omitempty,max=1000"`
	RecordedAt time.Time `json:"recorded_at"`
}

// HandleRecordMood stores a new mood entry for the signed-in user.
func (h *MoodHandler) HandleRecordMood(c *fiber.Ctx) error {
	accountID, _ := c.Locals("user_id").(string)

	var req RecordMoodRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing mood request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if err := h.validate.Struct(req); err != nil {
		return validationErrorResponse(c, err)
	}

	entry, err := h.service.Record(accountID, req.Mood, req.Note, req.RecordedAt)
	if err != nil {
		log.Printf("Error recording mood for %s: %v", accountID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not record mood",
			"error":   err.Error(),
		})
	}

	return c.Status(fiber.StatusCreated).JSON(entry)
}

// HandleListMoods lists the user's entries for a named period
// (?period=week|month|year, default week) or an explicit window
// (?from=&to= as RFC 3339). Results are newest first.
func (h *MoodHandler) HandleListMoods(c *fiber.Ctx) error {
	accountID, _ := c.Locals("user_id").(string)

	from, to, err := rangeFromQuery(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid time range",
			"error":   err.Error(),
		})
	}

	entries, err := h.service.EntriesInRange(accountID, from, to)
	if err != nil {
		log.Printf("Error listing moods for %s: %v", accountID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve mood entries",
		})
	}

	return c.JSON(entries)
}

// HandleStatistics aggregates the user's entries over the requested
// window.
func (h *MoodHandler) HandleStatistics(c *fiber.Ctx) error {
	accountID, _ := c.Locals("user_id").(string)

	from, to, err := rangeFromQuery(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid time range",
			"error":   err.Error(),
		})
	}

	stats, err := h.service.Statistics(accountID, from, to)
	if err != nil {
		log.Printf("Error computing mood statistics for %s: %v", accountID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not compute statistics",
		})
	}

	return c.JSON(stats)
}

// HandleGetMood retrieves a single owned entry.
func (h *MoodHandler) HandleGetMood(c *fiber.Ctx) error {
	accountID, _ := c.Locals("user_id").(string)
	entryID := c.Params("id")

	entry, err := h.service.GetEntry(accountID, entryID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "Mood entry not found",
			})
		}
		log.Printf("Error getting mood %s for %s: %v", entryID, accountID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve mood entry",
		})
	}

	return c.JSON(entry)
}

// UpdateMoodRequest represents the editable fields of an entry. The
// recorded-at timestamp is immutable.
type UpdateMoodRequest struct {
	Mood int    `json:"mood" validate:"required,min=1,max=10"`
	Note string `json:"note" validate:"omitempty,max=1000"`
}

// HandleUpdateMood updates the mood value and note of an owned entry.
func (h *MoodHandler) HandleUpdateMood(c *fiber.Ctx) error {
	accountID, _ := c.Locals("user_id").(string)
	entryID := c.Params("id")

	var req UpdateMoodRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing mood update body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if err := h.validate.Struct(req); err != nil {
		return validationErrorResponse(c, err)
	}

	entry, err := h.service.UpdateEntry(accountID, entryID, req.Mood, req.Note)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "Mood entry not found",
			})
		}
		log.Printf("Error updating mood %s for %s: %v", entryID, accountID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not update mood entry",
		})
	}

	return c.JSON(entry)
}

// HandleDeleteMood removes an owned entry.
func (h *MoodHandler) HandleDeleteMood(c *fiber.Ctx) error {
	accountID, _ := c.Locals("user_id").(string)
	entryID := c.Params("id")

	if err := h.service.DeleteEntry(accountID, entryID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "Mood entry not found",
			})
		}
		log.Printf("Error deleting mood %s for %s: %v", entryID, accountID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not delete mood entry",
		})
	}

	return c.JSON(fiber.Map{
		"message": "Mood entry deleted",
	})
}

// rangeFromQuery derives the [from, to] window from the request: explicit
// from/to take precedence, otherwise the named period (default week),
// always ending now.
func rangeFromQuery(c *fiber.Ctx) (time.Time, time.Time, error) {
	fromStr := c.Query("from")
	toStr := c.Query("to")
	if fromStr != "" || toStr != "" {
		from, err := time.Parse(time.RFC3339, fromStr)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
		to := time.Now()
		if toStr != "" {
			if to, err = time.Parse(time.RFC3339, toStr); err != nil {
				return time.Time{}, time.Time{}, err
			}
		}
		return from, to, nil
	}

	from, to := services.RangeForPeriod(services.Period(c.Query("period", string(services.PeriodWeek))))
	return from, to, nil
}
