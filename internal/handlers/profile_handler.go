package handlers

import (
	"errors"
	"log"

	"moodbloom/internal/repositories"
	"moodbloom/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// ProfileHandler handles HTTP requests for the signed-in user's profile.
type ProfileHandler struct {
	profileService *services.ProfileService
	authService    *services.AuthService
	validate       *validator.Validate
}

// NewProfileHandler creates a new ProfileHandler.
func NewProfileHandler(profileService *services.ProfileService, authService *services.AuthService) *ProfileHandler {
	return &ProfileHandler{
		profileService: profileService,
		authService:    authService,
		validate:       validator.New(),
	}
}

// RegisterRoutes registers the profile routes with the Fiber app. The
// caller is expected to mount these behind the auth middleware.
func (h *ProfileHandler) RegisterRoutes(router fiber.Router) {
	profileRoutes := router.Group("/profile")
	profileRoutes.Get("/", h.HandleGetProfile)
	profileRoutes.Put("/", h.HandleUpdateProfile)
	profileRoutes.Post("/avatar", h.HandleUploadAvatar)
	profileRoutes.Delete("/avatar", h.HandleRemoveAvatar)
	profileRoutes.Put("/password", h.HandleChangePassword)
	profileRoutes.Delete("/", h.HandleDeleteAccount)
}

// HandleGetProfile returns the signed-in user's account.
func (h *ProfileHandler) HandleGetProfile(c *fiber.Ctx) error {
	accountID, _ := c.Locals("user_id").(string)

	account, err := h.profileService.Get(accountID)
	if err != nil {
		log.Printf("Error getting profile for %s: %v", accountID, err)
		if errors.Is(err, repositories.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "Account not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve profile",
		})
	}

	account.Password = ""
	return c.JSON(account)
}

// UpdateProfileRequest represents the editable profile fields.
type UpdateProfileRequest struct {
	Nickname string `json:"nickname" validate:"omitempty,max=100"`
	Bio      string `json:"bio" validate:"omitempty,max=500"`
}

// HandleUpdateProfile updates nickname and bio.
func (h *ProfileHandler) HandleUpdateProfile(c *fiber.Ctx) error {
	accountID, _ := c.Locals("user_id").(string)

	var req UpdateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing profile update body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if err := h.validate.Struct(req); err != nil {
		return validationErrorResponse(c, err)
	}

	account, err := h.profileService.UpdateProfile(accountID, req.Nickname, req.Bio)
	if err != nil {
		log.Printf("Error updating profile for %s: %v", accountID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not update profile",
		})
	}

	account.Password = ""
	return c.JSON(fiber.Map{
		"message": "Profile updated successfully",
		"account": account,
	})
}

// HandleUploadAvatar accepts a multipart image, streams it to the blob
// store and responds with the final URL once the upload completes.
func (h *ProfileHandler) HandleUploadAvatar(c *fiber.Ctx) error {
	accountID, _ := c.Locals("user_id").(string)

	fileHeader, err := c.FormFile("avatar")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "An 'avatar' file is required",
			"error":   err.Error(),
		})
	}

	file, err := fileHeader.Open()
	if err != nil {
		log.Printf("Error opening avatar upload: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not read uploaded file",
		})
	}
	defer file.Close()

	contentType := fileHeader.Header.Get("Content-Type")
	progress := h.profileService.UploadAvatar(c.Context(), accountID, fileHeader.Filename, file, fileHeader.Size, contentType)

	// Drain the stream; the terminal element carries the URL or error.
	var (
		finalURL string
		finalErr error
	)
	for p := range progress {
		if p.Done {
			finalURL, finalErr = p.URL, p.Err
		}
	}
	if finalErr != nil {
		log.Printf("Error uploading avatar for %s: %v", accountID, finalErr)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not upload avatar",
		})
	}

	return c.JSON(fiber.Map{
		"message":    "Avatar updated successfully",
		"avatar_url": finalURL,
	})
}

// HandleRemoveAvatar clears the profile image.
func (h *ProfileHandler) HandleRemoveAvatar(c *fiber.Ctx) error {
	accountID, _ := c.Locals("user_id").(string)

	if err := h.profileService.RemoveAvatar(c.Context(), accountID); err != nil {
		log.Printf("Error removing avatar for %s: %v", accountID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not remove avatar",
		})
	}
	return c.JSON(fiber.Map{
		"message": "Avatar removed",
	})
}

// ChangePasswordRequest carries the current password (for
// re-authentication) and the new one.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required,min=6"`
}

// HandleChangePassword re-authenticates and stores a new password.
func (h *ProfileHandler) HandleChangePassword(c *fiber.Ctx) error {
	accountID, _ := c.Locals("user_id").(string)

	var req ChangePasswordRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing change-password body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if err := h.validate.Struct(req); err != nil {
		return validationErrorResponse(c, err)
	}

	if err := h.authService.ChangePassword(accountID, req.CurrentPassword, req.NewPassword); err != nil {
		log.Printf("Error changing password for %s: %v", accountID, err)
		if errors.Is(err, services.ErrInvalidCredentials) {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Current password is incorrect",
			})
		}
		if errors.Is(err, services.ErrWeakPassword) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "Password change failed",
				"error":   err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not change password",
		})
	}

	return c.JSON(fiber.Map{
		"message": "Password changed successfully",
	})
}

// DeleteAccountRequest carries the password confirming the deletion.
type DeleteAccountRequest struct {
	Password string `json:"password" validate:"required"`
}

// HandleDeleteAccount re-authenticates and deletes the account together
// with its mood entries.
func (h *ProfileHandler) HandleDeleteAccount(c *fiber.Ctx) error {
	accountID, _ := c.Locals("user_id").(string)

	var req DeleteAccountRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing delete-account body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if err := h.validate.Struct(req); err != nil {
		return validationErrorResponse(c, err)
	}

	if err := h.authService.DeleteAccount(accountID, req.Password); err != nil {
		log.Printf("Error deleting account %s: %v", accountID, err)
		if errors.Is(err, services.ErrInvalidCredentials) {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Password is incorrect",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not delete account",
		})
	}

	return c.JSON(fiber.Map{
		"message": "Account deleted",
	})
}
