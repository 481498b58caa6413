package handlers

import (
	"errors"
	"fmt"
	"strings"

	"merchantgate/internal/middleware"
	"merchantgate/internal/models"
	"merchantgate/internal/services"
	"merchantgate/pkg/logger"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// MerchantHandler handles HTTP requests for merchant verification and registration.
type MerchantHandler struct {
	service  *services.MerchantService
	validate *validator.Validate
	log      *logger.Logger
}

// NewMerchantHandler creates a new MerchantHandler.
func NewMerchantHandler(service *services.MerchantService, log *logger.Logger) *MerchantHandler {
	return &MerchantHandler{
		service:  service,
		validate: validator.New(),
		log:      log,
	}
}

// RegisterRoutes registers the merchant routes with the Fiber app.
func (h *MerchantHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/verify-merchant", h.HandleVerifyMerchant)
	router.Post("/new_merchant", h.HandleNewMerchant)
}

var errInvalidBody = errors.New("Invalid request body")

// NewMerchantRequest is the body of POST /new_merchant.
type NewMerchantRequest struct {
	AccessToken string `json:"access_token"`
	models.TraderProfile
}

// HandleVerifyMerchant reports whether the caller is a verified supplier.
func (h *MerchantHandler) HandleVerifyMerchant(c *fiber.Ctx) error {
	token := c.Query("access_token")
	if token == "" {
		token = middleware.AccessToken(c)
	}

	res, err := h.service.VerifyMerchant(c.UserContext(), token)
	if err != nil {
		return respondError(c, h.log, err)
	}

	body := fiber.Map{"message": res.Status.Message()}
	if res.Status == services.VerifyStatusVerified {
		body["cognito_id"] = res.CognitoID
	}
	return c.Status(fiber.StatusOK).JSON(body)
}

// HandleNewMerchant creates or updates the caller's trader profile.
func (h *MerchantHandler) HandleNewMerchant(c *fiber.Ctx) error {
	var req NewMerchantRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			h.log.Debug().Err(err).Msg("invalid new_merchant body")
			return respondError(c, h.log, services.NewCallerInputError(errInvalidBody))
		}
	}
	if req.AccessToken == "" {
		req.AccessToken = middleware.AccessToken(c)
	}
	if req.AccessToken == "" {
		return respondError(c, h.log, services.ErrAccessTokenRequired)
	}

	if err := h.validate.Struct(req); err != nil {
		return respondError(c, h.log, services.NewCallerInputError(validationError(err)))
	}

	res, err := h.service.RegisterMerchant(c.UserContext(), req.AccessToken, req.TraderProfile)
	if err != nil {
		return respondError(c, h.log, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message":     "User updated successfully",
		"cognito_id":  res.CognitoID,
		"trader_type": res.TraderType,
	})
}

func validationError(err error) error {
	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}
	msgs := make([]string, 0, len(validationErrors))
	for _, e := range validationErrors {
		msgs = append(msgs, fmt.Sprintf("Field '%s' failed on the '%s' tag", e.Field(), e.Tag()))
	}
	return fmt.Errorf("Validation failed: %s", strings.Join(msgs, "; "))
}
