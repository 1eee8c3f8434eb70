package controller

import (
	"errors"

	"hiking-portal-be/internal/pkg/serverutils"
	"hiking-portal-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IProfileController interface {
	RegisterRoutes(r fiber.Router)
	GetRetentionStatus(ctx *fiber.Ctx) error
}

type profileController struct {
	retention service.IRetentionService
	activity  service.IActivityService
}

func NewProfileController(retention service.IRetentionService, activity service.IActivityService) IProfileController {
	return &profileController{
		retention: retention,
		activity:  activity,
	}
}

func (c *profileController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/profile")
	h.Use(serverutils.JwtMiddleware, c.trackActivity)

	h.Get("/retention-status", c.GetRetentionStatus)
}

// trackActivity records the authenticated member as seen. Runs after auth so
// only genuine member traffic counts as activity.
func (c *profileController) trackActivity(ctx *fiber.Ctx) error {
	if userId, err := uuid.Parse(localString(ctx, "user_id")); err == nil {
		c.activity.Record(ctx.Context(), userId)
	}
	return ctx.Next()
}

// GetRetentionStatus lets a member see their own lifecycle position, so the
// warning email never has to be the first time they hear about the policy.
func (c *profileController) GetRetentionStatus(ctx *fiber.Ctx) error {
	userId, err := uuid.Parse(localString(ctx, "user_id"))
	if err != nil {
		return ctx.Status(fiber.StatusUnauthorized).JSON(serverutils.ErrorResponse(401, "Invalid user identity"))
	}

	status, err := c.retention.GetUserRetentionStatus(ctx.Context(), userId)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			return ctx.Status(fiber.StatusNotFound).JSON(serverutils.ErrorResponse(404, "User not found"))
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(serverutils.ErrorResponse(500, err.Error()))
	}
	return ctx.JSON(serverutils.SuccessResponse("Retention status", status))
}
