package controller

import (
	"context"
	"errors"
	"strconv"

	"hiking-portal-be/internal/dto"
	"hiking-portal-be/internal/pkg/logger"
	"hiking-portal-be/internal/pkg/serverutils"
	"hiking-portal-be/internal/scheduler"
	"hiking-portal-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IRetentionController interface {
	RegisterRoutes(r fiber.Router)
	GetStatistics(ctx *fiber.Ctx) error
	RunCheck(ctx *fiber.Ctx) error
	ExtendRetention(ctx *fiber.Ctx) error
	GetLogs(ctx *fiber.Ctx) error
	GetSystemLogs(ctx *fiber.Ctx) error
	GetSystemLogById(ctx *fiber.Ctx) error
	ToggleScheduler(ctx *fiber.Ctx) error
	GetSchedulerStatus(ctx *fiber.Ctx) error
}

type retentionController struct {
	service   service.IRetentionService
	scheduler *scheduler.RetentionScheduler
	sweepLog  logger.ILogger
}

func NewRetentionController(service service.IRetentionService, scheduler *scheduler.RetentionScheduler, sweepLog logger.ILogger) IRetentionController {
	return &retentionController{
		service:   service,
		scheduler: scheduler,
		sweepLog:  sweepLog,
	}
}

func (c *retentionController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/admin/retention")
	h.Use(serverutils.JwtMiddleware, serverutils.RequireAdmin)

	h.Get("/statistics", c.GetStatistics)
	h.Post("/run-check", c.RunCheck)
	h.Post("/extend/:userId", c.ExtendRetention)
	h.Get("/logs", c.GetLogs)
	h.Get("/system-logs", c.GetSystemLogs)
	h.Get("/system-logs/:id", c.GetSystemLogById)
	h.Get("/service", c.GetSchedulerStatus)
	h.Post("/service", c.ToggleScheduler)
}

func (c *retentionController) GetStatistics(ctx *fiber.Ctx) error {
	stats, err := c.service.GetRetentionStatistics(ctx.Context())
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(serverutils.ErrorResponse(500, err.Error()))
	}
	return ctx.JSON(serverutils.SuccessResponse("Retention statistics", stats))
}

// RunCheck triggers both sweeps immediately. Partial failures inside a sweep
// still return 200: they are reported in the body, not as an HTTP error.
func (c *retentionController) RunCheck(ctx *fiber.Ctx) error {
	result, err := c.service.RunManualCheck(ctx.Context())
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(serverutils.ErrorResponse(500, err.Error()))
	}
	return ctx.JSON(serverutils.SuccessResponse("Retention check completed", result))
}

func (c *retentionController) ExtendRetention(ctx *fiber.Ctx) error {
	userId, err := uuid.Parse(ctx.Params("userId"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid user ID"))
	}

	var req dto.ExtendRetentionRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid request body"))
	}
	if err := serverutils.ValidateRequest(&req); err != nil {
		return err
	}

	adminId, err := uuid.Parse(localString(ctx, "user_id"))
	if err != nil {
		return ctx.Status(fiber.StatusUnauthorized).JSON(serverutils.ErrorResponse(401, "Invalid admin identity"))
	}

	resp, err := c.service.ExtendRetention(ctx.Context(), userId, req, adminId)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			return ctx.Status(fiber.StatusNotFound).JSON(serverutils.ErrorResponse(404, "User not found"))
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(serverutils.ErrorResponse(500, err.Error()))
	}
	return ctx.JSON(serverutils.SuccessResponse("Retention extended", resp))
}

func (c *retentionController) GetLogs(ctx *fiber.Ctx) error {
	limit, _ := strconv.Atoi(ctx.Query("limit", "50"))
	offset, _ := strconv.Atoi(ctx.Query("offset", "0"))
	action := ctx.Query("action", "")

	var userId *uuid.UUID
	if raw := ctx.Query("user_id", ""); raw != "" {
		parsed, err := uuid.Parse(raw)
		if err != nil {
			return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid user_id filter"))
		}
		userId = &parsed
	}

	logs, err := c.service.GetRetentionLogs(ctx.Context(), userId, action, limit, offset)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(serverutils.ErrorResponse(500, err.Error()))
	}
	return ctx.JSON(serverutils.SuccessResponse("Retention logs", logs))
}

// GetSystemLogs reads the sweep log file itself, as opposed to GetLogs which
// queries the audit trail in the database. Admins use it to inspect sweep
// runs that failed before writing anything durable.
func (c *retentionController) GetSystemLogs(ctx *fiber.Ctx) error {
	limit, _ := strconv.Atoi(ctx.Query("limit", "50"))
	offset, _ := strconv.Atoi(ctx.Query("offset", "0"))
	level := ctx.Query("level", "")

	entries, err := c.sweepLog.GetLogs(level, limit, offset)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(serverutils.ErrorResponse(500, err.Error()))
	}
	return ctx.JSON(serverutils.SuccessResponse("System logs", entries))
}

func (c *retentionController) GetSystemLogById(ctx *fiber.Ctx) error {
	entry, err := c.sweepLog.GetLogById(ctx.Params("id"))
	if err != nil {
		if errors.Is(err, logger.ErrLogNotFound) {
			return ctx.Status(fiber.StatusNotFound).JSON(serverutils.ErrorResponse(404, "Log entry not found"))
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(serverutils.ErrorResponse(500, err.Error()))
	}
	return ctx.JSON(serverutils.SuccessResponse("System log entry", entry))
}

func (c *retentionController) ToggleScheduler(ctx *fiber.Ctx) error {
	var req dto.SchedulerToggleRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid request body"))
	}
	if err := serverutils.ValidateRequest(&req); err != nil {
		return err
	}

	switch req.Action {
	case "start":
		// Background context: the cadences must outlive this HTTP request.
		if err := c.scheduler.Start(context.Background()); err != nil {
			return ctx.Status(fiber.StatusInternalServerError).JSON(serverutils.ErrorResponse(500, err.Error()))
		}
	case "stop":
		c.scheduler.Stop()
	}

	return ctx.JSON(serverutils.SuccessResponse("Scheduler "+req.Action+" completed", c.schedulerStatus()))
}

func (c *retentionController) GetSchedulerStatus(ctx *fiber.Ctx) error {
	return ctx.JSON(serverutils.SuccessResponse("Scheduler status", c.schedulerStatus()))
}

func (c *retentionController) schedulerStatus() dto.SchedulerStatusResponse {
	return dto.SchedulerStatusResponse{
		Running: c.scheduler.IsRunning(),
		NextRun: c.scheduler.NextRun(),
	}
}

func localString(ctx *fiber.Ctx, key string) string {
	v, _ := ctx.Locals(key).(string)
	return v
}
