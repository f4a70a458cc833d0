package http

import (
	"crypto/subtle"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/suchimauz/booking-scheduling-engine/internal/config"
	"github.com/suchimauz/booking-scheduling-engine/internal/core/domain"
	"github.com/suchimauz/booking-scheduling-engine/internal/core/ports/in"
	"github.com/suchimauz/booking-scheduling-engine/internal/core/ports/out"
)

type SchedulingController struct {
	useCase in.SchedulingUseCase
	cfg     *config.Config
	logger  out.LoggerPort
}

func NewSchedulingController(useCase in.SchedulingUseCase, cfg *config.Config, logger out.LoggerPort) *SchedulingController {
	return &SchedulingController{
		useCase: useCase,
		cfg:     cfg,
		logger:  logger,
	}
}

func (c *SchedulingController) RegisterRoutes(router *gin.Engine) {
	api := router.Group("/api/v1")
	api.Use(c.basicAuth())
	{
		api.POST("/availability/check", c.checkAvailability)
		api.POST("/availability/suggest", c.suggestSlots)
		api.POST("/bookings", c.bookAppointment)
	}
}

type CheckAvailabilityRequest struct {
	ServiceID       string `json:"serviceId" binding:"required"`
	ServiceDuration int    `json:"serviceDuration" binding:"required,min=1"`
	RequestedDate   string `json:"requestedDate" binding:"required"`
	RequestedTime   string `json:"requestedTime" binding:"required"`
	StaffID         string `json:"staffId"`
	CustomerID      string `json:"customerId" binding:"required"`
	TenantID        string `json:"tenantId"`
	Timezone        string `json:"timezone"`
	BufferTime      int    `json:"bufferTime"`
}

type SuggestSlotsRequest struct {
	CheckAvailabilityRequest
	MaxSuggestions int `json:"maxSuggestions"`
}

func (r CheckAvailabilityRequest) toDomain() domain.BookingRequest {
	return domain.BookingRequest{
		ServiceID:       r.ServiceID,
		ServiceDuration: r.ServiceDuration,
		RequestedDate:   r.RequestedDate,
		RequestedTime:   r.RequestedTime,
		StaffID:         r.StaffID,
		CustomerID:      r.CustomerID,
		TenantID:        r.TenantID,
		Timezone:        r.Timezone,
		BufferTime:      r.BufferTime,
	}
}

func (c *SchedulingController) checkAvailability(ctx *gin.Context) {
	var req CheckAvailabilityRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := c.useCase.CheckAvailability(ctx.Request.Context(), req.toDomain())
	if err != nil {
		c.respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, result)
}

func (c *SchedulingController) suggestSlots(ctx *gin.Context) {
	var req SuggestSlotsRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	slots, err := c.useCase.SuggestSlots(ctx.Request.Context(), req.toDomain(), req.MaxSuggestions)
	if err != nil {
		c.respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"suggestedSlots": slots})
}

func (c *SchedulingController) bookAppointment(ctx *gin.Context) {
	var req CheckAvailabilityRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := c.useCase.BookAppointment(ctx.Request.Context(), req.toDomain())
	if err != nil {
		c.respondError(ctx, err)
		return
	}

	// Занятый слот — это не ошибка сервера, клиент получает причину и альтернативы
	if !result.Success {
		ctx.JSON(http.StatusConflict, result)
		return
	}

	ctx.JSON(http.StatusCreated, result)
}

// Ошибки разбора запроса отдаем как 400, прочее — как 500
func (c *SchedulingController) respondError(ctx *gin.Context, err error) {
	if errors.Is(err, domain.ErrInvalidRequest) || errors.Is(err, domain.ErrInvalidConfiguration) {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.logger.Error("http.request.failed", out.LogFields{
		"path":  ctx.FullPath(),
		"error": err.Error(),
	})
	ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
}

func (c *SchedulingController) basicAuth() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		username, password, hasAuth := ctx.Request.BasicAuth()
		if !hasAuth {
			ctx.Header("WWW-Authenticate", "Basic realm=Authorization Required")
			ctx.AbortWithStatus(http.StatusUnauthorized)
			return
		}

		for _, client := range c.cfg.Auth.BasicClients {
			if subtle.ConstantTimeCompare([]byte(username), []byte(client.Username)) == 1 &&
				subtle.ConstantTimeCompare([]byte(password), []byte(client.Password)) == 1 {
				ctx.Next()
				return
			}
		}

		ctx.Header("WWW-Authenticate", "Basic realm=Authorization Required")
		ctx.AbortWithStatus(http.StatusUnauthorized)
	}
}
