package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/comitanigiacomo/kanso-sleep-engine/internal/adapters/handler/http/middleware"
	"github.com/comitanigiacomo/kanso-sleep-engine/internal/core/domain"
	"github.com/comitanigiacomo/kanso-sleep-engine/internal/core/services"
)

type SleepHandler struct {
	svc    *services.SleepService
	logger *zap.Logger
}

func NewSleepHandler(svc *services.SleepService, logger *zap.Logger) *SleepHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SleepHandler{
		svc:    svc,
		logger: logger,
	}
}

type createSleepEntryRequest struct {
	Date          string  `json:"date" binding:"required"`
	SleepDuration float64 `json:"sleep_duration"`
	DeepSleep     float64 `json:"deep_sleep"`
	RemSleep      float64 `json:"rem_sleep"`
	LightSleep    float64 `json:"light_sleep"`
	Quality       int     `json:"quality"`
	Interruptions int     `json:"interruptions"`
	Bedtime       string  `json:"bedtime"`
	WakeTime      string  `json:"wake_time"`
	Notes         string  `json:"notes"`
}

func (h *SleepHandler) RegisterRoutes(router *gin.RouterGroup) {
	sleep := router.Group("/sleep")
	{
		sleep.POST("/entries", h.Create)
		sleep.GET("/entries", h.List)
		sleep.POST("/defaults", h.GenerateDefaults)
	}
}

// currentUser reads the id set by the auth middleware and answers 401 when missing.
func currentUser(c *gin.Context) (string, bool) {
	userID, ok := middleware.GetUserID(c)
	if !ok || userID == "" {
		c.JSON(http.StatusUnauthorized, errorResponse{Error: "unauthorized"})
		return "", false
	}
	return userID, true
}

// Create godoc
// @Summary      Record a night of sleep
// @Tags         sleep
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createSleepEntryRequest  true  "Sleep entry"
// @Success      201   {object}  domain.SleepEntry
// @Failure      400   {object}  errorResponse
// @Failure      503   {object}  errorResponse
// @Router       /sleep/entries [post]
func (h *SleepHandler) Create(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var req createSleepEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	date, err := domain.ParseDate(req.Date)
	if err != nil {
		handleError(c, h.logger, err)
		return
	}

	entry, err := h.svc.AddSleepEntry(c.Request.Context(), services.CreateSleepEntryInput{
		UserID:        userID,
		Date:          date,
		SleepDuration: req.SleepDuration,
		DeepSleep:     req.DeepSleep,
		RemSleep:      req.RemSleep,
		LightSleep:    req.LightSleep,
		Quality:       req.Quality,
		Interruptions: req.Interruptions,
		Bedtime:       req.Bedtime,
		WakeTime:      req.WakeTime,
		Notes:         req.Notes,
	})
	if err != nil {
		handleError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, entry)
}

// List godoc
// @Summary      List every recorded night, oldest first
// @Tags         sleep
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   domain.SleepEntry
// @Failure      503  {object}  errorResponse
// @Router       /sleep/entries [get]
func (h *SleepHandler) List(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	entries, err := h.svc.ListSleepEntries(c.Request.Context(), userID)
	if err != nil {
		handleError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, entries)
}

// GenerateDefaults godoc
// @Summary      Seed a sample week for a user with no data
// @Tags         sleep
// @Produce      json
// @Security     BearerAuth
// @Success      201  {object}  map[string]bool
// @Success      200  {object}  map[string]bool
// @Router       /sleep/defaults [post]
func (h *SleepHandler) GenerateDefaults(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	generated, err := h.svc.GenerateDefaultSleepData(c.Request.Context(), userID)
	if err != nil {
		handleError(c, h.logger, err)
		return
	}

	status := http.StatusOK
	if generated {
		status = http.StatusCreated
	}
	c.JSON(status, gin.H{"generated": generated})
}
