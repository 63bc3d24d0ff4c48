package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/comitanigiacomo/kanso-sleep-engine/internal/core/domain"
	"github.com/comitanigiacomo/kanso-sleep-engine/internal/core/services"
)

type StatsHandler struct {
	svc    *services.StatsService
	logger *zap.Logger
}

func NewStatsHandler(svc *services.StatsService, logger *zap.Logger) *StatsHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StatsHandler{svc: svc, logger: logger}
}

type predictRequest struct {
	SleepDuration *float64 `json:"sleep_duration" binding:"required"`
	DeepSleep     float64  `json:"deep_sleep"`
	RemSleep      float64  `json:"rem_sleep"`
	LightSleep    float64  `json:"light_sleep"`
	Interruptions int      `json:"interruptions" binding:"gte=0"`
}

func (h *StatsHandler) RegisterRoutes(r *gin.RouterGroup) {
	sleep := r.Group("/sleep")
	{
		sleep.GET("/overview", h.Overview)
		sleep.GET("/weeks", h.Weeks)
		sleep.GET("/weeks/:key", h.Week)
		sleep.POST("/predict", h.Predict)
	}
}

// Overview godoc
// @Summary      Dashboard data: last night, recent days, averages and score
// @Tags         stats
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  domain.SleepOverview
// @Failure      503  {object}  errorResponse
// @Router       /sleep/overview [get]
func (h *StatsHandler) Overview(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	overview, err := h.svc.GetUserSleepData(c.Request.Context(), userID)
	if err != nil {
		handleError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, overview)
}

// Weeks godoc
// @Summary      Weekly records with averages and quality tier
// @Tags         stats
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   domain.WeekRecord
// @Failure      503  {object}  errorResponse
// @Router       /sleep/weeks [get]
func (h *StatsHandler) Weeks(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	weeks, err := h.svc.GetWeeklyRecords(c.Request.Context(), userID)
	if err != nil {
		handleError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, weeks)
}

// Week godoc
// @Summary      A single week by key, e.g. 2024-W7
// @Tags         stats
// @Produce      json
// @Security     BearerAuth
// @Param        key  path      string  true  "Week key"
// @Success      200  {object}  domain.WeekRecord
// @Failure      400  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /sleep/weeks/{key} [get]
func (h *StatsHandler) Week(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	week, err := h.svc.GetWeek(c.Request.Context(), userID, c.Param("key"))
	if err != nil {
		handleError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, week)
}

// Predict godoc
// @Summary      Predict the quality score of a night
// @Tags         stats
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      predictRequest  true  "Night to score"
// @Success      200   {object}  domain.Prediction
// @Failure      400   {object}  errorResponse
// @Router       /sleep/predict [post]
func (h *StatsHandler) Predict(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var req predictRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	prediction, err := h.svc.PredictScore(c.Request.Context(), userID, domain.SleepCandidate{
		SleepDuration: *req.SleepDuration,
		DeepSleep:     req.DeepSleep,
		RemSleep:      req.RemSleep,
		LightSleep:    req.LightSleep,
		Interruptions: req.Interruptions,
	})
	if err != nil {
		handleError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, prediction)
}
