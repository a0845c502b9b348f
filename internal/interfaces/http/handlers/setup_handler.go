package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"revebot.backend/internal/domain/entities"
	domainerrors "revebot.backend/internal/domain/errors"
	"revebot.backend/internal/infrastructure/metrics"
	"revebot.backend/internal/interfaces/http/middleware"
	"revebot.backend/internal/interfaces/http/response"
	"revebot.backend/internal/usecases"
)

// SetupHandler exposes the onboarding wizard endpoints
type SetupHandler struct {
	setupUsecase *usecases.SetupUsecase
}

// NewSetupHandler creates a new setup handler
func NewSetupHandler(setupUsecase *usecases.SetupUsecase) *SetupHandler {
	return &SetupHandler{setupUsecase: setupUsecase}
}

func (h *SetupHandler) merchantID(c *gin.Context) (uuid.UUID, bool) {
	merchantID, ok := middleware.GetMerchantID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "merchant not authenticated"})
		return uuid.Nil, false
	}
	return merchantID, true
}

// form renders either the step prefill or the silent redirect for a merchant
// who has not unlocked the step yet
func form(c *gin.Context, formData interface{}, blocked *entities.StepResult, err error) {
	if err != nil {
		response.Error(c, err)
		return
	}
	if blocked != nil {
		response.Success(c, http.StatusOK, blocked)
		return
	}
	response.Success(c, http.StatusOK, formData)
}

func observe(step string, result *entities.StepResult, err error) {
	switch {
	case err != nil:
		var fieldErrs domainerrors.FieldErrors
		if errors.As(err, &fieldErrs) || errors.Is(err, domainerrors.ErrMalformedTiers) {
			metrics.StepSubmissionsTotal.WithLabelValues(step, metrics.OutcomeInvalid).Inc()
		} else {
			metrics.StepSubmissionsTotal.WithLabelValues(step, metrics.OutcomeError).Inc()
		}
	case result.Redirect == entities.RedirectPending:
		metrics.StepSubmissionsTotal.WithLabelValues(step, metrics.OutcomeSaved).Inc()
		metrics.MerchantsSubmittedTotal.Inc()
	default:
		metrics.StepSubmissionsTotal.WithLabelValues(step, metrics.OutcomeSaved).Inc()
	}
}

// GetStep1 returns the business-info screen prefill
// GET /api/v1/setup/step1
func (h *SetupHandler) GetStep1(c *gin.Context) {
	merchantID, ok := h.merchantID(c)
	if !ok {
		return
	}
	formData, blocked, err := h.setupUsecase.Step1Form(c.Request.Context(), merchantID)
	form(c, formData, blocked, err)
}

// SubmitStep1 handles the business-info screen submission
// POST /api/v1/setup/step1
func (h *SetupHandler) SubmitStep1(c *gin.Context) {
	merchantID, ok := h.merchantID(c)
	if !ok {
		return
	}

	var input entities.Step1Input
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.setupUsecase.SubmitStep1(c.Request.Context(), merchantID, &input)
	observe("1", result, err)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, result)
}

// GetStep2 returns the notification-channels screen prefill
// GET /api/v1/setup/step2
func (h *SetupHandler) GetStep2(c *gin.Context) {
	merchantID, ok := h.merchantID(c)
	if !ok {
		return
	}
	formData, blocked, err := h.setupUsecase.Step2Form(c.Request.Context(), merchantID)
	form(c, formData, blocked, err)
}

// SubmitStep2 handles the notification-channels screen submission
// POST /api/v1/setup/step2
func (h *SetupHandler) SubmitStep2(c *gin.Context) {
	merchantID, ok := h.merchantID(c)
	if !ok {
		return
	}

	var input entities.Step2Input
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.setupUsecase.SubmitStep2(c.Request.Context(), merchantID, &input)
	observe("2", result, err)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, result)
}

// GetStep3 returns the chat-tier screen prefill
// GET /api/v1/setup/step3
func (h *SetupHandler) GetStep3(c *gin.Context) {
	merchantID, ok := h.merchantID(c)
	if !ok {
		return
	}
	formData, blocked, err := h.setupUsecase.Step3Form(c.Request.Context(), merchantID)
	form(c, formData, blocked, err)
}

// SubmitStep3 handles the chat-tier screen submission
// POST /api/v1/setup/step3
func (h *SetupHandler) SubmitStep3(c *gin.Context) {
	merchantID, ok := h.merchantID(c)
	if !ok {
		return
	}

	var input entities.Step3Input
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.setupUsecase.SubmitStep3(c.Request.Context(), merchantID, &input)
	observe("3", result, err)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, result)
}

// GetStep4 returns the package-selection screen prefill
// GET /api/v1/setup/step4
func (h *SetupHandler) GetStep4(c *gin.Context) {
	merchantID, ok := h.merchantID(c)
	if !ok {
		return
	}
	formData, blocked, err := h.setupUsecase.Step4Form(c.Request.Context(), merchantID)
	form(c, formData, blocked, err)
}

// SubmitStep4 handles the package-selection screen submission
// POST /api/v1/setup/step4
func (h *SetupHandler) SubmitStep4(c *gin.Context) {
	merchantID, ok := h.merchantID(c)
	if !ok {
		return
	}

	var input entities.Step4Input
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.setupUsecase.SubmitStep4(c.Request.Context(), merchantID, &input)
	observe("4", result, err)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, result)
}

// GetStatus summarises onboarding state for the current merchant
// GET /api/v1/setup/status
func (h *SetupHandler) GetStatus(c *gin.Context) {
	merchantID, ok := h.merchantID(c)
	if !ok {
		return
	}

	status, err := h.setupUsecase.SetupStatus(c.Request.Context(), merchantID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, status)
}
