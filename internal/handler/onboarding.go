package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"fleetsync/internal/service"
)

// OnboardingHandler handles the magic-link onboarding flow.
type OnboardingHandler struct {
	onboardingService *service.OnboardingService
}

// NewOnboardingHandler creates a new OnboardingHandler.
func NewOnboardingHandler(onboardingService *service.OnboardingService) *OnboardingHandler {
	return &OnboardingHandler{onboardingService: onboardingService}
}

// GenerateLinkRequest is the payload for minting an onboarding link.
type GenerateLinkRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// GenerateLink handles POST /api/onboarding/generate-link
func (h *OnboardingHandler) GenerateLink(c *gin.Context) {
	var req GenerateLinkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	link, err := h.onboardingService.GenerateLink(c.Request.Context(), req.Email)
	if err != nil {
		respondError(c, err)
		return
	}
	respondJSON(c, http.StatusCreated, link)
}

// Validate handles GET /api/onboarding/validate/:token
func (h *OnboardingHandler) Validate(c *gin.Context) {
	token, err := h.onboardingService.Validate(c.Request.Context(), c.Param("token"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondJSON(c, http.StatusOK, gin.H{
		"valid":     true,
		"email":     token.Email,
		"expiresAt": token.ExpiresAt.Format(timeFormat),
	})
}

// SubmitApplicationRequest is the applicant-filled onboarding form.
// The magic-link token travels in the body alongside the form fields.
type SubmitApplicationRequest struct {
	Token         string    `json:"token" binding:"required"`
	Name          string    `json:"name" binding:"required"`
	Phone         string    `json:"phone"`
	LicenseNo     string    `json:"licenseNo" binding:"required"`
	LicenseExpiry time.Time `json:"licenseExpiry"`
	PassportNo    string    `json:"passportNo" binding:"required"`
}

// Submit handles POST /api/onboarding/submit
func (h *OnboardingHandler) Submit(c *gin.Context) {
	var req SubmitApplicationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	driver, err := h.onboardingService.Submit(c.Request.Context(), service.SubmitApplicationRequest{
		Token:         req.Token,
		Name:          req.Name,
		Phone:         req.Phone,
		LicenseNo:     req.LicenseNo,
		LicenseExpiry: req.LicenseExpiry,
		PassportNo:    req.PassportNo,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	respondJSON(c, http.StatusCreated, newDriverResponse(driver))
}

// VerifyPassportRequest is the payload for a standalone VEVO check.
type VerifyPassportRequest struct {
	PassportNo string `json:"passportNo" binding:"required"`
}

// VerifyPassport handles POST /api/onboarding/verify
func (h *OnboardingHandler) VerifyPassport(c *gin.Context) {
	var req VerifyPassportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	status, err := h.onboardingService.VerifyPassport(c.Request.Context(), req.PassportNo)
	if err != nil {
		respondError(c, err)
		return
	}
	respondJSON(c, http.StatusOK, gin.H{"vevoStatus": status})
}
