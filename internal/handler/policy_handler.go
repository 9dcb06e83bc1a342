package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/study-plan-api/internal/models"
	"github.com/noah-isme/study-plan-api/pkg/response"
)

type policyViewer interface {
	View() models.CurriculumPolicyView
}

// PolicyHandler exposes the active curriculum policy.
type PolicyHandler struct {
	policy policyViewer
}

// NewPolicyHandler constructs handler.
func NewPolicyHandler(policy policyViewer) *PolicyHandler {
	return &PolicyHandler{policy: policy}
}

// Get godoc
// @Summary Active curriculum policy
// @Tags Curriculum
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /curriculum/policy [get]
func (h *PolicyHandler) Get(c *gin.Context) {
	response.JSON(c, http.StatusOK, h.policy.View())
}
