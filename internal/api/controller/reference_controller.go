package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/minwoo-jeong/asreco/internal/api/response"
	"github.com/minwoo-jeong/asreco/internal/service"
)

// ReferenceController serves the static lookup tables the server loaded at
// startup, so the dashboard can show what uploads are reconciled against.
type ReferenceController struct {
	service *service.AnalysisService
}

func NewReferenceController(s *service.AnalysisService) *ReferenceController {
	return &ReferenceController{service: s}
}

// Assets returns the asset registry table.
func (ctrl *ReferenceController) Assets(c *gin.Context) {
	refs := ctrl.service.References()
	if refs.Assets == nil {
		response.Error(c, http.StatusNotFound, "asset registry not loaded")
		return
	}
	response.Success(c, tablePayload(refs.Assets, 0, -1))
}

// Org returns the organization chart table.
func (ctrl *ReferenceController) Org(c *gin.Context) {
	refs := ctrl.service.References()
	if refs.Org == nil {
		response.Error(c, http.StatusNotFound, "organization chart not loaded")
		return
	}
	response.Success(c, tablePayload(refs.Org, 0, -1))
}
