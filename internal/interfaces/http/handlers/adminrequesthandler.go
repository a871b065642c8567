package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/packlane-io/packlane/internal/application/purchase/dto"
	"github.com/packlane-io/packlane/internal/domain/purchase"
	"github.com/packlane-io/packlane/internal/shared/id"
	"github.com/packlane-io/packlane/internal/shared/logger"
	"github.com/packlane-io/packlane/internal/shared/utils"
)

// AdminRequestHandler handles the administrator's review queue
type AdminRequestHandler struct {
	reviewRequestUC reviewRequestUseCase
	listPendingUC   listPendingRequestsUseCase
	logger          logger.Interface
}

// NewAdminRequestHandler creates a new admin request handler
func NewAdminRequestHandler(
	reviewRequestUC reviewRequestUseCase,
	listPendingUC listPendingRequestsUseCase,
	logger logger.Interface,
) *AdminRequestHandler {
	return &AdminRequestHandler{
		reviewRequestUC: reviewRequestUC,
		listPendingUC:   listPendingUC,
		logger:          logger,
	}
}

type reviewRequestBody struct {
	Status string `json:"status" validate:"required,oneof=accepted rejected"`
}

// ListPending handles GET /admin/requests
func (h *AdminRequestHandler) ListPending(c *gin.Context) {
	result, err := h.listPendingUC.Execute(c.Request.Context())
	if err != nil {
		h.logger.Errorw("failed to list pending requests", "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", gin.H{
		"requests": result.Requests,
	})
}

// Review handles PUT /admin/requests/:id/status
func (h *AdminRequestHandler) Review(c *gin.Context) {
	sid, err := utils.ParseSIDParam(c, "id", id.PrefixPurchaseRequest, "purchase request")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var body reviewRequestBody
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := utils.ValidateStruct(&body); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.reviewRequestUC.ExecuteBySID(c.Request.Context(), sid, purchase.RequestStatus(body.Status))
	if err != nil {
		h.logger.Warnw("request review failed",
			"request_sid", sid,
			"verdict", body.Status,
			"error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "request reviewed", gin.H{
		"request": dto.RequestToDTO(result.Request, ""),
	})
}
