package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/packlane-io/packlane/internal/application/purchase/dto"
	"github.com/packlane-io/packlane/internal/application/purchase/usecases"
	"github.com/packlane-io/packlane/internal/domain/purchase"
	"github.com/packlane-io/packlane/internal/shared/id"
	"github.com/packlane-io/packlane/internal/shared/logger"
	"github.com/packlane-io/packlane/internal/shared/utils"
)

// PurchaseHandler handles HTTP requests for the purchase-request workflow
type PurchaseHandler struct {
	submitRequestUC submitRequestUseCase
	listRequestsUC  listRequestsUseCase
	attachReceiptUC attachReceiptUseCase
	logger          logger.Interface
}

// NewPurchaseHandler creates a new purchase handler
func NewPurchaseHandler(
	submitRequestUC submitRequestUseCase,
	listRequestsUC listRequestsUseCase,
	attachReceiptUC attachReceiptUseCase,
	logger logger.Interface,
) *PurchaseHandler {
	return &PurchaseHandler{
		submitRequestUC: submitRequestUC,
		listRequestsUC:  listRequestsUC,
		attachReceiptUC: attachReceiptUC,
		logger:          logger,
	}
}

type submitPackRequestBody struct {
	PackID   uint           `json:"pack_id" validate:"required,gt=0"`
	Metadata map[string]any `json:"metadata"`
}

type submitSubUnitRequestBody struct {
	SubUnitID uint           `json:"sub_unit_id" validate:"required,gt=0"`
	Metadata  map[string]any `json:"metadata"`
}

type attachReceiptBody struct {
	ReceiptRef string `json:"receipt_ref" validate:"required,max=500"`
}

// SubmitPackRequest handles POST /requests
func (h *PurchaseHandler) SubmitPackRequest(c *gin.Context) {
	var body submitPackRequestBody
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := utils.ValidateStruct(&body); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	h.submit(c, purchase.UnitKindPack, body.PackID, body.Metadata)
}

// SubmitSubUnitRequest handles POST /subunit-requests
func (h *PurchaseHandler) SubmitSubUnitRequest(c *gin.Context) {
	var body submitSubUnitRequestBody
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := utils.ValidateStruct(&body); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	h.submit(c, purchase.UnitKindSubUnit, body.SubUnitID, body.Metadata)
}

func (h *PurchaseHandler) submit(c *gin.Context, kind purchase.UnitKind, targetID uint, metadata map[string]any) {
	userID, ok := currentUserID(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, "user not authenticated")
		return
	}

	result, err := h.submitRequestUC.Execute(c.Request.Context(), usecases.SubmitRequestCommand{
		UserID:     userID,
		TargetKind: kind,
		TargetID:   targetID,
		Metadata:   metadata,
	})
	if err != nil {
		h.logger.Warnw("purchase request submission failed",
			"user_id", userID,
			"target_kind", kind.String(),
			"target_id", targetID,
			"error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, gin.H{
		"request": dto.RequestToDTO(result.Request, ""),
	}, "purchase request submitted")
}

// ListPackRequests handles GET /requests
func (h *PurchaseHandler) ListPackRequests(c *gin.Context) {
	h.list(c, purchase.UnitKindPack)
}

// ListSubUnitRequests handles GET /subunit-requests
func (h *PurchaseHandler) ListSubUnitRequests(c *gin.Context) {
	h.list(c, purchase.UnitKindSubUnit)
}

func (h *PurchaseHandler) list(c *gin.Context, kind purchase.UnitKind) {
	userID, ok := currentUserID(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, "user not authenticated")
		return
	}

	result, err := h.listRequestsUC.Execute(c.Request.Context(), usecases.ListRequestsQuery{
		UserID: userID,
		Kind:   kind,
	})
	if err != nil {
		h.logger.Errorw("failed to list purchase requests", "user_id", userID, "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", gin.H{
		"requests": result.Requests,
	})
}

// AttachReceipt handles POST /requests/:id/receipt
func (h *PurchaseHandler) AttachReceipt(c *gin.Context) {
	sid, err := utils.ParseSIDParam(c, "id", id.PrefixPurchaseRequest, "purchase request")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var body attachReceiptBody
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := utils.ValidateStruct(&body); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.attachReceiptUC.ExecuteBySID(c.Request.Context(), sid, body.ReceiptRef)
	if err != nil {
		h.logger.Warnw("receipt attachment failed", "request_sid", sid, "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "receipt attached", gin.H{
		"receipt": dto.ReceiptToDTO(result.Receipt),
	})
}
