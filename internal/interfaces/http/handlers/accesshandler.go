package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/packlane-io/packlane/internal/application/purchase/dto"
	"github.com/packlane-io/packlane/internal/application/purchase/usecases"
	"github.com/packlane-io/packlane/internal/domain/purchase"
	"github.com/packlane-io/packlane/internal/shared/logger"
	"github.com/packlane-io/packlane/internal/shared/utils"
)

// AccessHandler handles HTTP requests for entitlement checks
type AccessHandler struct {
	checkAccessUC checkAccessUseCase
	logger        logger.Interface
}

// NewAccessHandler creates a new access handler
func NewAccessHandler(checkAccessUC checkAccessUseCase, logger logger.Interface) *AccessHandler {
	return &AccessHandler{
		checkAccessUC: checkAccessUC,
		logger:        logger,
	}
}

// CheckAccess handles GET /check_access
// Query parameters:
//   - user_id: the user whose access is being checked
//   - target_kind: pack or subunit
//   - target_id: the unit's numeric ID
func (h *AccessHandler) CheckAccess(c *gin.Context) {
	userID, err := utils.ParseUintQuery(c, "user_id")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	targetID, err := utils.ParseUintQuery(c, "target_id")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	kind := purchase.UnitKind(c.DefaultQuery("target_kind", purchase.UnitKindPack.String()))
	if !kind.IsValid() {
		utils.ErrorResponse(c, http.StatusBadRequest, "target_kind must be pack or subunit")
		return
	}

	result, err := h.checkAccessUC.Execute(c.Request.Context(), usecases.CheckAccessQuery{
		UserID:     userID,
		TargetKind: kind,
		TargetID:   targetID,
	})
	if err != nil {
		h.logger.Warnw("access check failed",
			"user_id", userID,
			"target_kind", kind.String(),
			"target_id", targetID,
			"error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", dto.DecisionToDTO(result.Decision))
}
