package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/packlane-io/packlane/internal/application/catalog/usecases"
	"github.com/packlane-io/packlane/internal/shared/constants"
	"github.com/packlane-io/packlane/internal/shared/logger"
	"github.com/packlane-io/packlane/internal/shared/utils"
)

// CatalogHandler handles HTTP requests for the content catalog
type CatalogHandler struct {
	createPackUC    createPackUseCase
	createSubUnitUC createSubUnitUseCase
	listPacksUC     listPacksUseCase
	listSubUnitsUC  listSubUnitsUseCase
	publishPackUC   publishPackUseCase
	logger          logger.Interface
}

// NewCatalogHandler creates a new catalog handler
func NewCatalogHandler(
	createPackUC createPackUseCase,
	createSubUnitUC createSubUnitUseCase,
	listPacksUC listPacksUseCase,
	listSubUnitsUC listSubUnitsUseCase,
	publishPackUC publishPackUseCase,
	logger logger.Interface,
) *CatalogHandler {
	return &CatalogHandler{
		createPackUC:    createPackUC,
		createSubUnitUC: createSubUnitUC,
		listPacksUC:     listPacksUC,
		listSubUnitsUC:  listSubUnitsUC,
		publishPackUC:   publishPackUC,
		logger:          logger,
	}
}

type createPackBody struct {
	Title       string `json:"title" validate:"required,max=200"`
	Slug        string `json:"slug" validate:"required,max=200"`
	Description string `json:"description" validate:"max=2000"`
	PriceCents  uint   `json:"price_cents" validate:"required,gt=0"`
	Publish     bool   `json:"publish"`
}

type createSubUnitBody struct {
	Title      string `json:"title" validate:"required,max=200"`
	Slug       string `json:"slug" validate:"required,max=200"`
	PriceCents uint   `json:"price_cents" validate:"required,gt=0"`
	SortOrder  int    `json:"sort_order"`
}

type publishPackBody struct {
	Published *bool `json:"published" validate:"required"`
}

// ListPacks handles GET /packs. Unpublished packs are visible to admins only.
func (h *CatalogHandler) ListPacks(c *gin.Context) {
	publishedOnly := c.GetString(constants.ContextKeyUserRole) != constants.RoleAdmin

	result, err := h.listPacksUC.Execute(c.Request.Context(), usecases.ListPacksQuery{
		PublishedOnly: publishedOnly,
	})
	if err != nil {
		h.logger.Errorw("failed to list packs", "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", gin.H{
		"packs": result.Packs,
	})
}

// ListSubUnits handles GET /packs/:id/subunits
func (h *CatalogHandler) ListSubUnits(c *gin.Context) {
	packID, err := utils.ParseUintParam(c, "id", "pack")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.listSubUnitsUC.Execute(c.Request.Context(), usecases.ListSubUnitsQuery{
		PackID: packID,
	})
	if err != nil {
		h.logger.Warnw("failed to list sub-units", "pack_id", packID, "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", gin.H{
		"sub_units": result.SubUnits,
	})
}

// CreatePack handles POST /admin/packs
func (h *CatalogHandler) CreatePack(c *gin.Context) {
	var body createPackBody
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := utils.ValidateStruct(&body); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.createPackUC.Execute(c.Request.Context(), usecases.CreatePackCommand{
		Title:       body.Title,
		Slug:        body.Slug,
		Description: body.Description,
		PriceCents:  body.PriceCents,
		Publish:     body.Publish,
	})
	if err != nil {
		h.logger.Warnw("pack creation failed", "slug", body.Slug, "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, gin.H{"pack": result.Pack}, "pack created")
}

// CreateSubUnit handles POST /admin/packs/:id/subunits
func (h *CatalogHandler) CreateSubUnit(c *gin.Context) {
	packID, err := utils.ParseUintParam(c, "id", "pack")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var body createSubUnitBody
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := utils.ValidateStruct(&body); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.createSubUnitUC.Execute(c.Request.Context(), usecases.CreateSubUnitCommand{
		PackID:     packID,
		Title:      body.Title,
		Slug:       body.Slug,
		PriceCents: body.PriceCents,
		SortOrder:  body.SortOrder,
	})
	if err != nil {
		h.logger.Warnw("sub-unit creation failed", "pack_id", packID, "slug", body.Slug, "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, gin.H{"sub_unit": result.SubUnit}, "sub-unit created")
}

// PublishPack handles PUT /admin/packs/:id/publish
func (h *CatalogHandler) PublishPack(c *gin.Context) {
	packID, err := utils.ParseUintParam(c, "id", "pack")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var body publishPackBody
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := utils.ValidateStruct(&body); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.publishPackUC.Execute(c.Request.Context(), usecases.PublishPackCommand{
		PackID:    packID,
		Published: *body.Published,
	})
	if err != nil {
		h.logger.Warnw("pack publish toggle failed", "pack_id", packID, "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "pack updated", gin.H{"pack": result.Pack})
}
