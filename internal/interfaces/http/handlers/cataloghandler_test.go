package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/packlane-io/packlane/internal/application/catalog/dto"
	"github.com/packlane-io/packlane/internal/application/catalog/usecases"
	"github.com/packlane-io/packlane/internal/interfaces/http/handlers/testutil"
	"github.com/packlane-io/packlane/internal/shared/constants"
	"github.com/packlane-io/packlane/internal/shared/errors"
	"github.com/packlane-io/packlane/internal/shared/logger"
)

type mockCreatePackUC struct {
	result  *usecases.CreatePackResult
	err     error
	lastCmd usecases.CreatePackCommand
}

func (m *mockCreatePackUC) Execute(_ context.Context, cmd usecases.CreatePackCommand) (*usecases.CreatePackResult, error) {
	m.lastCmd = cmd
	return m.result, m.err
}

type mockCreateSubUnitUC struct {
	result  *usecases.CreateSubUnitResult
	err     error
	lastCmd usecases.CreateSubUnitCommand
}

func (m *mockCreateSubUnitUC) Execute(_ context.Context, cmd usecases.CreateSubUnitCommand) (*usecases.CreateSubUnitResult, error) {
	m.lastCmd = cmd
	return m.result, m.err
}

type mockListPacksUC struct {
	result    *usecases.ListPacksResult
	err       error
	lastQuery usecases.ListPacksQuery
}

func (m *mockListPacksUC) Execute(_ context.Context, query usecases.ListPacksQuery) (*usecases.ListPacksResult, error) {
	m.lastQuery = query
	return m.result, m.err
}

type mockListSubUnitsUC struct {
	result    *usecases.ListSubUnitsResult
	err       error
	lastQuery usecases.ListSubUnitsQuery
}

func (m *mockListSubUnitsUC) Execute(_ context.Context, query usecases.ListSubUnitsQuery) (*usecases.ListSubUnitsResult, error) {
	m.lastQuery = query
	return m.result, m.err
}

type mockPublishPackUC struct {
	result  *usecases.PublishPackResult
	err     error
	lastCmd usecases.PublishPackCommand
}

func (m *mockPublishPackUC) Execute(_ context.Context, cmd usecases.PublishPackCommand) (*usecases.PublishPackResult, error) {
	m.lastCmd = cmd
	return m.result, m.err
}

func newCatalogHandlerFixture() (*CatalogHandler, *mockCreatePackUC, *mockListPacksUC, *mockPublishPackUC) {
	createPack := &mockCreatePackUC{result: &usecases.CreatePackResult{
		Pack: dto.PackDTO{ID: 4, Title: "Algebra Basics", Slug: "algebra-basics", PriceCents: 4900},
	}}
	listPacks := &mockListPacksUC{result: &usecases.ListPacksResult{
		Packs: []dto.PackDTO{{ID: 4, Title: "Algebra Basics", Slug: "algebra-basics", PriceCents: 4900, Published: true}},
	}}
	publishPack := &mockPublishPackUC{result: &usecases.PublishPackResult{
		Pack: dto.PackDTO{ID: 4, Published: true},
	}}
	h := NewCatalogHandler(createPack, &mockCreateSubUnitUC{}, listPacks, &mockListSubUnitsUC{}, publishPack, logger.NewLogger())
	return h, createPack, listPacks, publishPack
}

func TestCatalogHandler_ListPacks_PublishedOnlyForUsers(t *testing.T) {
	h, _, listPacks, _ := newCatalogHandlerFixture()

	c, w := testutil.NewTestContext(http.MethodGet, "/api/v1/packs", nil)
	testutil.SetAuthContext(c, 1, constants.RoleUser)

	h.ListPacks(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, listPacks.lastQuery.PublishedOnly)
}

func TestCatalogHandler_ListPacks_AdminSeesUnpublished(t *testing.T) {
	h, _, listPacks, _ := newCatalogHandlerFixture()

	c, w := testutil.NewTestContext(http.MethodGet, "/api/v1/packs", nil)
	testutil.SetAuthContext(c, 99, constants.RoleAdmin)

	h.ListPacks(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.False(t, listPacks.lastQuery.PublishedOnly)
}

func TestCatalogHandler_ListSubUnits(t *testing.T) {
	listSubUnits := &mockListSubUnitsUC{result: &usecases.ListSubUnitsResult{
		SubUnits: []dto.SubUnitDTO{{ID: 9, PackID: 4, Title: "Linear Equations", Slug: "linear-equations", PriceCents: 900}},
	}}
	h := NewCatalogHandler(&mockCreatePackUC{}, &mockCreateSubUnitUC{}, &mockListPacksUC{}, listSubUnits, &mockPublishPackUC{}, logger.NewLogger())

	c, w := testutil.NewTestContext(http.MethodGet, "/api/v1/packs/4/subunits", nil)
	testutil.SetURLParam(c, "id", "4")

	h.ListSubUnits(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, uint(4), listSubUnits.lastQuery.PackID)

	var resp testutil.APIResponse
	require.NoError(t, testutil.ParseResponse(w, &resp))
	var data map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(resp.Data, &data))
	assert.Contains(t, data, "sub_units")
}

func TestCatalogHandler_CreatePack(t *testing.T) {
	h, createPack, _, _ := newCatalogHandlerFixture()

	c, w := testutil.NewTestContext(http.MethodPost, "/api/v1/admin/packs", gin.H{
		"title":       "Algebra Basics",
		"slug":        "algebra-basics",
		"price_cents": 4900,
		"publish":     true,
	})
	testutil.SetAuthContext(c, 99, constants.RoleAdmin)

	h.CreatePack(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "algebra-basics", createPack.lastCmd.Slug)
	assert.Equal(t, uint(4900), createPack.lastCmd.PriceCents)
	assert.True(t, createPack.lastCmd.Publish)
}

func TestCatalogHandler_CreatePackValidation(t *testing.T) {
	h, _, _, _ := newCatalogHandlerFixture()

	c, w := testutil.NewTestContext(http.MethodPost, "/api/v1/admin/packs", gin.H{
		"title": "Missing price and slug",
	})
	testutil.SetAuthContext(c, 99, constants.RoleAdmin)

	h.CreatePack(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCatalogHandler_CreatePackDuplicateSlug(t *testing.T) {
	createPack := &mockCreatePackUC{err: errors.NewConflictError("a pack with this slug already exists")}
	h := NewCatalogHandler(createPack, &mockCreateSubUnitUC{}, &mockListPacksUC{}, &mockListSubUnitsUC{}, &mockPublishPackUC{}, logger.NewLogger())

	c, w := testutil.NewTestContext(http.MethodPost, "/api/v1/admin/packs", gin.H{
		"title":       "Algebra Basics",
		"slug":        "algebra-basics",
		"price_cents": 4900,
	})
	testutil.SetAuthContext(c, 99, constants.RoleAdmin)

	h.CreatePack(c)

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestCatalogHandler_CreateSubUnit(t *testing.T) {
	createSubUnit := &mockCreateSubUnitUC{result: &usecases.CreateSubUnitResult{
		SubUnit: dto.SubUnitDTO{ID: 9, PackID: 4, Slug: "linear-equations"},
	}}
	h := NewCatalogHandler(&mockCreatePackUC{}, createSubUnit, &mockListPacksUC{}, &mockListSubUnitsUC{}, &mockPublishPackUC{}, logger.NewLogger())

	c, w := testutil.NewTestContext(http.MethodPost, "/api/v1/admin/packs/4/subunits", gin.H{
		"title":       "Linear Equations",
		"slug":        "linear-equations",
		"price_cents": 900,
		"sort_order":  1,
	})
	testutil.SetAuthContext(c, 99, constants.RoleAdmin)
	testutil.SetURLParam(c, "id", "4")

	h.CreateSubUnit(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, uint(4), createSubUnit.lastCmd.PackID)
	assert.Equal(t, 1, createSubUnit.lastCmd.SortOrder)
}

func TestCatalogHandler_PublishPack(t *testing.T) {
	h, _, _, publishPack := newCatalogHandlerFixture()

	c, w := testutil.NewTestContext(http.MethodPut, "/api/v1/admin/packs/4/publish", gin.H{"published": true})
	testutil.SetAuthContext(c, 99, constants.RoleAdmin)
	testutil.SetURLParam(c, "id", "4")

	h.PublishPack(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, uint(4), publishPack.lastCmd.PackID)
	assert.True(t, publishPack.lastCmd.Published)
}

func TestCatalogHandler_PublishPackRequiresBody(t *testing.T) {
	h, _, _, _ := newCatalogHandlerFixture()

	c, w := testutil.NewTestContext(http.MethodPut, "/api/v1/admin/packs/4/publish", gin.H{})
	testutil.SetAuthContext(c, 99, constants.RoleAdmin)
	testutil.SetURLParam(c, "id", "4")

	h.PublishPack(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
