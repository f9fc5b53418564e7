package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pamoja-lab/cdf-tracker/dao/model"
	"github.com/pamoja-lab/cdf-tracker/internal/resputil"
	"github.com/pamoja-lab/cdf-tracker/pkg/db/constituency"
)

//nolint:gochecknoinits // This is the standard way to register a gin handler.
func init() {
	Registers = append(Registers, NewConstituencyMgr)
}

type ConstituencyMgr struct {
	name           string
	constituencies *constituency.Service
}

func NewConstituencyMgr(conf *RegisterConfig) Manager {
	return &ConstituencyMgr{
		name:           "constituencies",
		constituencies: constituency.NewService(conf.DB),
	}
}

func (mgr *ConstituencyMgr) GetName() string { return mgr.name }

func (mgr *ConstituencyMgr) RegisterPublic(g *gin.RouterGroup) {
	g.GET("/constituencies", mgr.ListConstituencies)
	g.GET("/constituencies/search", mgr.SearchConstituencies)
	g.GET("/constituencies/:code", mgr.GetConstituency)
}

func (mgr *ConstituencyMgr) RegisterProtected(_ *gin.RouterGroup) {}

func (mgr *ConstituencyMgr) RegisterModerator(g *gin.RouterGroup) {
	g.POST("/constituencies", mgr.CreateConstituency)
	g.PUT("/constituencies/:code", mgr.UpdateConstituency)
	g.DELETE("/constituencies/:code", mgr.DeleteConstituency)
}

func (mgr *ConstituencyMgr) RegisterAdmin(_ *gin.RouterGroup) {}

type (
	ConstituencyCodeReq struct {
		Code string `uri:"code" binding:"required"`
	}

	CreateConstituencyReq struct {
		Code       string   `json:"code" binding:"required"`
		Name       string   `json:"name" binding:"required"`
		County     string   `json:"county" binding:"required"`
		MPName     string   `json:"mp_name" binding:"required"`
		Population *int64   `json:"population"`
		PASScore   *float64 `json:"pas_score"`
	}

	UpdateConstituencyReq struct {
		Name       *string  `json:"name"`
		County     *string  `json:"county"`
		MPName     *string  `json:"mp_name"`
		Population *int64   `json:"population"`
		PASScore   *float64 `json:"pas_score"`
	}

	ConstituencyPageReq struct {
		Offset int `form:"offset"`
		Limit  int `form:"limit"`
	}

	ConstituencySearchReq struct {
		Name   string `form:"name"`
		County string `form:"county"`
	}
)

const defaultConstituencyLimit = 100

// ListConstituencies godoc
// @Summary List constituencies
// @Tags Constituency
// @Produce json
// @Success 200 {object} resputil.Response[[]model.Constituency] "constituencies by code"
// @Router /v1/constituencies [get]
func (mgr *ConstituencyMgr) ListConstituencies(c *gin.Context) {
	var req ConstituencyPageReq
	if err := c.ShouldBindQuery(&req); err != nil {
		resputil.BadRequestError(c, err.Error())
		return
	}
	if req.Limit <= 0 {
		req.Limit = defaultConstituencyLimit
	}

	out, err := mgr.constituencies.List(c, req.Offset, req.Limit)
	if err != nil {
		resputil.Error(c, "list constituencies failed", resputil.NotSpecified)
		return
	}
	resputil.Success(c, out)
}

// SearchConstituencies godoc
// @Summary Search constituencies by name or county substring
// @Tags Constituency
// @Produce json
// @Success 200 {object} resputil.Response[[]model.Constituency] "matches"
// @Router /v1/constituencies/search [get]
func (mgr *ConstituencyMgr) SearchConstituencies(c *gin.Context) {
	var req ConstituencySearchReq
	if err := c.ShouldBindQuery(&req); err != nil {
		resputil.BadRequestError(c, err.Error())
		return
	}

	out, err := mgr.constituencies.Search(c, req.Name, req.County)
	if err != nil {
		resputil.Error(c, "search constituencies failed", resputil.NotSpecified)
		return
	}
	resputil.Success(c, out)
}

// GetConstituency godoc
// @Summary Get a constituency by code
// @Tags Constituency
// @Produce json
// @Param code path string true "constituency code"
// @Success 200 {object} resputil.Response[model.Constituency] "the constituency"
// @Failure 404 {object} resputil.Response[any] "unknown code"
// @Router /v1/constituencies/{code} [get]
func (mgr *ConstituencyMgr) GetConstituency(c *gin.Context) {
	var req ConstituencyCodeReq
	if err := c.ShouldBindUri(&req); err != nil {
		resputil.BadRequestError(c, err.Error())
		return
	}

	out, err := mgr.constituencies.Get(c, req.Code)
	if errors.Is(err, constituency.ErrConstituencyNotFound) {
		resputil.HTTPError(c, http.StatusNotFound, "Constituency not found", resputil.NotFound)
		return
	}
	if err != nil {
		resputil.Error(c, "get constituency failed", resputil.NotSpecified)
		return
	}
	resputil.Success(c, out)
}

// CreateConstituency godoc
// @Summary Create a constituency
// @Tags Constituency
// @Accept json
// @Produce json
// @Security Bearer
// @Param data body CreateConstituencyReq true "constituency fields"
// @Success 201 {object} resputil.Response[model.Constituency] "created constituency"
// @Failure 409 {object} resputil.Response[any] "code already exists"
// @Router /v1/constituencies [post]
func (mgr *ConstituencyMgr) CreateConstituency(c *gin.Context) {
	var req CreateConstituencyReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resputil.BadRequestError(c, err.Error())
		return
	}

	entry := model.Constituency{
		Code:       req.Code,
		Name:       req.Name,
		County:     req.County,
		MPName:     req.MPName,
		Population: req.Population,
		PASScore:   req.PASScore,
	}
	err := mgr.constituencies.Create(c, &entry)
	if errors.Is(err, constituency.ErrConstituencyTaken) {
		resputil.HTTPError(c, http.StatusConflict, "Constituency code already exists", resputil.Conflict)
		return
	}
	if err != nil {
		resputil.Error(c, "create constituency failed", resputil.NotSpecified)
		return
	}
	resputil.Created(c, entry)
}

// UpdateConstituency godoc
// @Summary Update the descriptive fields of a constituency
// @Description The code is immutable
// @Tags Constituency
// @Accept json
// @Produce json
// @Security Bearer
// @Param code path string true "constituency code"
// @Param data body UpdateConstituencyReq true "fields to change"
// @Success 200 {object} resputil.Response[model.Constituency] "updated constituency"
// @Failure 404 {object} resputil.Response[any] "unknown code"
// @Router /v1/constituencies/{code} [put]
func (mgr *ConstituencyMgr) UpdateConstituency(c *gin.Context) {
	var codeReq ConstituencyCodeReq
	if err := c.ShouldBindUri(&codeReq); err != nil {
		resputil.BadRequestError(c, err.Error())
		return
	}
	var req UpdateConstituencyReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resputil.BadRequestError(c, err.Error())
		return
	}

	out, err := mgr.constituencies.Update(c, codeReq.Code, &constituency.Patch{
		Name:       req.Name,
		County:     req.County,
		MPName:     req.MPName,
		Population: req.Population,
		PASScore:   req.PASScore,
	})
	if errors.Is(err, constituency.ErrConstituencyNotFound) {
		resputil.HTTPError(c, http.StatusNotFound, "Constituency not found", resputil.NotFound)
		return
	}
	if err != nil {
		resputil.Error(c, "update constituency failed", resputil.NotSpecified)
		return
	}
	resputil.Success(c, out)
}

// DeleteConstituency godoc
// @Summary Delete a constituency
// @Description Blocked while projects still reference the code
// @Tags Constituency
// @Security Bearer
// @Param code path string true "constituency code"
// @Success 204 "deleted"
// @Failure 404 {object} resputil.Response[any] "unknown code"
// @Failure 409 {object} resputil.Response[any] "projects still reference it"
// @Router /v1/constituencies/{code} [delete]
func (mgr *ConstituencyMgr) DeleteConstituency(c *gin.Context) {
	var req ConstituencyCodeReq
	if err := c.ShouldBindUri(&req); err != nil {
		resputil.BadRequestError(c, err.Error())
		return
	}

	err := mgr.constituencies.Delete(c, req.Code)
	switch {
	case errors.Is(err, constituency.ErrConstituencyNotFound):
		resputil.HTTPError(c, http.StatusNotFound, "Constituency not found", resputil.NotFound)
		return
	case errors.Is(err, constituency.ErrConstituencyInUse):
		resputil.HTTPError(c, http.StatusConflict, "Constituency is referenced by projects", resputil.Conflict)
		return
	case err != nil:
		resputil.Error(c, "delete constituency failed", resputil.NotSpecified)
		return
	}
	resputil.NoContent(c)
}
