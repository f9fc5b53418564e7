package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pamoja-lab/cdf-tracker/dao/model"
	"github.com/pamoja-lab/cdf-tracker/internal/resputil"
	"github.com/pamoja-lab/cdf-tracker/pkg/db/contractor"
)

//nolint:gochecknoinits // This is the standard way to register a gin handler.
func init() {
	Registers = append(Registers, NewContractorMgr)
}

type ContractorMgr struct {
	name        string
	contractors *contractor.Service
}

func NewContractorMgr(conf *RegisterConfig) Manager {
	return &ContractorMgr{
		name:        "contractors",
		contractors: contractor.NewService(conf.DB),
	}
}

func (mgr *ContractorMgr) GetName() string { return mgr.name }

func (mgr *ContractorMgr) RegisterPublic(g *gin.RouterGroup) {
	g.GET("/contractors", mgr.ListContractors)
	g.GET("/contractors/:id", mgr.GetContractor)
}

func (mgr *ContractorMgr) RegisterProtected(_ *gin.RouterGroup) {}

func (mgr *ContractorMgr) RegisterModerator(g *gin.RouterGroup) {
	g.POST("/contractors", mgr.CreateContractor)
	g.PUT("/contractors/:id", mgr.UpdateContractor)
	g.DELETE("/contractors/:id", mgr.DeleteContractor)
}

func (mgr *ContractorMgr) RegisterAdmin(_ *gin.RouterGroup) {}

type (
	ContractorIDReq struct {
		ID uint `uri:"id" binding:"required"`
	}

	CreateContractorReq struct {
		Name           string  `json:"name" binding:"required"`
		Phone          *string `json:"phone"`
		Email          *string `json:"email"`
		RegistrationNo *string `json:"registration_no"`
		Address        *string `json:"address"`
	}

	UpdateContractorReq struct {
		Name           *string `json:"name"`
		Phone          *string `json:"phone"`
		Email          *string `json:"email"`
		RegistrationNo *string `json:"registration_no"`
		Address        *string `json:"address"`
	}
)

// ListContractors godoc
// @Summary List contractors
// @Tags Contractor
// @Produce json
// @Success 200 {object} resputil.Response[[]model.Contractor] "contractors by id"
// @Router /v1/contractors [get]
func (mgr *ContractorMgr) ListContractors(c *gin.Context) {
	out, err := mgr.contractors.List(c)
	if err != nil {
		resputil.Error(c, "list contractors failed", resputil.NotSpecified)
		return
	}
	resputil.Success(c, out)
}

// GetContractor godoc
// @Summary Get one contractor
// @Tags Contractor
// @Produce json
// @Param id path uint true "contractor id"
// @Success 200 {object} resputil.Response[model.Contractor] "the contractor"
// @Failure 404 {object} resputil.Response[any] "unknown contractor"
// @Router /v1/contractors/{id} [get]
func (mgr *ContractorMgr) GetContractor(c *gin.Context) {
	var req ContractorIDReq
	if err := c.ShouldBindUri(&req); err != nil {
		resputil.BadRequestError(c, err.Error())
		return
	}

	out, err := mgr.contractors.Get(c, req.ID)
	if errors.Is(err, contractor.ErrContractorNotFound) {
		resputil.HTTPError(c, http.StatusNotFound, "Contractor not found", resputil.NotFound)
		return
	}
	if err != nil {
		resputil.Error(c, "get contractor failed", resputil.NotSpecified)
		return
	}
	resputil.Success(c, out)
}

// CreateContractor godoc
// @Summary Create a contractor
// @Tags Contractor
// @Accept json
// @Produce json
// @Security Bearer
// @Param data body CreateContractorReq true "contractor fields"
// @Success 201 {object} resputil.Response[model.Contractor] "created contractor"
// @Router /v1/contractors [post]
func (mgr *ContractorMgr) CreateContractor(c *gin.Context) {
	var req CreateContractorReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resputil.BadRequestError(c, err.Error())
		return
	}

	entry := model.Contractor{
		Name:           req.Name,
		Phone:          req.Phone,
		Email:          req.Email,
		RegistrationNo: req.RegistrationNo,
		Address:        req.Address,
	}
	if err := mgr.contractors.Create(c, &entry); err != nil {
		resputil.Error(c, "create contractor failed", resputil.NotSpecified)
		return
	}
	resputil.Created(c, entry)
}

// UpdateContractor godoc
// @Summary Partially update a contractor
// @Tags Contractor
// @Accept json
// @Produce json
// @Security Bearer
// @Param id path uint true "contractor id"
// @Param data body UpdateContractorReq true "fields to change"
// @Success 200 {object} resputil.Response[model.Contractor] "updated contractor"
// @Failure 404 {object} resputil.Response[any] "unknown contractor"
// @Router /v1/contractors/{id} [put]
func (mgr *ContractorMgr) UpdateContractor(c *gin.Context) {
	var idReq ContractorIDReq
	if err := c.ShouldBindUri(&idReq); err != nil {
		resputil.BadRequestError(c, err.Error())
		return
	}
	var req UpdateContractorReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resputil.BadRequestError(c, err.Error())
		return
	}

	out, err := mgr.contractors.Update(c, idReq.ID, &contractor.Patch{
		Name:           req.Name,
		Phone:          req.Phone,
		Email:          req.Email,
		RegistrationNo: req.RegistrationNo,
		Address:        req.Address,
	})
	if errors.Is(err, contractor.ErrContractorNotFound) {
		resputil.HTTPError(c, http.StatusNotFound, "Contractor not found", resputil.NotFound)
		return
	}
	if err != nil {
		resputil.Error(c, "update contractor failed", resputil.NotSpecified)
		return
	}
	resputil.Success(c, out)
}

// DeleteContractor godoc
// @Summary Delete a contractor
// @Description Blocked while awards still reference the contractor
// @Tags Contractor
// @Security Bearer
// @Param id path uint true "contractor id"
// @Success 204 "deleted"
// @Failure 404 {object} resputil.Response[any] "unknown contractor"
// @Failure 409 {object} resputil.Response[any] "awards still reference it"
// @Router /v1/contractors/{id} [delete]
func (mgr *ContractorMgr) DeleteContractor(c *gin.Context) {
	var req ContractorIDReq
	if err := c.ShouldBindUri(&req); err != nil {
		resputil.BadRequestError(c, err.Error())
		return
	}

	err := mgr.contractors.Delete(c, req.ID)
	switch {
	case errors.Is(err, contractor.ErrContractorNotFound):
		resputil.HTTPError(c, http.StatusNotFound, "Contractor not found", resputil.NotFound)
		return
	case errors.Is(err, contractor.ErrContractorInUse):
		resputil.HTTPError(c, http.StatusConflict, "Contractor is referenced by awards", resputil.Conflict)
		return
	case err != nil:
		resputil.Error(c, "delete contractor failed", resputil.NotSpecified)
		return
	}
	resputil.NoContent(c)
}
