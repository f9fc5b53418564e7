package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/pamoja-lab/cdf-tracker/dao/model"
	"github.com/pamoja-lab/cdf-tracker/internal/resputil"
	"github.com/pamoja-lab/cdf-tracker/pkg/db/award"
	"github.com/pamoja-lab/cdf-tracker/pkg/logutils"
)

//nolint:gochecknoinits // This is the standard way to register a gin handler.
func init() {
	Registers = append(Registers, NewAwardMgr)
}

type AwardMgr struct {
	name   string
	awards *award.Service
}

func NewAwardMgr(conf *RegisterConfig) Manager {
	return &AwardMgr{
		name:   "procurement-awards",
		awards: award.NewService(conf.DB),
	}
}

func (mgr *AwardMgr) GetName() string { return mgr.name }

func (mgr *AwardMgr) RegisterPublic(g *gin.RouterGroup) {
	g.GET("/procurement-awards", mgr.ListAwards)
	g.GET("/procurement-awards/:id", mgr.GetAward)
}

func (mgr *AwardMgr) RegisterProtected(_ *gin.RouterGroup) {}

func (mgr *AwardMgr) RegisterModerator(g *gin.RouterGroup) {
	g.POST("/procurement-awards", mgr.CreateAward)
	g.PUT("/procurement-awards/:id", mgr.UpdateAward)
	g.DELETE("/procurement-awards/:id", mgr.DeleteAward)
}

func (mgr *AwardMgr) RegisterAdmin(_ *gin.RouterGroup) {}

type (
	AwardIDReq struct {
		ID uint `uri:"id" binding:"required"`
	}

	CreateAwardReq struct {
		ProjectID             uint       `json:"project_id" binding:"required"`
		ContractorID          uint       `json:"contractor_id" binding:"required"`
		TenderID              *string    `json:"tender_id"`
		ProcurementMethod     *string    `json:"procurement_method"`
		ContractValue         *float64   `json:"contract_value"`
		AwardDate             *time.Time `json:"award_date"`
		ContractorShareHint   *float64   `json:"contractor_share_hint"`
		PerformanceFlag       bool       `json:"performance_flag"`
		PerformanceFlagReason *string    `json:"performance_flag_reason"`
	}

	UpdateAwardReq struct {
		ContractorID          *uint      `json:"contractor_id"`
		TenderID              *string    `json:"tender_id"`
		ProcurementMethod     *string    `json:"procurement_method"`
		ContractValue         *float64   `json:"contract_value"`
		AwardDate             *time.Time `json:"award_date"`
		ContractorShareHint   *float64   `json:"contractor_share_hint"`
		PerformanceFlag       *bool      `json:"performance_flag"`
		PerformanceFlagReason *string    `json:"performance_flag_reason"`
	}
)

// ListAwards godoc
// @Summary List procurement awards
// @Tags Award
// @Produce json
// @Success 200 {object} resputil.Response[[]model.ProcurementAward] "all awards by id"
// @Router /v1/procurement-awards [get]
func (mgr *AwardMgr) ListAwards(c *gin.Context) {
	awards, err := mgr.awards.List(c)
	if err != nil {
		resputil.Error(c, "list awards failed", resputil.NotSpecified)
		return
	}
	resputil.Success(c, awards)
}

// GetAward godoc
// @Summary Get one award
// @Tags Award
// @Produce json
// @Param id path uint true "award id"
// @Success 200 {object} resputil.Response[model.ProcurementAward] "the award"
// @Failure 404 {object} resputil.Response[any] "unknown award"
// @Router /v1/procurement-awards/{id} [get]
func (mgr *AwardMgr) GetAward(c *gin.Context) {
	var req AwardIDReq
	if err := c.ShouldBindUri(&req); err != nil {
		resputil.BadRequestError(c, err.Error())
		return
	}

	a, err := mgr.awards.Get(c, req.ID)
	if errors.Is(err, award.ErrAwardNotFound) {
		resputil.HTTPError(c, http.StatusNotFound, "Award not found", resputil.NotFound)
		return
	}
	if err != nil {
		resputil.Error(c, "get award failed", resputil.NotSpecified)
		return
	}
	resputil.Success(c, a)
}

// CreateAward godoc
// @Summary Create a procurement award
// @Description One award per project; a second attempt is a conflict
// @Tags Award
// @Accept json
// @Produce json
// @Security Bearer
// @Param data body CreateAwardReq true "award fields"
// @Success 201 {object} resputil.Response[model.ProcurementAward] "created award"
// @Failure 404 {object} resputil.Response[any] "unknown project or contractor"
// @Failure 409 {object} resputil.Response[any] "project already has an award"
// @Router /v1/procurement-awards [post]
func (mgr *AwardMgr) CreateAward(c *gin.Context) {
	var req CreateAwardReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resputil.BadRequestError(c, err.Error())
		return
	}

	a := model.ProcurementAward{
		ProjectID:             req.ProjectID,
		ContractorID:          req.ContractorID,
		TenderID:              req.TenderID,
		ProcurementMethod:     req.ProcurementMethod,
		ContractValue:         req.ContractValue,
		AwardDate:             req.AwardDate,
		ContractorShareHint:   req.ContractorShareHint,
		PerformanceFlag:       req.PerformanceFlag,
		PerformanceFlagReason: req.PerformanceFlagReason,
	}

	err := mgr.awards.Create(c, &a)
	switch {
	case errors.Is(err, award.ErrProjectNotFound):
		resputil.HTTPError(c, http.StatusNotFound, "Project not found", resputil.NotFound)
		return
	case errors.Is(err, award.ErrContractorNotFound):
		resputil.HTTPError(c, http.StatusNotFound, "Contractor not found", resputil.NotFound)
		return
	case errors.Is(err, award.ErrDuplicateAward):
		resputil.HTTPError(c, http.StatusConflict, "This project already has an award", resputil.Conflict)
		return
	case err != nil:
		resputil.Error(c, "create award failed", resputil.NotSpecified)
		return
	}
	logutils.Log.Infof("award created, id: %d, project: %d", a.ID, a.ProjectID)
	resputil.Created(c, a)
}

// UpdateAward godoc
// @Summary Partially update an award
// @Description Absent fields keep their stored values; contractor changes do
// @Description not re-check the one-award-per-project rule
// @Tags Award
// @Accept json
// @Produce json
// @Security Bearer
// @Param id path uint true "award id"
// @Param data body UpdateAwardReq true "fields to change"
// @Success 200 {object} resputil.Response[model.ProcurementAward] "updated award"
// @Failure 404 {object} resputil.Response[any] "unknown award"
// @Router /v1/procurement-awards/{id} [put]
func (mgr *AwardMgr) UpdateAward(c *gin.Context) {
	var idReq AwardIDReq
	if err := c.ShouldBindUri(&idReq); err != nil {
		resputil.BadRequestError(c, err.Error())
		return
	}
	var req UpdateAwardReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resputil.BadRequestError(c, err.Error())
		return
	}

	a, err := mgr.awards.Update(c, idReq.ID, &award.Patch{
		ContractorID:          req.ContractorID,
		TenderID:              req.TenderID,
		ProcurementMethod:     req.ProcurementMethod,
		ContractValue:         req.ContractValue,
		AwardDate:             req.AwardDate,
		ContractorShareHint:   req.ContractorShareHint,
		PerformanceFlag:       req.PerformanceFlag,
		PerformanceFlagReason: req.PerformanceFlagReason,
	})
	if errors.Is(err, award.ErrAwardNotFound) {
		resputil.HTTPError(c, http.StatusNotFound, "Award not found", resputil.NotFound)
		return
	}
	if err != nil {
		resputil.Error(c, "update award failed", resputil.NotSpecified)
		return
	}
	resputil.Success(c, a)
}

// DeleteAward godoc
// @Summary Delete an award
// @Tags Award
// @Security Bearer
// @Param id path uint true "award id"
// @Success 204 "deleted"
// @Failure 404 {object} resputil.Response[any] "unknown award"
// @Router /v1/procurement-awards/{id} [delete]
func (mgr *AwardMgr) DeleteAward(c *gin.Context) {
	var req AwardIDReq
	if err := c.ShouldBindUri(&req); err != nil {
		resputil.BadRequestError(c, err.Error())
		return
	}

	err := mgr.awards.Delete(c, req.ID)
	if errors.Is(err, award.ErrAwardNotFound) {
		resputil.HTTPError(c, http.StatusNotFound, "Award not found", resputil.NotFound)
		return
	}
	if err != nil {
		resputil.Error(c, "delete award failed", resputil.NotSpecified)
		return
	}
	resputil.NoContent(c)
}
