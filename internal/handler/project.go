package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/pamoja-lab/cdf-tracker/dao/model"
	"github.com/pamoja-lab/cdf-tracker/internal/payload"
	"github.com/pamoja-lab/cdf-tracker/internal/resputil"
	"github.com/pamoja-lab/cdf-tracker/pkg/db/project"
	"github.com/pamoja-lab/cdf-tracker/pkg/logutils"
)

//nolint:gochecknoinits // This is the standard way to register a gin handler.
func init() {
	Registers = append(Registers, NewProjectMgr)
}

type ProjectMgr struct {
	name     string
	projects *project.Service
}

func NewProjectMgr(conf *RegisterConfig) Manager {
	return &ProjectMgr{
		name:     "projects",
		projects: project.NewService(conf.DB),
	}
}

func (mgr *ProjectMgr) GetName() string { return mgr.name }

func (mgr *ProjectMgr) RegisterPublic(g *gin.RouterGroup) {
	g.GET("/projects", mgr.ListProjects)
	g.GET("/projects/:id", mgr.GetProject)
}

func (mgr *ProjectMgr) RegisterProtected(_ *gin.RouterGroup) {}

func (mgr *ProjectMgr) RegisterModerator(g *gin.RouterGroup) {
	g.POST("/projects", mgr.CreateProject)
	g.PUT("/projects/:id", mgr.UpdateProject)
	g.DELETE("/projects/:id", mgr.DeleteProject)
}

func (mgr *ProjectMgr) RegisterAdmin(_ *gin.RouterGroup) {}

type (
	ProjectIDReq struct {
		ID uint `uri:"id" binding:"required"`
	}

	CreateProjectReq struct {
		Title            string     `json:"title" binding:"required"`
		Description      *string    `json:"description"`
		Category         string     `json:"category" binding:"required"`
		Status           string     `json:"status"`
		Budget           *float64   `json:"budget" binding:"required"`
		Spent            *float64   `json:"spent"`
		Progress         *float64   `json:"progress"`
		ConstituencyCode string     `json:"constituency_code" binding:"required"`
		StartDate        *time.Time `json:"start_date"`
		CompletionDate   *time.Time `json:"completion_date"`
		IsMock           *bool      `json:"is_mock"`
		SourceName       *string    `json:"source_name"`
		SourceURL        *string    `json:"source_url"`
		SourceDocRef     *string    `json:"source_doc_ref"`
	}

	UpdateProjectReq struct {
		Title            *string    `json:"title"`
		Description      *string    `json:"description"`
		Category         *string    `json:"category"`
		Status           *string    `json:"status"`
		Budget           *float64   `json:"budget"`
		Spent            *float64   `json:"spent"`
		Progress         *float64   `json:"progress"`
		ConstituencyCode *string    `json:"constituency_code"`
		StartDate        *time.Time `json:"start_date"`
		CompletionDate   *time.Time `json:"completion_date"`
		IsMock           *bool      `json:"is_mock"`
		SourceName       *string    `json:"source_name"`
		SourceURL        *string    `json:"source_url"`
		SourceDocRef     *string    `json:"source_doc_ref"`
	}
)

// ListProjects godoc
// @Summary List the joined project views
// @Description Filter by constituency/category/status, sort, paginate
// @Tags Project
// @Produce json
// @Param query query payload.ListReqQuery false "filters, sort, offset, limit"
// @Success 200 {object} resputil.Response[payload.ListResp[project.View]] "one page of views"
// @Failure 400 {object} resputil.Response[any] "invalid filter or pagination"
// @Router /v1/projects [get]
func (mgr *ProjectMgr) ListProjects(c *gin.Context) {
	var req payload.ListReqQuery
	if err := c.ShouldBindQuery(&req); err != nil {
		resputil.BadRequestError(c, err.Error())
		return
	}

	var filters project.Filters
	filters.ConstituencyCode = req.ConstituencyCode
	if req.Category != "" {
		category, err := model.ParseProjectCategory(req.Category)
		if err != nil {
			resputil.BadRequestError(c, err.Error())
			return
		}
		filters.Category = category
	}
	if req.Status != "" {
		status, err := model.ParseProjectStatus(req.Status)
		if err != nil {
			resputil.BadRequestError(c, err.Error())
			return
		}
		filters.Status = status
	}

	offset := 0
	if req.Offset != nil {
		offset = *req.Offset
	}
	limit := project.DefaultLimit
	if req.Limit != nil {
		limit = *req.Limit
	}

	views, count, err := mgr.projects.List(c, filters, req.Sort, offset, limit)
	switch {
	case errors.Is(err, project.ErrInvalidLimit), errors.Is(err, project.ErrInvalidOffset):
		resputil.BadRequestError(c, err.Error())
		return
	case err != nil:
		resputil.Error(c, "list projects failed", resputil.NotSpecified)
		return
	}
	resputil.Success(c, payload.ListResp[project.View]{Rows: views, Count: count})
}

// GetProject godoc
// @Summary Get one project view
// @Tags Project
// @Produce json
// @Param id path uint true "project id"
// @Success 200 {object} resputil.Response[project.View] "the joined view"
// @Failure 404 {object} resputil.Response[any] "unknown project"
// @Router /v1/projects/{id} [get]
func (mgr *ProjectMgr) GetProject(c *gin.Context) {
	var req ProjectIDReq
	if err := c.ShouldBindUri(&req); err != nil {
		resputil.BadRequestError(c, err.Error())
		return
	}

	view, err := mgr.projects.Get(c, req.ID)
	if errors.Is(err, project.ErrProjectNotFound) {
		resputil.HTTPError(c, http.StatusNotFound, "Project not found", resputil.NotFound)
		return
	}
	if err != nil {
		resputil.Error(c, "get project failed", resputil.NotSpecified)
		return
	}
	resputil.Success(c, view)
}

// CreateProject godoc
// @Summary Create a project
// @Tags Project
// @Accept json
// @Produce json
// @Security Bearer
// @Param data body CreateProjectReq true "project fields"
// @Success 201 {object} resputil.Response[model.Project] "created project"
// @Failure 400 {object} resputil.Response[any] "invalid field"
// @Failure 404 {object} resputil.Response[any] "unknown constituency"
// @Router /v1/projects [post]
func (mgr *ProjectMgr) CreateProject(c *gin.Context) {
	var req CreateProjectReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resputil.BadRequestError(c, err.Error())
		return
	}

	category, err := model.ParseProjectCategory(req.Category)
	if err != nil {
		resputil.BadRequestError(c, err.Error())
		return
	}
	status := model.StatusPlanned
	if req.Status != "" {
		if status, err = model.ParseProjectStatus(req.Status); err != nil {
			resputil.BadRequestError(c, err.Error())
			return
		}
	}

	isMock := true
	if req.IsMock != nil {
		isMock = *req.IsMock
	}
	p := model.Project{
		Title:            req.Title,
		Description:      req.Description,
		Category:         category,
		Status:           status,
		Budget:           *req.Budget,
		Spent:            req.Spent,
		Progress:         req.Progress,
		ConstituencyCode: req.ConstituencyCode,
		StartDate:        req.StartDate,
		CompletionDate:   req.CompletionDate,
		IsMock:           isMock,
		SourceName:       req.SourceName,
		SourceURL:        req.SourceURL,
		SourceDocRef:     req.SourceDocRef,
	}

	err = mgr.projects.Create(c, &p)
	if errors.Is(err, project.ErrConstituencyNotFound) {
		resputil.HTTPError(c, http.StatusNotFound, "Constituency not found", resputil.NotFound)
		return
	}
	if err != nil {
		resputil.Error(c, "create project failed", resputil.NotSpecified)
		return
	}
	logutils.Log.Infof("project created, id: %d, title: %s", p.ID, p.Title)
	resputil.Created(c, p)
}

// UpdateProject godoc
// @Summary Partially update a project
// @Description Absent fields keep their stored values
// @Tags Project
// @Accept json
// @Produce json
// @Security Bearer
// @Param id path uint true "project id"
// @Param data body UpdateProjectReq true "fields to change"
// @Success 200 {object} resputil.Response[model.Project] "updated project"
// @Failure 404 {object} resputil.Response[any] "unknown project or constituency"
// @Router /v1/projects/{id} [put]
func (mgr *ProjectMgr) UpdateProject(c *gin.Context) {
	var idReq ProjectIDReq
	if err := c.ShouldBindUri(&idReq); err != nil {
		resputil.BadRequestError(c, err.Error())
		return
	}
	var req UpdateProjectReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resputil.BadRequestError(c, err.Error())
		return
	}

	patch := project.Patch{
		Title:            req.Title,
		Description:      req.Description,
		Budget:           req.Budget,
		Spent:            req.Spent,
		Progress:         req.Progress,
		ConstituencyCode: req.ConstituencyCode,
		StartDate:        req.StartDate,
		CompletionDate:   req.CompletionDate,
		IsMock:           req.IsMock,
		SourceName:       req.SourceName,
		SourceURL:        req.SourceURL,
		SourceDocRef:     req.SourceDocRef,
	}
	if req.Category != nil {
		category, err := model.ParseProjectCategory(*req.Category)
		if err != nil {
			resputil.BadRequestError(c, err.Error())
			return
		}
		patch.Category = &category
	}
	if req.Status != nil {
		status, err := model.ParseProjectStatus(*req.Status)
		if err != nil {
			resputil.BadRequestError(c, err.Error())
			return
		}
		patch.Status = &status
	}

	p, err := mgr.projects.Update(c, idReq.ID, &patch)
	switch {
	case errors.Is(err, project.ErrProjectNotFound):
		resputil.HTTPError(c, http.StatusNotFound, "Project not found", resputil.NotFound)
		return
	case errors.Is(err, project.ErrConstituencyNotFound):
		resputil.HTTPError(c, http.StatusNotFound, "Constituency not found", resputil.NotFound)
		return
	case err != nil:
		resputil.Error(c, "update project failed", resputil.NotSpecified)
		return
	}
	resputil.Success(c, p)
}

// DeleteProject godoc
// @Summary Delete a project
// @Tags Project
// @Security Bearer
// @Param id path uint true "project id"
// @Success 204 "deleted"
// @Failure 404 {object} resputil.Response[any] "unknown project"
// @Router /v1/projects/{id} [delete]
func (mgr *ProjectMgr) DeleteProject(c *gin.Context) {
	var req ProjectIDReq
	if err := c.ShouldBindUri(&req); err != nil {
		resputil.BadRequestError(c, err.Error())
		return
	}

	err := mgr.projects.Delete(c, req.ID)
	if errors.Is(err, project.ErrProjectNotFound) {
		resputil.HTTPError(c, http.StatusNotFound, "Project not found", resputil.NotFound)
		return
	}
	if err != nil {
		resputil.Error(c, "delete project failed", resputil.NotSpecified)
		return
	}
	logutils.Log.Infof("project deleted, id: %d", req.ID)
	resputil.NoContent(c)
}
