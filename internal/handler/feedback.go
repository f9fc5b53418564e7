package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/samber/lo"

	"github.com/pamoja-lab/cdf-tracker/dao/model"
	"github.com/pamoja-lab/cdf-tracker/internal/resputil"
	"github.com/pamoja-lab/cdf-tracker/pkg/db/feedback"
	"github.com/pamoja-lab/cdf-tracker/pkg/logutils"
)

//nolint:gochecknoinits // This is the standard way to register a gin handler.
func init() {
	Registers = append(Registers, NewFeedbackMgr)
}

type FeedbackMgr struct {
	name     string
	feedback *feedback.Service
}

func NewFeedbackMgr(conf *RegisterConfig) Manager {
	return &FeedbackMgr{
		name:     "feedback",
		feedback: feedback.NewService(conf.DB),
	}
}

func (mgr *FeedbackMgr) GetName() string { return mgr.name }

func (mgr *FeedbackMgr) RegisterPublic(g *gin.RouterGroup) {
	g.POST("/feedback", mgr.SubmitFeedback)
}

func (mgr *FeedbackMgr) RegisterProtected(_ *gin.RouterGroup) {}

func (mgr *FeedbackMgr) RegisterModerator(g *gin.RouterGroup) {
	g.GET("/feedback", mgr.ListFeedback)
	g.PATCH("/feedback/:id/status", mgr.UpdateFeedbackStatus)
}

func (mgr *FeedbackMgr) RegisterAdmin(_ *gin.RouterGroup) {}

type (
	FeedbackIDReq struct {
		ID uint `uri:"id" binding:"required"`
	}

	SubmitFeedbackReq struct {
		ProjectID uint    `json:"project_id" binding:"required"`
		Name      *string `json:"name"`
		Email     *string `json:"email"`
		Message   string  `json:"message" binding:"required,max=2000"`
	}

	FeedbackStatusReq struct {
		Status string `json:"status" binding:"required"`
	}
)

// SubmitFeedback godoc
// @Summary Submit a citizen observation about a project
// @Description The client IP is captured server-side for abuse tracking
// @Tags Feedback
// @Accept json
// @Produce json
// @Param data body SubmitFeedbackReq true "feedback fields"
// @Success 201 {object} resputil.Response[string] "acknowledgement"
// @Failure 404 {object} resputil.Response[any] "unknown project"
// @Router /v1/feedback [post]
func (mgr *FeedbackMgr) SubmitFeedback(c *gin.Context) {
	var req SubmitFeedbackReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resputil.BadRequestError(c, err.Error())
		return
	}

	f := model.Feedback{
		ProjectID: req.ProjectID,
		Name:      req.Name,
		Email:     req.Email,
		Message:   req.Message,
		IPAddress: lo.ToPtr(c.ClientIP()),
		Status:    model.FeedbackPending,
	}
	err := mgr.feedback.Create(c, &f)
	if errors.Is(err, feedback.ErrProjectNotFound) {
		resputil.HTTPError(c, http.StatusNotFound, "Project not found", resputil.NotFound)
		return
	}
	if err != nil {
		resputil.Error(c, "submit feedback failed", resputil.NotSpecified)
		return
	}
	logutils.Log.Infof("feedback received, project: %d", req.ProjectID)
	resputil.Created(c, "Thank you! Your observation has been submitted and will be reviewed.")
}

// ListFeedback godoc
// @Summary List all feedback for moderation
// @Tags Feedback
// @Produce json
// @Security Bearer
// @Success 200 {object} resputil.Response[[]model.Feedback] "all feedback"
// @Router /v1/feedback [get]
func (mgr *FeedbackMgr) ListFeedback(c *gin.Context) {
	out, err := mgr.feedback.List(c)
	if err != nil {
		resputil.Error(c, "list feedback failed", resputil.NotSpecified)
		return
	}
	resputil.Success(c, out)
}

// UpdateFeedbackStatus godoc
// @Summary Approve or reject a feedback entry
// @Tags Feedback
// @Accept json
// @Produce json
// @Security Bearer
// @Param id path uint true "feedback id"
// @Param data body FeedbackStatusReq true "approved or rejected"
// @Success 200 {object} resputil.Response[model.Feedback] "updated feedback"
// @Failure 400 {object} resputil.Response[any] "invalid status"
// @Failure 404 {object} resputil.Response[any] "unknown feedback"
// @Router /v1/feedback/{id}/status [patch]
func (mgr *FeedbackMgr) UpdateFeedbackStatus(c *gin.Context) {
	var idReq FeedbackIDReq
	if err := c.ShouldBindUri(&idReq); err != nil {
		resputil.BadRequestError(c, err.Error())
		return
	}
	var req FeedbackStatusReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resputil.BadRequestError(c, err.Error())
		return
	}

	status, err := model.ParseFeedbackStatus(req.Status)
	if err != nil || status == model.FeedbackPending {
		resputil.BadRequestError(c, "Invalid status. Use 'approved' or 'rejected'")
		return
	}

	f, err := mgr.feedback.UpdateStatus(c, idReq.ID, status)
	if errors.Is(err, feedback.ErrFeedbackNotFound) {
		resputil.HTTPError(c, http.StatusNotFound, "Feedback not found", resputil.NotFound)
		return
	}
	if err != nil {
		resputil.Error(c, "update feedback failed", resputil.NotSpecified)
		return
	}
	resputil.Success(c, f)
}
