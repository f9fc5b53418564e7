package handler

import (
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/pamoja-lab/cdf-tracker/dao/model"
	"github.com/pamoja-lab/cdf-tracker/internal/resputil"
	"github.com/pamoja-lab/cdf-tracker/internal/util"
	"github.com/pamoja-lab/cdf-tracker/pkg/db/image"
	"github.com/pamoja-lab/cdf-tracker/pkg/logutils"
	"github.com/pamoja-lab/cdf-tracker/pkg/objectstore"
)

//nolint:gochecknoinits // This is the standard way to register a gin handler.
func init() {
	Registers = append(Registers, NewImageMgr)
}

const (
	publicURLTTL = 7 * 24 * time.Hour
	viewURLTTL   = time.Hour
)

var allowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/jpg":  true,
	"image/png":  true,
	"image/webp": true,
}

type ImageMgr struct {
	name   string
	images *image.Service
	store  objectstore.Store
}

func NewImageMgr(conf *RegisterConfig) Manager {
	return &ImageMgr{
		name:   "project-images",
		images: image.NewService(conf.DB),
		store:  conf.Store,
	}
}

func (mgr *ImageMgr) GetName() string { return mgr.name }

func (mgr *ImageMgr) RegisterPublic(g *gin.RouterGroup) {
	g.GET("/projects/:id/images/public", mgr.ListPublicImages)
	g.GET("/projects/:id/images/:imageID/view", mgr.ViewImage)
}

func (mgr *ImageMgr) RegisterProtected(_ *gin.RouterGroup) {}

func (mgr *ImageMgr) RegisterModerator(g *gin.RouterGroup) {
	g.POST("/projects/:id/images", mgr.UploadImage)
	g.GET("/projects/:id/images", mgr.ListImages)
}

func (mgr *ImageMgr) RegisterAdmin(_ *gin.RouterGroup) {}

type (
	ImageIDReq struct {
		ProjectID uint `uri:"id" binding:"required"`
		ImageID   uint `uri:"imageID" binding:"required"`
	}

	PublicImageResp struct {
		ID         uint      `json:"id"`
		Filename   string    `json:"filename"`
		Caption    string    `json:"caption"`
		UploadedBy string    `json:"uploaded_by"`
		UploadedAt time.Time `json:"uploaded_at"`
		URL        *string   `json:"url"`
		ObjectName string    `json:"object_name"`
	}
)

// UploadImage godoc
// @Summary Upload a project photo
// @Description The object is stored first; the metadata row is written only
// @Description after the upload is confirmed, so a storage failure leaves no
// @Description orphaned row
// @Tags ProjectImage
// @Accept mpfd
// @Produce json
// @Security Bearer
// @Param id path uint true "project id"
// @Param file formData file true "image file (jpeg, png or webp)"
// @Param caption formData string false "caption"
// @Success 201 {object} resputil.Response[model.ProjectImage] "stored metadata"
// @Failure 400 {object} resputil.Response[any] "bad content type or empty file"
// @Failure 404 {object} resputil.Response[any] "unknown project"
// @Failure 502 {object} resputil.Response[any] "object storage failed"
// @Router /v1/projects/{id}/images [post]
func (mgr *ImageMgr) UploadImage(c *gin.Context) {
	var req ProjectIDReq
	if err := c.ShouldBindUri(&req); err != nil {
		resputil.BadRequestError(c, err.Error())
		return
	}

	exists, err := mgr.images.ProjectExists(c, req.ID)
	if err != nil {
		resputil.Error(c, "check project failed", resputil.NotSpecified)
		return
	}
	if !exists {
		resputil.HTTPError(c, http.StatusNotFound, "Project not found", resputil.NotFound)
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		resputil.BadRequestError(c, "file is required")
		return
	}
	contentType := fileHeader.Header.Get("Content-Type")
	if !allowedImageTypes[contentType] {
		resputil.BadRequestError(c, "Only JPG, PNG, WebP allowed")
		return
	}

	f, err := fileHeader.Open()
	if err != nil {
		resputil.BadRequestError(c, "cannot read uploaded file")
		return
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		resputil.BadRequestError(c, "cannot read uploaded file")
		return
	}
	if len(data) == 0 {
		resputil.BadRequestError(c, "Empty file uploaded")
		return
	}

	objectName := objectstore.ObjectName(req.ID, fileHeader.Filename)
	if err := mgr.store.Put(c, objectName, data, contentType); err != nil {
		logutils.Log.Errorf("image upload failed, project: %d, err: %v", req.ID, err)
		resputil.HTTPError(c, http.StatusBadGateway, "Storage upload failed", resputil.Upstream)
		return
	}

	caption := c.PostForm("caption")
	uploadedBy := util.GetToken(c).Username
	if uploadedBy == "" {
		uploadedBy = "admin"
	}
	img := model.ProjectImage{
		ProjectID:  req.ID,
		Filename:   fileHeader.Filename,
		ObjectName: objectName,
		UploadedBy: uploadedBy,
		UploadedAt: time.Now().UTC(),
	}
	if caption != "" {
		img.Caption = &caption
	}
	if err := mgr.images.Create(c, &img); err != nil {
		resputil.Error(c, "store image metadata failed", resputil.NotSpecified)
		return
	}
	resputil.Created(c, img)
}

// ListImages godoc
// @Summary List image metadata for a project
// @Tags ProjectImage
// @Produce json
// @Security Bearer
// @Param id path uint true "project id"
// @Success 200 {object} resputil.Response[[]model.ProjectImage] "image rows"
// @Router /v1/projects/{id}/images [get]
func (mgr *ImageMgr) ListImages(c *gin.Context) {
	var req ProjectIDReq
	if err := c.ShouldBindUri(&req); err != nil {
		resputil.BadRequestError(c, err.Error())
		return
	}

	out, err := mgr.images.ListByProject(c, req.ID)
	if err != nil {
		resputil.Error(c, "list images failed", resputil.NotSpecified)
		return
	}
	resputil.Success(c, out)
}

// ListPublicImages godoc
// @Summary List project photos with presigned view URLs
// @Description A presign failure yields a null url for that image, not an
// @Description error for the whole page
// @Tags ProjectImage
// @Produce json
// @Param id path uint true "project id"
// @Success 200 {object} resputil.Response[[]PublicImageResp] "images with URLs"
// @Router /v1/projects/{id}/images/public [get]
func (mgr *ImageMgr) ListPublicImages(c *gin.Context) {
	var req ProjectIDReq
	if err := c.ShouldBindUri(&req); err != nil {
		resputil.BadRequestError(c, err.Error())
		return
	}

	images, err := mgr.images.ListByProject(c, req.ID)
	if err != nil {
		resputil.Error(c, "list images failed", resputil.NotSpecified)
		return
	}

	out := make([]PublicImageResp, 0, len(images))
	for i := range images {
		img := &images[i]
		resp := PublicImageResp{
			ID:         img.ID,
			Filename:   img.Filename,
			Caption:    "No caption",
			UploadedBy: img.UploadedBy,
			UploadedAt: img.UploadedAt,
			ObjectName: img.ObjectName,
		}
		if img.Caption != nil {
			resp.Caption = *img.Caption
		}
		if url, presignErr := mgr.store.PresignGet(c, img.ObjectName, publicURLTTL); presignErr == nil {
			resp.URL = &url
		}
		out = append(out, resp)
	}
	resputil.Success(c, out)
}

// ViewImage godoc
// @Summary Redirect to a short-lived presigned URL for one photo
// @Tags ProjectImage
// @Param id path uint true "project id"
// @Param imageID path uint true "image id"
// @Success 307 "redirect to the presigned URL"
// @Failure 404 {object} resputil.Response[any] "unknown image"
// @Failure 502 {object} resputil.Response[any] "presign failed"
// @Router /v1/projects/{id}/images/{imageID}/view [get]
func (mgr *ImageMgr) ViewImage(c *gin.Context) {
	var req ImageIDReq
	if err := c.ShouldBindUri(&req); err != nil {
		resputil.BadRequestError(c, err.Error())
		return
	}

	img, err := mgr.images.Get(c, req.ProjectID, req.ImageID)
	if errors.Is(err, image.ErrImageNotFound) {
		resputil.HTTPError(c, http.StatusNotFound, "Image not found", resputil.NotFound)
		return
	}
	if err != nil {
		resputil.Error(c, "get image failed", resputil.NotSpecified)
		return
	}

	url, err := mgr.store.PresignGet(c, img.ObjectName, viewURLTTL)
	if err != nil {
		resputil.HTTPError(c, http.StatusBadGateway, "Failed to generate view URL", resputil.Upstream)
		return
	}
	c.Redirect(http.StatusTemporaryRedirect, url)
}
