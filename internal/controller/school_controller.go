package controller

import (
	"path/filepath"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"schoolhub_backend/internal/middleware"
	"schoolhub_backend/internal/service"
	"schoolhub_backend/internal/util"
)

type SchoolController struct {
	SchoolService  *service.SchoolService
	StorageService *service.StorageService
}

func NewSchoolController(schoolService *service.SchoolService, storageService *service.StorageService) *SchoolController {
	return &SchoolController{SchoolService: schoolService, StorageService: storageService}
}

// CreateSchool godoc
// @Summary Onboard a school
// @Description Registers a new school and assigns its registration code
// @Tags schools
// @Accept  json
// @Produce  json
// @Param   body body service.SchoolRequest true "School details"
// @Success 201 {object} util.Response{data=model.School}
// @Failure 403 {object} util.Response "Super admin only"
// @Router /api/schools [post]
// @Security BearerAuth
func (c *SchoolController) CreateSchool(ctx *gin.Context) {
	var req service.SchoolRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	school, err := c.SchoolService.CreateSchool(&req, middleware.CurrentAdmin(ctx))
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Created(ctx, school)
}

// GetSchool godoc
// @Summary Get a school
// @Description Fetches a school by UUID or registration code
// @Tags schools
// @Produce  json
// @Param   id path string true "School ID or code"
// @Success 200 {object} util.Response{data=model.School}
// @Failure 404 {object} util.Response
// @Router /api/schools/{id} [get]
func (c *SchoolController) GetSchool(ctx *gin.Context) {
	school, err := c.SchoolService.GetSchool(ctx.Param("id"))
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, school)
}

// ListSchools godoc
// @Summary List schools
// @Tags schools
// @Produce  json
// @Param   page query int false "Page"
// @Param   size query int false "Page size"
// @Param   query query string false "Name search"
// @Param   isActive query bool false "Activation filter"
// @Success 200 {object} util.Response{data=util.PageResponse}
// @Router /api/schools [get]
// @Security BearerAuth
func (c *SchoolController) ListSchools(ctx *gin.Context) {
	page, size := pageParams(ctx)

	var isActive *bool
	if raw := ctx.Query("isActive"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			util.BadRequest(ctx, "isActive must be a boolean")
			return
		}
		isActive = &v
	}

	schools, count, err := c.SchoolService.ListSchools(page, size, ctx.Query("query"), isActive)
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, util.PageResponse{
		List:       schools,
		Count:      count,
		Page:       page,
		Size:       size,
		TotalPages: util.EstimateTotalPages(count, size),
	})
}

// UpdateSchool godoc
// @Summary Update a school
// @Tags schools
// @Accept  json
// @Produce  json
// @Param   id path string true "School ID or code"
// @Param   body body service.SchoolUpdateRequest true "Fields to change"
// @Success 200 {object} util.Response{data=model.School}
// @Failure 403 {object} util.Response
// @Router /api/schools/{id} [put]
// @Security BearerAuth
func (c *SchoolController) UpdateSchool(ctx *gin.Context) {
	var req service.SchoolUpdateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	school, err := c.SchoolService.UpdateSchool(ctx.Param("id"), &req, middleware.CurrentAdmin(ctx))
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, school)
}

// DeleteSchool godoc
// @Summary Delete a school
// @Tags schools
// @Produce  json
// @Param   id path string true "School ID or code"
// @Success 200 {object} util.Response
// @Failure 403 {object} util.Response "Super admin only"
// @Router /api/schools/{id} [delete]
// @Security BearerAuth
func (c *SchoolController) DeleteSchool(ctx *gin.Context) {
	if err := c.SchoolService.DeleteSchool(ctx.Param("id"), middleware.CurrentAdmin(ctx)); err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"deleted": true})
}

// UploadLogo godoc
// @Summary Upload a school logo
// @Description Stores the image and points the school record at it
// @Tags schools
// @Accept  multipart/form-data
// @Produce  json
// @Param   id path string true "School ID or code"
// @Param   file formData file true "Logo image"
// @Success 200 {object} util.Response{data=model.School}
// @Failure 400 {object} util.Response "Not an image"
// @Router /api/schools/{id}/logo [post]
// @Security BearerAuth
func (c *SchoolController) UploadLogo(ctx *gin.Context) {
	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		util.BadRequest(ctx, "file is required")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	defer file.Close()

	mimeType, err := util.ValidateMimeType(file, []string{util.MimeImage})
	if err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	if _, err := file.Seek(0, 0); err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	filename := "logos/" + uuid.New().String() + filepath.Ext(fileHeader.Filename)
	logoURL, err := c.StorageService.Upload(ctx.Request.Context(), filename, file, fileHeader.Size, mimeType)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	school, err := c.SchoolService.UpdateSchool(ctx.Param("id"), &service.SchoolUpdateRequest{LogoURL: &logoURL}, middleware.CurrentAdmin(ctx))
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, school)
}
