package controller

import (
	"github.com/gin-gonic/gin"

	"schoolhub_backend/internal/middleware"
	"schoolhub_backend/internal/model"
	"schoolhub_backend/internal/service"
	"schoolhub_backend/internal/util"
)

type AdminController struct {
	AdminService *service.AdminService
}

func NewAdminController(adminService *service.AdminService) *AdminController {
	return &AdminController{AdminService: adminService}
}

// CreateAdmin godoc
// @Summary Create a platform admin
// @Tags admins
// @Accept  json
// @Produce  json
// @Param   body body service.AdminRequest true "Admin details"
// @Success 201 {object} util.Response{data=model.Admin}
// @Failure 403 {object} util.Response "Super admin only"
// @Router /api/admins [post]
// @Security BearerAuth
func (c *AdminController) CreateAdmin(ctx *gin.Context) {
	var req service.AdminRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	admin, err := c.AdminService.CreateAdmin(&req, middleware.CurrentAdmin(ctx))
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Created(ctx, admin)
}

// Me godoc
// @Summary Current admin profile
// @Tags admins
// @Produce  json
// @Success 200 {object} util.Response{data=model.Admin}
// @Router /api/admins/me [get]
// @Security BearerAuth
func (c *AdminController) Me(ctx *gin.Context) {
	util.Success(ctx, middleware.CurrentAdmin(ctx))
}

// ListAdmins godoc
// @Summary List platform admins
// @Tags admins
// @Produce  json
// @Param   page query int false "Page"
// @Param   size query int false "Page size"
// @Success 200 {object} util.Response{data=util.PageResponse}
// @Failure 403 {object} util.Response "Super admin only"
// @Router /api/admins [get]
// @Security BearerAuth
func (c *AdminController) ListAdmins(ctx *gin.Context) {
	page, size := pageParams(ctx)
	admins, count, err := c.AdminService.ListAdmins(page, size, middleware.CurrentAdmin(ctx))
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, util.PageResponse{
		List:       admins,
		Count:      count,
		Page:       page,
		Size:       size,
		TotalPages: util.EstimateTotalPages(count, size),
	})
}

// DeleteAdmin godoc
// @Summary Delete a platform admin
// @Tags admins
// @Produce  json
// @Param   id path string true "Admin ID"
// @Success 200 {object} util.Response
// @Failure 403 {object} util.Response "Super admin only"
// @Router /api/admins/{id} [delete]
// @Security BearerAuth
func (c *AdminController) DeleteAdmin(ctx *gin.Context) {
	if err := c.AdminService.DeleteAdmin(ctx.Param("id"), middleware.CurrentAdmin(ctx)); err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"deleted": true})
}

// AssignSchoolAdmin godoc
// @Summary Attach an admin to a school
// @Description Creates the admin account when the email is new
// @Tags school-admins
// @Accept  json
// @Produce  json
// @Param   id path string true "School ID or code"
// @Param   body body service.SchoolAdminRequest true "Admin and role"
// @Success 201 {object} util.Response{data=model.SchoolAdmin}
// @Failure 403 {object} util.Response
// @Router /api/schools/{id}/admins [post]
// @Security BearerAuth
func (c *AdminController) AssignSchoolAdmin(ctx *gin.Context) {
	var req service.SchoolAdminRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	record, err := c.AdminService.AssignSchoolAdmin(ctx.Param("id"), &req, middleware.CurrentAdmin(ctx))
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Created(ctx, record)
}

// ListSchoolAdmins godoc
// @Summary List a school's admins
// @Tags school-admins
// @Produce  json
// @Param   id path string true "School ID or code"
// @Param   role query string false "Role filter"
// @Success 200 {object} util.Response{data=util.PageResponse}
// @Router /api/schools/{id}/admins [get]
// @Security BearerAuth
func (c *AdminController) ListSchoolAdmins(ctx *gin.Context) {
	page, size := pageParams(ctx)
	role := model.SchoolAdminRole(ctx.Query("role"))

	records, count, err := c.AdminService.ListSchoolAdmins(ctx.Param("id"), page, size, role, middleware.CurrentAdmin(ctx))
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, util.PageResponse{
		List:       records,
		Count:      count,
		Page:       page,
		Size:       size,
		TotalPages: util.EstimateTotalPages(count, size),
	})
}

// UpdateSchoolAdmin godoc
// @Summary Change a school admin's role or restrictions
// @Tags school-admins
// @Accept  json
// @Produce  json
// @Param   id path string true "School ID or code"
// @Param   adminId path string true "Admin ID"
// @Param   body body service.SchoolAdminUpdateRequest true "Fields to change"
// @Success 200 {object} util.Response{data=model.SchoolAdmin}
// @Router /api/schools/{id}/admins/{adminId} [put]
// @Security BearerAuth
func (c *AdminController) UpdateSchoolAdmin(ctx *gin.Context) {
	var req service.SchoolAdminUpdateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	record, err := c.AdminService.UpdateSchoolAdmin(ctx.Param("id"), ctx.Param("adminId"), &req, middleware.CurrentAdmin(ctx))
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, record)
}

// RemoveSchoolAdmin godoc
// @Summary Detach an admin from a school
// @Tags school-admins
// @Produce  json
// @Param   id path string true "School ID or code"
// @Param   adminId path string true "Admin ID"
// @Success 200 {object} util.Response
// @Router /api/schools/{id}/admins/{adminId} [delete]
// @Security BearerAuth
func (c *AdminController) RemoveSchoolAdmin(ctx *gin.Context) {
	if err := c.AdminService.RemoveSchoolAdmin(ctx.Param("id"), ctx.Param("adminId"), middleware.CurrentAdmin(ctx)); err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"deleted": true})
}
