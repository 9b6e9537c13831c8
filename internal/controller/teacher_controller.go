package controller

import (
	"github.com/gin-gonic/gin"

	"schoolhub_backend/internal/middleware"
	"schoolhub_backend/internal/service"
	"schoolhub_backend/internal/util"
)

type TeacherController struct {
	UserService *service.UserService
}

func NewTeacherController(userService *service.UserService) *TeacherController {
	return &TeacherController{UserService: userService}
}

// CreateTeacher godoc
// @Summary Register a staff member
// @Description Creates the user account if needed and enrols it in the school
// @Tags teachers
// @Accept  json
// @Produce  json
// @Param   id path string true "School ID or code"
// @Param   body body service.TeacherRequest true "Staff details"
// @Success 201 {object} util.Response{data=model.SchoolTeacher}
// @Failure 400 {object} util.Response "Already enrolled"
// @Failure 403 {object} util.Response
// @Router /api/schools/{id}/teachers [post]
// @Security BearerAuth
func (c *TeacherController) CreateTeacher(ctx *gin.Context) {
	var req service.TeacherRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	membership, err := c.UserService.CreateTeacher(ctx.Param("id"), &req, middleware.CurrentAdmin(ctx))
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Created(ctx, membership)
}

// ListTeachers godoc
// @Summary List a school's staff
// @Tags teachers
// @Produce  json
// @Param   id path string true "School ID or code"
// @Param   page query int false "Page"
// @Param   size query int false "Page size"
// @Success 200 {object} util.Response{data=util.PageResponse}
// @Router /api/schools/{id}/teachers [get]
// @Security BearerAuth
func (c *TeacherController) ListTeachers(ctx *gin.Context) {
	page, size := pageParams(ctx)
	members, count, err := c.UserService.ListSchoolTeachers(ctx.Param("id"), page, size, middleware.CurrentAdmin(ctx))
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, util.PageResponse{
		List:       members,
		Count:      count,
		Page:       page,
		Size:       size,
		TotalPages: util.EstimateTotalPages(count, size),
	})
}

// UpdateTeacher godoc
// @Summary Update a staff member
// @Tags teachers
// @Accept  json
// @Produce  json
// @Param   id path string true "School ID or code"
// @Param   userId path string true "User ID"
// @Param   body body service.TeacherUpdateRequest true "Fields to change"
// @Success 200 {object} util.Response{data=model.SchoolTeacher}
// @Router /api/schools/{id}/teachers/{userId} [put]
// @Security BearerAuth
func (c *TeacherController) UpdateTeacher(ctx *gin.Context) {
	var req service.TeacherUpdateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	membership, err := c.UserService.UpdateTeacher(ctx.Param("id"), ctx.Param("userId"), &req, middleware.CurrentAdmin(ctx))
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, membership)
}

// RemoveTeacher godoc
// @Summary Remove a staff member from a school
// @Description Drops the enrolment; the user account itself survives
// @Tags teachers
// @Produce  json
// @Param   id path string true "School ID or code"
// @Param   userId path string true "User ID"
// @Success 200 {object} util.Response
// @Router /api/schools/{id}/teachers/{userId} [delete]
// @Security BearerAuth
func (c *TeacherController) RemoveTeacher(ctx *gin.Context) {
	if err := c.UserService.RemoveTeacher(ctx.Param("id"), ctx.Param("userId"), middleware.CurrentAdmin(ctx)); err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"deleted": true})
}

// Profile godoc
// @Summary Current user profile
// @Tags users
// @Produce  json
// @Success 200 {object} util.Response{data=model.User}
// @Router /api/users/me [get]
// @Security BearerAuth
func (c *TeacherController) Profile(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	user, err := c.UserService.GetUser(claims.SubjectID)
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, user)
}
