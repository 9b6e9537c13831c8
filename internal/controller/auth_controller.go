package controller

import (
	"github.com/gin-gonic/gin"

	"schoolhub_backend/internal/service"
	"schoolhub_backend/internal/util"
)

type AuthController struct {
	AuthService *service.AuthService
}

func NewAuthController(authService *service.AuthService) *AuthController {
	return &AuthController{AuthService: authService}
}

// Login godoc
// @Summary User login
// @Description Authenticates a staff account with email and password
// @Tags auth
// @Accept  json
// @Produce  json
// @Param   body body service.LoginRequest true "Credentials"
// @Success 200 {object} util.Response{data=service.LoginResponse}
// @Failure 401 {object} util.Response "Invalid credentials"
// @Router /api/auth/login [post]
func (c *AuthController) Login(ctx *gin.Context) {
	var req service.LoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	resp, err := c.AuthService.Login(&req)
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, resp)
}

// RequestAdminOTP godoc
// @Summary Request admin one-time code
// @Description Issues a short-lived login code for the admin email
// @Tags auth
// @Accept  json
// @Produce  json
// @Param   body body service.OTPRequest true "Admin email"
// @Success 200 {object} util.Response
// @Router /api/auth/admin/otp [post]
func (c *AuthController) RequestAdminOTP(ctx *gin.Context) {
	var req service.OTPRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	if err := c.AuthService.RequestAdminOTP(ctx.Request.Context(), &req); err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"sent": true})
}

// VerifyAdminOTP godoc
// @Summary Admin login
// @Description Exchanges a valid one-time code for an admin token
// @Tags auth
// @Accept  json
// @Produce  json
// @Param   body body service.OTPVerifyRequest true "Email and code"
// @Success 200 {object} util.Response{data=service.AdminLoginResponse}
// @Failure 400 {object} util.Response "Invalid or expired code"
// @Router /api/auth/admin/verify [post]
func (c *AuthController) VerifyAdminOTP(ctx *gin.Context) {
	var req service.OTPVerifyRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	resp, err := c.AuthService.VerifyAdminOTP(ctx.Request.Context(), &req)
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, resp)
}
