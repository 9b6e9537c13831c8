package controller

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"schoolhub_backend/internal/middleware"
	"schoolhub_backend/internal/service"
	"schoolhub_backend/internal/util"
)

// pageParams pulls page/size from the query string and clamps them.
func pageParams(ctx *gin.Context) (int, int) {
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	size, _ := strconv.Atoi(ctx.DefaultQuery("size", strconv.Itoa(util.DefaultPageSize)))
	return util.NormalizePage(page, size)
}

// currentActor builds the access-control actor for routes open to admins,
// users, and anonymous callers alike.
func currentActor(ctx *gin.Context) service.Actor {
	if admin := middleware.CurrentAdmin(ctx); admin != nil {
		return service.AdminActor(admin)
	}
	if claims := util.GetUserFromContext(ctx); claims != nil {
		return service.UserActor(claims.SubjectID)
	}
	return service.NoActor()
}
