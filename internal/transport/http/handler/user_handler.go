package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"toodoo/internal/service"
	mdw "toodoo/internal/transport/http/middleware"
	resp "toodoo/internal/transport/http/response"
)

type UserHandler struct {
	users *service.UserService
}

func NewUserHandler(users *service.UserService) *UserHandler { return &UserHandler{users: users} }

func (h *UserHandler) Mount(r gin.IRoutes) {
	r.GET("/profile", h.profile)
	r.PATCH("/profile", h.updateProfile)
	r.PATCH("/profile/password", h.changePassword)
	r.DELETE("/delete-account", h.deleteAccount)
}

func (h *UserHandler) profile(c *gin.Context) {
	p, err := h.users.Profile(c.Request.Context(), c.GetString(mdw.KeyUserID))
	if err != nil {
		resp.Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *UserHandler) updateProfile(c *gin.Context) {
	var patch service.ProfilePatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		resp.BadRequest(c, "invalid request body")
		return
	}
	n, err := h.users.UpdateProfile(c.Request.Context(), c.GetString(mdw.KeyUserID), patch)
	if err != nil {
		resp.Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"updated": n})
}

func (h *UserHandler) changePassword(c *gin.Context) {
	var in struct {
		OldPassword string `json:"oldPassword"`
		NewPassword string `json:"newPassword"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		resp.BadRequest(c, "invalid request body")
		return
	}
	if err := h.users.ChangePassword(c.Request.Context(), c.GetString(mdw.KeyUserID), in.OldPassword, in.NewPassword); err != nil {
		resp.Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "password updated"})
}

func (h *UserHandler) deleteAccount(c *gin.Context) {
	n, err := h.users.DeleteAccount(c.Request.Context(), c.GetString(mdw.KeyUserID))
	if err != nil {
		resp.Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "deleted": n})
}
