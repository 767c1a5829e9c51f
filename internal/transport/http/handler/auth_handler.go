package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"toodoo/internal/domain"
	"toodoo/internal/service"
	resp "toodoo/internal/transport/http/response"
)

type AuthHandler struct {
	auth *service.AuthService
}

func NewAuthHandler(auth *service.AuthService) *AuthHandler { return &AuthHandler{auth: auth} }

func (h *AuthHandler) Mount(r gin.IRoutes) {
	r.POST("/signup", h.signup)
	r.POST("/login", h.login)
	r.POST("/request-reset", h.requestReset)
	r.POST("/reset-password", h.resetPassword)
}

func sessionBody(s *service.Session) gin.H {
	return gin.H{
		"token":           s.Token,
		"user_id":         s.User.ID,
		"name":            s.User.Name,
		"email":           s.User.Email,
		"bio":             s.User.Bio,
		"profile_picture": s.User.Avatar,
	}
}

func (h *AuthHandler) signup(c *gin.Context) {
	var in struct {
		Name            string `json:"name"`
		Email           string `json:"email"`
		Password        string `json:"password"`
		ConfirmPassword string `json:"confirm_password"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		resp.BadRequest(c, "invalid request body")
		return
	}
	s, err := h.auth.Signup(c.Request.Context(), in.Name, in.Email, in.Password, in.ConfirmPassword)
	if err != nil {
		resp.Fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, sessionBody(s))
}

func (h *AuthHandler) login(c *gin.Context) {
	var in struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		resp.BadRequest(c, "invalid request body")
		return
	}
	s, err := h.auth.Login(c.Request.Context(), in.Email, in.Password)
	if err != nil {
		resp.Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, sessionBody(s))
}

func (h *AuthHandler) requestReset(c *gin.Context) {
	var in struct {
		Email string `json:"email"`
	}
	if err := c.ShouldBindJSON(&in); err != nil || in.Email == "" {
		resp.Fail(c, domain.Validation("email is required"))
		return
	}
	if err := h.auth.RequestReset(c.Request.Context(), in.Email); err != nil {
		resp.Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *AuthHandler) resetPassword(c *gin.Context) {
	var in struct {
		Token       string `json:"token"`
		NewPassword string `json:"new_password"`
	}
	if err := c.ShouldBindJSON(&in); err != nil || in.Token == "" {
		resp.Fail(c, domain.Validation("token is required"))
		return
	}
	if err := h.auth.ResetPassword(c.Request.Context(), in.Token, in.NewPassword); err != nil {
		resp.Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
