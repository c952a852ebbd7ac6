package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/planfold/planfold/internal/server/users"
)

type credentialsRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type registerRequest struct {
	Email     string `json:"email" binding:"required"`
	Password  string `json:"password" binding:"required"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Note      string `json:"note"`
}

type refreshRequest struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}

type changePasswordRequest struct {
	OldPassword string `json:"oldPassword" binding:"required"`
	NewPassword string `json:"newPassword" binding:"required"`
}

func authPayloadResponse(p *users.AuthPayload) gin.H {
	return gin.H{
		"accessToken":  p.AccessToken,
		"refreshToken": p.RefreshToken,
		"user":         p.User,
	}
}

func (a *API) register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	payload, err := a.users.Register(c.Request.Context(), req.Email, req.Password, users.Profile{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Note:      req.Note,
	})
	if err != nil {
		a.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, authPayloadResponse(payload))
}

func (a *API) login(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	payload, err := a.users.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		a.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, authPayloadResponse(payload))
}

func (a *API) refresh(c *gin.Context) {
	var req refreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	payload, err := a.users.Refresh(c.Request.Context(), req.RefreshToken)
	if err != nil {
		a.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, authPayloadResponse(payload))
}

func (a *API) logout(c *gin.Context) {
	var req refreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ok, err := a.users.Logout(c.Request.Context(), req.RefreshToken)
	if err != nil {
		a.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": ok})
}

func (a *API) me(c *gin.Context) {
	user, err := a.users.GetUser(c.Request.Context(), c.GetString(userIDKey))
	if err != nil {
		a.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

func (a *API) changePassword(c *gin.Context) {
	var req changePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	err := a.users.ChangePassword(c.Request.Context(), c.GetString(userIDKey), req.OldPassword, req.NewPassword)
	if err != nil {
		a.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}
