package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/planfold/planfold/internal/server/orgdata"
)

type orgRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

func (a *API) listOrgs(c *gin.Context) {
	orgs, err := a.orgs.List(c.Request.Context())
	if err != nil {
		a.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, orgs)
}

func (a *API) createOrg(c *gin.Context) {
	var req orgRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	org, err := a.orgs.Create(c.Request.Context(), orgdata.Input{Name: req.Name, Description: req.Description})
	if err != nil {
		a.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, org)
}

func (a *API) getOrg(c *gin.Context) {
	org, err := a.orgs.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		a.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, org)
}

func (a *API) updateOrg(c *gin.Context) {
	var req orgRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	org, err := a.orgs.Update(c.Request.Context(), c.Param("id"), orgdata.Input{Name: req.Name, Description: req.Description})
	if err != nil {
		a.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, org)
}

func (a *API) deleteOrg(c *gin.Context) {
	if err := a.orgs.Delete(c.Request.Context(), c.Param("id")); err != nil {
		a.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}
