package httpapi

import (
	"net/http"
	"os"
	"path/filepath"

	"github.com/gin-gonic/gin"

	"github.com/planfold/planfold/internal/server/users"
)

type createUserRequest struct {
	Email     string `json:"email" binding:"required"`
	Password  string `json:"password" binding:"required"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Note      string `json:"note"`
}

type updateUserRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Note      string `json:"note"`
}

type switchTagRequest struct {
	Tag string `json:"tag" binding:"required"`
}

func (a *API) listUsers(c *gin.Context) {
	all, err := a.users.Users(c.Request.Context())
	if err != nil {
		a.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, all)
}

func (a *API) createUser(c *gin.Context) {
	var req createUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := a.users.CreateUser(c.Request.Context(), req.Email, req.Password, users.Profile{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Note:      req.Note,
	})
	if err != nil {
		a.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, user)
}

func (a *API) getUser(c *gin.Context) {
	user, err := a.users.GetUser(c.Request.Context(), c.Param("id"))
	if err != nil {
		a.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

func (a *API) updateUser(c *gin.Context) {
	var req updateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := a.users.UpdateProfile(c.Request.Context(), c.Param("id"), users.Profile{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Note:      req.Note,
	})
	if err != nil {
		a.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

func (a *API) deleteUser(c *gin.Context) {
	if err := a.users.DeleteUser(c.Request.Context(), c.Param("id")); err != nil {
		a.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (a *API) listTags(c *gin.Context) {
	tags, err := a.manager.Tags()
	if err != nil {
		a.respondError(c, err)
		return
	}
	active, err := a.manager.ActiveTag()
	if err != nil {
		a.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"tags": tags, "active": active})
}

func (a *API) switchTag(c *gin.Context) {
	var req switchTagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := a.manager.SwitchTag(req.Tag); err != nil {
		a.respondError(c, err)
		return
	}
	a.logger.Info(c.Request.Context(), "switched active tag", "tag", req.Tag)
	c.JSON(http.StatusOK, gin.H{"active": req.Tag})
}

// createBackup snapshots both stores locally and, when an offsite target is
// configured, copies the snapshot to the bucket. The local snapshot is the
// result; an upload failure is reported alongside it, not instead of it.
func (a *API) createBackup(c *gin.Context) {
	rel, err := a.manager.CreateBackup()
	if err != nil {
		a.respondError(c, err)
		return
	}

	resp := gin.H{"backup": rel}
	if a.uploader != nil {
		if err := a.uploadBackup(c, rel); err != nil {
			a.logger.Error(c.Request.Context(), "offsite backup copy failed", "backup", rel, "error", err)
			resp["uploadError"] = err.Error()
		} else {
			resp["uploaded"] = true
		}
	}
	c.JSON(http.StatusCreated, resp)
}

func (a *API) uploadBackup(c *gin.Context, rel string) error {
	f, err := os.Open(filepath.Join(a.cfg.DataDir, rel))
	if err != nil {
		return err
	}
	defer f.Close()
	return a.uploader.Upload(c.Request.Context(), rel, f)
}
