// Package httpapi exposes the server core over a REST surface: auth and
// session endpoints, admin user/tag/backup management, and organization CRUD
// against the active tagged store.
package httpapi

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/planfold/planfold/internal/logging"
	"github.com/planfold/planfold/internal/server/config"
	"github.com/planfold/planfold/internal/server/orgdata"
	"github.com/planfold/planfold/internal/server/store"
	"github.com/planfold/planfold/internal/server/users"
)

// API bundles the services the handlers dispatch to.
type API struct {
	cfg      *config.Config
	logger   logging.Logger
	manager  *store.Manager
	users    *users.Service
	orgs     *orgdata.Service
	uploader *store.BackupUploader
}

// New constructs the API. uploader may be nil when offsite backup copies are
// not configured.
func New(cfg *config.Config, logger logging.Logger, manager *store.Manager,
	usersSvc *users.Service, orgsSvc *orgdata.Service, uploader *store.BackupUploader) *API {
	return &API{
		cfg:      cfg,
		logger:   logger,
		manager:  manager,
		users:    usersSvc,
		orgs:     orgsSvc,
		uploader: uploader,
	}
}

// Router builds the gin engine with all routes registered.
func (a *API) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(cors.New(cors.Config{
		AllowAllOrigins:  true,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	r.POST("/auth/register", a.register)
	r.POST("/auth/login", a.login)
	r.POST("/auth/refresh", a.refresh)
	r.POST("/auth/logout", a.logout)

	authed := r.Group("/")
	authed.Use(a.authRequired())
	{
		authed.GET("/auth/me", a.me)
		authed.POST("/auth/password", a.changePassword)

		authed.GET("/orgs", a.listOrgs)
		authed.POST("/orgs", a.createOrg)
		authed.GET("/orgs/:id", a.getOrg)
		authed.PATCH("/orgs/:id", a.updateOrg)
		authed.DELETE("/orgs/:id", a.deleteOrg)
	}

	admin := r.Group("/admin")
	admin.Use(a.authRequired())
	{
		admin.GET("/users", a.listUsers)
		admin.POST("/users", a.createUser)
		admin.GET("/users/:id", a.getUser)
		admin.PATCH("/users/:id", a.updateUser)
		admin.DELETE("/users/:id", a.deleteUser)

		admin.GET("/tags", a.listTags)
		admin.PUT("/tag", a.switchTag)
		admin.POST("/backup", a.createBackup)
	}

	return r
}
