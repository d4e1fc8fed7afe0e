package handlers

import (
	"os"

	_ "leafdoctor/docs" // swagger spec

	"leafdoctor/internal/logger"
	"leafdoctor/internal/service"

	"github.com/gin-gonic/gin"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Options configures the HTTP surface.
type Options struct {
	// StaticDir holds optional page overrides and assets served at /static.
	StaticDir string
	// MaxMultipartMemory bounds in-memory buffering of uploads; 0 keeps gin's default.
	MaxMultipartMemory int64
}

// Handler wires HTTP layer to services and logging.
type Handler struct {
	services *service.Service
	log      *logger.Logger
	opts     Options
}

// NewHandler constructs a new HTTP handler with dependencies.
func NewHandler(services *service.Service, log *logger.Logger, opts Options) *Handler {
	return &Handler{services: services, log: log, opts: opts}
}

// InitRoutes builds and returns the Gin router with all routes registered.
func (h *Handler) InitRoutes() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), h.requestLogger)
	if h.opts.MaxMultipartMemory > 0 {
		router.MaxMultipartMemory = h.opts.MaxMultipartMemory
	}

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	router.GET("/healthz", h.health)

	if h.staticDirExists() {
		router.Static("/static", h.opts.StaticDir)
	}

	// Anonymous pages and form posts
	h.registerAuthRoutes(router)

	// Pages and API behind the session cookie
	h.registerAppRoutes(router)

	return router
}

func (h *Handler) registerAuthRoutes(r *gin.Engine) {
	r.GET("/login", h.loginPage)
	r.POST("/login", h.login)
	r.GET("/signup", h.signUpPage)
	r.POST("/signup", h.signUp)
	r.GET("/logout", h.logout)
}

func (h *Handler) registerAppRoutes(r *gin.Engine) {
	app := r.Group("/", h.sessionMiddleware)
	{
		app.GET("/", h.index)
		app.POST("/predict", h.predict)
	}
}

func (h *Handler) staticDirExists() bool {
	if h.opts.StaticDir == "" {
		return false
	}
	fi, err := os.Stat(h.opts.StaticDir)
	return err == nil && fi.IsDir()
}
