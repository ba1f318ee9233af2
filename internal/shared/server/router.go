package server

import (
	"github.com/gin-gonic/gin"

	"docai-backend/internal/process"
	"docai-backend/internal/services/health"
	"docai-backend/internal/shared/config"
	"docai-backend/internal/shared/server/middleware"
	"docai-backend/internal/shared/server/respond"
)

// RouterDeps carries the handlers the router wires up.
type RouterDeps struct {
	Config         config.Config
	Health         *health.Service
	ProcessHandler *process.Handler
}

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(deps.Config.CORSAllowOrigin),
	)

	healthSvc := deps.Health
	if healthSvc == nil {
		healthSvc = health.NewService()
	}
	r.GET("/health", func(c *gin.Context) {
		respond.OK(c, healthSvc.Status())
	})

	// The API key gates only the processing endpoints; health stays open.
	proc := r.Group("/process")
	proc.Use(middleware.APIKey(deps.Config.APIKey))
	deps.ProcessHandler.RegisterRoutes(proc)

	return r
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":8080"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
