package api

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/your-org/acs/internal/access"
	"github.com/your-org/acs/internal/api/handlers"
	"github.com/your-org/acs/internal/api/ws"
	"github.com/your-org/acs/internal/auth"
	"github.com/your-org/acs/internal/enroll"
	"github.com/your-org/acs/internal/queue"
	"github.com/your-org/acs/internal/storage"
)

type RouterConfig struct {
	APIKey   string
	DB       *storage.PostgresStore
	MinIO    *storage.MinIOStore
	Producer *queue.Producer
	Hub      *ws.Hub
	Access   *access.Service
	Enroll   *enroll.Service
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	r.Use(RecoveryMiddleware())
	r.Use(LoggingMiddleware())
	r.Use(cors.Default())

	// System endpoints (no auth)
	systemH := handlers.NewSystemHandler(cfg.DB, cfg.MinIO, cfg.Producer)
	r.GET("/", systemH.Home)
	r.GET("/healthz", systemH.Healthz)
	r.GET("/readyz", systemH.Readyz)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.NoRoute(systemH.NotFound)

	// Legacy vendor surface (no auth: door controllers cannot send
	// custom headers)
	recordH := handlers.NewRecordHandler(cfg.Access)
	enrollH := handlers.NewEnrollHandler(cfg.Enroll)
	cgi := r.Group("/cgi-bin")
	cgi.GET("/recordFinder.cgi", recordH.FindText)
	cgi.POST("/FaceInfoManager.cgi", enrollH.ManageFaceInfo)

	// Modern API (with auth when a key is configured)
	apiGroup := r.Group("/api")
	apiGroup.Use(auth.APIKeyMiddleware(cfg.APIKey))

	// WebSocket
	apiGroup.GET("/ws", cfg.Hub.HandleWS)

	// Users
	userH := handlers.NewUserHandler(cfg.DB)
	apiGroup.POST("/users/register", userH.Register)
	apiGroup.GET("/users", userH.List)
	apiGroup.GET("/users/card/:cardNumber", userH.GetByCard)

	// Access decisions & audit log
	accessH := handlers.NewAccessHandler(cfg.Access)
	apiGroup.POST("/access/face", accessH.SubmitFace)
	apiGroup.POST("/access/card", accessH.SubmitCard)
	apiGroup.GET("/access/logs", accessH.Logs)
	apiGroup.GET("/access/offline-records", recordH.FindJSON)

	// Face enrollment
	apiGroup.POST("/face/enroll", enrollH.EnrollDryRun)
	apiGroup.GET("/face/templates/:userId", enrollH.Templates)
	apiGroup.GET("/face/photos", enrollH.Photo)

	return r
}
