package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/your-org/acs/internal/queue"
	"github.com/your-org/acs/internal/storage"
)

type SystemHandler struct {
	db       *storage.PostgresStore
	minio    *storage.MinIOStore
	producer *queue.Producer
}

func NewSystemHandler(db *storage.PostgresStore, minio *storage.MinIOStore, producer *queue.Producer) *SystemHandler {
	return &SystemHandler{db: db, minio: minio, producer: producer}
}

// Home serves the API index document legacy integrations probe on startup.
func (h *SystemHandler) Home(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message": "Access System API",
		"version": "1.0",
		"endpoints": gin.H{
			"user_management": gin.H{
				"register_user":    "POST /api/users/register",
				"get_users":        "GET /api/users (use User-Id header for specific user)",
				"get_user_by_card": "GET /api/users/card/<card_number>",
			},
			"access_logs": gin.H{
				"submit_face_access":       "POST /api/access/face",
				"submit_card_access":       "POST /api/access/card",
				"get_access_logs":          "GET /api/access/logs",
				"get_offline_records_json": "GET /api/access/offline-records",
			},
			"face_management": gin.H{
				"enroll_face_json":   "POST /api/face/enroll",
				"get_face_templates": "GET /api/face/templates/<user_id>",
				"enroll_face_dahua":  "POST /cgi-bin/FaceInfoManager.cgi?action=add",
			},
			"dahua_compatible": gin.H{
				"get_offline_records": "GET /cgi-bin/recordFinder.cgi?action=find&name=AccessControlCardRec&[params]",
				"enroll_face":         "POST /cgi-bin/FaceInfoManager.cgi?action=add",
			},
		},
	})
}

// NotFound is the catch-all for unknown routes.
func (h *SystemHandler) NotFound(c *gin.Context) {
	c.JSON(http.StatusNotFound, gin.H{"error": "Endpoint not found"})
}

func (h *SystemHandler) Healthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *SystemHandler) Readyz(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
	defer cancel()

	checks := map[string]string{}
	healthy := true

	// Check Postgres
	if err := h.db.Ping(ctx); err != nil {
		checks["postgres"] = err.Error()
		healthy = false
	} else {
		checks["postgres"] = "ok"
	}

	// Check MinIO
	if err := h.minio.Ping(ctx); err != nil {
		checks["minio"] = err.Error()
		healthy = false
	} else {
		checks["minio"] = "ok"
	}

	// Check NATS
	if err := h.producer.Ping(); err != nil {
		checks["nats"] = err.Error()
		healthy = false
	} else {
		checks["nats"] = "ok"
	}

	status := http.StatusOK
	if !healthy {
		status = http.StatusServiceUnavailable
	}

	c.JSON(status, gin.H{
		"status": map[bool]string{true: "ready", false: "not ready"}[healthy],
		"checks": checks,
	})
}
