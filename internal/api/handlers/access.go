package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/your-org/acs/internal/access"
	"github.com/your-org/acs/internal/models"
	"github.com/your-org/acs/pkg/dto"
)

type AccessHandler struct {
	svc *access.Service
}

func NewAccessHandler(svc *access.Service) *AccessHandler {
	return &AccessHandler{svc: svc}
}

// SubmitFace ingests a face scanner decision. The scanner has already
// matched (or failed to match) the face; we log what it reports.
func (h *AccessHandler) SubmitFace(c *gin.Context) {
	var req dto.FaceAccessRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required fields: userId and accessGranted"})
		return
	}

	receipt, err := h.svc.SubmitFace(c.Request.Context(), access.FaceDecision{
		UserID:   *req.UserID,
		Granted:  *req.AccessGranted,
		DeviceID: req.DeviceID,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, dto.AccessEventResponse{
		Message: "Face access result logged successfully",
		Data:    eventData(*receipt),
	})
}

func (h *AccessHandler) SubmitCard(c *gin.Context) {
	var req dto.CardAccessRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required fields: cardNumber and accessGranted"})
		return
	}

	receipt, err := h.svc.SubmitCard(c.Request.Context(), access.CardDecision{
		CardNumber: req.CardNumber,
		Granted:    *req.AccessGranted,
		DeviceID:   req.DeviceID,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, dto.AccessEventResponse{
		Message: "Card access result logged successfully",
		Data:    eventData(*receipt),
	})
}

func (h *AccessHandler) Logs(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "100"))

	entries, err := h.svc.RecentEntries(c.Request.Context(), limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	logs := make([]dto.LogEntry, 0, len(entries))
	for _, ev := range entries {
		logs = append(logs, LogEntryFromEvent(ev))
	}
	c.JSON(http.StatusOK, dto.LogsResponse{Logs: logs, Count: len(logs)})
}

func eventData(r access.Receipt) dto.AccessEventData {
	return dto.AccessEventData{
		UserID:       r.UserID,
		UserName:     r.UserName,
		CardNumber:   r.CardNumber,
		AccessMethod: string(r.Method),
		Result:       string(r.Result),
		Timestamp:    r.Timestamp.Format(time.RFC3339),
		DeviceID:     r.DeviceID,
	}
}

// LogEntryFromEvent converts a stored audit entry to its wire form. Also
// used by the NATS consumer when broadcasting over WebSocket.
func LogEntryFromEvent(ev models.AccessEvent) dto.LogEntry {
	return dto.LogEntry{
		ID:           ev.ID,
		UserID:       ev.UserID,
		UserName:     ev.UserName,
		AccessMethod: string(ev.Method),
		Result:       string(ev.Result),
		Timestamp:    ev.Timestamp.Format(time.RFC3339),
		DeviceID:     ev.DeviceID,
	}
}
