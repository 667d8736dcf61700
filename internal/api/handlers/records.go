package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/your-org/acs/internal/access"
	"github.com/your-org/acs/internal/dahua"
	"github.com/your-org/acs/internal/observability"
	"github.com/your-org/acs/internal/storage"
)

// RecordHandler serves the legacy record queries in both the key=value
// text encoding and the JSON document encoding. The two endpoints share
// the query and mapping path; only the final encoding differs.
type RecordHandler struct {
	svc *access.Service
}

func NewRecordHandler(svc *access.Service) *RecordHandler {
	return &RecordHandler{svc: svc}
}

// FindText implements GET /cgi-bin/recordFinder.cgi.
func (h *RecordHandler) FindText(c *gin.Context) {
	if c.Query("action") != dahua.FinderAction {
		c.String(http.StatusBadRequest, "action=find")
		return
	}
	if c.Query("name") != dahua.FinderTable {
		c.String(http.StatusBadRequest, "name=AccessControlCardRec")
		return
	}

	count, _ := strconv.Atoi(c.DefaultQuery("count", "1024"))
	filter := storage.QueryFilter{
		Limit: count,
		From:  dahua.ParseTimeBound(c.Query("StartTime")),
		To:    dahua.ParseTimeBound(c.Query("EndTime")),
	}
	// condition.CardNo is accepted for protocol parity; the legacy
	// controller filters on it client-side.
	_ = c.Query("condition.CardNo")

	entries, err := h.svc.FindEntries(c.Request.Context(), filter)
	if err != nil {
		c.String(http.StatusInternalServerError, "error="+err.Error())
		return
	}

	observability.ProtocolQueries.WithLabelValues("text").Inc()
	c.String(http.StatusOK, dahua.EncodeText(dahua.FromEntries(entries)))
}

// FindJSON implements GET /api/access/offline-records, the JSON rendering
// of the same record set.
func (h *RecordHandler) FindJSON(c *gin.Context) {
	count, _ := strconv.Atoi(c.DefaultQuery("Count", "1024"))
	filter := storage.QueryFilter{
		Limit: count,
		From:  dahua.ParseTimeBound(c.Query("StartTime")),
		To:    dahua.ParseTimeBound(c.Query("EndTime")),
	}
	_ = c.Query("CardNo") // accepted, never applied server-side

	entries, err := h.svc.FindEntries(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	observability.ProtocolQueries.WithLabelValues("json").Inc()
	c.JSON(http.StatusOK, dahua.Document(dahua.FromEntries(entries)))
}
