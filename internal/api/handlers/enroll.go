package handlers

import (
	"errors"
	"fmt"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/your-org/acs/internal/enroll"
	"github.com/your-org/acs/pkg/dto"
)

type EnrollHandler struct {
	svc *enroll.Service
}

func NewEnrollHandler(svc *enroll.Service) *EnrollHandler {
	return &EnrollHandler{svc: svc}
}

// ManageFaceInfo implements POST /cgi-bin/FaceInfoManager.cgi. Only
// action=add is supported; this is the persisting enrollment path.
func (h *EnrollHandler) ManageFaceInfo(c *gin.Context) {
	if c.Query("action") != "add" {
		c.String(http.StatusBadRequest, "error=Unsupported action")
		return
	}

	req, userID, ok := bindEnrollRequest(c)
	if !ok {
		return
	}

	summary, err := h.svc.Enroll(c.Request.Context(), enroll.Request{
		UserID:    userID,
		UserName:  req.UserName,
		Templates: req.FaceTemplates,
		Photos:    req.Photos,
	})
	if err != nil {
		h.renderEnrollError(c, err, userID)
		return
	}

	c.JSON(http.StatusOK, dto.EnrollStoredResponse{
		Message:        "Face template enrolled and stored successfully",
		UserID:         summary.UserID,
		UserName:       summary.UserName,
		TemplatesCount: summary.TemplatesCount,
		PhotosCount:    summary.PhotosCount,
		EnrollmentDate: summary.EnrolledAt.Format(time.RFC3339),
	})
}

// EnrollDryRun implements POST /api/face/enroll: the same validation as
// the CGI path, but nothing is persisted.
func (h *EnrollHandler) EnrollDryRun(c *gin.Context) {
	req, userID, ok := bindEnrollRequest(c)
	if !ok {
		return
	}

	summary, err := h.svc.Validate(c.Request.Context(), enroll.Request{
		UserID:    userID,
		UserName:  req.UserName,
		Templates: req.FaceTemplates,
		Photos:    req.Photos,
	})
	if err != nil {
		h.renderEnrollError(c, err, userID)
		return
	}

	c.JSON(http.StatusOK, dto.EnrollDryRunResponse{
		Message:        "Face template enrollment received successfully",
		Note:           "Face data not stored in mock database",
		UserID:         summary.UserID,
		UserName:       summary.UserName,
		TemplatesCount: summary.TemplatesCount,
		PhotosCount:    summary.PhotosCount,
	})
}

func (h *EnrollHandler) Templates(c *gin.Context) {
	userID, err := strconv.ParseInt(c.Param("userId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid userId format"})
		return
	}

	records, err := h.svc.Templates(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, enroll.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": fmt.Sprintf("User with ID %d not found", userID)})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	resp := make([]dto.TemplateRecord, 0, len(records))
	for _, r := range records {
		resp = append(resp, dto.TemplateRecord{
			ID:             r.ID,
			UserID:         r.UserID,
			UserName:       r.UserName,
			FaceTemplate:   r.FaceTemplate,
			PhotoKey:       r.PhotoKey,
			EnrollmentDate: r.EnrolledAt.Format(time.RFC3339),
		})
	}
	c.JSON(http.StatusOK, dto.TemplateListResponse{UserID: userID, Templates: resp, Count: len(resp)})
}

// Photo proxies a stored enrollment photo from MinIO by object key.
func (h *EnrollHandler) Photo(c *gin.Context) {
	key := c.Query("key")
	if key == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "photo key required"})
		return
	}

	data, err := h.svc.Photo(c.Request.Context(), key)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "photo not found"})
		return
	}

	c.Data(http.StatusOK, "application/octet-stream", data)
}

func (h *EnrollHandler) renderEnrollError(c *gin.Context, err error, userID int64) {
	switch {
	case errors.Is(err, enroll.ErrUserNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": fmt.Sprintf("User with ID %d not found", userID)})
	case errors.Is(err, enroll.ErrTooManyTemplates):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Maximum 20 face templates allowed"})
	case errors.Is(err, enroll.ErrTooManyPhotos):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Maximum 5 photos allowed"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

func bindEnrollRequest(c *gin.Context) (dto.EnrollRequest, int64, bool) {
	var req dto.EnrollRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return req, 0, false
	}

	userID, err := coerceUserID(req.UserID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid userId format"})
		return req, 0, false
	}
	return req, userID, true
}

// coerceUserID accepts the two encodings device firmwares send: a JSON
// number or a numeric string.
func coerceUserID(v interface{}) (int64, error) {
	switch id := v.(type) {
	case float64:
		if id != math.Trunc(id) {
			return 0, fmt.Errorf("not an integer: %v", id)
		}
		return int64(id), nil
	case string:
		return strconv.ParseInt(id, 10, 64)
	default:
		return 0, fmt.Errorf("unsupported userId type %T", v)
	}
}
