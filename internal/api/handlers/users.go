package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/your-org/acs/internal/models"
	"github.com/your-org/acs/internal/storage"
	"github.com/your-org/acs/pkg/dto"
)

type UserHandler struct {
	store storage.UserStore
}

func NewUserHandler(store storage.UserStore) *UserHandler {
	return &UserHandler{store: store}
}

func (h *UserHandler) Register(c *gin.Context) {
	var req dto.RegisterUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user := &models.User{
		Name:       req.Name,
		Role:       req.Role,
		PhotoPath:  req.PhotoPath,
		CardNumber: req.CardNumber,
	}
	if err := h.store.CreateUser(c.Request.Context(), user); err != nil {
		if errors.Is(err, storage.ErrDuplicateCard) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "card number already registered"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, dto.RegisterUserResponse{
		Message: "User registered successfully",
		UserID:  user.ID,
	})
}

// List returns every registered user, or a single user when the legacy
// User-Id header is set.
func (h *UserHandler) List(c *gin.Context) {
	if header := c.GetHeader("User-Id"); header != "" {
		id, err := strconv.ParseInt(header, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"error":      "Invalid user ID format. Must be a number.",
				"providedId": header,
			})
			return
		}

		user, err := h.store.GetUser(c.Request.Context(), id)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		if user == nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found", "userId": id})
			return
		}

		c.JSON(http.StatusOK, dto.UserFoundResponse{
			Message: "User found",
			User:    userResponse(*user),
		})
		return
	}

	users, err := h.store.ListUsers(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	resp := make([]dto.UserResponse, 0, len(users))
	for _, u := range users {
		resp = append(resp, userResponse(u))
	}
	c.JSON(http.StatusOK, dto.UserListResponse{Users: resp, Count: len(resp)})
}

func (h *UserHandler) GetByCard(c *gin.Context) {
	user, err := h.store.GetUserByCard(c.Request.Context(), c.Param("cardNumber"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if user == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found for this card"})
		return
	}

	c.JSON(http.StatusOK, userResponse(*user))
}

func userResponse(u models.User) dto.UserResponse {
	return dto.UserResponse{
		ID:               u.ID,
		Name:             u.Name,
		Role:             u.Role,
		PhotoPath:        u.PhotoPath,
		CardNumber:       u.CardNumber,
		RegistrationDate: u.RegistrationDate.Format(time.RFC3339),
	}
}
