package security

import (
	"net/http"

	"commissary/pkg/models"

	"github.com/gin-gonic/gin"
)

type UserLookup interface {
	GetUserByUsername(username string) (*models.User, error)
}

type LoginHandler struct {
	users  UserLookup
	secret []byte
}

func NewLoginHandler(users UserLookup, secret []byte) *LoginHandler {
	return &LoginHandler{users: users, secret: secret}
}

type loginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (h *LoginHandler) RegisterRoutes(router gin.IRouter) {
	router.POST("/auth/login", h.Login)
}

func (h *LoginHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Username and password are required"})
		return
	}

	user, err := h.users.GetUserByUsername(req.Username)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}
	if err := AuthenticateUser(user, req.Password); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	token, err := GenerateJWT(h.secret, user.ID, user.Role, user.Username)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Unable to issue token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token, "user": user})
}
