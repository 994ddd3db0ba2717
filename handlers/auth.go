package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"safetysight/auth"
	"safetysight/db"
	"safetysight/types"
)

// AuthHandler covers registration, login and logout against the users
// collection.
type AuthHandler struct {
	users *db.Users
	jwt   *auth.JWTManager
}

func NewAuthHandler(users *db.Users, jwt *auth.JWTManager) *AuthHandler {
	return &AuthHandler{users: users, jwt: jwt}
}

type registerRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
	Role     string `json:"role"`
	Zone     string `json:"zone"`
}

type sessionResponse struct {
	Token string          `json:"token"`
	User  *types.Identity `json:"user"`
}

// Register creates an account and opens a session. The chosen role is fixed
// for every session the account ever opens.
func (h *AuthHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name, email and password are required"})
		return
	}

	role := types.Role(req.Role)
	switch role {
	case types.RoleAdmin, types.RoleResponder, types.RoleUser:
	case "":
		role = types.RoleUser
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown role"})
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrWeakCredential) {
			c.JSON(http.StatusBadRequest, gin.H{"error": auth.ErrWeakCredential.Error()})
			return
		}
		respondError(c, err)
		return
	}

	ident := &types.Identity{
		Name:  req.Name,
		Email: req.Email,
		Role:  role,
		Zone:  req.Zone,
	}
	if err := h.users.CreateUser(c.Request.Context(), ident, hash); err != nil {
		if errors.Is(err, db.ErrUserExists) {
			c.JSON(http.StatusConflict, gin.H{"error": auth.ErrDuplicateAccount.Error()})
			return
		}
		respondError(c, err)
		return
	}

	token, err := h.jwt.GenerateToken(ident)
	if err != nil {
		respondError(c, err)
		return
	}

	log.Printf("Registered %s (%s)", ident.Email, ident.Role)
	c.JSON(http.StatusCreated, sessionResponse{Token: token, User: ident})
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Login authenticates an account and opens a session.
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "email and password are required"})
		return
	}

	ident, hash, err := h.users.GetByEmail(c.Request.Context(), req.Email)
	if err != nil {
		if errors.Is(err, db.ErrUserNotFound) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": auth.ErrInvalidCredential.Error()})
			return
		}
		respondError(c, err)
		return
	}

	if err := auth.CheckPassword(req.Password, hash); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": auth.ErrInvalidCredential.Error()})
		return
	}

	token, err := h.jwt.GenerateToken(ident)
	if err != nil {
		respondError(c, err)
		return
	}

	log.Printf("User logged in: %s (role: %s)", ident.Email, ident.Role)
	c.JSON(http.StatusOK, sessionResponse{Token: token, User: ident})
}

// Logout exists for client parity; sessions are stateless bearer tokens, so
// the server has nothing to tear down.
func (h *AuthHandler) Logout(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "signed out"})
}
