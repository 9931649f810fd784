package handler

import (
	"errors"
	"net/http"

	"taskboard/internal/auth"
	"taskboard/internal/model"
	"taskboard/internal/repository"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	repo   repository.UserRepositoryInterface
	tokens *auth.TokenService
	hasher *auth.PasswordHasher
}

func NewUserHandler(repo repository.UserRepositoryInterface, tokens *auth.TokenService, hasher *auth.PasswordHasher) *UserHandler {
	return &UserHandler{repo: repo, tokens: tokens, hasher: hasher}
}

type SignupRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required,max=72"`
	FullName string `json:"fullName"`
}

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type TokenResponse struct {
	Token string `json:"token"`
}

type UserResponse struct {
	ID       int64  `json:"id"`
	FullName string `json:"fullName"`
	Username string `json:"username"`
}

// Signup godoc
// @Summary  Register a user
// @Tags     Users
// @Accept   json
// @Produce  json
// @Param    body body SignupRequest true "New user"
// @Success  201 {object} MessageResponse
// @Failure  400 {object} MessageResponse
// @Router   /signup [post]
func (h *UserHandler) Signup(c *gin.Context) {
	var req SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondMessage(c, http.StatusBadRequest, "Invalid input")
		return
	}

	hash, err := h.hasher.Hash(req.Password)
	if err != nil {
		_ = c.Error(err)
		respondMessage(c, http.StatusInternalServerError, "Hash error")
		return
	}

	user := &model.User{
		Username: req.Username,
		Password: hash,
		FullName: req.FullName,
	}
	if err := h.repo.Create(c.Request.Context(), user); err != nil {
		if errors.Is(err, repository.ErrUserExists) {
			respondMessage(c, http.StatusBadRequest, "User already exists")
			return
		}
		_ = c.Error(err)
		respondMessage(c, http.StatusInternalServerError, "Create failed")
		return
	}

	respondMessage(c, http.StatusCreated, "User created")
}

// Login godoc
// @Summary  Exchange credentials for a bearer token
// @Tags     Users
// @Accept   json
// @Produce  json
// @Param    body body LoginRequest true "Credentials"
// @Success  200 {object} TokenResponse
// @Failure  400 {object} MessageResponse
// @Router   /login [post]
func (h *UserHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondMessage(c, http.StatusBadRequest, "Invalid credentials")
		return
	}

	user, err := h.repo.FindByUsername(c.Request.Context(), req.Username)
	if err != nil {
		_ = c.Error(err)
		respondMessage(c, http.StatusInternalServerError, "DB error")
		return
	}
	if user == nil || h.hasher.Compare(user.Password, req.Password) != nil {
		respondMessage(c, http.StatusBadRequest, "Invalid credentials")
		return
	}

	token, err := h.tokens.GenerateToken(user)
	if err != nil {
		_ = c.Error(err)
		respondMessage(c, http.StatusInternalServerError, "Failed to generate token")
		return
	}

	c.JSON(http.StatusOK, TokenResponse{Token: token})
}

// Me godoc
// @Summary   Current user
// @Tags      Users
// @Produce   json
// @Security  BearerAuth
// @Success   200 {object} UserResponse
// @Failure   401 {object} MessageResponse
// @Router    /user-me [get]
func (h *UserHandler) Me(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	user, err := h.repo.GetByID(c.Request.Context(), userID)
	if err != nil {
		_ = c.Error(err)
		respondMessage(c, http.StatusInternalServerError, "DB error")
		return
	}
	if user == nil {
		respondMessage(c, http.StatusUnauthorized, "Token missing")
		return
	}

	c.JSON(http.StatusOK, UserResponse{
		ID:       user.ID,
		FullName: user.FullName,
		Username: user.Username,
	})
}
