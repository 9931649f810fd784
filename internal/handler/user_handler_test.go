package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"taskboard/internal/auth"
	"taskboard/internal/handler"
	"taskboard/internal/middleware"
	"taskboard/internal/model"
	"taskboard/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// Мок репозитория пользователей
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	args := m.Called(ctx, username)
	user := args.Get(0)
	if user == nil {
		return nil, args.Error(1)
	}
	return user.(*model.User), args.Error(1)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id int64) (*model.User, error) {
	args := m.Called(ctx, id)
	user := args.Get(0)
	if user == nil {
		return nil, args.Error(1)
	}
	return user.(*model.User), args.Error(1)
}

var _ repository.UserRepositoryInterface = (*MockUserRepository)(nil)

const testSecret = "test-secret"

func setupTest() (*gin.Engine, *MockUserRepository, *auth.TokenService) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	mockRepo := new(MockUserRepository)
	tokens := auth.NewTokenService(testSecret, 0)
	userHandler := handler.NewUserHandler(mockRepo, tokens, auth.NewPasswordHasher(bcrypt.MinCost))

	r.POST("/signup", userHandler.Signup)
	r.POST("/login", userHandler.Login)
	r.GET("/user-me", middleware.JWTAuthMiddleware(tokens, mockRepo), userHandler.Me)

	return r, mockRepo, tokens
}

func postJSON(router *gin.Engine, path string, body any) *httptest.ResponseRecorder {
	jsonBody, _ := json.Marshal(body)
	req, _ := http.NewRequest(http.MethodPost, path, bytes.NewBuffer(jsonBody))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	return resp
}

func decodeMessage(t *testing.T, resp *httptest.ResponseRecorder) string {
	t.Helper()
	var response handler.MessageResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &response))
	return response.Message
}

func TestSignup_Success(t *testing.T) {
	// Arrange
	router, mockRepo, _ := setupTest()

	mockRepo.On("Create", mock.Anything, mock.MatchedBy(func(u *model.User) bool {
		// the password is stored hashed, not verbatim
		return u.Username == "alice" && u.FullName == "Alice Liddell" &&
			bcrypt.CompareHashAndPassword([]byte(u.Password), []byte("password123")) == nil
	})).Return(nil)

	// Act
	resp := postJSON(router, "/signup", handler.SignupRequest{
		Username: "alice",
		Password: "password123",
		FullName: "Alice Liddell",
	})

	// Assert
	assert.Equal(t, http.StatusCreated, resp.Code)
	assert.Equal(t, "User created", decodeMessage(t, resp))
	mockRepo.AssertExpectations(t)
}

func TestSignup_UserAlreadyExists(t *testing.T) {
	// Arrange
	router, mockRepo, _ := setupTest()
	mockRepo.On("Create", mock.Anything, mock.AnythingOfType("*model.User")).Return(repository.ErrUserExists)

	// Act
	resp := postJSON(router, "/signup", handler.SignupRequest{
		Username: "alice",
		Password: "different",
		FullName: "Someone Else",
	})

	// Assert
	assert.Equal(t, http.StatusBadRequest, resp.Code)
	assert.Equal(t, "User already exists", decodeMessage(t, resp))
	mockRepo.AssertExpectations(t)
}

func TestSignup_InvalidInput(t *testing.T) {
	router, mockRepo, _ := setupTest()

	resp := postJSON(router, "/signup", map[string]string{"fullName": "No Username"})

	assert.Equal(t, http.StatusBadRequest, resp.Code)
	mockRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestLogin_Success(t *testing.T) {
	// Arrange
	router, mockRepo, tokens := setupTest()

	hashedPassword, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	testUser := &model.User{
		ID:       7,
		Username: "alice",
		Password: string(hashedPassword),
		FullName: "Alice Liddell",
	}
	mockRepo.On("FindByUsername", mock.Anything, "alice").Return(testUser, nil)

	// Act
	resp := postJSON(router, "/login", handler.LoginRequest{Username: "alice", Password: "password123"})

	// Assert
	assert.Equal(t, http.StatusOK, resp.Code)

	var response handler.TokenResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &response))
	require.NotEmpty(t, response.Token)

	claims, err := tokens.ParseToken(response.Token)
	require.NoError(t, err)
	assert.Equal(t, int64(7), claims.ID)
	assert.Equal(t, "alice", claims.Username)

	mockRepo.AssertExpectations(t)
}

func TestLogin_InvalidCredentials(t *testing.T) {
	// Arrange
	router, mockRepo, _ := setupTest()

	hashedPassword, _ := bcrypt.GenerateFromPassword([]byte("correct_password"), bcrypt.MinCost)
	testUser := &model.User{ID: 7, Username: "alice", Password: string(hashedPassword)}
	mockRepo.On("FindByUsername", mock.Anything, "alice").Return(testUser, nil)

	// Act
	resp := postJSON(router, "/login", handler.LoginRequest{Username: "alice", Password: "wrong_password"})

	// Assert
	assert.Equal(t, http.StatusBadRequest, resp.Code)
	assert.Equal(t, "Invalid credentials", decodeMessage(t, resp))
	mockRepo.AssertExpectations(t)
}

func TestLogin_UserNotFound(t *testing.T) {
	// Arrange
	router, mockRepo, _ := setupTest()
	mockRepo.On("FindByUsername", mock.Anything, "nobody").Return(nil, nil)

	// Act
	resp := postJSON(router, "/login", handler.LoginRequest{Username: "nobody", Password: "password123"})

	// Assert
	assert.Equal(t, http.StatusBadRequest, resp.Code)
	assert.Equal(t, "Invalid credentials", decodeMessage(t, resp))
	mockRepo.AssertExpectations(t)
}

func TestLogin_RepositoryError(t *testing.T) {
	router, mockRepo, _ := setupTest()
	mockRepo.On("FindByUsername", mock.Anything, "alice").Return(nil, assert.AnError)

	resp := postJSON(router, "/login", handler.LoginRequest{Username: "alice", Password: "pw"})

	assert.Equal(t, http.StatusInternalServerError, resp.Code)
	mockRepo.AssertExpectations(t)
}

func TestMe_ReturnsCurrentUser(t *testing.T) {
	// Arrange
	router, mockRepo, tokens := setupTest()
	testUser := &model.User{ID: 7, Username: "alice", Password: "hash", FullName: "Alice Liddell"}
	mockRepo.On("GetByID", mock.Anything, int64(7)).Return(testUser, nil)

	token, err := tokens.GenerateToken(testUser)
	require.NoError(t, err)

	req, _ := http.NewRequest(http.MethodGet, "/user-me", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	// Act
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	// Assert
	assert.Equal(t, http.StatusOK, resp.Code)
	assert.JSONEq(t, `{"id":7,"fullName":"Alice Liddell","username":"alice"}`, resp.Body.String())
}
