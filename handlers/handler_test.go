package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"riddlevault/middleware"
	"riddlevault/models"
	"riddlevault/services"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const testJWTSecret = "test-secret-key"

type testEnv struct {
	router            *gin.Engine
	db                *gorm.DB
	collectionService *services.CollectionService
	riddleService     *services.RiddleService
}

func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.RiddleCollection{}, &models.Riddle{}))

	collectionService := services.NewCollectionService(db)
	riddleService := services.NewRiddleService(db)

	hub := services.NewHub()
	go hub.Run()

	collectionHandler := NewCollectionHandler(collectionService, hub)
	riddleHandler := NewRiddleHandler(riddleService, hub)

	router := gin.New()
	protected := router.Group("/api")
	protected.Use(middleware.AuthMiddleware(testJWTSecret))
	{
		collections := protected.Group("/collections")
		{
			collections.GET("", collectionHandler.ListMyCollections)
			collections.POST("", collectionHandler.CreateCollection)
			collections.GET("/:id", collectionHandler.GetCollection)
			collections.PUT("/:id", collectionHandler.UpdateCollection)
			collections.DELETE("/:id", collectionHandler.DeleteCollection)
		}
		riddles := protected.Group("/riddles")
		{
			riddles.GET("", riddleHandler.ListMyRiddles)
			riddles.POST("", riddleHandler.CreateRiddle)
			riddles.GET("/:id", riddleHandler.GetRiddle)
			riddles.PUT("/:id", riddleHandler.UpdateRiddle)
			riddles.DELETE("/:id", riddleHandler.DeleteRiddle)
		}
	}

	return &testEnv{
		router:            router,
		db:                db,
		collectionService: collectionService,
		riddleService:     riddleService,
	}
}

func (env *testEnv) createUser(t *testing.T, email string) *models.User {
	t.Helper()
	user := models.User{Email: email, Name: "Test User", PasswordHash: "not-a-real-hash"}
	require.NoError(t, env.db.Create(&user).Error)
	return &user
}

func authToken(t *testing.T, userID uuid.UUID) string {
	t.Helper()
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   userID.String(),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(15 * time.Minute)),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testJWTSecret))
	require.NoError(t, err)
	return token
}

func (env *testEnv) doRequest(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	env.router.ServeHTTP(rec, req)
	return rec
}

// doRequestRaw sends a raw JSON body, for payloads that need an explicit
// null field.
func (env *testEnv) doRequestRaw(t *testing.T, method, path, token, body string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	env.router.ServeHTTP(rec, req)
	return rec
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Code    string          `json:"code"`
	Error   string          `json:"error"`
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	return env
}
