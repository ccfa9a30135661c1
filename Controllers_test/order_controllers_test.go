package Controllers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/yeremiapane/cafe-app/controllers"
	"github.com/yeremiapane/cafe-app/middlewares"
	"github.com/yeremiapane/cafe-app/models"
	"github.com/yeremiapane/cafe-app/utils"
)

func setupTestDBForOrders(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect database: %v", err)
	}
	err = db.AutoMigrate(&models.User{}, &models.MenuItem{}, &models.Order{}, &models.OrderLine{})
	if err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}

	menu := models.MenuItem{
		ID:          1,
		Name:        "Flat White",
		Price:       3.50,
		Category:    "Coffee",
		IsAvailable: true,
	}
	require.NoError(t, db.Create(&menu).Error)
	return db
}

func setupOrderRouter(db *gorm.DB) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	orderCtrl := controllers.NewOrderController(db)
	router.POST("/orders", middlewares.OptionalAuthMiddleware(), orderCtrl.CreateOrder)
	router.GET("/orders", middlewares.AuthMiddleware(), orderCtrl.ListOrders)
	router.GET("/orders/:order_id", middlewares.AuthMiddleware(), orderCtrl.GetOrderByID)
	return router
}

func postOrder(t *testing.T, router *gin.Engine, token string, payload interface{}) *httptest.ResponseRecorder {
	t.Helper()
	payloadBytes, err := json.Marshal(payload)
	require.NoError(t, err)

	req, err := http.NewRequest("POST", "/orders", bytes.NewBuffer(payloadBytes))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestCreateOrderAsGuest(t *testing.T) {
	db := setupTestDBForOrders(t)
	router := setupOrderRouter(db)

	payload := map[string]interface{}{
		"items": []map[string]interface{}{
			{"menu_item_id": 1, "quantity": 2},
		},
	}
	w := postOrder(t, router, "", payload)
	assert.Equal(t, http.StatusCreated, w.Code)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Order created", resp["message"])

	data := resp["data"].(map[string]interface{})
	assert.Equal(t, 7.00, data["total_amount"])
	assert.Equal(t, "pending", data["status"])
	_, hasUser := data["user_id"]
	assert.False(t, hasUser, "guest order must carry no user_id")
}

func TestCreateOrderWithTokenAttributesUser(t *testing.T) {
	db := setupTestDBForOrders(t)
	router := setupOrderRouter(db)

	token, err := utils.GenerateToken(12, "staff")
	require.NoError(t, err)

	payload := map[string]interface{}{
		"items": []map[string]interface{}{
			{"menu_item_id": 1, "quantity": 1},
		},
	}
	w := postOrder(t, router, token, payload)
	assert.Equal(t, http.StatusCreated, w.Code)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data := resp["data"].(map[string]interface{})
	assert.Equal(t, float64(12), data["user_id"])
}

func TestCreateOrderWithBadTokenFallsBackToGuest(t *testing.T) {
	db := setupTestDBForOrders(t)
	router := setupOrderRouter(db)

	payload := map[string]interface{}{
		"items": []map[string]interface{}{
			{"menu_item_id": 1, "quantity": 1},
		},
	}
	w := postOrder(t, router, "not-a-token", payload)
	assert.Equal(t, http.StatusCreated, w.Code)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data := resp["data"].(map[string]interface{})
	_, hasUser := data["user_id"]
	assert.False(t, hasUser)
}

func TestCreateOrderEmptyCart(t *testing.T) {
	db := setupTestDBForOrders(t)
	router := setupOrderRouter(db)

	w := postOrder(t, router, "", map[string]interface{}{
		"items": []map[string]interface{}{},
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var count int64
	require.NoError(t, db.Model(&models.Order{}).Count(&count).Error)
	assert.EqualValues(t, 0, count)
}

func TestCreateOrderUnknownItem(t *testing.T) {
	db := setupTestDBForOrders(t)
	router := setupOrderRouter(db)

	w := postOrder(t, router, "", map[string]interface{}{
		"items": []map[string]interface{}{
			{"menu_item_id": 999, "quantity": 1},
		},
	})
	assert.Equal(t, http.StatusNotFound, w.Code)

	var count int64
	require.NoError(t, db.Model(&models.Order{}).Count(&count).Error)
	assert.EqualValues(t, 0, count)
}

func TestListOrdersRequiresToken(t *testing.T) {
	db := setupTestDBForOrders(t)
	router := setupOrderRouter(db)

	req, err := http.NewRequest("GET", "/orders", nil)
	require.NoError(t, err)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestListOrdersRoleScoping(t *testing.T) {
	db := setupTestDBForOrders(t)
	router := setupOrderRouter(db)

	staffToken, err := utils.GenerateToken(3, "staff")
	require.NoError(t, err)
	adminToken, err := utils.GenerateToken(1, "admin")
	require.NoError(t, err)

	payload := map[string]interface{}{
		"items": []map[string]interface{}{
			{"menu_item_id": 1, "quantity": 1},
		},
	}
	// One staff order, one guest order
	require.Equal(t, http.StatusCreated, postOrder(t, router, staffToken, payload).Code)
	require.Equal(t, http.StatusCreated, postOrder(t, router, "", payload).Code)

	listOrders := func(token string) []interface{} {
		req, err := http.NewRequest("GET", "/orders", nil)
		require.NoError(t, err)
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		require.Equal(t, http.StatusOK, w.Code)

		var resp map[string]interface{}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		if resp["data"] == nil {
			return nil
		}
		return resp["data"].([]interface{})
	}

	assert.Len(t, listOrders(adminToken), 2)
	assert.Len(t, listOrders(staffToken), 1)
}
