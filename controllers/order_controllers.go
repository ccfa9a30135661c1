package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/yeremiapane/cafe-app/services"
	"github.com/yeremiapane/cafe-app/utils"
)

type OrderController struct {
	DB      *gorm.DB
	Service *services.OrderService
}

func NewOrderController(db *gorm.DB) *OrderController {
	return &OrderController{
		DB:      db,
		Service: services.NewOrderService(db),
	}
}

// identityFromContext reads the identity the auth middleware may have set.
// Returns nil for guests.
func identityFromContext(c *gin.Context) *services.Identity {
	userIDInterface, exists := c.Get("user_id")
	if !exists {
		return nil
	}
	userID, ok := userIDInterface.(uint)
	if !ok {
		return nil
	}
	roleInterface, _ := c.Get("role")
	role, _ := roleInterface.(string)
	return &services.Identity{UserID: userID, Role: role}
}

// respondServiceError maps the order service error taxonomy onto HTTP codes.
func respondServiceError(c *gin.Context, err error) {
	var validationErr *services.ValidationError
	var notFoundErr *services.NotFoundError
	var authErr *services.AuthenticationRequiredError

	switch {
	case errors.As(err, &validationErr):
		utils.RespondError(c, http.StatusBadRequest, err)
	case errors.As(err, &notFoundErr):
		utils.RespondError(c, http.StatusNotFound, err)
	case errors.As(err, &authErr):
		utils.RespondError(c, http.StatusUnauthorized, err)
	default:
		utils.RespondError(c, http.StatusInternalServerError, err)
	}
}

// CreateOrder -> place an order. Guests allowed, a valid token attributes
// the order to its user.
func (oc *OrderController) CreateOrder(c *gin.Context) {
	type reqBody struct {
		Items []services.CartItem `json:"items" binding:"required"`
	}

	var body reqBody
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	order, err := oc.Service.PlaceOrder(body.Items, identityFromContext(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusCreated, "Order created", order)
}

// ListOrders -> admin sees everything, staff only their own
func (oc *OrderController) ListOrders(c *gin.Context) {
	orders, err := oc.Service.ListOrders(identityFromContext(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "List of orders", orders)
}

// GetOrderByID -> detail of one order, owner or admin
func (oc *OrderController) GetOrderByID(c *gin.Context) {
	idStr := c.Param("order_id")
	id, err := strconv.Atoi(idStr)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("invalid order id"))
		return
	}

	order, err := oc.Service.GetOrder(uint(id), identityFromContext(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Order detail", order)
}

// DeleteOrder -> admin only (enforced in the router), lines go with it
func (oc *OrderController) DeleteOrder(c *gin.Context) {
	idStr := c.Param("order_id")
	id, err := strconv.Atoi(idStr)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("invalid order id"))
		return
	}

	if err := oc.Service.DeleteOrder(uint(id)); err != nil {
		respondServiceError(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Order deleted", gin.H{"order_id": id})
}
