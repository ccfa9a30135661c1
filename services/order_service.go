package services

import (
	"errors"

	"gorm.io/gorm"

	"github.com/yeremiapane/cafe-app/models"
)

// CartItem is one requested (menu item, quantity) pair.
type CartItem struct {
	MenuItemID uint `json:"menu_item_id" binding:"required"`
	Quantity   int  `json:"quantity"`
}

type OrderService struct {
	DB *gorm.DB
}

func NewOrderService(db *gorm.DB) *OrderService {
	return &OrderService{DB: db}
}

// PlaceOrder validates the cart, locks in the current menu price per line
// and persists the order header plus all lines in one transaction. On any
// failure the whole order rolls back; a partially written order is never
// visible to readers.
func (s *OrderService) PlaceOrder(cart []CartItem, identity *Identity) (*models.Order, error) {
	if len(cart) == 0 {
		return nil, &ValidationError{Reason: "order must contain at least one item"}
	}
	for _, entry := range cart {
		if entry.Quantity <= 0 {
			return nil, &ValidationError{Reason: "item quantity must be greater than zero"}
		}
	}

	var order models.Order
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		lines := make([]models.OrderLine, 0, len(cart))
		var total float64

		for _, entry := range cart {
			// Availability is checked here, once per line. A concurrent menu
			// edit flipping it before commit is an accepted limitation.
			var item models.MenuItem
			if err := tx.Where("id = ? AND is_available = ?", entry.MenuItemID, true).
				First(&item).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return &NotFoundError{Resource: "menu item", ID: entry.MenuItemID}
				}
				return &PersistenceError{Err: err}
			}

			total += item.Price * float64(entry.Quantity)
			lines = append(lines, models.OrderLine{
				MenuItemID: item.ID,
				Quantity:   entry.Quantity,
				UnitPrice:  item.Price, // snapshot, never re-fetched
			})
		}

		order = models.Order{
			Status:      models.OrderStatusPending,
			TotalAmount: total,
			Lines:       lines,
		}
		if identity != nil {
			userID := identity.UserID
			order.UserID = &userID
		}

		if err := tx.Create(&order).Error; err != nil {
			return &PersistenceError{Err: err}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// ListOrders returns orders with their lines, newest first. Admins see every
// order, other roles only their own. Full scan, no pagination: fine at cafe
// scale.
func (s *OrderService) ListOrders(identity *Identity) ([]models.Order, error) {
	if identity == nil {
		return nil, &AuthenticationRequiredError{}
	}

	query := s.DB.Preload("Lines").Order("created_at desc")
	if !identity.IsAdmin() {
		query = query.Where("user_id = ?", identity.UserID)
	}

	var orders []models.Order
	if err := query.Find(&orders).Error; err != nil {
		return nil, &PersistenceError{Err: err}
	}
	return orders, nil
}

// GetOrder fetches one order with its lines. Non-admin callers only see
// orders they own; anything else reads as not found.
func (s *OrderService) GetOrder(orderID uint, identity *Identity) (*models.Order, error) {
	if identity == nil {
		return nil, &AuthenticationRequiredError{}
	}

	var order models.Order
	if err := s.DB.Preload("Lines").First(&order, orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Resource: "order", ID: orderID}
		}
		return nil, &PersistenceError{Err: err}
	}

	if !identity.IsAdmin() {
		if order.UserID == nil || *order.UserID != identity.UserID {
			return nil, &NotFoundError{Resource: "order", ID: orderID}
		}
	}
	return &order, nil
}

// DeleteOrder removes an order and its lines. The cascade is explicit so it
// holds on backends without foreign key enforcement.
func (s *OrderService) DeleteOrder(orderID uint) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		var order models.Order
		if err := tx.First(&order, orderID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return &NotFoundError{Resource: "order", ID: orderID}
			}
			return &PersistenceError{Err: err}
		}
		if err := tx.Where("order_id = ?", orderID).Delete(&models.OrderLine{}).Error; err != nil {
			return &PersistenceError{Err: err}
		}
		if err := tx.Delete(&order).Error; err != nil {
			return &PersistenceError{Err: err}
		}
		return nil
	})
}
