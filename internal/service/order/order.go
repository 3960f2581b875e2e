package order

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/sharmaketan/shopkart/internal/models"
	"github.com/sharmaketan/shopkart/internal/policy"
)

var (
	ErrValidation = errors.New("validation") // 400
	ErrForbidden  = errors.New("forbidden")  // 403
	ErrNotFound   = errors.New("not found")  // 404
	ErrConflict   = errors.New("conflict")   // 409
)

type Service struct {
	DB *gorm.DB
}

type PlaceItem struct {
	ProductID uint `json:"product_id"`
	Quantity  uint `json:"quantity"`
}

type PlaceRequest struct {
	Items           []PlaceItem            `json:"items"`
	TotalAmount     float64                `json:"totalAmount"`
	ShippingAddress models.ShippingAddress `json:"shippingAddress"`
}

// transitions is the full status graph. Delivered and Cancelled are
// terminal, so a cancelled order can never restock twice.
var transitions = map[string][]string{
	models.OrderStatusPending:   {models.OrderStatusConfirmed, models.OrderStatusCancelled},
	models.OrderStatusConfirmed: {models.OrderStatusShipped, models.OrderStatusCancelled},
	models.OrderStatusShipped:   {models.OrderStatusDelivered},
	models.OrderStatusDelivered: {},
	models.OrderStatusCancelled: {},
}

func canTransition(from, to string) bool {
	for _, s := range transitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

func validStatus(s string) bool {
	_, ok := transitions[s]
	return ok
}

func validateAddress(a models.ShippingAddress) error {
	required := map[string]string{
		"fullName": a.FullName,
		"phone":    a.Phone,
		"street":   a.Street,
		"city":     a.City,
		"state":    a.State,
		"pincode":  a.Pincode,
	}
	for field, v := range required {
		if v == "" {
			return fmt.Errorf("%w: shippingAddress.%s required", ErrValidation, field)
		}
	}
	return nil
}

// Place creates a Pending order for the caller. The whole effect — order
// row, per-line conditional stock decrement, cart clear — runs in one
// transaction, so readers never observe a half-placed order. The total is
// recomputed from current catalog prices; the client-sent totalAmount is
// ignored.
func (s *Service) Place(ctx context.Context, actor policy.Actor, req PlaceRequest) (*models.Order, error) {
	if err := policy.Authorize(actor, policy.PlaceOrder, policy.Resource{}); err != nil {
		return nil, fmt.Errorf("%w: user access only", ErrForbidden)
	}

	if len(req.Items) == 0 {
		return nil, fmt.Errorf("%w: no items in the order", ErrValidation)
	}
	for i := range req.Items {
		if req.Items[i].ProductID == 0 {
			return nil, fmt.Errorf("%w: product_id required", ErrValidation)
		}
		if req.Items[i].Quantity == 0 {
			return nil, fmt.Errorf("%w: quantity must be > 0", ErrValidation)
		}
	}
	if err := validateAddress(req.ShippingAddress); err != nil {
		return nil, err
	}
	if req.ShippingAddress.Country == "" {
		req.ShippingAddress.Country = "India"
	}

	var order models.Order

	txErr := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var total float64
		items := make([]models.OrderItem, 0, len(req.Items))

		for _, it := range req.Items {
			var p models.Product
			if err := tx.First(&p, it.ProductID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return fmt.Errorf("%w: product %d", ErrNotFound, it.ProductID)
				}
				return err
			}

			// Decrement-if-sufficient: the guard and the write are one
			// statement, so concurrent orders cannot drive stock negative.
			res := tx.Model(&models.Product{}).
				Where("id = ? AND stock >= ?", it.ProductID, it.Quantity).
				UpdateColumn("stock", gorm.Expr("stock - ?", it.Quantity))
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return fmt.Errorf("%w: insufficient stock for product %d", ErrConflict, it.ProductID)
			}

			total += float64(it.Quantity) * p.Price
			items = append(items, models.OrderItem{
				ProductID: it.ProductID,
				Quantity:  it.Quantity,
				UnitPrice: p.Price,
			})
		}

		order = models.Order{
			UserID:          actor.ID,
			Items:           items,
			TotalAmount:     total,
			Status:          models.OrderStatusPending,
			PaymentMethod:   models.PaymentMethodCOD,
			ShippingAddress: req.ShippingAddress,
		}
		if err := tx.Create(&order).Error; err != nil {
			return err
		}

		if err := tx.Where("user_id = ?", actor.ID).Delete(&models.CartItem{}).Error; err != nil {
			return err
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	return &order, nil
}

// Cancel moves an owned Pending order to Cancelled and restores stock for
// every line item. Cancellation from any other status is rejected, which
// also makes a second cancel a no-op error rather than a double restock.
func (s *Service) Cancel(ctx context.Context, actor policy.Actor, orderID uint) (*models.Order, error) {
	var order models.Order

	txErr := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Preload("Items").First(&order, orderID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: order %d", ErrNotFound, orderID)
			}
			return err
		}

		if err := policy.Authorize(actor, policy.CancelOrder, policy.Resource{OwnerID: order.UserID}); err != nil {
			return fmt.Errorf("%w: you can only cancel your own orders", ErrForbidden)
		}

		if order.Status != models.OrderStatusPending {
			return fmt.Errorf("%w: only pending orders can be cancelled", ErrValidation)
		}

		order.Status = models.OrderStatusCancelled
		if err := tx.Model(&models.Order{}).Where("id = ?", order.ID).
			Update("status", models.OrderStatusCancelled).Error; err != nil {
			return err
		}

		return restock(tx, order.Items)
	})
	if txErr != nil {
		return nil, txErr
	}

	return &order, nil
}

// UpdateStatus applies an admin status change, rejecting moves outside the
// transition table. A transition into Cancelled restocks the order's items.
func (s *Service) UpdateStatus(ctx context.Context, actor policy.Actor, orderID uint, target string) (*models.Order, error) {
	if err := policy.Authorize(actor, policy.UpdateOrderStatus, policy.Resource{}); err != nil {
		return nil, fmt.Errorf("%w: admin access only", ErrForbidden)
	}
	if !validStatus(target) {
		return nil, fmt.Errorf("%w: invalid status value", ErrValidation)
	}

	var order models.Order

	txErr := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Preload("Items").First(&order, orderID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: order %d", ErrNotFound, orderID)
			}
			return err
		}

		if !canTransition(order.Status, target) {
			return fmt.Errorf("%w: cannot move order from %s to %s", ErrValidation, order.Status, target)
		}

		order.Status = target
		if err := tx.Model(&models.Order{}).Where("id = ?", order.ID).
			Update("status", target).Error; err != nil {
			return err
		}

		if target == models.OrderStatusCancelled {
			return restock(tx, order.Items)
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	return &order, nil
}

func restock(tx *gorm.DB, items []models.OrderItem) error {
	for _, it := range items {
		res := tx.Model(&models.Product{}).
			Where("id = ?", it.ProductID).
			UpdateColumn("stock", gorm.Expr("stock + ?", it.Quantity))
		if res.Error != nil {
			return res.Error
		}
	}
	return nil
}

// Get returns a single order; only the owner or an admin may read it.
func (s *Service) Get(ctx context.Context, actor policy.Actor, orderID uint) (*models.Order, error) {
	var order models.Order
	if err := s.DB.WithContext(ctx).Preload("Items").First(&order, orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: order %d", ErrNotFound, orderID)
		}
		return nil, err
	}

	if err := policy.Authorize(actor, policy.ViewOrder, policy.Resource{OwnerID: order.UserID}); err != nil {
		return nil, fmt.Errorf("%w: access denied", ErrForbidden)
	}
	return &order, nil
}

func (s *Service) ListMine(ctx context.Context, userID uint) ([]models.Order, error) {
	var orders []models.Order
	err := s.DB.WithContext(ctx).Preload("Items").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&orders).Error
	if err != nil {
		return nil, err
	}
	return orders, nil
}

func (s *Service) ListAll(ctx context.Context, actor policy.Actor) ([]models.Order, error) {
	if err := policy.Authorize(actor, policy.ViewAllOrders, policy.Resource{}); err != nil {
		return nil, fmt.Errorf("%w: admin access only", ErrForbidden)
	}

	var orders []models.Order
	err := s.DB.WithContext(ctx).Preload("Items").
		Order("created_at DESC").
		Find(&orders).Error
	if err != nil {
		return nil, err
	}
	return orders, nil
}
