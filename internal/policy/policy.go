package policy

import "errors"

// ErrDenied is returned for every refused check; callers translate it to 403.
var ErrDenied = errors.New("access denied")

type Actor struct {
	ID   uint
	Role string
}

type Action string

const (
	ManageProducts    Action = "products:manage"
	ReviewProduct     Action = "products:review"
	DeleteReview      Action = "reviews:delete"
	PlaceOrder        Action = "orders:place"
	ViewOrder         Action = "orders:view"
	CancelOrder       Action = "orders:cancel"
	UpdateOrderStatus Action = "orders:update_status"
	ViewAllOrders     Action = "orders:view_all"
	ManageCategories  Action = "categories:manage"
	ViewUsers         Action = "users:view_all"
	ManageUser        Action = "users:manage"
	ManageLogs        Action = "logs:manage"
)

// Resource carries the owner of the thing being acted on; zero means
// ownership does not apply to the action.
type Resource struct {
	OwnerID uint
}

const (
	roleAdmin = "admin"
	roleUser  = "user"
)

// Authorize is the single decision point for every privileged operation.
// Role strings and ownership never get compared anywhere else.
func Authorize(actor Actor, action Action, res Resource) error {
	switch action {
	case ManageProducts, UpdateOrderStatus, ViewAllOrders, ManageCategories, ViewUsers, ManageLogs:
		if actor.Role == roleAdmin {
			return nil
		}
		return ErrDenied

	case PlaceOrder:
		if actor.Role == roleUser {
			return nil
		}
		return ErrDenied

	case ReviewProduct:
		// Admins cannot author reviews; exclusion is by role, not ownership.
		if actor.Role == roleAdmin {
			return ErrDenied
		}
		return nil

	case CancelOrder:
		if actor.ID != 0 && actor.ID == res.OwnerID {
			return nil
		}
		return ErrDenied

	case ViewOrder, DeleteReview, ManageUser:
		if actor.Role == roleAdmin {
			return nil
		}
		if actor.ID != 0 && actor.ID == res.OwnerID {
			return nil
		}
		return ErrDenied
	}

	return ErrDenied
}
