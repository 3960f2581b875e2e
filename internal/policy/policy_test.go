package policy

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAuthorize(t *testing.T) {
	t.Parallel()

	admin := Actor{ID: 1, Role: "admin"}
	owner := Actor{ID: 2, Role: "user"}
	other := Actor{ID: 3, Role: "user"}
	anon := Actor{}

	owned := Resource{OwnerID: owner.ID}

	tests := []struct {
		name    string
		actor   Actor
		action  Action
		res     Resource
		allowed bool
	}{
		{"admin manages products", admin, ManageProducts, Resource{}, true},
		{"user cannot manage products", owner, ManageProducts, Resource{}, false},
		{"admin views all orders", admin, ViewAllOrders, Resource{}, true},
		{"user cannot view all orders", owner, ViewAllOrders, Resource{}, false},
		{"admin updates order status", admin, UpdateOrderStatus, Resource{}, true},
		{"admin manages categories", admin, ManageCategories, Resource{}, true},
		{"admin lists users", admin, ViewUsers, Resource{}, true},
		{"admin manages logs", admin, ManageLogs, Resource{}, true},
		{"user cannot manage logs", owner, ManageLogs, Resource{}, false},

		{"user places orders", owner, PlaceOrder, Resource{}, true},
		{"admin cannot place orders", admin, PlaceOrder, Resource{}, false},

		{"user reviews products", owner, ReviewProduct, Resource{}, true},
		{"admin cannot review products", admin, ReviewProduct, Resource{}, false},

		{"owner cancels own order", owner, CancelOrder, owned, true},
		{"other user cannot cancel", other, CancelOrder, owned, false},
		{"admin cannot use owner cancel", admin, CancelOrder, owned, false},
		{"anonymous cannot cancel unowned", anon, CancelOrder, Resource{}, false},

		{"owner views own order", owner, ViewOrder, owned, true},
		{"admin views any order", admin, ViewOrder, owned, true},
		{"other user cannot view order", other, ViewOrder, owned, false},

		{"author deletes own review", owner, DeleteReview, owned, true},
		{"admin deletes any review", admin, DeleteReview, owned, true},
		{"other user cannot delete review", other, DeleteReview, owned, false},

		{"user manages own account", owner, ManageUser, owned, true},
		{"admin manages any account", admin, ManageUser, owned, true},
		{"other user cannot manage account", other, ManageUser, owned, false},

		{"unknown action denied", admin, Action("bogus"), Resource{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Authorize(tt.actor, tt.action, tt.res)
			if tt.allowed {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, ErrDenied)
			}
		})
	}
}
