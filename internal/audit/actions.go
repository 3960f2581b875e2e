package audit

const (
	ActionLogin                      = "LOGIN"
	ActionSignup                     = "SIGNUP"
	ActionSignupFailed               = "SIGNUP_FAILED"
	ActionLoginFailed                = "LOGIN_FAILED"
	ActionViewProduct                = "VIEW_PRODUCT"
	ActionNewProductAdded            = "NEW_PRODUCT_ADDED"
	ActionNewProductAddedFailed      = "NEW_PRODUCT_ADDED_FAILED"
	ActionProductUpdated             = "PRODUCT_UPDATED"
	ActionProductUpdatedFailed       = "PRODUCT_UPDATED_FAILED"
	ActionProductDeleted             = "PRODUCT_DELETED"
	ActionProductDeletedFailed       = "PRODUCT_DELETED_FAILED"
	ActionNewOrderPlaced             = "NEW_ORDER_PLACED"
	ActionNewOrderPlacedFailed       = "NEW_ORDER_PLACED_FAILED"
	ActionOrderCancelled             = "ORDER_CANCELLED"
	ActionOrderCancelledFailed       = "ORDER_CANCELLED_FAILED"
	ActionOrderStatusUpdated         = "ORDER_STATUS_UPDATED"
	ActionOrderStatusUpdatedFailed   = "ORDER_STATUS_UPDATED_FAILED"
	ActionAddToCart                  = "ADD_TO_CART"
	ActionAddToCartFailed            = "ADD_TO_CART_FAILED"
	ActionCartUpdated                = "CART_UPDATED"
	ActionCartUpdatedFailed          = "CART_UPDATED_FAILED"
	ActionProductRemovedInCart       = "PRODUCT_REMOVED_IN_CART"
	ActionProductRemovedInCartFailed = "PRODUCT_REMOVED_IN_CART_FAILED"
	ActionCartCleared                = "CART_CLEARED"
	ActionCartClearedFailed          = "CART_CLEARED_FAILED"
	ActionUpdatePassword             = "UPDATE_PASSWORD"
	ActionUpdatePasswordFailed       = "UPDATE_PASSWORD_FAILED"
)
