package models

import "time"

const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

const (
	OrderStatusPending   = "Pending"
	OrderStatusConfirmed = "Confirmed"
	OrderStatusShipped   = "Shipped"
	OrderStatusDelivered = "Delivered"
	OrderStatusCancelled = "Cancelled"
)

const PaymentMethodCOD = "COD"

type User struct {
	ID           uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Name         string `gorm:"not null"                 json:"name"`
	Email        string `gorm:"unique;not null"          json:"email"`
	Username     string `gorm:"unique;not null"          json:"username"`
	PasswordHash string `gorm:"not null"                 json:"-"`
	Role         string `gorm:"not null;default:user"    json:"role"`
	CreatedAt    time.Time `json:"created_at"`
}

type Product struct {
	ID          uint     `gorm:"primaryKey;autoIncrement"  json:"id"`
	Name        string   `gorm:"not null"                  json:"name"`
	Brand       string   `gorm:"not null"                  json:"brand"`
	Category    string   `gorm:"not null"                  json:"category"`
	Description string   `gorm:"not null"                  json:"description"`
	Price       float64  `gorm:"not null"                  json:"price"`
	Stock       int      `gorm:"not null;check:stock >= 0" json:"stock"`
	Image       string   `gorm:"not null"                  json:"image"`
	Reviews     []Review `gorm:"constraint:OnDelete:CASCADE" json:"reviews"`
	AvgRating   float64  `gorm:"not null;default:0"        json:"avgRating"`
	NumReviews  int      `gorm:"not null;default:0"        json:"numReviews"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// One review per user per product is enforced by the review service,
// not by a uniqueness constraint.
type Review struct {
	ID        uint   `gorm:"primaryKey;autoIncrement"        json:"id"`
	ProductID uint   `gorm:"index;not null"                  json:"product_id"`
	UserID    uint   `gorm:"index;not null"                  json:"user_id"`
	Name      string `gorm:"not null"                        json:"name"`
	Rating    int    `gorm:"not null;check:rating BETWEEN 1 AND 5" json:"rating"`
	Comment   string `gorm:"not null"                        json:"comment"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type CartItem struct {
	ID        uint `gorm:"primaryKey;autoIncrement"                       json:"id"`
	UserID    uint `gorm:"not null;uniqueIndex:idx_cart_user_product"     json:"user_id"`
	ProductID uint `gorm:"not null;uniqueIndex:idx_cart_user_product"     json:"product_id"`
	Quantity  uint `gorm:"not null;default:1;check:quantity > 0"          json:"quantity"`
}

type ShippingAddress struct {
	FullName string `gorm:"not null" json:"fullName"`
	Phone    string `gorm:"not null" json:"phone"`
	Street   string `gorm:"not null" json:"street"`
	Landmark string `json:"landmark,omitempty"`
	City     string `gorm:"not null" json:"city"`
	State    string `gorm:"not null" json:"state"`
	Pincode  string `gorm:"not null" json:"pincode"`
	Country  string `gorm:"not null;default:India" json:"country"`
}

type PaymentDetails struct {
	TransactionID  string     `json:"transactionId,omitempty"`
	PaymentStatus  string     `gorm:"default:Pending" json:"paymentStatus"`
	PaymentDate    *time.Time `json:"paymentDate,omitempty"`
	PaymentGateway string     `json:"paymentGateway,omitempty"`
	AmountPaid     float64    `json:"amountPaid,omitempty"`
}

type Order struct {
	ID              uint            `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID          uint            `gorm:"index;not null"           json:"user_id"`
	Items           []OrderItem     `gorm:"constraint:OnDelete:CASCADE" json:"items"`
	TotalAmount     float64         `gorm:"not null"                 json:"totalAmount"`
	Status          string          `gorm:"not null;default:Pending" json:"status"`
	PaymentMethod   string          `gorm:"not null;default:COD"     json:"paymentMethod"`
	ShippingAddress ShippingAddress `gorm:"embedded;embeddedPrefix:ship_" json:"shippingAddress"`
	PaymentDetails  PaymentDetails  `gorm:"embedded;embeddedPrefix:pay_"  json:"paymentDetails"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// UnitPrice is snapshotted from the catalog at placement time so later
// price changes never alter what an order charged.
type OrderItem struct {
	ID        uint    `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderID   uint    `gorm:"index;not null"           json:"order_id"`
	ProductID uint    `gorm:"not null"                 json:"product_id"`
	Quantity  uint    `gorm:"not null;check:quantity > 0" json:"quantity"`
	UnitPrice float64 `gorm:"not null"                 json:"unitPrice"`
}

type Category struct {
	ID   uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Name string `gorm:"unique;not null"          json:"name"`
}

// AuditLog is append-only; Metadata holds a free-form JSON document.
type AuditLog struct {
	ID         uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID     *uint     `gorm:"index"                    json:"user_id"`
	Action     string    `gorm:"index;not null"           json:"action"`
	IP         string    `gorm:"not null;default:unknown" json:"ip"`
	UserAgent  string    `gorm:"not null;default:unknown" json:"user_agent"`
	DeviceType string    `gorm:"not null;default:unknown" json:"device_type"`
	Browser    string    `gorm:"not null;default:unknown" json:"browser"`
	OS         string    `gorm:"not null;default:unknown" json:"os"`
	Country    string    `gorm:"not null;default:unknown" json:"country"`
	City       string    `gorm:"not null;default:unknown" json:"city"`
	Metadata   string    `gorm:"type:text"                json:"metadata"`
	Timestamp  time.Time `gorm:"index;not null"           json:"timestamp"`
}
