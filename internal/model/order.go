package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	OrderPending   OrderStatus = "pending"
	OrderCompleted OrderStatus = "completed"
	OrderFailed    OrderStatus = "failed"
)

type PaymentMethod string

const (
	PaymentStripe PaymentMethod = "stripe"
	PaymentPaypal PaymentMethod = "paypal"
)

func (m PaymentMethod) Valid() bool {
	return m == PaymentStripe || m == PaymentPaypal
}

// Order is the purchase-time snapshot. Item names, prices, license types
// and bundle names are copied from the catalog at checkout and never
// updated afterwards, so later catalog edits cannot change what was bought.
type Order struct {
	ID    string      `gorm:"primaryKey;size:64;not null"` // generated at checkout
	Email string      `gorm:"size:255;index;not null"`     // owner, resolved from the session token
	Items []OrderItem `gorm:"foreignKey:OrderID"`

	Subtotal decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	Total    decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`

	PaymentMethod PaymentMethod `gorm:"size:16;not null"`
	PaymentRef    string        `gorm:"size:128;index"` // provider intent / order id
	Status        OrderStatus   `gorm:"size:16;index;not null"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

// FindItem looks up the line for the given product id.
func (o *Order) FindItem(productID string) (*OrderItem, bool) {
	for i := range o.Items {
		if o.Items[i].ProductID == productID {
			return &o.Items[i], true
		}
	}
	return nil, false
}

type OrderItem struct {
	ID        uint   `gorm:"primaryKey"`
	OrderID   string `gorm:"size:64;index;not null"`
	ProductID string `gorm:"size:64;index;not null"`
	Name      string `gorm:"size:200;not null"`
	// Line total: license price plus the selected bundle prices.
	Price       decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	LicenseType LicenseType     `gorm:"size:16;not null"`
	Bundles     []string        `gorm:"serializer:json"` // bundle names as purchased
	ImageURL    string          `gorm:"size:255"`
	CreatedAt   time.Time
}
