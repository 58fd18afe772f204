package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"digitalstore/internal/model"
)

// DownloadRequest asks for a purchased file. BundleName empty means the
// base product asset.
type DownloadRequest struct {
	OrderID    string `json:"orderId" validate:"required"`
	ItemID     string `json:"itemId" validate:"required"`
	BundleName string `json:"bundleName"`
	Token      string `json:"token" validate:"required"`
}

type CheckoutItem struct {
	ProductID   string            `json:"productId" validate:"required"`
	LicenseType model.LicenseType `json:"licenseType" validate:"required,oneof=personal commercial"`
	Bundles     []string          `json:"bundles"` // bundle names
}

type CheckoutRequest struct {
	Items         []CheckoutItem      `json:"items" validate:"required,min=1,dive"`
	PaymentMethod model.PaymentMethod `json:"paymentMethod" validate:"required,oneof=stripe paypal"`
	Token         string              `json:"token" validate:"required"`
}

type CheckoutResponse struct {
	OrderID    string          `json:"orderId"`
	Subtotal   decimal.Decimal `json:"subtotal"`
	Total      decimal.Decimal `json:"total"`
	PaymentRef string          `json:"paymentRef"`
	// For PayPal the buyer must approve the order at this URL first.
	ApproveURL string `json:"approveUrl,omitempty"`
}

type ConfirmRequest struct {
	OrderID string `json:"orderId" validate:"required"`
	Token   string `json:"token" validate:"required"`
}

type SignupRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type SessionResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

type LogoutRequest struct {
	Token string `json:"token" validate:"required"`
}

type CreateReviewRequest struct {
	ProductID string `json:"productId" validate:"required"`
	Name      string `json:"name" validate:"required"`
	Email     string `json:"email" validate:"required,email"`
	Rating    int    `json:"rating" validate:"required,min=1,max=5"`
	Comment   string `json:"comment"`
}

type CreateContactRequest struct {
	Name    string `json:"name" validate:"required"`
	Email   string `json:"email" validate:"required,email"`
	Subject string `json:"subject"`
	Message string `json:"message" validate:"required"`
}

type BundleInput struct {
	Name        string          `json:"name" validate:"required"`
	Type        string          `json:"type" validate:"required,oneof=personal commercial"`
	Price       decimal.Decimal `json:"price"`
	Description string          `json:"description"`
	Download    string          `json:"download" validate:"required"`
	Image       string          `json:"image"`
}

type ProductInput struct {
	ID              string          `json:"productId" validate:"required"`
	Name            string          `json:"name" validate:"required"`
	Tagline         string          `json:"tagline"`
	Description     string          `json:"description"`
	Category        string          `json:"category" validate:"required"`
	Caption         string          `json:"caption"`
	Tags            []string        `json:"tags"`
	Images          []string        `json:"images" validate:"max=5"`
	Download        string          `json:"download" validate:"required"`
	PersonalPrice   decimal.Decimal `json:"personalPrice"`
	CommercialPrice decimal.Decimal `json:"commercialPrice"`
	IsVisible       *bool           `json:"isVisible"`
}

// ErrorResponse is the JSON body of every non-2xx reply.
type ErrorResponse struct {
	Error   string `json:"error"`
	Success bool   `json:"success"`
}
