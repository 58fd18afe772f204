package model

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type LicenseType string

const (
	LicensePersonal   LicenseType = "personal"
	LicenseCommercial LicenseType = "commercial"
)

func (t LicenseType) Valid() bool {
	return t == LicensePersonal || t == LicenseCommercial
}

type ProductCategory string

const (
	CategoryFonts         ProductCategory = "fonts"
	CategoryGraphics      ProductCategory = "graphics"
	CategoryIcons         ProductCategory = "icons"
	CategoryIllustrations ProductCategory = "illustrations"
	CategoryMockups       ProductCategory = "mockups"
	CategoryTemplates     ProductCategory = "templates"
	CategoryThemes        ProductCategory = "themes"
	CategoryTextures      ProductCategory = "textures"
)

type ProductCaption string

const (
	CaptionProduct  ProductCaption = "Product"
	CaptionOnSale   ProductCaption = "On Sale"
	CaptionFeatured ProductCaption = "Featured"
)

// MaxProductImages caps the gallery size per product.
const MaxProductImages = 5

type Product struct {
	ID          string          `gorm:"primaryKey;size:64;not null"` // stable external product id
	Name        string          `gorm:"size:200;not null"`
	Tagline     string          `gorm:"size:255"`
	Description string          `gorm:"type:text"`
	Category    ProductCategory `gorm:"size:32;index;not null"`
	Caption     ProductCaption  `gorm:"size:16;not null;default:'Product'"`
	Tags        []string        `gorm:"serializer:json"`
	Images      []string        `gorm:"serializer:json"` // ordered, max 5
	Download    string          `gorm:"size:255;not null"` // object key of the base asset

	// A license priced at zero (or below) is not offered.
	PersonalPrice   decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	CommercialPrice decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`

	Bundles []Bundle `gorm:"foreignKey:ProductID"`

	IsVisible bool `gorm:"not null;default:true;index"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// LicensePrice returns the price of the given license type.
func (p *Product) LicensePrice(t LicenseType) decimal.Decimal {
	if t == LicenseCommercial {
		return p.CommercialPrice
	}
	return p.PersonalPrice
}

// OffersLicense reports whether the license type is purchasable.
func (p *Product) OffersLicense(t LicenseType) bool {
	return p.LicensePrice(t).IsPositive()
}

// BundlesFor returns the bundles scoped to the given license type,
// preserving their stored order.
func (p *Product) BundlesFor(t LicenseType) []Bundle {
	var out []Bundle
	for _, b := range p.Bundles {
		if b.Type == t {
			out = append(out, b)
		}
	}
	return out
}

// FindBundle matches a bundle by name, case-insensitively, within the
// bundle list scoped to the given license type. A miss is a normal
// outcome, reported via the bool.
func (p *Product) FindBundle(t LicenseType, name string) (*Bundle, bool) {
	for i := range p.Bundles {
		b := &p.Bundles[i]
		if b.Type == t && strings.EqualFold(b.Name, name) {
			return b, true
		}
	}
	return nil, false
}

type Bundle struct {
	ID        string      `gorm:"primaryKey;size:128;not null"` // derived from name + type
	ProductID string      `gorm:"size:64;index;not null"`
	Name      string      `gorm:"size:200;not null"`
	Type      LicenseType `gorm:"size:16;not null"`
	// Zero means included free with the license.
	Price       decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	Description string          `gorm:"type:text"`
	Download    string          `gorm:"size:255;not null"` // object key of the bundle asset
	Image       string          `gorm:"size:255"`
	Position    int             `gorm:"not null;default:0"` // order within its license-scoped list
	CreatedAt   time.Time
}

// BundleIDFor derives the stable bundle identifier from its name and
// license type, unique within the parent product's bundle list.
func BundleIDFor(name string, t LicenseType) string {
	slug := strings.ToLower(strings.TrimSpace(name))
	slug = strings.Join(strings.Fields(slug), "-")
	return slug + "-" + string(t)
}
