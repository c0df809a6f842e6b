package models

import (
	"time"

	"github.com/lib/pq"
)

type ListingType string

const (
	ListingSale ListingType = "sale"
	ListingRent ListingType = "rent"
)

type PropertyType string

const (
	PropertyHouse     PropertyType = "house"
	PropertyApartment PropertyType = "apartment"
	PropertyCondo     PropertyType = "condo"
	PropertyLand      PropertyType = "land"
)

type PropertyStatus string

const (
	StatusAvailable PropertyStatus = "available"
	StatusSold      PropertyStatus = "sold"
	StatusRented    PropertyStatus = "rented"
	StatusDeleted   PropertyStatus = "deleted"
)

type Location struct {
	City    string  `json:"city"`
	Address string  `json:"address"`
	Lat     float64 `json:"lat"`
	Lng     float64 `json:"lng"`
}

type Property struct {
	ID        string    `gorm:"primaryKey;type:text" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	Title        string       `json:"title"`
	Description  string       `json:"description"`
	Price        int64        `json:"price"`
	Type         ListingType  `gorm:"type:text;index" json:"type"`
	PropertyType PropertyType `gorm:"type:text;index" json:"propertyType"`
	Bedrooms     int          `json:"bedrooms"`
	Bathrooms    int          `json:"bathrooms"`
	Area         float64      `json:"area"`

	Location Location `gorm:"embedded;embeddedPrefix:location_" json:"location"`

	Images    pq.StringArray `gorm:"type:text[]" json:"images"`
	Amenities pq.StringArray `gorm:"type:text[]" json:"amenities"`

	Status PropertyStatus `gorm:"type:text;default:'available';index" json:"status"`

	// SellerID is set once at creation and never updated afterwards
	SellerID string `gorm:"index" json:"sellerId"`
	Seller   User   `gorm:"foreignKey:SellerID" json:"seller"`

	Views    int64 `gorm:"default:0" json:"views"`
	Featured bool  `gorm:"default:false;index" json:"featured"`
}
