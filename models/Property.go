package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Property struct {
	gorm.Model
	Title        string         `json:"title" gorm:"not null"`
	Location     string         `json:"location" gorm:"not null;index"`
	Price        int64          `json:"price" gorm:"not null"` // minor currency units
	Images       datatypes.JSON `json:"image"`                 // JSON array of URLs
	Beds         int            `json:"beds"`
	Baths        int            `json:"baths"`
	Sqft         int            `json:"sqft"`
	PropertyType string         `json:"type" gorm:"column:property_type"`
	Availability string         `json:"availability"`
	Description  string         `json:"description" gorm:"type:text"`
	Amenities    datatypes.JSON `json:"amenities"`
	Phone        string         `json:"phone"`

	IsBlocked   bool       `json:"isBlocked" gorm:"default:false;index"`
	IsBooked    bool       `json:"isBooked" gorm:"default:false"`
	BookedByID  *uint      `json:"bookedBy" gorm:"index"`
	BookedBy    *User      `json:"bookedByUser,omitempty" gorm:"foreignKey:BookedByID"`
	BookingDate *time.Time `json:"bookingDate"`

	TokenAmount   int64  `json:"tokenAmount"`
	PaymentStatus string `json:"paymentStatus" gorm:"type:varchar(20);default:'pending'"` // pending, verified, failed

	Views     int64          `json:"views" gorm:"default:0"`
	ViewDates datatypes.JSON `json:"viewDates"`
}
