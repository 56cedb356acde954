package models

import (
	"time"

	"gorm.io/gorm"
)

type Visitor struct {
	gorm.Model
	IPAddress  string    `json:"ipAddress" gorm:"not null;index:idx_visitors_ip_ua"`
	UserAgent  string    `json:"userAgent" gorm:"not null;index:idx_visitors_ip_ua"`
	FirstVisit time.Time `json:"firstVisit"`
	LastVisit  time.Time `json:"lastVisit" gorm:"index"`
	VisitCount int64     `json:"visitCount" gorm:"default:1"`
	IsUnique   bool      `json:"isUnique" gorm:"default:true"`
}
