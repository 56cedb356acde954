package models

import (
	"time"

	"gorm.io/gorm"
)

type User struct {
	gorm.Model
	Name             string     `json:"name"`
	Email            string     `json:"email" gorm:"uniqueIndex"`
	Password         string     `json:"-"`
	IsAdmin          bool       `json:"isAdmin" gorm:"default:false"`
	IsVerified       bool       `json:"isVerified" gorm:"default:false"`
	OTP              string     `json:"-" gorm:"size:6"`
	OTPExpire        *time.Time `json:"-"`
	ResetToken       string     `json:"-" gorm:"index"`
	ResetTokenExpire *time.Time `json:"-"`
	SocialLogin      bool       `json:"socialLogin"`
	SocialProvider   string     `json:"socialProvider"`
}
