package models

import (
	"gorm.io/gorm"
)

type PlatformSettings struct {
	gorm.Model
	AppMaintenance   bool   `gorm:"default:false"`
	SignupEnabled    bool   `gorm:"default:true"`
	CheckoutEnabled  bool   `gorm:"default:true"`
	SupportEmail     string `gorm:"default:''"`
	AnnouncementText string `gorm:"type:text;default:''"`
	IsDeleted        bool   `gorm:"default:false"`
}
