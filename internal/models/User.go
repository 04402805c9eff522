package models

import "gorm.io/gorm"

type User struct {
	gorm.Model
	Username string `json:"username" gorm:"uniqueIndex;size:150"`
	Password string `json:"-"` // bcrypt hash, never serialized
	IsStaff  bool   `json:"is_staff"`
}
