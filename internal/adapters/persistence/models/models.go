package models

import (
	"time"

	"gorm.io/gorm"
)

// Role names seeded at startup. Registration resolves roles by name,
// so the set is closed.
const (
	RoleAdmin = "ADMIN"
	RoleUser  = "USER"
)

// Role represents the roles reference table
type Role struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"uniqueIndex;size:20;not null" json:"name"`
}

func (Role) TableName() string {
	return "roles"
}

// Customer represents the customers table. The unique indexes on
// username and email are the authoritative guard against duplicate
// registrations; the service-level existence checks only produce
// friendlier errors.
type Customer struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Username  string    `gorm:"uniqueIndex;size:255;not null" json:"username"`
	Password  string    `gorm:"size:255;not null" json:"-"`
	FullName  string    `gorm:"size:255;not null" json:"full_name"`
	Email     string    `gorm:"uniqueIndex;size:255;not null" json:"email"`
	Age       uint8     `gorm:"not null" json:"age"`
	RoleID    uint      `gorm:"not null" json:"-"`
	Role      Role      `gorm:"foreignKey:RoleID" json:"role"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Customer) TableName() string {
	return "customers"
}

// CustomerResponse DTO for public customer reads
type CustomerResponse struct {
	ID       uint   `json:"id"`
	FullName string `json:"fullName"`
	Age      uint8  `json:"age"`
	Email    string `json:"email"`
}

func (c *Customer) ToResponse() *CustomerResponse {
	return &CustomerResponse{
		ID:       c.ID,
		FullName: c.FullName,
		Age:      c.Age,
		Email:    c.Email,
	}
}

// AutoMigrate runs auto migration for all tables
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&Role{},
		&Customer{},
	)
}
