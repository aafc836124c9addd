package models

import "time"

// User is an admin-panel account. Not one of the mirrored tables; auth reads
// it straight from the database.
type User struct {
	ID        uint   `gorm:"primaryKey"`
	Name      string `gorm:"type:varchar(120);not null"`
	Email     string `gorm:"type:varchar(120);unique;not null"`
	Password  string `gorm:"type:varchar(255);not null"`
	Role      string `gorm:"type:varchar(20);not null"` // admin, staff
	CreatedAt time.Time
	UpdatedAt time.Time
}
