package models

import "time"

type User struct {
	ID          uint64     `gorm:"primarykey" json:"id"`
	Username    string     `gorm:"type:varchar(255);uniqueIndex;not null" json:"username"`
	Password    string     `gorm:"type:varchar(255);not null" json:"-"`
	Email       string     `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	Name        string     `gorm:"type:varchar(255);not null" json:"name"`
	Phone       string     `gorm:"type:varchar(50);not null" json:"phone"`
	DateOfBirth *time.Time `json:"date_of_birth"`
	GenderID    uint64     `gorm:"not null" json:"gender_id"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`

	// Relations
	Gender        *Gender `gorm:"foreignKey:GenderID" json:"gender,omitempty"`
	AssignedTasks []Task  `gorm:"foreignKey:AssigneeID" json:"-"`
}
