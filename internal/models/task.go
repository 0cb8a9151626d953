package models

import "time"

type Task struct {
	ID         uint64    `gorm:"primarykey" json:"id"`
	Title      string    `gorm:"not null" json:"title"`
	Content    string    `gorm:"type:text" json:"content"`
	AssigneeID *uint64   `json:"assignee_id"`
	StatusID   *uint64   `json:"status_id"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`

	// Relations
	Assignee *User   `gorm:"foreignKey:AssigneeID" json:"assignee,omitempty"`
	Status   *Status `gorm:"foreignKey:StatusID" json:"status,omitempty"`
}
