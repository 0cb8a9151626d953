package models

import "time"

type Status struct {
	ID        uint64    `gorm:"primarykey" json:"id"`
	Name      string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relations
	Tasks []Task `gorm:"foreignKey:StatusID" json:"tasks,omitempty"`
}

func (s Status) GetID() uint64 { return s.ID }
func (s Status) GetName() string { return s.Name }
