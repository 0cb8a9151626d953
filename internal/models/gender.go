package models

import "time"

type Gender struct {
	ID        uint64    `gorm:"primarykey" json:"id"`
	Name      string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relations
	Users []User `gorm:"foreignKey:GenderID" json:"users,omitempty"`
}

func (g Gender) GetID() uint64 { return g.ID }
func (g Gender) GetName() string { return g.Name }
