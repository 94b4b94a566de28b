package models

import (
	"time"

	"github.com/google/uuid"
)

type Board struct {
	ID          uuid.UUID `gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	Title       string    `gorm:"size:200;not null"`
	Description string
	Icon        Icon      `gorm:"size:20;default:'other'"`
	Theme       Theme     `gorm:"size:20;default:'blue'"`
	OwnerID     uuid.UUID `gorm:"type:uuid;not null;index"`
	CreatedAt   time.Time
	UpdatedAt   time.Time

	// Relations
	Owner      User       `gorm:"foreignKey:OwnerID"`
	Categories []Category `gorm:"foreignKey:BoardID;constraint:OnDelete:CASCADE"`
	Tasks      []Task     `gorm:"foreignKey:BoardID;constraint:OnDelete:CASCADE"`
	Guests     []User     `gorm:"many2many:board_guests;constraint:OnDelete:CASCADE"`
}

func (Board) TableName() string {
	return "boards"
}

// BoardGuest junction row of board_guests
type BoardGuest struct {
	BoardID uuid.UUID `gorm:"primaryKey;type:uuid"`
	UserID  uuid.UUID `gorm:"primaryKey;type:uuid"`
}

func (BoardGuest) TableName() string {
	return "board_guests"
}
