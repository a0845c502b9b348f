package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Merchant is the persistence model. Phones are kept as a comma-joined
// column and the conversation tiers as three JSON text columns; both are
// unpacked into structured fields at the repository boundary.
type Merchant struct {
	ID               uuid.UUID `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()"`
	Domain           string    `gorm:"type:varchar(255);not null;uniqueIndex"`
	BusinessName     string    `gorm:"type:varchar(255)"`
	Phone            string    `gorm:"type:varchar(50)"`
	Phones           string    `gorm:"type:text"`
	AwayMessage      string    `gorm:"type:text"`
	SmsEnabled       bool      `gorm:"default:false"`
	SmsTemplate      string    `gorm:"type:text"`
	FacebookEnabled  bool      `gorm:"default:false"`
	TwitterEnabled   bool      `gorm:"default:false"`
	AgentEnabled     bool      `gorm:"default:false"`
	CheckoutInterval int       `gorm:"default:0"`
	ChatEnabled      bool      `gorm:"default:false"`
	Tiers0           string    `gorm:"type:text"`
	Tiers1           string    `gorm:"type:text"`
	Tiers2           string    `gorm:"type:text"`
	Progress         int       `gorm:"not null;default:0"`
	Status           string    `gorm:"type:varchar(50);not null;default:'new'"`
	Package          string    `gorm:"type:varchar(50)"`
	PendingPackage   string    `gorm:"type:varchar(50)"`
	PendingSince     *time.Time
	AnalysedAt       *time.Time
	CreatedAt        time.Time
	UpdatedAt        time.Time
	DeletedAt        gorm.DeletedAt `gorm:"index"`
}
