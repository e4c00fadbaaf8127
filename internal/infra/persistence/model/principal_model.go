package model

import (
	"time"

	"github.com/google/uuid"
)

// PrincipalModel mirrors the 'principals' table. IDs are UUIDv7 assigned by the repository.
type PrincipalModel struct {
	ID               uuid.UUID `gorm:"type:uuid;primaryKey"`
	Username         string    `gorm:"type:varchar(64);uniqueIndex;not null"`
	Email            string    `gorm:"type:varchar(255);uniqueIndex;not null"`
	FullName         string    `gorm:"type:varchar(255);not null"`
	PasswordHash     string    `gorm:"type:varchar(255);not null"`
	AvatarURL        string    `gorm:"type:text;not null"`
	CoverImageURL    string    `gorm:"type:text;not null;default:''"`
	RefreshTokenHash *string   `gorm:"type:varchar(64)"`
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// TableName explicitly sets the table name for GORM.
func (PrincipalModel) TableName() string {
	return "principals"
}

// PublicPrincipalModel selects only the columns of the public projection.
type PublicPrincipalModel struct {
	ID            uuid.UUID
	Username      string
	Email         string
	FullName      string
	AvatarURL     string
	CoverImageURL string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// TableName explicitly sets the table name for GORM.
func (PublicPrincipalModel) TableName() string {
	return "principals"
}
