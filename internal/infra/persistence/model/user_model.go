// Package model holds the GORM persistence models mirroring database tables.
package model

import "time"

// UserModel mirrors the 'users' table. Local accounts fill login_id and
// password_hash; federated accounts fill auth_type and provider_id. The
// (auth_type, provider_id) pair is the federated identity key, so it
// carries a composite unique index.
type UserModel struct {
	ID           int64   `gorm:"primaryKey;autoIncrement"`
	LoginID      *string `gorm:"type:varchar(100);uniqueIndex"`
	PasswordHash string  `gorm:"type:varchar(255)"`
	// Email is plain data, not an identity key: distinct providers may
	// report the same address for what must remain distinct accounts.
	Email *string `gorm:"type:varchar(255);index"`
	Name         string  `gorm:"type:varchar(100);not null"`
	Role         string  `gorm:"type:varchar(20);not null"`
	AuthType     string  `gorm:"type:varchar(20);not null;uniqueIndex:idx_users_auth_provider"`
	ProviderID   *string `gorm:"type:varchar(255);uniqueIndex:idx_users_auth_provider"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// TableName explicitly sets the table name for GORM.
func (UserModel) TableName() string {
	return "users"
}
