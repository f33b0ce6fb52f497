package auth

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// UserRole is the user's role
type UserRole = string

const (
	// RoleUser is a regular account
	RoleUser UserRole = "USER"
	// RoleAdmin is an operator account
	RoleAdmin UserRole = "ADMIN"
	// RoleDemo is a read-only demo account
	RoleDemo UserRole = "DEMO"
)

// User is the user model. A row is uniquely addressable by exactly one
// of access_token_hash or (provider, third_party_id), depending on how
// the account was created; the validator queries by whichever set
// matches the credential kind it received.
type User struct {
	bun.BaseModel   `bun:"table:users,alias:usr"`
	ID              uuid.UUID  `bun:"id,pk,nullzero,type:uuid" json:"id,omitempty"`
	Role            UserRole   `bun:"role,notnull" json:"role,omitempty"`
	Provider        Provider   `bun:"provider,nullzero" json:"provider,omitempty"`
	ThirdPartyID    string     `bun:"third_party_id,nullzero" json:"third_party_id,omitempty"`
	AccessTokenHash string     `bun:"access_token_hash,nullzero" json:"-"`
	CreatedAt       *time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"created_at,omitempty"`
	UpdatedAt       *time.Time `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at,omitempty"`
}
