// internal/domain/user/entity.go
package user

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Roles a user account can hold
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User represents the user document
type User struct {
	ID                   primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name                 string             `bson:"name" json:"name"`
	Email                string             `bson:"email" json:"email"`
	Password             string             `bson:"password" json:"-"` // Don't return in JSON
	Role                 string             `bson:"role" json:"role"`
	Avatar               Avatar             `bson:"avatar" json:"avatar"`
	IsActive             bool               `bson:"isActive" json:"is_active"`
	RefreshToken         string             `bson:"refreshToken,omitempty" json:"-"`
	ResetPasswordToken   string             `bson:"resetPasswordToken,omitempty" json:"-"`
	ResetPasswordExpires *time.Time         `bson:"resetPasswordExpires,omitempty" json:"-"`
	CreatedAt            time.Time          `bson:"createdAt" json:"created_at"`
	UpdatedAt            time.Time          `bson:"updatedAt" json:"updated_at"`
}

// Avatar represents the user avatar image
type Avatar struct {
	URL string `bson:"url" json:"url"`
	Alt string `bson:"alt" json:"alt"`
}

// IsAdmin reports whether the user holds the admin role
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// Sanitize clears credential fields before the document is serialized
func (u *User) Sanitize() {
	u.Password = ""
	u.RefreshToken = ""
	u.ResetPasswordToken = ""
	u.ResetPasswordExpires = nil
}
