package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Staff roles. Superadmin is the only role that can see every branch; all
// other roles are scoped to their own branch by the access-control layer.
const (
	RoleCook       = "cook"
	RoleWaiter     = "waiter"
	RoleCashier    = "cashier"
	RoleAdmin      = "admin"
	RoleSuperadmin = "superadmin"
)

type User struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	User_id       string             `bson:"user_id" json:"user_id"`
	Branch_id     *string            `bson:"branch_id" json:"branch_id"`
	Email         *string            `bson:"email" json:"email" validate:"required,email"`
	Password      *string            `bson:"password" json:"password,omitempty" validate:"required,min=6"`
	Name          *string            `bson:"name" json:"name" validate:"required,min=2,max=100"`
	Phone         string             `bson:"phone" json:"phone"`
	Role          string             `bson:"role" json:"role" validate:"required,eq=cook|eq=waiter|eq=cashier|eq=admin|eq=superadmin"`
	Is_active     *bool              `bson:"is_active" json:"is_active"`
	Last_login_at *time.Time         `bson:"last_login_at" json:"last_login_at"`
	Token         *string            `bson:"token" json:"token,omitempty"`
	Refresh_token *string            `bson:"refresh_token" json:"refresh_token,omitempty"`
	Created_at    time.Time          `bson:"created_at" json:"created_at"`
	Updated_at    time.Time          `bson:"updated_at" json:"updated_at"`
}

func IsValidRole(role string) bool {
	switch role {
	case RoleCook, RoleWaiter, RoleCashier, RoleAdmin, RoleSuperadmin:
		return true
	}
	return false
}
