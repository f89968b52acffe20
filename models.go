package auth

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// DefaultRoleName is the role every account receives at registration unless
// the lifecycle is configured otherwise. The role record itself must already
// exist; registration never creates it.
const DefaultRoleName = "USER"

// User is the account model
type User struct {
	bun.BaseModel `bun:"table:users,alias:usr"`
	ID            int64      `bun:"id,pk,autoincrement" json:"id,omitempty"`
	Username      string     `bun:"username,notnull,unique" json:"username,omitempty"`
	Email         string     `bun:"email,notnull,unique" json:"email,omitempty"`
	Password      string     `bun:"password,notnull" json:"-"`
	Roles         []*Role    `bun:"m2m:user_roles,join:User=Role" json:"roles,omitempty"`
	CreatedAt     *time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"created_at,omitempty"`
	UpdatedAt     *time.Time `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at,omitempty"`
}

// Validate checks a candidate account before registration. The password here
// is still the clear-text secret; it is replaced by its hash before the
// record is persisted.
func (u *User) Validate() error {
	return validation.ValidateStruct(u,
		validation.Field(&u.Username, validation.Required, validation.Length(3, 64)),
		validation.Field(&u.Email, validation.Required, is.Email),
		validation.Field(&u.Password, validation.Required),
	)
}

// HasRole reports whether the account carries the named role.
func (u *User) HasRole(name string) bool {
	for _, r := range u.Roles {
		if r != nil && r.Name == name {
			return true
		}
	}
	return false
}

// RoleNames returns the names of the assigned roles.
func (u *User) RoleNames() []string {
	names := make([]string, 0, len(u.Roles))
	for _, r := range u.Roles {
		if r != nil {
			names = append(names, r.Name)
		}
	}
	return names
}

// Role is a named authority assigned to accounts at registration time.
type Role struct {
	bun.BaseModel `bun:"table:roles,alias:rol"`
	ID            int64  `bun:"id,pk,autoincrement" json:"id,omitempty"`
	Name          string `bun:"name,notnull,unique" json:"name,omitempty"`
}

// UserRole is the users<->roles join record.
type UserRole struct {
	bun.BaseModel `bun:"table:user_roles,alias:usrrol"`
	UserID        int64 `bun:"user_id,pk" json:"user_id,omitempty"`
	User          *User `bun:"rel:belongs-to,join:user_id=id" json:"-"`
	RoleID        int64 `bun:"role_id,pk" json:"role_id,omitempty"`
	Role          *Role `bun:"rel:belongs-to,join:role_id=id" json:"-"`
}

// Activation gates an account until its token is confirmed. The token is
// generated once at creation and never reassigned.
type Activation struct {
	bun.BaseModel `bun:"table:activations,alias:act"`
	ID            int64  `bun:"id,pk,autoincrement" json:"id,omitempty"`
	Activated     bool   `bun:"activated,notnull,default:false" json:"activated"`
	Token         string `bun:"token,notnull,unique" json:"token,omitempty"`
	UserID        int64  `bun:"user_id,notnull,unique" json:"user_id,omitempty"`
	User          *User  `bun:"rel:belongs-to,join:user_id=id" json:"-"`
}

// NewActivation creates the activation record for a not yet persisted
// account. The owner binding happens during registration once the account
// has an id.
func NewActivation() *Activation {
	return &Activation{
		Token: uuid.NewString(),
	}
}
