package auth

import (
	"database/sql/driver"
	"fmt"
)

// Role is the closed set of user roles. The zero value is not a valid role.
type Role string

const (
	RoleCustomer Role = "customer"
	RoleSeller   Role = "seller"
)

// ParseRole converts the wire representation into a Role.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleCustomer, RoleSeller:
		return Role(s), nil
	}
	return "", fmt.Errorf("auth: unknown role %q", s)
}

// Valid reports whether r is one of the declared roles.
func (r Role) Valid() bool {
	return r == RoleCustomer || r == RoleSeller
}

func (r Role) String() string { return string(r) }

// Value implements driver.Valuer so gorm stores the role as text.
func (r Role) Value() (driver.Value, error) {
	if !r.Valid() {
		return nil, fmt.Errorf("auth: refusing to store role %q", string(r))
	}
	return string(r), nil
}

// Scan implements sql.Scanner.
func (r *Role) Scan(src any) error {
	var s string
	switch v := src.(type) {
	case string:
		s = v
	case []byte:
		s = string(v)
	default:
		return fmt.Errorf("auth: cannot scan %T into Role", src)
	}
	parsed, err := ParseRole(s)
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}
