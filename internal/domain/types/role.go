// Package types define tipos de dominio compartidos entre paquetes.
package types

import (
	"errors"
	"strings"
)

// Role es el rol autoritativo de un usuario. Conjunto cerrado: Buyer, Seller, Admin.
type Role string

const (
	RoleBuyer  Role = "Buyer"
	RoleSeller Role = "Seller"
	RoleAdmin  Role = "Admin"
)

// ErrUnknownRole indica un rol fuera del conjunto cerrado.
var ErrUnknownRole = errors.New("unknown role")

// ParseRole convierte el string persistido en un Role.
// La comparación es exacta salvo espacios; "admin" no es "Admin".
func ParseRole(s string) (Role, error) {
	switch r := Role(strings.TrimSpace(s)); r {
	case RoleBuyer, RoleSeller, RoleAdmin:
		return r, nil
	default:
		return "", ErrUnknownRole
	}
}

// IsValid retorna true si el rol pertenece al conjunto cerrado.
func (r Role) IsValid() bool {
	_, err := ParseRole(string(r))
	return err == nil
}

// CanManageListings reporta si el rol pasa el gate seller-or-admin.
// Un rol nuevo debe agregarse acá explícitamente; el default niega.
func (r Role) CanManageListings() bool {
	switch r {
	case RoleSeller, RoleAdmin:
		return true
	case RoleBuyer:
		return false
	default:
		return false
	}
}

// IsAdmin reporta si el rol pasa el gate admin-only.
func (r Role) IsAdmin() bool {
	switch r {
	case RoleAdmin:
		return true
	case RoleBuyer, RoleSeller:
		return false
	default:
		return false
	}
}

func (r Role) String() string { return string(r) }
