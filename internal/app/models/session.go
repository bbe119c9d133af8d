package models

import (
	"carelog-service/internal/pkg/constvars"
	"slices"
)

// AuthSession is the caller identity resolved from the bearer token. It is passed
// explicitly to every remote API call instead of being read from ambient state.
type AuthSession struct {
	Token  string `json:"-"`
	Role   string `json:"role"`
	UserID string `json:"userId"`
}

func (s AuthSession) HasAnyRole(roles ...string) bool {
	return slices.Contains(roles, s.Role)
}

func (s AuthSession) IsCareGiver() bool {
	return s.Role == constvars.RoleCareGiver
}

func (s AuthSession) IsManagerial() bool {
	return s.Role == constvars.RoleManager || s.Role == constvars.RoleSuperuser
}
