// AngelaMos | 2026
// authorize.go

package middleware

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/carterperez-dev/labsamples/internal/core"
)

// RoleSet is the set of roles allowed to call a handler.
type RoleSet map[string]struct{}

func Roles(roles ...string) RoleSet {
	set := make(RoleSet, len(roles))
	for _, role := range roles {
		set[role] = struct{}{}
	}
	return set
}

func (s RoleSet) Allows(role string) bool {
	_, ok := s[role]
	return ok
}

// Check returns core.ErrUnauthorized when ctx carries no principal and
// core.ErrForbidden when the principal's role is outside the set.
func (s RoleSet) Check(ctx context.Context) error {
	role := GetUserRole(ctx)
	if GetUserID(ctx) == "" || role == "" {
		return fmt.Errorf("authorize: %w", core.ErrUnauthorized)
	}

	if !s.Allows(role) {
		return fmt.Errorf("authorize: role %q: %w", role, core.ErrForbidden)
	}

	return nil
}

// Authorize is called at the top of a handler. It writes a 401 or 403 and
// returns false when the caller may not proceed.
func Authorize(w http.ResponseWriter, r *http.Request, allowed RoleSet) bool {
	err := allowed.Check(r.Context())
	if err == nil {
		return true
	}

	if errors.Is(err, core.ErrUnauthorized) {
		core.Unauthorized(w, "")
		return false
	}

	core.Forbidden(w, "insufficient permissions")
	return false
}
