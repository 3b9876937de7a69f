// Package guard decides whether an identity may navigate to a path.
package guard

import (
	"path"
	"strings"

	"github.com/clinicdesk/emr-api/internal/core/domain"
)

// Guard evaluates navigation requests against a validated Policy. It is
// immutable after New and safe for concurrent use.
type Guard struct {
	byRole map[domain.Role][]string
}

// New validates p and returns a Guard enforcing it.
func New(p Policy) (*Guard, error) {
	grants, err := p.compile()
	if err != nil {
		return nil, err
	}
	byRole := make(map[domain.Role][]string)
	for _, g := range grants {
		byRole[g.role] = append(byRole[g.role], g.prefix)
	}
	return &Guard{byRole: byRole}, nil
}

// Authorize maps (identity, requestedPath) to a navigation Decision.
// A nil identity means nobody is logged in.
func (g *Guard) Authorize(identity *domain.Identity, requestedPath string) Decision {
	if identity == nil {
		return RedirectToLogin
	}
	p := normalize(requestedPath)
	for _, prefix := range g.byRole[identity.Role] {
		if covers(prefix, p) {
			return Allow
		}
	}
	return RedirectToUnauthorized
}

// Prefixes returns the prefixes granted to role.
func (g *Guard) Prefixes(role domain.Role) []string {
	return append([]string(nil), g.byRole[role]...)
}

func normalize(p string) string {
	if i := strings.IndexAny(p, "?#"); i >= 0 {
		p = p[:i]
	}
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	return path.Clean(p)
}
