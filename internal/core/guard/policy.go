package guard

import (
	"errors"
	"fmt"
	"path"
	"sort"
	"strings"

	"github.com/clinicdesk/emr-api/internal/core/domain"
)

// ErrInvalidPolicy is returned by New for a policy that cannot be enforced unambiguously.
var ErrInvalidPolicy = errors.New("invalid route policy")

// Policy maps each role to the path prefixes it may navigate to.
// Roles without an entry may navigate nowhere.
type Policy map[domain.Role][]string

// DefaultPolicy is the navigation policy of the EMR front end.
func DefaultPolicy() Policy {
	return Policy{
		domain.RoleAdmin:     {"/admin"},
		domain.RoleDoctor:    {"/doctor"},
		domain.RoleFrontDesk: {"/frontdesk"},
	}
}

type grant struct {
	role   domain.Role
	prefix string
}

// compile validates p and flattens it into grants sorted by role then prefix.
// Prefixes granted to different roles must not contain one another.
func (p Policy) compile() ([]grant, error) {
	var grants []grant
	for role, prefixes := range p {
		if !role.Valid() {
			return nil, fmt.Errorf("%w: unknown role %q", ErrInvalidPolicy, role)
		}
		for _, raw := range prefixes {
			if !strings.HasPrefix(raw, "/") {
				return nil, fmt.Errorf("%w: prefix %q for %s must be absolute", ErrInvalidPolicy, raw, role)
			}
			grants = append(grants, grant{role: role, prefix: path.Clean(raw)})
		}
	}

	for i := range grants {
		for j := i + 1; j < len(grants); j++ {
			a, b := grants[i], grants[j]
			if a.role == b.role {
				continue
			}
			if covers(a.prefix, b.prefix) || covers(b.prefix, a.prefix) {
				return nil, fmt.Errorf("%w: %s prefix %q overlaps %s prefix %q",
					ErrInvalidPolicy, a.role, a.prefix, b.role, b.prefix)
			}
		}
	}

	sort.Slice(grants, func(i, j int) bool {
		if grants[i].role != grants[j].role {
			return grants[i].role < grants[j].role
		}
		return grants[i].prefix < grants[j].prefix
	})
	return grants, nil
}

// covers reports whether prefix contains p on a path-segment boundary.
func covers(prefix, p string) bool {
	if prefix == "/" || prefix == p {
		return true
	}
	return strings.HasPrefix(p, prefix+"/")
}
