package guard

// Decision is the outcome of a navigation check.
type Decision int

const (
	Allow Decision = iota
	RedirectToLogin
	RedirectToUnauthorized
)

const (
	LoginPath        = "/login"
	UnauthorizedPath = "/unauthorized"
)

func (d Decision) String() string {
	switch d {
	case Allow:
		return "allow"
	case RedirectToLogin:
		return "redirect_to_login"
	case RedirectToUnauthorized:
		return "redirect_to_unauthorized"
	default:
		return "unknown"
	}
}

// Redirect returns the path the router should navigate to instead, or "" for Allow.
func (d Decision) Redirect() string {
	switch d {
	case RedirectToLogin:
		return LoginPath
	case RedirectToUnauthorized:
		return UnauthorizedPath
	default:
		return ""
	}
}
