// Package access decides, per navigation, whether a view renders, waits or
// redirects. The decision is a pure function of the session snapshot so it
// can be tested without any rendering code.
package access

import "storefront/internal/model"

// Route entry points used as redirect targets.
const (
	LoginPath    = "/login"
	ProductsPath = "/products"
)

// RouteKind classifies views by who may reach them.
type RouteKind int

const (
	// RoutePublic renders for any session state, guests included.
	RoutePublic RouteKind = iota
	// RoutePublicOnly is for login/register: authenticated users are sent
	// back to the product listing.
	RoutePublicOnly
	// RouteAdminOnly requires an authenticated SUPER_ADMIN.
	RouteAdminOnly
)

// Decision is the gate's verdict for one navigation.
type Decision int

const (
	Render Decision = iota
	ShowLoading
	RedirectToLogin
	RedirectToProducts
)

// Redirect returns the target path for redirecting decisions.
func (d Decision) Redirect() (string, bool) {
	switch d {
	case RedirectToLogin:
		return LoginPath, true
	case RedirectToProducts:
		return ProductsPath, true
	}
	return "", false
}

// Snapshot is the session state a gate decision is made from.
type Snapshot struct {
	Loading       bool
	Authenticated bool
	Role          model.Role
}

// Evaluate derives the gate decision. While the session is still loading no
// redirect is issued for guarded routes; deciding early would bounce an
// authenticated admin to the login page on every refresh.
func Evaluate(kind RouteKind, s Snapshot) Decision {
	switch kind {
	case RoutePublic:
		return Render
	case RoutePublicOnly:
		if s.Loading {
			return ShowLoading
		}
		if s.Authenticated {
			return RedirectToProducts
		}
		return Render
	case RouteAdminOnly:
		if s.Loading {
			return ShowLoading
		}
		if !s.Authenticated {
			return RedirectToLogin
		}
		switch s.Role {
		case model.RoleSuperAdmin:
			return Render
		case model.RoleUser:
			return RedirectToProducts
		default:
			// Unknown roles never reach admin views.
			return RedirectToProducts
		}
	}
	return Render
}
