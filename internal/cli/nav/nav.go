// Package nav models the client's view routing and its auth guard.
//
// The interactive shell navigates between named views the same way
// the commands do between invocations. Every navigation passes
// through Resolve, which enforces the login requirement and produces
// the redirect target that the login view consumes afterwards.
package nav

import (
	"net/url"
	"strings"
)

// Route is one navigable view.
type Route struct {
	Name         string
	Path         string
	Title        string
	RequiresAuth bool

	// hasParam marks routes with one trailing :id segment.
	hasParam bool
}

// The route table. Order matters only for Routes listing; matching is
// by path shape.
var routes = []Route{
	{Name: "login", Path: "/login", Title: "Login"},
	{Name: "customers", Path: "/customers", Title: "Customers", RequiresAuth: true},
	{Name: "customer-detail", Path: "/customers/:id", Title: "Customer Detail", RequiresAuth: true, hasParam: true},
	{Name: "tracks", Path: "/tracks", Title: "Tracks", RequiresAuth: true},
}

// HomePath is where authenticated users land by default.
const HomePath = "/customers"

// Routes returns the route table.
func Routes() []Route {
	out := make([]Route, len(routes))
	copy(out, routes)
	return out
}

// Match finds the route for a path. The second value is the captured
// :id parameter, empty when the route has none. ok is false for
// unknown paths.
func Match(path string) (route Route, param string, ok bool) {
	path = normalize(path)
	for _, r := range routes {
		if !r.hasParam {
			if r.Path == path {
				return r, "", true
			}
			continue
		}
		prefix, _, _ := strings.Cut(r.Path, ":")
		rest, found := strings.CutPrefix(path, prefix)
		if found && rest != "" && !strings.Contains(rest, "/") {
			return r, rest, true
		}
	}
	return Route{}, "", false
}

// Decision is the outcome of resolving a navigation.
type Decision int

const (
	// Allow lets the navigation proceed.
	Allow Decision = iota
	// RedirectLogin sends the user to the login view, carrying the
	// intended destination. Target holds the full login path.
	RedirectLogin
	// RedirectHome sends an authenticated user away from the login
	// view.
	RedirectHome
	// NotFound is an unknown path.
	NotFound
)

// Resolution is a resolved navigation.
type Resolution struct {
	Decision Decision
	Route    Route
	Param    string
	// Target is the path to go to instead, for the redirect
	// decisions.
	Target string
}

// Resolve applies the auth guard to a navigation attempt.
// Unauthenticated access to a guarded view redirects to login with
// the destination preserved in the redirect query parameter.
// Authenticated access to the login view redirects home.
func Resolve(authenticated bool, path string) Resolution {
	route, param, ok := Match(path)
	if !ok {
		return Resolution{Decision: NotFound}
	}

	if route.RequiresAuth && !authenticated {
		return Resolution{
			Decision: RedirectLogin,
			Route:    route,
			Target:   LoginPath(normalize(path)),
		}
	}
	if route.Name == "login" && authenticated {
		return Resolution{Decision: RedirectHome, Route: route, Target: HomePath}
	}
	return Resolution{Decision: Allow, Route: route, Param: param}
}

// LoginPath builds the login path carrying the intended destination.
func LoginPath(redirect string) string {
	if redirect == "" || redirect == "/login" {
		return "/login"
	}
	q := url.Values{"redirect": {redirect}}
	return "/login?" + q.Encode()
}

// ConsumeRedirect extracts the post-login destination from a login
// path. A missing or self-referential redirect falls back to home.
func ConsumeRedirect(loginPath string) string {
	u, err := url.Parse(loginPath)
	if err != nil {
		return HomePath
	}
	target := u.Query().Get("redirect")
	if target == "" || target == "/login" {
		return HomePath
	}
	if _, _, ok := Match(target); !ok {
		return HomePath
	}
	return target
}

func normalize(path string) string {
	if path == "" {
		return "/"
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	if len(path) > 1 {
		path = strings.TrimSuffix(path, "/")
	}
	return path
}
