package domain

// View names a template rendered by the web tier.
type View string

const (
	ViewLanding  View = "landing"
	ViewLogin    View = "login"
	ViewRegister View = "register"
	ViewError    View = "error"
)

const (
	PathHome        = "/"
	PathOrders      = "/orders"
	PathRestaurants = "/restaurants"
	PathNews        = "/news"
	PathLogin       = "/login"
	PathRegister    = "/register"
)

// Route maps a logical path to the view that renders it.
type Route struct {
	Path      string
	View      View
	Protected bool
}

// Routes is the full navigation table. Orders, restaurants and news share the
// landing view for now.
var Routes = []Route{
	{Path: PathHome, View: ViewLanding, Protected: true},
	{Path: PathOrders, View: ViewLanding, Protected: true},
	{Path: PathRestaurants, View: ViewLanding, Protected: true},
	{Path: PathNews, View: ViewLanding, Protected: true},
	{Path: PathLogin, View: ViewLogin},
	{Path: PathRegister, View: ViewRegister},
}

// Lookup returns the route registered for path.
func Lookup(path string) (Route, bool) {
	for _, r := range Routes {
		if r.Path == path {
			return r, true
		}
	}
	return Route{}, false
}
