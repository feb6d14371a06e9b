package models

type NavItem struct {
	Name string
	URL  string
}

type Navigation struct {
	Items []NavItem
}

// Layout is the view model shared by every rendered page.
type Layout struct {
	Title     string
	User      *User
	Nav       Navigation
	ActiveNav string
	Lang      string
	Dir       string
}

var MainNav = Navigation{
	Items: []NavItem{
		{Name: "Dashboard", URL: "/"},
		{Name: "Clients", URL: "/clients"},
		{Name: "Cessions", URL: "/cessions"},
		{Name: "Payments", URL: "/payments"},
		{Name: "Inventory", URL: "/inventory"},
		{Name: "Finance", URL: "/finance"},
	},
}

var PublicNav = Navigation{
	Items: []NavItem{
		{Name: "Sign In", URL: "/login"},
		{Name: "Sign Up", URL: "/signup"},
	},
}
