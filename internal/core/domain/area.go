package domain

// Area is the part of the site an account lands in after login.
type Area int

const (
	AreaUser Area = iota
	AreaAdmin
)

// AreaFor decides the landing area for an account: staff go to the admin
// area, everyone else to the user area.
func AreaFor(a *Account) Area {
	if a != nil && a.IsStaff {
		return AreaAdmin
	}
	return AreaUser
}

func (a Area) String() string {
	if a == AreaAdmin {
		return "admin"
	}
	return "user"
}

// RedirectTargets maps each Area to the URL the client should navigate to.
type RedirectTargets struct {
	Admin string
	User  string
}

func (t RedirectTargets) For(a Area) string {
	if a == AreaAdmin {
		return t.Admin
	}
	return t.User
}
