package constants

// Role adalah jenis principal yang punya cookie session sendiri
// (pasangan {role}_id / {role}_token).
type Role string

const (
	RoleUser       Role = "user" // student
	RoleAdmin      Role = "admin"
	RoleDriver     Role = "driver"
	RoleBusManager Role = "bus_manager"
	RoleFaculty    Role = "faculty"
	RoleAlumni     Role = "alumni"
)

// ==========================
// ✅ Grouped Role Slices
// ==========================
var (
	AllRoles = []Role{
		RoleUser,
		RoleAdmin,
		RoleDriver,
		RoleBusManager,
		RoleFaculty,
		RoleAlumni,
	}

	// Role dengan cookie berumur pendek (24 jam); sisanya 30 hari.
	ShortSessionRoles = []Role{
		RoleDriver,
		RoleAdmin,
	}

	// Role yang TIDAK diberi warning "active on another device":
	// login admin selalu langsung rotate token.
	NoConcurrentWarningRoles = []Role{
		RoleAdmin,
	}
)

func RoleIn(role Role, group []Role) bool {
	for _, r := range group {
		if r == role {
			return true
		}
	}
	return false
}

func (r Role) Valid() bool {
	return RoleIn(r, AllRoles)
}

// Nama cookie per role, mengikuti kontrak {role}_id / {role}_token.
func (r Role) IDCookie() string    { return string(r) + "_id" }
func (r Role) TokenCookie() string { return string(r) + "_token" }
