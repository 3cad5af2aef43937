package authz

// Роли из регистрационной формы; хранятся в users.role как есть.
const (
	RoleAdmin      = "ADMIN"
	RoleNormalUser = "NORMAL_USER"
)

func IsValidRole(role string) bool {
	switch role {
	case RoleAdmin, RoleNormalUser:
		return true
	}
	return false
}
