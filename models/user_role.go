package models

type UserRole string

const (
	UserRoleAdmin UserRole = "admin"
	UserRoleUser  UserRole = "user"
)

var roleHumanName = map[UserRole]string{
	UserRoleAdmin: "Administrator",
	UserRoleUser:  "User",
}

func (r UserRole) ToHuman() string {
	if human, exist := roleHumanName[r]; exist {
		return human
	}
	return string(r)
}

func (r UserRole) IsAdmin() bool {
	return r == UserRoleAdmin
}

// SystemUser is recorded as requester when the caller did not identify itself.
const SystemUser = "system"
