package entity

// Identity is the caller as decoded from a verified session or read from the
// identity provider's user record.
type Identity struct {
	UID         string `json:"uid"`
	Email       string `json:"email"`
	DisplayName string `json:"displayName"`
}

// IdentityUpdate holds account changes; empty fields are left untouched.
type IdentityUpdate struct {
	Email       string
	DisplayName string
	Password    string
}

func (u IdentityUpdate) IsEmpty() bool {
	return u.Email == "" && u.DisplayName == "" && u.Password == ""
}
