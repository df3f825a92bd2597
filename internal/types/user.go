package types

type User struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	DNI          string `json:"dni"`
	Address      string `json:"address"`
	Phone        string `json:"phone"`
	Email        string `json:"email"`
	Role         string `json:"role"`
	PasswordHash string `json:"-"`
	AvatarURL    string `json:"avatarUrl,omitempty"`
}

func UserFromDocument(doc Document) *User {
	return &User{
		ID:           doc.ID(),
		Name:         doc.Str("name", SentinelUnknownClient),
		DNI:          doc.Str("dni", SentinelUnknown),
		Address:      doc.Str("address", SentinelUnknown),
		Phone:        doc.Str("phone", SentinelUnknown),
		Email:        doc.Str("email", SentinelUnknown),
		Role:         doc.Str("role", RoleClient),
		PasswordHash: doc.Str("passwordHash", ""),
		AvatarURL:    doc.Str("avatarUrl", ""),
	}
}

func (u *User) ToFields() map[string]any {
	return map[string]any{
		"name":         u.Name,
		"dni":          u.DNI,
		"address":      u.Address,
		"phone":        u.Phone,
		"email":        u.Email,
		"role":         u.Role,
		"passwordHash": u.PasswordHash,
		"avatarUrl":    u.AvatarURL,
	}
}
