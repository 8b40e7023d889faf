package domain

// LoginResult is the remote login response.
type LoginResult struct {
	AccessToken string    `json:"accessToken"`
	User        *Identity `json:"user"`
}

// Registration carries the fields of a new account.
type Registration struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
	Phone    string `json:"phone"`
}

// ProfileUpdate changes the caller's own display fields. Empty fields are not sent.
type ProfileUpdate struct {
	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty"`
	Phone string `json:"phone,omitempty"`
}

// Apply copies the non-empty fields onto id.
func (p ProfileUpdate) Apply(id Identity) Identity {
	if p.Name != "" {
		id.Name = p.Name
	}
	if p.Email != "" {
		id.Email = p.Email
	}
	if p.Phone != "" {
		id.Phone = p.Phone
	}
	return id
}

// UserUpdate is the admin-editable subset of a user.
type UserUpdate struct {
	Name    string `json:"name"`
	IsAdmin bool   `json:"isAdmin"`
}

// Message is the generic acknowledgement body of the remote API.
type Message struct {
	Message string `json:"message"`
}
