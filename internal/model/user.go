package model

// User roles understood by the client.
const (
	RoleUser = "USER"
	RoleCEO  = "CEO"
)

// User is the session profile returned by /users/mydata.
type User struct {
	ID        int64  `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Role      string `json:"role"`
	Image     string `json:"image,omitempty"`
	IsActive  bool   `json:"isActive,omitempty"`
	CreatedAt string `json:"createdAt,omitempty"`
	UpdatedAt string `json:"updatedAt,omitempty"`
}

// FullName joins first and last name for display.
func (u User) FullName() string {
	if u.FirstName == "" {
		return u.LastName
	}
	if u.LastName == "" {
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}

// TokenPair is the /users/login and /users/refreshToken response.
type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// Profile is the full /users/mydata projection: the user record plus
// the personalized collections the API embeds alongside it.
type Profile struct {
	User
	Likes      []LikedItem `json:"likes,omitempty"`
	Receptions []Reception `json:"receptions,omitempty"`
}
