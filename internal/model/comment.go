package model

// Comment is a user review of a center. Editable and deletable only by
// the authoring user; the client gates the controls by comparing the
// decoded token id, the server stays authoritative.
type Comment struct {
	ID        int64  `json:"id"`
	Text      string `json:"text"`
	Star      int    `json:"star"`
	UserID    int64  `json:"userId"`
	CenterID  int64  `json:"centerId"`
	CreatedAt string `json:"createdAt,omitempty"`
	UpdatedAt string `json:"updatedAt,omitempty"`
	User      *User  `json:"user,omitempty"`
}
