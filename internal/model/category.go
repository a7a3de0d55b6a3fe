package model

// Category groups downloadable resources.
type Category struct {
	ID        int64      `json:"id"`
	Name      string     `json:"name"`
	Image     string     `json:"image,omitempty"`
	Resources []Resource `json:"resources,omitempty"`
}

// Resource is a study material belonging to a category and a user.
type Resource struct {
	ID          int64  `json:"id"`
	UserID      int64  `json:"userId"`
	CategoryID  int64  `json:"categoryId"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Media       string `json:"media"`
	Image       string `json:"image,omitempty"`
	CreatedAt   string `json:"createdAt,omitempty"`
	UpdatedAt   string `json:"updatedAt,omitempty"`
}
