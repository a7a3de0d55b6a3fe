package model

// Region is a reference record referenced by Center.RegionID.
type Region struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Major is a study direction; many-to-many with Center.
type Major struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Branch is a center filial ("filialId" on a reception).
type Branch struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Address  string `json:"address,omitempty"`
	CenterID int64  `json:"centerId,omitempty"`
}

// Owner is the reduced user projection embedded in a center payload.
type Owner struct {
	ID        int64  `json:"id,omitempty"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

// Center is an educational center as returned by /centers.
// Depending on the endpoint the region arrives flat (regionId) or
// joined (region object); both are kept.
type Center struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Address     string    `json:"address"`
	Phone       string    `json:"phone"`
	Image       string    `json:"image"`
	RegionID    int64     `json:"regionId,omitempty"`
	Region      *Region   `json:"region,omitempty"`
	Majors      []Major   `json:"majors,omitempty"`
	Filials     []Branch  `json:"filials,omitempty"`
	User        *Owner    `json:"user,omitempty"`
	UserID      int64     `json:"userId,omitempty"`
	Comments    []Comment `json:"comments,omitempty"`
	CreatedAt   string    `json:"createdAt,omitempty"`
	UpdatedAt   string    `json:"updatedAt,omitempty"`
}

// RegionRef returns the region id whichever way the payload carried it.
func (c *Center) RegionRef() int64 {
	if c.Region != nil {
		return c.Region.ID
	}
	return c.RegionID
}

// HasMajor reports whether the center offers the given major.
func (c *Center) HasMajor(majorID int64) bool {
	for _, m := range c.Majors {
		if m.ID == majorID {
			return true
		}
	}
	return false
}
