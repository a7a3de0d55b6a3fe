package model

// LikedItem joins a user and a center. The server enforces at most one
// per (userId, centerId); the client mirrors that via the store index.
type LikedItem struct {
	ID        int64  `json:"id"`
	UserID    int64  `json:"userId"`
	CenterID  int64  `json:"centerId"`
	CreatedAt string `json:"createdAt,omitempty"`
	UpdatedAt string `json:"updatedAt,omitempty"`
}

// Reception is an appointment booking ("reseption" on the wire).
// VisitDate is composed client-side from separate date and time inputs.
type Reception struct {
	ID        int64   `json:"id"`
	UserID    int64   `json:"userId,omitempty"`
	CenterID  int64   `json:"centerId"`
	FilialID  int64   `json:"filialId,omitempty"`
	MajorID   int64   `json:"majorId"`
	VisitDate string  `json:"visitDate"`
	Status    string  `json:"status,omitempty"`
	Name      string  `json:"name,omitempty"`
	Phone     string  `json:"phone,omitempty"`
	Center    *Center `json:"center,omitempty"`
	Filial    *Branch `json:"filial,omitempty"`
	Major     *Major  `json:"major,omitempty"`
}
