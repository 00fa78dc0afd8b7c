package challenge

import "time"

// Badge names are owned here; services grant them through GrantOnce only.
const (
	TenRunsBadge = "Сделай 10 Забегов!"
	FiftyKmBadge = "Пробеги 50 километров!"
)

type Challenge struct {
	ID        string    `json:"id"`
	FullName  string    `json:"full_name"`
	AthleteID string    `json:"athlete"`
	CreatedAt time.Time `json:"created_at"`
}
