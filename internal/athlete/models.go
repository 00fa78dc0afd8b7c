package athlete

import "errors"

// Info is the per-athlete profile, created lazily on first read.
type Info struct {
	AthleteID string `json:"user_id"`
	Goals     string `json:"goals"`
	Weight    *int   `json:"weight"`
}

type UpdateRequest struct {
	Goals  *string `json:"goals"`
	Weight *int    `json:"weight"`
}

var ErrWeightRange = errors.New("weight must be in (0, 900)")
