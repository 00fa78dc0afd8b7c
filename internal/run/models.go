package run

import (
	"errors"
	"fmt"
	"time"
)

// Run statuses. A run is created in StatusInit, moves to StatusInProgress
// via Start and terminates in StatusFinished via Stop.
const (
	StatusInit       = "init"
	StatusInProgress = "in_progress"
	StatusFinished   = "finished"
)

type Run struct {
	ID        string    `json:"id"`
	AthleteID string    `json:"athlete"`
	Comment   string    `json:"comment"`
	Status    string    `json:"status"`
	Distance  *float64  `json:"distance"`
	CreatedAt time.Time `json:"created_at"`
}

var ErrRunNotFound = errors.New("run not found")

// TransitionError reports an illegal lifecycle transition together with the
// run's current status so the caller can inspect state and retry.
type TransitionError struct {
	ID     string
	Status string
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("run %s is in status %q", e.ID, e.Status)
}
