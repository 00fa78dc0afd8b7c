package athlete

import (
	"context"

	"backend-runtracker/internal/db"
)

type Service struct {
	db db.Querier
}

func NewService(db db.Querier) *Service {
	return &Service{db: db}
}

// GetOrCreate reads the athlete's profile, creating an empty one on first
// access. The single upsert statement leaves at-most-one-row-per-athlete to
// the primary key instead of application-level locking.
func (s *Service) GetOrCreate(ctx context.Context, athleteID string) (Info, error) {
	row := s.db.QueryRow(ctx, `
		INSERT INTO athlete_info (athlete_id)
		VALUES ($1)
		ON CONFLICT (athlete_id) DO UPDATE SET athlete_id = EXCLUDED.athlete_id
		RETURNING athlete_id, goals, weight
	`, athleteID)
	var info Info
	if err := row.Scan(&info.AthleteID, &info.Goals, &info.Weight); err != nil {
		return Info{}, err
	}
	return info, nil
}

// Update applies a partial patch; absent fields keep their stored value.
func (s *Service) Update(ctx context.Context, athleteID string, patch UpdateRequest) (Info, error) {
	if patch.Weight != nil && (*patch.Weight <= 0 || *patch.Weight >= 900) {
		return Info{}, ErrWeightRange
	}

	info, err := s.GetOrCreate(ctx, athleteID)
	if err != nil {
		return Info{}, err
	}
	if patch.Goals != nil {
		info.Goals = *patch.Goals
	}
	if patch.Weight != nil {
		info.Weight = patch.Weight
	}

	_, err = s.db.Exec(ctx, `
		UPDATE athlete_info SET goals=$2, weight=$3 WHERE athlete_id=$1
	`, athleteID, info.Goals, info.Weight)
	if err != nil {
		return Info{}, err
	}
	return info, nil
}
