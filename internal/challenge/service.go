package challenge

import (
	"context"

	"backend-runtracker/internal/db"

	"github.com/google/uuid"
)

type Service struct {
	db db.Querier
}

func NewService(db db.Querier) *Service {
	return &Service{db: db}
}

// GrantOnce awards a badge at most once per athlete. The unique
// (athlete_id, full_name) constraint makes concurrent grants collapse to a
// single row; the loser sees granted=false, never an error.
func GrantOnce(ctx context.Context, q db.Querier, athleteID, fullName string) (bool, error) {
	tag, err := q.Exec(ctx, `
		INSERT INTO challenges (id, athlete_id, full_name)
		VALUES ($1,$2,$3)
		ON CONFLICT (athlete_id, full_name) DO NOTHING
	`, uuid.NewString(), athleteID, fullName)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (s *Service) List(ctx context.Context, athleteID string) ([]Challenge, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id, athlete_id, full_name, created_at
		FROM challenges
		WHERE $1 = '' OR athlete_id::text = $1
		ORDER BY created_at DESC
	`, athleteID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var challenges []Challenge
	for rows.Next() {
		var c Challenge
		if err := rows.Scan(&c.ID, &c.AthleteID, &c.FullName, &c.CreatedAt); err != nil {
			return nil, err
		}
		challenges = append(challenges, c)
	}
	return challenges, nil
}
