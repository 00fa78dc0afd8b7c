package run

import (
	"context"
	"errors"

	"backend-runtracker/internal/challenge"
	"backend-runtracker/internal/db"
	"backend-runtracker/internal/shared/geo"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const (
	tenRunsTarget = 10
	fiftyKmTarget = 50.0
)

type Service struct {
	db db.Pool
}

func NewService(db db.Pool) *Service {
	return &Service{db: db}
}

func (s *Service) Create(ctx context.Context, input Run) (Run, error) {
	input.ID = uuid.NewString()
	input.Status = StatusInit
	input.Distance = nil

	row := s.db.QueryRow(ctx, `
		INSERT INTO runs (id, athlete_id, comment, status)
		VALUES ($1,$2,$3,$4)
		RETURNING created_at
	`, input.ID, input.AthleteID, input.Comment, input.Status)
	if err := row.Scan(&input.CreatedAt); err != nil {
		return Run{}, err
	}
	return input, nil
}

func (s *Service) Get(ctx context.Context, id string) (Run, error) {
	row := s.db.QueryRow(ctx, `
		SELECT id, athlete_id, comment, status, distance, created_at
		FROM runs WHERE id=$1
	`, id)
	var r Run
	if err := row.Scan(&r.ID, &r.AthleteID, &r.Comment, &r.Status, &r.Distance, &r.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Run{}, ErrRunNotFound
		}
		return Run{}, err
	}
	return r, nil
}

func (s *Service) List(ctx context.Context, status, athleteID string) ([]Run, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id, athlete_id, comment, status, distance, created_at
		FROM runs
		WHERE ($1 = '' OR status = $1)
		  AND ($2 = '' OR athlete_id::text = $2)
		ORDER BY created_at
	`, status, athleteID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		if err := rows.Scan(&r.ID, &r.AthleteID, &r.Comment, &r.Status, &r.Distance, &r.CreatedAt); err != nil {
			return nil, err
		}
		runs = append(runs, r)
	}
	return runs, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	_, err := s.db.Exec(ctx, `DELETE FROM runs WHERE id=$1`, id)
	return err
}

// Start moves a run from init to in_progress. The guarded single-statement
// update makes concurrent starts race safely: exactly one caller flips the
// status, everyone else gets a TransitionError with the state they lost to.
func (s *Service) Start(ctx context.Context, id string) (Run, error) {
	tag, err := s.db.Exec(ctx, `
		UPDATE runs SET status=$2 WHERE id=$1 AND status=$3
	`, id, StatusInProgress, StatusInit)
	if err != nil {
		return Run{}, err
	}
	if tag.RowsAffected() == 0 {
		var status string
		err := s.db.QueryRow(ctx, `SELECT status FROM runs WHERE id=$1`, id).Scan(&status)
		if errors.Is(err, pgx.ErrNoRows) {
			return Run{}, ErrRunNotFound
		}
		if err != nil {
			return Run{}, err
		}
		return Run{}, &TransitionError{ID: id, Status: status}
	}
	return Run{ID: id, Status: StatusInProgress}, nil
}

// Stop finishes a run. The whole sequence — status flip, distance
// computation over the run's positions, milestone evaluation — commits as
// one transaction; any failure rolls everything back. The FOR UPDATE read
// serializes concurrent stops of the same run.
func (s *Service) Stop(ctx context.Context, id string) (Run, error) {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return Run{}, err
	}

	athleteID, err := s.lockInProgress(ctx, tx, id)
	if err != nil {
		_ = tx.Rollback(ctx)
		return Run{}, err
	}

	if _, err := tx.Exec(ctx, `UPDATE runs SET status=$2 WHERE id=$1`, id, StatusFinished); err != nil {
		_ = tx.Rollback(ctx)
		return Run{}, err
	}

	var finished int
	err = tx.QueryRow(ctx, `
		SELECT COUNT(*) FROM runs WHERE athlete_id=$1 AND status=$2
	`, athleteID, StatusFinished).Scan(&finished)
	if err != nil {
		_ = tx.Rollback(ctx)
		return Run{}, err
	}
	// Fires on the transition to exactly ten finished runs; GrantOnce keeps
	// re-fires idempotent.
	if finished == tenRunsTarget {
		if _, err := challenge.GrantOnce(ctx, tx, athleteID, challenge.TenRunsBadge); err != nil {
			_ = tx.Rollback(ctx)
			return Run{}, err
		}
	}

	points, err := s.pathPoints(ctx, tx, id)
	if err != nil {
		_ = tx.Rollback(ctx)
		return Run{}, err
	}
	distance := geo.RoundKm(geo.PathLengthKm(points))

	if _, err := tx.Exec(ctx, `UPDATE runs SET distance=$2 WHERE id=$1`, id, distance); err != nil {
		_ = tx.Rollback(ctx)
		return Run{}, err
	}

	var totalKm float64
	err = tx.QueryRow(ctx, `
		SELECT COALESCE(SUM(distance),0) FROM runs WHERE athlete_id=$1 AND status=$2
	`, athleteID, StatusFinished).Scan(&totalKm)
	if err != nil {
		_ = tx.Rollback(ctx)
		return Run{}, err
	}
	if totalKm >= fiftyKmTarget {
		if _, err := challenge.GrantOnce(ctx, tx, athleteID, challenge.FiftyKmBadge); err != nil {
			_ = tx.Rollback(ctx)
			return Run{}, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return Run{}, err
	}
	return Run{ID: id, AthleteID: athleteID, Status: StatusFinished, Distance: &distance}, nil
}

func (s *Service) lockInProgress(ctx context.Context, q db.Querier, id string) (string, error) {
	var athleteID, status string
	err := q.QueryRow(ctx, `
		SELECT athlete_id, status FROM runs WHERE id=$1 FOR UPDATE
	`, id).Scan(&athleteID, &status)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", ErrRunNotFound
	}
	if err != nil {
		return "", err
	}
	if status != StatusInProgress {
		return "", &TransitionError{ID: id, Status: status}
	}
	return athleteID, nil
}

// pathPoints loads the run's samples in creation order; the bigserial id is
// the authoritative tiebreaker for samples stored in the same instant.
func (s *Service) pathPoints(ctx context.Context, q db.Querier, id string) ([]geo.Point, error) {
	rows, err := q.Query(ctx, `
		SELECT latitude, longitude FROM positions
		WHERE run_id=$1
		ORDER BY created_at, id
	`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var points []geo.Point
	for rows.Next() {
		var p geo.Point
		if err := rows.Scan(&p.Lat, &p.Lng); err != nil {
			return nil, err
		}
		points = append(points, p)
	}
	return points, rows.Err()
}
