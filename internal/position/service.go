package position

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"backend-runtracker/internal/db"
	"backend-runtracker/internal/run"
	"backend-runtracker/internal/stream"

	"github.com/jackc/pgx/v5"
)

const sampleTimeLayout = "2006-01-02T15:04:05.000000"

// Offset-suffixed samples are accepted and converted; bare ones are taken
// as UTC.
var sampleTimeLayouts = []string{
	sampleTimeLayout + "Z07:00",
	sampleTimeLayout,
}

type Service struct {
	db  db.Pool
	hub *stream.Hub
}

func NewService(db db.Pool, hub *stream.Hub) *Service {
	return &Service{db: db, hub: hub}
}

// Create validates and stores one GPS sample. The run-status check and the
// insert share a transaction holding a share lock on the run row, so a
// sample can never slip into a run a concurrent Stop has already finished.
func (s *Service) Create(ctx context.Context, req CreateRequest) (Position, error) {
	errs := FieldErrors{}
	if req.Latitude == nil || *req.Latitude < -90 || *req.Latitude > 90 {
		errs["latitude"] = "latitude must be in [-90.0, 90.0]"
	}
	if req.Longitude == nil || *req.Longitude < -180 || *req.Longitude > 180 {
		errs["longitude"] = "longitude must be in [-180.0, 180.0]"
	}
	var sampleAt *time.Time
	if req.DateTime != "" {
		parsed, err := parseSampleTime(req.DateTime)
		if err != nil {
			errs["date_time"] = "date_time must match format 'YYYY-MM-DDTHH:MM:SS.ffffff'"
		} else {
			sampleAt = parsed
		}
	}
	if req.RunID == "" {
		errs["run"] = "Invalid run"
	}
	if len(errs) > 0 {
		return Position{}, errs
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return Position{}, err
	}

	var status string
	err = tx.QueryRow(ctx, `SELECT status FROM runs WHERE id=$1 FOR SHARE`, req.RunID).Scan(&status)
	if errors.Is(err, pgx.ErrNoRows) {
		_ = tx.Rollback(ctx)
		return Position{}, FieldErrors{"run": "Invalid run"}
	}
	if err != nil {
		_ = tx.Rollback(ctx)
		return Position{}, err
	}
	if status != run.StatusInProgress {
		_ = tx.Rollback(ctx)
		return Position{}, FieldErrors{"run": "Run must be in status 'in_progress'"}
	}

	pos := Position{
		RunID:     req.RunID,
		Latitude:  *req.Latitude,
		Longitude: *req.Longitude,
		DateTime:  sampleAt,
	}
	row := tx.QueryRow(ctx, `
		INSERT INTO positions (run_id, latitude, longitude, recorded_at)
		VALUES ($1,$2,$3,$4)
		RETURNING id, created_at
	`, pos.RunID, pos.Latitude, pos.Longitude, sampleAt)
	if err := row.Scan(&pos.ID, &pos.CreatedAt); err != nil {
		_ = tx.Rollback(ctx)
		return Position{}, err
	}

	if err := tx.Commit(ctx); err != nil {
		return Position{}, err
	}

	if s.hub != nil {
		payload, _ := json.Marshal(pos)
		s.hub.Broadcast(pos.RunID, payload)
	}

	return pos, nil
}

func (s *Service) ListByRun(ctx context.Context, runID string) ([]Position, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id, run_id, latitude, longitude, recorded_at, created_at
		FROM positions WHERE run_id=$1
		ORDER BY created_at, id
	`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var positions []Position
	for rows.Next() {
		var p Position
		if err := rows.Scan(&p.ID, &p.RunID, &p.Latitude, &p.Longitude, &p.DateTime, &p.CreatedAt); err != nil {
			return nil, err
		}
		positions = append(positions, p)
	}
	return positions, nil
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	_, err := s.db.Exec(ctx, `DELETE FROM positions WHERE id=$1`, id)
	return err
}

// parseSampleTime normalizes a client timestamp to UTC.
func parseSampleTime(raw string) (*time.Time, error) {
	var lastErr error
	for _, layout := range sampleTimeLayouts {
		parsed, err := time.Parse(layout, raw)
		if err == nil {
			utc := parsed.UTC()
			return &utc, nil
		}
		lastErr = err
	}
	return nil, lastErr
}
