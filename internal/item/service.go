package item

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"backend-runtracker/internal/db"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"
)

// Column headers the workbook must carry, matched after trimming.
var requiredHeaders = []string{"Name", "UID", "Value", "Latitude", "Longitude", "URL"}

type Service struct {
	db db.Pool
}

func NewService(db db.Pool) *Service {
	return &Service{db: db}
}

// Import reads an xlsx workbook and stores every valid, previously unseen
// item from its first sheet. It returns the rejected rows verbatim so the
// uploader can fix and resubmit them; a partially bad workbook is not an
// error. Only an unreadable workbook or a failing insert aborts the batch.
func (s *Service) Import(ctx context.Context, r io.Reader) ([][]string, error) {
	wb, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadWorkbook, err)
	}
	defer wb.Close()

	sheets := wb.GetSheetList()
	if len(sheets) == 0 {
		return [][]string{}, nil
	}
	rows, err := wb.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadWorkbook, err)
	}
	if len(rows) == 0 {
		return [][]string{}, nil
	}

	columns := map[string]int{}
	for i, cell := range rows[0] {
		columns[strings.TrimSpace(cell)] = i
	}
	headerOK := true
	for _, h := range requiredHeaders {
		if _, ok := columns[h]; !ok {
			headerOK = false
			break
		}
	}

	rejected := [][]string{}
	var staged []Item
	var stagedRows [][]string
	seen := map[string]struct{}{}

	for _, row := range rows[1:] {
		if emptyRow(row) {
			continue
		}
		if !headerOK {
			rejected = append(rejected, row)
			continue
		}
		uid := strings.TrimSpace(cellAt(row, columns["UID"]))
		if _, dup := seen[uid]; dup && uid != "" {
			rejected = append(rejected, row)
			continue
		}
		it, ok := parseRow(row, columns)
		if !ok {
			rejected = append(rejected, row)
			continue
		}
		seen[uid] = struct{}{}
		staged = append(staged, it)
		stagedRows = append(stagedRows, row)
	}

	if len(staged) == 0 {
		return rejected, nil
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	for i, it := range staged {
		tag, err := tx.Exec(ctx, `
			INSERT INTO collectible_items (id, name, uid, latitude, longitude, picture, value)
			VALUES ($1,$2,$3,$4,$5,$6,$7)
			ON CONFLICT (uid) DO NOTHING
		`, uuid.NewString(), it.Name, it.UID, it.Latitude, it.Longitude, it.Picture, it.Value)
		if err != nil {
			_ = tx.Rollback(ctx)
			return nil, err
		}
		if tag.RowsAffected() == 0 {
			rejected = append(rejected, stagedRows[i])
		}
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return rejected, nil
}

func (s *Service) List(ctx context.Context) ([]Item, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id, name, uid, latitude, longitude, picture, value, created_at
		FROM collectible_items
		ORDER BY created_at, id
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []Item
	for rows.Next() {
		var it Item
		err := rows.Scan(&it.ID, &it.Name, &it.UID, &it.Latitude, &it.Longitude,
			&it.Picture, &it.Value, &it.CreatedAt)
		if err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, nil
}

func parseRow(row []string, columns map[string]int) (Item, bool) {
	it := Item{
		Name:    strings.TrimSpace(cellAt(row, columns["Name"])),
		UID:     strings.TrimSpace(cellAt(row, columns["UID"])),
		Picture: strings.TrimSpace(cellAt(row, columns["URL"])),
	}
	if it.Name == "" || it.UID == "" || it.Picture == "" {
		return Item{}, false
	}

	value, err := strconv.Atoi(strings.TrimSpace(cellAt(row, columns["Value"])))
	if err != nil {
		return Item{}, false
	}
	lat, err := strconv.ParseFloat(strings.TrimSpace(cellAt(row, columns["Latitude"])), 64)
	if err != nil || lat < -90 || lat > 90 {
		return Item{}, false
	}
	lng, err := strconv.ParseFloat(strings.TrimSpace(cellAt(row, columns["Longitude"])), 64)
	if err != nil || lng < -180 || lng > 180 {
		return Item{}, false
	}

	it.Value = value
	it.Latitude = lat
	it.Longitude = lng
	return it, true
}

func cellAt(row []string, i int) string {
	if i < len(row) {
		return row[i]
	}
	return ""
}

func emptyRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
