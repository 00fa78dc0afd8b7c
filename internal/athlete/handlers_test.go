package athlete

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/pashagolub/pgxmock/v3"
)

func passThrough(c *fiber.Ctx) error { return c.Next() }

func TestAthleteHandlersGetInfo(t *testing.T) {
	mock := newMock(t)
	defer mock.Close()

	mock.ExpectQuery(`INSERT INTO athlete_info`).
		WithArgs("athlete-1").
		WillReturnRows(pgxmock.NewRows([]string{"athlete_id", "goals", "weight"}).
			AddRow("athlete-1", "stay consistent", nil))

	app := fiber.New()
	RegisterRoutes(app.Group("/athletes"), NewService(mock), passThrough)

	req := httptest.NewRequest(http.MethodGet, "/athletes/athlete-1/info", nil)
	resp, err := app.Test(req)
	if err != nil || resp.StatusCode != http.StatusOK {
		t.Fatalf("get info status: %v", err)
	}

	var info Info
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if info.AthleteID != "athlete-1" || info.Goals != "stay consistent" {
		t.Fatalf("unexpected info: %+v", info)
	}
}

func TestAthleteHandlersPutInfo(t *testing.T) {
	mock := newMock(t)
	defer mock.Close()

	weight := 72
	mock.ExpectQuery(`INSERT INTO athlete_info`).
		WithArgs("athlete-1").
		WillReturnRows(pgxmock.NewRows([]string{"athlete_id", "goals", "weight"}).
			AddRow("athlete-1", "", nil))
	mock.ExpectExec(`UPDATE athlete_info`).
		WithArgs("athlete-1", "sub-4 marathon", &weight).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	app := fiber.New()
	RegisterRoutes(app.Group("/athletes"), NewService(mock), passThrough)

	body, _ := json.Marshal(fiber.Map{"goals": "sub-4 marathon", "weight": 72})
	req := httptest.NewRequest(http.MethodPut, "/athletes/athlete-1/info", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil || resp.StatusCode != http.StatusCreated {
		t.Fatalf("put info status: %v", err)
	}
}

func TestAthleteHandlersPutInfoWeightRange(t *testing.T) {
	app := fiber.New()
	RegisterRoutes(app.Group("/athletes"), NewService(nil), passThrough)

	body, _ := json.Marshal(fiber.Map{"weight": 900})
	req := httptest.NewRequest(http.MethodPut, "/athletes/athlete-1/info", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil || resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected bad request")
	}

	var fields map[string]string
	if err := json.NewDecoder(resp.Body).Decode(&fields); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if fields["weight"] == "" {
		t.Fatalf("expected weight error, got %v", fields)
	}
}

func TestAthleteHandlersPutInfoParseError(t *testing.T) {
	app := fiber.New()
	RegisterRoutes(app.Group("/athletes"), NewService(nil), passThrough)

	req := httptest.NewRequest(http.MethodPut, "/athletes/athlete-1/info", bytes.NewReader([]byte("{")))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil || resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected bad request")
	}
}
