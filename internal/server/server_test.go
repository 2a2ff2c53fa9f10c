package server

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/desertthunder/partyx/internal/catalog"
	"github.com/desertthunder/partyx/internal/models"
	"github.com/desertthunder/partyx/internal/party"
	"github.com/desertthunder/partyx/internal/repositories"
	"github.com/desertthunder/partyx/internal/shared"
	tu "github.com/desertthunder/partyx/internal/testing"
)

type apiFixture struct {
	srv     *httptest.Server
	coord   *party.Coordinator
	catalog *catalog.Catalog
	lookup  *tu.MockLookup
}

func newAPI(t *testing.T) *apiFixture {
	t.Helper()

	db := tu.SetupTestDB(t)
	users := repositories.NewUserRepository(db)
	locations := repositories.NewLocationRepository(db)
	songs := repositories.NewSongRepository(db)
	lookup := &tu.MockLookup{Links: map[string]string{}}

	coord := party.NewCoordinator(party.Stores{
		Parties:   repositories.NewPartyRepository(db),
		Users:     users,
		Locations: locations,
		Songs:     songs,
		Tasks:     repositories.NewTaskRepository(db),
	}, lookup, nil)

	cat := catalog.New(catalog.Opts{
		Users:     users,
		Locations: locations,
		Songs:     songs,
		Foods:     repositories.NewFoodRepository(db),
	})

	srv := httptest.NewServer(New(Opts{
		Coordinator: coord,
		Catalog:     cat,
		DB:          db,
		Metrics:     NewMetrics(),
	}))
	t.Cleanup(srv.Close)

	return &apiFixture{srv: srv, coord: coord, catalog: cat, lookup: lookup}
}

func (f *apiFixture) do(t *testing.T, method, path string, body any) (int, []byte) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("failed to marshal body: %v", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, f.srv.URL+path, reader)
	if err != nil {
		t.Fatalf("failed to build request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("failed to read body: %v", err)
	}
	return resp.StatusCode, data
}

func (f *apiFixture) party(t *testing.T, name string) *models.Party {
	t.Helper()
	p, err := f.coord.CreateParty(context.Background(), party.PartySpec{Name: name, Date: "12.05.2025"})
	if err != nil {
		t.Fatalf("failed to create party: %v", err)
	}
	return p
}

func (f *apiFixture) location(t *testing.T, name string, cost, rating float64, capacity int) *models.Location {
	t.Helper()
	l, err := f.catalog.CreateLocation(context.Background(), catalog.LocationSpec{Name: name, Address: "1 Main St", Cost: cost, Rating: rating, Capacity: capacity})
	if err != nil {
		t.Fatalf("failed to create location: %v", err)
	}
	return l
}

func decode[T any](t *testing.T, data []byte) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		t.Fatalf("failed to decode %q: %v", data, err)
	}
	return v
}

func expectMessage(t *testing.T, data []byte, want string) {
	t.Helper()
	got := decode[map[string]string](t, data)["message"]
	if got != want {
		t.Errorf("expected message %q, got %q", want, got)
	}
}

func TestLocationRoutes(t *testing.T) {
	t.Run("Assign", func(t *testing.T) {
		f := newAPI(t)
		p := f.party(t, "Party1")
		hall := f.location(t, "Party Hall", 500, 4.5, 100)

		status, body := f.do(t, http.MethodPut, "/parties/"+p.ID+"/location/"+hall.ID, nil)
		if status != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", status, body)
		}
		if got := decode[models.Party](t, body); got.LocationID != hall.ID {
			t.Errorf("expected locationId %s, got %q", hall.ID, got.LocationID)
		}
	})

	t.Run("AssignUnknownLocation", func(t *testing.T) {
		f := newAPI(t)
		p := f.party(t, "Party1")

		status, body := f.do(t, http.MethodPut, "/parties/"+p.ID+"/location/nope", nil)
		if status != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", status)
		}
		expectMessage(t, body, "Location not found")
	})

	t.Run("AssignUnknownParty", func(t *testing.T) {
		f := newAPI(t)
		hall := f.location(t, "Party Hall", 500, 4.5, 100)

		status, body := f.do(t, http.MethodPut, "/parties/nope/location/"+hall.ID, nil)
		if status != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", status)
		}
		expectMessage(t, body, "Party not found")
	})

	t.Run("Remove", func(t *testing.T) {
		f := newAPI(t)
		p := f.party(t, "Party1")
		hall := f.location(t, "Party Hall", 500, 4.5, 100)
		f.do(t, http.MethodPut, "/parties/"+p.ID+"/location/"+hall.ID, nil)

		status, body := f.do(t, http.MethodDelete, "/parties/"+p.ID+"/location", nil)
		if status != http.StatusOK {
			t.Fatalf("expected 200, got %d", status)
		}
		if _, ok := decode[map[string]any](t, body)["locationId"]; ok {
			t.Errorf("expected locationId to be absent, got %s", body)
		}
	})

	t.Run("Available", func(t *testing.T) {
		f := newAPI(t)
		p := f.party(t, "Party1")
		f.location(t, "Party Hall", 500, 4.5, 100)
		f.location(t, "Garden Venue", 300, 4.0, 50)

		tests := []struct {
			name  string
			query string
			want  int
		}{
			{"NoFilter", "", 2},
			{"MinRatingAboveAll", "?minRating=5", 0},
			{"MaxCost", "?maxCost=400", 1},
			{"MinCapacity", "?minCapacity=60", 1},
			{"AllBounds", "?minRating=4&maxCost=600&minCapacity=10", 2},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				status, body := f.do(t, http.MethodGet, "/parties/"+p.ID+"/locations"+tt.query, nil)
				if status != http.StatusOK {
					t.Fatalf("expected 200, got %d", status)
				}
				if got := decode[[]models.Location](t, body); len(got) != tt.want {
					t.Errorf("expected %d locations, got %d", tt.want, len(got))
				}
			})
		}
	})

	t.Run("AvailableBadNumber", func(t *testing.T) {
		f := newAPI(t)
		p := f.party(t, "Party1")

		status, _ := f.do(t, http.MethodGet, "/parties/"+p.ID+"/locations?maxCost=cheap", nil)
		if status != http.StatusBadRequest {
			t.Errorf("expected 400, got %d", status)
		}
	})
}

func TestSongRoutes(t *testing.T) {
	t.Run("AddAndRemove", func(t *testing.T) {
		f := newAPI(t)
		f.lookup.Links["Happy Birthday"] = "https://www.youtube.com/watch?v=abc"
		p := f.party(t, "Party1")

		status, body := f.do(t, http.MethodPost, "/parties/"+p.ID+"/songs", party.SongSpec{Title: "Happy Birthday", Artist: "Traditional"})
		if status != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", status, body)
		}
		song := decode[models.Song](t, body)
		if song.Link != "https://www.youtube.com/watch?v=abc" {
			t.Errorf("expected resolved link, got %q", song.Link)
		}

		status, body = f.do(t, http.MethodGet, "/parties/"+p.ID+"/songs", nil)
		if status != http.StatusOK || len(decode[[]models.Song](t, body)) != 1 {
			t.Fatalf("expected one song in playlist, got %d: %s", status, body)
		}

		status, _ = f.do(t, http.MethodDelete, "/parties/"+p.ID+"/songs/"+song.ID, nil)
		if status != http.StatusNoContent {
			t.Fatalf("expected 204, got %d", status)
		}

		status, body = f.do(t, http.MethodDelete, "/parties/"+p.ID+"/songs/"+song.ID, nil)
		if status != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", status)
		}
		expectMessage(t, body, "Song not found in playlist")
	})

	t.Run("Resolve", func(t *testing.T) {
		f := newAPI(t)
		p := f.party(t, "Party1")
		f.do(t, http.MethodPost, "/parties/"+p.ID+"/songs", party.SongSpec{Title: "Celebration", Artist: "Kool & The Gang"})
		f.lookup.Links["Celebration"] = "https://x/celebration"

		status, body := f.do(t, http.MethodPost, "/parties/"+p.ID+"/songs/resolve?workers=2", nil)
		if status != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", status, body)
		}
		result := decode[party.ResolveResult](t, body)
		if result.Total != 1 || result.Resolved != 1 {
			t.Errorf("unexpected result %+v", result)
		}
	})
}

func TestTaskRoutes(t *testing.T) {
	f := newAPI(t)
	p := f.party(t, "Party1")

	status, body := f.do(t, http.MethodPost, "/tasks", party.TaskSpec{Name: "Decorations", Points: 100, PartyID: p.ID, Completed: true})
	if status != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", status, body)
	}
	first := decode[models.Task](t, body)

	_, body = f.do(t, http.MethodPost, "/tasks", party.TaskSpec{Name: "Cake", Points: 200, PartyID: p.ID, Completed: true})
	second := decode[models.Task](t, body)

	t.Run("Score", func(t *testing.T) {
		status, body := f.do(t, http.MethodGet, "/parties/"+p.ID+"/score", nil)
		if status != http.StatusOK {
			t.Fatalf("expected 200, got %d", status)
		}
		if got := decode[map[string]any](t, body)["partyPoints"]; got != float64(300) {
			t.Errorf("expected 300 points, got %v", got)
		}
	})

	t.Run("UpdateRecomputes", func(t *testing.T) {
		spec := party.TaskSpec{Name: "Cake", Points: 200, PartyID: p.ID, Completed: false}
		status, _ := f.do(t, http.MethodPut, "/tasks/"+second.ID, spec)
		if status != http.StatusOK {
			t.Fatalf("expected 200, got %d", status)
		}

		_, body := f.do(t, http.MethodGet, "/parties/"+p.ID, nil)
		if got := decode[models.Party](t, body); got.Points != 100 {
			t.Errorf("expected 100 points, got %d", got.Points)
		}
	})

	t.Run("UpdateUnknown", func(t *testing.T) {
		status, body := f.do(t, http.MethodPut, "/tasks/nope", party.TaskSpec{Name: "x", PartyID: p.ID})
		if status != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", status)
		}
		expectMessage(t, body, "Task not found")
	})

	t.Run("Lists", func(t *testing.T) {
		tests := []struct {
			path string
			want int
		}{
			{"/tasks", 2},
			{"/tasks/party/" + p.ID, 2},
			{"/tasks/party/other", 0},
			{"/tasks/user/nobody", 0},
		}
		for _, tt := range tests {
			status, body := f.do(t, http.MethodGet, tt.path, nil)
			if status != http.StatusOK {
				t.Fatalf("%s: expected 200, got %d", tt.path, status)
			}
			if got := decode[[]models.Task](t, body); len(got) != tt.want {
				t.Errorf("%s: expected %d tasks, got %d", tt.path, tt.want, len(got))
			}
		}
	})

	t.Run("Delete", func(t *testing.T) {
		status, _ := f.do(t, http.MethodDelete, "/tasks/"+first.ID, nil)
		if status != http.StatusOK {
			t.Fatalf("expected 200, got %d", status)
		}

		status, _ = f.do(t, http.MethodGet, "/tasks/"+first.ID, nil)
		if status != http.StatusNotFound {
			t.Errorf("expected 404, got %d", status)
		}

		_, body := f.do(t, http.MethodGet, "/parties/"+p.ID, nil)
		if got := decode[models.Party](t, body); got.Points != 0 {
			t.Errorf("expected 0 points, got %d", got.Points)
		}
	})
}

func TestCatalogRoutes(t *testing.T) {
	f := newAPI(t)

	t.Run("UserHidesPassword", func(t *testing.T) {
		status, body := f.do(t, http.MethodPost, "/users", catalog.UserSpec{Name: "Alice", Email: "alice@example.com", Password: "password123"})
		if status != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", status, body)
		}
		if strings.Contains(string(body), "password") {
			t.Errorf("expected no credential in output, got %s", body)
		}

		status, _ = f.do(t, http.MethodPost, "/users", catalog.UserSpec{Name: "Alice", Email: "alice@example.com", Password: "x"})
		if status != http.StatusBadRequest {
			t.Errorf("expected 400 for duplicate email, got %d", status)
		}
	})

	t.Run("FoodLifecycle", func(t *testing.T) {
		status, body := f.do(t, http.MethodPost, "/foods", catalog.FoodSpec{Name: "Pizza", Price: 15.99, Rating: 4.5, PrepMinutes: 30})
		if status != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", status, body)
		}
		food := decode[models.Food](t, body)

		status, _ = f.do(t, http.MethodDelete, "/foods/"+food.ID, nil)
		if status != http.StatusNoContent {
			t.Fatalf("expected 204, got %d", status)
		}

		status, body = f.do(t, http.MethodGet, "/foods/"+food.ID, nil)
		if status != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", status)
		}
		expectMessage(t, body, "Food not found")
	})

	t.Run("MalformedBody", func(t *testing.T) {
		req, _ := http.NewRequest(http.MethodPost, f.srv.URL+"/locations", strings.NewReader("{"))
		resp, err := http.DefaultClient.Do(req)
		if err != nil {
			t.Fatalf("request failed: %v", err)
		}
		resp.Body.Close()
		if resp.StatusCode != http.StatusBadRequest {
			t.Errorf("expected 400, got %d", resp.StatusCode)
		}
	})
}

func TestInfrastructureRoutes(t *testing.T) {
	f := newAPI(t)

	t.Run("Health", func(t *testing.T) {
		status, body := f.do(t, http.MethodGet, "/health", nil)
		if status != http.StatusOK || decode[map[string]string](t, body)["status"] != "ok" {
			t.Errorf("unexpected health response %d: %s", status, body)
		}
	})

	t.Run("MethodNotAllowed", func(t *testing.T) {
		status, _ := f.do(t, http.MethodPost, "/health", nil)
		if status != http.StatusMethodNotAllowed {
			t.Errorf("expected 405, got %d", status)
		}
	})

	t.Run("MediaSearch", func(t *testing.T) {
		f.lookup.Links["Dancing Queen"] = "https://x/dq"

		status, body := f.do(t, http.MethodGet, "/media/search?title=Dancing+Queen&artist=ABBA", nil)
		if status != http.StatusOK || decode[map[string]string](t, body)["link"] != "https://x/dq" {
			t.Errorf("unexpected search response %d: %s", status, body)
		}

		status, _ = f.do(t, http.MethodGet, "/media/search", nil)
		if status != http.StatusBadRequest {
			t.Errorf("expected 400 without title, got %d", status)
		}
	})

	t.Run("Metrics", func(t *testing.T) {
		f.do(t, http.MethodGet, "/health", nil)

		status, body := f.do(t, http.MethodGet, "/metrics", nil)
		if status != http.StatusOK {
			t.Fatalf("expected 200, got %d", status)
		}
		if !strings.Contains(string(body), `partyx_http_requests_total{method="GET",route="GET /health",status="200"}`) {
			t.Errorf("expected request counter for /health, got:\n%s", body)
		}
	})
}

func TestRouter(t *testing.T) {
	t.Run("MiddlewareOrder", func(t *testing.T) {
		var order []string
		mark := func(name string) Middleware {
			return func(next http.Handler) http.Handler {
				return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
					order = append(order, name)
					next.ServeHTTP(w, r)
				})
			}
		}

		router := NewBasicRouter()
		router.Use(mark("first"), mark("second"))
		router.Handle(http.MethodGet, "/ping", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			order = append(order, "handler")
		}))

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ping", nil))

		if strings.Join(order, ",") != "first,second,handler" {
			t.Errorf("unexpected order %v", order)
		}
	})

	t.Run("RecoverWritesJSON", func(t *testing.T) {
		router := NewBasicRouter()
		router.Use(Recover(shared.NewLogger(io.Discard)))
		router.Handle(http.MethodGet, "/boom", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			panic("boom")
		}))

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/boom", nil))

		if rec.Code != http.StatusInternalServerError {
			t.Fatalf("expected 500, got %d", rec.Code)
		}
		expectMessage(t, rec.Body.Bytes(), "Internal server error")
	})
}
