package formatter

import (
	"encoding/json"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/desertthunder/partyx/internal/models"
	"github.com/desertthunder/partyx/internal/party"
	"github.com/desertthunder/partyx/internal/shared"
	th "github.com/desertthunder/partyx/internal/testing"
)

func testPlan() *party.Plan {
	alice := &models.User{Record: models.Record{ID: "u1"}, Name: "Alice", Email: "alice@example.com"}
	bob := &models.User{Record: models.Record{ID: "u2"}, Name: "Bob", Email: "bob@example.com"}

	return &party.Plan{
		Party: &models.Party{
			Record:     models.Record{ID: "party123"},
			Name:       "Birthday Party",
			Date:       "2024-12-25",
			UserIDs:    []string{"u1", "u2"},
			LocationID: "l1",
			SongIDs:    []string{"s1", "s2"},
			Points:     300,
		},
		Location: &models.Location{Record: models.Record{ID: "l1"}, Name: "Party Hall", Address: "123 Main St", Cost: 500, Rating: 4.5, Capacity: 100},
		Members:  []*models.User{alice, bob},
		Songs: []*models.Song{
			{Record: models.Record{ID: "s1"}, Title: "Happy Birthday", Artist: "Traditional", Link: "https://www.youtube.com/watch?v=abc"},
			{Record: models.Record{ID: "s2"}, Title: "Celebration, Pt. 1", Artist: "Kool & The Gang"},
		},
		Tasks: []*models.Task{
			{Record: models.Record{ID: "t1"}, Name: "Decorations", Points: 100, PartyID: "party123", AssignedUserID: "u1", Completed: true},
			{Record: models.Record{ID: "t2"}, Name: "Cake", Points: 200, PartyID: "party123", AssignedUserID: "u9"},
		},
	}
}

func TestExporters(t *testing.T) {
	t.Run("SongsToCSV", func(t *testing.T) {
		data, err := SongsToCSV(testPlan())
		if err != nil {
			t.Fatalf("SongsToCSV failed: %v", err)
		}

		output := string(data)
		if !strings.HasPrefix(output, "Position,ID,Title,Artist,Link\n") {
			t.Errorf("CSV missing headers, got: %s", output)
		}
		if !strings.Contains(output, "1,s1,Happy Birthday,Traditional,https://www.youtube.com/watch?v=abc") {
			t.Errorf("CSV missing first song, got: %s", output)
		}
		if !strings.Contains(output, `2,s2,"Celebration, Pt. 1",Kool & The Gang,`) {
			t.Errorf("CSV should quote titles containing commas, got: %s", output)
		}
	})

	t.Run("TasksToCSV", func(t *testing.T) {
		data, err := TasksToCSV(testPlan())
		if err != nil {
			t.Fatalf("TasksToCSV failed: %v", err)
		}

		output := string(data)
		if !strings.Contains(output, "t1,Decorations,,100,Alice,true") {
			t.Errorf("CSV missing assignee name, got: %s", output)
		}
		if !strings.Contains(output, "t2,Cake,,200,u9,false") {
			t.Errorf("CSV should fall back to the raw id for non-members, got: %s", output)
		}
	})

	t.Run("ToMarkdown", func(t *testing.T) {
		t.Run("WithLocation", func(t *testing.T) {
			data, err := ToMarkdown(testPlan())
			if err != nil {
				t.Fatalf("ToMarkdown failed: %v", err)
			}

			output := string(data)
			for _, want := range []string{
				"# Birthday Party",
				"**Date**: 2024-12-25",
				"**Points**: 300",
				"Party Hall, 123 Main St (capacity 100, rating 4.5, cost 500.00)",
				"## Guests (2)",
				"- Alice <alice@example.com>",
				"1. [Traditional - Happy Birthday](https://www.youtube.com/watch?v=abc)",
				"2. Kool & The Gang - Celebration, Pt. 1",
				"- [x] Decorations (100 pts) - Alice",
				"- [ ] Cake (200 pts) - u9",
			} {
				if !strings.Contains(output, want) {
					t.Errorf("Markdown missing %q, got:\n%s", want, output)
				}
			}
		})

		t.Run("WithoutLocation", func(t *testing.T) {
			plan := testPlan()
			plan.Location = nil

			data, err := ToMarkdown(plan)
			if err != nil {
				t.Fatalf("ToMarkdown failed: %v", err)
			}
			if !strings.Contains(string(data), "_Not assigned_") {
				t.Errorf("Markdown should mark the venue as unassigned")
			}
		})
	})

	t.Run("ToText", func(t *testing.T) {
		data, err := ToText(testPlan())
		if err != nil {
			t.Fatalf("ToText failed: %v", err)
		}

		output := string(data)
		for _, want := range []string{"Party: Birthday Party", "Location: Party Hall", "Guests: 2", "Points: 300", "Songs: 2", "1. Traditional - Happy Birthday"} {
			if !strings.Contains(output, want) {
				t.Errorf("Text missing %q", want)
			}
		}
	})

	t.Run("ToJSON", func(t *testing.T) {
		data, err := ToJSON(testPlan())
		if err != nil {
			t.Fatalf("ToJSON failed: %v", err)
		}

		var decoded map[string]any
		if err := json.Unmarshal(data, &decoded); err != nil {
			t.Fatalf("invalid JSON: %v", err)
		}
		for _, key := range []string{"party", "location", "members", "songs", "tasks"} {
			if _, ok := decoded[key]; !ok {
				t.Errorf("JSON missing %q", key)
			}
		}
	})
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in   string
		want Format
	}{
		{"csv", FormatCSV},
		{"markdown", FormatMarkdown},
		{"md", FormatMarkdown},
		{"txt", FormatText},
		{"text", FormatText},
		{"json", FormatJSON},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseFormat(tt.in)
			if err != nil || got != tt.want {
				t.Errorf("ParseFormat(%q) = %q, %v", tt.in, got, err)
			}
		})
	}

	if _, err := ParseFormat("pdf"); !errors.Is(err, shared.ErrInvalidArgument) {
		t.Errorf("expected ErrInvalidArgument, got %v", err)
	}
}

func TestWrite(t *testing.T) {
	t.Run("CSVWithDefaultPath", func(t *testing.T) {
		tempDir := t.TempDir()
		originalDir := th.MustGetwd(t)
		th.MustChdir(t, tempDir)
		defer th.MustChdir(t, originalDir)

		result, err := Write(testPlan(), FormatCSV, "")
		if err != nil {
			t.Fatalf("Write failed: %v", err)
		}

		if len(result.Files) != 2 || result.Files[0] != "party123_songs.csv" || result.Files[1] != "party123_tasks.csv" {
			t.Fatalf("unexpected files %v", result.Files)
		}
		for _, f := range result.Files {
			th.AssertFileExists(t, f)
		}
		if !strings.Contains(th.MustReadFile(t, "party123_songs.csv"), "Happy Birthday") {
			t.Errorf("songs CSV missing data")
		}
	})

	t.Run("Markdown", func(t *testing.T) {
		base := filepath.Join(t.TempDir(), "plan")

		result, err := Write(testPlan(), FormatMarkdown, base)
		if err != nil {
			t.Fatalf("Write failed: %v", err)
		}

		th.AssertDirExists(t, base)
		readme := filepath.Join(base, "README.md")
		if len(result.Files) != 1 || result.Files[0] != readme {
			t.Fatalf("unexpected files %v", result.Files)
		}
		if !strings.Contains(th.MustReadFile(t, readme), "# Birthday Party") {
			t.Errorf("README missing title")
		}
	})

	t.Run("TextAndJSON", func(t *testing.T) {
		dir := t.TempDir()

		for _, format := range []Format{FormatText, FormatJSON} {
			result, err := Write(testPlan(), format, filepath.Join(dir, "out"))
			if err != nil {
				t.Fatalf("Write(%s) failed: %v", format, err)
			}
			th.AssertFileExists(t, result.Files[0])
		}

		th.AssertFileExists(t, filepath.Join(dir, "out.txt"))
		th.AssertFileExists(t, filepath.Join(dir, "out.json"))
	})

	t.Run("UnknownFormat", func(t *testing.T) {
		if _, err := Write(testPlan(), Format("pdf"), t.TempDir()); !errors.Is(err, shared.ErrInvalidArgument) {
			t.Errorf("expected ErrInvalidArgument, got %v", err)
		}
	})
}
