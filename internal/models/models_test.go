package models

import (
	"encoding/json"
	"strings"
	"testing"
	"time"
)

func TestParty(t *testing.T) {
	t.Run("AddSong", func(t *testing.T) {
		party := NewParty("Party1", "12.05.2025")

		if !party.AddSong("a") {
			t.Fatal("expected first add to succeed")
		}
		if party.AddSong("a") {
			t.Error("expected duplicate add to be rejected")
		}
		if len(party.SongIDs) != 1 {
			t.Errorf("expected 1 song id, got %d", len(party.SongIDs))
		}
	})

	t.Run("RemoveSong", func(t *testing.T) {
		party := NewParty("Party1", "12.05.2025")
		party.SongIDs = []string{"a", "b", "c"}

		if !party.RemoveSong("b") {
			t.Fatal("expected removal to succeed")
		}
		if strings.Join(party.SongIDs, ",") != "a,c" {
			t.Errorf("expected order to be preserved, got %v", party.SongIDs)
		}
		if party.RemoveSong("missing") {
			t.Error("expected removal of missing id to fail")
		}
	})

	t.Run("Add Then Remove Restores List", func(t *testing.T) {
		party := NewParty("Party1", "12.05.2025")
		party.SongIDs = []string{"a", "b"}
		before := strings.Join(party.SongIDs, ",")

		party.AddSong("c")
		party.RemoveSong("c")

		if got := strings.Join(party.SongIDs, ","); got != before {
			t.Errorf("expected %s, got %s", before, got)
		}
	})

	t.Run("Members", func(t *testing.T) {
		party := NewParty("Party1", "12.05.2025")
		party.AddUser("u1")
		party.AddUser("u2")
		party.AddUser("u1")

		if len(party.UserIDs) != 2 {
			t.Errorf("expected 2 members, got %d", len(party.UserIDs))
		}
		if !party.RemoveUser("u1") || party.HasUser("u1") {
			t.Error("expected u1 to be removed")
		}
	})

	t.Run("JSON Omits Empty Location", func(t *testing.T) {
		party := NewParty("Party1", "12.05.2025")
		party.ID = "p1"

		data, err := json.Marshal(party)
		if err != nil {
			t.Fatalf("failed to marshal party: %v", err)
		}
		if strings.Contains(string(data), "locationId") {
			t.Errorf("expected locationId to be omitted, got %s", data)
		}
		if !strings.Contains(string(data), `"id":"p1"`) {
			t.Errorf("expected embedded record id, got %s", data)
		}
	})
}

func TestValidate(t *testing.T) {
	tc := []struct {
		name    string
		model   Model
		wantErr bool
	}{
		{"valid user", NewUser("John Doe", "john@example.com"), false},
		{"user without email", NewUser("John Doe", "john"), true},
		{"party without name", NewParty(" ", ""), true},
		{"valid location", NewLocation("Club X", "123 Party Street", 700, 5, 200), false},
		{"negative capacity", NewLocation("Club X", "", 700, 5, -1), true},
		{"song without title", NewSong("", "Artist"), true},
		{"task without party", NewTask("Chore", "", 10, "", "u1"), true},
		{"negative points", NewTask("Chore", "", -5, "p1", "u1"), true},
		{"valid food", NewFood("Pizza", 20, 4.5, 30), false},
	}

	for _, tt := range tc {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.model.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestUserJSONHidesHash(t *testing.T) {
	user := NewUser("John Doe", "john@example.com")
	user.PasswordHash = "$2a$10$secret"

	data, err := json.Marshal(user)
	if err != nil {
		t.Fatalf("failed to marshal user: %v", err)
	}
	if strings.Contains(string(data), "secret") {
		t.Errorf("expected hash to be hidden, got %s", data)
	}
}

func TestRecordTouch(t *testing.T) {
	var r Record
	first := time.Date(2025, 5, 12, 0, 0, 0, 0, time.UTC)
	second := first.Add(time.Hour)

	r.Touch(first)
	r.Touch(second)

	if !r.CreatedAt.Equal(first) {
		t.Errorf("expected CreatedAt to stay %v, got %v", first, r.CreatedAt)
	}
	if !r.UpdatedAt.Equal(second) {
		t.Errorf("expected UpdatedAt %v, got %v", second, r.UpdatedAt)
	}
}
