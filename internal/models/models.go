// package models defines the data model for the party planning service
package models

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// Record carries persistence metadata shared by every stored entity.
type Record struct {
	ID        string     `json:"id"`
	Sequence  int        `json:"-"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
	DeletedAt *time.Time `json:"-"`
}

// Key returns the record identifier.
func (r *Record) Key() string { return r.ID }

// Touch stamps creation and update times, setting CreatedAt only once.
func (r *Record) Touch(now time.Time) {
	if r.CreatedAt.IsZero() {
		r.CreatedAt = now
	}
	r.UpdatedAt = now
}

// Model defines the base interface for all persistent models.
type Model interface {
	Key() string     // Key returns the unique identifier for this model
	Validate() error // Validate checks if the model's data is valid and returns an error if not
}

// Repository defines the interface for data access operations.
// Implementations handle database interactions for specific model types.
type Repository[T Model] interface {
	Create(ctx context.Context, model T) error                      // Create inserts a new model and assigns its ID
	Get(ctx context.Context, id string) (T, error)                  // Get retrieves a model by its ID
	Update(ctx context.Context, model T) error                      // Update modifies an existing model
	Delete(ctx context.Context, id string) error                    // Delete removes a model by its ID
	List(ctx context.Context, criteria map[string]any) ([]T, error) // List retrieves all models matching the given criteria
}

// User is a party guest. The credential secret is only ever held as a hash.
type User struct {
	Record
	Name         string `json:"name"`
	Email        string `json:"email"`
	PasswordHash string `json:"-"`
}

// NewUser creates a [User] with the given display name and email.
func NewUser(name, email string) *User {
	return &User{Name: name, Email: email}
}

func (u *User) Validate() error {
	if strings.TrimSpace(u.Name) == "" {
		return fmt.Errorf("user name is required")
	}
	if !strings.Contains(u.Email, "@") {
		return fmt.Errorf("user email %q is invalid", u.Email)
	}
	return nil
}

// Party is the event being planned. It references users, its location and its songs by id only.
type Party struct {
	Record
	Name       string   `json:"name"`
	Date       string   `json:"date"`
	UserIDs    []string `json:"userIds"`
	LocationID string   `json:"locationId,omitempty"`
	SongIDs    []string `json:"songIds"`
	Points     int      `json:"partyPoints"`
}

// NewParty creates a [Party] with empty membership and playlist lists.
func NewParty(name, date string) *Party {
	return &Party{Name: name, Date: date, UserIDs: []string{}, SongIDs: []string{}}
}

func (p *Party) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("party name is required")
	}
	if p.Points < 0 {
		return fmt.Errorf("party points cannot be negative")
	}
	return nil
}

// HasSong reports whether songID is in the playlist.
func (p *Party) HasSong(songID string) bool {
	return indexOf(p.SongIDs, songID) >= 0
}

// AddSong appends songID to the playlist unless already present. Returns false on duplicates.
func (p *Party) AddSong(songID string) bool {
	if p.HasSong(songID) {
		return false
	}
	p.SongIDs = append(p.SongIDs, songID)
	return true
}

// RemoveSong drops songID from the playlist, preserving order. Returns false if absent.
func (p *Party) RemoveSong(songID string) bool {
	var ok bool
	p.SongIDs, ok = without(p.SongIDs, songID)
	return ok
}

// HasUser reports whether userID is a member.
func (p *Party) HasUser(userID string) bool {
	return indexOf(p.UserIDs, userID) >= 0
}

// AddUser appends userID to the member list unless already present.
func (p *Party) AddUser(userID string) bool {
	if p.HasUser(userID) {
		return false
	}
	p.UserIDs = append(p.UserIDs, userID)
	return true
}

// RemoveUser drops userID from the member list. Returns false if absent.
func (p *Party) RemoveUser(userID string) bool {
	var ok bool
	p.UserIDs, ok = without(p.UserIDs, userID)
	return ok
}

// Location is a rentable venue.
type Location struct {
	Record
	Name     string  `json:"name"`
	Address  string  `json:"address"`
	Cost     float64 `json:"cost"`
	Rating   float64 `json:"rating"`
	Capacity int     `json:"capacity"`
}

// NewLocation creates a [Location].
func NewLocation(name, address string, cost, rating float64, capacity int) *Location {
	return &Location{Name: name, Address: address, Cost: cost, Rating: rating, Capacity: capacity}
}

func (l *Location) Validate() error {
	if strings.TrimSpace(l.Name) == "" {
		return fmt.Errorf("location name is required")
	}
	if l.Cost < 0 || l.Capacity < 0 {
		return fmt.Errorf("location cost and capacity cannot be negative")
	}
	return nil
}

// Song is a playlist entry. Link is empty when no media resource was resolved.
type Song struct {
	Record
	Title  string `json:"title"`
	Artist string `json:"artist"`
	Link   string `json:"link,omitempty"`
}

// NewSong creates a [Song] without a resolved link.
func NewSong(title, artist string) *Song {
	return &Song{Title: title, Artist: artist}
}

func (s *Song) Validate() error {
	if strings.TrimSpace(s.Title) == "" {
		return fmt.Errorf("song title is required")
	}
	return nil
}

// Task is a point-scored chore owned by one party and assigned to one user.
type Task struct {
	Record
	Name           string `json:"name"`
	Description    string `json:"description"`
	Points         int    `json:"points"`
	PartyID        string `json:"partyId"`
	AssignedUserID string `json:"assignedUserId"`
	Completed      bool   `json:"completed"`
}

// NewTask creates an incomplete [Task].
func NewTask(name, description string, points int, partyID, userID string) *Task {
	return &Task{Name: name, Description: description, Points: points, PartyID: partyID, AssignedUserID: userID}
}

func (t *Task) Validate() error {
	if strings.TrimSpace(t.Name) == "" {
		return fmt.Errorf("task name is required")
	}
	if t.PartyID == "" {
		return fmt.Errorf("task party id is required")
	}
	if t.Points < 0 {
		return fmt.Errorf("task points cannot be negative")
	}
	return nil
}

// Food is a catering option. It is not linked to parties.
type Food struct {
	Record
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	Rating      float64 `json:"rating"`
	PrepMinutes int     `json:"preparationTime"`
}

// NewFood creates a [Food].
func NewFood(name string, price, rating float64, prepMinutes int) *Food {
	return &Food{Name: name, Price: price, Rating: rating, PrepMinutes: prepMinutes}
}

func (f *Food) Validate() error {
	if strings.TrimSpace(f.Name) == "" {
		return fmt.Errorf("food name is required")
	}
	if f.Price < 0 || f.PrepMinutes < 0 {
		return fmt.Errorf("food price and preparation time cannot be negative")
	}
	return nil
}

func indexOf(ids []string, id string) int {
	for i, v := range ids {
		if v == id {
			return i
		}
	}
	return -1
}

func without(ids []string, id string) ([]string, bool) {
	i := indexOf(ids, id)
	if i < 0 {
		return ids, false
	}
	out := make([]string, 0, len(ids)-1)
	out = append(out, ids[:i]...)
	return append(out, ids[i+1:]...), true
}
