// package formatter renders party plans as CSV, Markdown, plain text and JSON
package formatter

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/desertthunder/partyx/internal/models"
	"github.com/desertthunder/partyx/internal/party"
	"github.com/desertthunder/partyx/internal/shared"
)

// Format names an export format accepted by [Write].
type Format string

const (
	FormatCSV      Format = "csv"
	FormatMarkdown Format = "markdown"
	FormatText     Format = "txt"
	FormatJSON     Format = "json"
)

// ParseFormat validates a format name.
func ParseFormat(s string) (Format, error) {
	switch f := Format(s); f {
	case FormatCSV, FormatMarkdown, FormatText, FormatJSON:
		return f, nil
	case "md":
		return FormatMarkdown, nil
	case "text":
		return FormatText, nil
	}
	return "", fmt.Errorf("%w: unknown export format %q (csv, markdown, txt, json)", shared.ErrInvalidArgument, s)
}

// SongsToCSV writes the playlist with columns: Position, ID, Title, Artist, Link
func SongsToCSV(plan *party.Plan) ([]byte, error) {
	rows := make([][]string, 0, len(plan.Songs))
	for i, song := range plan.Songs {
		rows = append(rows, []string{strconv.Itoa(i + 1), song.ID, song.Title, song.Artist, song.Link})
	}
	return writeCSV([]string{"Position", "ID", "Title", "Artist", "Link"}, rows)
}

// TasksToCSV writes the tasks with columns: ID, Name, Description, Points, Assignee, Completed
func TasksToCSV(plan *party.Plan) ([]byte, error) {
	names := memberNames(plan)

	rows := make([][]string, 0, len(plan.Tasks))
	for _, task := range plan.Tasks {
		rows = append(rows, []string{
			task.ID,
			task.Name,
			task.Description,
			strconv.Itoa(task.Points),
			names.of(task.AssignedUserID),
			strconv.FormatBool(task.Completed),
		})
	}
	return writeCSV([]string{"ID", "Name", "Description", "Points", "Assignee", "Completed"}, rows)
}

func writeCSV(headers []string, rows [][]string) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, record := range rows {
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// ToMarkdown renders the plan as a Markdown document with venue, guests, playlist and a task checklist.
func ToMarkdown(plan *party.Plan) ([]byte, error) {
	var buf bytes.Buffer
	p := plan.Party
	names := memberNames(plan)

	fmt.Fprintf(&buf, "# %s\n\n", p.Name)
	if p.Date != "" {
		fmt.Fprintf(&buf, "**Date**: %s\n", p.Date)
	}
	fmt.Fprintf(&buf, "**Points**: %d\n\n", p.Points)

	buf.WriteString("## Location\n\n")
	if loc := plan.Location; loc != nil {
		fmt.Fprintf(&buf, "%s, %s (capacity %d, rating %.1f, cost %.2f)\n\n", loc.Name, loc.Address, loc.Capacity, loc.Rating, loc.Cost)
	} else {
		buf.WriteString("_Not assigned_\n\n")
	}

	fmt.Fprintf(&buf, "## Guests (%d)\n\n", len(plan.Members))
	for _, u := range plan.Members {
		fmt.Fprintf(&buf, "- %s <%s>\n", u.Name, u.Email)
	}
	buf.WriteString("\n")

	fmt.Fprintf(&buf, "## Playlist (%d)\n\n", len(plan.Songs))
	for i, song := range plan.Songs {
		line := fmt.Sprintf("%d. %s", i+1, songLabel(song))
		if song.Link != "" {
			line = fmt.Sprintf("%d. [%s](%s)", i+1, songLabel(song), song.Link)
		}
		buf.WriteString(line + "\n")
	}
	buf.WriteString("\n")

	fmt.Fprintf(&buf, "## Tasks (%d)\n\n", len(plan.Tasks))
	for _, task := range plan.Tasks {
		box := " "
		if task.Completed {
			box = "x"
		}
		fmt.Fprintf(&buf, "- [%s] %s (%d pts)", box, task.Name, task.Points)
		if who := names.of(task.AssignedUserID); who != "" {
			fmt.Fprintf(&buf, " - %s", who)
		}
		buf.WriteString("\n")
	}

	return buf.Bytes(), nil
}

// ToText renders a compact plain text summary.
func ToText(plan *party.Plan) ([]byte, error) {
	var buf bytes.Buffer
	p := plan.Party

	fmt.Fprintf(&buf, "Party: %s\n", p.Name)
	if p.Date != "" {
		fmt.Fprintf(&buf, "Date: %s\n", p.Date)
	}
	if plan.Location != nil {
		fmt.Fprintf(&buf, "Location: %s\n", plan.Location.Name)
	}
	fmt.Fprintf(&buf, "Guests: %d\n", len(plan.Members))
	fmt.Fprintf(&buf, "Points: %d\n", p.Points)
	fmt.Fprintf(&buf, "Songs: %d\n\n", len(plan.Songs))

	for i, song := range plan.Songs {
		fmt.Fprintf(&buf, "%d. %s\n", i+1, songLabel(song))
	}

	return buf.Bytes(), nil
}

// ToJSON returns the full plan as indented JSON.
func ToJSON(plan *party.Plan) ([]byte, error) {
	return shared.MarshalJSON(plan, true)
}

// ExportResult lists the files written by [Write].
type ExportResult struct {
	Format Format
	Files  []string
}

// Write exports plan in format under base.
//
// base defaults to the party id. CSV writes {base}_songs.csv and {base}_tasks.csv, Markdown writes {base}/README.md,
// text writes {base}.txt and JSON writes {base}.json.
func Write(plan *party.Plan, format Format, base string) (*ExportResult, error) {
	if base == "" {
		base = plan.Party.ID
	}

	result := &ExportResult{Format: format, Files: []string{}}

	write := func(path string, render func(*party.Plan) ([]byte, error)) error {
		data, err := render(plan)
		if err != nil {
			return fmt.Errorf("failed to render %s: %w", format, err)
		}
		if err := os.WriteFile(path, data, 0644); err != nil {
			return fmt.Errorf("failed to write %s: %w", path, err)
		}
		result.Files = append(result.Files, path)
		return nil
	}

	var err error
	switch format {
	case FormatCSV:
		if err = write(base+"_songs.csv", SongsToCSV); err == nil {
			err = write(base+"_tasks.csv", TasksToCSV)
		}
	case FormatMarkdown:
		if err = os.MkdirAll(base, 0755); err != nil {
			return nil, fmt.Errorf("failed to create directory: %w", err)
		}
		err = write(filepath.Join(base, "README.md"), ToMarkdown)
	case FormatText:
		err = write(base+".txt", ToText)
	case FormatJSON:
		err = write(base+".json", ToJSON)
	default:
		return nil, fmt.Errorf("%w: unknown export format %q", shared.ErrInvalidArgument, format)
	}

	if err != nil {
		return nil, err
	}
	return result, nil
}

func songLabel(song *models.Song) string {
	if song.Artist == "" {
		return song.Title
	}
	return song.Artist + " - " + song.Title
}

type nameIndex map[string]string

func (n nameIndex) of(id string) string {
	if id == "" {
		return ""
	}
	if name, ok := n[id]; ok {
		return name
	}
	return id
}

func memberNames(plan *party.Plan) nameIndex {
	names := make(nameIndex, len(plan.Members))
	for _, u := range plan.Members {
		names[u.ID] = u.Name
	}
	return names
}
