package shared

import (
	"errors"
	"slices"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

func TestNormalizeSongKey(t *testing.T) {
	tc := []struct {
		name   string
		title  string
		artist string
		want   string
	}{
		{
			name:   "basic normalization",
			title:  "Song Title",
			artist: "Artist Name",
			want:   "song title|artist name",
		},
		{
			name:   "extra whitespace",
			title:  "  Song   Title  ",
			artist: "  Artist   Name  ",
			want:   "song title|artist name",
		},
		{
			name:   "mixed case",
			title:  "SoNg TiTlE",
			artist: "ArTiSt NaMe",
			want:   "song title|artist name",
		},
	}

	for _, tt := range tc {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizeSongKey(tt.title, tt.artist)
			if got != tt.want {
				t.Errorf("NormalizeSongKey() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestParseLogLevel(t *testing.T) {
	tc := map[string]log.Level{
		"debug":   log.DebugLevel,
		" WARN ":  log.WarnLevel,
		"error":   log.ErrorLevel,
		"":        log.InfoLevel,
		"verbose": log.InfoLevel,
	}

	for in, want := range tc {
		if got := ParseLogLevel(in); got != want {
			t.Errorf("ParseLogLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestGenerateID(t *testing.T) {
	a, b := GenerateID(), GenerateID()
	if a == b {
		t.Error("expected unique IDs")
	}
	if len(a) != 36 || strings.Count(a, "-") != 4 {
		t.Errorf("expected UUID formatted ID, got %s", a)
	}
}

func TestMarshalJSON(t *testing.T) {
	v := map[string]int{"points": 300}

	t.Run("Compact", func(t *testing.T) {
		data, err := MarshalJSON(v, false)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if string(data) != `{"points":300}` {
			t.Errorf("unexpected output %s", data)
		}
	})

	t.Run("Pretty", func(t *testing.T) {
		data, err := MarshalJSON(v, true)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if !strings.Contains(string(data), "\n  \"points\": 300") {
			t.Errorf("expected indented output, got %s", data)
		}
	})
}

func TestOpenLink(t *testing.T) {
	t.Run("rejects non web links", func(t *testing.T) {
		for _, link := range []string{"", "file:///etc/passwd", "javascript:alert(1)", "https://", "not a url"} {
			if err := OpenLink(link); !errors.Is(err, ErrInvalidArgument) {
				t.Errorf("OpenLink(%q) = %v, want ErrInvalidArgument", link, err)
			}
		}
	})

	t.Run("unsupported platform", func(t *testing.T) {
		orig := getRuntime
		getRuntime = func() string { return "plan9" }
		defer func() { getRuntime = orig }()

		err := OpenLink("https://www.youtube.com/watch?v=abc")
		if err == nil || !strings.Contains(err.Error(), "unsupported platform: plan9") {
			t.Errorf("expected unsupported platform error, got %v", err)
		}
	})

	t.Run("browser commands", func(t *testing.T) {
		link := "https://open.spotify.com/track/1"
		for goos, bin := range map[string]string{"darwin": "open", "linux": "xdg-open", "windows": "rundll32"} {
			cmd, err := browserCommand(goos, link)
			if err != nil {
				t.Fatalf("%s: %v", goos, err)
			}
			if cmd.Args[0] != bin || !slices.Contains(cmd.Args, link) {
				t.Errorf("%s: unexpected command %v", goos, cmd.Args)
			}
		}
	})
}
