package music

import "testing"

func TestMoodName(t *testing.T) {
	tests := []struct {
		name    string
		profile Profile
		want    string
	}{
		{"high energy high valence", Profile{Energy: 0.8, Valence: 0.9}, "Upbeat Party"},
		{"high energy low valence", Profile{Energy: 0.9, Valence: 0.3}, "Intense & Dark"},
		{"low energy high valence", Profile{Energy: 0.4, Valence: 0.7}, "Chill & Happy"},
		{"low energy low valence", Profile{Energy: 0.3, Valence: 0.2}, "Reflective & Melancholy"},
		{"boundary energy exactly 0.6 is low", Profile{Energy: 0.6, Valence: 0.7}, "Chill & Happy"},
		{"boundary valence exactly 0.5 is low", Profile{Energy: 0.8, Valence: 0.5}, "Intense & Dark"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.profile.MoodName(); got != tt.want {
				t.Errorf("MoodName() = %q, want %q", got, tt.want)
			}
			if tt.profile.MoodDescription() == "" {
				t.Error("MoodDescription() is empty")
			}
		})
	}
}

func TestNormalize(t *testing.T) {
	tracks := []Track{
		{Name: "A", ExternalURL: "https://open.spotify.com/track/a"},
		{Name: "", ExternalURL: "https://open.spotify.com/track/b"},
		{Name: "C", ExternalURL: ""},
		{Name: "D", Artists: []string{"X"}, ExternalURL: "https://open.spotify.com/track/d"},
		{Name: "E", ExternalURL: "https://open.spotify.com/track/e"},
	}

	got := Normalize(tracks, 2)
	if len(got) != 2 {
		t.Fatalf("Normalize() returned %d tracks, want 2", len(got))
	}
	if got[0].Name != "A" || got[1].Name != "D" {
		t.Errorf("Normalize() = [%s %s], want [A D]", got[0].Name, got[1].Name)
	}
	if got[0].Artists == nil {
		t.Error("Artists should be an empty slice, not nil")
	}
}

func TestNormalizeEmpty(t *testing.T) {
	got := Normalize(nil, 10)
	if got == nil {
		t.Fatal("Normalize(nil) returned nil, want empty slice")
	}
	if len(got) != 0 {
		t.Errorf("Normalize(nil) returned %d tracks", len(got))
	}
}

func TestNormalizeNoLimit(t *testing.T) {
	tracks := []Track{
		{Name: "A", ExternalURL: "u1"},
		{Name: "B", ExternalURL: "u2"},
		{Name: "C", ExternalURL: "u3"},
	}
	if got := Normalize(tracks, 0); len(got) != 3 {
		t.Errorf("Normalize(limit=0) returned %d tracks, want 3", len(got))
	}
}

func TestStringPtr(t *testing.T) {
	if StringPtr("") != nil {
		t.Error("StringPtr(\"\") should be nil")
	}
	if p := StringPtr("x"); p == nil || *p != "x" {
		t.Errorf("StringPtr(\"x\") = %v", p)
	}
}
