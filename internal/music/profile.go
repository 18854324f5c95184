package music

// Profile describes the kind of music that suits an emotion: the seed genres
// and keywords used to query a catalog, and target audio attributes on a
// 0..1 scale. MinTempo and MaxTempo are in BPM; zero means unset.
type Profile struct {
	Genres       []string
	Keywords     string
	Danceability float64
	Energy       float64
	Valence      float64
	MinTempo     float64
	MaxTempo     float64
}

// MoodName returns a descriptive name for the profile using a 2x2
// energy/valence quadrant system.
//
// Quadrants:
//   - High Energy + High Valence = "Upbeat Party"
//   - High Energy + Low Valence  = "Intense & Dark"
//   - Low Energy  + High Valence = "Chill & Happy"
//   - Low Energy  + Low Valence  = "Reflective & Melancholy"
func (p Profile) MoodName() string {
	highEnergy := p.Energy > 0.6
	highValence := p.Valence > 0.5

	switch {
	case highEnergy && highValence:
		return "Upbeat Party"
	case highEnergy && !highValence:
		return "Intense & Dark"
	case !highEnergy && highValence:
		return "Chill & Happy"
	default:
		return "Reflective & Melancholy"
	}
}

// MoodDescription returns a one-line description matching MoodName.
func (p Profile) MoodDescription() string {
	switch p.MoodName() {
	case "Upbeat Party":
		return "High-energy, positive vibes for dancing and celebrating"
	case "Intense & Dark":
		return "Intense, driving energy with darker emotional tones"
	case "Chill & Happy":
		return "Relaxed and uplifting, great for unwinding"
	default:
		return "Contemplative and introspective, ideal for quiet moments"
	}
}
