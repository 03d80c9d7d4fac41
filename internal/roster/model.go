package roster

// StyleUnknown is the sentinel shown for a missing batting or bowling style.
const StyleUnknown = "N/A"

// DefaultFormNumber is used when a roster row has no parsable form rating.
const DefaultFormNumber = 50

// Player is one normalized roster entry. Fields are already validated and
// defaulted at ingestion; the renderer performs no further validation.
type Player struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Role         string `json:"role"`
	BattingStyle string `json:"batting_style"`
	BowlingStyle string `json:"bowling_style"`
	FormNumber   int    `json:"form_number"`
	ImageSource  string `json:"image_source"`

	// ManualOverrideSource, when set, wins over ImageSource for rendering
	// only. The canonical source is never mutated.
	ManualOverrideSource string `json:"manual_override_source,omitempty"`
}

// EffectiveImageSource returns the reference the renderer should load.
func (p Player) EffectiveImageSource() string {
	if p.ManualOverrideSource != "" {
		return p.ManualOverrideSource
	}
	return p.ImageSource
}
