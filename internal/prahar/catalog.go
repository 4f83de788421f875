package prahar

import (
	"fmt"
	"math"
)

// Count is the number of Prahars in a day.
const Count = 8

// Prahar is one of the eight traditional day segments used to theme results.
type Prahar struct {
	Index       int // 1-based
	Name        string
	Description string
	Color       string // #RRGGBB
	TimeOfDay   string
}

var catalog = [Count]Prahar{
	{
		Index:       1,
		Name:        "Pratham Prahar (Dawn Prahar)",
		Description: "You are aligned with the Pratham Prahar, representing new beginnings, fresh energy, and spiritual awakening.",
		Color:       "#FFC8DD",
		TimeOfDay:   "dawn",
	},
	{
		Index:       2,
		Name:        "Dwitiya Prahar (Morning Prahar)",
		Description: "You resonate with the Dwitiya Prahar, symbolizing growth, development, and the building of life foundations.",
		Color:       "#FDFFB6",
		TimeOfDay:   "morning",
	},
	{
		Index:       3,
		Name:        "Tritiya Prahar (Midday Prahar)",
		Description: "The Tritiya Prahar matches your personality, representing balance, harmony, and the fullness of life's experiences.",
		Color:       "#CAFFBF",
		TimeOfDay:   "midday",
	},
	{
		Index:       4,
		Name:        "Chaturtha Prahar (Afternoon Prahar)",
		Description: "You align with the Chaturtha Prahar, characterized by stability, foundation, and the strong manifestation of your life purpose.",
		Color:       "#9BF6FF",
		TimeOfDay:   "afternoon",
	},
	{
		Index:       5,
		Name:        "Pancham Prahar (Evening Prahar)",
		Description: "The Pancham Prahar reflects your nature, representing transformation, change, and wisdom gained through experience.",
		Color:       "#A0C4FF",
		TimeOfDay:   "evening",
	},
	{
		Index:       6,
		Name:        "Shastha Prahar (Sunset Prahar)",
		Description: "You connect with the Shastha Prahar, symbolizing communication, expression, and the sharing of accumulated knowledge.",
		Color:       "#BDB2FF",
		TimeOfDay:   "sunset",
	},
	{
		Index:       7,
		Name:        "Saptam Prahar (Twilight Prahar)",
		Description: "The Saptam Prahar matches your essence, representing spirituality, wisdom, and the transition to higher consciousness.",
		Color:       "#9D4EDD",
		TimeOfDay:   "twilight",
	},
	{
		Index:       8,
		Name:        "Ashtam Prahar (Night Prahar)",
		Description: "You align with the Ashtam Prahar, characterized by completion, mastery, and the deep rest that prepares for new beginnings.",
		Color:       "#10002B",
		TimeOfDay:   "night",
	},
}

// All returns the eight Prahars in day order.
func All() []Prahar {
	out := make([]Prahar, Count)
	copy(out, catalog[:])
	return out
}

// ByIndex returns the Prahar with the given 1-based index. Unknown indices
// get a generic entry so a classifier upgrade never breaks rendering.
func ByIndex(i int) (Prahar, bool) {
	if i < 1 || i > Count {
		return Prahar{
			Index:       i,
			Name:        fmt.Sprintf("Prahar %d", i),
			Description: "Your unique personality aligns with this Prahar.",
			Color:       "#A0C4FF",
			TimeOfDay:   "unknown",
		}, false
	}
	return catalog[i-1], true
}

// Palette returns the background colour bands, dawn to night.
func Palette() []string {
	out := make([]string, Count)
	for i, p := range catalog {
		out[i] = p.Color
	}
	return out
}

// BandForFraction maps a scroll fraction onto a palette band index.
// The fraction is clamped to [0, 1].
func BandForFraction(f float64) int {
	if math.IsNaN(f) || f < 0 {
		f = 0
	}
	if f > 1 {
		f = 1
	}
	band := int(f * Count)
	if band > Count-1 {
		band = Count - 1
	}
	return band
}

// ColorForFraction returns the palette colour for a scroll fraction.
func ColorForFraction(f float64) string {
	return catalog[BandForFraction(f)].Color
}
