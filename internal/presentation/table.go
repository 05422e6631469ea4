// Package presentation maps a decoded category label to the color, emoji and
// advice shown to the user.
package presentation

// Category labels produced by the bundled label decoder.
const (
	Good      = "Good"
	Moderate  = "Moderate"
	Poor      = "Poor"
	Hazardous = "Hazardous"
)

// NoRecommendation is shown when a category has no recommendation entry.
const NoRecommendation = "No recommendations available for this category."

// Entry describes how one category is presented. An empty Improvement means
// the category has no improvement section.
type Entry struct {
	Color          string
	Emoji          string
	Recommendation string
	Improvement    string
}

// Fallback is used for labels missing from the table.
var Fallback = Entry{Color: "#FFFFFF", Emoji: "❓"}

// Table is a lookup from category label to its entry.
type Table map[string]Entry

// Lookup returns the entry for label, or Fallback and false when the label
// is unknown.
func (t Table) Lookup(label string) (Entry, bool) {
	e, ok := t[label]
	if !ok {
		return Fallback, false
	}
	return e, true
}

// DefaultTable returns the built-in presentation entries.
func DefaultTable() Table {
	return Table{
		Good: {
			Color:          "#32CD32",
			Emoji:          "😊",
			Recommendation: "Air quality is satisfactory. Outdoor activities are safe for everyone.",
		},
		Moderate: {
			Color:          "#FFD700",
			Emoji:          "😐",
			Recommendation: "Air quality is acceptable. Unusually sensitive people should consider limiting prolonged outdoor exertion.",
			Improvement:    "Reduce vehicle use and avoid burning waste to keep pollutant levels from rising.",
		},
		Poor: {
			Color:          "#FF4500",
			Emoji:          "😷",
			Recommendation: "Sensitive groups should stay indoors and everyone else should limit prolonged outdoor exertion.",
			Improvement:    "Prefer public transport, limit industrial emissions near homes and expand urban green areas.",
		},
		Hazardous: {
			Color:          "#8B0000",
			Emoji:          "☠️",
			Recommendation: "Health alert: avoid all outdoor activity, keep windows closed and wear an N95 mask if you must go out.",
			Improvement:    "Urgent action is needed: restrict industrial and traffic emissions and move sensitive groups away from industrial zones.",
		},
	}
}
