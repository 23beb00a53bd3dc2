package models

// BaseRating is the rating assigned to a model before its first round.
const BaseRating = 1500

// RatingTable maps a model id to its current rating. Absence of a key is
// equivalent to BaseRating.
type RatingTable map[string]int

// Get returns the model's current rating, defaulting to BaseRating.
func (t RatingTable) Get(modelID string) int {
	if r, ok := t[modelID]; ok {
		return r
	}
	return BaseRating
}

// Clone returns an independent copy of the table.
func (t RatingTable) Clone() RatingTable {
	out := make(RatingTable, len(t))
	for k, v := range t {
		out[k] = v
	}
	return out
}
