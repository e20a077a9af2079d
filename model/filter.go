package models

// All disables the category or size constraint of a FilterState.
const All = "all"

type FilterState struct {
	Category   string `json:"category"`
	Size       string `json:"size"`
	SearchText string `json:"search_text"`
}

// FilterPatch is a partial FilterState; nil fields keep their current value.
type FilterPatch struct {
	Category   *string `json:"category"`
	Size       *string `json:"size"`
	SearchText *string `json:"search_text"`
}
