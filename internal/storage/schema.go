package storage

import (
	"time"
)

// CurrentSchemaVersion is written into every state document.
const CurrentSchemaVersion = "1.0.0"

// stateDocument is the JSON layout of state.json.
type stateDocument struct {
	Version   string            `json:"version"`    // Schema version, for forward-compatibility.
	UpdatedAt time.Time         `json:"updated_at"` // Timestamp of the last write.
	Values    map[string]string `json:"values"`
}
