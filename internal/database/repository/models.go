package repository

import "time"

// Insight kinds. "life_event" mirrors the advice text stored after an
// adaptation; the rest come from spending analysis.
const (
	KindPattern    = "pattern"
	KindSuggestion = "suggestion"
	KindSpending   = "spending"
	KindLifeEvent  = "life_event"
)

// Insight represents a persisted insight row.
type Insight struct {
	ID        string
	Type      string
	Content   string
	IsRead    bool
	CreatedAt time.Time
}
