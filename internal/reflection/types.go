package reflection

import "time"

// Status is the lifecycle state of a reflection record.
type Status string

const (
	StatusPending   Status = "pending"
	StatusCompleted Status = "completed"
	StatusSkipped   Status = "skipped"
)

// Valid reports whether s is one of the known states.
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusCompleted, StatusSkipped:
		return true
	}
	return false
}

type Author struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Commit is one pushed commit as delivered by GitHub. Timestamp is the text GitHub sent, unparsed.
type Commit struct {
	ID        string   `json:"id"`
	Message   string   `json:"message"`
	Timestamp string   `json:"timestamp"`
	URL       string   `json:"url"`
	Author    Author   `json:"author"`
	Added     []string `json:"added"`
	Modified  []string `json:"modified"`
	Removed   []string `json:"removed"`
}

// Record is the reflection entry created for a push. Commits keep push order and are never empty.
type Record struct {
	ID             string
	OwnerUserID    string
	RepositoryName string
	Commits        []Commit
	ReflectionText string
	Status         Status
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// --- UseCase Inputs ---

type BuildInput struct {
	OwnerUserID    string
	RepositoryName string
	Commits        []Commit
}

// UpdateInput carries the owner's reflection. An empty Status means completed.
type UpdateInput struct {
	ID             string
	ReflectionText string
	Status         Status
}

type ListInput struct {
	Repository string
	Status     Status
	Limit      int
	Offset     int
}

type SummarizeInput struct {
	Prompt     string
	Repository string
}

// --- UseCase Outputs ---

// BuildOutput reports the record ID. Created is false when the push was already recorded.
type BuildOutput struct {
	ID      string
	Created bool
}

type UpdateOutput struct {
	Record Record
}

type DetailOutput struct {
	Record Record
}

type ListOutput struct {
	Records []Record
	Total   int
	Limit   int
	Offset  int
}

type SummarizeOutput struct {
	Summary         string
	ReflectionCount int
}
