package domain

import (
	"context"
	"sort"
	"time"
)

const (
	PriorityDoNow   = "do now"
	PriorityDoNext  = "do next"
	PriorityDoLater = "do later"
	PriorityDoLast  = "do last"

	StatusToDo       = "to do"
	StatusInProgress = "in progress"
	StatusDone       = "done"
)

// PriorityRank maps a priority to its sort rank; unknown values sort last.
func PriorityRank(p string) int {
	switch p {
	case PriorityDoNow:
		return 1
	case PriorityDoNext:
		return 2
	case PriorityDoLater:
		return 3
	case PriorityDoLast:
		return 4
	}
	return 5
}

// ValidPriority reports whether p is an accepted priority. Empty is allowed:
// a task does not have to carry one.
func ValidPriority(p string) bool {
	return p == "" || PriorityRank(p) < 5
}

func ValidStatus(s string) bool {
	switch s {
	case "", StatusToDo, StatusInProgress, StatusDone:
		return true
	}
	return false
}

// TaskFields is the shape shared by personal and collaborative tasks.
// Due date/time are stored as strings ("2006-01-02" / "15:04"); nil means
// the task carries none.
type TaskFields struct {
	Name     string  `gorm:"size:255;not null" json:"name"`
	DueDate  *string `gorm:"size:10" json:"due_date"`
	DueTime  *string `gorm:"size:5" json:"due_time"`
	Priority string  `gorm:"size:16" json:"priority"`
	Status   string  `gorm:"size:16" json:"status"`
}

// PersonalTask lives in a single user's scope. DeletedAt is the tombstone:
// nil means active. It is deliberately not a gorm.DeletedAt — Get and Undo
// must see tombstoned rows.
type PersonalTask struct {
	ID         string `gorm:"primaryKey;size:36" json:"id"`
	UserID     string `gorm:"size:36;index;not null" json:"user_id"`
	TaskFields `gorm:"embedded"`
	CreatedAt  time.Time  `json:"created_at"`
	DeletedAt  *time.Time `gorm:"index" json:"deleted_at"`
}

func (PersonalTask) TableName() string { return "tasks" }

// CollabTask lives in a list's scope and remembers who created it.
type CollabTask struct {
	ID         string `gorm:"primaryKey;size:36" json:"id"`
	ListID     string `gorm:"size:36;index;not null" json:"list_id"`
	CreatedBy  string `gorm:"size:36;not null" json:"created_by"`
	TaskFields `gorm:"embedded"`
	CreatedAt  time.Time  `json:"created_at"`
	DeletedAt  *time.Time `gorm:"index" json:"deleted_at"`
}

func (CollabTask) TableName() string { return "collab_tasks" }

type PersonalTaskRepository interface {
	Create(ctx context.Context, t *PersonalTask) error
	// ListActive returns the user's non-tombstoned tasks, unordered.
	ListActive(ctx context.Context, userID string) ([]PersonalTask, error)
	// Find returns the task regardless of tombstone state.
	Find(ctx context.Context, userID, id string) (*PersonalTask, error)
	UpdateFields(ctx context.Context, userID, id string, fields map[string]any) (int64, error)
	SetTombstone(ctx context.Context, userID, id string, at *time.Time) (int64, error)
}

type CollabTaskRepository interface {
	Create(ctx context.Context, t *CollabTask) error
	ListActive(ctx context.Context, listID string) ([]CollabTask, error)
	// Find looks a task up by id alone; scope checks happen against the
	// returned ListID, since the route carries no list id.
	Find(ctx context.Context, id string) (*CollabTask, error)
	UpdateFields(ctx context.Context, id string, fields map[string]any) (int64, error)
	SetTombstone(ctx context.Context, id string, at *time.Time) (int64, error)
}

// TaskSort names the orderings the store supports on behalf of callers.
type TaskSort string

const (
	SortCreated  TaskSort = "created"
	SortDue      TaskSort = "due"
	SortPriority TaskSort = "priority"
)

type taskKey struct {
	created  time.Time
	due      *string
	priority string
}

func (t PersonalTask) sortKey() taskKey {
	return taskKey{created: t.CreatedAt, due: t.DueDate, priority: t.Priority}
}

func (t CollabTask) sortKey() taskKey {
	return taskKey{created: t.CreatedAt, due: t.DueDate, priority: t.Priority}
}

// SortTasks orders tasks in place: creation time ascending, due date
// ascending with undated tasks last, or priority rank with unknown
// priorities last. Ties fall back to creation time.
func SortTasks[T interface{ sortKey() taskKey }](tasks []T, by TaskSort) {
	less := func(a, b taskKey) bool { return a.created.Before(b.created) }
	switch by {
	case SortDue:
		less = func(a, b taskKey) bool {
			switch {
			case a.due == nil && b.due == nil:
				return a.created.Before(b.created)
			case a.due == nil:
				return false
			case b.due == nil:
				return true
			case *a.due != *b.due:
				return *a.due < *b.due
			}
			return a.created.Before(b.created)
		}
	case SortPriority:
		less = func(a, b taskKey) bool {
			ra, rb := PriorityRank(a.priority), PriorityRank(b.priority)
			if ra != rb {
				return ra < rb
			}
			return a.created.Before(b.created)
		}
	}
	sort.SliceStable(tasks, func(i, j int) bool {
		return less(tasks[i].sortKey(), tasks[j].sortKey())
	})
}
