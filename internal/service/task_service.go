package service

import (
	"context"
	"strings"
	"time"

	"toodoo/internal/domain"
	"toodoo/pkg/utils"
)

// TaskService owns the task lifecycle for both scopes:
// ACTIVE --SoftDelete--> TOMBSTONED --Undo--> ACTIVE. Tombstoned rows are
// never purged; undo works as long as the row exists.
type TaskService struct {
	personal domain.PersonalTaskRepository
	collab   domain.CollabTaskRepository
	guard    *CollabService
}

func NewTaskService(personal domain.PersonalTaskRepository, collab domain.CollabTaskRepository, guard *CollabService) *TaskService {
	return &TaskService{personal: personal, collab: collab, guard: guard}
}

type TaskInput struct {
	Name     string  `json:"name"`
	DueDate  *string `json:"due_date"`
	DueTime  *string `json:"due_time"`
	Priority string  `json:"priority"`
	Status   string  `json:"status"`
}

func (in *TaskInput) fields() (domain.TaskFields, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return domain.TaskFields{}, domain.Validation("name is required")
	}
	if !domain.ValidPriority(in.Priority) {
		return domain.TaskFields{}, domain.Validation("unknown priority")
	}
	if !domain.ValidStatus(in.Status) {
		return domain.TaskFields{}, domain.Validation("unknown status")
	}
	status := in.Status
	if status == "" {
		status = domain.StatusToDo
	}
	return domain.TaskFields{
		Name:     name,
		DueDate:  in.DueDate,
		DueTime:  in.DueTime,
		Priority: in.Priority,
		Status:   status,
	}, nil
}

// TaskPatch is the allow-list of mutable task fields; nil means "not
// supplied". Client keys outside this set never reach a statement.
type TaskPatch struct {
	Name     *string `json:"name"`
	DueDate  *string `json:"due_date"`
	DueTime  *string `json:"due_time"`
	Priority *string `json:"priority"`
	Status   *string `json:"status"`
}

func (p *TaskPatch) fields() (map[string]any, error) {
	fields := map[string]any{}
	if p.Name != nil {
		name := strings.TrimSpace(*p.Name)
		if name == "" {
			return nil, domain.Validation("name must not be empty")
		}
		fields["name"] = name
	}
	if p.DueDate != nil {
		fields["due_date"] = *p.DueDate
	}
	if p.DueTime != nil {
		fields["due_time"] = *p.DueTime
	}
	if p.Priority != nil {
		if !domain.ValidPriority(*p.Priority) {
			return nil, domain.Validation("unknown priority")
		}
		fields["priority"] = *p.Priority
	}
	if p.Status != nil {
		if !domain.ValidStatus(*p.Status) {
			return nil, domain.Validation("unknown status")
		}
		fields["status"] = *p.Status
	}
	if len(fields) == 0 {
		return nil, domain.Validation("no fields to update")
	}
	return fields, nil
}

/* ---------- personal scope ---------- */

func (s *TaskService) CreatePersonal(ctx context.Context, uid string, in TaskInput) (*domain.PersonalTask, error) {
	f, err := in.fields()
	if err != nil {
		return nil, err
	}
	t := &domain.PersonalTask{ID: utils.NewID(), UserID: uid, TaskFields: f}
	if err := s.personal.Create(ctx, t); err != nil {
		return nil, domain.Storage("create task", err)
	}
	return t, nil
}

func (s *TaskService) ListPersonal(ctx context.Context, uid string, by domain.TaskSort) ([]domain.PersonalTask, error) {
	ts, err := s.personal.ListActive(ctx, uid)
	if err != nil {
		return nil, domain.Storage("list tasks", err)
	}
	if ts == nil {
		ts = []domain.PersonalTask{}
	}
	if by != "" {
		domain.SortTasks(ts, by)
	}
	return ts, nil
}

// GetPersonal returns the task whether or not it is tombstoned; undo needs
// to see dead rows.
func (s *TaskService) GetPersonal(ctx context.Context, uid, id string) (*domain.PersonalTask, error) {
	t, err := s.personal.Find(ctx, uid, id)
	if err != nil {
		return nil, domain.Storage("lookup task", err)
	}
	if t == nil {
		return nil, domain.NotFound("task not found")
	}
	return t, nil
}

func (s *TaskService) UpdatePersonal(ctx context.Context, uid, id string, patch TaskPatch) (int64, error) {
	fields, err := patch.fields()
	if err != nil {
		return 0, err
	}
	n, err := s.personal.UpdateFields(ctx, uid, id, fields)
	if err != nil {
		return 0, domain.Storage("update task", err)
	}
	if n == 0 {
		return 0, domain.NotFound("task not found")
	}
	return n, nil
}

// SoftDeletePersonal stamps the tombstone and returns the pre-delete
// snapshot — the caller's only handle for undo.
func (s *TaskService) SoftDeletePersonal(ctx context.Context, uid, id string) (*domain.PersonalTask, error) {
	t, err := s.personal.Find(ctx, uid, id)
	if err != nil {
		return nil, domain.Storage("lookup task", err)
	}
	if t == nil || t.DeletedAt != nil {
		return nil, domain.NotFound("task not found")
	}
	snapshot := *t
	now := time.Now()
	n, err := s.personal.SetTombstone(ctx, uid, id, &now)
	if err != nil {
		return nil, domain.Storage("delete task", err)
	}
	if n == 0 {
		// Lost a race with another delete; same end state either way.
		return nil, domain.NotFound("task not found")
	}
	return &snapshot, nil
}

// UndoPersonal clears the tombstone. There is no server-side time window:
// the undo contract is "succeeds while the row exists in this scope".
func (s *TaskService) UndoPersonal(ctx context.Context, uid, id string) (int64, error) {
	n, err := s.personal.SetTombstone(ctx, uid, id, nil)
	if err != nil {
		return 0, domain.Storage("restore task", err)
	}
	if n == 0 {
		return 0, domain.NotFound("task not found")
	}
	return n, nil
}

/* ---------- collaborative scope ---------- */

func (s *TaskService) CreateCollab(ctx context.Context, uid, listID string, in TaskInput) (*domain.CollabTask, error) {
	if _, err := s.guard.Authorize(ctx, listID, uid); err != nil {
		return nil, err
	}
	f, err := in.fields()
	if err != nil {
		return nil, err
	}
	t := &domain.CollabTask{ID: utils.NewID(), ListID: listID, CreatedBy: uid, TaskFields: f}
	if err := s.collab.Create(ctx, t); err != nil {
		return nil, domain.Storage("create task", err)
	}
	return t, nil
}

func (s *TaskService) ListCollab(ctx context.Context, uid, listID string, by domain.TaskSort) ([]domain.CollabTask, error) {
	if _, err := s.guard.Authorize(ctx, listID, uid); err != nil {
		return nil, err
	}
	ts, err := s.collab.ListActive(ctx, listID)
	if err != nil {
		return nil, domain.Storage("list tasks", err)
	}
	if ts == nil {
		ts = []domain.CollabTask{}
	}
	if by != "" {
		domain.SortTasks(ts, by)
	}
	return ts, nil
}

func (s *TaskService) UpdateCollab(ctx context.Context, uid, id string, patch TaskPatch) (int64, error) {
	t, err := s.findCollab(ctx, uid, id)
	if err != nil {
		return 0, err
	}
	fields, ferr := patch.fields()
	if ferr != nil {
		return 0, ferr
	}
	n, err := s.collab.UpdateFields(ctx, t.ID, fields)
	if err != nil {
		return 0, domain.Storage("update task", err)
	}
	if n == 0 {
		return 0, domain.NotFound("task not found")
	}
	return n, nil
}

func (s *TaskService) SoftDeleteCollab(ctx context.Context, uid, id string) (*domain.CollabTask, error) {
	t, err := s.findCollab(ctx, uid, id)
	if err != nil {
		return nil, err
	}
	if t.DeletedAt != nil {
		return nil, domain.NotFound("task not found")
	}
	snapshot := *t
	now := time.Now()
	n, err := s.collab.SetTombstone(ctx, t.ID, &now)
	if err != nil {
		return nil, domain.Storage("delete task", err)
	}
	if n == 0 {
		return nil, domain.NotFound("task not found")
	}
	return &snapshot, nil
}

func (s *TaskService) UndoCollab(ctx context.Context, uid, id string) (int64, error) {
	t, err := s.findCollab(ctx, uid, id)
	if err != nil {
		return 0, err
	}
	n, err := s.collab.SetTombstone(ctx, t.ID, nil)
	if err != nil {
		return 0, domain.Storage("restore task", err)
	}
	if n == 0 {
		return 0, domain.NotFound("task not found")
	}
	return n, nil
}

// findCollab resolves the task and checks the subject against its list. The
// task id alone identifies the scope on these routes.
func (s *TaskService) findCollab(ctx context.Context, uid, id string) (*domain.CollabTask, error) {
	t, err := s.collab.Find(ctx, id)
	if err != nil {
		return nil, domain.Storage("lookup task", err)
	}
	if t == nil {
		return nil, domain.NotFound("task not found")
	}
	if _, err := s.guard.Authorize(ctx, t.ListID, uid); err != nil {
		return nil, err
	}
	return t, nil
}
