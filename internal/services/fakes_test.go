package services

import (
	"context"
	"time"

	"github.com/Thooms-coder/Shibui-Planner/internal/models"
	"github.com/Thooms-coder/Shibui-Planner/internal/repositories"
)

// In-memory repository fakes. IDs are assigned sequentially on store.

type fakeTaskRepo struct {
	tasks       map[int64]models.TaskDefinition
	nextID      int64
	assignments int
	feedback    int
	cascaded    []int64
}

func newFakeTaskRepo() *fakeTaskRepo {
	return &fakeTaskRepo{tasks: map[int64]models.TaskDefinition{}, nextID: 1}
}

func (r *fakeTaskRepo) Store(_ context.Context, task *models.TaskDefinition) error {
	task.ID = r.nextID
	r.nextID++
	r.tasks[task.ID] = *task
	return nil
}

func (r *fakeTaskRepo) FindByID(_ context.Context, id int64) (*models.TaskDefinition, error) {
	t, ok := r.tasks[id]
	if !ok {
		return nil, &models.NotFoundError{Entity: "task", ID: id}
	}
	return &t, nil
}

func (r *fakeTaskRepo) FindAll(_ context.Context) ([]models.TaskDefinition, error) {
	out := make([]models.TaskDefinition, 0, len(r.tasks))
	for _, t := range r.tasks {
		out = append(out, t)
	}
	return out, nil
}

func (r *fakeTaskRepo) Update(_ context.Context, task *models.TaskDefinition) error {
	if _, ok := r.tasks[task.ID]; !ok {
		return &models.NotFoundError{Entity: "task", ID: task.ID}
	}
	r.tasks[task.ID] = *task
	return nil
}

func (r *fakeTaskRepo) Delete(_ context.Context, id int64) error {
	delete(r.tasks, id)
	return nil
}

func (r *fakeTaskRepo) CountDependents(_ context.Context, _ int64) (int, int, error) {
	return r.assignments, r.feedback, nil
}

func (r *fakeTaskRepo) DeleteCascade(_ context.Context, id int64) error {
	r.cascaded = append(r.cascaded, id)
	delete(r.tasks, id)
	return nil
}

type fakeAssignmentRepo struct {
	assignments map[int64]models.Assignment
	nextID      int64
	cascaded    []int64
	started     []repositories.SweptRow
	completed   []repositories.SweptRow
	sweepErr    error
}

func newFakeAssignmentRepo() *fakeAssignmentRepo {
	return &fakeAssignmentRepo{assignments: map[int64]models.Assignment{}, nextID: 1}
}

func (r *fakeAssignmentRepo) Store(_ context.Context, a *models.Assignment) error {
	a.ID = r.nextID
	r.nextID++
	r.assignments[a.ID] = *a
	return nil
}

func (r *fakeAssignmentRepo) FindByID(_ context.Context, id int64) (*models.Assignment, error) {
	a, ok := r.assignments[id]
	if !ok {
		return nil, &models.NotFoundError{Entity: "assignment", ID: id}
	}
	return &a, nil
}

func (r *fakeAssignmentRepo) FindAll(_ context.Context, filter models.AssignmentFilter, _ bool) ([]models.Assignment, error) {
	out := []models.Assignment{}
	for _, a := range r.assignments {
		if filter.UserID != nil && a.UserID != *filter.UserID {
			continue
		}
		out = append(out, a)
	}
	return out, nil
}

func (r *fakeAssignmentRepo) Update(_ context.Context, a *models.Assignment) error {
	if _, ok := r.assignments[a.ID]; !ok {
		return &models.NotFoundError{Entity: "assignment", ID: a.ID}
	}
	r.assignments[a.ID] = *a
	return nil
}

func (r *fakeAssignmentRepo) Delete(_ context.Context, id int64) error {
	delete(r.assignments, id)
	return nil
}

func (r *fakeAssignmentRepo) DeleteCascade(_ context.Context, id int64) error {
	r.cascaded = append(r.cascaded, id)
	delete(r.assignments, id)
	return nil
}

func (r *fakeAssignmentRepo) SweepDue(_ context.Context, _ time.Time) ([]repositories.SweptRow, []repositories.SweptRow, error) {
	if r.sweepErr != nil {
		return nil, nil, r.sweepErr
	}
	return r.started, r.completed, nil
}

type fakeFeedbackRepo struct {
	entries map[int64]models.Feedback
	nextID  int64
}

func newFakeFeedbackRepo() *fakeFeedbackRepo {
	return &fakeFeedbackRepo{entries: map[int64]models.Feedback{}, nextID: 1}
}

func (r *fakeFeedbackRepo) Store(_ context.Context, f *models.Feedback) error {
	f.ID = r.nextID
	r.nextID++
	r.entries[f.ID] = *f
	return nil
}

func (r *fakeFeedbackRepo) FindByID(_ context.Context, id int64) (*models.Feedback, error) {
	f, ok := r.entries[id]
	if !ok {
		return nil, &models.NotFoundError{Entity: "feedback", ID: id}
	}
	return &f, nil
}

func (r *fakeFeedbackRepo) FindAll(_ context.Context) ([]models.Feedback, error) {
	out := make([]models.Feedback, 0, len(r.entries))
	for _, f := range r.entries {
		out = append(out, f)
	}
	return out, nil
}

func (r *fakeFeedbackRepo) FindByUser(_ context.Context, userID int64) ([]models.Feedback, error) {
	out := []models.Feedback{}
	for _, f := range r.entries {
		if f.UserID == userID {
			out = append(out, f)
		}
	}
	return out, nil
}

func (r *fakeFeedbackRepo) FindByUserBetween(_ context.Context, userID int64, from, to time.Time) ([]models.Feedback, error) {
	out := []models.Feedback{}
	for _, f := range r.entries {
		if f.UserID != userID {
			continue
		}
		if f.Timestamp.Before(from) || !f.Timestamp.Before(to) {
			continue
		}
		out = append(out, f)
	}
	return out, nil
}

func (r *fakeFeedbackRepo) Update(_ context.Context, f *models.Feedback) error {
	if _, ok := r.entries[f.ID]; !ok {
		return &models.NotFoundError{Entity: "feedback", ID: f.ID}
	}
	r.entries[f.ID] = *f
	return nil
}

func (r *fakeFeedbackRepo) Delete(_ context.Context, id int64) error {
	delete(r.entries, id)
	return nil
}

type fakeUserRepo struct {
	users    map[int64]models.User
	nextID   int64
	cascaded []int64
}

func newFakeUserRepo(users ...models.User) *fakeUserRepo {
	r := &fakeUserRepo{users: map[int64]models.User{}, nextID: 1}
	for _, u := range users {
		if u.ID >= r.nextID {
			r.nextID = u.ID + 1
		}
		r.users[u.ID] = u
	}
	return r
}

func (r *fakeUserRepo) Create(_ context.Context, u *models.User) error {
	u.ID = r.nextID
	r.nextID++
	r.users[u.ID] = *u
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id int64) (*models.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, &models.NotFoundError{Entity: "user", ID: id}
	}
	return &u, nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*models.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			found := u
			return &found, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) List(_ context.Context) ([]models.User, error) {
	out := make([]models.User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, u)
	}
	return out, nil
}

func (r *fakeUserRepo) Update(_ context.Context, u *models.User) error {
	if _, ok := r.users[u.ID]; !ok {
		return &models.NotFoundError{Entity: "user", ID: u.ID}
	}
	r.users[u.ID] = *u
	return nil
}

func (r *fakeUserRepo) DeleteCascade(_ context.Context, id int64) error {
	r.cascaded = append(r.cascaded, id)
	delete(r.users, id)
	return nil
}
