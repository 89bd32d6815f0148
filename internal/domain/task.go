package domain

import "strings"

type Task struct {
	ID        string
	Title     string
	Category  Category
	Completed bool
}

type TaskInput struct {
	ID       string
	Title    string
	Category Category
}

func NewTask(in TaskInput) (Task, error) {
	in.ID = strings.TrimSpace(in.ID)

	if in.ID == "" {
		return Task{}, ErrInvalidID
	}
	if strings.TrimSpace(in.Title) == "" {
		return Task{}, ErrInvalidTitle
	}
	if !in.Category.Valid() {
		return Task{}, ErrInvalidCategory
	}

	return Task{
		ID:       in.ID,
		Title:    in.Title,
		Category: in.Category,
	}, nil
}

// Rename stores title as given. A blank title leaves the task untouched.
func (t *Task) Rename(title string) error {
	if strings.TrimSpace(title) == "" {
		return ErrInvalidTitle
	}
	t.Title = title
	return nil
}

func (t *Task) ToggleCompleted() {
	t.Completed = !t.Completed
}
