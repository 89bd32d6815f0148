package app

import (
	"errors"
	"fmt"
	"reflect"
	"testing"

	"github.com/hylla/taskboard/internal/domain"
)

// sequentialIDs returns a deterministic generator producing t1, t2, ...
func sequentialIDs() IDGenerator {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("t%d", n)
	}
}

// newSeededBoard builds the default process-start board.
func newSeededBoard(t *testing.T) Board {
	t.Helper()
	b := NewBoard(sequentialIDs(), BoardConfig{Seed: DefaultSeed()})
	if b.Len() != 2 {
		t.Fatalf("expected 2 seeded tasks, got %d", b.Len())
	}
	return b
}

// mustApply applies an event and fails when the result carries an error.
func mustApply(t *testing.T, b Board, ev Event) Board {
	t.Helper()
	next, res := b.Apply(ev)
	if res.Err != nil {
		t.Fatalf("Apply(%s) error = %v", EventName(ev), res.Err)
	}
	return next
}

func TestNewBoardSeed(t *testing.T) {
	b := newSeededBoard(t)
	tasks := b.Tasks()
	want := []domain.Task{
		{ID: "t1", Title: "Build portfolio website", Category: domain.CategoryWork},
		{ID: "t2", Title: "Buy groceries", Category: domain.CategoryPersonal, Completed: true},
	}
	if !reflect.DeepEqual(tasks, want) {
		t.Fatalf("unexpected seed tasks %#v", tasks)
	}
	if b.Filter() != domain.FilterAll {
		t.Fatalf("expected default filter All, got %q", b.Filter())
	}
	if b.Edit().Active() {
		t.Fatal("expected idle edit session")
	}
}

func TestNewBoardDefaults(t *testing.T) {
	b := NewBoard(nil, BoardConfig{Filter: "bogus"})
	if b.Filter() != domain.FilterAll {
		t.Fatalf("expected invalid filter to fall back to All, got %q", b.Filter())
	}
	b, res := b.Add("first", domain.CategoryWork)
	if res.Err != nil {
		t.Fatalf("Add() error = %v", res.Err)
	}
	b, res2 := b.Add("second", domain.CategoryWork)
	if res2.Err != nil {
		t.Fatalf("Add() error = %v", res2.Err)
	}
	if res.TaskID == res2.TaskID {
		t.Fatalf("expected counter ids to differ, got %q twice", res.TaskID)
	}
}

func TestAddScenario(t *testing.T) {
	b := newSeededBoard(t)
	next, res := b.Apply(AddTask{Title: "Walk dog", Category: domain.CategoryPersonal})
	if res.Err != nil {
		t.Fatalf("Apply(AddTask) error = %v", res.Err)
	}
	if !res.ClearInput || !res.Changed {
		t.Fatalf("expected changed result that clears input, got %#v", res)
	}
	if next.Len() != 3 {
		t.Fatalf("expected 3 tasks, got %d", next.Len())
	}
	last := next.Tasks()[2]
	if last.Title != "Walk dog" || last.Category != domain.CategoryPersonal || last.Completed {
		t.Fatalf("unexpected appended task %#v", last)
	}
	if got := next.Stats(); got != (Stats{Total: 3, Active: 2, Completed: 1}) {
		t.Fatalf("unexpected stats %#v", got)
	}
	next = mustApply(t, next, SetFilter{Mode: domain.FilterCompleted})
	visible := next.Visible()
	if len(visible) != 1 || visible[0].Title != "Buy groceries" {
		t.Fatalf("unexpected completed view %#v", visible)
	}
	if b.Len() != 2 {
		t.Fatalf("expected prior board untouched, got %d tasks", b.Len())
	}
}

func TestAddRejectsBlankTitle(t *testing.T) {
	b := newSeededBoard(t)
	for _, title := range []string{"", "   ", "\t\n"} {
		next, res := b.Apply(AddTask{Title: title, Category: domain.CategoryWork})
		if !errors.Is(res.Err, domain.ErrInvalidTitle) {
			t.Fatalf("expected ErrInvalidTitle for %q, got %v", title, res.Err)
		}
		if res.Changed || res.ClearInput {
			t.Fatalf("expected untouched result for %q, got %#v", title, res)
		}
		if !reflect.DeepEqual(next.Tasks(), b.Tasks()) {
			t.Fatalf("expected store unchanged for %q", title)
		}
	}
}

func TestAddRejectsUnknownCategory(t *testing.T) {
	b := newSeededBoard(t)
	next, res := b.Apply(AddTask{Title: "x", Category: "Errands"})
	if !errors.Is(res.Err, domain.ErrInvalidCategory) {
		t.Fatalf("expected ErrInvalidCategory, got %v", res.Err)
	}
	if next.Len() != 2 {
		t.Fatalf("expected no task added, got %d", next.Len())
	}
}

func TestAddManyKeepsIDsDistinct(t *testing.T) {
	b := NewBoard(nil, BoardConfig{})
	const n = 200
	for i := range n {
		b = mustApply(t, b, AddTask{Title: fmt.Sprintf("task %d", i), Category: domain.CategoryShopping})
	}
	if b.Len() != n {
		t.Fatalf("expected %d tasks, got %d", n, b.Len())
	}
	seen := map[string]struct{}{}
	for i, task := range b.Tasks() {
		if _, ok := seen[task.ID]; ok {
			t.Fatalf("duplicate id %q", task.ID)
		}
		seen[task.ID] = struct{}{}
		if task.Title != fmt.Sprintf("task %d", i) {
			t.Fatalf("expected insertion order, got %q at %d", task.Title, i)
		}
	}
}

func TestAddRegeneratesCollidingIDs(t *testing.T) {
	ids := []string{"a", "a", "", "b"}
	gen := func() string {
		id := ids[0]
		ids = ids[1:]
		return id
	}
	b := NewBoard(gen, BoardConfig{})
	b = mustApply(t, b, AddTask{Title: "one", Category: domain.CategoryWork})
	b = mustApply(t, b, AddTask{Title: "two", Category: domain.CategoryWork})
	tasks := b.Tasks()
	if tasks[0].ID != "a" || tasks[1].ID != "b" {
		t.Fatalf("unexpected ids %q, %q", tasks[0].ID, tasks[1].ID)
	}
}

func TestAddFailsWhenGeneratorStuck(t *testing.T) {
	b := NewBoard(func() string { return "same" }, BoardConfig{})
	b = mustApply(t, b, AddTask{Title: "one", Category: domain.CategoryWork})
	next, res := b.Apply(AddTask{Title: "two", Category: domain.CategoryWork})
	if !errors.Is(res.Err, ErrIDExhausted) {
		t.Fatalf("expected ErrIDExhausted, got %v", res.Err)
	}
	if next.Len() != 1 {
		t.Fatalf("expected single task, got %d", next.Len())
	}
}

func TestRemove(t *testing.T) {
	b := newSeededBoard(t)
	b = mustApply(t, b, AddTask{Title: "third", Category: domain.CategoryWork})
	next := mustApply(t, b, RemoveTask{ID: "t2"})
	got := next.Tasks()
	if len(got) != 2 || got[0].ID != "t1" || got[1].ID != "t3" {
		t.Fatalf("unexpected tasks after remove %#v", got)
	}
	if b.Len() != 3 {
		t.Fatalf("expected prior board untouched, got %d", b.Len())
	}
}

func TestRemoveMissingIsNoop(t *testing.T) {
	b := newSeededBoard(t)
	next, res := b.Apply(RemoveTask{ID: "missing"})
	if !errors.Is(res.Err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", res.Err)
	}
	if res.Changed {
		t.Fatal("expected unchanged result")
	}
	if !reflect.DeepEqual(next.Tasks(), b.Tasks()) {
		t.Fatal("expected store contents identical")
	}
}

func TestRemoveClosesEditSessionForTarget(t *testing.T) {
	b := newSeededBoard(t)
	b = mustApply(t, b, StartEdit{ID: "t1"})
	kept := mustApply(t, b, RemoveTask{ID: "t2"})
	if !kept.Edit().Editing("t1") {
		t.Fatal("expected session on other task to survive")
	}
	closed := mustApply(t, b, RemoveTask{ID: "t1"})
	if closed.Edit().Active() {
		t.Fatal("expected session closed after removing edited task")
	}
}

func TestToggleTwiceRestores(t *testing.T) {
	b := newSeededBoard(t)
	for _, task := range b.Tasks() {
		once := mustApply(t, b, ToggleTask{ID: task.ID})
		flipped, _ := once.Task(task.ID)
		if flipped.Completed == task.Completed {
			t.Fatalf("expected %s flipped", task.ID)
		}
		twice := mustApply(t, once, ToggleTask{ID: task.ID})
		restored, _ := twice.Task(task.ID)
		if restored != task {
			t.Fatalf("expected %s restored, got %#v", task.ID, restored)
		}
	}
	if _, res := b.Apply(ToggleTask{ID: "missing"}); !errors.Is(res.Err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", res.Err)
	}
}

func TestFilterViewPartitionsStore(t *testing.T) {
	b := newSeededBoard(t)
	for i := range 6 {
		b = mustApply(t, b, AddTask{Title: fmt.Sprintf("extra %d", i), Category: domain.CategoryShopping})
		if i%2 == 0 {
			b = mustApply(t, b, ToggleTask{ID: b.Tasks()[b.Len()-1].ID})
		}
	}
	all := FilterTasks(b.Tasks(), domain.FilterAll)
	active := FilterTasks(b.Tasks(), domain.FilterActive)
	completed := FilterTasks(b.Tasks(), domain.FilterCompleted)
	if !reflect.DeepEqual(all, b.Tasks()) {
		t.Fatal("expected All view to equal the store")
	}
	union := map[string]struct{}{}
	for _, task := range active {
		if task.Completed {
			t.Fatalf("completed task %s in Active view", task.ID)
		}
		union[task.ID] = struct{}{}
	}
	for _, task := range completed {
		if !task.Completed {
			t.Fatalf("active task %s in Completed view", task.ID)
		}
		union[task.ID] = struct{}{}
	}
	if len(union) != len(all) {
		t.Fatalf("expected union of %d ids, got %d", len(all), len(union))
	}
	stats := b.Stats()
	if stats.Active+stats.Completed != stats.Total {
		t.Fatalf("stats do not add up %#v", stats)
	}
	if stats.Active != len(active) || stats.Completed != len(completed) {
		t.Fatalf("stats disagree with views %#v", stats)
	}
}

func TestVisibleTracksCurrentState(t *testing.T) {
	b := newSeededBoard(t)
	b = mustApply(t, b, SetFilter{Mode: domain.FilterActive})
	if got := len(b.Visible()); got != 1 {
		t.Fatalf("expected 1 active task, got %d", got)
	}
	b = mustApply(t, b, ToggleTask{ID: "t2"})
	if got := len(b.Visible()); got != 2 {
		t.Fatalf("expected view to follow toggle, got %d", got)
	}
}

func TestSetFilter(t *testing.T) {
	b := newSeededBoard(t)
	next, res := b.Apply(SetFilter{Mode: "Done"})
	if !errors.Is(res.Err, domain.ErrInvalidFilter) {
		t.Fatalf("expected ErrInvalidFilter, got %v", res.Err)
	}
	if next.Filter() != domain.FilterAll {
		t.Fatalf("expected filter unchanged, got %q", next.Filter())
	}
	_, res = b.Apply(SetFilter{Mode: domain.FilterAll})
	if res.Changed {
		t.Fatal("expected reselecting the current filter to be unchanged")
	}
}

func TestEditSaveUpdatesOnlyTarget(t *testing.T) {
	b := newSeededBoard(t)
	b = mustApply(t, b, AddTask{Title: "third", Category: domain.CategoryShopping})
	before := b.Tasks()

	b = mustApply(t, b, StartEdit{ID: "t2"})
	if got := b.Edit(); got != (EditSession{TaskID: "t2", Draft: "Buy groceries"}) {
		t.Fatalf("unexpected session %#v", got)
	}
	b = mustApply(t, b, SetEditDraft{Text: "Buy milk"})
	b = mustApply(t, b, SaveEdit{})
	if b.Edit().Active() {
		t.Fatal("expected session closed after save")
	}
	after := b.Tasks()
	for i := range before {
		if before[i].ID == "t2" {
			want := before[i]
			want.Title = "Buy milk"
			if after[i] != want {
				t.Fatalf("unexpected edited task %#v", after[i])
			}
			continue
		}
		if after[i] != before[i] {
			t.Fatalf("expected task %s untouched, got %#v", before[i].ID, after[i])
		}
	}
}

func TestTitlesStoredAsTyped(t *testing.T) {
	b := newSeededBoard(t)
	next, res := b.Apply(AddTask{Title: "  Walk dog ", Category: domain.CategoryPersonal})
	if res.Err != nil {
		t.Fatalf("AddTask error = %v", res.Err)
	}
	added, ok := next.Task(res.TaskID)
	if !ok || added.Title != "  Walk dog " {
		t.Fatalf("expected added title kept as typed, got %#v", added)
	}

	next = mustApply(t, next, StartEdit{ID: res.TaskID})
	next = mustApply(t, next, SetEditDraft{Text: " Walk cat  "})
	next = mustApply(t, next, SaveEdit{})
	saved, _ := next.Task(res.TaskID)
	if saved.Title != " Walk cat  " {
		t.Fatalf("expected saved title kept as typed, got %q", saved.Title)
	}
}

func TestEditSaveBlankDiscards(t *testing.T) {
	b := newSeededBoard(t)
	b = mustApply(t, b, StartEdit{ID: "t1"})
	b = mustApply(t, b, SetEditDraft{Text: "   "})
	next, res := b.Apply(SaveEdit{})
	if !errors.Is(res.Err, domain.ErrInvalidTitle) {
		t.Fatalf("expected ErrInvalidTitle, got %v", res.Err)
	}
	if !res.Changed {
		t.Fatal("expected session close to count as a change")
	}
	if next.Edit().Active() {
		t.Fatal("expected session closed after discarded save")
	}
	task, _ := next.Task("t1")
	if task.Title != "Build portfolio website" {
		t.Fatalf("expected title unchanged, got %q", task.Title)
	}
}

func TestEditCancel(t *testing.T) {
	b := newSeededBoard(t)
	b = mustApply(t, b, StartEdit{ID: "t1"})
	b = mustApply(t, b, SetEditDraft{Text: "something else"})
	b = mustApply(t, b, CancelEdit{})
	if b.Edit().Active() {
		t.Fatal("expected session closed after cancel")
	}
	task, _ := b.Task("t1")
	if task.Title != "Build portfolio website" {
		t.Fatalf("expected title unchanged, got %q", task.Title)
	}
}

func TestStartEditOnOtherTaskAbandonsDraft(t *testing.T) {
	b := newSeededBoard(t)
	b = mustApply(t, b, StartEdit{ID: "t1"})
	b = mustApply(t, b, SetEditDraft{Text: "unsaved"})
	b = mustApply(t, b, StartEdit{ID: "t2"})
	if got := b.Edit(); got != (EditSession{TaskID: "t2", Draft: "Buy groceries"}) {
		t.Fatalf("unexpected session %#v", got)
	}
	task, _ := b.Task("t1")
	if task.Title != "Build portfolio website" {
		t.Fatalf("expected abandoned draft not saved, got %q", task.Title)
	}
}

func TestStartEditMissingKeepsSession(t *testing.T) {
	b := newSeededBoard(t)
	b = mustApply(t, b, StartEdit{ID: "t1"})
	next, res := b.Apply(StartEdit{ID: "missing"})
	if !errors.Is(res.Err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", res.Err)
	}
	if !next.Edit().Editing("t1") {
		t.Fatal("expected existing session kept")
	}
}

func TestIdleEditEventsAreNoops(t *testing.T) {
	b := newSeededBoard(t)
	for _, ev := range []Event{SetEditDraft{Text: "x"}, SaveEdit{}, CancelEdit{}} {
		next, res := b.Apply(ev)
		if res.Changed || res.Err != nil {
			t.Fatalf("expected %s no-op while idle, got %#v", EventName(ev), res)
		}
		if !reflect.DeepEqual(next.Tasks(), b.Tasks()) {
			t.Fatalf("expected %s to leave tasks untouched", EventName(ev))
		}
	}
}

func TestSaveAfterTargetRemovedIsNoop(t *testing.T) {
	b := newSeededBoard(t)
	b = mustApply(t, b, StartEdit{ID: "t1"})
	// Stale references are simulated by renaming through the store directly.
	next, res := b.UpdateTitle("missing", "x")
	if !errors.Is(res.Err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", res.Err)
	}
	if !reflect.DeepEqual(next.Tasks(), b.Tasks()) {
		t.Fatal("expected store untouched")
	}
}

func TestApplyUnknownEvent(t *testing.T) {
	b := newSeededBoard(t)
	_, res := b.Apply(nil)
	if !errors.Is(res.Err, ErrUnknownEvent) {
		t.Fatalf("expected ErrUnknownEvent, got %v", res.Err)
	}
	if EventName(nil) != "unknown" {
		t.Fatalf("unexpected event name %q", EventName(nil))
	}
}
