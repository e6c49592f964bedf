package tui

import (
	"context"
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"assessio/internal/adapters/memory"
	"assessio/internal/adapters/repository"
	"assessio/internal/adapters/tui/views"
	"assessio/internal/application"
	"assessio/internal/domain"
	"assessio/pkg/logger"
)

func newTestApp(t *testing.T) (*App, *string) {
	t.Helper()
	ctx := context.Background()
	store := memory.NewStore(0)
	log := logger.NewNop()

	catalogs := repository.NewCatalogRepository(store, log)
	err := catalogs.Save(ctx, []domain.Item{
		{ID: "a", Category: "生活", Name: "食事", Description: "d"},
		{ID: "b", Category: "生活", Name: "睡眠", Description: "d"},
		{ID: "c", Category: "対人", Name: "挨拶", Description: "d"},
	})
	if err != nil {
		t.Fatal(err)
	}

	ws := application.NewWorkspace(application.Options{
		Catalogs: catalogs,
		Records:  repository.NewRecordRepository(store, log),
		Drafts:   repository.NewDraftRepository(store, log),
		Logger:   log,
	})
	if err := ws.Init(ctx); err != nil {
		t.Fatal(err)
	}

	var copied string
	app := NewApp(ws, nil)
	app.copy = func(s string) error {
		copied = s
		return nil
	}
	return app, &copied
}

func press(a *App, keys string) tea.Cmd {
	_, cmd := a.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(keys)})
	return cmd
}

// follow feeds the message produced by cmd back into the app
func follow(a *App, cmd tea.Cmd) {
	if cmd != nil {
		a.Update(cmd())
	}
}

func TestApp_ScoreMovesCursor(t *testing.T) {
	app, _ := newTestApp(t)

	press(app, "3")
	press(app, "5")

	s := app.ws.Session()
	if score, _ := s.Score("a"); score != 3 {
		t.Errorf("a = %d, want 3", score)
	}
	if score, _ := s.Score("b"); score != 5 {
		t.Errorf("b = %d, want 5", score)
	}
	if item, _ := app.form.Selected(); item.ID != "c" {
		t.Errorf("cursor on %s, want c", item.ID)
	}
	if !strings.Contains(app.View(), "睡眠") {
		t.Error("form view does not list the items")
	}
}

func TestApp_SwitchViews(t *testing.T) {
	tests := []struct {
		key  string
		want ViewState
	}{
		{"i", ViewInfo},
		{"a", ViewAddItem},
		{"b", ViewBulk},
		{"h", ViewHistory},
		{"r", ViewResults},
		{"?", ViewHelp},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			app, _ := newTestApp(t)
			follow(app, press(app, tt.key))
			if app.state != tt.want {
				t.Errorf("state = %d, want %d", app.state, tt.want)
			}

			_, cmd := app.Update(tea.KeyMsg{Type: tea.KeyEsc})
			follow(app, cmd)
			if app.state != ViewForm {
				t.Errorf("esc left state %d, want the form", app.state)
			}
		})
	}
}

func TestApp_CopyCSV(t *testing.T) {
	app, copied := newTestApp(t)

	follow(app, press(app, "c"))
	if *copied != "" || !app.form.MessageErr {
		t.Error("nothing is scored, copy should fail")
	}

	press(app, "4")
	follow(app, press(app, "c"))
	if !strings.HasPrefix(*copied, "\uFEFF\"記入日\"") {
		t.Errorf("unexpected clipboard content %q", *copied)
	}
	if !strings.Contains(*copied, `"食事","4"`) {
		t.Errorf("clipboard is missing the scored row: %q", *copied)
	}
	if !strings.Contains(app.form.Message, "Copied 1 rows") {
		t.Errorf("unexpected message %q", app.form.Message)
	}

	app.copy = func(string) error { return errors.New("no clipboard") }
	follow(app, press(app, "c"))
	if !strings.Contains(app.form.Message, "no clipboard") {
		t.Errorf("unexpected message %q", app.form.Message)
	}
}

func TestApp_RemoveItemNeedsConfirmation(t *testing.T) {
	app, _ := newTestApp(t)
	press(app, "2")

	press(app, "d")
	press(app, "n")
	if app.ws.Catalog().Len() != 3 {
		t.Fatal("cancelled removal changed the catalog")
	}

	press(app, "d")
	press(app, "y")
	if app.ws.Catalog().Len() != 2 {
		t.Fatalf("expected 2 items, got %d", app.ws.Catalog().Len())
	}
	if _, ok := app.ws.Session().Score("b"); ok {
		t.Error("removed item kept its score")
	}
}

func TestApp_EditorResultSavesNote(t *testing.T) {
	app, _ := newTestApp(t)

	cmd := press(app, "e")
	if cmd == nil {
		t.Fatal("expected an edit request")
	}
	msg, ok := cmd().(views.EditNoteMsg)
	if !ok || msg.Item.ID != "a" {
		t.Fatalf("unexpected message %#v", msg)
	}

	// without an editor the app reports an error
	follow(app, app.openEditor(msg))
	if !app.form.MessageErr {
		t.Error("expected an error without an editor")
	}

	app.Update(editorFinishedMsg{itemID: "a", text: "よく食べる"})
	if app.ws.Session().Note("a") != "よく食べる" {
		t.Errorf("note = %q", app.ws.Session().Note("a"))
	}
}

func TestApp_InlineNote(t *testing.T) {
	app, _ := newTestApp(t)

	press(app, "n")
	press(app, "memo")
	app.Update(tea.KeyMsg{Type: tea.KeyEnter})

	if app.ws.Session().Note("a") != "memo" {
		t.Errorf("note = %q, want memo", app.ws.Session().Note("a"))
	}
}

func TestApp_SaveAndLoadFromHistory(t *testing.T) {
	app, _ := newTestApp(t)
	ctx := context.Background()

	press(app, "3")
	press(app, "s")
	if !app.form.MessageErr {
		t.Fatal("save without basic info should fail")
	}

	info := domain.BasicInfo{ClientName: "T.Y", EvaluatorName: "Sato", EntryDate: "2026-04-01", PeriodStart: "2026-03-01", PeriodEnd: "2026-03-31"}
	if err := app.ws.UpdateSession(ctx, func(s *domain.Session) error { s.BasicInfo = info; return nil }); err != nil {
		t.Fatal(err)
	}
	press(app, "s")
	if app.form.MessageErr {
		t.Fatalf("save failed: %s", app.form.Message)
	}

	press(app, "N")
	press(app, "y")
	if app.ws.Session().HasScores() {
		t.Fatal("new assessment kept the scores")
	}

	// the history of a blank client is empty, so restore the client name first
	if err := app.ws.UpdateSession(ctx, func(s *domain.Session) error { s.BasicInfo = info; return nil }); err != nil {
		t.Fatal(err)
	}
	follow(app, press(app, "h"))
	if !strings.Contains(app.View(), "2026-04-01") {
		t.Fatalf("history does not list the record:\n%s", app.View())
	}

	_, cmd := app.Update(tea.KeyMsg{Type: tea.KeyEnter})
	follow(app, cmd)
	if app.state != ViewForm {
		t.Fatalf("loading should return to the form, state %d", app.state)
	}
	if score, _ := app.ws.Session().Score("a"); score != 3 {
		t.Errorf("loaded score = %d, want 3", score)
	}
}
