package views

import (
	"strings"
	"testing"
)

func TestRenderTaskGridEmptyState(t *testing.T) {
	out := RenderTaskGrid(TaskGridData{Total: 0, PageNumber: 1, TotalPages: 1})
	if !strings.Contains(out, "No task :(") {
		t.Fatalf("expected placeholder, got %q", out)
	}
	if strings.Contains(out, "page 1/1") {
		t.Fatalf("empty state should not render a pager: %q", out)
	}
}

func TestRenderTaskGridCards(t *testing.T) {
	out := RenderTaskGrid(TaskGridData{
		Cards: []CardData{
			{ID: 3, Title: "write docs", Status: "Pending", Priority: 2, DueDate: "February 10, 2026", Selected: true},
			{ID: 2, Title: "pay rent", Status: "Completed", Priority: 1},
		},
		Total:      6,
		PageNumber: 2,
		TotalPages: 2,
	})
	for _, want := range []string{"write docs", "pay rent", "#3 Pending", "priority: 2", "due: February 10, 2026", "due: -", "> ", "page 2/2"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in grid output:\n%s", want, out)
		}
	}
}

func TestRenderFooter(t *testing.T) {
	if got := RenderFooter(0); got != "No task :(" {
		t.Fatalf("unexpected empty footer: %q", got)
	}
	if got := RenderFooter(5); got != "5 task(s) added" {
		t.Fatalf("unexpected footer: %q", got)
	}
}

func TestRenderDetailDialog(t *testing.T) {
	out := RenderDetailDialog(DetailData{ID: 7, Title: "ship", Status: "In Progress", Priority: 3, DueDate: "March 01, 2026"})
	for _, want := range []string{"ship", "id: 7", "status: In Progress", "due: March 01, 2026", "[d]delete"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in detail output:\n%s", want, out)
		}
	}

	out = RenderDetailDialog(DetailData{ID: 7, Title: "ship", Deleting: true})
	if !strings.Contains(out, "deleting...") {
		t.Fatalf("expected deleting marker:\n%s", out)
	}
}

func TestRenderFormShowsErrorAndFocus(t *testing.T) {
	out := RenderForm(FormData{
		Heading: "New task",
		Fields: []FormFieldData{
			{Label: "Title", View: "", Focused: true},
			{Label: "Priority", View: "1"},
		},
		ErrorText: "title: model: task title is required",
	})
	if !strings.Contains(out, "> Title:") {
		t.Fatalf("expected focused title label:\n%s", out)
	}
	if !strings.Contains(out, "error: title: model: task title is required") {
		t.Fatalf("expected inline error:\n%s", out)
	}
}

func TestRenderAlertAndPalette(t *testing.T) {
	if RenderAlert(AlertData{}) != "" {
		t.Fatal("expected empty alert")
	}
	if out := RenderAlert(AlertData{Title: "Save failed", Body: "boom"}); !strings.Contains(out, "boom") {
		t.Fatalf("unexpected alert: %q", out)
	}
	if RenderCommandPalette(false, "x") != "" {
		t.Fatal("inactive palette should render nothing")
	}
	if got := RenderCommandPalette(true, ":page 2"); got != "command: :page 2" {
		t.Fatalf("unexpected palette: %q", got)
	}
}

func TestRenderMarkdownFallsBackForBlank(t *testing.T) {
	if RenderMarkdown("   ", 40) != "" {
		t.Fatal("expected blank markdown to render empty")
	}
	if out := RenderMarkdown("**bold** text", 40); !strings.Contains(out, "bold") {
		t.Fatalf("unexpected markdown output: %q", out)
	}
}
