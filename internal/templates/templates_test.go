package templates

import (
	"html/template"
	"net/http/httptest"
	"strings"
	"testing"

	"annochess/internal/viewer"
)

func TestWriteHomeHTML(t *testing.T) {
	w := httptest.NewRecorder()
	WriteHomeHTML(w, HomeData{Games: []viewer.Option{{ID: 1, VariantName: "Queen's Gambit"}}})
	if ct := w.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Fatalf("unexpected content type %q", ct)
	}
	body := w.Body.String()
	if !strings.Contains(body, "Queen&#39;s Gambit") {
		t.Fatalf("variant missing or unescaped:\n%s", body)
	}
}

func TestWriteViewerHTML(t *testing.T) {
	id := int64(2)
	w := httptest.NewRecorder()
	WriteViewerHTML(w, ViewerData{
		SessionID: "0b6c2f3e-5d0a-4d5e-9c41-7f1f7d9b1a11",
		State: viewer.Snapshot{
			GameID:     &id,
			Title:      "Italian",
			Paragraphs: []string{"one", "<two>"},
			Counter:    "Initial position",
			CanAdvance: true,
			Games:      []viewer.Option{{ID: 1, VariantName: "Scotch"}, {ID: 2, VariantName: "Italian"}},
		},
		Board:       template.HTML(`<svg class="board"></svg>`),
		Placeholder: "Variants",
	})
	body := w.Body.String()
	for _, want := range []string{
		`<svg class="board"></svg>`,
		`<p>&lt;two&gt;</p>`,
		`<option value="2" selected>Italian</option>`,
		`"0b6c2f3e-5d0a-4d5e-9c41-7f1f7d9b1a11"`,
		`id="prev" disabled`,
	} {
		if !strings.Contains(body, want) {
			t.Fatalf("missing %q in viewer page", want)
		}
	}
	if strings.Contains(body, `id="next" disabled`) {
		t.Fatalf("next button should be enabled")
	}
}
