package templates

import (
	"bytes"
	"embed"
	"html/template"
	"net/http"

	"annochess/internal/viewer"
)

//go:embed *.html
var files embed.FS

var pages = template.Must(template.New("").ParseFS(files, "*.html"))

var commit = "dev"

// SetCommit sets the build identifier shown in page footers.
func SetCommit(c string) {
	if c != "" {
		commit = c
	}
}

// HomeData feeds home.html.
type HomeData struct {
	Games  []viewer.Option
	Commit string
}

// ViewerData feeds viewer.html.
type ViewerData struct {
	SessionID   string
	State       viewer.Snapshot
	Board       template.HTML
	Hint        string
	Placeholder string
	Commit      string

	HasSelection bool
	Selected     int64
}

// WriteHomeHTML serves the home page.
func WriteHomeHTML(w http.ResponseWriter, data HomeData) {
	data.Commit = commit
	write(w, "home.html", data)
}

// WriteViewerHTML serves the viewer page for one session.
func WriteViewerHTML(w http.ResponseWriter, data ViewerData) {
	data.Commit = commit
	if data.State.GameID != nil {
		data.HasSelection = true
		data.Selected = *data.State.GameID
	}
	write(w, "viewer.html", data)
}

func write(w http.ResponseWriter, name string, data any) {
	var buf bytes.Buffer
	if err := pages.ExecuteTemplate(&buf, name, data); err != nil {
		http.Error(w, "template error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	// prevent stale HTML while navigating
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}
