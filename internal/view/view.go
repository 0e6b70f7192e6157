// Package view renders the server-side templates. Pages live in templates/
// and define a "content" block wrapped by layout.html plus the header partial.
package view

import (
	"html/template"
	"net/http"
	"os"
	"path/filepath"
	"sync"
	"time"
)

var (
	baseDir  string
	once     sync.Once
	tplCache = struct {
		sync.RWMutex
		m map[string]*template.Template
	}{m: map[string]*template.Template{}}
)

func detectBase() {
	// Tests run from package directories; walk up until templates/ is found.
	candidates := []string{"templates", "../templates", "../../templates", "../../../templates"}
	for _, c := range candidates {
		if fi, err := os.Stat(filepath.Clean(c)); err == nil && fi.IsDir() {
			baseDir = filepath.Clean(c)
			return
		}
	}
	baseDir = "templates"
}

// Funcs returns the shared template func map.
func Funcs() template.FuncMap {
	return template.FuncMap{
		"currency": Currency,
		"year":     func() int { return time.Now().Year() },
	}
}

// Render parses and executes a page template with the shared layout and
// funcs. name is the filename, e.g. "dashboard.html". Parsed templates are
// cached unless DEV=1.
func Render(w http.ResponseWriter, r *http.Request, name string, data map[string]any) error {
	once.Do(detectBase)
	if data == nil {
		data = map[string]any{}
	}
	if _, exists := data["Year"]; !exists {
		data["Year"] = time.Now().Year()
	}
	devMode := os.Getenv("DEV") == "1"
	if !devMode {
		tplCache.RLock()
		t, ok := tplCache.m[name]
		tplCache.RUnlock()
		if ok && t != nil {
			w.Header().Set("Content-Type", "text/html; charset=utf-8")
			return t.Execute(w, data)
		}
	}

	files := []string{filepath.Join(baseDir, "layout.html"), filepath.Join(baseDir, name)}
	if p := filepath.Join(baseDir, "partials", "header.html"); exists(p) {
		files = append(files, p)
	}
	t, err := template.New("layout.html").Funcs(Funcs()).ParseFiles(files...)
	if err != nil {
		return err
	}
	if !devMode {
		tplCache.Lock()
		tplCache.m[name] = t
		tplCache.Unlock()
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	return t.Execute(w, data)
}

func exists(p string) bool {
	fi, err := os.Stat(p)
	return err == nil && !fi.IsDir()
}
