package web

import (
	"bytes"
	"embed"
	"html/template"
	"io/fs"
	"log/slog"
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/yuin/goldmark"
)

//go:embed assets
var assets embed.FS

type Params struct {
	Title string
	Base  string

	DownloadName string

	Description template.HTML
}

type Handler struct {
	once sync.Once

	page []byte
	err  error
}

func New() (*Handler, error) {
	return &Handler{}, nil
}

func (h *Handler) Attach(r chi.Router) {
	static, _ := fs.Sub(assets, "assets")

	r.Get("/", h.handleIndex)
	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(static))))
}

func (h *Handler) handleIndex(w http.ResponseWriter, r *http.Request) {
	h.once.Do(func() {
		h.page, h.err = renderPage()
	})

	if h.err != nil {
		slog.ErrorContext(r.Context(), "error rendering page", "error", h.err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(h.page)
}

func renderPage() ([]byte, error) {
	tmpl, err := template.ParseFS(assets, "assets/index.html")

	if err != nil {
		return nil, err
	}

	description, err := renderMarkdown("assets/description.md")

	if err != nil {
		return nil, err
	}

	params := Params{
		Title: "Vietnamese Portrait Generator",
		Base:  "/",

		DownloadName: "vietnamese-portrait.png",

		Description: description,
	}

	var data bytes.Buffer

	if err := tmpl.Execute(&data, params); err != nil {
		return nil, err
	}

	return data.Bytes(), nil
}

func renderMarkdown(name string) (template.HTML, error) {
	source, err := assets.ReadFile(name)

	if err != nil {
		return "", err
	}

	var html bytes.Buffer

	if err := goldmark.Convert(source, &html); err != nil {
		return "", err
	}

	// assets are embedded at build time, the markdown is trusted
	return template.HTML(html.String()), nil
}
