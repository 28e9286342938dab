package http

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"

	"go.uber.org/zap"

	"heartbeats/config"
	"heartbeats/ml"
	"heartbeats/nav"
)

//go:embed templates/*.html static/*
var embeddedFiles embed.FS

func parseTemplates() (*template.Template, error) {
	funcMap := template.FuncMap{
		"slug": func(v nav.View) string { return v.Slug() },
	}
	templates, err := template.New("").Funcs(funcMap).ParseFS(embeddedFiles, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}
	return templates, nil
}

func staticFiles() http.Handler {
	sub, err := fs.Sub(embeddedFiles, "static")
	if err != nil {
		// the embed pattern above guarantees the directory exists
		panic(err)
	}
	return http.FileServer(http.FS(sub))
}

// fieldView 表单中一个输入项的渲染数据
type fieldView struct {
	Name        string
	Label       string
	Value       string
	Categorical bool
	Options     []string
}

// banner 页面上的提示信息
type banner struct {
	Kind    string // success | error
	Message string
	Details []string
}

type scanPage struct {
	Fields []fieldView
	Result *banner
}

type contactPage struct {
	Info    config.Contact
	Name    string
	Email   string
	Message string
	Result  *banner
}

type page struct {
	View    nav.View
	Menu    []nav.View
	Scan    scanPage
	Contact contactPage
}

func newScanPage(raw ml.RawFormInput) scanPage {
	fields := make([]fieldView, 0, ml.FeatureCount)
	for _, f := range ml.Fields() {
		fv := fieldView{Name: string(f), Label: f.Label(), Value: raw[f]}
		if table, ok := ml.CodeTableFor(f); ok {
			fv.Categorical = true
			fv.Options = table.Labels()
		}
		fields = append(fields, fv)
	}
	return scanPage{Fields: fields}
}

func (s *Server) newPage(view nav.View) page {
	return page{
		View:    view,
		Menu:    nav.Menu(),
		Scan:    newScanPage(nil),
		Contact: contactPage{Info: s.contact},
	}
}

func (s *Server) render(w http.ResponseWriter, status int, p page) {
	var buf bytes.Buffer
	if err := s.templates.ExecuteTemplate(&buf, "layout.html", p); err != nil {
		s.logger.Error("render page failed", zap.String("view", string(p.View)), zap.Error(err))
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}
