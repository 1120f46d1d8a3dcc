package controllers

import (
	"html/template"
	"net/http"
)

var appPage = template.Must(template.New("app").Parse(`<!doctype html>
<html lang="ja">
<head><meta charset="utf-8"><title>{{.Title}}</title></head>
<body><h1>{{.Title}}</h1></body>
</html>
`))

// AppPage renders a minimal server-side page for the registered area. The
// real UI is a separate frontend; these pages exist so the session gate has
// concrete routes to protect.
func AppPage(title string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_ = appPage.Execute(w, struct{ Title string }{Title: title})
	}
}
