package web

import (
	"embed"
	"io/fs"
	"net/http"
)

//go:embed static/*
var staticFS embed.FS

// pages maps clean URLs to the embedded HTML files.
var pages = map[string]string{
	"/":              "settings.html",
	"/index.html":    "settings.html",
	"/settings":      "settings.html",
	"/settings.html": "settings.html",
	"/login":         "login.html",
	"/login.html":    "login.html",
}

// StaticHandler serves the embedded settings page, login page and assets.
func StaticHandler() http.Handler {
	sub, _ := fs.Sub(staticFS, "static")
	fileServer := http.FileServer(http.FS(sub))

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if name, ok := pages[r.URL.Path]; ok {
			data, err := fs.ReadFile(sub, name)
			if err != nil {
				http.NotFound(w, r)
				return
			}
			w.Header().Set("Content-Type", "text/html; charset=utf-8")
			w.Write(data)
			return
		}
		fileServer.ServeHTTP(w, r)
	})
}
