package main

import (
	"html/template"
	"io/fs"
	"net/http"
	"net/url"
	"strconv"

	"github.com/tunaaoguzhann/pow-captcha/core"
	"github.com/tunaaoguzhann/pow-captcha/web"
)

var pages = template.Must(template.ParseFS(web.Templates, "templates/*.html"))

type pageData struct {
	Script string
}

func staticHandler() http.Handler {
	sub, err := fs.Sub(web.Static, "static")
	if err != nil {
		panic(err)
	}
	return http.StripPrefix("/static/", http.FileServer(http.FS(sub)))
}

// handleChallengePage issues a challenge and serves the iframe page that
// solves it in the browser.
func handleChallengePage(manager *core.Manager, defaultDifficulty int) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		difficulty := defaultDifficulty
		if v := r.URL.Query().Get("difficulty"); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil {
				http.Error(w, "invalid difficulty", http.StatusBadRequest)
				return
			}
			difficulty = n
		}

		c, err := manager.Issue(r.Context(), difficulty)
		if err != nil {
			writeError(w, err)
			return
		}
		q := url.Values{
			"challenge":  {c.ID.String()},
			"prefix":     {c.Prefix},
			"difficulty": {strconv.Itoa(c.Difficulty)},
			"timestamp":  {strconv.FormatInt(c.IssuedAt.Unix(), 10)},
		}
		renderPage(w, "challenge.html", "/static/pow.js?"+q.Encode())
	}
}

// handleVerifyPage redeems the solution the iframe navigated with and
// serves a page that posts the token to the embedding window.
func handleVerifyPage(manager *core.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		res, err := manager.Verify(r.Context(), q.Get("challenge"), q.Get("nonce"), q.Get("hash"))
		if err != nil {
			writeError(w, err)
			return
		}
		if res.Status != core.StatusOK {
			http.Error(w, "invalid solution", http.StatusBadRequest)
			return
		}
		token := url.Values{"token": {res.Token.ID.String()}}
		renderPage(w, "verify.html", "/static/pow.js?"+token.Encode())
	}
}

func renderPage(w http.ResponseWriter, name, script string) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	if err := pages.ExecuteTemplate(w, name, pageData{Script: script}); err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}
