package server

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"net/http"
	"regexp"
	"sync"

	"github.com/jfmyers9/nowplaying/internal/badge"
	"github.com/rs/zerolog/hlog"
)

// Last.fm usernames: 2-15 characters, starting with a letter.
var usernamePattern = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9_-]{1,14}$`)

// Presenter produces the render model for one badge request.
type Presenter interface {
	Present(ctx context.Context, req badge.Request) (*badge.RenderModel, error)
}

// BadgeHandler renders the SVG badge for a fixed username or the
// {username} path value.
type BadgeHandler struct {
	presenter  Presenter
	renderer   *badge.Renderer
	username   string
	background bool
}

// NewBadgeHandler creates a handler. An empty username reads it from the
// request path. background enables the bg query parameter.
func NewBadgeHandler(presenter Presenter, renderer *badge.Renderer, username string, background bool) *BadgeHandler {
	return &BadgeHandler{
		presenter:  presenter,
		renderer:   renderer,
		username:   username,
		background: background,
	}
}

func (h *BadgeHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	username := h.username
	if username == "" {
		username = r.PathValue("username")
		if !usernamePattern.MatchString(username) {
			http.Error(w, "invalid username", http.StatusBadRequest)
			return
		}
	}

	query := r.URL.Query()
	req := badge.Request{
		Username:  username,
		BarColor:  query.Get("barcolor"),
		TextColor: query.Get("textcolor"),
	}
	if h.background {
		req.Background = query.Get("bg")
	}

	w.Header().Set("Content-Type", "image/svg+xml")
	w.Header().Set("Cache-Control", "no-cache")

	model, err := h.presenter.Present(r.Context(), req)
	if err != nil {
		if err := h.renderer.RenderError(w, badge.NewErrorResult(err)); err != nil {
			hlog.FromRequest(r).Error().Err(err).Msg("Failed to render error badge")
			http.Error(w, "failed to render badge", http.StatusInternalServerError)
		}
		return
	}

	if err := h.renderer.Render(w, model); err != nil {
		hlog.FromRequest(r).Error().Err(err).Msg("Failed to render badge")
		http.Error(w, "failed to render badge", http.StatusInternalServerError)
	}
}

// WelcomeHandler serves the index page.
func WelcomeHandler(username string) http.HandlerFunc {
	body := `Welcome! Visit <a href="/user/rj">/user/{username}</a> to see a user's latest track.`
	if username != "" {
		body = `Welcome! Visit <a href="/now-playing">/now-playing</a> to see the latest track.`
	}
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte(body))
	}
}

func HealthzHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok"))
}

func missingUsernameHandler(w http.ResponseWriter, r *http.Request) {
	http.Error(w, "username required", http.StatusBadRequest)
}

var placeholderPNG = sync.OnceValue(func() []byte {
	img := image.NewRGBA(image.Rect(0, 0, 100, 100))
	draw.Draw(img, img.Bounds(), &image.Uniform{C: color.RGBA{R: 0x30, G: 0x36, B: 0x3d, A: 0xff}}, image.Point{}, draw.Src)

	var buf bytes.Buffer
	_ = png.Encode(&buf, img)
	return buf.Bytes()
})

// PlaceholderHandler serves the cover shown when no artwork resolves.
func PlaceholderHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "public, max-age=86400")
	_, _ = w.Write(placeholderPNG())
}
