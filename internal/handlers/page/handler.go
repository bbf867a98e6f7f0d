package page

import (
	"context"
	_ "embed"
	"html/template"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/Nazarious-ucu/weather-lookup/internal/view"
)

const (
	cookieName   = "weather_session"
	templateName = "index.html"
)

//go:embed templates/index.html
var indexHTML string

type weatherLookup interface {
	GetWeather(ctx context.Context, d view.Display) error
}

// Template is the page template; register it with gin.Engine.SetHTMLTemplate.
func Template() *template.Template {
	return template.Must(template.New(templateName).Parse(indexHTML))
}

// Handler serves the weather page. Each visitor gets their own page, tracked by cookie.
type Handler struct {
	lookup   weatherLookup
	sessions *view.Sessions
	ttl      time.Duration
	logger   zerolog.Logger
}

func NewHandler(lookup weatherLookup, sessions *view.Sessions, ttl time.Duration, logger zerolog.Logger) *Handler {
	return &Handler{lookup: lookup, sessions: sessions, ttl: ttl, logger: logger}
}

// Show renders the visitor's page as it currently stands. Visitors without a session
// get the empty page; the session starts with their first search.
func (h *Handler) Show(c *gin.Context) {
	var state view.State
	if cookie, err := c.Cookie(cookieName); err == nil {
		if p, ok := h.sessions.Lookup(cookie); ok {
			state = p.Snapshot()
		}
	}
	c.HTML(http.StatusOK, templateName, state)
}

// Search is the trigger: it takes the submitted city, runs one lookup and sends the
// visitor back to the page.
func (h *Handler) Search(c *gin.Context) {
	p := h.page(c)
	p.SetInput(c.PostForm("city"))

	// The outcome is already rendered into p.
	_ = h.lookup.GetWeather(c.Request.Context(), p)

	c.Redirect(http.StatusSeeOther, "/")
}

func (h *Handler) page(c *gin.Context) *view.Page {
	cookie, _ := c.Cookie(cookieName)
	id, p := h.sessions.Get(cookie)
	if id != cookie {
		h.logger.Debug().
			Str("client_ip", c.ClientIP()).
			Msg("starting new page session")
		c.SetSameSite(http.SameSiteLaxMode)
		c.SetCookie(cookieName, id, int(h.ttl.Seconds()), "/", "", false, true)
	}
	return p
}
