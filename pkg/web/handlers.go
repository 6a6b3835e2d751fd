package web

import (
	"errors"
	"net/http"
	"net/url"

	"github.com/starfederation/datastar-go/datastar"

	"github.com/mpapenbr/race-results-hub/log"
	"github.com/mpapenbr/race-results-hub/pkg/config"
	"github.com/mpapenbr/race-results-hub/pkg/results"
	"github.com/mpapenbr/race-results-hub/pkg/route"
	"github.com/mpapenbr/race-results-hub/pkg/utils/broadcast"
)

const pageTitle = "Race Results Hub"

// Handlers provides the HTTP handlers of the results viewer
type Handlers struct {
	state   *route.State
	updates broadcast.Server[int]
}

// NewHandlers creates the handlers. updates may be nil if the manifest
// is not watched.
func NewHandlers(state *route.State, updates broadcast.Server[int]) *Handlers {
	return &Handlers{state: state, updates: updates}
}

type searchSignals struct {
	Search string `json:"search"`
}

type driverSignals struct {
	Driver string `json:"driver"`
}

// Index renders the race list or, if the race parameter is present,
// the race detail. A race which cannot be loaded falls back to the list.
func (h *Handlers) Index(w http.ResponseWriter, r *http.Request) {
	l := log.GetFromContext(r.Context())
	q := r.URL.Query()
	target := h.state.Resolve(q.Get(config.RaceParam))
	data := pageData{Title: pageTitle, DatastarURL: datastarScript}

	if target.View == route.ViewDetail {
		detail, err := h.loadDetail(r, target, q.Get("driver"))
		if err == nil {
			data.Title = detail.Title
			data.Detail = detail
			render(w, l, data)
			return
		}
		if !errors.Is(err, route.ErrFallbackToList) {
			l.Error("unexpected load error", log.ErrorField(err))
		}
		l.Debug("race not available, showing list", log.String("slug", target.Slug))
		data.StatusMessage = fallbackMessage(target.Slug)
	}
	search := q.Get("q")
	data.List = listData{
		Search: search,
		Races:  h.state.Search(r.Context(), search),
		Watch:  h.updates != nil,
	}
	render(w, l, data)
}

func (h *Handlers) loadDetail(
	r *http.Request, target route.Target, driver string,
) (*detailData, error) {
	rec, err := h.state.Load(r.Context(), target.Filename)
	if err != nil {
		return nil, err
	}
	d := results.Build(rec)
	d.FilterRows(driver)
	title := target.Slug
	if target.Race != nil {
		title = target.Race.Title()
	}
	return &detailData{
		Title:     title,
		Slug:      target.Slug,
		FilterURL: "/race/filter?" + url.Values{config.RaceParam: []string{target.Slug}}.Encode(),
		Driver:    driver,
		Detail:    d,
	}, nil
}

// SearchSSE re-renders the race list for the search signal.
// Every request replaces the complete list.
func (h *Handlers) SearchSSE(w http.ResponseWriter, r *http.Request) {
	var signals searchSignals
	if err := datastar.ReadSignals(r, &signals); err != nil {
		sse := datastar.NewSSE(w, r)
		_ = sse.ConsoleError(err)
		return
	}
	sse := datastar.NewSSE(w, r)
	races := h.state.Search(r.Context(), signals.Search)
	patch(sse, log.GetFromContext(r.Context()), "raceList", listData{Search: signals.Search, Races: races})
}

// UpdatesSSE keeps the connection open and bumps the manifestVersion
// signal after every manifest reload. The race list requests a fresh
// search result on that change.
func (h *Handlers) UpdatesSSE(w http.ResponseWriter, r *http.Request) {
	if h.updates == nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	sse := datastar.NewSSE(w, r)
	ch := h.updates.Subscribe()
	defer h.updates.CancelSubscription(ch)
	for {
		select {
		case <-r.Context().Done():
			return
		case v, ok := <-ch:
			if !ok {
				return
			}
			if err := sse.MarshalAndPatchSignals(map[string]any{"manifestVersion": v}); err != nil {
				log.GetFromContext(r.Context()).Debug("could not patch signals",
					log.ErrorField(err))
				return
			}
		}
	}
}

// DriverFilterSSE re-renders the table body with rows hidden which do not
// match the driver signal. The race file is fetched again, nothing is cached.
func (h *Handlers) DriverFilterSSE(w http.ResponseWriter, r *http.Request) {
	var signals driverSignals
	if err := datastar.ReadSignals(r, &signals); err != nil {
		sse := datastar.NewSSE(w, r)
		_ = sse.ConsoleError(err)
		return
	}
	sse := datastar.NewSSE(w, r)
	target := h.state.Resolve(r.URL.Query().Get(config.RaceParam))
	if target.View != route.ViewDetail {
		return
	}
	rec, err := h.state.Load(r.Context(), target.Filename)
	if err != nil {
		_ = sse.ConsoleError(err)
		return
	}
	d := results.Build(rec)
	d.FilterRows(signals.Driver)
	patch(sse, log.GetFromContext(r.Context()), "tableBody", d)
}

func fallbackMessage(slug string) string {
	return "Race " + slug + " could not be loaded"
}

func (h *Handlers) Healthz(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK"))
}

func patch(sse *datastar.ServerSentEventGenerator, l *log.Logger, name string, data any) {
	fragment, err := renderFragment(name, data)
	if err != nil {
		l.Error("template error", log.String("template", name), log.ErrorField(err))
		_ = sse.ConsoleError(err)
		return
	}
	if err := sse.PatchElements(fragment); err != nil {
		l.Debug("could not patch elements", log.ErrorField(err))
	}
}

func render(w http.ResponseWriter, l *log.Logger, data pageData) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := templates.ExecuteTemplate(w, "base", data); err != nil {
		l.Error("template error", log.ErrorField(err))
	}
}
