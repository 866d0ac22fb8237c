package handlers

import (
	"bytes"
	"html/template"
	"log"
	"net/http"
	"net/url"

	"dustbin-dashboard/internal/store"
	"dustbin-dashboard/internal/views"
	"dustbin-dashboard/pkg/utils"
)

var dashboardTmpl = template.Must(template.New("page").Parse(tmplDashboard))

type tab struct {
	Mode   views.Mode
	Label  string
	Active bool
}

type tableHeader struct {
	Label     string
	Href      string
	Active    bool
	Direction views.Direction
}

type dashboardData struct {
	View views.Mode
	Tabs []tab

	Statistics views.Statistics

	Table   views.TableState
	Headers []tableHeader
	Rows    []views.TableRow

	CenterLat   float64
	CenterLng   float64
	Zoom        int
	TileURL     string
	Attribution string
}

var tableColumns = []struct {
	field views.SortField
	label string
}{
	{views.SortByID, "ID"},
	{views.SortBySerialNumber, "Serial Number"},
	{views.SortByFillPercentage, "Fill Percentage"},
}

func tableHref(s views.TableState) string {
	q := url.Values{}
	q.Set("view", string(views.ModeTable))
	q.Set("sort", string(s.Field))
	q.Set("dir", string(s.Direction))
	if s.Filter != "" {
		q.Set("filter", s.Filter)
	}
	return "?" + q.Encode()
}

func headers(state views.TableState) []tableHeader {
	out := make([]tableHeader, len(tableColumns))
	for i, col := range tableColumns {
		out[i] = tableHeader{
			Label:     col.label,
			Href:      tableHref(state.Toggle(col.field)),
			Active:    state.Field == col.field,
			Direction: state.Direction,
		}
	}
	return out
}

// Dashboard renders the single page dashboard. A ?view= query picks the mode shown by
// this page only; without it the page shows the shared active mode. Switching the shared
// mode goes through PUT /api/view or the websocket.
// GET /
func Dashboard(st *store.Store, sel *views.Selector) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()

		current := sel.Current()
		if v := q.Get("view"); v != "" {
			mode, err := views.ParseMode(v)
			if err != nil {
				utils.RespondError(w, http.StatusBadRequest, err.Error())
				return
			}
			current = mode
		}

		state, err := views.ParseTableState(q.Get("sort"), q.Get("dir"), q.Get("filter"))
		if err != nil {
			utils.RespondError(w, http.StatusBadRequest, err.Error())
			return
		}

		data := dashboardData{
			View:        current,
			Table:       state,
			CenterLat:   views.CenterLat,
			CenterLng:   views.CenterLng,
			Zoom:        views.DefaultZoom,
			TileURL:     views.TileURL,
			Attribution: views.TileAttribution,
		}
		for _, m := range views.Modes {
			data.Tabs = append(data.Tabs, tab{Mode: m, Label: m.Label(), Active: m == current})
		}

		bins := st.Snapshot()
		switch current {
		case views.ModeStatistics:
			data.Statistics = views.ComputeStatistics(bins)
		case views.ModeTable:
			data.Headers = headers(state)
			data.Rows = state.Rows(bins)
		}

		var buf bytes.Buffer
		if err := dashboardTmpl.ExecuteTemplate(&buf, "dashboard", data); err != nil {
			log.Printf("❌ [DASHBOARD] Template error: %v", err)
			http.Error(w, "Failed to render dashboard", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		buf.WriteTo(w)
	}
}
