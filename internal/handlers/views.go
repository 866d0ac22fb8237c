package handlers

import (
	"encoding/json"
	"net/http"

	"dustbin-dashboard/internal/store"
	"dustbin-dashboard/internal/views"
	"dustbin-dashboard/pkg/utils"
)

// TableResponse is the table view: the applied settings and the matching rows
type TableResponse struct {
	State views.TableState `json:"state"`
	Rows  []views.TableRow `json:"rows"`
	Total int              `json:"total"`
}

// GetTable returns the sorted and filtered table view
// Query params:
//   - sort: id (default), serialNumber, fillPercentage
//   - dir: asc (default), desc
//   - filter: substring of the serial number (any case) or of the fill percentage
//
// GET /api/bins/table
func GetTable(st *store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		state, err := views.ParseTableState(q.Get("sort"), q.Get("dir"), q.Get("filter"))
		if err != nil {
			utils.RespondError(w, http.StatusBadRequest, err.Error())
			return
		}

		bins := st.Snapshot()
		utils.Success(w, TableResponse{
			State: state,
			Rows:  state.Rows(bins),
			Total: len(bins),
		})
	}
}

// GetStatistics returns the aggregate statistics view
// GET /api/statistics
func GetStatistics(st *store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		utils.Success(w, views.ComputeStatistics(st.Snapshot()))
	}
}

// GetMap returns the map viewport and a GeoJSON marker per bin
// GET /api/map
func GetMap(st *store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		utils.Success(w, views.BuildMapView(st.Snapshot()))
	}
}

type viewResponse struct {
	View  views.Mode   `json:"view"`
	Modes []views.Mode `json:"modes"`
}

type selectViewRequest struct {
	View string `json:"view"`
}

// GetView returns the active presentation mode
// GET /api/view
func GetView(sel *views.Selector) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		utils.Success(w, viewResponse{View: sel.Current(), Modes: views.Modes})
	}
}

// SelectView switches the active presentation mode
// PUT /api/view
func SelectView(sel *views.Selector) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req selectViewRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			utils.RespondError(w, http.StatusBadRequest, "Invalid request body")
			return
		}

		mode, err := views.ParseMode(req.View)
		if err != nil {
			utils.RespondError(w, http.StatusBadRequest, err.Error())
			return
		}
		sel.Select(mode)

		utils.Success(w, viewResponse{View: sel.Current(), Modes: views.Modes})
	}
}
