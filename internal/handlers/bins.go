package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	"dustbin-dashboard/internal/models"
	"dustbin-dashboard/internal/store"
	"dustbin-dashboard/pkg/utils"

	"github.com/go-chi/chi/v5"
)

func binID(r *http.Request) (int, bool) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		return 0, false
	}
	return id, true
}

// GetBins returns the current snapshot in store order
// GET /api/bins
func GetBins(st *store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		utils.Success(w, st.Snapshot())
	}
}

// GetBin returns a single bin
// GET /api/bins/{id}
func GetBin(st *store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := binID(r)
		if !ok {
			utils.RespondError(w, http.StatusBadRequest, "Invalid bin id")
			return
		}

		bin, found := st.Get(id)
		if !found {
			utils.RespondError(w, http.StatusNotFound, "Bin not found")
			return
		}
		utils.Success(w, bin)
	}
}

// CreateBin adds a bin from the add-dustbin form
// POST /api/bins
func CreateBin(st *store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req models.CreateBinRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			utils.RespondError(w, http.StatusBadRequest, "Invalid request body")
			return
		}

		bin, err := st.Add(req)
		if err != nil {
			if errors.Is(err, store.ErrSerialRequired) || errors.Is(err, store.ErrLocationRequired) {
				utils.RespondError(w, http.StatusBadRequest, err.Error())
				return
			}
			log.Printf("❌ [CREATE-BIN] Failed to add bin: %v", err)
			utils.RespondError(w, http.StatusInternalServerError, "Failed to add bin")
			return
		}

		utils.RespondJSON(w, http.StatusCreated, bin)
	}
}

// DeleteBin removes a bin. Unknown ids are not an error.
// DELETE /api/bins/{id}
func DeleteBin(st *store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := binID(r)
		if !ok {
			utils.RespondError(w, http.StatusBadRequest, "Invalid bin id")
			return
		}

		if !st.Remove(id) {
			log.Printf("[DELETE-BIN] Bin %d not found, nothing to remove", id)
		}
		w.WriteHeader(http.StatusNoContent)
	}
}
