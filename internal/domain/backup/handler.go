package backup

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"livestock-registry/internal/domain/animals"
	"livestock-registry/internal/domain/feedings"
	"livestock-registry/internal/domain/reproduction"
	"livestock-registry/internal/domain/species"
	"livestock-registry/internal/domain/vaccinations"
)

// maxDumpBytes limita el tamaño del dump aceptado en la importación.
const maxDumpBytes = 32 << 20

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/backup", func(rr chi.Router) {
		rr.Get("/export", exportHandler(svc))
		rr.Post("/import", importHandler(svc))
	})
}

func exportHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		dump, err := svc.Export(r.Context())
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Disposition", `attachment; filename="livestock-backup.json"`)
		writeJSON(w, http.StatusOK, dump)
	}
}

func importHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var dump Dump
		dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxDumpBytes))
		if err := dec.Decode(&dump); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		sum, err := svc.Import(r.Context(), dump)
		if err != nil {
			if isInvalidInput(err) {
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, sum)
	}
}

// isInvalidInput agrupa los sentinels de entrada inválida de cada módulo.
func isInvalidInput(err error) bool {
	return errors.Is(err, species.ErrInvalidInput) ||
		errors.Is(err, animals.ErrInvalidInput) ||
		errors.Is(err, vaccinations.ErrInvalidInput) ||
		errors.Is(err, feedings.ErrInvalidInput) ||
		errors.Is(err, reproduction.ErrInvalidInput)
}

// writeJSON está duplicado a propósito en los handlers de cada módulo para no
// crear helpers compartidos antes de tiempo.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
