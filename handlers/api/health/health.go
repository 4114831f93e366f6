package health

import (
	"net/http"

	"github.com/go-chi/render"
)

// StoreReporter exposes the supervised store connection state.
type StoreReporter interface {
	Connected() bool
}

type Status struct {
	Status         string `json:"status"`
	Environment    string `json:"environment"`
	StoreConnected bool   `json:"storeConnected"`
}

// Handle reports process liveness. It answers 200 regardless of store
// state; the body says whether the store is reachable.
func Handle(environment string, store StoreReporter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		render.Status(r, http.StatusOK)
		render.JSON(w, r, Status{
			Status:         "healthy",
			Environment:    environment,
			StoreConnected: store.Connected(),
		})
	}
}
