package api

import (
	"log"
	"net/http"

	"github.com/gorilla/mux"

	"SalesIngest/api/constants"
)

// Route is one endpoint a service mounts on the shared router.
type Route struct {
	Name    string
	Method  string
	Path    string
	Handler http.Handler
}

func NewRouter(routes ...Route) *mux.Router {
	router := mux.NewRouter()
	router.HandleFunc("/health", HealthHandler).Methods(http.MethodGet)
	for _, rt := range routes {
		router.Handle(rt.Path, rt.Handler).Methods(rt.Method).Name(rt.Name)
	}
	router.Use(Recover, AccessLog)
	router.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		RespondWithError(w, http.StatusMethodNotAllowed, constants.ErrMethodNotAllowed)
	})
	router.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log.Printf("[ERROR] %s from %s (route not found)", r.URL.Path, extractClientIP(r))
		RespondWithError(w, http.StatusNotFound, constants.ErrRouteNotFound)
	})
	return router
}

func HealthHandler(w http.ResponseWriter, r *http.Request) {
	RespondWithJSON(w, http.StatusOK, map[string]interface{}{"success": true, "status": "ok"})
}
