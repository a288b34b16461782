package main

import (
	"net/http"

	"github.com/AdamBeresnev/tournament-registration/internal/handler"
	"github.com/AdamBeresnev/tournament-registration/internal/middleware"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
)

func newRouter(svc handler.TournamentRegistrar, store handler.Pinger) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RequestLogger)
	r.Use(chimiddleware.Recoverer)
	// "/tournaments/" and "/tournaments" resolve to the same route
	r.Use(chimiddleware.StripSlashes)

	r.Get("/", handler.Welcome)
	r.Get("/healthz", handler.Health(store))

	r.Mount("/tournaments", handler.NewTournamentHandler(svc).Routes())

	return r
}
