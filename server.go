package main

import (
	"html/template"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/mohanad/carpriced/model"
	"github.com/mohanad/carpriced/pricing"
	"github.com/mohanad/carpriced/rates"
	"github.com/mohanad/carpriced/storage"
)

// Server is the HTTP surface: the form page plus the JSON API behind it.
// predictor is nil when the model artifacts could not be loaded; the page
// still renders but the predict endpoint reports the feature as disabled.
type Server struct {
	predictor model.Predictor
	schema    *pricing.Schema
	rateCache *rates.Cache
	store     storage.PredictionStore
	tmpl      *template.Template
}

type ServerOpts struct {
	Predictor model.Predictor
	Schema    *pricing.Schema
	RateCache *rates.Cache
	Store     storage.PredictionStore
}

func NewServer(opts ServerOpts) *Server {
	schema := opts.Schema
	if schema == nil {
		schema = pricing.DefaultSchema()
	}
	return &Server{
		predictor: opts.Predictor,
		schema:    schema,
		rateCache: opts.RateCache,
		store:     opts.Store,
		tmpl:      template.Must(template.New("index").Parse(indexTemplate)),
	}
}

// Handler builds the route mux wrapped with request logging.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.handleIndex)
	mux.HandleFunc("POST /api/predict", s.handlePredict)
	mux.HandleFunc("GET /api/rates", s.handleRates)
	mux.HandleFunc("GET /api/catalog", s.handleCatalog)
	mux.HandleFunc("GET /healthz", s.handleHealthz)
	return logRequests(mux)
}

func logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		log.Debug().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Dur("duration", time.Since(start)).
			Msg("request")
	})
}
