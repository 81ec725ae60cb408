package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/taiwoajasa245/gratitude-api/internal/gratitude"
	"github.com/taiwoajasa245/gratitude-api/internal/scripture"
	"github.com/taiwoajasa245/gratitude-api/pkg/response"
)

func (s *Server) RegisterRoutes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(RequestLogger(s.log))
	r.Use(middleware.Recoverer)
	// "/gratitude/" and "/gratitude" reach the same handler
	r.Use(middleware.StripSlashes)

	// the data is non-sensitive demo content, any origin may call in
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		response.Error(w, http.StatusNotFound, "Route not found", r.URL.Path)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		response.Error(w, http.StatusMethodNotAllowed, "Method not allowed", r.Method)
	})

	r.Get("/", s.ServerIsWorking)

	s.loadGratitudeRoutes(r)
	s.loadScriptureRoutes(r)

	return r
}

// ServerIsWorking reports liveness only; it never touches storage.
func (s *Server) ServerIsWorking(w http.ResponseWriter, r *http.Request) {
	response.Success(w, map[string]string{
		"status":  "ok",
		"message": "API is running!",
	})
}

func (s *Server) loadGratitudeRoutes(router chi.Router) {
	gratitudeRepo := gratitude.NewRepository(s.db)
	gratitudeService := gratitude.NewService(gratitudeRepo, s.log.Named("gratitude"))
	gratitudeHandler := gratitude.NewHandler(gratitudeService, s.log.Named("gratitude"))

	router.Route("/gratitude", func(r chi.Router) {
		r.Post("/", gratitudeHandler.CreateNoteHandler)
		r.Get("/", gratitudeHandler.ListNotesHandler)
		r.Delete("/{id}", gratitudeHandler.DeleteNoteHandler)
	})

	// reset only clears gratitude notes
	router.Delete("/reset", gratitudeHandler.ResetHandler)
}

func (s *Server) loadScriptureRoutes(router chi.Router) {
	scriptureRepo := scripture.NewRepository(s.db)
	scriptureService := scripture.NewService(scriptureRepo, s.log.Named("scripture"))
	scriptureHandler := scripture.NewHandler(scriptureService, s.log.Named("scripture"))

	router.Route("/scriptures", func(r chi.Router) {
		r.Post("/", scriptureHandler.CreateScriptureHandler)
		r.Get("/", scriptureHandler.ListScripturesHandler)
		r.Delete("/{id}", scriptureHandler.DeleteScriptureHandler)
	})
}
