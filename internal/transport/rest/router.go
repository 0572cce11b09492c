package rest

import (
	"net/http"

	_ "audiosurvey/docs"
	"audiosurvey/internal/service"
	"audiosurvey/internal/transport/rest/handler"
	"audiosurvey/internal/transport/rest/middleware"
	"audiosurvey/internal/transport/ws"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"
	"github.com/swaggo/swag"
)

// Container holds all dependencies for the router
type Container struct {
	SurveyService  *service.SurveyService
	TokenService   *service.TokenService
	Renderer       handler.PageRenderer
	WSHub          *ws.Hub
	AudioDir       string
	AllowedOrigins string
	Log            zerolog.Logger
}

// NewRouter creates the router with all endpoints
func NewRouter(c *Container) http.Handler {
	r := mux.NewRouter()

	// Initialize handlers
	pageHandler := handler.NewPageHandler(c.SurveyService, c.Renderer, c.Log)
	surveyHandler := handler.NewSurveyHandler(c.SurveyService)
	wsHandler := ws.NewHandler(c.WSHub, c.TokenService, c.SurveyService, c.Log)

	// Initialize middleware
	authMW := middleware.NewAuthMiddleware(c.TokenService)

	r.Use(middleware.AccessLog(c.Log))
	r.Use(corsMiddleware(c.AllowedOrigins))

	// Survey page and its audio clips
	r.HandleFunc("/", pageHandler.Index).Methods("GET")
	r.PathPrefix("/audio/").Handler(http.StripPrefix("/audio/", http.FileServer(http.Dir(c.AudioDir)))).Methods("GET", "HEAD")

	// Health check
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	}).Methods("GET")

	// OpenAPI document
	r.HandleFunc("/swagger/doc.json", func(w http.ResponseWriter, r *http.Request) {
		doc, err := swag.ReadDoc()
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(doc))
	}).Methods("GET")

	// API v1 routes
	v1 := r.PathPrefix("/v1").Subrouter()

	// Public routes
	v1.HandleFunc("/questions", surveyHandler.Questions).Methods("GET", "OPTIONS")
	v1.HandleFunc("/sessions", surveyHandler.Create).Methods("POST", "OPTIONS")

	// WebSocket route (token in query param)
	v1.HandleFunc("/ws/sessions/{id}", wsHandler.SessionWS).Methods("GET")

	// Session routes (require a token for that session)
	v1.Handle("/sessions/{id}", authMW.RequireSession(http.HandlerFunc(surveyHandler.Get))).Methods("GET", "OPTIONS")
	sessionRoutes := v1.PathPrefix("/sessions/{id}").Subrouter()
	sessionRoutes.Use(authMW.RequireSession)

	sessionRoutes.HandleFunc("/answers/{questionId}", surveyHandler.Answer).Methods("PUT", "OPTIONS")
	sessionRoutes.HandleFunc("/playback/ended", surveyHandler.Ended).Methods("POST", "OPTIONS")
	sessionRoutes.HandleFunc("/playback/{questionId}", surveyHandler.Toggle).Methods("POST", "OPTIONS")
	sessionRoutes.HandleFunc("/submit", surveyHandler.Submit).Methods("POST", "OPTIONS")
	sessionRoutes.HandleFunc("/restart", surveyHandler.Restart).Methods("POST", "OPTIONS")

	return r
}

func corsMiddleware(allowedOrigins string) mux.MiddlewareFunc {
	if allowedOrigins == "" {
		allowedOrigins = "*"
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Access-Control-Allow-Origin", allowedOrigins)
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

			if r.Method == "OPTIONS" {
				w.WriteHeader(http.StatusOK)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
