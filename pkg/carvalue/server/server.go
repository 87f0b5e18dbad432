package server

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/gorilla/mux"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "github.com/nekruzvatanshoev/carvalue/docs" // swagger docs
	"github.com/nekruzvatanshoev/carvalue/pkg/carvalue/dataset"
	"github.com/nekruzvatanshoev/carvalue/pkg/carvalue/logging"
	"github.com/nekruzvatanshoev/carvalue/pkg/carvalue/model"
	"github.com/nekruzvatanshoev/carvalue/pkg/carvalue/money"
	"github.com/nekruzvatanshoev/carvalue/pkg/carvalue/selector"
)

// Options carries the loaded assets the handlers share. Everything in it is
// read-only once the server starts.
type Options struct {
	Addr           string
	AppName        string
	Data           *dataset.Accessor
	Selector       *selector.Selector
	Model          model.Model
	Money          *money.Formatter
	Logger         logging.Logger
	AllowedOrigins []string
}

// NewHTTPServer returns a new HTTP server
func NewHTTPServer(opts Options) *http.Server {
	return &http.Server{
		Addr:         opts.Addr,
		Handler:      NewHandler(opts),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
}

// NewHandler builds the router with its middleware chain.
func NewHandler(opts Options) http.Handler {
	server := newHTTPServer(opts)

	r := mux.NewRouter()
	r.HandleFunc("/", server.Home).Methods(http.MethodGet)
	r.HandleFunc("/analysis", server.Analysis).Methods(http.MethodGet)
	r.HandleFunc("/prediction", server.PredictionForm).Methods(http.MethodGet)
	r.HandleFunc("/prediction", server.Predict).Methods(http.MethodPost)
	r.HandleFunc("/health", server.Health).Methods(http.MethodGet)
	r.PathPrefix("/swagger/").Handler(httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
		httpSwagger.DeepLinking(true),
		httpSwagger.DocExpansion("none"),
	))

	// Wrapped outside the router: unmatched 404/405 requests are traced and
	// recovered too, and preflights never reach route matching.
	var handler http.Handler = middleware.Recoverer(r)
	handler = cors.Handler(cors.Options{
		AllowedOrigins: opts.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", traceHeader},
		ExposedHeaders: []string{traceHeader},
		MaxAge:         300,
	})(handler)
	return LoggerMiddleware(server.log)(handler)
}

type httpServer struct {
	appName  string
	data     *dataset.Accessor
	selector *selector.Selector
	model    model.Model
	money    *money.Formatter
	log      logging.Logger
}

func newHTTPServer(opts Options) *httpServer {
	logger := opts.Logger
	if logger == nil {
		logger = logging.Nop()
	}
	appName := opts.AppName
	if appName == "" {
		appName = "carvalue"
	}
	return &httpServer{
		appName:  appName,
		data:     opts.Data,
		selector: opts.Selector,
		model:    opts.Model,
		money:    opts.Money,
		log:      logger.WithFields(logging.Fields{"component": "http"}),
	}
}
