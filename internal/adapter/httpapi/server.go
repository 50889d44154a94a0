package httpapi

import (
	"encoding/json"
	"net/http"
	"net/url"

	"github.com/example/laundry-storefront/internal/usecase"
	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

type Server struct {
	Router    *mux.Router
	UCOrders  usecase.GetOrdersByOwner
	UCCatalog usecase.GetCatalog
	Logger    *zap.Logger
}

func NewServer(orders usecase.GetOrdersByOwner, catalog usecase.GetCatalog, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Server{Router: mux.NewRouter().UseEncodedPath(), UCOrders: orders, UCCatalog: catalog, Logger: logger}
	s.Router.HandleFunc("/api/catalog", s.handleCatalog).Methods(http.MethodGet)
	s.Router.HandleFunc("/api/orders/{owner}", s.handleOrders).Methods(http.MethodGet)
	s.Router.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}).Methods(http.MethodGet)
	return s
}

func (s *Server) handleOrders(w http.ResponseWriter, r *http.Request) {
	owner, err := url.PathUnescape(mux.Vars(r)["owner"])
	if err != nil {
		http.Error(w, "bad owner", http.StatusBadRequest)
		return
	}
	writeJSON(w, s.UCOrders.Execute(owner))
}

func (s *Server) handleCatalog(w http.ResponseWriter, r *http.Request) {
	c, err := s.UCCatalog.Execute(r.Context())
	if err != nil {
		s.Logger.Error("list catalog", zap.Error(err))
		http.Error(w, "catalog unavailable", http.StatusServiceUnavailable)
		return
	}
	writeJSON(w, c)
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}
