package web

import (
	"crypto/rand"
	"encoding/json"
	"errors"
	"fmt"
	"github.com/ZilDuck/nft-test-market/internal/entity"
	"github.com/ZilDuck/nft-test-market/internal/market"
	"github.com/ZilDuck/nft-test-market/internal/notification"
	"github.com/aymerick/raymond"
	"github.com/gorilla/csrf"
	"github.com/gorilla/mux"
	"github.com/microcosm-cc/bluemonday"
	"go.uber.org/zap"
	"net/http"
)

const csrfField = "csrf_token"

type Config struct {
	IpfsGateway  string
	// CsrfKey signs the csrf cookie, 32 bytes. A random key is generated when empty.
	CsrfKey      []byte
	SecureCookie bool
}

type Server struct {
	market  *market.Market
	center  notification.Center
	page    *raymond.Template
	policy  *bluemonday.Policy
	gateway string
	csrf    mux.MiddlewareFunc
}

func NewServer(market *market.Market, center notification.Center, cfg Config) (Server, error) {
	tpl, err := parsePage()
	if err != nil {
		return Server{}, err
	}

	key := cfg.CsrfKey
	if len(key) == 0 {
		key = make([]byte, 32)
		if _, err := rand.Read(key); err != nil {
			return Server{}, err
		}
	}

	protect := csrf.Protect(
		key,
		csrf.FieldName(csrfField),
		csrf.Path("/"),
		csrf.Secure(cfg.SecureCookie),
		csrf.SameSite(csrf.SameSiteStrictMode),
		csrf.ErrorHandler(csrfErrorHandler()),
	)

	return Server{market, center, tpl, bluemonday.StrictPolicy(), cfg.IpfsGateway, protect}, nil
}

func (s Server) Router() *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/health", s.handleHealth).Methods("GET")

	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/session", s.handleGetSession).Methods("GET")
	api.HandleFunc("/assets", s.handleGetAssets).Methods("GET")
	api.HandleFunc("/notifications", s.handleGetNotifications).Methods("GET")
	api.HandleFunc("/notifications/{id}", s.handleDismissNotification).Methods("DELETE")

	// the page and its forms share a csrf token
	forms := r.NewRoute().Subrouter()
	forms.Use(s.csrf)
	forms.HandleFunc("/", s.handleHomepage).Methods("GET")
	forms.HandleFunc("/login", s.handleLogin).Methods("POST")
	forms.HandleFunc("/assets/{contractAddr}/{tokenId}/buy", s.handleBuy).Methods("POST")

	r.NotFoundHandler = notFoundHandler()

	return r
}

func (s Server) handleHomepage(w http.ResponseWriter, r *http.Request) {
	body, err := s.page.Exec(newPage(s.market.View(), s.policy, s.gateway, csrf.Token(r)))
	if err != nil {
		zap.L().With(zap.Error(err)).Error("Failed to render market page")
		http.Error(w, "Failed to render page", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = fmt.Fprint(w, body)
}

func (s Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = fmt.Fprintf(w, "OK")
}

func (s Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	if _, err := s.market.Connect(r.Context()); err != nil {
		zap.L().With(zap.Error(err)).Warn("Login failed")
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s Server) handleBuy(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	contractAddr := vars["contractAddr"]
	tokenId := vars["tokenId"]

	_, err := s.market.Buy(r.Context(), tokenId, contractAddr)
	switch {
	case errors.Is(err, market.ErrAssetNotFound):
		http.Error(w, "Asset not available", http.StatusNotFound)
		return
	case errors.Is(err, market.ErrPurchaseInProgress):
		http.Error(w, "Purchase already in progress", http.StatusConflict)
		return
	case err != nil:
		zap.L().With(zap.Error(err), zap.String("contract", contractAddr), zap.String("tokenId", tokenId)).Warn("Purchase failed")
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

type sessionResponse struct {
	Address       string `json:"address"`
	Authenticated bool   `json:"authenticated"`
}

func (s Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	address := s.market.Address()
	writeJson(w, http.StatusOK, sessionResponse{address, address != ""})
}

func (s Server) handleGetAssets(w http.ResponseWriter, r *http.Request) {
	writeJson(w, http.StatusOK, s.market.Assets())
}

func (s Server) handleGetNotifications(w http.ResponseWriter, r *http.Request) {
	notifications := s.center.All()
	if notifications == nil {
		notifications = []entity.Notification{}
	}
	writeJson(w, http.StatusOK, notifications)
}

func (s Server) handleDismissNotification(w http.ResponseWriter, r *http.Request) {
	if err := s.center.Dismiss(mux.Vars(r)["id"]); err != nil {
		http.Error(w, "Notification not found", http.StatusNotFound)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func writeJson(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		zap.L().With(zap.Error(err)).Warn("Failed to encode response")
	}
}

func csrfErrorHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		zap.L().With(
			zap.Error(csrf.FailureReason(r)),
			zap.String("path", r.URL.Path),
			zap.String("origin", r.Header.Get("Origin")),
		).Warn("Rejected request without a valid csrf token")
		http.Error(w, "Forbidden", http.StatusForbidden)
	})
}

func notFoundHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = fmt.Fprintf(w, "Page not found")
	})
}
