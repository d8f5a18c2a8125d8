package handlers

import (
	"net/http"

	_ "github.com/nbataa/agentmart/docs"
	adminhandlers "github.com/nbataa/agentmart/internal/handlers/admin"
	authhandlers "github.com/nbataa/agentmart/internal/handlers/auth"
	bundlehandlers "github.com/nbataa/agentmart/internal/handlers/bundles"
	cardhandlers "github.com/nbataa/agentmart/internal/handlers/cards"
	imagehandlers "github.com/nbataa/agentmart/internal/handlers/images"
	orderhandlers "github.com/nbataa/agentmart/internal/handlers/orders"
	rewardhandlers "github.com/nbataa/agentmart/internal/handlers/rewards"
	"github.com/nbataa/agentmart/internal/domain"
	"github.com/nbataa/agentmart/internal/service"
	"github.com/nbataa/agentmart/pkg/auth"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"
)

type AuthHandler interface {
	Register(w http.ResponseWriter, r *http.Request)
	Login(w http.ResponseWriter, r *http.Request)
}

type OrderHandler interface {
	CreateOrders(w http.ResponseWriter, r *http.Request)
	GetOrders(w http.ResponseWriter, r *http.Request)
	GetOrder(w http.ResponseWriter, r *http.Request)
	Claim(w http.ResponseWriter, r *http.Request)
	SubmitReport(w http.ResponseWriter, r *http.Request)
	MarkPaid(w http.ResponseWriter, r *http.Request)
	Cancel(w http.ResponseWriter, r *http.Request)
	Archive(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
	SetTrackCode(w http.ResponseWriter, r *http.Request)
}

type BundleHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	GetBundles(w http.ResponseWriter, r *http.Request)
	GetBundle(w http.ResponseWriter, r *http.Request)
	Claim(w http.ResponseWriter, r *http.Request)
	SubmitReport(w http.ResponseWriter, r *http.Request)
	SubmitItemReport(w http.ResponseWriter, r *http.Request)
	MarkPaid(w http.ResponseWriter, r *http.Request)
	Cancel(w http.ResponseWriter, r *http.Request)
	Archive(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
	SetTrackCode(w http.ResponseWriter, r *http.Request)
}

type CardHandler interface {
	GetBalance(w http.ResponseWriter, r *http.Request)
	GetHistory(w http.ResponseWriter, r *http.Request)
	Gift(w http.ResponseWriter, r *http.Request)
}

type RewardHandler interface {
	Request(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Approve(w http.ResponseWriter, r *http.Request)
	Reject(w http.ResponseWriter, r *http.Request)
}

type AdminHandler interface {
	GetSettings(w http.ResponseWriter, r *http.Request)
	UpdateSettings(w http.ResponseWriter, r *http.Request)
	VerifyPayment(w http.ResponseWriter, r *http.Request)
	CancelPayment(w http.ResponseWriter, r *http.Request)
	MarkAgentPaid(w http.ResponseWriter, r *http.Request)
	MarkBundleAgentPaid(w http.ResponseWriter, r *http.Request)
	VerifyBundlePayment(w http.ResponseWriter, r *http.Request)
	CancelBundlePayment(w http.ResponseWriter, r *http.Request)
	Gift(w http.ResponseWriter, r *http.Request)
	GrantToAll(w http.ResponseWriter, r *http.Request)
	RecalculateAgentStats(w http.ResponseWriter, r *http.Request)
}

type ImageHandler interface {
	Upload(w http.ResponseWriter, r *http.Request)
}

type Handlers struct {
	AuthHandler   AuthHandler
	OrderHandler  OrderHandler
	BundleHandler BundleHandler
	CardHandler   CardHandler
	RewardHandler RewardHandler
	AdminHandler  AdminHandler
	ImageHandler  ImageHandler
}

func New(s *service.Services, imageStore imagehandlers.Store) *Handlers {
	return &Handlers{
		AuthHandler:   authhandlers.New(s.AuthService),
		OrderHandler:  orderhandlers.New(s.OrderService),
		BundleHandler: bundlehandlers.New(s.BundleService),
		CardHandler:   cardhandlers.New(s.CardService),
		RewardHandler: rewardhandlers.New(s.RewardService),
		AdminHandler:  adminhandlers.New(s.SettingsService, s.SettlementService, s.CardAdminService),
		ImageHandler:  imagehandlers.New(imageStore),
	}
}

func (h *Handlers) InitRoutes(r chi.Router) chi.Router {
	r.Use(
		middleware.RealIP,
		middleware.Recoverer,
		middleware.Logger,
	)
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("doc.json"),
	))
	r.Route("/api", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", h.AuthHandler.Register)
			r.Post("/login", h.AuthHandler.Login)
		})

		r.Group(func(r chi.Router) {
			r.Use(auth.AuthMiddleware)

			r.Route("/orders", func(r chi.Router) {
				r.Post("/", h.OrderHandler.CreateOrders)
				r.Get("/", h.OrderHandler.GetOrders)
				r.Route("/{id}", func(r chi.Router) {
					r.Get("/", h.OrderHandler.GetOrder)
					r.Delete("/", h.OrderHandler.Delete)
					r.Post("/claim", h.OrderHandler.Claim)
					r.Post("/report", h.OrderHandler.SubmitReport)
					r.Post("/paid", h.OrderHandler.MarkPaid)
					r.Post("/cancel", h.OrderHandler.Cancel)
					r.Post("/archive", h.OrderHandler.Archive)
					r.Put("/track", h.OrderHandler.SetTrackCode)
				})
			})

			r.Route("/bundles", func(r chi.Router) {
				r.Post("/", h.BundleHandler.Create)
				r.Get("/", h.BundleHandler.GetBundles)
				r.Route("/{id}", func(r chi.Router) {
					r.Get("/", h.BundleHandler.GetBundle)
					r.Delete("/", h.BundleHandler.Delete)
					r.Post("/claim", h.BundleHandler.Claim)
					r.Post("/report", h.BundleHandler.SubmitReport)
					r.Post("/items/{itemId}/report", h.BundleHandler.SubmitItemReport)
					r.Post("/paid", h.BundleHandler.MarkPaid)
					r.Post("/cancel", h.BundleHandler.Cancel)
					r.Post("/archive", h.BundleHandler.Archive)
					r.Put("/track", h.BundleHandler.SetTrackCode)
				})
			})

			r.Route("/cards", func(r chi.Router) {
				r.Get("/balance", h.CardHandler.GetBalance)
				r.Get("/history", h.CardHandler.GetHistory)
				r.Post("/gift", h.CardHandler.Gift)
			})

			r.Route("/rewards", func(r chi.Router) {
				r.Post("/", h.RewardHandler.Request)
				r.Get("/", h.RewardHandler.List)
			})

			r.Post("/images", h.ImageHandler.Upload)

			r.Route("/admin", func(r chi.Router) {
				r.Use(auth.RequireRole(domain.RoleAdmin))
				r.Get("/settings", h.AdminHandler.GetSettings)
				r.Put("/settings", h.AdminHandler.UpdateSettings)
				r.Post("/orders/{id}/verify", h.AdminHandler.VerifyPayment)
				r.Post("/orders/{id}/cancel-payment", h.AdminHandler.CancelPayment)
				r.Post("/orders/{id}/agent-paid", h.AdminHandler.MarkAgentPaid)
				r.Post("/bundles/{id}/verify", h.AdminHandler.VerifyBundlePayment)
				r.Post("/bundles/{id}/agent-paid", h.AdminHandler.MarkBundleAgentPaid)
				r.Post("/bundles/{id}/cancel-payment", h.AdminHandler.CancelBundlePayment)
				r.Post("/cards/gift", h.AdminHandler.Gift)
				r.Post("/cards/grant-all", h.AdminHandler.GrantToAll)
				r.Post("/rewards/{id}/approve", h.RewardHandler.Approve)
				r.Post("/rewards/{id}/reject", h.RewardHandler.Reject)
				r.Post("/agents/recalculate-stats", h.AdminHandler.RecalculateAgentStats)
			})
		})
	})

	return r
}
