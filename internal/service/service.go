package service

import (
	"github.com/nbataa/agentmart/internal/handlers/admin"
	"github.com/nbataa/agentmart/internal/handlers/auth"
	"github.com/nbataa/agentmart/internal/handlers/bundles"
	"github.com/nbataa/agentmart/internal/handlers/cards"
	"github.com/nbataa/agentmart/internal/handlers/orders"
	"github.com/nbataa/agentmart/internal/handlers/rewards"

	pkgauth "github.com/nbataa/agentmart/pkg/auth"

	"github.com/nbataa/agentmart/internal/notification"
	"github.com/nbataa/agentmart/internal/pg"
	"github.com/nbataa/agentmart/internal/repo"
	authservice "github.com/nbataa/agentmart/internal/service/authservice"
	bundleservice "github.com/nbataa/agentmart/internal/service/bundleservice"
	cardservice "github.com/nbataa/agentmart/internal/service/cardservice"
	orderservice "github.com/nbataa/agentmart/internal/service/orderservice"
	reportservice "github.com/nbataa/agentmart/internal/service/reportservice"
	rewardservice "github.com/nbataa/agentmart/internal/service/rewardservice"
	settingsservice "github.com/nbataa/agentmart/internal/service/settingsservice"
	settlementservice "github.com/nbataa/agentmart/internal/service/settlementservice"
)

type Services struct {
	AuthService       auth.Service
	OrderService      orders.Service
	BundleService     bundles.Service
	CardService       cards.Service
	RewardService     rewards.Service
	CardAdminService  admin.CardService
	SettingsService   admin.SettingsService
	SettlementService admin.SettlementService
}

func New(repo *repo.Repositories, txManager pg.TXManager, notifier notification.Dispatcher, settingsCache settingsservice.Cache) *Services {
	settingsService := settingsservice.New(repo.SettingsRepo, settingsCache)
	reportService := reportservice.New(settingsService)
	cardService := cardservice.New(repo.CardRepo, repo.UserRepo, txManager)
	orderService := orderservice.New(repo.OrderRepo, repo.ReportRepo, reportService, settingsService, txManager, notifier)
	bundleService := bundleservice.New(repo.BundleRepo, repo.ReportRepo, reportService, txManager, notifier)
	settlementService := settlementservice.New(repo.OrderRepo, repo.BundleRepo, repo.ReportRepo, cardService, repo.UserRepo, txManager, notifier)
	rewardService := rewardservice.New(repo.RewardRepo, repo.UserRepo, txManager, notifier)
	authService := authservice.New(repo.UserRepo, cardService, &pkgauth.HashService{}, &pkgauth.JWTService{})

	return &Services{
		AuthService:       authService,
		OrderService:      orderService,
		BundleService:     bundleService,
		CardService:       cardService,
		CardAdminService:  cardService,
		RewardService:     rewardService,
		SettingsService:   settingsService,
		SettlementService: settlementService,
	}
}
