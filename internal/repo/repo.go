package repo

import (
	"github.com/nbataa/agentmart/internal/pg"
	bundlerepo "github.com/nbataa/agentmart/internal/repo/bundle-repo"
	cardrepo "github.com/nbataa/agentmart/internal/repo/card-repo"
	orderrepo "github.com/nbataa/agentmart/internal/repo/order-repo"
	reportrepo "github.com/nbataa/agentmart/internal/repo/report-repo"
	rewardrepo "github.com/nbataa/agentmart/internal/repo/reward-repo"
	settingsrepo "github.com/nbataa/agentmart/internal/repo/settings-repo"
	userrepo "github.com/nbataa/agentmart/internal/repo/user-repo"
)

type Repositories struct {
	UserRepo     *userrepo.Repository
	OrderRepo    *orderrepo.Repository
	BundleRepo   *bundlerepo.Repository
	ReportRepo   *reportrepo.Repository
	CardRepo     *cardrepo.Repository
	RewardRepo   *rewardrepo.Repository
	SettingsRepo *settingsrepo.Repository
}

func New(conn pg.Database, txManager pg.TXManager) *Repositories {
	return &Repositories{
		UserRepo:     userrepo.New(conn),
		OrderRepo:    orderrepo.New(conn),
		BundleRepo:   bundlerepo.New(conn, txManager),
		ReportRepo:   reportrepo.New(conn),
		CardRepo:     cardrepo.New(conn),
		RewardRepo:   rewardrepo.New(conn),
		SettingsRepo: settingsrepo.New(conn),
	}
}
