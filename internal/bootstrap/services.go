package bootstrap

import (
	"log/slog"

	"github.com/younglafire/fruitfarm/internal/account"
	"github.com/younglafire/fruitfarm/internal/config"
	"github.com/younglafire/fruitfarm/internal/event"
	"github.com/younglafire/fruitfarm/internal/eventlog"
	"github.com/younglafire/fruitfarm/internal/game"
	"github.com/younglafire/fruitfarm/internal/land"
	"github.com/younglafire/fruitfarm/internal/ledger"
	"github.com/younglafire/fruitfarm/internal/market"
	"github.com/younglafire/fruitfarm/internal/server"
	"github.com/younglafire/fruitfarm/internal/sse"
	"github.com/younglafire/fruitfarm/internal/utils"
)

// LoadGameConfig reads the tuning file named by cfg, falling back to defaults when absent
func LoadGameConfig(cfg *config.Config) (config.GameConfig, error) {
	gameCfg, err := config.LoadGameConfig(cfg.GameConfigPath, config.ConfigPathGameSchema)
	if err != nil {
		return gameCfg, err
	}
	slog.Info(LogMsgGameConfigLoaded,
		"path", cfg.GameConfigPath,
		"drops_per_claim", gameCfg.Session.DropsPerClaim,
		"slots", gameCfg.Land.SlotCount,
		"grow_duration", gameCfg.Land.GrowDuration)
	return gameCfg, nil
}

// InitializeServices builds every domain service over repos
func InitializeServices(cfg *config.Config, gameCfg config.GameConfig, repos *Repositories, publisher event.Publisher, hub *sse.Hub) server.Services {
	rng := utils.NewRandomSource()
	clock := utils.NewSystemClock()

	return server.Services{
		Accounts: account.NewService(repos.Account, cfg.AccountCacheSize, cfg.AccountCacheTTL),
		Ledger:   ledger.NewService(repos.Ledger, clock, publisher),
		Game:     game.NewService(repos.Game, gameCfg.Session, rng, clock, publisher),
		Land:     land.NewService(repos.Land, gameCfg.Land, rng, clock, publisher),
		Market:   market.NewService(repos.Market, gameCfg.Market, clock, publisher),
		EventLog: eventlog.NewService(repos.EventLog),
		Hub:      hub,
	}
}
