package handlers

import (
	"context"

	"github.com/redis/go-redis/v9"
	"github.com/terminalhome/ims-backend/internal/alerts"
	"github.com/terminalhome/ims-backend/internal/forecast"
	"github.com/terminalhome/ims-backend/internal/ledger"
	"github.com/terminalhome/ims-backend/internal/redissvc"
	"github.com/terminalhome/ims-backend/internal/reorder"
	"github.com/terminalhome/ims-backend/internal/repo"
)

var (
	inventoryRepo repo.InventoryRepository
	movementRepo  repo.MovementRepository
	statsRepo     repo.StatsRepository
	userRepo      repo.UserRepository

	ledgerSvc    *ledger.Service
	alertEngine  *alerts.Engine
	advisor      *reorder.Advisor
	orchestrator *forecast.Orchestrator

	Rdb *redis.Client
	Ctx context.Context
)

func SetInventoryRepo(r repo.InventoryRepository) {
	inventoryRepo = r
}

func SetMovementRepo(r repo.MovementRepository) {
	movementRepo = r
}

func SetStatsRepo(r repo.StatsRepository) {
	statsRepo = r
}

func SetUserRepo(r repo.UserRepository) {
	userRepo = r
}

func SetLedger(s *ledger.Service) {
	ledgerSvc = s
}

func SetAlertEngine(e *alerts.Engine) {
	alertEngine = e
}

func SetAdvisor(a *reorder.Advisor) {
	advisor = a
}

func SetOrchestrator(o *forecast.Orchestrator) {
	orchestrator = o
}

func SetRedisService(rs *redissvc.RedisService) {
	Rdb = rs.Rdb()
	Ctx = rs.Ctx()
}
