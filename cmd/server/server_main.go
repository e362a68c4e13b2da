package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	accountapp "DiceWars/internal/account/app"
	accountrepo "DiceWars/internal/account/infra/repo"
	accounthandler "DiceWars/internal/account/interfaces/handler"
	gameapp "DiceWars/internal/game/app"
	"DiceWars/internal/game/domain"
	gamearchive "DiceWars/internal/game/infra/persistence/mongodb"
	gamehandler "DiceWars/internal/game/interfaces/handler"
	"DiceWars/internal/shared/infrastructure/db"
	sharedmongo "DiceWars/internal/shared/infrastructure/mongo"
	"DiceWars/internal/shared/logs"
	"DiceWars/internal/shared/security"
	"DiceWars/internal/shared/serverconfig"
	transporthttp "DiceWars/internal/shared/transport/http"
	"DiceWars/internal/shared/transport/http/middleware"
	"DiceWars/internal/shared/utils"
	"DiceWars/modules/kit/logx"
)

func main() {
	serverconfig.Load()
	if err := logs.Init("server", serverconfig.Conf.Log); err != nil {
		panic(err)
	}
	logs.Info("conf", zap.Any("conf", serverconfig.Conf))
	logger := logx.NewZapLogger(logs.Logger())

	// 账号存储
	gormDB, err := db.Open(serverconfig.Conf.MySQL)
	if err != nil {
		logs.Fatal("open db failed", zap.Error(err))
	}
	userRepo := accountrepo.NewUserRepo(gormDB)
	userService := accountapp.NewUserService(
		userRepo,
		security.EncodePassword,
		utils.RandSeq,
		security.Award,
	)

	// 终局归档（可选：未配置 mongo 则只打日志）
	onFinish := finishHook(logger)

	// 地图模板
	layout, err := os.ReadFile(serverconfig.Conf.Game.MapData)
	if err != nil {
		logs.Fatal("read map data failed",
			zap.String("path", serverconfig.Conf.Game.MapData),
			zap.Error(err),
		)
	}
	template := domain.ParseWorld(string(layout))
	if len(template.Areas) == 0 {
		logs.Fatal("map data contains no areas", zap.String("path", serverconfig.Conf.Game.MapData))
	}

	registry := gameapp.NewRegistry(template, sessionConfig(serverconfig.Conf.Game), logger, onFinish)
	defer registry.Close()

	// HTTP 服务
	addr := fmt.Sprintf("%s:%d", serverconfig.Conf.HTTPServer.Host, serverconfig.Conf.HTTPServer.Port)
	server := transporthttp.NewHttpServer(addr, nil, logger)

	api := server.Group().Group("/api")
	auth := middleware.Auth()
	accounthandler.NewAccount(userService, logger).RegisterRoutes(api, auth)
	gamehandler.NewGameHandler(registry, userService, logger).RegisterRoutes(api, auth)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logs.Info("http server started", zap.String("addr", addr))
		if err := server.Start(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		logs.Info("收到退出信号，准备优雅退出")
	case err := <-errCh:
		logs.Error("服务异常退出", zap.Error(err))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logs.Error("http shutdown failed", zap.Error(err))
	}
}

func sessionConfig(cfg serverconfig.GameConfig) gameapp.SessionConfig {
	return gameapp.SessionConfig{
		IdleTimeout:     time.Duration(cfg.IdleTimeoutS) * time.Second,
		MonitorInterval: time.Duration(cfg.MonitorIntervalS) * time.Second,
		EventCapacity:   cfg.EventCapacity,
	}
}

// finishHook 装配终局旁路：配置了 mongo 就归档，否则只留日志。
// 归档失败不影响对局，终局状态只存在于内存。
func finishHook(logger logx.Logger) gameapp.FinishHook {
	cfg := serverconfig.Conf.MongoDB
	if cfg.URI == "" {
		return func(snapshot *domain.Game, creator gameapp.Creator, reason string) {
			logger.Info("match finished (archive disabled)",
				zap.String("game_id", snapshot.ID.String()),
				zap.String("reason", reason),
			)
		}
	}

	client, err := sharedmongo.Open(cfg, logs.Logger())
	if err != nil {
		logs.Fatal("open mongodb failed", zap.Error(err))
	}
	archive := gamearchive.NewMatchArchive(client.Database(cfg.Database))

	return func(snapshot *domain.Game, creator gameapp.Creator, reason string) {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := archive.Save(ctx, snapshot, creator.ID.String(), creator.Name, reason); err != nil {
			logger.Error("archive match failed",
				zap.String("game_id", snapshot.ID.String()),
				zap.Error(err),
			)
		}
	}
}
