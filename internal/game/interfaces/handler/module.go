package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"DiceWars/internal/game/app"
	"DiceWars/internal/shared/transport/http/middleware"
	"DiceWars/modules/kit/logx"
)

// UserDirectory 是游戏模块对账号体系的唯一依赖：按 uid 查展示名。
// 身份始终是外部协作方，游戏域不感知账号存储细节。
type UserDirectory interface {
	DisplayName(ctx context.Context, uid uuid.UUID) (string, error)
}

// GameHandler 聚合对局相关的 HTTP / SSE / WebSocket 入口。
type GameHandler struct {
	registry *app.Registry
	users    UserDirectory
	log      logx.Logger
}

func NewGameHandler(registry *app.Registry, users UserDirectory, log logx.Logger) *GameHandler {
	return &GameHandler{
		registry: registry,
		users:    users,
		log:      log,
	}
}

// RegisterRoutes 挂载路由。auth 中间件只保护需要身份的入口，
// 列表和单局快照对匿名开放。
func (h *GameHandler) RegisterRoutes(api *gin.RouterGroup, auth gin.HandlerFunc) {
	games := api.Group("/games")
	games.PUT("", auth, h.create)
	games.GET("", h.list)
	games.GET("/stream", h.stream)
	games.GET("/:id", h.get)
	games.GET("/:id/ws", auth, h.serveWS)
}

// callerName 解析已认证调用方的 uuid 与展示名。
func (h *GameHandler) callerName(c *gin.Context) (uuid.UUID, string, bool) {
	uidStr, ok := middleware.UID(c)
	if !ok {
		return uuid.Nil, "", false
	}
	uid, err := uuid.Parse(uidStr)
	if err != nil {
		return uuid.Nil, "", false
	}
	name, err := h.users.DisplayName(c.Request.Context(), uid)
	if err != nil || name == "" {
		// 展示名查不到不挡住对局操作，退化为 uid 前缀
		name = uidStr[:8]
	}
	return uid, name, true
}
