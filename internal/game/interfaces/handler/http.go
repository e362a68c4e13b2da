package handler

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"DiceWars/internal/game/app"
)

// create 开一局新会话。调用方只作为 creator 元数据记录，不自动入局。
func (h *GameHandler) create(c *gin.Context) {
	uid, name, ok := h.callerName(c)
	if !ok {
		fail(c, errNoIdentity)
		return
	}

	session := h.registry.CreateSession(app.Creator{ID: uid, Name: name})
	c.JSON(http.StatusOK, session.Snapshot())
}

// list 返回大厅列表的即时视图。
func (h *GameHandler) list(c *gin.Context) {
	c.JSON(http.StatusOK, h.registry.List())
}

// get 返回单局的完整快照。
func (h *GameHandler) get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		fail(c, errBadGameID)
		return
	}
	session, ok := h.registry.Get(id)
	if !ok {
		fail(c, errGameNotFound)
		return
	}
	c.JSON(http.StatusOK, session.Snapshot())
}

// stream 以 SSE 推送大厅列表：订阅后第一次必有一帧（可能为空列表），
// 之后任意会话快照变更都会重发整份列表。
func (h *GameHandler) stream(c *gin.Context) {
	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")

	rx := h.registry.SubscribeList()
	ctx := c.Request.Context()

	c.Stream(func(w io.Writer) bool {
		items, err := rx.Next(ctx)
		if err != nil {
			// 客户端断开或服务退出
			return false
		}
		c.SSEvent("games", items)
		return true
	})

	h.log.Debug("list stream closed", zap.String("remote", c.ClientIP()))
}
