package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-viper/mapstructure/v2"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"DiceWars/internal/game/app"
	"DiceWars/internal/game/domain"
	"DiceWars/modules/kit/broadcastx"
	"DiceWars/modules/kit/errx"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  4096,
	WriteBufferSize: 4096,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

const (
	cmdStart   = "start"
	cmdAttack  = "attack"
	cmdEndTurn = "end_turn"
	cmdPing    = "ping"
)

type attackCommand struct {
	FromID string `mapstructure:"from_id"`
	ToID   string `mapstructure:"to_id"`
}

// serveWS 是单局的实时通道。升级前先尝试入局一次，
// 已在局中的身份视为重连，其余入局失败直接拒绝握手；
// 升级后先推一帧全量快照，再进入"入站指令 + 会话事件"双向循环。
// 指令解码失败或规则拒绝都回 error 事件，连接不断开；
// 传输层 ping 由 gorilla 默认握手应答，不触碰对局状态。
func (h *GameHandler) serveWS(c *gin.Context) {
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
	uid, name, ok := h.callerName(c)
	if !ok {
		fail(c, errNoIdentity)
		return
	}

	if _, err = session.Join(uid, name); err != nil && !errors.Is(err, domain.ErrPlayerAlreadyInGame) {
		c.JSON(http.StatusConflict, gin.H{
			"code":    string(errx.CodeOf(err)),
			"message": errx.MsgOf(err),
		})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.Warn("websocket upgrade failed",
			zap.String("game_id", id.String()),
			zap.Error(err),
		)
		return
	}
	defer conn.Close()

	rx := session.Subscribe()
	if err = conn.WriteJSON(app.NewSnapshotEvent(session.Snapshot())); err != nil {
		return
	}

	ctx, cancel := context.WithCancel(c.Request.Context())
	defer cancel()

	out := make(chan app.Event, 16)
	go h.pumpEvents(ctx, cancel, session, rx, out)
	go h.readCommands(ctx, cancel, conn, session, uid, out)

	// 唯一写协程：gorilla 连接不允许并发写
	for {
		select {
		case <-ctx.Done():
			return
		case ev := <-out:
			if err = conn.WriteJSON(ev); err != nil {
				return
			}
		}
	}
}

// pumpEvents 把会话事件转入写队列。
// 消费滞后时用一帧新快照替代丢失的事件，让客户端直接重同步。
func (h *GameHandler) pumpEvents(
	ctx context.Context,
	cancel context.CancelFunc,
	session *app.Session,
	rx *broadcastx.Receiver[app.Event],
	out chan<- app.Event,
) {
	defer cancel()
	for {
		ev, err := rx.Recv(ctx)
		if err != nil {
			if !broadcastx.IsLagged(err) {
				return
			}
			ev = app.NewSnapshotEvent(session.Snapshot())
		}
		select {
		case out <- ev:
		case <-ctx.Done():
			return
		}
	}
}

// readCommands 读取并分发入站指令。连接关闭或读错误即终止整个循环。
func (h *GameHandler) readCommands(
	ctx context.Context,
	cancel context.CancelFunc,
	conn *websocket.Conn,
	session *app.Session,
	uid uuid.UUID,
	out chan<- app.Event,
) {
	defer cancel()
	for {
		var raw map[string]any
		if err := conn.ReadJSON(&raw); err != nil {
			return
		}

		if errEv, ok := h.dispatch(session, uid, raw); ok {
			select {
			case out <- errEv:
			case <-ctx.Done():
				return
			}
		}
	}
}

// dispatch 执行一条指令，返回需要回传的 error 事件（如有）。
func (h *GameHandler) dispatch(session *app.Session, uid uuid.UUID, raw map[string]any) (app.ErrorEvent, bool) {
	kind, _ := raw["type"].(string)

	var err error
	switch kind {
	case cmdStart:
		err = session.Start()
	case cmdAttack:
		var cmd attackCommand
		if err = mapstructure.Decode(raw, &cmd); err != nil {
			return app.NewErrorEvent("指令格式有误"), true
		}
		var fromID, toID uuid.UUID
		if fromID, err = uuid.Parse(cmd.FromID); err != nil {
			return app.NewErrorEvent("非法区域 id"), true
		}
		if toID, err = uuid.Parse(cmd.ToID); err != nil {
			return app.NewErrorEvent("非法区域 id"), true
		}
		err = session.Attack(fromID, toID, uid)
	case cmdEndTurn:
		err = session.EndTurn(uid)
	case cmdPing:
		session.Ping()
		return app.ErrorEvent{}, false
	default:
		return app.NewErrorEvent("未知指令"), true
	}

	if err != nil {
		return app.NewErrorEvent(errx.MsgOf(err)), true
	}
	return app.ErrorEvent{}, false
}
