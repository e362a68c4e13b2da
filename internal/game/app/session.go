package app

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"DiceWars/internal/game/domain"
	"DiceWars/modules/kit/broadcastx"
	"DiceWars/modules/kit/logx"
	"DiceWars/modules/kit/watchx"
)

// IdleFinishReason 是空闲超时强制终局时对外公告的原因。
const IdleFinishReason = "idle timeout"

// FinishHook 在对局进入终态后被调用一次，拿到的是终局快照的深拷贝。
// 在会话锁之外异步执行，挂接归档等旁路逻辑。
type FinishHook func(snapshot *domain.Game, creator Creator, reason string)

// SessionConfig 是单个会话的运行参数。
type SessionConfig struct {
	// IdleTimeout 为无操作强制终局阈值。
	IdleTimeout time.Duration
	// MonitorInterval 为空闲巡检周期。
	MonitorInterval time.Duration
	// EventCapacity 为事件广播缓冲容量，订阅者落后超过该值收到 Lagged。
	EventCapacity int
}

func (c *SessionConfig) normalize() {
	if c.IdleTimeout <= 0 {
		c.IdleTimeout = 300 * time.Second
	}
	if c.MonitorInterval <= 0 {
		c.MonitorInterval = 15 * time.Second
	}
	if c.EventCapacity <= 0 {
		c.EventCapacity = 64
	}
}

// Session 独占持有一局 Game，是它唯一的修改入口。
// 所有修改在同一把锁内完成并按固定顺序对外发布：
// 语义事件 → 快照事件 → 最新快照槽位。
// 对外的一切读取都是深拷贝快照，内部引用永不外泄。
type Session struct {
	creator Creator
	cfg     SessionConfig
	log     logx.Logger

	mu         sync.Mutex
	game       *domain.Game
	lastActive time.Time
	monitoring bool

	events *broadcastx.Broadcaster[Event]
	watch  *watchx.Source[*domain.Game]

	onFinish FinishHook
}

// NewSession 创建会话并发布初始快照。
func NewSession(world *domain.World, creator Creator, cfg SessionConfig, log logx.Logger, onFinish FinishHook) *Session {
	cfg.normalize()
	game := domain.NewGame(world)
	s := &Session{
		creator:    creator,
		cfg:        cfg,
		log:        log,
		game:       game,
		lastActive: time.Now(),
		events:     broadcastx.NewBroadcaster[Event](cfg.EventCapacity),
		watch:      watchx.NewSource(game.Clone()),
		onFinish:   onFinish,
	}
	return s
}

// ID 返回对局 id。
func (s *Session) ID() uuid.UUID {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.game.ID
}

// Creator 返回开局者元数据。
func (s *Session) Creator() Creator {
	return s.creator
}

// Snapshot 返回当前对局的深拷贝。
func (s *Session) Snapshot() *domain.Game {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.game.Clone()
}

// ListItem 返回该会话在大厅列表里的聚合行。
func (s *Session) ListItem() ListItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	return ListItem{
		ID:          s.game.ID,
		Creator:     s.creator,
		PlayerCount: len(s.game.Players),
		State:       s.game.State,
	}
}

// Subscribe 订阅语义事件流，从订阅时刻之后的事件开始。
func (s *Session) Subscribe() *broadcastx.Receiver[Event] {
	return s.events.Subscribe()
}

// Watch 订阅合并式最新快照槽位。
func (s *Session) Watch() *watchx.Receiver[*domain.Game] {
	return s.watch.Subscribe()
}

// Join 玩家入局。
func (s *Session) Join(playerID uuid.UUID, name string) (*domain.Player, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	player, err := s.game.Join(playerID, name)
	if err != nil {
		return nil, err
	}
	s.touchLocked()
	s.publishLocked(NewPlayerJoinedEvent(player.ID, player.Name))
	return player, nil
}

// Start 开局。成功后启动一次性空闲巡检。
func (s *Session) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.game.Start(); err != nil {
		return err
	}
	s.touchLocked()
	s.publishLocked(NewGameStartedEvent())

	if !s.monitoring {
		s.monitoring = true
		go s.monitorIdle()
	}
	return nil
}

// Attack 结算一次进攻。
func (s *Session) Attack(fromID, toID, playerID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.game.Attack(fromID, toID, playerID); err != nil {
		return err
	}
	s.touchLocked()
	s.publishLocked(NewAttackResolvedEvent(fromID, toID, playerID))
	return nil
}

// EndTurn 当前行动者交出回合。
func (s *Session) EndTurn(playerID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.game.NextTurn(playerID); err != nil {
		return err
	}
	s.touchLocked()
	s.publishLocked(NewTurnEndedEvent(playerID))
	return nil
}

// Finish 终结对局并公告原因。
func (s *Session) Finish(reason string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.finishLocked(reason)
}

// Ping 刷新活跃时间，不触碰对局状态、不发布任何事件。
func (s *Session) Ping() {
	s.mu.Lock()
	s.lastActive = time.Now()
	s.mu.Unlock()
}

// LastActive 返回最近一次操作或心跳的时间。
func (s *Session) LastActive() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastActive
}

func (s *Session) touchLocked() {
	s.lastActive = time.Now()
}

// publishLocked 在持锁状态下按固定顺序发布：
// 语义事件 → 快照事件 → 最新快照槽位。
func (s *Session) publishLocked(ev Event) {
	snapshot := s.game.Clone()
	s.events.Send(ev)
	s.events.Send(NewSnapshotEvent(snapshot))
	s.watch.Send(snapshot)
}

func (s *Session) finishLocked(reason string) error {
	if err := s.game.Finish(); err != nil {
		return err
	}
	s.publishLocked(NewFinishedEvent(reason))

	if s.onFinish != nil {
		snapshot := s.game.Clone()
		hook := s.onFinish
		creator := s.creator
		go hook(snapshot, creator, reason)
	}
	s.log.Info("game finished",
		zap.String("game_id", s.game.ID.String()),
		zap.String("reason", reason),
	)
	return nil
}

// monitorIdle 按固定周期巡检：对局进行中且空闲超过阈值则强制终局。
// 一次性任务——对局离开 in_progress 后即退出，不会反复巡检终局对局。
func (s *Session) monitorIdle() {
	ticker := time.NewTicker(s.cfg.MonitorInterval)
	defer ticker.Stop()

	for range ticker.C {
		s.mu.Lock()
		phase := s.game.State.Phase
		idle := time.Since(s.lastActive)

		if phase != domain.PhaseInProgress {
			s.mu.Unlock()
			return
		}
		if idle < s.cfg.IdleTimeout {
			s.mu.Unlock()
			continue
		}

		gameID := s.game.ID
		err := s.finishLocked(IdleFinishReason)
		s.mu.Unlock()

		if err != nil {
			s.log.Warn("idle finish skipped",
				zap.String("game_id", gameID.String()),
				zap.Error(err),
			)
		} else {
			s.log.Info("game idle timeout",
				zap.String("game_id", gameID.String()),
				zap.Duration("idle", idle),
			)
		}
		return
	}
}
