package app

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"DiceWars/internal/game/domain"
	"DiceWars/modules/kit/logx"
	"DiceWars/modules/kit/watchx"
)

// Registry 管理全部活跃会话，并维护一份供流式消费的大厅列表槽位。
// 会话创建远少于列表读取，读写锁按读多写少配置。
type Registry struct {
	template *domain.World
	cfg      SessionConfig
	log      logx.Logger
	onFinish FinishHook

	mu       sync.RWMutex
	sessions map[uuid.UUID]*Session
	order    []uuid.UUID

	list *watchx.Source[[]ListItem]

	ctx    context.Context
	cancel context.CancelFunc
}

// NewRegistry 创建注册表。template 是地图模板，每局克隆一份。
func NewRegistry(template *domain.World, cfg SessionConfig, log logx.Logger, onFinish FinishHook) *Registry {
	ctx, cancel := context.WithCancel(context.Background())
	return &Registry{
		template: template,
		cfg:      cfg,
		log:      log,
		onFinish: onFinish,
		sessions: make(map[uuid.UUID]*Session),
		list:     watchx.NewSource([]ListItem{}),
		ctx:      ctx,
		cancel:   cancel,
	}
}

// CreateSession 开一局新会话：注册后挂一个后台转发协程，
// 该会话每次快照变更都会刷新聚合列表槽位，让列表流保持实时。
func (r *Registry) CreateSession(creator Creator) *Session {
	session := NewSession(r.template.Clone(), creator, r.cfg, r.log, r.onFinish)

	r.mu.Lock()
	id := session.ID()
	r.sessions[id] = session
	r.order = append(r.order, id)
	r.mu.Unlock()

	go r.republish(session)

	r.log.Info("session created",
		zap.String("game_id", id.String()),
		zap.String("creator_id", creator.ID.String()),
	)
	return session
}

// Get 按 id 取会话。
func (r *Registry) Get(id uuid.UUID) (*Session, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.sessions[id]
	return s, ok
}

// List 即时重算大厅列表：每个会话读一份新快照。
func (r *Registry) List() []ListItem {
	r.mu.RLock()
	defer r.mu.RUnlock()

	items := make([]ListItem, 0, len(r.order))
	for _, id := range r.order {
		items = append(items, r.sessions[id].ListItem())
	}
	return items
}

// SubscribeList 订阅大厅列表槽位。新订阅者第一次等待必有值
// （可能是空列表），之后任意会话的快照变更都会触发新列表。
func (r *Registry) SubscribeList() *watchx.Receiver[[]ListItem] {
	return r.list.Subscribe()
}

// Close 停掉所有后台转发协程。
func (r *Registry) Close() {
	r.cancel()
}

// republish 跟踪单个会话的快照变更并刷新聚合列表。
// 会话首个快照视为未读，因此新会话注册后列表立即刷新一次。
func (r *Registry) republish(s *Session) {
	rx := s.Watch()
	for {
		if _, err := rx.Next(r.ctx); err != nil {
			return
		}
		r.list.Send(r.List())
	}
}
