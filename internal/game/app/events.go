package app

import (
	"github.com/google/uuid"

	"DiceWars/internal/game/domain"
)

// Event 是会话对外广播的事件。每个事件自带 type 标签，
// 序列化后即为下发给客户端的线上格式。
type Event interface {
	Kind() string
}

const (
	EventSnapshot       = "snapshot"
	EventPlayerJoined   = "player_joined"
	EventGameStarted    = "game_started"
	EventAttackResolved = "attack_resolved"
	EventTurnEnded      = "turn_ended"
	EventFinished       = "finished"
	EventError          = "error"
)

// SnapshotEvent 携带整局的深拷贝快照，伴随每个语义事件下发，
// 也用于连接建立和消费滞后后的重新同步。
type SnapshotEvent struct {
	Type string       `json:"type"`
	Game *domain.Game `json:"game"`
}

func NewSnapshotEvent(g *domain.Game) SnapshotEvent {
	return SnapshotEvent{Type: EventSnapshot, Game: g}
}

func (SnapshotEvent) Kind() string { return EventSnapshot }

type PlayerJoinedEvent struct {
	Type       string    `json:"type"`
	PlayerID   uuid.UUID `json:"player_id"`
	PlayerName string    `json:"player_name"`
}

func NewPlayerJoinedEvent(id uuid.UUID, name string) PlayerJoinedEvent {
	return PlayerJoinedEvent{Type: EventPlayerJoined, PlayerID: id, PlayerName: name}
}

func (PlayerJoinedEvent) Kind() string { return EventPlayerJoined }

type GameStartedEvent struct {
	Type string `json:"type"`
}

func NewGameStartedEvent() GameStartedEvent {
	return GameStartedEvent{Type: EventGameStarted}
}

func (GameStartedEvent) Kind() string { return EventGameStarted }

type AttackResolvedEvent struct {
	Type     string    `json:"type"`
	FromID   uuid.UUID `json:"from_id"`
	ToID     uuid.UUID `json:"to_id"`
	PlayerID uuid.UUID `json:"player_id"`
}

func NewAttackResolvedEvent(fromID, toID, playerID uuid.UUID) AttackResolvedEvent {
	return AttackResolvedEvent{Type: EventAttackResolved, FromID: fromID, ToID: toID, PlayerID: playerID}
}

func (AttackResolvedEvent) Kind() string { return EventAttackResolved }

type TurnEndedEvent struct {
	Type     string    `json:"type"`
	PlayerID uuid.UUID `json:"player_id"`
}

func NewTurnEndedEvent(playerID uuid.UUID) TurnEndedEvent {
	return TurnEndedEvent{Type: EventTurnEnded, PlayerID: playerID}
}

func (TurnEndedEvent) Kind() string { return EventTurnEnded }

type FinishedEvent struct {
	Type   string `json:"type"`
	Reason string `json:"reason"`
}

func NewFinishedEvent(reason string) FinishedEvent {
	return FinishedEvent{Type: EventFinished, Reason: reason}
}

func (FinishedEvent) Kind() string { return EventFinished }

// ErrorEvent 把被拒绝的指令原因回传给当前连接，不中断会话。
type ErrorEvent struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

func NewErrorEvent(message string) ErrorEvent {
	return ErrorEvent{Type: EventError, Message: message}
}

func (ErrorEvent) Kind() string { return EventError }

// Creator 是开局者的展示信息，只做列表元数据，不自动入局。
type Creator struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

// ListItem 是游戏大厅列表里一行的聚合视图。
type ListItem struct {
	ID          uuid.UUID        `json:"id"`
	Creator     Creator          `json:"creator"`
	PlayerCount int              `json:"player_count"`
	State       domain.GameState `json:"state"`
}
