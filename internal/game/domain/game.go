package domain

import (
	"math/rand/v2"

	"github.com/google/uuid"
)

// Phase 是对局所处阶段。
type Phase string

const (
	PhaseWaitingForPlayers Phase = "waiting_for_players"
	PhaseInProgress        Phase = "in_progress"
	PhaseFinished          Phase = "finished"
)

// GameState 是对局阶段加当前行动位。Turn 仅在 in_progress 阶段有意义，
// 是 Players 切片的下标。
type GameState struct {
	Phase Phase `json:"phase"`
	Turn  int   `json:"turn"`
}

// Game 是一局的权威状态：地图 + 玩家 + 阶段。
// 所有修改方法要么完整生效要么原样返回错误，绝不留下半成品状态。
// Game 自身不做并发保护，由上层会话独占持有。
type Game struct {
	ID      uuid.UUID `json:"id"`
	World   *World    `json:"world"`
	Players []*Player `json:"players"`
	State   GameState `json:"state"`
}

func NewGame(world *World) *Game {
	return &Game{
		ID:    uuid.New(),
		World: world,
		State: GameState{Phase: PhaseWaitingForPlayers},
	}
}

// Join 新玩家入局，按加入顺序分配颜色。
func (g *Game) Join(id uuid.UUID, name string) (*Player, error) {
	for _, p := range g.Players {
		if p.ID == id {
			return nil, ErrPlayerAlreadyInGame
		}
	}
	if len(g.Players) >= MaxPlayers {
		return nil, ErrGameFull
	}
	if g.State.Phase != PhaseWaitingForPlayers {
		return nil, ErrGameStarted
	}

	color, err := ColorFromIndex(len(g.Players))
	if err != nil {
		return nil, err
	}
	player := NewPlayer(id, name, color)
	g.Players = append(g.Players, player)
	return player.Clone(), nil
}

// Start 开局，随机指定先手。
func (g *Game) Start() error {
	if g.State.Phase != PhaseWaitingForPlayers {
		return ErrGameStarted
	}
	if len(g.Players) < 2 {
		return ErrNotEnoughPlayers
	}
	g.State = GameState{
		Phase: PhaseInProgress,
		Turn:  rand.IntN(len(g.Players)),
	}
	return nil
}

// Attack 结算一次进攻。先整体校验，再原子结算：
// 双方各掷全部骰子，攻方严格大于守方才算赢（平局守方胜）。
// 赢：目标归攻方，得到拆分后的出征骰子，出发区域留 1 颗；
// 输：出发区域清到 1 颗，守方原样不动。区域集合永不增减。
func (g *Game) Attack(fromID, toID, playerID uuid.UUID) error {
	if g.State.Phase == PhaseFinished {
		return ErrGameFinished
	}
	if g.State.Phase == PhaseWaitingForPlayers {
		return ErrGameNotStarted
	}
	if err := g.World.ValidateAttack(fromID, toID, playerID); err != nil {
		return err
	}

	from := g.World.Areas[fromID]
	to := g.World.Areas[toID]

	attackRoll := from.Stack.AttackRoll()
	defenseRoll := to.Stack.DefenseRoll()

	if attackRoll > defenseRoll {
		remaining, moved, err := from.Stack.Split()
		if err != nil {
			return err
		}
		to.SetOwner(playerID)
		to.Stack = moved
		from.Stack = remaining
	} else {
		from.Stack.Defeat()
	}
	return nil
}

// NextTurn 当前行动者交出回合，行动位循环后移。
func (g *Game) NextTurn(playerID uuid.UUID) error {
	if g.State.Phase == PhaseFinished {
		return ErrGameFinished
	}
	if g.State.Phase == PhaseWaitingForPlayers {
		return ErrGameNotStarted
	}
	if g.Players[g.State.Turn].ID != playerID {
		return ErrNotPlayerTurn
	}
	g.State.Turn = (g.State.Turn + 1) % len(g.Players)
	return nil
}

// Finish 终结对局。幂等之外的重复终结返回 ErrGameFinished。
func (g *Game) Finish() error {
	if g.State.Phase == PhaseFinished {
		return ErrGameFinished
	}
	g.State = GameState{Phase: PhaseFinished}
	return nil
}

// CurrentPlayer 返回行动位上的玩家，非进行中返回 nil。
func (g *Game) CurrentPlayer() *Player {
	if g.State.Phase != PhaseInProgress {
		return nil
	}
	return g.Players[g.State.Turn]
}

// PlayerByID 按 id 查找玩家。
func (g *Game) PlayerByID(id uuid.UUID) (*Player, bool) {
	for _, p := range g.Players {
		if p.ID == id {
			return p, true
		}
	}
	return nil, false
}

// Clone 返回整局状态的深拷贝，供快照下发使用。
func (g *Game) Clone() *Game {
	cp := &Game{
		ID:      g.ID,
		World:   g.World.Clone(),
		Players: make([]*Player, len(g.Players)),
		State:   g.State,
	}
	for i, p := range g.Players {
		cp.Players[i] = p.Clone()
	}
	return cp
}
