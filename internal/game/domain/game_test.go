package domain

import (
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/google/uuid"
)

func newWaitingGame() *Game {
	return NewGame(NewWorld())
}

func joinPlayers(t *testing.T, g *Game, n int) []uuid.UUID {
	t.Helper()
	ids := make([]uuid.UUID, 0, n)
	for i := 0; i < n; i++ {
		id := uuid.New()
		if _, err := g.Join(id, fmt.Sprintf("Player %d", i)); err != nil {
			t.Fatalf("第 %d 名玩家入局失败: %v", i, err)
		}
		ids = append(ids, id)
	}
	return ids
}

// 构建一张两区域接壤的地图，出发区域归 attacker 持 fromDice 颗，
// 目标区域归 defender 持 toDice 颗。
func twoAreaWorld(attacker, defender uuid.UUID, fromDice, toDice int) (*World, uuid.UUID, uuid.UUID) {
	from := areaWithTile(0, 0)
	from.SetOwner(attacker)
	from.Stack.Count = fromDice

	to := areaWithTile(0, 1)
	to.SetOwner(defender)
	to.Stack.Count = toDice

	return worldFromAreas(from, to), from.ID, to.ID
}

func TestJoin_按加入顺序分配颜色(t *testing.T) {
	g := newWaitingGame()
	ids := joinPlayers(t, g, 3)

	for i, id := range ids {
		p, ok := g.PlayerByID(id)
		if !ok {
			t.Fatalf("找不到玩家 %v", id)
		}
		want, _ := ColorFromIndex(i)
		if p.Color != want {
			t.Errorf("第 %d 名玩家颜色 = %v, want %v", i, p.Color, want)
		}
	}
}

func TestJoin_重复入局应拒绝(t *testing.T) {
	g := newWaitingGame()
	id := uuid.New()
	if _, err := g.Join(id, "A"); err != nil {
		t.Fatal(err)
	}
	if _, err := g.Join(id, "A again"); !errors.Is(err, ErrPlayerAlreadyInGame) {
		t.Errorf("err = %v, want ErrPlayerAlreadyInGame", err)
	}
}

func TestJoin_满员应拒绝(t *testing.T) {
	g := newWaitingGame()
	joinPlayers(t, g, MaxPlayers)
	if _, err := g.Join(uuid.New(), "late"); !errors.Is(err, ErrGameFull) {
		t.Errorf("err = %v, want ErrGameFull", err)
	}
}

func TestJoin_开局后入局应拒绝(t *testing.T) {
	g := newWaitingGame()
	joinPlayers(t, g, 2)
	if err := g.Start(); err != nil {
		t.Fatal(err)
	}
	if _, err := g.Join(uuid.New(), "late"); !errors.Is(err, ErrGameStarted) {
		t.Errorf("err = %v, want ErrGameStarted", err)
	}
}

func TestStart_人数不足应拒绝(t *testing.T) {
	g := newWaitingGame()
	if err := g.Start(); !errors.Is(err, ErrNotEnoughPlayers) {
		t.Errorf("空局 err = %v, want ErrNotEnoughPlayers", err)
	}
	joinPlayers(t, g, 1)
	if err := g.Start(); !errors.Is(err, ErrNotEnoughPlayers) {
		t.Errorf("单人 err = %v, want ErrNotEnoughPlayers", err)
	}
}

func TestStart_行动位始终落在玩家区间内(t *testing.T) {
	for i := 0; i < 50; i++ {
		g := newWaitingGame()
		joinPlayers(t, g, 4)
		if err := g.Start(); err != nil {
			t.Fatal(err)
		}
		if g.State.Phase != PhaseInProgress {
			t.Fatalf("Phase = %v, want in_progress", g.State.Phase)
		}
		if g.State.Turn < 0 || g.State.Turn >= 4 {
			t.Fatalf("Turn = %d，超出 [0,4)", g.State.Turn)
		}
	}
}

func TestStart_重复开局应拒绝(t *testing.T) {
	g := newWaitingGame()
	joinPlayers(t, g, 2)
	if err := g.Start(); err != nil {
		t.Fatal(err)
	}
	if err := g.Start(); !errors.Is(err, ErrGameStarted) {
		t.Errorf("err = %v, want ErrGameStarted", err)
	}
}

func TestAttack_结算后攻方区域恒为单骰且区域数不变(t *testing.T) {
	for i := 0; i < 50; i++ {
		attacker := uuid.New()
		defender := uuid.New()
		world, fromID, toID := twoAreaWorld(attacker, defender, 4, 2)

		g := NewGame(world)
		g.Players = []*Player{
			NewPlayer(attacker, "A", ColorRed),
			NewPlayer(defender, "B", ColorGreen),
		}
		g.State = GameState{Phase: PhaseInProgress}

		if err := g.Attack(fromID, toID, attacker); err != nil {
			t.Fatal(err)
		}
		if got := g.World.Areas[fromID].Stack.Count; got != StackMin {
			t.Fatalf("攻方区域骰子 = %d, want %d", got, StackMin)
		}
		if !g.World.Areas[fromID].IsOwnedBy(attacker) {
			t.Fatal("攻方区域归属不应改变")
		}
		if len(g.World.Areas) != 2 {
			t.Fatalf("区域数 = %d, want 2", len(g.World.Areas))
		}
	}
}

func TestAttack_压倒性兵力多次进攻至少出现一次胜利(t *testing.T) {
	attacker := uuid.New()
	defender := uuid.New()

	won := false
	for i := 0; i < 200 && !won; i++ {
		world, fromID, toID := twoAreaWorld(attacker, defender, StackMax, StackMin)
		g := NewGame(world)
		g.State = GameState{Phase: PhaseInProgress}

		if err := g.Attack(fromID, toID, attacker); err != nil {
			t.Fatal(err)
		}
		to := g.World.Areas[toID]
		if to.IsOwnedBy(attacker) {
			if to.Stack.Count != StackMax-1 {
				t.Fatalf("占领区域骰子 = %d, want %d", to.Stack.Count, StackMax-1)
			}
			won = true
		}
	}
	if !won {
		t.Error("8 打 1 连续 200 次未出现一次胜利")
	}
}

func TestAttack_劣势兵力多次进攻至少出现一次失败(t *testing.T) {
	attacker := uuid.New()
	defender := uuid.New()

	lost := false
	for i := 0; i < 200 && !lost; i++ {
		world, fromID, toID := twoAreaWorld(attacker, defender, 2, StackMax)
		g := NewGame(world)
		g.State = GameState{Phase: PhaseInProgress}

		if err := g.Attack(fromID, toID, attacker); err != nil {
			t.Fatal(err)
		}
		to := g.World.Areas[toID]
		if to.IsOwnedBy(defender) {
			if to.Stack.Count != StackMax {
				t.Fatalf("守方区域骰子 = %d, want %d", to.Stack.Count, StackMax)
			}
			lost = true
		}
	}
	if !lost {
		t.Error("2 打 8 连续 200 次未出现一次失败")
	}
}

func TestAttack_未开局或已结束应拒绝(t *testing.T) {
	attacker := uuid.New()
	world, fromID, toID := twoAreaWorld(attacker, uuid.New(), 3, 1)

	g := NewGame(world)
	if err := g.Attack(fromID, toID, attacker); !errors.Is(err, ErrGameNotStarted) {
		t.Errorf("未开局 err = %v, want ErrGameNotStarted", err)
	}

	g.State = GameState{Phase: PhaseFinished}
	if err := g.Attack(fromID, toID, attacker); !errors.Is(err, ErrGameFinished) {
		t.Errorf("已结束 err = %v, want ErrGameFinished", err)
	}
}

func TestNextTurn_轮转一圈回到起点(t *testing.T) {
	g := newWaitingGame()
	ids := joinPlayers(t, g, 4)
	if err := g.Start(); err != nil {
		t.Fatal(err)
	}

	startTurn := g.State.Turn
	for i := 0; i < len(ids); i++ {
		current := g.Players[g.State.Turn].ID
		if err := g.NextTurn(current); err != nil {
			t.Fatal(err)
		}
	}
	if g.State.Turn != startTurn {
		t.Errorf("轮转一圈后 Turn = %d, want %d", g.State.Turn, startTurn)
	}
}

func TestNextTurn_非行动者应拒绝(t *testing.T) {
	g := newWaitingGame()
	joinPlayers(t, g, 3)
	if err := g.Start(); err != nil {
		t.Fatal(err)
	}

	wrong := g.Players[(g.State.Turn+1)%3].ID
	if err := g.NextTurn(wrong); !errors.Is(err, ErrNotPlayerTurn) {
		t.Errorf("err = %v, want ErrNotPlayerTurn", err)
	}
}

func TestNextTurn_未开局或已结束应拒绝(t *testing.T) {
	g := newWaitingGame()
	id := uuid.New()
	if err := g.NextTurn(id); !errors.Is(err, ErrGameNotStarted) {
		t.Errorf("未开局 err = %v, want ErrGameNotStarted", err)
	}

	joinPlayers(t, g, 2)
	if err := g.Start(); err != nil {
		t.Fatal(err)
	}
	if err := g.Finish(); err != nil {
		t.Fatal(err)
	}
	if err := g.NextTurn(g.Players[0].ID); !errors.Is(err, ErrGameFinished) {
		t.Errorf("已结束 err = %v, want ErrGameFinished", err)
	}
}

func TestFinish_终态不可重复进入(t *testing.T) {
	g := newWaitingGame()
	if err := g.Finish(); err != nil {
		t.Fatal(err)
	}
	if err := g.Finish(); !errors.Is(err, ErrGameFinished) {
		t.Errorf("err = %v, want ErrGameFinished", err)
	}
}

func TestGameClone_深拷贝互不影响(t *testing.T) {
	g := newWaitingGame()
	ids := joinPlayers(t, g, 2)
	area := areaWithTile(0, 0)
	area.SetOwner(ids[0])
	g.World.Areas[area.ID] = area

	cp := g.Clone()
	cp.Players[0].Name = "改名"
	cp.World.Areas[area.ID].Stack.Count = 7
	cp.State.Phase = PhaseFinished

	if g.Players[0].Name == "改名" {
		t.Error("玩家修改泄漏回原局")
	}
	if g.World.Areas[area.ID].Stack.Count != StackMin {
		t.Error("地图修改泄漏回原局")
	}
	if g.State.Phase != PhaseWaitingForPlayers {
		t.Error("状态修改泄漏回原局")
	}
}

func TestGame_JSON序列化往返保持关键字段(t *testing.T) {
	attacker := uuid.New()
	defender := uuid.New()
	world, fromID, toID := twoAreaWorld(attacker, defender, 5, 2)

	g := NewGame(world)
	g.Players = []*Player{
		NewPlayer(attacker, "甲", ColorRed),
		NewPlayer(defender, "乙", ColorGreen),
	}
	g.Players[0].StoredDice = 7
	g.State = GameState{Phase: PhaseInProgress, Turn: 1}

	t.Run("整局", func(t *testing.T) {
		data, err := json.Marshal(g)
		if err != nil {
			t.Fatal(err)
		}
		var decoded Game
		if err = json.Unmarshal(data, &decoded); err != nil {
			t.Fatal(err)
		}

		if decoded.ID != g.ID {
			t.Errorf("ID = %v, want %v", decoded.ID, g.ID)
		}
		if decoded.State != g.State {
			t.Errorf("State = %+v, want %+v", decoded.State, g.State)
		}
		if len(decoded.Players) != 2 {
			t.Fatalf("玩家数 = %d, want 2", len(decoded.Players))
		}
		for i, p := range decoded.Players {
			want := g.Players[i]
			if p.ID != want.ID || p.Name != want.Name || p.Color != want.Color || p.StoredDice != want.StoredDice {
				t.Errorf("玩家 %d = %+v, want %+v", i, p, want)
			}
		}
		if len(decoded.World.Areas) != 2 {
			t.Fatalf("区域数 = %d, want 2", len(decoded.World.Areas))
		}
		for id, want := range g.World.Areas {
			got, ok := decoded.World.Areas[id]
			if !ok {
				t.Fatalf("区域 %v 丢失", id)
			}
			if got.ID != want.ID {
				t.Errorf("区域 id = %v, want %v", got.ID, want.ID)
			}
			if (got.Owner == nil) != (want.Owner == nil) ||
				(got.Owner != nil && *got.Owner != *want.Owner) {
				t.Errorf("区域 %v 归属往返不一致", id)
			}
			if len(got.Tiles) != len(want.Tiles) {
				t.Errorf("区域 %v 格子数 = %d, want %d", id, len(got.Tiles), len(want.Tiles))
			}
			if got.Stack.Count != want.Stack.Count {
				t.Errorf("区域 %v 骰子 = %d, want %d", id, got.Stack.Count, want.Stack.Count)
			}
		}
		if decoded.World.Areas[fromID].Stack.Count != 5 || decoded.World.Areas[toID].Stack.Count != 2 {
			t.Error("骰子数往返不一致")
		}
	})

	t.Run("阶段状态", func(t *testing.T) {
		cases := []GameState{
			{Phase: PhaseWaitingForPlayers},
			{Phase: PhaseInProgress, Turn: 3},
			{Phase: PhaseFinished},
		}
		for _, want := range cases {
			data, err := json.Marshal(want)
			if err != nil {
				t.Fatal(err)
			}
			var got GameState
			if err = json.Unmarshal(data, &got); err != nil {
				t.Fatal(err)
			}
			if got != want {
				t.Errorf("GameState 往返 = %+v, want %+v", got, want)
			}
		}
	})

	t.Run("无主区域", func(t *testing.T) {
		area := NewArea([]Tile{NewTile(2, 3), NewTile(2, 4)})
		data, err := json.Marshal(area)
		if err != nil {
			t.Fatal(err)
		}
		var got Area
		if err = json.Unmarshal(data, &got); err != nil {
			t.Fatal(err)
		}
		if got.ID != area.ID || got.Owner != nil ||
			len(got.Tiles) != 2 || got.Stack.Count != StackMin {
			t.Errorf("Area 往返 = %+v, want %+v", got, area)
		}
	})
}

func TestJoin_满员优先于已开局的拒绝顺序(t *testing.T) {
	g := newWaitingGame()
	joinPlayers(t, g, MaxPlayers)
	if err := g.Start(); err != nil {
		t.Fatal(err)
	}

	// 检查顺序是 重复 → 满员 → 已开局，满员对局开局后仍按满员拒绝
	if _, err := g.Join(uuid.New(), "late"); !errors.Is(err, ErrGameFull) {
		t.Errorf("err = %v, want ErrGameFull", err)
	}
}

func TestPlayer_后备骰子池上限为二十(t *testing.T) {
	p := NewPlayer(uuid.New(), "A", ColorRed)

	if got := p.StoreDice(15); got != 15 {
		t.Errorf("存入 = %d, want 15", got)
	}
	if got := p.StoreDice(10); got != 5 {
		t.Errorf("超量存入 = %d, want 5", got)
	}
	if p.StoredDice != StoredDiceMax {
		t.Errorf("池 = %d, want %d", p.StoredDice, StoredDiceMax)
	}

	if got := p.TakeStoredDice(8); got != 8 {
		t.Errorf("取出 = %d, want 8", got)
	}
	if got := p.TakeStoredDice(100); got != 12 {
		t.Errorf("超量取出 = %d, want 12", got)
	}
	if p.StoredDice != 0 {
		t.Errorf("池 = %d, want 0", p.StoredDice)
	}
}

func TestColor_调色板耗尽应报错(t *testing.T) {
	for i := 0; i < MaxPlayers; i++ {
		if _, err := ColorFromIndex(i); err != nil {
			t.Fatalf("第 %d 个颜色取用失败: %v", i, err)
		}
	}
	if _, err := ColorFromIndex(MaxPlayers); !errors.Is(err, ErrColorExhausted) {
		t.Errorf("err = %v, want ErrColorExhausted", err)
	}
}
