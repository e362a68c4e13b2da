package domain

import (
	"errors"
	"testing"

	"github.com/google/uuid"
)

func areaWithTile(x, y int) *Area {
	return NewArea([]Tile{NewTile(x, y)})
}

func worldFromAreas(areas ...*Area) *World {
	w := NewWorld()
	for _, a := range areas {
		w.Areas[a.ID] = a
	}
	return w
}

func TestParseWorld_每个非空行生成一个区域(t *testing.T) {
	w := ParseWorld("0,0 1,0\n2,0 3,0\n4,0 5,0")
	if len(w.Areas) != 3 {
		t.Errorf("区域数 = %d, want 3", len(w.Areas))
	}
	for _, area := range w.Areas {
		if len(area.Tiles) != 2 {
			t.Errorf("格子数 = %d, want 2", len(area.Tiles))
		}
		if area.Stack.Count != StackMin {
			t.Errorf("初始骰子 = %d, want %d", area.Stack.Count, StackMin)
		}
		if !area.IsUnowned() {
			t.Error("新区域应无主")
		}
	}
}

func TestParseWorld_坏坐标静默跳过空行忽略(t *testing.T) {
	w := ParseWorld("0,0 invalid 1,1\nno_comma\n\n8,x 2,2")
	// 第一行两个合法格子；第二行无合法格子不生成；第四行一个合法格子
	if len(w.Areas) != 2 {
		t.Fatalf("区域数 = %d, want 2", len(w.Areas))
	}
}

func TestParseWorld_空输入生成空地图(t *testing.T) {
	if w := ParseWorld(""); len(w.Areas) != 0 {
		t.Errorf("区域数 = %d, want 0", len(w.Areas))
	}
}

func TestValidateAttack_按固定顺序拒绝非法进攻(t *testing.T) {
	attacker := uuid.New()
	defender := uuid.New()

	from := areaWithTile(0, 0)
	from.SetOwner(attacker)
	from.Stack.Count = 3
	to := areaWithTile(0, 1)
	to.SetOwner(defender)
	far := areaWithTile(9, 9)
	far.SetOwner(defender)
	mine := areaWithTile(1, 0)
	mine.SetOwner(attacker)
	single := areaWithTile(0, 2)
	single.SetOwner(attacker)

	w := worldFromAreas(from, to, far, mine, single)

	cases := []struct {
		name    string
		from    uuid.UUID
		to      uuid.UUID
		player  uuid.UUID
		wantErr error
	}{
		{"合法进攻", from.ID, to.ID, attacker, nil},
		{"出发区域不存在", uuid.New(), to.ID, attacker, ErrAreaNotFound},
		{"目标区域不存在", from.ID, uuid.New(), attacker, ErrAreaNotFound},
		{"不接壤", from.ID, far.ID, attacker, ErrAreasNotAdjacent},
		{"出发区域不属于攻方", from.ID, to.ID, defender, ErrAreaNotOwned},
		{"不能攻击自己", from.ID, mine.ID, attacker, ErrSelfAttack},
		{"单骰无法进攻", single.ID, to.ID, attacker, ErrNotEnoughDice},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := w.ValidateAttack(tc.from, tc.to, tc.player)
			if tc.wantErr == nil {
				if err != nil {
					t.Errorf("err = %v, want nil", err)
				}
				return
			}
			if !errors.Is(err, tc.wantErr) {
				t.Errorf("err = %v, want %v", err, tc.wantErr)
			}
		})
	}
}

func TestLargestConnectedGroup_只统计连通的己方区域(t *testing.T) {
	player := uuid.New()

	a1 := areaWithTile(0, 0)
	a1.SetOwner(player)
	a2 := areaWithTile(0, 1)
	a2.SetOwner(player)
	a3 := areaWithTile(5, 5) // 孤立
	a3.SetOwner(player)
	other := areaWithTile(0, 2) // 他人区域不计入

	w := worldFromAreas(a1, a2, a3, other)
	if got := w.LargestConnectedGroup(player); got != 2 {
		t.Errorf("最大连通块 = %d, want 2", got)
	}
}

func TestLargestConnectedGroup_无领地返回零(t *testing.T) {
	w := worldFromAreas(areaWithTile(0, 0))
	if got := w.LargestConnectedGroup(uuid.New()); got != 0 {
		t.Errorf("最大连通块 = %d, want 0", got)
	}
}

func TestAddBonusDie_放入未满的己方区域(t *testing.T) {
	player := uuid.New()
	area := areaWithTile(0, 0)
	area.SetOwner(player)

	w := worldFromAreas(area)
	if !w.AddBonusDie(player) {
		t.Fatal("应成功放置奖励骰子")
	}
	if area.Stack.Count != StackMin+1 {
		t.Errorf("Count = %d, want %d", area.Stack.Count, StackMin+1)
	}
}

func TestAddBonusDie_全满或无领地返回假(t *testing.T) {
	player := uuid.New()
	full := areaWithTile(0, 0)
	full.SetOwner(player)
	full.Stack.Count = StackMax

	w := worldFromAreas(full)
	if w.AddBonusDie(player) {
		t.Error("全满时不应放置")
	}
	if w.AddBonusDie(uuid.New()) {
		t.Error("无领地时不应放置")
	}
}

func TestIsWinner_其余区域全部无主即获胜(t *testing.T) {
	player := uuid.New()
	mine := areaWithTile(0, 0)
	mine.SetOwner(player)
	neutral := areaWithTile(1, 0)

	w := worldFromAreas(mine, neutral)
	if !w.IsWinner(player) {
		t.Error("其余区域无主应判胜")
	}

	enemy := areaWithTile(2, 0)
	enemy.SetOwner(uuid.New())
	w.Areas[enemy.ID] = enemy
	if w.IsWinner(player) {
		t.Error("仍有敌方区域不应判胜")
	}
}

func TestWorldClone_深拷贝互不影响(t *testing.T) {
	player := uuid.New()
	area := areaWithTile(0, 0)
	area.SetOwner(player)

	w := worldFromAreas(area)
	cp := w.Clone()

	cp.Areas[area.ID].Stack.Count = 5
	*cp.Areas[area.ID].Owner = uuid.New()

	if w.Areas[area.ID].Stack.Count != StackMin {
		t.Error("拷贝的修改泄漏回原地图")
	}
	if *w.Areas[area.ID].Owner != player {
		t.Error("拷贝的归属修改泄漏回原地图")
	}
}

func TestAreaCenter_取所有格子世界坐标均值(t *testing.T) {
	area := NewArea([]Tile{NewTile(1, 0), NewTile(1, 1)})
	x, y := area.Center()
	if x != 1.5 || y != 1.0 {
		t.Errorf("Center = (%v, %v), want (1.5, 1.0)", x, y)
	}
}
