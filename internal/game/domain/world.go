package domain

import (
	"math/rand/v2"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// World 是一局地图：区域 id 到区域的映射。区域集合开局后不增不减，
// 变化的只有归属和骰子堆。
type World struct {
	Areas map[uuid.UUID]*Area `json:"areas"`
}

func NewWorld() *World {
	return &World{Areas: make(map[uuid.UUID]*Area)}
}

// ParseWorld 从文本布局构建地图：每个非空行一个区域，
// 行内以空白分隔的 "x,y" 为格子坐标；解析失败的坐标静默跳过，
// 一行里一个合法格子都没有则不生成区域。
func ParseWorld(s string) *World {
	w := NewWorld()
	for _, line := range strings.Split(s, "\n") {
		var tiles []Tile
		for _, token := range strings.Fields(line) {
			xs, ys, ok := strings.Cut(token, ",")
			if !ok {
				continue
			}
			x, err := strconv.Atoi(xs)
			if err != nil {
				continue
			}
			y, err := strconv.Atoi(ys)
			if err != nil {
				continue
			}
			tiles = append(tiles, NewTile(x, y))
		}
		if len(tiles) > 0 {
			area := NewArea(tiles)
			w.Areas[area.ID] = area
		}
	}
	return w
}

// ValidateAttack 按固定顺序校验一次进攻的合法性：
// 双方区域存在 → 接壤 → 出发区域归攻方 → 目标不归攻方 → 出发区域骰子 >1。
// 校验失败返回的错误携带相关 id，便于前端定位。
func (w *World) ValidateAttack(fromID, toID, playerID uuid.UUID) error {
	from, ok := w.Areas[fromID]
	if !ok {
		return ErrAreaNotFound.WithData("area_id", fromID.String())
	}
	to, ok := w.Areas[toID]
	if !ok {
		return ErrAreaNotFound.WithData("area_id", toID.String())
	}
	if !from.IsAdjacent(to) {
		return ErrAreasNotAdjacent.
			WithData("from_id", fromID.String()).
			WithData("to_id", toID.String())
	}
	if !from.IsOwnedBy(playerID) {
		return ErrAreaNotOwned.
			WithData("area_id", fromID.String()).
			WithData("player_id", playerID.String())
	}
	if to.IsOwnedBy(playerID) {
		return ErrSelfAttack
	}
	if from.Stack.IsSingle() {
		return ErrNotEnoughDice.WithData("area_id", fromID.String())
	}
	return nil
}

// LargestConnectedGroup 返回玩家最大连通领地块的区域数，
// 用于回合结算的奖励骰子数。
func (w *World) LargestConnectedGroup(playerID uuid.UUID) int {
	visited := make(map[uuid.UUID]bool, len(w.Areas))
	largest := 0
	for id, area := range w.Areas {
		if area.IsOwnedBy(playerID) && !visited[id] {
			if size := w.dfs(id, playerID, visited); size > largest {
				largest = size
			}
		}
	}
	return largest
}

func (w *World) dfs(startID, playerID uuid.UUID, visited map[uuid.UUID]bool) int {
	visited[startID] = true
	size := 1

	start, ok := w.Areas[startID]
	if !ok {
		return size
	}
	for id, other := range w.Areas {
		if !visited[id] && other.IsOwnedBy(playerID) && start.IsAdjacent(other) {
			size += w.dfs(id, playerID, visited)
		}
	}
	return size
}

// AddBonusDie 向玩家随机一个未满的区域放一颗奖励骰子。
// 玩家没有可放置的区域时返回 false。
func (w *World) AddBonusDie(playerID uuid.UUID) bool {
	var eligible []uuid.UUID
	for id, area := range w.Areas {
		if area.IsOwnedBy(playerID) && !area.Stack.IsFull() {
			eligible = append(eligible, id)
		}
	}
	if len(eligible) == 0 {
		return false
	}
	chosen := eligible[rand.IntN(len(eligible))]
	// 已过滤掉满堆，这里不会溢出
	_ = w.Areas[chosen].Stack.Increment()
	return true
}

// IsWinner 判胜：除该玩家外所有区域都无主即获胜。
func (w *World) IsWinner(playerID uuid.UUID) bool {
	for _, area := range w.Areas {
		if !area.IsOwnedBy(playerID) && !area.IsUnowned() {
			return false
		}
	}
	return true
}

// Clone 返回整张地图的深拷贝。
func (w *World) Clone() *World {
	cp := &World{Areas: make(map[uuid.UUID]*Area, len(w.Areas))}
	for id, area := range w.Areas {
		cp.Areas[id] = area.Clone()
	}
	return cp
}
