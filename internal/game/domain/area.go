package domain

import "github.com/google/uuid"

// Area 是由若干相连格子组成的一块领地，归属可变，格子集合不变。
type Area struct {
	ID    uuid.UUID  `json:"id"`
	Owner *uuid.UUID `json:"owner,omitempty"`
	Tiles []Tile     `json:"tiles"`
	Stack Stack      `json:"stack"`
}

func NewArea(tiles []Tile) *Area {
	return &Area{
		ID:    uuid.New(),
		Tiles: tiles,
		Stack: NewStack(),
	}
}

// Center 返回区域所有格子世界坐标的算术平均，用作前端锚点。
func (a *Area) Center() (float64, float64) {
	if len(a.Tiles) == 0 {
		return 0, 0
	}
	var sx, sy float64
	for _, t := range a.Tiles {
		x, y := t.WorldCoordinates()
		sx += x
		sy += y
	}
	n := float64(len(a.Tiles))
	return sx / n, sy / n
}

// IsAdjacent 判断两个区域是否接壤：任意一对格子相邻即接壤。
func (a *Area) IsAdjacent(other *Area) bool {
	for _, t := range a.Tiles {
		for _, o := range other.Tiles {
			if t.IsAdjacent(o) {
				return true
			}
		}
	}
	return false
}

func (a *Area) IsUnowned() bool {
	return a.Owner == nil
}

func (a *Area) IsOwnedBy(player uuid.UUID) bool {
	return a.Owner != nil && *a.Owner == player
}

// SetOwner 变更归属。
func (a *Area) SetOwner(player uuid.UUID) {
	owner := player
	a.Owner = &owner
}

// Clone 返回区域的深拷贝。
func (a *Area) Clone() *Area {
	cp := &Area{
		ID:    a.ID,
		Tiles: make([]Tile, len(a.Tiles)),
		Stack: a.Stack,
	}
	copy(cp.Tiles, a.Tiles)
	if a.Owner != nil {
		owner := *a.Owner
		cp.Owner = &owner
	}
	return cp
}
