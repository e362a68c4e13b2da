package domain

import "github.com/google/uuid"

// StoredDiceMax 是玩家后备骰子池上限，超出部分直接丢弃。
const StoredDiceMax = 20

// Player 是对局内的一名玩家。ID 来自账号体系，Color 按加入顺序分配。
type Player struct {
	ID         uuid.UUID `json:"id"`
	Name       string    `json:"name"`
	Color      Color     `json:"color"`
	StoredDice int       `json:"stored_dice"`
}

func NewPlayer(id uuid.UUID, name string, color Color) *Player {
	return &Player{ID: id, Name: name, Color: color}
}

// StoreDice 把 n 颗骰子存入后备池，返回实际存入数量。
func (p *Player) StoreDice(n int) int {
	if n <= 0 {
		return 0
	}
	free := StoredDiceMax - p.StoredDice
	if n > free {
		n = free
	}
	p.StoredDice += n
	return n
}

// TakeStoredDice 从后备池取出至多 n 颗骰子，返回实际取出数量。
func (p *Player) TakeStoredDice(n int) int {
	if n <= 0 {
		return 0
	}
	if n > p.StoredDice {
		n = p.StoredDice
	}
	p.StoredDice -= n
	return n
}

// Clone 返回玩家的深拷贝。
func (p *Player) Clone() *Player {
	cp := *p
	return &cp
}
