package domain

import "math/rand/v2"

const (
	// StackMin 是区域驻留骰子的下限：区域永远至少保有 1 颗。
	StackMin = 1
	// StackMax 是区域驻留骰子的上限。
	StackMax = 8
)

// Stack 是一个区域上的骰子堆，数量始终在 [StackMin, StackMax] 内。
type Stack struct {
	Count int `json:"count"`
}

// NewStack 返回最小骰子堆。
func NewStack() Stack {
	return Stack{Count: StackMin}
}

func (s Stack) IsSingle() bool {
	return s.Count <= StackMin
}

func (s Stack) IsFull() bool {
	return s.Count >= StackMax
}

// Increment 加一颗骰子，越过上限返回 ErrStackOverflow。
func (s *Stack) Increment() error {
	if s.Count >= StackMax {
		return ErrStackOverflow
	}
	s.Count++
	return nil
}

// Decrement 减一颗骰子，跌破下限返回 ErrStackUnderflow。
func (s *Stack) Decrement() error {
	if s.Count <= StackMin {
		return ErrStackUnderflow
	}
	s.Count--
	return nil
}

// Split 把骰子堆拆成（留守 1 颗，出征 count-1 颗）。
// 只有 1 颗时无法拆分，返回 ErrStackUnderflow。
func (s Stack) Split() (remaining, moved Stack, err error) {
	if s.Count <= StackMin {
		return Stack{}, Stack{}, ErrStackUnderflow
	}
	return Stack{Count: StackMin}, Stack{Count: s.Count - StackMin}, nil
}

// Defeat 攻击失败后重置为最小骰子堆。
func (s *Stack) Defeat() {
	s.Count = StackMin
}

// AttackRoll 掷攻击骰：count 颗 1..6 均匀骰之和。
func (s Stack) AttackRoll() int {
	return s.roll()
}

// DefenseRoll 掷防御骰。防守方用全部骰子参与防御（与攻击对称），
// 这是规则设定，不是实现偏差。
func (s Stack) DefenseRoll() int {
	return s.roll()
}

func (s Stack) roll() int {
	sum := 0
	for i := 0; i < s.Count; i++ {
		sum += rand.IntN(6) + 1
	}
	return sum
}
