package domain

// TileSize 是单个格子在世界坐标系中的边长。
const TileSize = 1.0

// Tile 是交错六边形网格上的一个格子，左上角为 (0,0)。
// 纯值类型，构造后不可变。
type Tile struct {
	X int `json:"x"`
	Y int `json:"y"`
}

func NewTile(x, y int) Tile {
	return Tile{X: x, Y: y}
}

// WorldCoordinates 把格子坐标换算成世界坐标（格子中心点）。
// 偶数列整体向下错开半格。
func (t Tile) WorldCoordinates() (float64, float64) {
	wx := float64(t.X)*TileSize + TileSize/2
	wy := float64(t.Y)*TileSize + TileSize/2
	if t.X%2 == 0 {
		wy += TileSize / 2
	}
	return wx, wy
}

// IsAdjacent 判断两个格子是否为六边形相邻。
// 同列相邻：(x, y±1)；邻列相邻：(x±1, y) 加上随列奇偶错开的
// 对角格——偶数列是 (x±1, y+1)，奇数列是 (x±1, y-1)。
// 每个格子恰好六个邻居，关系对称；自身不与自身相邻。
func (t Tile) IsAdjacent(other Tile) bool {
	dx := abs(t.X - other.X)
	dy := other.Y - t.Y

	switch dx {
	case 0:
		return dy == 1 || dy == -1
	case 1:
		if dy == 0 {
			return true
		}
		if t.X%2 == 0 {
			return dy == 1
		}
		return dy == -1
	default:
		return false
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
