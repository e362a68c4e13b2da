package domain

import (
	"encoding/json"
	"fmt"
)

// Color 是玩家阵营色，按加入顺序从调色板里依次分配。
type Color int

const (
	ColorRed Color = iota
	ColorGreen
	ColorBlue
	ColorYellow
	ColorPurple
	ColorOrange

	colorCount
)

// MaxPlayers 等于调色板大小：颜色用尽即满员。
const MaxPlayers = int(colorCount)

var colorNames = [colorCount]string{
	ColorRed:    "red",
	ColorGreen:  "green",
	ColorBlue:   "blue",
	ColorYellow: "yellow",
	ColorPurple: "purple",
	ColorOrange: "orange",
}

var colorHex = [colorCount]string{
	ColorRed:    "#e74c3c",
	ColorGreen:  "#2ecc71",
	ColorBlue:   "#3498db",
	ColorYellow: "#f1c40f",
	ColorPurple: "#9b59b6",
	ColorOrange: "#e67e22",
}

// ColorFromIndex 按加入顺序取色，调色板耗尽返回 ErrColorExhausted。
func ColorFromIndex(i int) (Color, error) {
	if i < 0 || i >= int(colorCount) {
		return 0, ErrColorExhausted
	}
	return Color(i), nil
}

func (c Color) String() string {
	if c < 0 || c >= colorCount {
		return "unknown"
	}
	return colorNames[c]
}

// Hex 返回前端渲染用的十六进制色值。
func (c Color) Hex() string {
	if c < 0 || c >= colorCount {
		return "#000000"
	}
	return colorHex[c]
}

// MarshalJSON 以颜色名下发，客户端不关心内部序号。
func (c Color) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.String())
}

func (c *Color) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	for i, name := range colorNames {
		if name == s {
			*c = Color(i)
			return nil
		}
	}
	return fmt.Errorf("unknown color %q", s)
}
