// File ui/input.go
package ui

import (
	"math"

	"hive_go/internal/game"
)

const (
	WindowWidth  = 900
	WindowHeight = 760

	hexRadius = 26.0
)

// 轴向坐标的尖顶布局：x = r*(√3*p + √3/2*q)，y = r*3/2*q。
// 原点平移让 p 为负的行也落在窗口里。
const (
	originX = 180.0
	originY = 60.0
)

func cellToPixel(c game.Cell) (float64, float64) {
	x := hexRadius * (math.Sqrt(3)*float64(c.P) + math.Sqrt(3)/2*float64(c.Q))
	y := hexRadius * 1.5 * float64(c.Q)
	return originX + x + hexRadius, originY + y + hexRadius
}

func cubeRound(xf, yf, zf float64) (int, int, int) {
	rx := math.Round(xf)
	ry := math.Round(yf)
	rz := math.Round(zf)

	dx := math.Abs(rx - xf)
	dy := math.Abs(ry - yf)
	dz := math.Abs(rz - zf)

	if dx >= dy && dx >= dz {
		rx = -ry - rz
	} else if dy >= dz {
		ry = -rx - rz
	} else {
		rz = -rx - ry
	}
	return int(rx), int(ry), int(rz)
}

// pixelToCell 把屏幕像素坐标反算回格子，出界返回 false。
func pixelToCell(fx, fy float64, b *game.Board) (game.Cell, bool) {
	x := fx - originX - hexRadius
	y := fy - originY - hexRadius

	qf := y / (hexRadius * 1.5)
	pf := x/(hexRadius*math.Sqrt(3)) - qf/2

	xf, zf := pf, qf
	yf := -xf - zf
	rp, _, rq := cubeRound(xf, yf, zf)

	c := game.Cell{P: rp, Q: rq}
	if !b.InBoard(c) {
		return game.Cell{}, false
	}
	return c, true
}
