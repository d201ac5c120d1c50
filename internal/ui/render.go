// File ui/render.go
package ui

import (
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font/basicfont"

	"hive_go/internal/game"
)

var fontFace = basicfont.Face7x13

// 配色：空格、双方棋子、选中与落点高亮
var (
	colorEmpty    = color.RGBA{0x3a, 0x3f, 0x4b, 0xff}
	colorUpper    = color.RGBA{0xd9, 0xb0, 0x4a, 0xff}
	colorLower    = color.RGBA{0x4a, 0x7d, 0xd9, 0xff}
	colorSelected = color.RGBA{0xe0, 0x5c, 0x5c, 0xff}
	colorTarget   = color.RGBA{0x57, 0xb8, 0x6a, 0xff}
	colorText     = color.RGBA{0x10, 0x10, 0x14, 0xff}
)

// 实心六边形贴图缓存，按 (半径,颜色) 生成一次反复贴
var hexCache = map[color.RGBA]*ebiten.Image{}

// hexImage returns a pointy-top filled hexagon of the configured radius.
func hexImage(fill color.RGBA) *ebiten.Image {
	if img := hexCache[fill]; img != nil {
		return img
	}

	// 2x 超采样后缩回，边缘更顺滑
	const spp = 2
	r := hexRadius * 0.94 * spp
	size := int(math.Ceil(hexRadius * 2 * spp))
	cx, cy := float64(size)/2, float64(size)/2

	var pts [6][2]float32
	for i := 0; i < 6; i++ {
		// 尖顶朝上：顶点从 -90° 起每 60° 一个
		a := math.Pi/3*float64(i) - math.Pi/2
		pts[i] = [2]float32{float32(cx + r*math.Cos(a)), float32(cy + r*math.Sin(a))}
	}

	white := ebiten.NewImage(1, 1)
	white.Fill(color.White)

	big := ebiten.NewImage(size, size)
	center := ebiten.Vertex{
		DstX:   float32(cx),
		DstY:   float32(cy),
		ColorR: float32(fill.R) / 255,
		ColorG: float32(fill.G) / 255,
		ColorB: float32(fill.B) / 255,
		ColorA: float32(fill.A) / 255,
	}
	for i := 0; i < 6; i++ {
		j := (i + 1) % 6
		v1 := center
		v2 := center
		v3 := center
		v2.DstX, v2.DstY = pts[i][0], pts[i][1]
		v3.DstX, v3.DstY = pts[j][0], pts[j][1]
		big.DrawTriangles([]ebiten.Vertex{v1, v2, v3}, []uint16{0, 1, 2}, white, nil)
	}

	small := ebiten.NewImage(size/spp, size/spp)
	op := &ebiten.DrawImageOptions{}
	op.Filter = ebiten.FilterLinear
	op.GeoM.Scale(1.0/spp, 1.0/spp)
	small.DrawImage(big, op)

	hexCache[fill] = small
	return small
}

func drawHex(dst *ebiten.Image, c game.Cell, fill color.RGBA) {
	img := hexImage(fill)
	x, y := cellToPixel(c)
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(x-float64(img.Bounds().Dx())/2, y-float64(img.Bounds().Dy())/2)
	dst.DrawImage(img, op)
}

func drawBoard(dst *ebiten.Image, b *game.Board, selected *game.Cell, targets map[game.Cell]bool) {
	for _, c := range b.AllCells() {
		fill := colorEmpty
		if top, ok := b.Top(c); ok {
			if top.Upper {
				fill = colorUpper
			} else {
				fill = colorLower
			}
		}
		if targets[c] {
			fill = colorTarget
		}
		if selected != nil && *selected == c {
			fill = colorSelected
		}
		drawHex(dst, c, fill)

		if top, ok := b.Top(c); ok {
			x, y := cellToPixel(c)
			label := string(top.Letter())
			if n := b.StackLen(c); n > 1 {
				label += "+"
			}
			w := len(label) * 7
			text.Draw(dst, label, fontFace, int(x)-w/2, int(y)+5, colorText)
		}
	}
}
