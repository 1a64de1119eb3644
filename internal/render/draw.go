package render

import (
	"fmt"
	"math"

	"github.com/vadimyer/driftfield/internal/sim"
)

// Terminal cells are roughly twice as tall as wide; the vertical scale
// is halved so circles look circular.
const cellAspect = 2.0

// Draw is the render adapter: a pure function from a snapshot to screen
// cells. Obstacles are filled circles, the ship an oriented triangle,
// plus a score line and a crash overlay once the session is over.
func Draw(snap sim.Snapshot, dst *Screen) {
	dst.Clear()

	sx := float64(dst.Width()) / snap.Width
	sy := float64(dst.Height()) / snap.Height

	for _, ob := range snap.Obstacles {
		drawCircle(dst, ob.Pos, ob.Radius, sx, sy)
	}
	drawShip(dst, snap.Ship, sx, sy)

	dst.DrawText(1, 0, fmt.Sprintf(" Score: %d ", snap.Score), ColorWhite)
	dst.DrawText(1, 1, fmt.Sprintf(" Seed: %d ", snap.Seed), ColorGray)

	if snap.GameOver {
		drawCrashOverlay(dst, snap.Score)
	}
}

// drawCircle rasterizes a filled field-space circle, compensating for
// the cell aspect ratio.
func drawCircle(dst *Screen, center sim.Vec, radius, sx, sy float64) {
	cx := center.X * sx
	cy := center.Y * sy
	rx := radius * sx
	ry := radius * sy * cellAspect / 2
	if rx < 0.5 {
		rx = 0.5
	}
	if ry < 0.5 {
		ry = 0.5
	}

	for y := int(cy - ry); y <= int(cy+ry)+1; y++ {
		for x := int(cx - rx); x <= int(cx+rx)+1; x++ {
			dx := (float64(x) + 0.5 - cx) / rx
			dy := (float64(y) + 0.5 - cy) / ry
			if dx*dx+dy*dy <= 1 {
				dst.Set(x, y, '▒', ColorRed)
			}
		}
	}
}

// drawShip rasterizes the agent as a triangle oriented along its
// heading: a tip cell ahead of the center and two trailing wing cells.
func drawShip(dst *Screen, ship sim.Ship, sx, sy float64) {
	cx := ship.Pos.X * sx
	cy := ship.Pos.Y * sy
	// Triangle extent in cells, clamped so the ship stays visible on
	// tiny terminals.
	ext := ship.Radius * sx
	if ext < 1 {
		ext = 1
	}

	vertex := func(angle, dist float64) (int, int) {
		return int(cx + math.Cos(angle)*dist), int(cy + math.Sin(angle)*dist*cellAspect/2)
	}

	color := ColorCyan
	if !ship.Alive {
		color = ColorGray
	}

	tipX, tipY := vertex(ship.Heading, ext)
	leftX, leftY := vertex(ship.Heading+2.5, ext)
	rightX, rightY := vertex(ship.Heading-2.5, ext)

	dst.Set(leftX, leftY, '▪', color)
	dst.Set(rightX, rightY, '▪', color)
	dst.Set(int(cx), int(cy), '◆', color)
	dst.Set(tipX, tipY, headingRune(ship.Heading), color)
}

// headingRune picks the arrow glyph for the nearest of eight compass
// directions (screen coordinates, y down).
func headingRune(heading float64) rune {
	arrows := []rune{'→', '↘', '↓', '↙', '←', '↖', '↑', '↗'}
	sector := math.Mod(heading, 2*math.Pi)
	if sector < 0 {
		sector += 2 * math.Pi
	}
	idx := int(math.Round(sector/(math.Pi/4))) % 8
	return arrows[idx]
}

func drawCrashOverlay(dst *Screen, score int) {
	title := "CRASHED"
	subtitle := fmt.Sprintf("Survived %d seconds  |  R restart, Q quit", score)

	boxW := len(subtitle) + 4
	boxH := 5
	boxX := (dst.Width() - boxW) / 2
	boxY := (dst.Height() - boxH) / 2

	dst.FillRect(boxX, boxY, boxW, boxH, ' ', ColorDefault)
	dst.DrawBox(boxX, boxY, boxW, boxH, ColorOrange)
	dst.DrawText(boxX+(boxW-len(title))/2, boxY+1, title, ColorOrange)
	dst.DrawText(boxX+(boxW-len(subtitle))/2, boxY+3, subtitle, ColorWhite)
}
