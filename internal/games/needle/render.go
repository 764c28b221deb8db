package needle

import (
	"fmt"
	"math"
	"strings"

	"github.com/vovakirdan/ringrun/internal/core"
	"github.com/vovakirdan/ringrun/internal/games/needle/sim"
)

// Visual characters for rendering
const (
	NeedleChar    = '✚'
	RingMarker    = '◆'
	TrackRingChar = '◯'
	TrackNeedle   = '▲'
	BarFull       = '█'
	BarEmpty      = '░'
)

// Front view window in world units. Terminal cells are about twice as
// tall as wide, so X uses half the Y scale per cell.
const (
	viewCenterY = 0.5
	viewSpanY   = 6.0
)

// trackDepth is how far ahead the side track shows rings.
const trackDepth = 60.0

func zoneColor(z sim.HitZone) core.Color {
	switch z {
	case sim.ZoneCore:
		return core.ColorBrightYellow
	case sim.ZoneInner:
		return core.ColorYellow
	case sim.ZoneMiddle:
		return core.ColorOrange
	case sim.ZoneOuter:
		return core.ColorRed
	default:
		return core.ColorGray
	}
}

func zoneFill(z sim.HitZone) rune {
	switch z {
	case sim.ZoneCore:
		return '█'
	case sim.ZoneInner:
		return '▓'
	case sim.ZoneMiddle:
		return '▒'
	case sim.ZoneOuter:
		return '░'
	default:
		return ' '
	}
}

func multiplierText(m int) string {
	return fmt.Sprintf("×%d", m)
}

// Render draws the current game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	if g.run == nil {
		return
	}
	w, h := dst.Width(), dst.Height()

	g.drawHUD(dst)

	trackW := max(12, w/4)
	view := core.NewRect(0, 2, w-trackW, h-4)
	track := core.NewRect(w-trackW, 2, trackW, h-4)
	g.drawFrontView(dst, view)
	g.drawTrack(dst, track)

	if g.feedbackTicks > 0 && g.feedback != "" {
		dst.DrawTextCentered(h-2, g.feedback, g.feedbackColor)
	} else if g.banner != "" {
		dst.DrawTextCentered(h-2, g.banner, core.ColorBrightCyan)
	}

	if g.paused {
		drawMessage(dst, []string{"PAUSED", "", "Press P to resume"}, core.ColorWhite)
	}
	if snap, ok := g.run.Result(); ok {
		g.drawGameOver(dst, snap)
	}
}

func (g *Game) drawHUD(dst *core.Screen) {
	snap := g.run.Snapshot()

	dst.DrawText(1, 0, fmt.Sprintf("Score %d", snap.Score))
	multColor := core.ColorWhite
	if snap.Multiplier > 1 {
		multColor = core.ColorBrightYellow
	}
	dst.DrawTextColored(16, 0, multiplierText(snap.Multiplier), multColor)
	dst.DrawText(21, 0, fmt.Sprintf("Streak %d", snap.Streak))
	right := fmt.Sprintf("Best %d  Hi %d", snap.AllTimeBestStreak, snap.HighScore)
	dst.DrawTextColored(dst.Width()-len(right)-1, 0, right, core.ColorGray)

	cfg := g.run.Config().Speed
	barW := 20
	filled := int(math.Round(core.InverseLerp(cfg.Min, cfg.Max, snap.Speed) * float64(barW)))
	bar := strings.Repeat(string(BarFull), filled) + strings.Repeat(string(BarEmpty), barW-filled)
	speedColor := core.ColorGreen
	if snap.Speed < cfg.Start*0.5 {
		speedColor = core.ColorBrightRed
	}
	dst.DrawText(1, 1, "Speed")
	dst.DrawTextColored(7, 1, bar, speedColor)
	dst.DrawText(8+barW, 1, fmt.Sprintf("%5.1f", snap.Speed))

	status := fmt.Sprintf("Rings %d  Acc %.0f%%", snap.TotalRings, snap.Accuracy)
	if g.run.Holding() {
		status = "SLOW  " + status
	}
	dst.DrawTextColored(dst.Width()-len([]rune(status))-1, 1, status, core.ColorCyan)
}

// drawFrontView shows the next ring head-on: its hit zones around the
// ring center, a marker for its rotation and the needle's position.
func (g *Game) drawFrontView(dst *core.Screen, r core.Rect) {
	dst.DrawBox(r, core.ColorGray)
	inner := core.NewRect(r.X+1, r.Y+1, r.W-2, r.H-2)
	if inner.W <= 0 || inner.H <= 0 {
		return
	}

	sy := viewSpanY / float64(inner.H)
	sx := sy / 2
	cx, cy := inner.Center()
	toWorld := func(x, y int) (float64, float64) {
		return float64(x-cx) * sx, viewCenterY - float64(y-cy)*sy
	}
	toCell := func(wx, wy float64) (int, int) {
		return cx + int(math.Round(wx/sx)), cy - int(math.Round((wy-viewCenterY)/sy))
	}

	zones := g.run.Config().HitZones
	ring, ok := g.run.NextRing()
	if ok {
		for y := inner.Y; y < inner.Bottom(); y++ {
			for x := inner.X; x < inner.Right(); x++ {
				wx, wy := toWorld(x, y)
				d := math.Hypot(wx-ring.Position.X, wy-ring.Position.Y)
				z := sim.Classify(d, zones)
				if z != sim.ZoneMiss {
					dst.SetColored(x, y, zoneFill(z), zoneColor(z))
				}
			}
		}
		rad := ring.Angle * math.Pi / 180
		mx, my := toCell(ring.Position.X+zones.Outer*math.Cos(rad), ring.Position.Y+zones.Outer*math.Sin(rad))
		if inner.Contains(mx, my) {
			dst.SetColored(mx, my, RingMarker, core.ColorWhite)
		}

		gap := ring.Position.Z - g.run.Needle().Z
		label := fmt.Sprintf(" next ring %.1fm ", gap)
		dst.DrawTextColored(r.X+2, r.Y, label, core.ColorGray)
	}

	nx, ny := toCell(g.run.Needle().X, g.run.Needle().Y)
	if inner.Contains(nx, ny) {
		dst.SetColored(nx, ny, NeedleChar, core.ColorBrightCyan)
	}
}

// drawTrack shows upcoming rings along the forward axis, needle at the bottom.
func (g *Game) drawTrack(dst *core.Screen, r core.Rect) {
	dst.DrawBox(r, core.ColorGray)
	inner := core.NewRect(r.X+1, r.Y+1, r.W-2, r.H-2)
	if inner.W <= 0 || inner.H <= 0 {
		return
	}
	mid := inner.X + inner.W/2
	bottom := inner.Bottom() - 1

	needleZ := g.run.Needle().Z
	for _, ring := range g.run.Rings() {
		ahead := ring.Position.Z - needleZ
		if ring.Passed || ahead < 0 || ahead > trackDepth {
			continue
		}
		y := bottom - int(math.Round(ahead/trackDepth*float64(inner.H-1)))
		color := core.ColorWhite
		if ring.SpeedMultiplier < 1 {
			color = core.ColorBrightCyan
		}
		dst.SetColored(mid, y, TrackRingChar, color)
		dst.DrawTextColored(mid+2, y, fmt.Sprintf("%.0f", ahead), core.ColorGray)
	}
	dst.SetColored(mid, bottom, TrackNeedle, core.ColorBrightCyan)
}

func (g *Game) drawGameOver(dst *core.Screen, snap sim.Snapshot) {
	lines := []string{
		"RUN OVER",
		"",
		fmt.Sprintf("Score %d   Best streak %d   Peak %s", snap.Score, snap.BestStreak, multiplierText(snap.PeakMultiplier)),
		fmt.Sprintf("Core %d  Inner %d  Middle %d  Outer %d  Miss %d",
			snap.Hits.Core, snap.Hits.Inner, snap.Hits.Middle, snap.Hits.Outer, snap.Hits.Miss),
		fmt.Sprintf("Accuracy %.1f%%   Distance %.0fm", snap.Accuracy, snap.Distance),
	}
	if snap.NewHighScore {
		lines = append(lines, "", "NEW HIGH SCORE!")
	} else if snap.NewBestStreak {
		lines = append(lines, "", "NEW BEST STREAK!")
	}
	lines = append(lines, "", "R restart  ·  B menu  ·  Q quit")
	drawMessage(dst, lines, core.ColorBrightWhite)
}

// drawMessage draws a box of centered lines in the middle of the screen.
func drawMessage(dst *core.Screen, lines []string, c core.Color) {
	boxW := 0
	for _, l := range lines {
		boxW = max(boxW, len([]rune(l)))
	}
	boxW += 4
	boxH := len(lines) + 2
	boxX := (dst.Width() - boxW) / 2
	boxY := (dst.Height() - boxH) / 2

	box := core.NewRect(boxX, boxY, boxW, boxH)
	dst.DrawRect(box, ' ')
	dst.DrawBox(box, c)
	for i, l := range lines {
		x := boxX + (boxW-len([]rune(l)))/2
		dst.DrawTextColored(x, boxY+1+i, l, c)
	}
}
