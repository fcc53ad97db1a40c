package chart

import (
	"fmt"
	"html"
	"io"
	"math"
	"strconv"

	svg "github.com/ajstarks/svgo"
)

// Palette shared with the dashboard stylesheet.
const (
	ColorSuccess      = "#10b981"
	ColorDanger       = "#ef4444"
	ColorRenewable    = "#3b82f6"
	ColorNonRenewable = "#64748b"

	colorPanel = "#1e293b"
	colorGrid  = "#334155"
	colorMuted = "#94a3b8"
	colorText  = "#f8fafc"
	colorEmpty = "#475569"
)

const fontStyle = "font-family:'Segoe UI',Roboto,Helvetica,Arial,sans-serif"

// Segment is one slice of a donut chart.
type Segment struct {
	Label string
	Value float64
	Color string
}

// Bar is one column of a bar chart.
type Bar struct {
	Label string
	Value float64
	Color string
}

const (
	donutWidth  = 260
	donutHeight = 280
	donutRadius = 80
	donutStroke = 36
)

// Donut draws proportional segments around a ring, starting at twelve o'clock.
// Non-positive values are drawn as empty segments.
func Donut(segments []Segment) DrawFunc {
	return func(w io.Writer) error {
		canvas := svg.New(w)
		canvas.Start(donutWidth, donutHeight, `role="img"`, `class="donut-chart"`)

		cx, cy := donutWidth/2, donutRadius+donutStroke/2+12
		circumference := 2 * math.Pi * donutRadius

		var total float64
		for _, s := range segments {
			if s.Value > 0 {
				total += s.Value
			}
		}

		canvas.Gtransform(fmt.Sprintf("rotate(-90 %d %d)", cx, cy))
		if total <= 0 {
			canvas.Circle(cx, cy, donutRadius,
				fmt.Sprintf("fill:none;stroke:%s;stroke-width:%d", colorEmpty, donutStroke), `class="empty"`)
		} else {
			var offset float64
			for _, s := range segments {
				if s.Value <= 0 {
					continue
				}
				dash := s.Value / total * circumference
				canvas.Circle(cx, cy, donutRadius,
					fmt.Sprintf("fill:none;stroke:%s;stroke-width:%d;stroke-dasharray:%.3f %.3f;stroke-dashoffset:%.3f",
						s.Color, donutStroke, dash, circumference, -offset),
					`class="segment"`,
					attr("data-label", s.Label),
					attr("data-value", formatValue(s.Value)))
				offset += dash
			}
		}
		canvas.Circle(cx, cy, donutRadius-donutStroke/2-1, "fill:"+colorPanel)
		canvas.Gend()

		legendY := cy + donutRadius + donutStroke/2 + 24
		x := 24
		for _, s := range segments {
			canvas.Rect(x, legendY-10, 12, 12, "fill:"+s.Color)
			canvas.Text(x+18, legendY, s.Label, fmt.Sprintf("fill:%s;font-size:12px;%s", colorText, fontStyle))
			x += 18 + 8*len(s.Label) + 16
		}

		canvas.End()
		return nil
	}
}

const (
	barWidth  = 520
	barHeight = 280
	barTop    = 16
	barLeft   = 48
	barRight  = 16
	barBottom = 44
	gridLines = 4

	minBarSlot = 6
)

// Bars draws one column per bar, scaled to the largest value. The canvas
// widens when the bars would not fit minBarSlot each.
func Bars(bars []Bar) DrawFunc {
	return func(w io.Writer) error {
		plotW := barWidth - barLeft - barRight
		if need := len(bars) * minBarSlot; need > plotW {
			plotW = need
		}

		canvas := svg.New(w)
		canvas.Start(barLeft+plotW+barRight, barHeight, `role="img"`, `class="bar-chart"`)

		plotH := barHeight - barTop - barBottom

		scale := 0.0
		for _, b := range bars {
			scale = math.Max(scale, b.Value)
		}
		if scale <= 0 {
			scale = 1
		}

		for i := 0; i <= gridLines; i++ {
			y := barTop + plotH - plotH*i/gridLines
			canvas.Line(barLeft, y, barLeft+plotW, y, fmt.Sprintf("stroke:%s;stroke-width:1", colorGrid))
			canvas.Text(barLeft-6, y+4, formatValue(math.Round(scale*float64(i)/gridLines*10)/10),
				fmt.Sprintf("fill:%s;font-size:10px;text-anchor:end;%s", colorMuted, fontStyle))
		}

		if len(bars) == 0 {
			canvas.Text(barLeft+plotW/2, barTop+plotH/2, "No resources",
				fmt.Sprintf("fill:%s;font-size:12px;text-anchor:middle;%s", colorMuted, fontStyle))
			canvas.End()
			return nil
		}

		slot := plotW / len(bars)
		bw := slot * 6 / 10
		if bw < 1 {
			bw = 1
		}
		for i, b := range bars {
			v := math.Max(b.Value, 0)
			h := int(math.Round(v / scale * float64(plotH)))
			x := barLeft + i*slot + (slot-bw)/2
			y := barTop + plotH - h
			canvas.Roundrect(x, y, bw, h, 4, 4, "fill:"+b.Color,
				`class="bar"`,
				attr("data-label", b.Label),
				attr("data-value", formatValue(b.Value)))
			canvas.Text(x+bw/2, barTop+plotH+16, b.Label,
				fmt.Sprintf("fill:%s;font-size:11px;text-anchor:middle;%s", colorText, fontStyle))
		}

		canvas.End()
		return nil
	}
}

// attr renders an escaped XML attribute; svgo passes strings containing '='
// through as raw attributes.
func attr(name, value string) string {
	return name + `="` + html.EscapeString(value) + `"`
}

func formatValue(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
