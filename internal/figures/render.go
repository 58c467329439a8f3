package figures

import (
	"bufio"
	"fmt"
	"image/color"
	"io"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"strings"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"github.com/san-kum/pendsim/internal/config"
	"github.com/san-kum/pendsim/internal/dynamo"
)

const (
	PhaseFile       = "diagrame_phase"
	HamiltonianFile = "hamiltonien"
	ErrorFile       = "erreur"
)

// Renderer writes figures into Dir. Width and Height are in inches.
type Renderer struct {
	Dir       string
	DPI       int
	Format    string
	Width     float64
	Height    float64
	Normalize bool
	Logger    *slog.Logger
}

func NewRenderer(c config.FiguresConfig, logger *slog.Logger) *Renderer {
	return &Renderer{
		Dir:       c.Dir,
		DPI:       c.DPI,
		Format:    c.Format,
		Width:     c.Width,
		Height:    c.Height,
		Normalize: c.Normalize,
		Logger:    logger,
	}
}

func (r *Renderer) logger() *slog.Logger {
	if r.Logger == nil {
		return slog.Default()
	}
	return r.Logger
}

// ext validates the output format and returns the file extension.
func (r *Renderer) ext() (string, error) {
	switch f := strings.ToLower(r.Format); f {
	case "png", "tiff":
		return f, nil
	case "jpg", "jpeg":
		return "jpg", nil
	default:
		return "", dynamo.InvalidArgument("figures", "format", r.Format, "expected png, jpg or tiff")
	}
}

func encoder(ext string, c *vgimg.Canvas) io.WriterTo {
	switch ext {
	case "jpg":
		return vgimg.JpegCanvas{Canvas: c}
	case "tiff":
		return vgimg.TiffCanvas{Canvas: c}
	default:
		return vgimg.PngCanvas{Canvas: c}
	}
}

func (r *Renderer) save(p *plot.Plot, name string) (string, error) {
	ext, err := r.ext()
	if err != nil {
		return "", err
	}
	if r.DPI <= 0 {
		return "", dynamo.InvalidArgument("figures", "dpi", r.DPI, "must be positive")
	}
	if !(r.Width > 0) || !(r.Height > 0) {
		return "", dynamo.InvalidArgument("figures", "size", [2]float64{r.Width, r.Height}, "must be positive")
	}

	if err := os.MkdirAll(r.Dir, 0o755); err != nil {
		return "", fmt.Errorf("cannot create directory: %w", err)
	}
	path := filepath.Join(r.Dir, name+"."+ext)

	c := vgimg.NewWith(
		vgimg.UseWH(vg.Length(r.Width)*vg.Inch, vg.Length(r.Height)*vg.Inch),
		vgimg.UseDPI(r.DPI),
	)
	p.Draw(draw.New(c))

	if err := writeFile(path, encoder(ext, c)); err != nil {
		return "", err
	}

	r.logger().Debug("figure written", slog.String("path", path), slog.Int("dpi", r.DPI))
	return path, nil
}

// writeFile encodes w into path. A partially written file is removed.
func writeFile(path string, w io.WriterTo) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("cannot create %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = fmt.Errorf("cannot close %s: %w", path, cerr)
		}
		if err != nil {
			os.Remove(path)
		}
	}()

	bw := bufio.NewWriter(f)
	if _, err := w.WriteTo(bw); err != nil {
		return fmt.Errorf("cannot write %s: %w", path, err)
	}
	return bw.Flush()
}

func stylePlot(p *plot.Plot) {
	p.Title.TextStyle.Font.Size = vg.Points(18)
	p.Title.Padding = vg.Points(10)

	p.X.Label.TextStyle.Font.Size = vg.Points(14)
	p.Y.Label.TextStyle.Font.Size = vg.Points(14)
	p.X.Label.Padding = vg.Points(8)
	p.Y.Label.Padding = vg.Points(8)

	p.X.Tick.Label.Font.Size = vg.Points(11)
	p.Y.Tick.Label.Font.Size = vg.Points(11)

	p.Legend.Top = true
	p.Legend.TextStyle.Font.Size = vg.Points(11)

	p.Add(plotter.NewGrid())
}

func limitedTicker(maxLabels int, labelFmt string) plot.Ticker {
	if maxLabels < 2 {
		maxLabels = 2
	}
	return plot.TickerFunc(func(min, max float64) []plot.Tick {
		if math.IsNaN(min) || math.IsNaN(max) || math.IsInf(min, 0) || math.IsInf(max, 0) {
			return nil
		}
		if min == max {
			return []plot.Tick{{Value: min, Label: fmt.Sprintf(labelFmt, min)}}
		}
		step := (max - min) / float64(maxLabels-1)
		ticks := make([]plot.Tick, 0, maxLabels)
		for i := 0; i < maxLabels; i++ {
			v := min + float64(i)*step
			ticks = append(ticks, plot.Tick{Value: v, Label: fmt.Sprintf(labelFmt, v)})
		}
		return ticks
	})
}

// addLine plots xs against ys, skipping non-finite samples.
func addLine(p *plot.Plot, name string, idx int, dashed bool, xs, ys []float64) error {
	pts := make(plotter.XYs, 0, len(xs))
	for i := range xs {
		if math.IsNaN(ys[i]) || math.IsInf(ys[i], 0) || math.IsNaN(xs[i]) || math.IsInf(xs[i], 0) {
			continue
		}
		pts = append(pts, plotter.XY{X: xs[i], Y: ys[i]})
	}
	if len(pts) == 0 {
		return nil
	}

	line, err := plotter.NewLine(pts)
	if err != nil {
		return err
	}
	line.LineStyle.Width = vg.Points(1.8)
	if dashed {
		line.LineStyle.Color = color.Black
		line.LineStyle.Dashes = []vg.Length{vg.Points(6), vg.Points(4)}
	} else {
		line.LineStyle.Color = plotutil.Color(idx)
	}

	p.Add(line)
	p.Legend.Add(name, line)
	return nil
}
