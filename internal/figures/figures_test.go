package figures

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/san-kum/pendsim/internal/analysis"
	"github.com/san-kum/pendsim/internal/config"
	"github.com/san-kum/pendsim/internal/dynamo"
	"github.com/san-kum/pendsim/internal/experiment"
	"github.com/san-kum/pendsim/internal/integrators"
)

func testRenderer(t *testing.T, format string) *Renderer {
	t.Helper()
	return &Renderer{
		Dir:       filepath.Join(t.TempDir(), "out"),
		DPI:       40,
		Format:    format,
		Width:     4,
		Height:    3,
		Normalize: true,
	}
}

func testStudy(t *testing.T) *experiment.Study {
	t.Helper()
	cfg, err := experiment.FromConfig(config.DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}
	study, err := experiment.Run(context.Background(), cfg, integrators.NewRegistry())
	if err != nil {
		t.Fatal(err)
	}
	return study
}

func checkFile(t *testing.T, path string, magic []byte) {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("figure not written: %v", err)
	}
	if !bytes.HasPrefix(data, magic) {
		t.Errorf("%s: unexpected header % x", path, data[:min(len(data), 8)])
	}
}

var pngMagic = []byte{0x89, 'P', 'N', 'G'}

func TestStudyFigures(t *testing.T) {
	r := testRenderer(t, "png")
	study := testStudy(t)

	path, err := r.PhaseDiagram(study)
	if err != nil {
		t.Fatalf("phase diagram failed: %v", err)
	}
	if filepath.Base(path) != "diagrame_phase.png" {
		t.Errorf("unexpected file name %s", path)
	}
	checkFile(t, path, pngMagic)

	path, err = r.Hamiltonian(study)
	if err != nil {
		t.Fatalf("hamiltonian failed: %v", err)
	}
	if filepath.Base(path) != "hamiltonien.png" {
		t.Errorf("unexpected file name %s", path)
	}
	checkFile(t, path, pngMagic)

	r.Normalize = false
	if _, err := r.PhaseDiagram(study); err != nil {
		t.Errorf("raw phase diagram failed: %v", err)
	}
}

func TestErrorCurveFigure(t *testing.T) {
	curve := &analysis.ErrorCurve{Scheme: "symplectic", Period: 0.63}
	for _, d := range []float64{1e4, 1e3, 1e2, 10} {
		curve.Points = append(curve.Points, analysis.ErrorPoint{Divisor: d, Error: 2 / d})
	}
	fit, err := curve.Fit(0)
	if err != nil {
		t.Fatal(err)
	}

	for _, tt := range []struct {
		format string
		file   string
		magic  []byte
	}{
		{"png", "erreur.png", pngMagic},
		{"jpeg", "erreur.jpg", []byte{0xff, 0xd8}},
		{"TIFF", "erreur.tiff", nil},
	} {
		t.Run(tt.format, func(t *testing.T) {
			r := testRenderer(t, tt.format)
			path, err := r.ErrorCurve(curve, fit)
			if err != nil {
				t.Fatalf("error curve failed: %v", err)
			}
			if filepath.Base(path) != tt.file {
				t.Errorf("expected %s, got %s", tt.file, filepath.Base(path))
			}
			checkFile(t, path, tt.magic)
		})
	}
}

func TestRendererInvalid(t *testing.T) {
	study := testStudy(t)

	r := testRenderer(t, "bmp")
	if _, err := r.Hamiltonian(study); !errors.Is(err, dynamo.ErrInvalidArgument) {
		t.Errorf("expected ErrInvalidArgument for unknown format, got %v", err)
	}

	r = testRenderer(t, "png")
	r.DPI = 0
	if _, err := r.Hamiltonian(study); !errors.Is(err, dynamo.ErrInvalidArgument) {
		t.Errorf("expected ErrInvalidArgument for zero dpi, got %v", err)
	}

	empty := &analysis.ErrorCurve{Points: []analysis.ErrorPoint{{Divisor: 10, Error: 0}}}
	if _, err := testRenderer(t, "png").ErrorCurve(empty, analysis.Fit{}); !errors.Is(err, dynamo.ErrInvalidArgument) {
		t.Errorf("expected ErrInvalidArgument for empty curve, got %v", err)
	}
}

func TestNewRenderer(t *testing.T) {
	r := NewRenderer(config.DefaultConfig().Figures, nil)
	if r.Dir != "figures" || r.DPI != 400 || r.Format != "png" || !r.Normalize {
		t.Errorf("unexpected renderer %+v", r)
	}
}

// failingEncoder writes a partial image larger than the write buffer and
// then fails.
type failingEncoder struct{}

func (failingEncoder) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write(make([]byte, 8192))
	if err != nil {
		return int64(n), err
	}
	return int64(n), errors.New("encoder failed")
}

func TestWriteFileRemovesPartialOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.png")
	if err := writeFile(path, failingEncoder{}); err == nil {
		t.Fatal("expected encoder error")
	}
	if _, err := os.Stat(path); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected partial file removed, stat returned %v", err)
	}

	if err := writeFile(filepath.Join(t.TempDir(), "missing", "x.png"), failingEncoder{}); err == nil {
		t.Error("expected error for missing directory")
	}
}
