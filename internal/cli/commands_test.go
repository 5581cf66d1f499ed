package cli

import (
	"bytes"
	"context"
	"fmt"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/echoplot/echoplot/pkg/errors"
	gridio "github.com/echoplot/echoplot/pkg/io"
)

// smallFigure keeps test renders at 80x60 pixels.
var smallFigure = []string{"--dpi", "20", "--width", "4", "--height", "3"}

// isolate points the config and cache lookups at fresh temp directories
// and returns the cache home.
func isolate(t *testing.T) string {
	t.Helper()
	cacheHome := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("XDG_CACHE_HOME", cacheHome)
	return cacheHome
}

// runCLI executes the root command with args and returns stdout.
func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	var errOut, logs syncBuffer

	c := New(&logs, LogInfo)
	root := c.RootCommand()
	root.SetArgs(args)
	root.SetOut(&out)
	root.SetErr(&errOut)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func pngSize(t *testing.T, path string) (int, int) {
	t.Helper()
	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open %s: %v", path, err)
	}
	defer f.Close()
	cfg, err := png.DecodeConfig(f)
	if err != nil {
		t.Fatalf("decode %s: %v", path, err)
	}
	return cfg.Width, cfg.Height
}

const svGrid = `[[-100, -89, -60], [-34, -20, null]]`

func TestSvCommand(t *testing.T) {
	isolate(t)
	dir := t.TempDir()
	input := writeFile(t, dir, "survey.json", svGrid)

	args := append([]string{"sv", input, "-o", dir}, smallFigure...)
	out, err := runCLI(t, args...)
	if err != nil {
		t.Fatalf("sv: %v", err)
	}

	path := filepath.Join(dir, "survey.png")
	if w, h := pngSize(t, path); w != 80 || h != 60 {
		t.Errorf("image size = %dx%d, want 80x60", w, h)
	}
	for _, want := range []string{"Rendered sv", path, "2×3", "fresh"} {
		if !strings.Contains(out, want) {
			t.Errorf("output %q missing %q", out, want)
		}
	}

	out, err = runCLI(t, args...)
	if err != nil {
		t.Fatalf("sv (cached): %v", err)
	}
	if !strings.Contains(out, "cached") {
		t.Errorf("second run output %q should report a cache hit", out)
	}
}

func TestSvCommandWithMask(t *testing.T) {
	isolate(t)
	dir := t.TempDir()
	input := writeFile(t, dir, "survey.json", svGrid)
	mask := writeFile(t, dir, "school.csv", "1,0,1\n0,1,1\n")

	args := append([]string{"sv", input, "--mask", mask, "-o", dir, "-n", "masked", "--no-cache"}, smallFigure...)
	out, err := runCLI(t, args...)
	if err != nil {
		t.Fatalf("sv --mask: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "masked.png")); err != nil {
		t.Errorf("masked.png not written: %v", err)
	}
	// Two cells masked plus the NaN cell.
	if !strings.Contains(out, "3 masked") {
		t.Errorf("output %q should count 3 masked cells", out)
	}
}

func TestSvCommandErrors(t *testing.T) {
	isolate(t)
	dir := t.TempDir()
	input := writeFile(t, dir, "survey.json", svGrid)
	mask := writeFile(t, dir, "small.json", `[[1, 1]]`)

	tests := []struct {
		name string
		args []string
		code errors.Code
	}{
		{"missing input", []string{"sv", filepath.Join(dir, "nope.json")}, errors.ErrCodeFileNotFound},
		{"shape mismatch", []string{"sv", input, "--mask", mask}, errors.ErrCodeShapeMismatch},
		{"bad format", []string{"sv", input, "--format", "xml"}, errors.ErrCodeInvalidFormat},
		{"bad dpi", []string{"sv", input, "--dpi", "5000"}, errors.ErrCodeInvalidInput},
		{"bad name", []string{"sv", input, "-n", "../escape"}, errors.ErrCodeInvalidInput},
		{"missing dir", []string{"sv", input, "-o", filepath.Join(dir, "missing")}, errors.ErrCodeIO},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := append(append([]string{}, tt.args...), "--no-cache")
			if !containsFlag(tt.args, "--dpi") {
				args = append(args, smallFigure...)
			}
			_, err := runCLI(t, args...)
			if !errors.Is(err, tt.code) {
				t.Errorf("error = %v, want code %s", err, tt.code)
			}
		})
	}
}

func containsFlag(args []string, flag string) bool {
	for _, a := range args {
		if a == flag {
			return true
		}
	}
	return false
}

func TestMaskCommand(t *testing.T) {
	isolate(t)
	dir := t.TempDir()
	input := writeFile(t, dir, "labels.json", `[[0, 1, 2], [3, null, 5]]`)

	args := append([]string{"mask", input, "-o", dir, "--ramp", "bluered"}, smallFigure...)
	if _, err := runCLI(t, args...); err != nil {
		t.Fatalf("mask: %v", err)
	}
	if w, h := pngSize(t, filepath.Join(dir, "labels_mask.png")); w != 80 || h != 60 {
		t.Errorf("image size = %dx%d, want 80x60", w, h)
	}

	args = append([]string{"mask", input, "-o", dir, "--ramp", "rainbow"}, smallFigure...)
	if _, err := runCLI(t, args...); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("unknown ramp error = %v, want INVALID_INPUT", err)
	}
}

func TestSynthCommand(t *testing.T) {
	isolate(t)
	dir := t.TempDir()
	export := filepath.Join(dir, "layer.json.gz")

	args := append([]string{"synth",
		"--mean", "-60", "--std", "5", "--thickness", "4", "--position", "50",
		"--seed", "7", "--export", export, "-o", dir}, smallFigure...)
	out, err := runCLI(t, args...)
	if err != nil {
		t.Fatalf("synth: %v", err)
	}

	if _, err := os.Stat(filepath.Join(dir, "layer.png")); err != nil {
		t.Errorf("layer.png not written: %v", err)
	}
	g, err := gridio.Import(export)
	if err != nil {
		t.Fatalf("import exported grid: %v", err)
	}
	if rows, cols := g.Dims(); rows != 12 || cols != 100 {
		t.Errorf("exported grid = %dx%d, want 12x100", rows, cols)
	}
	for _, want := range []string{"12×100", "Exported grid", "echoplot sv " + export} {
		if !strings.Contains(out, want) {
			t.Errorf("output %q missing %q", out, want)
		}
	}
}

func TestSynthCommandRandomPrintsSeed(t *testing.T) {
	isolate(t)
	dir := t.TempDir()

	args := append([]string{"synth",
		"--mean", "-60", "--std", "5", "--thickness", "2", "--position", "10",
		"--cols", "8", "--random", "--seed", "3", "-o", dir}, smallFigure...)
	out, err := runCLI(t, args...)
	if err != nil {
		t.Fatalf("synth --random: %v", err)
	}
	if !strings.Contains(out, "--seed is ignored") {
		t.Errorf("output %q should warn about --seed", out)
	}
	if !strings.Contains(out, "seed") || !strings.Contains(out, "6×8") {
		t.Errorf("output %q should print the seed and the grid shape", out)
	}
}

func TestSynthCommandRequiresLayerFlags(t *testing.T) {
	isolate(t)
	if _, err := runCLI(t, "synth", "--mean", "-60"); err == nil {
		t.Error("synth without --std/--thickness/--position should fail")
	}
	_, err := runCLI(t, "synth", "--mean", "-60", "--std", "1", "--thickness", "0", "--position", "1")
	if !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("thickness 0 error = %v, want INVALID_INPUT", err)
	}
}

func TestConfigDefaultsAndOverrides(t *testing.T) {
	isolate(t)
	dir := t.TempDir()
	input := writeFile(t, dir, "survey.json", svGrid)
	cfg := writeFile(t, dir, "config.toml", fmt.Sprintf(`
dpi = 10
width = 4.0
height = 3.0
output_dir = %q
cache = false
`, dir))

	if _, err := runCLI(t, "--config", cfg, "sv", input); err != nil {
		t.Fatalf("sv with config: %v", err)
	}
	if w, h := pngSize(t, filepath.Join(dir, "survey.png")); w != 40 || h != 30 {
		t.Errorf("config size = %dx%d, want 40x30", w, h)
	}

	if _, err := runCLI(t, "--config", cfg, "sv", input, "--dpi", "20", "-n", "hires"); err != nil {
		t.Fatalf("sv with override: %v", err)
	}
	if w, h := pngSize(t, filepath.Join(dir, "hires.png")); w != 80 || h != 60 {
		t.Errorf("override size = %dx%d, want 80x60", w, h)
	}
}

func TestInvalidConfig(t *testing.T) {
	isolate(t)
	dir := t.TempDir()
	cfg := writeFile(t, dir, "config.toml", "colour = \"red\"\n")

	_, err := runCLI(t, "--config", cfg, "scale")
	if !errors.Is(err, errors.ErrCodeInvalidConfig) {
		t.Errorf("error = %v, want INVALID_CONFIG", err)
	}
}

func TestScaleCommand(t *testing.T) {
	isolate(t)
	out, err := runCLI(t, "scale")
	if err != nil {
		t.Fatalf("scale: %v", err)
	}
	for _, want := range []string{"ek500", "< -89", "[-89, -83.5)", "[-39.5, -34)", ">= -34", "masked or NaN", "#ffffff", "spectral*", "bluered"} {
		if !strings.Contains(out, want) {
			t.Errorf("scale output missing %q:\n%s", want, out)
		}
	}
}

func TestCompletionCommand(t *testing.T) {
	isolate(t)
	for _, shell := range []string{"bash", "zsh", "fish", "powershell"} {
		t.Run(shell, func(t *testing.T) {
			out, err := runCLI(t, "completion", shell)
			if err != nil {
				t.Fatalf("completion %s: %v", shell, err)
			}
			if !strings.Contains(out, "echoplot") {
				t.Errorf("completion %s output does not mention echoplot", shell)
			}
		})
	}
	if _, err := runCLI(t, "completion", "tcsh"); err == nil {
		t.Error("unknown shell should fail")
	}
}
