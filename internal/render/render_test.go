package render

import (
	"context"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/handiism/scale-sheets/internal/model"
)

// fakeRunner records invocations and creates the listed files on success.
type fakeRunner struct {
	calls  [][]string
	output string
	err    error
	create []string
}

func (f *fakeRunner) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	f.calls = append(f.calls, append([]string{name}, args...))
	if f.err != nil {
		return []byte(f.output), f.err
	}
	for _, path := range f.create {
		if err := os.WriteFile(path, []byte("x"), 0644); err != nil {
			return nil, err
		}
	}
	return []byte(f.output), nil
}

func TestParseVersion(t *testing.T) {
	tests := []struct {
		output  string
		want    string
		wantErr bool
	}{
		{"GNU LilyPond 2.24.1 (running Guile 2.2)\n\nCopyright (c) 1996--2023", "2.24.1", false},
		{"GNU LilyPond 2.22.0\n", "2.22.0", false},
		{"GNU LilyPond 2.25\n", "2.25", false},
		{"lilypond: command output changed", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			got, err := ParseVersion(tt.output)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseVersion() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseVersion() = %q, want %q", got, tt.want)
			}
			if err != nil && !model.IsKind(err, model.KindExternalTool) {
				t.Errorf("error kind = %v, want external tool", model.KindOf(err))
			}
		})
	}
}

func TestTypesetter_Version(t *testing.T) {
	runner := &fakeRunner{output: "GNU LilyPond 2.24.3 (running Guile 3.0)"}
	ts := NewTypesetter("/opt/lilypond/bin/lilypond", runner)

	version, err := ts.Version(context.Background())
	if err != nil {
		t.Fatalf("Version failed: %v", err)
	}
	if version != "2.24.3" {
		t.Errorf("Version() = %q, want 2.24.3", version)
	}
	if !slices.Equal(runner.calls[0], []string{"/opt/lilypond/bin/lilypond", "--version"}) {
		t.Errorf("unexpected invocation %v", runner.calls[0])
	}
}

func TestTypesetter_Compile(t *testing.T) {
	dir := t.TempDir()
	base := filepath.Join(dir, "practice_c")
	runner := &fakeRunner{create: []string{base + ".pdf", base + ".midi"}}

	out, err := NewTypesetter("", runner).Compile(context.Background(), base+".ly", base)
	if err != nil {
		t.Fatalf("Compile failed: %v", err)
	}
	if out.PDF != base+".pdf" || !slices.Equal(out.MIDI, []string{base + ".midi"}) {
		t.Errorf("unexpected artifacts %+v", out)
	}
	want := []string{"lilypond", "-o", base, base + ".ly"}
	if !slices.Equal(runner.calls[0], want) {
		t.Errorf("invocation = %v, want %v", runner.calls[0], want)
	}
}

func TestTypesetter_CompileMidExtension(t *testing.T) {
	dir := t.TempDir()
	base := filepath.Join(dir, "practice_c")
	runner := &fakeRunner{create: []string{base + ".pdf", base + ".mid"}}

	out, err := NewTypesetter("", runner).Compile(context.Background(), base+".ly", base)
	if err != nil {
		t.Fatalf("Compile failed: %v", err)
	}
	if !slices.Equal(out.MIDI, []string{base + ".mid"}) {
		t.Errorf("MIDI = %q, want .mid fallback", out.MIDI)
	}
}

func TestTypesetter_CompileNumberedPreviews(t *testing.T) {
	dir := t.TempDir()
	base := filepath.Join(dir, "practice_c")
	runner := &fakeRunner{create: []string{base + ".pdf", base + ".midi", base + "-1.midi", base + "-2.mid", base + "-4.midi"}}

	out, err := NewTypesetter("", runner).Compile(context.Background(), base+".ly", base)
	if err != nil {
		t.Fatalf("Compile failed: %v", err)
	}
	want := []string{base + ".midi", base + "-1.midi", base + "-2.mid"}
	if !slices.Equal(out.MIDI, want) {
		t.Errorf("MIDI = %q, want %q", out.MIDI, want)
	}
}

func TestTypesetter_CompileMissingArtifacts(t *testing.T) {
	dir := t.TempDir()
	base := filepath.Join(dir, "practice_c")

	tests := []struct {
		name   string
		create []string
	}{
		{"no pdf", []string{base + ".midi"}},
		{"no midi", []string{base + ".pdf"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, ext := range []string{".pdf", ".midi"} {
				os.Remove(base + ext)
			}
			_, err := NewTypesetter("", &fakeRunner{create: tt.create}).Compile(context.Background(), base+".ly", base)
			if !model.IsKind(err, model.KindExternalTool) {
				t.Errorf("Compile() error = %v, want external tool error", err)
			}
		})
	}
}

func TestTypesetter_CompileFailure(t *testing.T) {
	runner := &fakeRunner{err: errors.New("signal: killed"), output: "processing..."}
	_, err := NewTypesetter("", runner).Compile(context.Background(), "x.ly", "x")
	if !model.IsKind(err, model.KindExternalTool) {
		t.Fatalf("Compile() error = %v, want external tool error", err)
	}
}

func TestRasterizer_Rasterize(t *testing.T) {
	dir := t.TempDir()
	base := filepath.Join(dir, "practice_c")
	runner := &fakeRunner{create: []string{base + ".png"}}

	r := NewRasterizer("", 0, runner)
	if r.DPI() != DefaultDPI {
		t.Errorf("DPI() = %d, want %d", r.DPI(), DefaultDPI)
	}

	png, err := r.Rasterize(context.Background(), base+".pdf", base)
	if err != nil {
		t.Fatalf("Rasterize failed: %v", err)
	}
	if png != base+".png" {
		t.Errorf("Rasterize() = %q", png)
	}

	got := strings.Join(runner.calls[0], " ")
	want := "pdftoppm -png -r 300 -f 1 -l 1 -singlefile " + base + ".pdf " + base
	if got != want {
		t.Errorf("invocation = %q, want %q", got, want)
	}
}

func TestRasterizer_MissingOutput(t *testing.T) {
	_, err := NewRasterizer("", 150, &fakeRunner{}).Rasterize(context.Background(), "missing.pdf", filepath.Join(t.TempDir(), "x"))
	if !model.IsKind(err, model.KindExternalTool) {
		t.Errorf("Rasterize() error = %v, want external tool error", err)
	}
}

func TestExecRunner_NotFound(t *testing.T) {
	ts := NewTypesetter("scale-sheets-no-such-typesetter", nil)
	_, err := ts.Compile(context.Background(), "x.ly", "x")
	if !model.IsKind(err, model.KindExternalTool) {
		t.Fatalf("Compile() error = %v, want external tool error", err)
	}
	if !strings.Contains(err.Error(), "not installed") {
		t.Errorf("error should mention the missing executable, got %v", err)
	}
}

func TestExecRunner_ExitStatus(t *testing.T) {
	sh, err := exec.LookPath("sh")
	if err != nil {
		t.Skip("sh not available")
	}

	out, err := ExecRunner{}.Run(context.Background(), sh, "-c", "echo broken input >&2; exit 3")
	wrapped := toolError("compile", "sh", err, out)
	if !model.IsKind(wrapped, model.KindExternalTool) {
		t.Fatalf("toolError() = %v, want external tool error", wrapped)
	}
	if !strings.Contains(wrapped.Error(), "status 3") || !strings.Contains(wrapped.Error(), "broken input") {
		t.Errorf("error should carry the exit status and output, got %v", wrapped)
	}
}
