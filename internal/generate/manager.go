package generate

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/handiism/scale-sheets/internal/audio"
	"github.com/handiism/scale-sheets/internal/config"
	ioutils "github.com/handiism/scale-sheets/internal/io"
	"github.com/handiism/scale-sheets/internal/lilypond"
	"github.com/handiism/scale-sheets/internal/model"
	"github.com/handiism/scale-sheets/internal/render"
	"github.com/handiism/scale-sheets/internal/theory"
)

// ProgressLevel indicates the severity/type of a progress message.
type ProgressLevel int

const (
	LevelInfo ProgressLevel = iota
	LevelVerbose
	LevelWarning
	LevelError
	LevelSuccess
)

// ProgressEvent represents a generation progress update.
type ProgressEvent struct {
	Message string
	Level   ProgressLevel
}

// Manager coordinates a batch of practice sheets, one job per key.
//
// A job deletes stale artifacts, writes the LilyPond source, compiles it,
// optionally checks the MIDI preview and rasterizes the first page. After
// all jobs, rendered pages are composited in pairs and a playlist of the
// previews is written.
type Manager struct {
	settings     *config.Settings
	builder      *Builder
	formatOpts   lilypond.Options
	typesetter   *render.Typesetter
	rasterizer   *render.Rasterizer
	checker      *audio.PreviewChecker
	playlist     *audio.PlaylistCreator
	compositor   *ioutils.Compositor
	imageService *ioutils.ImageService

	scores    []*model.Score
	totalJobs int32
	doneJobs  int32
	failed    int32

	onProgress func(ProgressEvent)
	mu         sync.Mutex
}

// NewManager creates a Manager that runs external tools through runner.
// A nil runner uses render.ExecRunner. The settings must be valid.
func NewManager(settings *config.Settings, runner render.Runner, onProgress func(ProgressEvent)) (*Manager, error) {
	if runner == nil {
		runner = render.ExecRunner{}
	}

	m := &Manager{
		settings:     settings,
		typesetter:   render.NewTypesetter(settings.LilyPondPath, runner),
		rasterizer:   render.NewRasterizer(settings.PdftoppmPath, settings.DPI, runner),
		checker:      audio.NewPreviewChecker(),
		playlist:     audio.NewPlaylistCreator(settings.ToPlaylistFormat(), settings.M3UExtended, settings.Tempo),
		compositor:   ioutils.NewCompositor(settings.ToCompositorConfig()),
		imageService: ioutils.NewImageService(),
		onProgress:   onProgress,
	}

	resolver := theory.NewResolver(func(msg string) {
		m.progress(ProgressEvent{Message: msg, Level: LevelWarning})
	})
	gen, err := settings.ToGenerator(resolver)
	if err != nil {
		return nil, err
	}
	m.formatOpts, err = settings.ToFormatOptions()
	if err != nil {
		return nil, model.NewError(model.KindValidation, "layout", err)
	}

	m.builder = NewBuilder(gen, settings.ToPathConfig(), BuildOptions{
		Title:         settings.Title,
		Composer:      settings.Composer,
		ScaleTypes:    settings.ScaleTypes,
		Octaves:       settings.Octaves,
		RelativeMinor: settings.RelativeMinor,
	})

	return m, nil
}

// Initialize builds the score of every key. Any validation error aborts
// before a file is touched.
func (m *Manager) Initialize(keys []string) error {
	m.scores = m.scores[:0]
	for _, key := range keys {
		score, err := m.builder.Build(key)
		if err != nil {
			m.progress(ProgressEvent{Message: fmt.Sprintf("Error: %v", err), Level: LevelError})
			return err
		}
		m.scores = append(m.scores, score)
		m.progress(ProgressEvent{Message: fmt.Sprintf("Prepared %s (%d staves, %d notes)", score.BaseName, len(score.Staves), score.NoteCount()), Level: LevelVerbose})
	}
	m.totalJobs = int32(len(m.scores))
	return nil
}

// Run renders all initialized scores.
//
// With ContinueOnError unset the first failing job cancels the batch and
// its error is returned. Otherwise failures are reported and the batch
// goes on; the returned error then only summarizes how many jobs failed.
func (m *Manager) Run(ctx context.Context) error {
	if len(m.scores) == 0 {
		return nil
	}

	if err := ioutils.EnsureDir(m.settings.OutputDir); err != nil {
		return err
	}

	if m.settings.DetectVersion {
		if err := m.detectVersion(ctx); err != nil {
			return err
		}
	}

	formatter := lilypond.NewFormatter(m.formatOpts)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(m.settings.MaxConcurrentJobs)

	for _, score := range m.scores {
		score := score
		g.Go(func() error {
			err := m.runJob(gctx, formatter, score)
			atomic.AddInt32(&m.doneJobs, 1)
			if err == nil {
				return nil
			}
			atomic.AddInt32(&m.failed, 1)
			m.progress(ProgressEvent{Message: fmt.Sprintf("Error rendering %s: %v", score.BaseName, err), Level: LevelError})
			if m.settings.ContinueOnError {
				return nil
			}
			return err
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}

	rendered := m.renderedScores()

	if m.settings.Composite {
		if err := m.composite(ctx, rendered); err != nil {
			return err
		}
	}

	if m.settings.CreatePlaylist {
		m.writePlaylist(ctx, rendered)
	}

	if failed := atomic.LoadInt32(&m.failed); failed > 0 {
		return fmt.Errorf("%d of %d sheets failed", failed, m.totalJobs)
	}
	m.progress(ProgressEvent{Message: fmt.Sprintf("Generated %d practice sheets", len(rendered)), Level: LevelSuccess})
	return nil
}

// GetProgress returns the number of finished and total jobs.
func (m *Manager) GetProgress() (done, total int32) {
	return atomic.LoadInt32(&m.doneJobs), m.totalJobs
}

// GetScores returns the initialized scores.
func (m *Manager) GetScores() []*model.Score {
	return m.scores
}

// GetScoreNames returns a display line per initialized score.
func (m *Manager) GetScoreNames() []string {
	names := make([]string, len(m.scores))
	for i, score := range m.scores {
		names[i] = fmt.Sprintf("%s (%d staves, %d notes)", score.BaseName, len(score.Staves), score.NoteCount())
	}
	return names
}

func (m *Manager) detectVersion(ctx context.Context) error {
	version, err := m.typesetter.Version(ctx)
	if err != nil {
		return err
	}
	m.formatOpts.Version = version
	m.progress(ProgressEvent{Message: fmt.Sprintf("Using LilyPond %s", version), Level: LevelVerbose})
	return nil
}

func (m *Manager) runJob(ctx context.Context, formatter *lilypond.Formatter, score *model.Score) error {
	err := ioutils.DeleteExisting(score.Artifacts(), func(path string) {
		m.progress(ProgressEvent{Message: fmt.Sprintf("Deleted existing file: %s", path), Level: LevelVerbose})
	})
	if err != nil {
		return err
	}

	if err := ioutils.WriteFile(ctx, score.SourcePath, []byte(formatter.Format(score))); err != nil {
		return err
	}
	m.progress(ProgressEvent{Message: fmt.Sprintf("LilyPond file written: %s", score.SourcePath), Level: LevelInfo})

	artifacts, err := m.typesetter.Compile(ctx, score.SourcePath, score.OutputBase())
	if err != nil {
		return err
	}
	if err := score.SetPreviews(artifacts.MIDI); err != nil {
		return err
	}
	m.progress(ProgressEvent{Message: fmt.Sprintf("Compiled %s", filepath.Base(artifacts.PDF)), Level: LevelSuccess})

	if m.settings.VerifyMIDI {
		for _, preview := range score.Previews {
			if err := m.checker.Verify(preview.Path, preview.NoteCount()); err != nil {
				return err
			}
			m.progress(ProgressEvent{Message: fmt.Sprintf("MIDI preview verified: %s, %d notes", filepath.Base(preview.Path), preview.NoteCount()), Level: LevelVerbose})
		}
	}

	if m.settings.Rasterize {
		image, err := m.rasterizer.Rasterize(ctx, artifacts.PDF, score.OutputBase())
		if err != nil {
			return err
		}
		m.progress(ProgressEvent{Message: fmt.Sprintf("Rendered %s at %d DPI", filepath.Base(image), m.rasterizer.DPI()), Level: LevelVerbose})

		if m.settings.ThumbnailMaxSize > 0 {
			m.writeThumbnail(ctx, score)
		}
	}

	return nil
}

// writeThumbnail failures are reported as warnings only.
func (m *Manager) writeThumbnail(ctx context.Context, score *model.Score) {
	data, err := os.ReadFile(score.ImagePath)
	if err == nil {
		size := m.settings.ThumbnailMaxSize
		data, err = m.imageService.ResizeImage(ctx, data, size, size)
	}
	if err == nil {
		err = ioutils.WriteFile(ctx, score.ThumbPath, data)
	}
	if err != nil {
		m.progress(ProgressEvent{Message: fmt.Sprintf("Error creating thumbnail for %s: %v", score.BaseName, err), Level: LevelWarning})
	}
}

// renderedScores returns the scores whose PDF exists, in input order.
func (m *Manager) renderedScores() []*model.Score {
	var out []*model.Score
	for _, score := range m.scores {
		if _, err := os.Stat(score.PDFPath); err == nil {
			out = append(out, score)
		}
	}
	return out
}

// composite joins the rendered pages two by two. An odd last page is left
// alone.
func (m *Manager) composite(ctx context.Context, scores []*model.Score) error {
	for i := 0; i+1 < len(scores); i += 2 {
		left, right := scores[i], scores[i+1]
		out := compositePath(m.settings, left, right)
		if err := m.compositor.ComposeFiles(ctx, left.ImagePath, right.ImagePath, out); err != nil {
			if m.settings.ContinueOnError {
				m.progress(ProgressEvent{Message: fmt.Sprintf("Error compositing %s: %v", out, err), Level: LevelError})
				atomic.AddInt32(&m.failed, 1)
				continue
			}
			return err
		}
		m.progress(ProgressEvent{Message: fmt.Sprintf("Composite written: %s", out), Level: LevelSuccess})
	}
	if len(scores)%2 == 1 {
		m.progress(ProgressEvent{Message: fmt.Sprintf("No partner page for %s, not composited", scores[len(scores)-1].BaseName), Level: LevelWarning})
	}
	return nil
}

func compositePath(settings *config.Settings, left, right *model.Score) string {
	name := fmt.Sprintf("%s_%s_%s_composite%s", settings.BaseName,
		model.KeyFileName(left.Key), model.KeyFileName(right.Key), model.ExtImage)
	return filepath.Join(settings.OutputDir, name)
}

// writePlaylist failures are reported as warnings only.
func (m *Manager) writePlaylist(ctx context.Context, scores []*model.Score) {
	if len(scores) == 0 {
		return
	}
	content := m.playlist.CreatePlaylist(m.settings.Title, scores)
	path := filepath.Join(m.settings.OutputDir, m.settings.BaseName+m.settings.ToPlaylistFormat().Extension())
	if err := ioutils.WriteFile(ctx, path, []byte(content)); err != nil {
		m.progress(ProgressEvent{Message: fmt.Sprintf("Error creating playlist: %v", err), Level: LevelWarning})
		return
	}
	m.progress(ProgressEvent{Message: fmt.Sprintf("Created playlist %s", path), Level: LevelSuccess})
}

func (m *Manager) progress(event ProgressEvent) {
	if m.onProgress == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.onProgress(event)
}
