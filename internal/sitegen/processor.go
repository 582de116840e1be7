package sitegen

import (
	"log/slog"
	"os"
	"time"

	"github.com/google/uuid"

	"git.home.luguber.info/inful/sitestamp/internal/config"
	"git.home.luguber.info/inful/sitestamp/internal/foundation/errors"
	"git.home.luguber.info/inful/sitestamp/internal/logfields"
	"git.home.luguber.info/inful/sitestamp/internal/metrics"
	"git.home.luguber.info/inful/sitestamp/internal/tokens"
)

// Override assigns a string value to a dotted configuration path before
// placeholders are extracted.
type Override struct {
	Path  string
	Value string
}

// Options configures a Processor.
type Options struct {
	ConfigPath   string
	TemplateRoot string
	OutputDir    string
	Overrides    []Override
	Layout       *Layout // nil means DefaultLayout
	Recorder     metrics.Recorder
	Logger       *slog.Logger
}

// Processor runs the stamping state machine for one configuration.
type Processor struct {
	opts     Options
	layout   Layout
	recorder metrics.Recorder
	logger   *slog.Logger
}

// New creates a Processor, filling defaults for optional collaborators.
func New(opts Options) *Processor {
	layout := DefaultLayout()
	if opts.Layout != nil {
		layout = *opts.Layout
	}
	if layout.PackageFile == "" {
		layout.PackageFile = PackageFile
	}
	recorder := opts.Recorder
	if recorder == nil {
		recorder = metrics.NoopRecorder{}
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Processor{opts: opts, layout: layout, recorder: recorder, logger: logger}
}

// LoadDocument loads the configuration and applies overrides. Both failures
// are fatal for a run.
func LoadDocument(path string, overrides []Override) (*config.Document, error) {
	doc, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	for _, o := range overrides {
		if err := doc.Set(o.Path, o.Value); err != nil {
			return nil, err
		}
	}
	return doc, nil
}

// Run executes init → config_loaded → tokens_extracted → files_processed →
// assets_copied → done. The returned error is non-nil only when the
// configuration cannot be loaded; in that case nothing has been written.
// The report is always returned.
func (p *Processor) Run() (*Report, error) {
	report := newReport(uuid.NewString())
	report.ConfigPath = p.opts.ConfigPath
	report.TemplateRoot = p.opts.TemplateRoot
	report.OutputDir = p.opts.OutputDir
	report.Start = time.Now()

	logger := p.logger.With(logfields.RunID(report.RunID))
	if rev, err := templateRevision(p.opts.TemplateRoot); err != nil {
		logger.Debug("Could not resolve template revision", logfields.TemplateRoot(p.opts.TemplateRoot), logfields.Error(err))
	} else {
		report.TemplateRevision = rev
	}
	logger.Info("Starting site generation",
		logfields.Config(p.opts.ConfigPath),
		logfields.TemplateRoot(p.opts.TemplateRoot),
		slog.String("revision", report.TemplateRevision),
		logfields.Output(p.opts.OutputDir))

	// init → config_loaded
	stageStart := time.Now()
	doc, err := LoadDocument(p.opts.ConfigPath, p.opts.Overrides)
	if err != nil {
		report.finish(err)
		p.recorder.IncRunOutcome(string(report.Outcome))
		logger.Error("Failed to load configuration", logfields.Config(p.opts.ConfigPath), logfields.Error(err))
		return report, err
	}
	p.transition(logger, report, stageStart)

	// config_loaded → tokens_extracted
	stageStart = time.Now()
	tm := tokens.Extract(doc.Root())
	report.Tokens = tm.Len()
	p.recorder.SetTokens(tm.Len())
	logger.Debug("Extracted placeholders", logfields.Tokens(tm.Len()))
	p.transition(logger, report, stageStart)

	// tokens_extracted → files_processed
	stageStart = time.Now()
	p.processFiles(logger, report, doc, tm)
	p.transition(logger, report, stageStart)

	// files_processed → assets_copied
	stageStart = time.Now()
	p.copyAssets(logger, report)
	p.transition(logger, report, stageStart)

	// assets_copied → done
	p.transition(logger, report, time.Now())
	report.finish(nil)

	duration := report.End.Sub(report.Start)
	p.recorder.ObserveRunDuration(duration)
	p.recorder.IncRunOutcome(string(report.Outcome))
	logger.Info("Site generation finished",
		logfields.Outcome(string(report.Outcome)),
		logfields.Count(len(report.FilesWritten)),
		slog.Int("warnings", len(report.Issues)),
		logfields.DurationMS(float64(duration.Microseconds())/1000))
	return report, nil
}

func (p *Processor) transition(logger *slog.Logger, report *Report, started time.Time) {
	elapsed := time.Since(started)
	from := report.Stage
	to := report.advance()
	report.StageDurations[to] = elapsed.Milliseconds()
	p.recorder.ObserveStageDuration(string(to), elapsed)
	logger.Debug("Stage transition", slog.String("from", string(from)), logfields.Stage(string(to)))
}

func (p *Processor) processFiles(logger *slog.Logger, report *Report, doc *config.Document, tm *tokens.Map) {
	if err := os.MkdirAll(p.opts.OutputDir, 0o750); err != nil {
		ce := errors.FileSystemError("failed to create output directory").Warning().WithCause(err).Build()
		report.addWarning(IssueOutputUnavailable, p.opts.OutputDir, ce)
		p.recorder.IncWarning(string(IssueOutputUnavailable))
		logger.Warn("Failed to create output directory", logfields.Output(p.opts.OutputDir), logfields.Error(err))
	}

	rw := NewRewriter(p.opts.TemplateRoot, p.opts.OutputDir, tm, logger)
	for _, rel := range p.layout.TemplateFiles {
		if err := rw.Rewrite(rel); err != nil {
			code := IssueTemplateFailed
			result := metrics.ResultFailed
			if errors.HasCategory(err, errors.CategoryNotFound) {
				code = IssueTemplateMissing
				result = metrics.ResultMissing
			}
			report.FilesSkipped = append(report.FilesSkipped, rel)
			report.addWarning(code, rel, err)
			p.recorder.IncTemplateResult(result)
			p.recorder.IncWarning(string(code))
			continue
		}
		report.FilesWritten = append(report.FilesWritten, rel)
		p.recorder.IncTemplateResult(metrics.ResultWritten)
	}

	pr := NewPackageRewriter(p.opts.TemplateRoot, p.opts.OutputDir, p.layout.PackageFile, logger)
	written, err := pr.Rewrite(doc)
	switch {
	case err != nil:
		code := IssuePackageFailed
		if errors.HasCategory(err, errors.CategoryValidation) {
			code = IssuePackageInvalid
		}
		report.addWarning(code, p.layout.PackageFile, err)
		p.recorder.IncWarning(string(code))
	case written:
		report.PackageRewritten = true
		report.FilesWritten = append(report.FilesWritten, p.layout.PackageFile)
	}
}

func (p *Processor) copyAssets(logger *slog.Logger, report *Report) {
	protected := append([]string(nil), report.FilesWritten...)
	copier := NewAssetCopier(p.opts.TemplateRoot, p.opts.OutputDir, protected, logger)
	for _, dir := range p.layout.AssetDirs {
		copied, err := copier.Copy(dir)
		switch {
		case err != nil:
			report.addWarning(IssueAssetCopyFailed, dir, err)
			p.recorder.IncAssetResult(metrics.ResultFailed)
			p.recorder.IncWarning(string(IssueAssetCopyFailed))
		case copied:
			report.AssetsCopied = append(report.AssetsCopied, dir)
			p.recorder.IncAssetResult(metrics.ResultCopied)
		default:
			p.recorder.IncAssetResult(metrics.ResultSkipped)
		}
	}
}
