package sitegen

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"git.home.luguber.info/inful/sitestamp/internal/foundation/errors"
)

// Outcome is the final result of a run.
type Outcome string

const (
	OutcomeSuccess Outcome = "success" // every listed item processed cleanly
	OutcomeWarning Outcome = "warning" // reached done with recoverable problems
	OutcomeFailed  Outcome = "failed"  // aborted on configuration
)

// IssueCode enumerates machine-parseable warning identifiers.
type IssueCode string

const (
	IssueTemplateMissing   IssueCode = "TEMPLATE_MISSING"
	IssueTemplateFailed    IssueCode = "TEMPLATE_FAILED"
	IssueAssetCopyFailed   IssueCode = "ASSET_COPY_FAILED"
	IssuePackageInvalid    IssueCode = "PACKAGE_INVALID"
	IssuePackageFailed     IssueCode = "PACKAGE_WRITE_FAILED"
	IssueOutputUnavailable IssueCode = "OUTPUT_UNAVAILABLE"
)

// Issue is one recoverable problem encountered during a run.
type Issue struct {
	Code    IssueCode `json:"code"`
	Stage   Stage     `json:"stage"`
	Path    string    `json:"path,omitempty"`
	Message string    `json:"message"`
}

// Report captures what a run did. It is never written into the output tree.
type Report struct {
	RunID            string          `json:"run_id"`
	ConfigPath       string          `json:"config"`
	TemplateRoot     string          `json:"template_root"`
	TemplateRevision string          `json:"template_revision,omitempty"`
	OutputDir        string          `json:"output"`
	Start            time.Time       `json:"start"`
	End              time.Time       `json:"end"`
	Stage            Stage           `json:"stage"`
	Stages           []Stage         `json:"stages"`
	Tokens           int             `json:"tokens"`
	FilesWritten     []string        `json:"files_written"`
	FilesSkipped     []string        `json:"files_skipped"`
	AssetsCopied     []string        `json:"assets_copied"`
	PackageRewritten bool            `json:"package_rewritten"`
	Issues           []Issue         `json:"issues"`
	Outcome          Outcome         `json:"outcome"`
	Error            string          `json:"error,omitempty"`
	StageDurations   map[Stage]int64 `json:"stage_durations_ms"`

	warnings []error
}

func newReport(runID string) *Report {
	return &Report{
		RunID:          runID,
		Stage:          StageInit,
		Stages:         []Stage{StageInit},
		FilesWritten:   []string{},
		FilesSkipped:   []string{},
		AssetsCopied:   []string{},
		Issues:         []Issue{},
		StageDurations: make(map[Stage]int64),
	}
}

// advance moves the state machine one step forward.
func (r *Report) advance() Stage {
	r.Stage = r.Stage.next()
	r.Stages = append(r.Stages, r.Stage)
	return r.Stage
}

// addWarning records a recoverable problem.
func (r *Report) addWarning(code IssueCode, path string, err error) {
	msg := err.Error()
	if ce, ok := errors.AsClassified(err); ok {
		msg = ce.Message()
		if ce.Cause() != nil {
			msg = fmt.Sprintf("%s: %v", ce.Message(), ce.Cause())
		}
	}
	r.Issues = append(r.Issues, Issue{Code: code, Stage: r.Stage.next(), Path: path, Message: msg})
	r.warnings = append(r.warnings, err)
}

// Warnings returns the recoverable errors collected during the run.
func (r *Report) Warnings() []error {
	return append([]error(nil), r.warnings...)
}

// Reached reports whether the run passed through stage s.
func (r *Report) Reached(s Stage) bool {
	for _, st := range r.Stages {
		if st == s {
			return true
		}
	}
	return false
}

func (r *Report) finish(failure error) {
	r.End = time.Now()
	switch {
	case failure != nil:
		r.Outcome = OutcomeFailed
		r.Error = failure.Error()
	case len(r.Issues) > 0:
		r.Outcome = OutcomeWarning
	default:
		r.Outcome = OutcomeSuccess
	}
}

// Persist writes the report as indented JSON to path, creating parent directories.
func (r *Report) Persist(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return fmt.Errorf("create report directory: %w", err)
	}
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}
	data = append(data, '\n')
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}

// Summary returns a one-line human readable description of the run.
func (r *Report) Summary() string {
	return fmt.Sprintf("%s: %d files written, %d skipped, %d asset dirs copied, %d warnings",
		r.Outcome, len(r.FilesWritten), len(r.FilesSkipped), len(r.AssetsCopied), len(r.Issues))
}
