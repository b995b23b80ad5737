package progress

import (
	"os"

	"github.com/schollz/progressbar/v3"
	"go.uber.org/zap"
)

// Reporter receives progress while the site is being built.
type Reporter interface {
	Start(total int)
	Update(current int, page string)
	Finish()
}

// NewReporter returns a TerminalReporter for interactive terminals, or a
// LogReporter writing to logger when the CI environment variable is set.
func NewReporter(logger *zap.Logger) Reporter {
	if os.Getenv("CI") != "" || os.Getenv("GITHUB_ACTIONS") != "" {
		return &LogReporter{logger: logger}
	}
	return &TerminalReporter{}
}

// Nop discards progress.
type Nop struct{}

func (Nop) Start(int)          {}
func (Nop) Update(int, string) {}
func (Nop) Finish()            {}

// TerminalReporter displays a progress bar in the terminal.
type TerminalReporter struct {
	bar *progressbar.ProgressBar
}

func (r *TerminalReporter) Start(total int) {
	r.bar = progressbar.NewOptions(total,
		progressbar.OptionSetDescription("Rendering pages"),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowCount(),
		progressbar.OptionClearOnFinish(),
		progressbar.OptionSetWriter(os.Stderr),
	)
}

func (r *TerminalReporter) Update(current int, page string) {
	if r.bar != nil {
		r.bar.Describe(page)
		_ = r.bar.Set(current)
	}
}

func (r *TerminalReporter) Finish() {
	if r.bar != nil {
		_ = r.bar.Finish()
	}
}

// LogReporter emits one structured log line per page, for CI logs.
type LogReporter struct {
	logger *zap.Logger
	total  int
}

func (r *LogReporter) Start(total int) {
	r.total = total
	r.log().Info("rendering site", zap.Int("pages", total))
}

func (r *LogReporter) Update(current int, page string) {
	r.log().Info("rendered page", zap.Int("n", current), zap.Int("of", r.total), zap.String("page", page))
}

func (r *LogReporter) Finish() {
	r.log().Info("site rendered")
}

func (r *LogReporter) log() *zap.Logger {
	if r.logger == nil {
		return zap.NewNop()
	}
	return r.logger
}
