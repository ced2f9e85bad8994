package tutor

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/m-goikhman/chicago-formula-web/internal/progress"
)

const (
	analyzerQueueSize = 64
	analysisTimeout   = 30 * time.Second
)

type analysisRequest struct {
	participantCode string
	text            string
}

// Analyzer runs writing analysis in the background. Submissions are
// fire-and-forget: they never block the caller, and analysis failures
// never affect the primary response path.
type Analyzer struct {
	tutor    *Tutor
	progress progress.Store
	logger   *slog.Logger

	queue chan analysisRequest
	done  chan struct{}
	once  sync.Once
}

// NewAnalyzer creates and starts the background analyzer worker.
func NewAnalyzer(tutor *Tutor, progressStore progress.Store, logger *slog.Logger) *Analyzer {
	a := &Analyzer{
		tutor:    tutor,
		progress: progressStore,
		logger:   logger,
		queue:    make(chan analysisRequest, analyzerQueueSize),
		done:     make(chan struct{}),
	}
	go a.run()
	return a
}

// Submit queues a player text for analysis. If the queue is full the text
// is dropped with a warning; the caller is never delayed.
func (a *Analyzer) Submit(participantCode, text string) {
	select {
	case a.queue <- analysisRequest{participantCode: participantCode, text: text}:
	default:
		a.logger.Warn("Analysis queue full, dropping submission", "participant", participantCode)
	}
}

// Stop shuts the worker down after draining queued submissions.
func (a *Analyzer) Stop() {
	a.once.Do(func() {
		close(a.queue)
		<-a.done
	})
}

func (a *Analyzer) run() {
	defer close(a.done)
	for req := range a.queue {
		a.process(req)
	}
}

func (a *Analyzer) process(req analysisRequest) {
	ctx, cancel := context.WithTimeout(context.Background(), analysisTimeout)
	defer cancel()

	analysis, err := a.tutor.Analyze(ctx, req.text)
	if err != nil {
		a.logger.Error("Background text analysis failed", "participant", req.participantCode, "error", err)
		return
	}
	if !analysis.ImprovementNeeded || analysis.Feedback == "" {
		return
	}

	if err := a.progress.AddWritingFeedback(ctx, req.participantCode, req.text, analysis.Feedback); err != nil {
		a.logger.Error("Failed to save writing feedback", "participant", req.participantCode, "error", err)
		return
	}
	a.logger.Info("Writing feedback saved", "participant", req.participantCode)
}
