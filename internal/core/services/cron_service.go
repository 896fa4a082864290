package services

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// ReportWindow is the period covered by each admission report
const ReportWindow = 24 * time.Hour

// CronService runs the periodic admission report
type CronService struct {
	cron       *cron.Cron
	recoverJob cron.JobWrapper
	ledger     AdmissionLedger
	sink       ReportSink
	schedule   string
	now        func() time.Time
	log        *zap.Logger
}

// NewCronService creates a new cron service. sink may be nil
func NewCronService(ledger AdmissionLedger, sink ReportSink, schedule string, log *zap.Logger) *CronService {
	if log == nil {
		log = zap.NewNop()
	}
	cronLog := zapCronLogger{log: log.Sugar().Named("cron")}
	recoverer := cron.Recover(cronLog)
	return &CronService{
		cron:       cron.New(cron.WithLogger(cronLog), cron.WithChain(recoverer)),
		recoverJob: recoverer,
		ledger:     ledger,
		sink:       sink,
		schedule:   schedule,
		now:        time.Now,
		log:        log,
	}
}

// Start registers the report job and starts the scheduler
func (s *CronService) Start() error {
	if _, err := s.cron.AddFunc(s.schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()
		_, _ = s.RunReport(ctx)
	}); err != nil {
		return err
	}

	s.cron.Start()
	s.log.Info("admission report scheduled", zap.String("schedule", s.schedule))
	return nil
}

// Stop stops the scheduler and waits for a running report to finish
func (s *CronService) Stop() {
	<-s.cron.Stop().Done()
	s.log.Info("admission report stopped")
}

// RunReport counts users admitted within ReportWindow and publishes the result
func (s *CronService) RunReport(ctx context.Context) (int64, error) {
	since := s.now().Add(-ReportWindow)

	n, err := s.ledger.CountSince(ctx, since)
	if err != nil {
		s.log.Error("admission report failed", zap.Error(err))
		return 0, err
	}

	if s.sink != nil {
		s.sink.SetRecentAdmissions(n)
	}
	s.log.Info("admission report",
		zap.Time("since", since),
		zap.Int64("admitted", n),
	)
	return n, nil
}

// zapCronLogger routes scheduler logs and recovered job panics to zap
type zapCronLogger struct {
	log *zap.SugaredLogger
}

func (l zapCronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.log.Debugw(msg, keysAndValues...)
}

func (l zapCronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.log.Errorw(msg, append(keysAndValues, "error", err)...)
}
