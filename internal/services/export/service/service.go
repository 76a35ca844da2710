// Package service runs the export pipeline: window, fetch, encode, store
package service

import (
	"context"
	"time"

	"orderexport/internal/core/csvexport"
	"orderexport/internal/core/window"
	perr "orderexport/internal/platform/errors"
	"orderexport/internal/platform/logger"
	"orderexport/internal/services/export/domain"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

// Options configures the Service
type Options struct {
	Source  domain.OrderSource
	Sink    domain.Sink
	Encoder csvexport.Encoder

	// Folder prefixes every destination name, "" writes at the bucket root
	Folder string
	// RecentLimit is the default page size for recent runs
	RecentLimit int

	Metrics prometheus.Registerer
	Tracer  trace.Tracer

	Now      func() time.Time
	NewRunID func() string
}

// Service is safe for concurrent runs; runs share only the source and sink clients
type Service struct {
	src    domain.OrderSource
	sink   domain.Sink
	enc    csvexport.Encoder
	folder string
	limit  int

	m      *runMetrics
	tracer trace.Tracer
	now    func() time.Time
	newID  func() string
}

// New builds the service; Source and Sink are required
func New(o Options) *Service {
	if o.Source == nil {
		panic("export service requires an order source")
	}
	if o.Sink == nil {
		panic("export service requires a sink")
	}
	if len(o.Encoder.Columns) == 0 {
		o.Encoder = csvexport.Default
	}
	if o.Tracer == nil {
		o.Tracer = noop.NewTracerProvider().Tracer("export")
	}
	if o.Now == nil {
		o.Now = time.Now
	}
	if o.NewRunID == nil {
		o.NewRunID = uuid.NewString
	}
	return &Service{
		src:    o.Source,
		sink:   o.Sink,
		enc:    o.Encoder,
		folder: o.Folder,
		limit:  o.RecentLimit,
		m:      newRunMetrics(o.Metrics),
		tracer: o.Tracer,
		now:    o.Now,
		newID:  o.NewRunID,
	}
}

// Run executes one export; the first failing stage ends the run
// the returned Report always carries the RunID
func (s *Service) Run(ctx context.Context, in domain.RunInput) (domain.Report, error) {
	mode := in.Mode
	if mode == "" {
		mode = domain.ModeToday
	}
	limit := in.Limit
	if limit <= 0 {
		limit = s.limit
	}

	start := s.now()
	rep := domain.Report{RunID: s.newID(), Mode: mode}

	ctx = logger.WithRun(ctx, rep.RunID)
	ctx, span := s.tracer.Start(ctx, "export.run", trace.WithAttributes(
		attribute.String("export.run_id", rep.RunID),
		attribute.String("export.mode", string(mode)),
	))
	defer span.End()

	err := s.pipeline(ctx, start, limit, &rep)
	rep.Duration = s.now().Sub(start)
	s.m.duration.WithLabelValues(string(mode)).Observe(rep.Duration.Seconds())

	log := logger.C(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, perr.CodeOf(err).String())
		s.m.runs.WithLabelValues(string(mode), "failure").Inc()
		log.Error().Err(err).
			Str("stage", perr.OpOf(err)).
			Str("code", perr.CodeOf(err).String()).
			Str("mode", string(mode)).
			Str("day", rep.Day).
			Msg("export failed")
		return rep, err
	}

	s.m.runs.WithLabelValues(string(mode), "success").Inc()
	s.m.rows.WithLabelValues(string(mode)).Add(float64(rep.Rows))
	span.SetAttributes(attribute.Int("export.rows", rep.Rows), attribute.String("export.destination", rep.Destination))
	log.Info().
		Str("mode", string(mode)).
		Str("day", rep.Day).
		Str("destination", rep.Destination).
		Str("backend", rep.Backend).
		Int("rows", rep.Rows).
		Int("bytes", rep.Bytes).
		Dur("elapsed", rep.Duration).
		Msg(rep.Summary())
	return rep, nil
}

func (s *Service) pipeline(ctx context.Context, now time.Time, limit int, rep *domain.Report) error {
	var (
		f   domain.Filter
		rs  domain.ResultSet
		art domain.Artifact
	)

	if err := s.step(ctx, domain.StageFilter, func(context.Context) (err error) {
		f, err = window.For(rep.Mode, now, limit)
		return err
	}); err != nil {
		return err
	}
	rep.Day = f.Day
	rep.Destination = window.DestinationName(f.Day, s.folder)
	rep.Backend = s.sink.Describe()

	if err := s.step(ctx, domain.StageFetch, func(ctx context.Context) (err error) {
		rs, err = s.src.Query(ctx, f)
		if err != nil {
			return perr.Wrap(err, perr.ErrorCodeFetch, "fetch orders")
		}
		return nil
	}); err != nil {
		return err
	}
	rep.Rows = rs.Len()
	rep.Truncated = rs.Truncated()
	if rep.Truncated {
		logger.C(ctx).Warn().Int("returned", rs.Len()).Int("total", rs.Total).Msg("upstream returned a partial page; export holds the first page only")
	}

	if err := s.step(ctx, domain.StageEncode, func(context.Context) (err error) {
		art, err = s.enc.Encode(rs)
		if err != nil && !perr.IsCode(err, perr.ErrorCodeEncode) {
			err = perr.Wrap(err, perr.ErrorCodeEncode, "encode orders")
		}
		return err
	}); err != nil {
		return err
	}
	rep.Bytes = len(art)

	return s.step(ctx, domain.StageStore, func(ctx context.Context) error {
		err := s.sink.Store(ctx, rep.Destination, art)
		if err == nil || perr.IsCode(err, perr.ErrorCodeStage) || perr.IsCode(err, perr.ErrorCodeStore) {
			return err
		}
		return perr.Wrap(err, perr.ErrorCodeStore, "store artifact")
	})
}

// step runs fn in its own span and tags failures with the stage
func (s *Service) step(ctx context.Context, st domain.Stage, fn func(context.Context) error) error {
	ctx, span := s.tracer.Start(ctx, "export."+string(st))
	defer span.End()

	log := logger.C(ctx)
	log.Debug().Str("stage", string(st)).Msg("stage start")

	if err := fn(ctx); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		s.m.stageFailures.WithLabelValues(string(st)).Inc()
		return perr.WithOp(err, string(st))
	}
	log.Debug().Str("stage", string(st)).Msg("stage done")
	return nil
}
