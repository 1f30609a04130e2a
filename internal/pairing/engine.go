// Package pairing keeps delimiters balanced while the buffer is edited.
//
// Every structural gesture (typing a delimiter, deleting one, substituting
// one) is planned against a fresh syntax tree by an ActionPlanner and applied
// by an EditScheduler. Delimiters inside opaque spans such as strings and
// comments are plain text.
package pairing

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/zjrosen/strictpair/internal/buffer"
	"github.com/zjrosen/strictpair/internal/log"
	"github.com/zjrosen/strictpair/internal/tracing"
)

const tracerName = "github.com/zjrosen/strictpair/internal/pairing"

// Options configures an Engine. Zero values select the defaults.
type Options struct {
	// Table is the delimiter table. Defaults to DefaultTable.
	Table *Table

	// OpaqueKinds lists node kinds whose contents are free text.
	// Defaults to DefaultOpaqueKinds.
	OpaqueKinds []string

	// CommentKinds lists the opaque kinds that stay open at their end, like
	// line comments. Defaults to DefaultCommentKinds.
	CommentKinds []string

	// Escape is inserted before a symmetric delimiter typed inside an
	// opaque span. Defaults to DefaultEscape.
	Escape string

	// AllowOpaqueDelete lets an unresolvable delimiter inside an opaque span
	// be deleted as plain text instead of being blocked.
	AllowOpaqueDelete bool

	// Tracer records one span per gesture. Defaults to the global provider.
	Tracer trace.Tracer
}

// Engine plans and applies gestures for one buffer.
type Engine struct {
	planner   *ActionPlanner
	scheduler *EditScheduler
	tracer    trace.Tracer
}

// New builds an engine from opts.
func New(opts Options) (*Engine, error) {
	table := opts.Table
	if table == nil {
		table = DefaultTable()
	}
	kinds := opts.OpaqueKinds
	if kinds == nil {
		kinds = DefaultOpaqueKinds
	}
	comments := opts.CommentKinds
	if comments == nil {
		comments = DefaultCommentKinds
	}
	escape := opts.Escape
	if escape == "" {
		escape = DefaultEscape
	}
	if table.IsDelimiter(escape) {
		return nil, fmt.Errorf("%w: escape %q is a delimiter", ErrInvalidTable, escape)
	}
	tracer := opts.Tracer
	if tracer == nil {
		tracer = otel.Tracer(tracerName)
	}

	return &Engine{
		planner: &ActionPlanner{
			table:             table,
			classifier:        NewContextClassifier(NewOpaqueKinds(kinds), NewOpaqueKinds(comments)),
			resolver:          NewPairResolver(table),
			escape:            escape,
			allowOpaqueDelete: opts.AllowOpaqueDelete,
		},
		scheduler: NewEditScheduler(),
		tracer:    tracer,
	}, nil
}

// Plan returns the action for g without touching the host.
func (e *Engine) Plan(ctx context.Context, host Host, g Gesture) Action {
	_, span := e.tracer.Start(ctx, tracing.SpanPlan, trace.WithAttributes(
		attribute.String(tracing.AttrGesture, g.Kind.String()),
		attribute.String(tracing.AttrGestureChar, g.Char),
		attribute.String(tracing.AttrCursor, host.Cursor().String()),
	))
	defer span.End()

	a := e.planner.Plan(host, g)
	span.SetAttributes(attribute.String(tracing.AttrAction, a.Kind.String()))
	if a.Kind == ActionBlocked {
		span.SetAttributes(attribute.String(tracing.AttrActionReason, a.Reason.Error()))
		log.Warn(log.CatPair, "blocked", "gesture", g, "cursor", host.Cursor(), "reason", a.Reason)
	}
	log.Debug(log.CatPair, "planned", "gesture", g, "cursor", host.Cursor(), "action", a)
	return a
}

// Handle plans g and applies its primary mutation. handled is false when the
// host should perform its own default edit. Follow-up edits stay queued
// until Drain.
func (e *Engine) Handle(ctx context.Context, host Host, g Gesture) (handled bool, a Action, err error) {
	ctx, span := e.tracer.Start(ctx, tracing.SpanHandle)
	defer span.End()

	a = e.Plan(ctx, host, g)
	handled, err = e.scheduler.Apply(host, a)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "apply failed")
		log.ErrorErr(log.CatPair, "apply failed", err, "action", a)
	}
	return handled, a, err
}

// Drain runs follow-up edits queued by earlier gestures.
func (e *Engine) Drain(host Host) error {
	if e.scheduler.Pending() == 0 {
		return nil
	}
	_, span := e.tracer.Start(context.Background(), tracing.SpanDrain,
		trace.WithAttributes(attribute.Int(tracing.AttrPending, e.scheduler.Pending())))
	defer span.End()

	if err := e.scheduler.Drain(host); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "drain failed")
		return err
	}
	return nil
}

// Table returns the delimiter table the engine plans with.
func (e *Engine) Table() *Table {
	return e.planner.table
}

// Pending reports whether follow-up edits are waiting for Drain.
func (e *Engine) Pending() bool {
	return e.scheduler.Pending() > 0
}

// ResolvePair exposes the pair lookup for a delimiter at p, using a fresh
// tree from host. The editor highlights the result and the tree command
// marks nodes that act as delimiter pairs.
func (e *Engine) ResolvePair(host Host, p buffer.Position) (DelimiterPair, bool) {
	tree, err := host.SyntaxTree()
	if err != nil {
		return DelimiterPair{}, false
	}
	return e.planner.resolver.Resolve(tree, NewPositionResolver(host), p)
}

// OpaqueKind reports whether nodes of kind are free text under the
// configured opaque kinds.
func (e *Engine) OpaqueKind(kind string) bool {
	return e.planner.classifier.kinds.Match(kind)
}
