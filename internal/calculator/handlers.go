package calculator

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"go-chi-calculator/internal/handlers"
	"go-chi-calculator/internal/keypad"
	"go-chi-calculator/internal/model"
	"go-chi-calculator/internal/observability"
	"go-chi-calculator/internal/session"
)

// tracer is the calculator's dedicated OpenTelemetry tracer.
var tracer = otel.Tracer("calculator")

const (
	// maxKeysPerRequest bounds the work a single request can queue on an engine.
	maxKeysPerRequest = 256

	// maxBodyBytes caps request bodies before any decoding or key parsing.
	maxBodyBytes = 16 << 10
)

// Handler serves calculator sessions over HTTP. Every engine is driven through
// the session store, which serialises access per session.
type Handler struct {
	store *session.Store
}

// NewHandler returns a Handler backed by store.
func NewHandler(store *session.Store) *Handler {
	return &Handler{store: store}
}

// ---------------------------------------------------------------------------
// Handlers — sessions
// ---------------------------------------------------------------------------

// CreateSession handles POST /calculator/sessions
func (h *Handler) CreateSession(w http.ResponseWriter, r *http.Request) {
	ctx, span, logger := startSpan(r, "calculator.session.create")
	defer span.End()

	id, state, err := h.store.Create()
	if err != nil {
		h.sessionError(ctx, span, logger, "create", err, w)
		return
	}

	span.SetAttributes(attribute.String("calculator.session.id", id))
	logger.Info("calculator session created",
		zap.String("session_id", id),
		zap.Int("active_sessions", h.store.Len()),
		observability.RequestIDField(ctx),
	)

	handlers.WriteJSON(w, http.StatusCreated, SessionResponse{SessionID: id, State: state})
}

// GetSession handles GET /calculator/sessions/{id}
func (h *Handler) GetSession(w http.ResponseWriter, r *http.Request) {
	ctx, span, logger := startSpan(r, "calculator.session.get")
	defer span.End()

	id := chi.URLParam(r, "id")
	state, err := h.store.Get(id)
	if err != nil {
		h.sessionError(ctx, span, logger, "get", err, w)
		return
	}

	handlers.WriteJSON(w, http.StatusOK, SessionResponse{SessionID: id, State: state})
}

// DeleteSession handles DELETE /calculator/sessions/{id}
func (h *Handler) DeleteSession(w http.ResponseWriter, r *http.Request) {
	ctx, span, logger := startSpan(r, "calculator.session.delete")
	defer span.End()

	id := chi.URLParam(r, "id")
	if err := h.store.Delete(id); err != nil {
		h.sessionError(ctx, span, logger, "delete", err, w)
		return
	}

	logger.Info("calculator session deleted",
		zap.String("session_id", id),
		observability.RequestIDField(ctx),
	)
	w.WriteHeader(http.StatusNoContent)
}

// PressKeys handles POST /calculator/sessions/{id}/keys. It applies the keys in
// order to the session's engine and returns the resulting displays.
func (h *Handler) PressKeys(w http.ResponseWriter, r *http.Request) {
	ctx, span, logger := startSpan(r, "calculator.session.keys")
	defer span.End()

	id := chi.URLParam(r, "id")
	span.SetAttributes(attribute.String("calculator.session.id", id))

	var req KeysRequest
	if !decodeBody(ctx, span, logger, "keys", w, r, &req) {
		return
	}

	keys, ok := parseKeys(ctx, span, logger, req.Keys, w)
	if !ok {
		return
	}

	state, err := h.store.Apply(id, func(c *model.Calculator) {
		pressKeys(ctx, logger, c, keys)
	})
	if err != nil {
		h.sessionError(ctx, span, logger, "keys", err, w)
		return
	}

	span.SetStatus(codes.Ok, "")
	handlers.WriteJSON(w, http.StatusOK, SessionResponse{SessionID: id, State: state})
}

// ---------------------------------------------------------------------------
// Handler — one-shot evaluation
// ---------------------------------------------------------------------------

// Evaluate handles POST /calculator/evaluate. It replays a compact key string
// or a token list on a throwaway engine.
func (h *Handler) Evaluate(w http.ResponseWriter, r *http.Request) {
	ctx, span, logger := startSpan(r, "calculator.evaluate")
	defer span.End()

	var req EvaluateRequest
	if !decodeBody(ctx, span, logger, "evaluate", w, r, &req) {
		return
	}

	keys, err := req.Keys.Keys()
	if err != nil {
		observability.RecordError(ctx, span, logger, errorCounter, "evaluate", "unknown key", err, http.StatusBadRequest, w)
		return
	}
	if len(keys) > maxKeysPerRequest {
		observability.RecordError(ctx, span, logger, errorCounter, "evaluate", "too many keys", fmt.Errorf("%d keys, limit %d", len(keys), maxKeysPerRequest), http.StatusBadRequest, w)
		return
	}

	c := model.New()
	pressKeys(ctx, logger, c, keys)

	names := make([]string, len(keys))
	for i, k := range keys {
		names[i] = k.Name()
	}

	span.SetStatus(codes.Ok, "")
	handlers.WriteJSON(w, http.StatusOK, EvaluateResponse{Keys: names, State: c.Snapshot()})
}

// ---------------------------------------------------------------------------
// Handlers — binary operations
// ---------------------------------------------------------------------------

// Add handles POST /calculator/add
func (h *Handler) Add(w http.ResponseWriter, r *http.Request) {
	handleBinaryOp(w, r, model.OpAdd)
}

// Subtract handles POST /calculator/subtract
func (h *Handler) Subtract(w http.ResponseWriter, r *http.Request) {
	handleBinaryOp(w, r, model.OpSubtract)
}

// Multiply handles POST /calculator/multiply
func (h *Handler) Multiply(w http.ResponseWriter, r *http.Request) {
	handleBinaryOp(w, r, model.OpMultiply)
}

// Divide handles POST /calculator/divide
func (h *Handler) Divide(w http.ResponseWriter, r *http.Request) {
	handleBinaryOp(w, r, model.OpDivide)
}

// handleBinaryOp evaluates a single "a <op> b" with the engine's decimal
// arithmetic and formatting.
func handleBinaryOp(w http.ResponseWriter, r *http.Request, op model.Operation) {
	opName := op.String()
	ctx, span, logger := startSpan(r, "calculator."+opName)
	defer span.End()

	span.SetAttributes(attribute.String("calculator.operation", opName))

	var req CalcRequest
	if !decodeBody(ctx, span, logger, opName, w, r, &req) {
		return
	}

	for _, operand := range []struct {
		name  string
		value decimal.Decimal
	}{{"a", req.A}, {"b", req.B}} {
		if err := model.CheckOperand(operand.value); err != nil {
			observability.RecordError(ctx, span, logger, errorCounter, opName, "operand too long", fmt.Errorf("%s: %w", operand.name, err), http.StatusBadRequest, w)
			return
		}
	}

	span.SetAttributes(
		attribute.String("calculator.operand.a", req.A.String()),
		attribute.String("calculator.operand.b", req.B.String()),
	)

	start := time.Now()
	result, err := op.Apply(req.A, req.B)
	elapsed := float64(time.Since(start).Microseconds()) / 1000.0 // ms

	if errors.Is(err, model.ErrDivisionByZero) {
		observability.RecordError(ctx, span, logger, errorCounter, opName, err.Error(), err, http.StatusUnprocessableEntity, w)
		return
	}
	if err != nil {
		observability.RecordError(ctx, span, logger, errorCounter, opName, "evaluation failed", err, http.StatusInternalServerError, w)
		return
	}

	recordEvaluation(ctx, opName, result, elapsed)

	a, b, res := model.Format(req.A), model.Format(req.B), model.Format(result)
	span.SetAttributes(attribute.String("calculator.result", res))
	span.SetStatus(codes.Ok, "")

	logger.Info("calculator operation completed",
		zap.String("operation", opName),
		zap.String("a", a),
		zap.String("b", b),
		zap.String("result", res),
		zap.Float64("duration_ms", elapsed),
		observability.RequestIDField(ctx),
	)

	handlers.WriteJSON(w, http.StatusOK, CalcResponse{
		Operation:  opName,
		A:          a,
		B:          b,
		Result:     res,
		Expression: fmt.Sprintf("%s %s %s =", a, op.Symbol(), b),
	})
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

func startSpan(r *http.Request, name string) (context.Context, trace.Span, *zap.Logger) {
	ctx, span := tracer.Start(r.Context(), name,
		trace.WithAttributes(
			attribute.String("request.id", observability.RequestIDFromContext(r.Context())),
		),
	)
	return ctx, span, observability.LoggerWithTrace(ctx)
}

// decodeBody decodes a size-limited JSON body into dst and reports failures
// through RecordError: 413 past maxBodyBytes, 400 otherwise.
func decodeBody(ctx context.Context, span trace.Span, logger *zap.Logger, opName string, w http.ResponseWriter, r *http.Request, dst any) bool {
	body := http.MaxBytesReader(w, r.Body, maxBodyBytes)
	defer body.Close()

	err := json.NewDecoder(body).Decode(dst)
	if err == nil {
		return true
	}

	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		observability.RecordError(ctx, span, logger, errorCounter, opName, "request body too large", err, http.StatusRequestEntityTooLarge, w)
		return false
	}
	observability.RecordError(ctx, span, logger, errorCounter, opName, "invalid request body", err, http.StatusBadRequest, w)
	return false
}

func parseKeys(ctx context.Context, span trace.Span, logger *zap.Logger, tokens []string, w http.ResponseWriter) ([]keypad.Key, bool) {
	if len(tokens) > maxKeysPerRequest {
		observability.RecordError(ctx, span, logger, errorCounter, "keys", "too many keys", fmt.Errorf("%d keys, limit %d", len(tokens), maxKeysPerRequest), http.StatusBadRequest, w)
		return nil, false
	}

	keys, err := keypad.ParseAll(tokens)
	if err != nil {
		observability.RecordError(ctx, span, logger, errorCounter, "keys", "unknown key", err, http.StatusBadRequest, w)
		return nil, false
	}
	return keys, true
}

// pressKeys applies keys to c, one child span per key. A division by zero is
// not a request failure: it is latched in the engine and reported in the
// returned state.
func pressKeys(ctx context.Context, logger *zap.Logger, c *model.Calculator, keys []keypad.Key) {
	for i, k := range keys {
		_, span := tracer.Start(ctx, "calculator.key."+k.Name(),
			trace.WithAttributes(
				attribute.Int("calculator.key.index", i),
				attribute.String("calculator.key", k.Name()),
			),
		)

		pending, _ := c.CurrentOperation()
		hadError := c.HasError()

		start := time.Now()
		keypad.Press(c, k)
		elapsed := float64(time.Since(start).Microseconds()) / 1000.0

		keysCounter.Add(ctx, 1, metric.WithAttributes(attribute.String("key", k.Name())))

		switch {
		case !hadError && c.HasError():
			span.RecordError(c.Err())
			span.SetStatus(codes.Error, c.Err().Error())
			errorCounter.Add(ctx, 1, metric.WithAttributes(attribute.String("operation", pending.String())))

			logger.Warn("calculator error latched",
				zap.Int("key_index", i),
				zap.String("operation", pending.String()),
				zap.Error(c.Err()),
				observability.RequestIDField(ctx),
			)
		case k == keypad.Equals && pending != model.OpNone:
			recordEvaluation(ctx, pending.String(), c.DisplayValue(), elapsed)
			span.SetStatus(codes.Ok, "")
		default:
			span.SetStatus(codes.Ok, "")
		}

		span.SetAttributes(
			attribute.String("calculator.display", c.CurrentDisplay()),
			attribute.String("calculator.expression", c.ExpressionDisplay()),
		)
		span.End()
	}
}

func recordEvaluation(ctx context.Context, opName string, result decimal.Decimal, elapsed float64) {
	attrs := metric.WithAttributes(attribute.String("operation", opName))
	opsCounter.Add(ctx, 1, attrs)
	opsHistogram.Record(ctx, elapsed, attrs)
	f, _ := result.Float64()
	resultGauge.Record(ctx, f, attrs)
}

func (h *Handler) sessionError(ctx context.Context, span trace.Span, logger *zap.Logger, opName string, err error, w http.ResponseWriter) {
	switch {
	case errors.Is(err, session.ErrNotFound):
		observability.RecordError(ctx, span, logger, errorCounter, opName, "session not found", err, http.StatusNotFound, w)
	case errors.Is(err, session.ErrCapacity):
		observability.RecordError(ctx, span, logger, errorCounter, opName, "session capacity reached", err, http.StatusServiceUnavailable, w)
	default:
		observability.RecordError(ctx, span, logger, errorCounter, opName, "session failure", err, http.StatusInternalServerError, w)
	}
}
