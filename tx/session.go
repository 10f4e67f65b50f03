// Package tx drives one transaction from draft to broadcast result: it
// simulates for a gas estimate, prices the fee, collects a signature, and
// parses the chain's synchronous response. One Session per submission;
// retries make a new attempt inside the same session.
package tx

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/terra-community/station-core/fee"
	"github.com/terra-community/station-core/lcd"
	"github.com/terra-community/station-core/models"
)

var log zerolog.Logger

func init() {
	out := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
	log = zerolog.New(out).With().Timestamp().Str("component", "tx").Logger()
}

// DefaultGasAdjustment pads the simulated gas estimate. Real execution
// costs often exceed simulation because chain state moves between the
// simulate call and inclusion in a block.
const DefaultGasAdjustment = "1.75"

// State is the position of a session in its lifecycle.
type State int

const (
	StateIdle State = iota
	StateSimulating
	StateSimulationFailed
	StateSimulated
	StateSubmitting
	StateSigned
	StateBroadcast
	StateSucceeded
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateSimulating:
		return "simulating"
	case StateSimulationFailed:
		return "simulation_failed"
	case StateSimulated:
		return "simulated"
	case StateSubmitting:
		return "submitting"
	case StateSigned:
		return "signed"
	case StateBroadcast:
		return "broadcast"
	case StateSucceeded:
		return "succeeded"
	case StateFailed:
		return "failed"
	}
	return "unknown"
}

// Backend is the LCD surface the pipeline needs. *lcd.Client satisfies it.
type Backend interface {
	GetBase(ctx context.Context, address string) (models.Base, error)
	SimulateTx(ctx context.Context, path string, baseReq lcd.BaseReq, payload map[string]any) (string, error)
	CreateTx(ctx context.Context, path string, baseReq lcd.BaseReq, payload map[string]any) (json.RawMessage, error)
	Broadcast(ctx context.Context, signedTx json.RawMessage) (lcd.BroadcastResult, error)
}

// Draft is what a flow constructor hands the pipeline: the endpoint, its
// message payload, and the constraints the session enforces. Fee fields
// stay editable until Submit freezes them.
type Draft struct {
	// URL is the transaction-building endpoint, e.g. "/bank/accounts/.../transfers".
	URL string
	// Payload is the endpoint-specific body merged next to base_req.
	Payload map[string]any
	// From is the sender address; base account info is fetched for it.
	From string
	Memo string
	// FeeDenoms are the denominations the fee may be paid in, in
	// preference order.
	FeeDenoms []string
	// Validate is the caller's affordability predicate over current
	// balances. Submit refuses while it returns false.
	Validate func(fee models.Coin) bool
}

// Result is the immutable outcome of a successful broadcast.
type Result struct {
	Height string
	TxHash string
	RawLog string
}

// Session is the per-submission state machine. All exported methods are
// safe for concurrent use; network calls run in the calling goroutine and
// a response only lands if the session has not been cancelled or restarted
// since the call began.
type Session struct {
	backend Backend
	fees    *fee.Calculator
	signer  Signer
	margin  decimal.Decimal

	mu         sync.Mutex
	generation uint64
	state      State
	draft      Draft
	feeDenom   string
	feeAmount  string
	estimate   string
	unsigned   json.RawMessage
	base       models.Base
	lastErr    *Error
	result     *Result
}

// NewSession creates a session over a draft with the default gas
// adjustment. The fee denomination starts as the draft's first choice.
func NewSession(backend Backend, fees *fee.Calculator, signer Signer, draft Draft) *Session {
	margin, _ := decimal.NewFromString(DefaultGasAdjustment)
	s := &Session{
		backend: backend,
		fees:    fees,
		signer:  signer,
		margin:  margin,
		state:   StateIdle,
		draft:   draft,
	}
	if len(draft.FeeDenoms) > 0 {
		s.feeDenom = draft.FeeDenoms[0]
	}
	return s
}

// NewSessionWithAdjustment creates a session with an explicit gas
// adjustment multiplier, e.g. "1.4".
func NewSessionWithAdjustment(backend Backend, fees *fee.Calculator, signer Signer, draft Draft, adjustment string) (*Session, error) {
	margin, err := decimal.NewFromString(adjustment)
	if err != nil {
		return nil, fmt.Errorf("bad gas adjustment %q: %w", adjustment, err)
	}
	if margin.LessThan(decimal.NewFromInt(1)) {
		return nil, fmt.Errorf("gas adjustment %q below 1", adjustment)
	}
	s := NewSession(backend, fees, signer, draft)
	s.margin = margin
	return s, nil
}

// State returns the session's current lifecycle position.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Err returns the last surfaced failure, nil when none.
func (s *Session) Err() *Error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastErr
}

// Result returns the broadcast outcome once the session succeeded.
func (s *Session) Result() *Result {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.result
}

// Fee returns the currently selected fee.
func (s *Session) Fee() models.Coin {
	s.mu.Lock()
	defer s.mu.Unlock()
	return models.Coin{Amount: s.feeAmount, Denom: s.feeDenom}
}

// SetFeeDenom switches the fee denomination. The previous estimate no
// longer applies, so the session drops back to Idle and must simulate
// again.
func (s *Session) SetFeeDenom(denom string) error {
	if !s.fees.Payable(denom) {
		return validationError("fee cannot be paid in %s", denom)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == StateSubmitting || s.state == StateSigned || s.state == StateBroadcast {
		return validationError("fee denom locked while submitting")
	}
	s.generation++
	s.feeDenom = denom
	s.feeAmount = ""
	s.estimate = ""
	s.state = StateIdle
	s.lastErr = nil
	return nil
}

// SetFeeAmount overrides the estimated fee amount before submission.
func (s *Session) SetFeeAmount(amount string) error {
	parsed, err := decimal.NewFromString(amount)
	if err != nil || !parsed.IsInteger() || parsed.IsNegative() {
		return validationError("fee amount must be a non-negative integer in micro-units")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateSimulated {
		return validationError("fee editable only after simulation")
	}
	s.feeAmount = amount
	return nil
}

// FeeBelowEstimate reports whether the user-edited fee dropped under the
// simulated recommendation. Submission still proceeds; the caller decides
// whether to warn.
func (s *Session) FeeBelowEstimate() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.estimate == "" || s.feeAmount == s.estimate {
		return false
	}
	current, err1 := decimal.NewFromString(s.feeAmount)
	estimated, err2 := decimal.NewFromString(s.estimate)
	if err1 != nil || err2 != nil {
		return false
	}
	return current.LessThan(estimated)
}

// Cancel discards the session's in-flight work. Responses that arrive
// after cancellation are dropped without touching state.
func (s *Session) Cancel() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.generation++
	switch s.state {
	case StateSimulating:
		s.state = StateIdle
	case StateSubmitting, StateSigned, StateBroadcast:
		s.state = StateSimulated
	}
}

// begin validates the transition under the lock and stamps the attempt
// with the current generation. A later commit with a stale stamp is a
// no-op.
func (s *Session) begin(next State, from ...State) (uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, state := range from {
		if s.state == state {
			s.state = next
			s.lastErr = nil
			return s.generation, nil
		}
	}
	return 0, validationError("cannot %s from %s", next, s.state)
}

// commit applies fn only if the session has not moved on since gen was
// stamped. Returns false when the response is stale.
func (s *Session) commit(gen uint64, fn func()) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.generation != gen {
		return false
	}
	fn()
	return true
}

// Simulate estimates gas for the draft and prices the fee in the selected
// denomination. When the caller's validate predicate rejects that fee, the
// draft's remaining denominations are tried in preference order and the
// first affordable one takes over. Callable from Idle, after a failed
// simulation, and after a fee denomination change.
func (s *Session) Simulate(ctx context.Context) error {
	gen, err := s.begin(StateSimulating, StateIdle, StateSimulationFailed, StateSimulated)
	if err != nil {
		return err
	}

	s.mu.Lock()
	denom := s.feeDenom
	s.mu.Unlock()

	base, gas, simErr := s.simulate(ctx, denom)
	if simErr != nil {
		failure := newError(KindSimulationFailure, simErr.Error(), simErr)
		s.commit(gen, func() {
			s.state = StateSimulationFailed
			s.lastErr = failure
		})
		return failure
	}

	padded := gas.Mul(s.margin)
	amount, feeErr := s.fees.FromGas(denom, padded.String())
	if feeErr != nil {
		failure := newError(KindSimulationFailure, feeErr.Error(), feeErr)
		s.commit(gen, func() {
			s.state = StateSimulationFailed
			s.lastErr = failure
		})
		return failure
	}
	denom, amount = s.pickFeeDenom(denom, amount, padded)

	if !s.commit(gen, func() {
		s.state = StateSimulated
		s.base = base
		s.feeDenom = denom
		s.estimate = amount
		s.feeAmount = amount
		log.Debug().Str("gas", gas.String()).Str("fee", amount).Str("denom", denom).Msg("simulated")
	}) {
		return ctx.Err()
	}
	return nil
}

// pickFeeDenom keeps the selected denomination when the estimated fee is
// affordable, otherwise walks the draft's remaining denominations in
// preference order and takes the first the validate predicate accepts.
// Nothing affordable keeps the original estimate; Submit will refuse it
// and the caller decides what to surface.
func (s *Session) pickFeeDenom(denom, amount string, padded decimal.Decimal) (string, string) {
	validate := s.draft.Validate
	if validate == nil || validate(models.Coin{Amount: amount, Denom: denom}) {
		return denom, amount
	}
	for _, candidate := range s.draft.FeeDenoms {
		if candidate == denom {
			continue
		}
		candidateAmount, err := s.fees.FromGas(candidate, padded.String())
		if err != nil {
			continue
		}
		if validate(models.Coin{Amount: candidateAmount, Denom: candidate}) {
			log.Debug().Str("from", denom).Str("to", candidate).Msg("fee denom fallback")
			return candidate, candidateAmount
		}
	}
	return denom, amount
}

func (s *Session) simulate(ctx context.Context, denom string) (models.Base, decimal.Decimal, error) {
	// Sequence numbers must reflect the latest chain state at the moment
	// of use, so base info is fetched fresh for every attempt.
	base, err := s.backend.GetBase(ctx, s.draft.From)
	if err != nil {
		return models.Base{}, decimal.Zero, err
	}

	baseReq := lcd.NewBaseReq(base, true, "auto")
	baseReq.Fees = []models.Coin{{Amount: "0", Denom: denom}}
	baseReq.Memo = s.draft.Memo

	estimate, err := s.backend.SimulateTx(ctx, s.draft.URL, baseReq, s.draft.Payload)
	if err != nil {
		return models.Base{}, decimal.Zero, err
	}
	gas, err := decimal.NewFromString(estimate)
	if err != nil {
		return models.Base{}, decimal.Zero, fmt.Errorf("bad gas estimate %q: %w", estimate, err)
	}
	return base, gas, nil
}

// Submit freezes the draft and carries it through build, sign, and
// broadcast. It refuses unless the caller's validate predicate accepts the
// fee and, when the signer needs one, a password is present. An incorrect
// password or a hardware rejection returns the session to Simulated for
// another try; any other failure is terminal for the attempt.
func (s *Session) Submit(ctx context.Context, password string) error {
	s.mu.Lock()
	currentFee := models.Coin{Amount: s.feeAmount, Denom: s.feeDenom}
	validate := s.draft.Validate
	s.mu.Unlock()

	if validate != nil && !validate(currentFee) {
		return validationError("fee %s%s not affordable", currentFee.Amount, currentFee.Denom)
	}
	if s.signer.RequiresPassword() && password == "" {
		return validationError("password required")
	}

	gen, err := s.begin(StateSubmitting, StateSimulated)
	if err != nil {
		return err
	}

	unsigned, base, buildErr := s.build(ctx, currentFee)
	if buildErr != nil {
		failure := newError(KindBroadcastRejected, buildErr.Error(), buildErr)
		s.commit(gen, func() {
			s.state = StateSimulated
			s.lastErr = failure
		})
		return failure
	}
	if !s.commit(gen, func() {
		s.unsigned = unsigned
		s.base = base
	}) {
		return ctx.Err()
	}

	return s.sign(ctx, gen, password)
}

func (s *Session) build(ctx context.Context, txFee models.Coin) (json.RawMessage, models.Base, error) {
	base, err := s.backend.GetBase(ctx, s.draft.From)
	if err != nil {
		return nil, models.Base{}, err
	}

	// Gas is recomputed from the possibly user-edited fee so the signed
	// body and the paid fee agree.
	gas, err := s.fees.ToGas(txFee.Denom, txFee.Amount)
	if err != nil {
		return nil, models.Base{}, err
	}

	baseReq := lcd.NewBaseReq(base, false, gas)
	baseReq.Fees = []models.Coin{txFee}
	baseReq.Memo = s.draft.Memo

	unsigned, err := s.backend.CreateTx(ctx, s.draft.URL, baseReq, s.draft.Payload)
	if err != nil {
		return nil, models.Base{}, err
	}
	return unsigned, base, nil
}

// RetrySign repeats only the signing step after a hardware rejection or
// timeout. The unsigned transaction and account info from the original
// Submit are reused.
func (s *Session) RetrySign(ctx context.Context, password string) error {
	gen, err := s.begin(StateSubmitting, StateSubmitting)
	if err != nil {
		return err
	}
	return s.sign(ctx, gen, password)
}

func (s *Session) sign(ctx context.Context, gen uint64, password string) error {
	s.mu.Lock()
	unsigned := s.unsigned
	base := s.base
	s.mu.Unlock()

	signed, err := s.signer.Sign(ctx, unsigned, base, password)
	if err != nil {
		return s.signFailed(gen, err)
	}

	if !s.commit(gen, func() {
		s.state = StateSigned
	}) {
		return ctx.Err()
	}
	return s.broadcast(ctx, gen, signed)
}

func (s *Session) signFailed(gen uint64, err error) error {
	var signerErr *SignerError
	if !errors.As(err, &signerErr) {
		signerErr = &SignerError{Kind: SignerOther, Message: err.Error()}
	}
	failure := newError(KindSignerFailure, signerErr.Error(), signerErr)

	s.commit(gen, func() {
		s.lastErr = failure
		switch signerErr.Kind {
		case SignerIncorrectPassword:
			s.state = StateSimulated
		case SignerHardwareRejected, SignerHardwareTimeout:
			// Stay in Submitting: RetrySign reuses the built transaction.
			s.state = StateSubmitting
		default:
			s.state = StateFailed
		}
	})
	return failure
}

func (s *Session) broadcast(ctx context.Context, gen uint64, signed json.RawMessage) error {
	if !s.commit(gen, func() {
		s.state = StateBroadcast
	}) {
		return ctx.Err()
	}

	result, err := s.backend.Broadcast(ctx, signed)
	if err != nil {
		failure := newError(KindBroadcastRejected, err.Error(), err)
		s.commit(gen, func() {
			s.state = StateFailed
			s.lastErr = failure
		})
		return failure
	}

	if message := ParseRawLog(result.RawLog); message != "" {
		// The call succeeded and the transaction is in a block, but its
		// execution reverted.
		failure := newError(KindExecutionReverted, message, nil)
		s.commit(gen, func() {
			s.state = StateFailed
			s.lastErr = failure
			s.result = &Result{Height: result.Height, TxHash: result.TxHash, RawLog: result.RawLog}
		})
		return failure
	}

	if !s.commit(gen, func() {
		s.state = StateSucceeded
		s.result = &Result{Height: result.Height, TxHash: result.TxHash, RawLog: result.RawLog}
		log.Info().Str("txhash", result.TxHash).Str("height", result.Height).Msg("broadcast succeeded")
	}) {
		return ctx.Err()
	}
	return nil
}
