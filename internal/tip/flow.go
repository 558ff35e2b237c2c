// Package tip runs the tip form: validation, fee preview, payload building
// and a single signed submission per Send.
package tip

import (
	"context"
	"log/slog"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/OKaluzny/sui-tips/internal/fee"
	"github.com/OKaluzny/sui-tips/internal/txb"
	"github.com/OKaluzny/sui-tips/internal/wallet"
	"github.com/OKaluzny/sui-tips/pkg/models"
)

// FlowConfig holds the deployment the flow submits to.
type FlowConfig struct {
	Target      string // package::tipping::tip
	FeeReceiver string
	Tokens      models.TokenSet
}

// Flow owns the form state and the submission status.
type Flow struct {
	session wallet.Session
	coins   CoinLister
	cfg     FlowConfig
	logger  *slog.Logger

	mu       sync.Mutex
	form     models.TipRequest
	status   Status
	onStatus func(Status)
}

// NewFlow creates a flow in the Idle state with an empty native-token form.
func NewFlow(session wallet.Session, coins CoinLister, cfg FlowConfig) *Flow {
	return &Flow{
		session: session,
		coins:   coins,
		cfg:     cfg,
		logger:  slog.Default().With("component", "tip_flow"),
		form:    models.TipRequest{Token: models.TokenNative},
		status:  idle(),
	}
}

// SetForm replaces the form contents.
func (f *Flow) SetForm(req models.TipRequest) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.form = req
}

func (f *Flow) Form() models.TipRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.form
}

// OnStatus registers fn to receive every status transition.
func (f *Flow) OnStatus(fn func(Status)) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.onStatus = fn
}

func (f *Flow) Status() Status {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.status
}

// Quote is a fee preview for one amount.
type Quote struct {
	Token     models.Token
	Breakdown models.FeeBreakdown
	Display   fee.Display
}

// Preview computes the breakdown for amount in the given token. It is the
// same computation Send uses for the payload.
func (f *Flow) Preview(amount string, kind models.TokenKind) (Quote, error) {
	token, ok := f.cfg.Tokens[normalizeKind(kind)]
	if !ok {
		return Quote{}, invalid(MsgUnsupportedToken, nil)
	}
	b, err := fee.ForAmount(amount, token)
	if err != nil {
		return Quote{}, invalid(MsgEnterValidAmount, err)
	}
	return Quote{Token: token, Breakdown: b, Display: fee.Render(b)}, nil
}

// Send validates the current form and submits it. While a submission is in
// flight Send returns the current status without doing anything.
func (f *Flow) Send(ctx context.Context) Status {
	logger := f.logger.With("submission_id", uuid.NewString())

	f.mu.Lock()
	if f.status.Phase.InFlight() {
		st := f.status
		f.mu.Unlock()
		logger.Debug("submission in flight, ignoring send", "phase", st.Phase)
		return st
	}
	req := f.form
	f.status = preparing()
	f.mu.Unlock()

	payload, err := f.validate(req)
	if err != nil {
		st := failed(err)
		f.mu.Lock()
		f.status = st
		notify := f.onStatus
		f.mu.Unlock()
		logger.Info("tip rejected", "reason", st.Message)
		emit(notify, st)
		return st
	}

	f.mu.Lock()
	notify := f.onStatus
	f.mu.Unlock()
	emit(notify, preparing())

	logger.Info("sending tip",
		"recipient", payload.Recipient.String(),
		"token", payload.Token.Symbol,
		"tip", payload.Breakdown.Tip,
		"fee", payload.Breakdown.Fee,
		"total", payload.Breakdown.Total,
	)

	st := f.submit(ctx, logger, payload)

	f.mu.Lock()
	f.status = st
	if st.Phase == PhaseSubmitted {
		f.form = models.TipRequest{Token: f.form.Token}
	}
	notify = f.onStatus
	f.mu.Unlock()
	emit(notify, st)

	if st.Phase == PhaseSubmitted {
		logger.Info("tip submitted", "digest", st.Digest)
	} else {
		logger.Warn("tip failed", "kind", st.Kind, "error", st.Err)
	}
	return st
}

// submit runs the adapter calls. A panic inside them ends the submission as
// an unknown failure.
func (f *Flow) submit(ctx context.Context, logger *slog.Logger, p Payload) (st Status) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("submission panicked", "panic", r)
			st = failed(&UnknownError{Cause: r})
		}
	}()

	tx, err := BuildTransaction(ctx, f.coins, p)
	if err != nil {
		return failed(err)
	}

	f.setStatus(awaitingSignature())

	res, err := f.session.SignAndSubmit(ctx, tx)
	if err != nil {
		return failed(&AdapterError{Err: err})
	}
	if res == nil || res.Digest == "" {
		return failed(errors.New("wallet returned no transaction digest"))
	}
	return submitted(res.Digest)
}

func (f *Flow) setStatus(st Status) {
	f.mu.Lock()
	f.status = st
	notify := f.onStatus
	f.mu.Unlock()
	emit(notify, st)
}

func emit(fn func(Status), st Status) {
	if fn != nil {
		fn(st)
	}
}

// validate checks req in display order and resolves everything the payload
// needs. It makes no network calls and runs without f.mu held.
func (f *Flow) validate(req models.TipRequest) (Payload, error) {
	acct, ok := f.session.CurrentAccount()
	if !ok {
		return Payload{}, invalid(MsgWalletNotConnected, nil)
	}
	recipient := strings.TrimSpace(req.Recipient)
	if recipient == "" {
		return Payload{}, invalid(MsgEnterRecipient, nil)
	}
	q, err := f.Preview(req.Amount, req.Token)
	if err != nil {
		return Payload{}, err
	}
	to, err := txb.ParseAddress(recipient)
	if err != nil {
		return Payload{}, invalid(MsgInvalidRecipient, err)
	}
	if strings.TrimSpace(f.cfg.FeeReceiver) == "" {
		return Payload{}, invalid(MsgFeeReceiverMissing, nil)
	}
	feeReceiver, err := txb.ParseAddress(f.cfg.FeeReceiver)
	if err != nil {
		return Payload{}, invalid(MsgInvalidFeeReceiver, err)
	}
	owner, err := txb.ParseAddress(acct.Address)
	if err != nil {
		return Payload{}, errors.Wrap(err, "connected account")
	}
	return Payload{
		Target:      f.cfg.Target,
		Owner:       owner,
		Recipient:   to,
		FeeReceiver: feeReceiver,
		Token:       q.Token,
		Breakdown:   q.Breakdown,
		Message:     req.Message,
	}, nil
}

func normalizeKind(k models.TokenKind) models.TokenKind {
	if k == "" {
		return models.TokenNative
	}
	return k
}
