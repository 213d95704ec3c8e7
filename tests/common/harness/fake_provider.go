//go:build unit || e2e

package harness

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"belizevibes-booking/internal/domain/payment"
	"belizevibes-booking/internal/pkg/errs"
)

// FakeSignature is the only signature FakeProvider.ParseEvent accepts.
const FakeSignature = "t=1,v1=fake"

// FakeProvider is a payment.Provider that records session requests and
// decodes events from the FakeEvent JSON shape.
type FakeProvider struct {
	mu          sync.Mutex
	requests    []payment.SessionRequest
	sessions    map[string]*payment.Session
	err         error
	retrieveErr error
	seq         int
}

func NewFakeProvider() *FakeProvider {
	return &FakeProvider{sessions: make(map[string]*payment.Session)}
}

// FailWith makes CreateSession return err; nil restores success.
func (p *FakeProvider) FailWith(err error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.err = err
}

// FailRetrieveWith makes RetrieveSession return err; nil restores success.
func (p *FakeProvider) FailRetrieveWith(err error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.retrieveErr = err
}

// Pay records the session as paid, as the hosted checkout page would.
func (p *FakeProvider) Pay(sessionID string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if s, ok := p.sessions[sessionID]; ok {
		s.PaymentStatus = "paid"
	}
}

func (p *FakeProvider) Requests() []payment.SessionRequest {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]payment.SessionRequest, len(p.requests))
	copy(out, p.requests)
	return out
}

func (p *FakeProvider) CreateSession(ctx context.Context, req payment.SessionRequest) (*payment.Session, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.requests = append(p.requests, req)
	if p.err != nil {
		return nil, p.err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	p.seq++
	id := fmt.Sprintf("cs_test_%04d", p.seq)
	s := &payment.Session{
		ID:                id,
		URL:               "https://checkout.example.test/pay/" + id,
		AmountMinor:       req.AmountMinor,
		Currency:          strings.ToUpper(req.Currency),
		ClientReferenceID: req.BookingID.String(),
		PaymentStatus:     "unpaid",
	}
	p.sessions[id] = s
	out := *s
	return &out, nil
}

func (p *FakeProvider) RetrieveSession(ctx context.Context, sessionID string) (*payment.Session, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.retrieveErr != nil {
		return nil, p.retrieveErr
	}
	s, ok := p.sessions[sessionID]
	if !ok {
		return nil, errs.Newf("no such checkout session: %s", sessionID)
	}
	out := *s
	return &out, nil
}

// FakeEvent is the payload shape understood by FakeProvider.ParseEvent.
type FakeEvent struct {
	ID                string `json:"id"`
	Type              string `json:"type"`
	SessionID         string `json:"session_id"`
	ClientReferenceID string `json:"client_reference_id"`
	PaymentStatus     string `json:"payment_status"`
}

func (e FakeEvent) Payload() []byte {
	data, _ := json.Marshal(e)
	return data
}

func (p *FakeProvider) ParseEvent(payload []byte, signature string) (*payment.Event, error) {
	if signature != FakeSignature {
		return nil, errs.Mark(errs.New("signature mismatch"), payment.ErrInvalidSignature)
	}
	var e FakeEvent
	if err := json.Unmarshal(payload, &e); err != nil {
		return nil, errs.Mark(errs.Wrap(err, "decode event"), payment.ErrInvalidSignature)
	}
	return &payment.Event{
		ID:                e.ID,
		Type:              payment.EventType(e.Type),
		SessionID:         e.SessionID,
		ClientReferenceID: e.ClientReferenceID,
		PaymentStatus:     e.PaymentStatus,
	}, nil
}
