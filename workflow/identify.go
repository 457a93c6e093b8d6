package workflow

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"
)

// State is the identification workflow's current phase
type State string

const (
	// StateCapturing means the camera is live and waiting for a capture
	StateCapturing State = "capturing"
	// StateAnalyzing means a capture is in flight to the recognition service
	StateAnalyzing State = "analyzing"
	// StateIdentified means a known appraiser matched and awaits confirmation
	StateIdentified State = "identified"
	// StateNewAppraiser means no match was found; registration is offered
	StateNewAppraiser State = "new_appraiser"
	// StateSessionEstablished means a session exists with the appraiser bound
	StateSessionEstablished State = "session_established"
	// StateClosed means the workflow was cancelled and its camera released
	StateClosed State = "closed"
)

// SessionAPI is the backend surface the identification workflow depends on.
// *Client satisfies it.
type SessionAPI interface {
	Recognize(ctx context.Context, image string) Outcome
	CreateSession(ctx context.Context) (string, error)
	AttachAppraiser(ctx context.Context, sessionID string, attachment AppraiserAttachment) error
	RegisterAppraiser(ctx context.Context, registration Registration) error
}

var (
	// ErrClosed is returned by every operation after Cancel
	ErrClosed = errors.New("workflow closed")
	// ErrBusy is returned when a capture is submitted while one is in flight
	ErrBusy = errors.New("analysis already in flight")
	// ErrInvalidState is returned when an operation does not apply to the
	// current state
	ErrInvalidState = errors.New("operation not valid in current state")
	// ErrEmptyCapture is returned when a submitted capture has no image data
	ErrEmptyCapture = errors.New("empty capture image")
)

// Workflow drives a single appraiser identification attempt from camera
// start through session establishment. It owns its Camera for its whole
// lifetime and releases it exactly once.
type Workflow struct {
	api    SessionAPI
	camera Camera
	store  *LocalStore

	mu        sync.Mutex
	state     State
	inFlight  bool
	cancelled bool
	released  bool
	attempt   uint64

	image   string // capture retained for attach/registration
	profile *AppraiserProfile

	sessionID string
}

// New starts an identification workflow: the camera is started and the
// workflow enters the capturing state. The store may be nil, in which case
// nothing is persisted on session establishment.
func New(api SessionAPI, camera Camera, store *LocalStore) (*Workflow, error) {
	if err := camera.Start(); err != nil {
		return nil, fmt.Errorf("start camera: %w", err)
	}
	return &Workflow{
		api:    api,
		camera: camera,
		store:  store,
		state:  StateCapturing,
	}, nil
}

// State returns the workflow's current state
func (w *Workflow) State() State {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.state
}

// Profile returns the matched appraiser, nil unless identified
func (w *Workflow) Profile() *AppraiserProfile {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.profile
}

// SessionID returns the established session id, empty until the session
// exists with the appraiser attached
func (w *Workflow) SessionID() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.sessionID
}

// Submit sends a captured image for analysis. The workflow moves to
// analyzing for the duration of the call and lands in identified,
// new_appraiser or back in capturing according to the recognition outcome.
func (w *Workflow) Submit(ctx context.Context, image string) (Outcome, error) {
	w.mu.Lock()
	if w.cancelled {
		w.mu.Unlock()
		return Outcome{}, ErrClosed
	}
	if w.state != StateCapturing {
		w.mu.Unlock()
		return Outcome{}, ErrInvalidState
	}
	// An empty capture never leaves the device; the workflow stays in
	// capturing.
	if image == "" {
		w.mu.Unlock()
		return Outcome{}, ErrEmptyCapture
	}
	if w.inFlight {
		w.mu.Unlock()
		return Outcome{}, ErrBusy
	}
	w.inFlight = true
	w.attempt++
	attempt := w.attempt
	w.state = StateAnalyzing
	w.mu.Unlock()

	outcome := w.api.Recognize(ctx, image)

	w.mu.Lock()
	defer w.mu.Unlock()
	w.inFlight = false

	// A result arriving after Cancel, or after a newer attempt started, is
	// stale and must not influence the workflow.
	if w.cancelled || attempt != w.attempt {
		return outcome, ErrClosed
	}

	switch outcome.Kind {
	case OutcomeMatched:
		w.state = StateIdentified
		w.profile = outcome.Profile
		w.image = image
	case OutcomeNoMatch:
		w.state = StateNewAppraiser
		w.profile = nil
		w.image = image
	case OutcomeRejected, OutcomeFailed:
		w.state = StateCapturing
		w.profile = nil
		w.image = ""
	}
	return outcome, nil
}

// Retry returns an identified or new-appraiser workflow to capturing,
// discarding the held match and image
func (w *Workflow) Retry() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.cancelled {
		return ErrClosed
	}
	if w.state != StateIdentified && w.state != StateNewAppraiser {
		return ErrInvalidState
	}
	w.state = StateCapturing
	w.profile = nil
	w.image = ""
	return nil
}

// EstablishSession confirms the identified appraiser: it creates a session,
// then attaches the appraiser to it, strictly in that order. Only when both
// calls succeed does the workflow hold a session id; on any failure it stays
// identified with no session id visible, so the user can retry.
func (w *Workflow) EstablishSession(ctx context.Context) (string, error) {
	w.mu.Lock()
	if w.cancelled {
		w.mu.Unlock()
		return "", ErrClosed
	}
	if w.state != StateIdentified || w.profile == nil {
		w.mu.Unlock()
		return "", ErrInvalidState
	}
	if w.inFlight {
		w.mu.Unlock()
		return "", ErrBusy
	}
	w.inFlight = true
	profile := *w.profile
	image := w.image
	w.mu.Unlock()

	sessionID, err := w.establish(ctx, profile, image)

	w.mu.Lock()
	defer w.mu.Unlock()
	w.inFlight = false
	if w.cancelled {
		return "", ErrClosed
	}
	if err != nil {
		return "", err
	}
	w.state = StateSessionEstablished
	w.sessionID = sessionID
	return sessionID, nil
}

func (w *Workflow) establish(ctx context.Context, profile AppraiserProfile, image string) (string, error) {
	sessionID, err := w.api.CreateSession(ctx)
	if err != nil {
		return "", err
	}

	attachment := AppraiserAttachment{
		Name:      profile.Name,
		ID:        profile.AppraiserID,
		Image:     image,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Photo:     profile.ImageData,
	}
	if err := w.api.AttachAppraiser(ctx, sessionID, attachment); err != nil {
		return "", err
	}

	if w.store != nil {
		summary := AppraiserSummary{
			AppraiserID: profile.AppraiserID,
			Name:        profile.Name,
			Bank:        profile.Bank,
			Branch:      profile.Branch,
		}
		if err := w.store.SaveSession(sessionID, summary); err != nil {
			return "", fmt.Errorf("persist session: %w", err)
		}
	}
	return sessionID, nil
}

// RegistrationDetails is what the user fills in on the new-appraiser form;
// the captured image and timestamp come from the workflow itself
type RegistrationDetails struct {
	Name   string
	ID     string
	Bank   string
	Branch string
	Email  string
	Phone  string
}

// RequestRegistration submits the unmatched capture together with the
// user-entered details, then establishes a session for the newly registered
// appraiser the same way a matched one would get.
func (w *Workflow) RequestRegistration(ctx context.Context, details RegistrationDetails) (string, error) {
	w.mu.Lock()
	if w.cancelled {
		w.mu.Unlock()
		return "", ErrClosed
	}
	if w.state != StateNewAppraiser {
		w.mu.Unlock()
		return "", ErrInvalidState
	}
	if w.inFlight {
		w.mu.Unlock()
		return "", ErrBusy
	}
	w.inFlight = true
	image := w.image
	w.mu.Unlock()

	registration := Registration{
		Name:      details.Name,
		ID:        details.ID,
		Image:     image, // the retained capture, exactly as submitted
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Bank:      details.Bank,
		Branch:    details.Branch,
		Email:     details.Email,
		Phone:     details.Phone,
	}
	err := w.api.RegisterAppraiser(ctx, registration)
	var sessionID string
	if err == nil {
		profile := AppraiserProfile{
			AppraiserID: details.ID,
			Name:        details.Name,
			Bank:        details.Bank,
			Branch:      details.Branch,
			ImageData:   image,
		}
		sessionID, err = w.establish(ctx, profile, image)
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	w.inFlight = false
	if w.cancelled {
		return "", ErrClosed
	}
	if err != nil {
		return "", err
	}
	w.state = StateSessionEstablished
	w.sessionID = sessionID
	w.profile = &AppraiserProfile{
		AppraiserID: details.ID,
		Name:        details.Name,
		Bank:        details.Bank,
		Branch:      details.Branch,
	}
	return sessionID, nil
}

// Cancel closes the workflow from any state and releases the camera. It is
// idempotent; the camera is stopped exactly once no matter how many times or
// from which state it is called. Any in-flight result is discarded when it
// lands.
func (w *Workflow) Cancel() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.cancelled = true
	w.state = StateClosed
	w.attempt++
	w.releaseLocked()
}

// Finish releases the camera after session establishment without discarding
// the session. Safe to call more than once.
func (w *Workflow) Finish() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.releaseLocked()
}

func (w *Workflow) releaseLocked() {
	if w.released {
		return
	}
	w.released = true
	w.camera.Stop()
}
