package workflow

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCamera struct {
	startErr error
	starts   int
	stops    int
}

func (c *fakeCamera) Start() error {
	c.starts++
	return c.startErr
}

func (c *fakeCamera) Stop() { c.stops++ }

type fakeAPI struct {
	recognize    func(image string) Outcome
	createHook   func()
	registerHook func()

	createErr   error
	attachErr   error
	registerErr error

	createCalls   int
	attachCalls   int
	registerCalls int

	sessionID      string
	attachedTo     string
	attached       AppraiserAttachment
	registeredWith Registration
}

func (a *fakeAPI) Recognize(_ context.Context, image string) Outcome {
	return a.recognize(image)
}

func (a *fakeAPI) CreateSession(_ context.Context) (string, error) {
	a.createCalls++
	if a.createHook != nil {
		a.createHook()
	}
	if a.createErr != nil {
		return "", a.createErr
	}
	if a.sessionID == "" {
		a.sessionID = "S1"
	}
	return a.sessionID, nil
}

func (a *fakeAPI) AttachAppraiser(_ context.Context, sessionID string, attachment AppraiserAttachment) error {
	a.attachCalls++
	if a.attachErr != nil {
		return a.attachErr
	}
	a.attachedTo = sessionID
	a.attached = attachment
	return nil
}

func (a *fakeAPI) RegisterAppraiser(_ context.Context, registration Registration) error {
	a.registerCalls++
	if a.registerHook != nil {
		a.registerHook()
	}
	if a.registerErr != nil {
		return a.registerErr
	}
	a.registeredWith = registration
	return nil
}

func matchedAPI(profile AppraiserProfile) *fakeAPI {
	return &fakeAPI{
		recognize: func(string) Outcome {
			return Outcome{Kind: OutcomeMatched, Profile: &profile}
		},
	}
}

func TestIdentifiedThenSessionEstablished(t *testing.T) {
	api := matchedAPI(AppraiserProfile{AppraiserID: "A1", Name: "Jane Doe", Bank: "HDFC", Branch: "Mumbai Central"})
	camera := &fakeCamera{}
	wf, err := New(api, camera, nil)
	require.NoError(t, err)
	assert.Equal(t, StateCapturing, wf.State())
	assert.Equal(t, 1, camera.starts)

	outcome, err := wf.Submit(context.Background(), "image-x")
	require.NoError(t, err)
	assert.Equal(t, OutcomeMatched, outcome.Kind)
	assert.Equal(t, StateIdentified, wf.State())
	require.NotNil(t, wf.Profile())
	assert.Equal(t, "Jane Doe", wf.Profile().Name)
	assert.Empty(t, wf.SessionID())

	sessionID, err := wf.EstablishSession(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "S1", sessionID)
	assert.Equal(t, StateSessionEstablished, wf.State())
	assert.Equal(t, "S1", wf.SessionID())
	assert.Equal(t, "S1", api.attachedTo)
	assert.Equal(t, "A1", api.attached.ID)
	assert.Equal(t, "image-x", api.attached.Image)
}

func TestRejectedCaptureReturnsToCapturing(t *testing.T) {
	api := &fakeAPI{
		recognize: func(string) Outcome {
			return Outcome{Kind: OutcomeRejected, Reason: "No face detected in the image"}
		},
	}
	wf, err := New(api, &fakeCamera{}, nil)
	require.NoError(t, err)

	outcome, err := wf.Submit(context.Background(), "image-y")
	require.NoError(t, err)
	assert.Equal(t, OutcomeRejected, outcome.Kind)
	assert.Equal(t, "No face detected in the image", outcome.Reason)
	assert.Equal(t, StateCapturing, wf.State())
	assert.Nil(t, wf.Profile())
	assert.Zero(t, api.createCalls)
}

func TestNoMatchRetainsImageForRegistration(t *testing.T) {
	api := &fakeAPI{
		recognize: func(string) Outcome { return Outcome{Kind: OutcomeNoMatch} },
	}
	wf, err := New(api, &fakeCamera{}, nil)
	require.NoError(t, err)

	_, err = wf.Submit(context.Background(), "image-z")
	require.NoError(t, err)
	assert.Equal(t, StateNewAppraiser, wf.State())

	sessionID, err := wf.RequestRegistration(context.Background(), RegistrationDetails{
		Name: "New Guy", ID: "A9", Bank: "HDFC", Branch: "Pune",
	})
	require.NoError(t, err)
	assert.Equal(t, "S1", sessionID)
	assert.Equal(t, "image-z", api.registeredWith.Image)
	assert.Equal(t, "A9", api.registeredWith.ID)
	assert.Equal(t, StateSessionEstablished, wf.State())
}

func TestAttachFailureKeepsIdentifiedWithoutSessionID(t *testing.T) {
	api := matchedAPI(AppraiserProfile{AppraiserID: "A1", Name: "Jane Doe"})
	api.attachErr = errors.New("boom")
	wf, err := New(api, &fakeCamera{}, nil)
	require.NoError(t, err)

	_, err = wf.Submit(context.Background(), "image-x")
	require.NoError(t, err)

	_, err = wf.EstablishSession(context.Background())
	require.Error(t, err)
	assert.Equal(t, StateIdentified, wf.State())
	assert.Empty(t, wf.SessionID())

	// Attach recovers; a retry must succeed from where it left off
	api.attachErr = nil
	sessionID, err := wf.EstablishSession(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "S1", sessionID)
	assert.Equal(t, 2, api.createCalls)
}

func TestCreateFailureSkipsAttach(t *testing.T) {
	api := matchedAPI(AppraiserProfile{AppraiserID: "A1"})
	api.createErr = errors.New("backend down")
	wf, err := New(api, &fakeCamera{}, nil)
	require.NoError(t, err)

	_, err = wf.Submit(context.Background(), "image-x")
	require.NoError(t, err)

	_, err = wf.EstablishSession(context.Background())
	require.Error(t, err)
	assert.Zero(t, api.attachCalls)
	assert.Equal(t, StateIdentified, wf.State())
}

func TestCancelReleasesCameraExactlyOnce(t *testing.T) {
	states := []func(t *testing.T, wf *Workflow){
		func(*testing.T, *Workflow) {}, // capturing
		func(t *testing.T, wf *Workflow) { // identified
			_, err := wf.Submit(context.Background(), "img")
			require.NoError(t, err)
		},
	}
	for _, setup := range states {
		api := matchedAPI(AppraiserProfile{AppraiserID: "A1"})
		camera := &fakeCamera{}
		wf, err := New(api, camera, nil)
		require.NoError(t, err)
		setup(t, wf)

		wf.Cancel()
		wf.Cancel()
		wf.Finish()
		assert.Equal(t, 1, camera.stops)
		assert.Equal(t, StateClosed, wf.State())
	}
}

func TestStaleResultDiscardedAfterCancel(t *testing.T) {
	entered := make(chan struct{})
	release := make(chan Outcome)
	api := &fakeAPI{
		recognize: func(string) Outcome {
			close(entered)
			return <-release
		},
	}
	camera := &fakeCamera{}
	wf, err := New(api, camera, nil)
	require.NoError(t, err)

	done := make(chan error, 1)
	go func() {
		_, err := wf.Submit(context.Background(), "img")
		done <- err
	}()

	// Cancel while the recognition call is still in flight, then let the
	// result land.
	<-entered
	wf.Cancel()
	release <- Outcome{Kind: OutcomeMatched, Profile: &AppraiserProfile{AppraiserID: "A1"}}

	assert.ErrorIs(t, <-done, ErrClosed)
	assert.Equal(t, StateClosed, wf.State())
	assert.Nil(t, wf.Profile())
	assert.Equal(t, 1, camera.stops)
}

func TestOperationsAfterCancelFail(t *testing.T) {
	api := matchedAPI(AppraiserProfile{AppraiserID: "A1"})
	wf, err := New(api, &fakeCamera{}, nil)
	require.NoError(t, err)
	wf.Cancel()

	_, err = wf.Submit(context.Background(), "img")
	assert.ErrorIs(t, err, ErrClosed)
	_, err = wf.EstablishSession(context.Background())
	assert.ErrorIs(t, err, ErrClosed)
	_, err = wf.RequestRegistration(context.Background(), RegistrationDetails{})
	assert.ErrorIs(t, err, ErrClosed)
	assert.ErrorIs(t, wf.Retry(), ErrClosed)
}

func TestRetryDiscardsMatch(t *testing.T) {
	api := matchedAPI(AppraiserProfile{AppraiserID: "A1"})
	wf, err := New(api, &fakeCamera{}, nil)
	require.NoError(t, err)

	_, err = wf.Submit(context.Background(), "img")
	require.NoError(t, err)
	require.NoError(t, wf.Retry())
	assert.Equal(t, StateCapturing, wf.State())
	assert.Nil(t, wf.Profile())

	_, err = wf.EstablishSession(context.Background())
	assert.ErrorIs(t, err, ErrInvalidState)
}

func TestSubmitRejectsEmptyCapture(t *testing.T) {
	recognized := false
	api := &fakeAPI{
		recognize: func(string) Outcome {
			recognized = true
			return Outcome{Kind: OutcomeNoMatch}
		},
	}
	wf, err := New(api, &fakeCamera{}, nil)
	require.NoError(t, err)

	_, err = wf.Submit(context.Background(), "")
	assert.ErrorIs(t, err, ErrEmptyCapture)
	assert.Equal(t, StateCapturing, wf.State())
	assert.False(t, recognized, "an empty capture must not reach the backend")

	// A real capture still goes through afterwards
	_, err = wf.Submit(context.Background(), "img")
	require.NoError(t, err)
	assert.Equal(t, StateNewAppraiser, wf.State())
}

func TestEstablishSessionRejectsConcurrentCall(t *testing.T) {
	entered := make(chan struct{})
	release := make(chan struct{})
	api := matchedAPI(AppraiserProfile{AppraiserID: "A1", Name: "Jane Doe"})
	api.createHook = func() {
		close(entered)
		<-release
	}
	wf, err := New(api, &fakeCamera{}, nil)
	require.NoError(t, err)
	_, err = wf.Submit(context.Background(), "img")
	require.NoError(t, err)

	done := make(chan error, 1)
	go func() {
		_, err := wf.EstablishSession(context.Background())
		done <- err
	}()
	<-entered

	// While the first confirmation is in flight, a duplicate is refused
	_, err = wf.EstablishSession(context.Background())
	assert.ErrorIs(t, err, ErrBusy)

	close(release)
	require.NoError(t, <-done)
	assert.Equal(t, StateSessionEstablished, wf.State())
	assert.Equal(t, 1, api.createCalls)
	assert.Equal(t, 1, api.attachCalls)
}

func TestRegistrationRejectsConcurrentCall(t *testing.T) {
	entered := make(chan struct{})
	release := make(chan struct{})
	api := &fakeAPI{
		recognize: func(string) Outcome { return Outcome{Kind: OutcomeNoMatch} },
	}
	api.registerHook = func() {
		close(entered)
		<-release
	}
	wf, err := New(api, &fakeCamera{}, nil)
	require.NoError(t, err)
	_, err = wf.Submit(context.Background(), "img")
	require.NoError(t, err)

	done := make(chan error, 1)
	go func() {
		_, err := wf.RequestRegistration(context.Background(), RegistrationDetails{Name: "New Guy", ID: "A9"})
		done <- err
	}()
	<-entered

	_, err = wf.RequestRegistration(context.Background(), RegistrationDetails{Name: "New Guy", ID: "A9"})
	assert.ErrorIs(t, err, ErrBusy)

	close(release)
	require.NoError(t, <-done)
	assert.Equal(t, 1, api.registerCalls)
}

func TestCameraStartFailure(t *testing.T) {
	camera := &fakeCamera{startErr: errors.New("device busy")}
	_, err := New(&fakeAPI{}, camera, nil)
	assert.Error(t, err)
}

func TestMapRecognitionResponse(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		want   OutcomeKind
	}{
		{"matched", 200, `{"recognized":true,"appraiser":{"appraiser_id":"A1","name":"Jane"}}`, OutcomeMatched},
		{"no match", 200, `{"recognized":false,"message":"Appraiser not recognized"}`, OutcomeNoMatch},
		{"service offline", 200, `{"recognized":false,"service_status":"offline"}`, OutcomeNoMatch},
		{"no face", 422, `{"error":"no_face_detected","message":"No face detected"}`, OutcomeRejected},
		{"multiple faces", 422, `{"error":"multiple_faces","message":"Multiple faces detected"}`, OutcomeRejected},
		{"generic error", 422, `{"error":"internal","message":"broken"}`, OutcomeFailed},
		{"server error", 500, `{"detail":"oops"}`, OutcomeFailed},
		{"malformed body", 200, `not json`, OutcomeFailed},
		{"matched flag without profile", 200, `{"recognized":true}`, OutcomeNoMatch},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			outcome := mapRecognitionResponse(tt.status, []byte(tt.body))
			assert.Equal(t, tt.want, outcome.Kind)
		})
	}
}

func TestOutcomeKindStrings(t *testing.T) {
	for kind, want := range map[OutcomeKind]string{
		OutcomeMatched:  "matched",
		OutcomeNoMatch:  "no_match",
		OutcomeRejected: "rejected",
		OutcomeFailed:   "failed",
	} {
		assert.Equal(t, want, kind.String())
	}
}

func TestMatchedProfileRoundTrip(t *testing.T) {
	body := `{"recognized":true,"appraiser":{"appraiser_id":"A1","name":"Jane Doe","similarity":0.93,"appraisals_completed":12}}`
	outcome := mapRecognitionResponse(200, []byte(body))
	require.Equal(t, OutcomeMatched, outcome.Kind)
	require.NotNil(t, outcome.Profile)
	assert.Equal(t, "A1", outcome.Profile.AppraiserID)
	assert.InDelta(t, 0.93, outcome.Profile.Similarity, 1e-9)

	raw, err := json.Marshal(outcome.Profile)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"appraiser_id":"A1"`)
}
