package workflow

// Camera is the capture device held exclusively by an active workflow
// instance. Start is called when the workflow enters the capture state and
// Stop must be called exactly once on every exit path.
type Camera interface {
	Start() error
	Stop()
}
