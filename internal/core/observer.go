package core

// EventKind identifies a diagnostic event emitted by the pipeline
type EventKind string

const (
	KindClassified           EventKind = "classified"
	KindClassificationFailed EventKind = "classification_failed"
	KindProofSubmitted       EventKind = "proof_submitted"
	KindSubmissionFailed     EventKind = "submission_failed"
	KindAggregated           EventKind = "aggregated"
	KindBatchFinished        EventKind = "batch_finished"
)

// Event is a diagnostic event. Only the fields relevant to Kind are set.
type Event struct {
	Kind      EventKind
	MessageID string
	Stage     string
	Result    *ClassificationResult
	Err       error
	Stats     *Statistics
	Report    *SubmissionReport
}

// Observer receives diagnostic events. Implementations must not block.
type Observer interface {
	Observe(ev Event)
}

// NopObserver discards every event
type NopObserver struct{}

// Observe implements Observer
func (NopObserver) Observe(Event) {}

// Observers fans an event out to several observers
type Observers []Observer

// Observe implements Observer
func (o Observers) Observe(ev Event) {
	for _, obs := range o {
		if obs != nil {
			obs.Observe(ev)
		}
	}
}
