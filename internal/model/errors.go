package model

import (
	"errors"
	"fmt"
)

// ErrorKind groups step failures by who can fix them.
type ErrorKind string

const (
	KindInput       ErrorKind = "input"
	KindTransport   ErrorKind = "transport"
	KindInference   ErrorKind = "inference"
	KindPersistence ErrorKind = "persistence"
)

// Step names one stage of the pipeline.
type Step string

const (
	StepSignURL    Step = "sign_url"
	StepDownload   Step = "download"
	StepTranscribe Step = "transcribe"
	StepSummarize  Step = "summarize"
	StepPersist    Step = "persist"
	StepNotify     Step = "notify"
)

// StepError is returned by every pipeline collaborator.
type StepError struct {
	Step Step
	Kind ErrorKind
	Err  error
}

func NewStepError(step Step, kind ErrorKind, err error) *StepError {
	return &StepError{Step: step, Kind: kind, Err: err}
}

func (e *StepError) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("%s: %v", e.Step, e.Err)
}

func (e *StepError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// IsKind reports whether err carries a StepError of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	var se *StepError
	if errors.As(err, &se) {
		return se.Kind == kind
	}
	return false
}

// StepOf returns the step that produced err, or "" if unknown.
func StepOf(err error) Step {
	var se *StepError
	if errors.As(err, &se) {
		return se.Step
	}
	return ""
}
