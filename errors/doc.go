// Package errors provides structured error types for the runtime bridge.
//
// Errors carry a Phase (where in the binding lifecycle the failure happened)
// and a Kind (what category of failure it is), so callers can match on
// categories with errors.Is without parsing messages:
//
//	_, err := s.RequireAdapter()
//	if errors.Is(err, &bridgeerrors.Error{Phase: bridgeerrors.PhaseQuery, Kind: bridgeerrors.KindNotBound}) {
//	    // no external runtime was ever bound
//	}
//
// Contract violations that would risk a double free or use-after-free of a
// wrapper object are not represented as errors at all; those panic at the
// point of misuse (see package slot).
package errors
