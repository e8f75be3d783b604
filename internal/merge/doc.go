// Package merge holds the per-user merge session: the two selected files,
// their previews, the Idle/Ready/Merging state machine and the status line.
//
// An Orchestrator drives one merge at a time through load, layout, compose
// and export. Failures never escape as panics; they end in a status message
// and the trigger is re-enabled when both selections are still valid.
package merge
