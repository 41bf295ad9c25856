// Package pipeline is the batch driver. It discovers videos in the input
// directory and runs each one, strictly one at a time, through
//
//	source.Open → accumulate.Seed/Update → finalize.Finalize → output.WriteSet
//
// and finally moves the input into the processed directory. A video that
// cannot be opened, yields no frames, changes size mid-stream, or whose
// stills cannot be written is reported and left where it is.
//
// Files:
//   - discover.go: flat, sorted, extension-filtered directory scan.
//   - runner.go: Run and the per-file state machine.
//   - state.go: State and its transitions.
//   - relocate.go: move into processed/, with a cross-device copy fallback.
//   - progress.go: frame progress (bar on a TTY, log lines otherwise).
//   - stats.go: RunStats and the end-of-batch summary.
//   - analyze.go: --analyze inventory table with IQR outlier flags.
package pipeline
