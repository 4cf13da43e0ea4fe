// Package autotune implements a real-time vocal pitch-correction engine.
//
// An [Engine] owns the streaming state of one mono channel. Every hop it
// analyses the most recent frame, estimates the fundamental, snaps it to
// the nearest note of the selected key (or to a locked scale degree),
// smooths the resulting pitch ratio and resynthesises the frame shifted by
// that ratio, optionally keeping the formant envelope in place.
//
// Entry points:
//
//   - [Engine.Process] for hop-aligned buffers,
//   - [ProcessFixed] for fixed-size arrays on constrained targets,
//   - [Engine.ProcessBlock] and [Engine.ProcessSample] for arbitrary block
//     sizes, queued through lock-free rings.
//
// None of them allocate or block, and none of them panic on bad input:
// length mismatches and non-finite samples are reported as errors and leave
// the engine untouched. Configuration is validated once, in [NewEngine].
package autotune
