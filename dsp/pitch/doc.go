// Package pitch estimates the fundamental frequency of an analysis frame
// and turns it into a smoothed pitch-correction ratio.
//
// Detection and correction are split so the estimator can be swapped: any
// [Detector] works with [Corrector]. The reference estimator is
// [PeakDetector], which picks the dominant bin inside a frequency band and
// refines it with the phase-derivative frequency from [spectrum.Analysis].
package pitch
