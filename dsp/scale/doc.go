// Package scale provides the musical key definitions and the ascending
// in-scale frequency tables used for note snapping.
//
// Frequencies follow twelve-tone equal temperament referenced to
// A4 = 440 Hz. Tables cover octaves 0 through 9 for each of the 24 major
// and natural-minor keys, are built once at package initialisation and are
// read-only afterwards, so a single Table may be shared by any number of
// goroutines.
package scale
