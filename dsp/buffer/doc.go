// Package buffer provides the fixed-capacity sample ring that connects an
// irregular producer (an audio callback or DMA interrupt) to a block-oriented
// consumer such as the phase-vocoder engine.
//
// [Ring] is single-producer/single-consumer and lock-free: the producer only
// advances the write cursor, the consumer only advances the read cursor, and
// both cursors are published through sync/atomic so the two sides may run on
// different goroutines without a mutex. A full ring rejects new samples with
// [ErrOverflow]; it never overwrites unread data.
package buffer
