package autotune

// FixedBlock is the set of fixed-size hop buffers accepted by ProcessFixed.
type FixedBlock interface {
	*[64]float64 | *[128]float64 | *[256]float64 | *[512]float64 | *[1024]float64 | *[2048]float64
}

// ProcessFixed runs one hop from in to out. The array length must equal
// the configured hop size. It is the allocation-free entry point for
// targets that keep their audio buffers in static arrays.
func ProcessFixed[P FixedBlock](e *Engine, in, out P) error {
	src, dst := blockSlice(in), blockSlice(out)
	if src == nil || dst == nil || len(src) != e.cfg.HopSize {
		return ErrBufferSize
	}

	return e.Process(src, dst)
}

func blockSlice[P FixedBlock](p P) []float64 {
	switch v := any(p).(type) {
	case *[64]float64:
		if v != nil {
			return v[:]
		}
	case *[128]float64:
		if v != nil {
			return v[:]
		}
	case *[256]float64:
		if v != nil {
			return v[:]
		}
	case *[512]float64:
		if v != nil {
			return v[:]
		}
	case *[1024]float64:
		if v != nil {
			return v[:]
		}
	case *[2048]float64:
		if v != nil {
			return v[:]
		}
	}

	return nil
}
