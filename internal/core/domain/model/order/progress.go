package order

import "time"

// Progress is a point-in-time readout of a pick or pack stage: counters,
// completion percentage, elapsed time, and an estimated time remaining based
// on the average time per completed item. EstimatedRemaining is nil until at
// least one item has completed, since no average exists yet.
type Progress struct {
	Total      int
	Picked     int
	OutOfStock int
	Packed     int
	Remaining  int

	Percent            float64
	Elapsed            time.Duration
	EstimatedRemaining *time.Duration
}

func stageProgress(total, done, remaining int, startedAt *time.Time, now time.Time) Progress {
	p := Progress{
		Total:     total,
		Remaining: remaining,
	}

	if total > 0 {
		p.Percent = float64(total-remaining) / float64(total) * 100
	}
	if startedAt != nil {
		p.Elapsed = now.Sub(*startedAt)
		if done > 0 {
			avg := p.Elapsed / time.Duration(done)
			eta := avg * time.Duration(remaining)
			p.EstimatedRemaining = &eta
		}
	}
	return p
}
