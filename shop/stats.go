package shop

// Stats summarizes one snapshot. Counters cover the whole run so far;
// AverageWaitTime is the mean time served customers spent between arriving
// and getting into the chair.
type Stats struct {
	Waiting   int `json:"waiting"`
	InService int `json:"in_service"`
	Served    int `json:"served"`
	Rejected  int `json:"rejected"`

	AverageWaitTime VTimeInSec `json:"average_wait_time"`
}

// Stats derives the summary counters from the snapshot.
func (s Snapshot) Stats() Stats {
	st := Stats{
		Waiting:   len(s.Waiting),
		InService: len(s.InService),
		Served:    len(s.Served),
		Rejected:  len(s.Rejected),
	}

	var total VTimeInSec
	for _, c := range s.Served {
		total += c.WaitTime()
	}

	if len(s.Served) > 0 {
		st.AverageWaitTime = total / VTimeInSec(len(s.Served))
	}

	return st
}
