package tracking

import "github.com/sarchlab/barbersim/shop"

// A VisitEntry is the flat, storable record of one finished visit. Every
// field is a scalar so the entry can go straight into the data recorder.
type VisitEntry struct {
	CustomerID int    `json:"customer_id" barbersim_data:"index"`
	Name       string `json:"name"`
	Outcome    string `json:"outcome" barbersim_data:"index"`
	Reason     string `json:"reason"`
	BarberID   int    `json:"barber_id" barbersim_data:"index"`

	ArrivalTime      float64 `json:"arrival_time"`
	ServiceStartTime float64 `json:"service_start_time"`
	ServiceEndTime   float64 `json:"service_end_time"`
	DepartureTime    float64 `json:"departure_time"`
	WaitTime         float64 `json:"wait_time"`
}

func servedVisit(c shop.Customer) VisitEntry {
	return VisitEntry{
		CustomerID: c.ID,
		Name:       c.Name,
		Outcome:    shop.CustomerServed.String(),
		BarberID:   c.AssignedBarberID,

		ArrivalTime:      float64(c.ArrivalTime),
		ServiceStartTime: float64(c.ServiceStartTime),
		ServiceEndTime:   float64(c.ServiceEndTime),
		DepartureTime:    float64(c.DepartureTime),
		WaitTime:         float64(c.WaitTime()),
	}
}

func rejectedVisit(c shop.Customer, reason shop.RejectReason) VisitEntry {
	return VisitEntry{
		CustomerID: c.ID,
		Name:       c.Name,
		Outcome:    shop.CustomerRejected.String(),
		Reason:     reason.String(),

		ArrivalTime:      float64(c.ArrivalTime),
		ServiceStartTime: float64(shop.TimeUnset),
		ServiceEndTime:   float64(shop.TimeUnset),
		DepartureTime:    float64(c.DepartureTime),
	}
}
