package shop

// VTimeInSec defines the time in the simulated space in the unit of second.
type VTimeInSec float64

// TimeUnset marks a time field that has not been assigned yet.
const TimeUnset VTimeInSec = -1

// TimeTeller can be used to get the current simulated time.
type TimeTeller interface {
	CurrentTime() VTimeInSec
}
