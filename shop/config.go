package shop

import "fmt"

// Config bounds the knobs a running simulation can be set to and provides
// the values a fresh shop starts with. Commands that request a size outside
// the min/max range are clamped, not rejected.
type Config struct {
	MinBarbers int
	MaxBarbers int
	MinChairs  int
	MaxChairs  int

	DefaultBarbers         int
	DefaultChairs          int
	DefaultServiceDuration VTimeInSec
	DefaultArrivalRate     float64
	DefaultSimulationSpeed float64
}

// DefaultConfig returns the reference shop setup: one barber, three chairs,
// ten-second haircuts, ten walk-ins per minute, real-time playback.
func DefaultConfig() Config {
	return Config{
		MinBarbers: 1,
		MaxBarbers: 5,
		MinChairs:  1,
		MaxChairs:  10,

		DefaultBarbers:         1,
		DefaultChairs:          3,
		DefaultServiceDuration: 10,
		DefaultArrivalRate:     10,
		DefaultSimulationSpeed: 1,
	}
}

func (c Config) validate() error {
	if c.MinBarbers <= 0 || c.MaxBarbers < c.MinBarbers {
		return fmt.Errorf("%w: barber range [%d, %d]",
			ErrInvalidArgument, c.MinBarbers, c.MaxBarbers)
	}

	if c.MinChairs <= 0 || c.MaxChairs < c.MinChairs {
		return fmt.Errorf("%w: chair range [%d, %d]",
			ErrInvalidArgument, c.MinChairs, c.MaxChairs)
	}

	if c.DefaultServiceDuration <= 0 {
		return fmt.Errorf("%w: service duration %f",
			ErrInvalidArgument, c.DefaultServiceDuration)
	}

	if c.DefaultArrivalRate < 0 {
		return fmt.Errorf("%w: arrival rate %f",
			ErrInvalidArgument, c.DefaultArrivalRate)
	}

	if c.DefaultSimulationSpeed <= 0 {
		return fmt.Errorf("%w: simulation speed %f",
			ErrInvalidArgument, c.DefaultSimulationSpeed)
	}

	return nil
}

func (c Config) clampBarbers(n int) int {
	if n < c.MinBarbers {
		return c.MinBarbers
	}

	if n > c.MaxBarbers {
		return c.MaxBarbers
	}

	return n
}

func (c Config) clampChairs(n int) int {
	if n < c.MinChairs {
		return c.MinChairs
	}

	if n > c.MaxChairs {
		return c.MaxChairs
	}

	return n
}
