package cmd

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/sarchlab/barbersim/shop"
)

// A Scenario describes the shop a run starts with. Fields left out of the
// yaml file keep the default shop setup.
type Scenario struct {
	Barbers              int     `yaml:"barbers"`
	Chairs               int     `yaml:"chairs"`
	ServiceDuration      float64 `yaml:"serviceDurationSeconds"`
	ArrivalRatePerMinute float64 `yaml:"arrivalRatePerMinute"`
	Speed                float64 `yaml:"speed"`
	Seed                 *int64  `yaml:"seed,omitempty"`

	Limits ScenarioLimits `yaml:"limits"`
}

// ScenarioLimits bounds what the shop can be reconfigured to while running.
type ScenarioLimits struct {
	MinBarbers int `yaml:"minBarbers"`
	MaxBarbers int `yaml:"maxBarbers"`
	MinChairs  int `yaml:"minChairs"`
	MaxChairs  int `yaml:"maxChairs"`
}

// LoadScenario loads and parses a scenario file.
func LoadScenario(filename string) (*Scenario, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}

	scenario := defaultScenario()
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return nil, fmt.Errorf("failed to parse scenario file: %w", err)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}

	return &scenario, nil
}

// ShopConfig converts the scenario into the engine's configuration.
func (s *Scenario) ShopConfig() shop.Config {
	return shop.Config{
		MinBarbers: s.Limits.MinBarbers,
		MaxBarbers: s.Limits.MaxBarbers,
		MinChairs:  s.Limits.MinChairs,
		MaxChairs:  s.Limits.MaxChairs,

		DefaultBarbers:         s.Barbers,
		DefaultChairs:          s.Chairs,
		DefaultServiceDuration: shop.VTimeInSec(s.ServiceDuration),
		DefaultArrivalRate:     s.ArrivalRatePerMinute,
		DefaultSimulationSpeed: s.Speed,
	}
}

func defaultScenario() Scenario {
	cfg := shop.DefaultConfig()

	return Scenario{
		Barbers:              cfg.DefaultBarbers,
		Chairs:               cfg.DefaultChairs,
		ServiceDuration:      float64(cfg.DefaultServiceDuration),
		ArrivalRatePerMinute: cfg.DefaultArrivalRate,
		Speed:                cfg.DefaultSimulationSpeed,
		Limits: ScenarioLimits{
			MinBarbers: cfg.MinBarbers,
			MaxBarbers: cfg.MaxBarbers,
			MinChairs:  cfg.MinChairs,
			MaxChairs:  cfg.MaxChairs,
		},
	}
}

func validateScenario(s *Scenario) error {
	if s.ServiceDuration <= 0 {
		return fmt.Errorf("serviceDurationSeconds must be greater than 0")
	}

	if s.ArrivalRatePerMinute < 0 {
		return fmt.Errorf("arrivalRatePerMinute must not be negative")
	}

	if s.Speed <= 0 {
		return fmt.Errorf("speed must be greater than 0")
	}

	if s.Limits.MinBarbers <= 0 || s.Limits.MaxBarbers < s.Limits.MinBarbers {
		return fmt.Errorf("barber limits [%d, %d] are not a positive range",
			s.Limits.MinBarbers, s.Limits.MaxBarbers)
	}

	if s.Limits.MinChairs <= 0 || s.Limits.MaxChairs < s.Limits.MinChairs {
		return fmt.Errorf("chair limits [%d, %d] are not a positive range",
			s.Limits.MinChairs, s.Limits.MaxChairs)
	}

	if s.Barbers < s.Limits.MinBarbers || s.Barbers > s.Limits.MaxBarbers {
		return fmt.Errorf("barbers %d outside allowed range [%d, %d]",
			s.Barbers, s.Limits.MinBarbers, s.Limits.MaxBarbers)
	}

	if s.Chairs < s.Limits.MinChairs || s.Chairs > s.Limits.MaxChairs {
		return fmt.Errorf("chairs %d outside allowed range [%d, %d]",
			s.Chairs, s.Limits.MinChairs, s.Limits.MaxChairs)
	}

	return nil
}
