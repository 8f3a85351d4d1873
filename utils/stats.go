package utils

import "time"

// Stats for performance monitoring
type Stats struct {
	GenerationsPerSecond float64
	AveragePopulation    float64
	TotalGenerations     int
	InitialPopulation    int
	FinalPopulation      int
	StartTime            time.Time
	Elapsed              time.Duration
}

func NewStats() *Stats {
	return &Stats{StartTime: time.Now()}
}

// Start records the population before the first generation and resets the clock
func (s *Stats) Start(population int) {
	s.StartTime = time.Now()
	s.InitialPopulation = population
	s.FinalPopulation = population
	s.AveragePopulation = float64(population)
}

// Update records a finished generation and the total time spent so far
func (s *Stats) Update(generation int, population int, elapsed time.Duration) {
	s.TotalGenerations = generation
	s.FinalPopulation = population
	s.Elapsed = elapsed
	if elapsed > 0 {
		s.GenerationsPerSecond = float64(generation) / elapsed.Seconds()
	}

	// Simple moving average for population
	if s.AveragePopulation == 0 {
		s.AveragePopulation = float64(population)
	} else {
		s.AveragePopulation = (s.AveragePopulation * 0.9) + (float64(population) * 0.1)
	}
}
