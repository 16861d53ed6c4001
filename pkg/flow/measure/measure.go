package measure

import (
	"sync"
)

// DefaultMeasure is a Measure safe for concurrent use.
type DefaultMeasure struct {
	mu    sync.RWMutex
	steps map[string]Metric
}

func NewDefaultMeasure() *DefaultMeasure {
	return &DefaultMeasure{
		steps: make(map[string]Metric),
	}
}

// AddMetric registers the metric of a step. Registering the same name twice keeps the first metric.
func (m *DefaultMeasure) AddMetric(name string, concurrent int) Metric {
	m.mu.Lock()
	defer m.mu.Unlock()

	if mt, ok := m.steps[name]; ok {
		return mt
	}

	mt := &DefaultMetric{
		allTransports: make(map[string]*TransportInfo),
		concurrent:    max(concurrent, 1),
	}
	m.steps[name] = mt

	return mt
}

func (m *DefaultMeasure) GetMetric(name string) Metric {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.steps[name]
}

func (m *DefaultMeasure) AllMetrics() map[string]Metric {
	m.mu.RLock()
	defer m.mu.RUnlock()

	res := make(map[string]Metric, len(m.steps))
	for name, mt := range m.steps {
		res[name] = mt
	}

	return res
}

var _ Measure = (*DefaultMeasure)(nil)
