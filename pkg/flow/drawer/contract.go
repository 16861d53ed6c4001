package drawer

import (
	"time"

	"github.com/askiada/go-remap/pkg/flow/measure"
)

// Drawer is an interface that defines the methods for drawing a flow.
type Drawer interface {
	// AddStep adds a step to the flow drawer.
	AddStep(stepName string) error
	// AddLink adds a link between parent and children steps.
	AddLink(parentStepName, childrenStepName string) error
	// Draw writes the flow graph.
	Draw() error
	// SetTotalTime sets the total time for the step.
	SetTotalTime(stepName string, startTime time.Time) error
	// AddMeasure adds a measure to the flow drawer.
	AddMeasure(measure measure.Measure) error
}
