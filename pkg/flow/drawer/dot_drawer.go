package drawer

import (
	"io"
	"slices"
	"time"

	"github.com/dominikbraun/graph"
	"github.com/pkg/errors"

	"github.com/askiada/go-remap/pkg/flow/measure"
)

// DOTDrawer writes the flow graph in the DOT language.
type DOTDrawer struct {
	graph graph.Graph[string, string]
	wrt   io.Writer
}

// NewDOTDrawer creates a new DOT drawer writing to wrt.
func NewDOTDrawer(wrt io.Writer) *DOTDrawer {
	return &DOTDrawer{
		wrt:   wrt,
		graph: graph.New(graph.StringHash, graph.Directed()),
	}
}

// AddStep adds a step to the flow graph.
func (d *DOTDrawer) AddStep(name string) error {
	err := d.graph.AddVertex(name)
	if err != nil {
		return errors.Wrap(err, "unable to add vertex")
	}

	return nil
}

// AddLink adds a link between parent and children steps.
func (d *DOTDrawer) AddLink(parentName, childrenName string) error {
	err := d.graph.AddEdge(parentName, childrenName)
	if err != nil {
		return errors.Wrapf(err, "unable to add edge from %s to %s", parentName, childrenName)
	}

	return nil
}

// Draw writes the flow graph.
func (d *DOTDrawer) Draw() error {
	err := DOT(d.graph, d.wrt)
	if err != nil {
		return errors.Wrap(err, "unable to draw flow")
	}

	return nil
}

// SetTotalTime sets the total time for the step.
func (d *DOTDrawer) SetTotalTime(stepName string, startTime time.Time) error {
	_, properties, err := d.graph.VertexWithProperties(stepName)
	if err != nil {
		return errors.Wrap(err, "unable to get end vertex properties")
	}

	properties.Attributes["xlabel"] = time.Since(startTime).Round(time.Microsecond).String()

	return nil
}

// AddMeasure labels steps with their average duration and colours links by average transport duration.
func (d *DOTDrawer) AddMeasure(msr measure.Measure) error {
	elapsed := []time.Duration{}

	for _, step := range msr.AllMetrics() {
		for _, avg := range step.AVGTransportDuration() {
			if avg > 0 {
				elapsed = append(elapsed, avg)
			}
		}
	}

	var lowest, highest time.Duration
	if len(elapsed) > 0 {
		lowest, highest = slices.Min(elapsed), slices.Max(elapsed)
	}

	for name, step := range msr.AllMetrics() {
		_, properties, err := d.graph.VertexWithProperties(name)
		if err != nil {
			return errors.Wrapf(err, "unable to get vertex properties of %s", name)
		}

		label := ""
		if avg := step.AVGDuration(); avg != 0 {
			label = avg.String()
		}

		if total := step.GetTotalDuration(); total > 0 {
			label += ", end: " + total.String()
		}

		if label != "" {
			properties.Attributes["xlabel"] = label
		}

		for inputStep, avg := range step.AVGTransportDuration() {
			if avg == 0 {
				continue
			}

			fraction := 1.0
			if highest > lowest {
				fraction = float64(avg-lowest) / float64(highest-lowest)
			}

			colour, err := Gradient(fraction)
			if err != nil {
				return err
			}

			err = d.graph.UpdateEdge(inputStep, name,
				graph.EdgeAttribute("label", avg.String()),
				graph.EdgeAttribute("fontcolor", "blue"),
				graph.EdgeAttribute("color", colour),
			)
			if err != nil {
				return errors.Wrapf(err, "unable to update edge from %s to %s", inputStep, name)
			}
		}
	}

	return nil
}

var _ Drawer = (*DOTDrawer)(nil)
