// Package drawer renders the stage chain of a remap.Pipeline in the DOT language.
package drawer

import (
	"io"
	"os"
	"strconv"

	"github.com/dominikbraun/graph"
	"github.com/pkg/errors"

	"github.com/askiada/go-remap/internal/store"
	flowdrawer "github.com/askiada/go-remap/pkg/flow/drawer"
	"github.com/askiada/go-remap/pkg/remap"
)

// ChainDrawer draws one vertex per stage and one edge per table.
// Edges are coloured from blue to red by their number of mappings.
type ChainDrawer struct {
	graph graph.Graph[remap.Stage, remap.Stage]
}

func stageHash(s remap.Stage) remap.Stage {
	return s
}

// New creates the drawer of p's stage chain.
func New(p *remap.Pipeline) (*ChainDrawer, error) {
	if p == nil {
		return nil, remap.ErrPipelineMustBeSet
	}

	d := &ChainDrawer{
		graph: graph.NewWithStore(stageHash, store.NewOrderedStore[remap.Stage, remap.Stage](), graph.Directed()),
	}

	tables := p.Tables()
	lowest, highest := 0, 0

	for i, table := range tables {
		if i == 0 || len(table.Mappings) < lowest {
			lowest = len(table.Mappings)
		}

		highest = max(highest, len(table.Mappings))
	}

	for _, table := range tables {
		for _, stage := range []remap.Stage{table.From, table.To} {
			err := d.graph.AddVertex(stage)
			if err != nil && !errors.Is(err, graph.ErrVertexAlreadyExists) {
				return nil, errors.Wrapf(err, "unable to add stage %s", stage)
			}
		}

		fraction := 1.0
		if highest > lowest {
			fraction = float64(len(table.Mappings)-lowest) / float64(highest-lowest)
		}

		colour, err := flowdrawer.Gradient(fraction)
		if err != nil {
			return nil, err
		}

		err = d.graph.AddEdge(table.From, table.To,
			graph.EdgeAttribute("label", mappingsLabel(len(table.Mappings))),
			graph.EdgeAttribute("color", colour),
			graph.EdgeWeight(len(table.Mappings)),
		)
		if err != nil {
			return nil, errors.Wrapf(err, "unable to add edge from %s to %s", table.From, table.To)
		}
	}

	for _, stage := range []remap.Stage{p.Entry(), p.Terminal()} {
		_, properties, err := d.graph.VertexWithProperties(stage)
		if err != nil {
			continue
		}

		properties.Attributes["shape"] = "doublecircle"
	}

	return d, nil
}

func mappingsLabel(n int) string {
	if n == 1 {
		return "1 mapping"
	}

	return strconv.Itoa(n) + " mappings"
}

// Trace labels every stage of hops with the value reached there and highlights the edges between them.
func (d *ChainDrawer) Trace(hops []remap.Hop) error {
	for i, hop := range hops {
		_, properties, err := d.graph.VertexWithProperties(hop.Stage)
		if err != nil {
			return errors.Wrapf(err, "unable to get stage %s", hop.Stage)
		}

		properties.Attributes["xlabel"] = strconv.FormatUint(hop.Value, 10)

		if i == 0 {
			continue
		}

		prev := hops[i-1].Stage

		edge, err := d.graph.Edge(prev, hop.Stage)
		if err != nil {
			return errors.Wrapf(err, "unable to get edge from %s to %s", prev, hop.Stage)
		}

		err = d.graph.UpdateEdge(prev, hop.Stage,
			graph.EdgeAttribute("label", edge.Properties.Attributes["label"]),
			graph.EdgeAttribute("color", edge.Properties.Attributes["color"]),
			graph.EdgeAttribute("penwidth", "3"),
		)
		if err != nil {
			return errors.Wrapf(err, "unable to update edge from %s to %s", prev, hop.Stage)
		}
	}

	return nil
}

// Draw writes the chain to wrt.
func (d *ChainDrawer) Draw(wrt io.Writer) error {
	err := flowdrawer.DOT(d.graph, wrt, flowdrawer.GraphAttribute("rankdir", "LR"))
	if err != nil {
		return errors.Wrap(err, "unable to draw stage chain")
	}

	return nil
}

// DrawFile writes the chain to the file name.
func (d *ChainDrawer) DrawFile(name string) error {
	file, err := os.Create(name)
	if err != nil {
		return errors.Wrapf(err, "unable to create file %s", name)
	}

	err = d.Draw(file)
	if err != nil {
		_ = file.Close()

		return errors.Wrapf(err, "unable to write %s", name)
	}

	return errors.Wrapf(file.Close(), "unable to close %s", name)
}
