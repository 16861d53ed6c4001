package store

import (
	"sync"

	"github.com/dominikbraun/graph"
	"github.com/pkg/errors"
)

type edgeKey[K comparable] struct {
	source, target K
}

// OrderedStore is an in-memory graph.Store that lists vertices and edges in insertion order
// and answers CreatesCycle from an index of incoming edges.
type OrderedStore[K comparable, T any] struct {
	lock             sync.RWMutex
	vertices         map[K]T
	vertexProperties map[K]graph.VertexProperties
	vertexOrder      []K

	edges     map[edgeKey[K]]graph.Edge[K]
	edgeOrder []edgeKey[K]
	// inEdges lets CreatesCycle walk predecessors without building a predecessor map.
	inEdges map[K]map[K]struct{}
}

// NewOrderedStore creates an empty OrderedStore.
func NewOrderedStore[K comparable, T any]() *OrderedStore[K, T] {
	return &OrderedStore[K, T]{
		vertices:         make(map[K]T),
		vertexProperties: make(map[K]graph.VertexProperties),
		edges:            make(map[edgeKey[K]]graph.Edge[K]),
		inEdges:          make(map[K]map[K]struct{}),
	}
}

func (s *OrderedStore[K, T]) AddVertex(k K, t T, p graph.VertexProperties) error {
	s.lock.Lock()
	defer s.lock.Unlock()

	if _, ok := s.vertices[k]; ok {
		return graph.ErrVertexAlreadyExists
	}

	s.vertices[k] = t
	s.vertexProperties[k] = p
	s.vertexOrder = append(s.vertexOrder, k)

	return nil
}

func (s *OrderedStore[K, T]) Vertex(k K) (T, graph.VertexProperties, error) {
	s.lock.RLock()
	defer s.lock.RUnlock()

	v, ok := s.vertices[k]
	if !ok {
		return v, graph.VertexProperties{}, graph.ErrVertexNotFound
	}

	return v, s.vertexProperties[k], nil
}

func (s *OrderedStore[K, T]) RemoveVertex(k K) error {
	s.lock.Lock()
	defer s.lock.Unlock()

	if _, ok := s.vertices[k]; !ok {
		return graph.ErrVertexNotFound
	}

	if len(s.inEdges[k]) > 0 {
		return graph.ErrVertexHasEdges
	}

	for _, key := range s.edgeOrder {
		if key.source == k {
			return graph.ErrVertexHasEdges
		}
	}

	delete(s.vertices, k)
	delete(s.vertexProperties, k)
	delete(s.inEdges, k)

	for i, key := range s.vertexOrder {
		if key == k {
			s.vertexOrder = append(s.vertexOrder[:i], s.vertexOrder[i+1:]...)

			break
		}
	}

	return nil
}

func (s *OrderedStore[K, T]) ListVertices() ([]K, error) {
	s.lock.RLock()
	defer s.lock.RUnlock()

	res := make([]K, len(s.vertexOrder))
	copy(res, s.vertexOrder)

	return res, nil
}

func (s *OrderedStore[K, T]) VertexCount() (int, error) {
	s.lock.RLock()
	defer s.lock.RUnlock()

	return len(s.vertices), nil
}

func (s *OrderedStore[K, T]) AddEdge(sourceHash, targetHash K, edge graph.Edge[K]) error {
	s.lock.Lock()
	defer s.lock.Unlock()

	key := edgeKey[K]{source: sourceHash, target: targetHash}
	if _, ok := s.edges[key]; !ok {
		s.edgeOrder = append(s.edgeOrder, key)
	}

	s.edges[key] = edge

	if _, ok := s.inEdges[targetHash]; !ok {
		s.inEdges[targetHash] = make(map[K]struct{})
	}

	s.inEdges[targetHash][sourceHash] = struct{}{}

	return nil
}

func (s *OrderedStore[K, T]) UpdateEdge(sourceHash, targetHash K, edge graph.Edge[K]) error {
	s.lock.Lock()
	defer s.lock.Unlock()

	key := edgeKey[K]{source: sourceHash, target: targetHash}
	if _, ok := s.edges[key]; !ok {
		return graph.ErrEdgeNotFound
	}

	s.edges[key] = edge

	return nil
}

func (s *OrderedStore[K, T]) RemoveEdge(sourceHash, targetHash K) error {
	s.lock.Lock()
	defer s.lock.Unlock()

	key := edgeKey[K]{source: sourceHash, target: targetHash}
	delete(s.edges, key)
	delete(s.inEdges[targetHash], sourceHash)

	for i, k := range s.edgeOrder {
		if k == key {
			s.edgeOrder = append(s.edgeOrder[:i], s.edgeOrder[i+1:]...)

			break
		}
	}

	return nil
}

func (s *OrderedStore[K, T]) Edge(sourceHash, targetHash K) (graph.Edge[K], error) {
	s.lock.RLock()
	defer s.lock.RUnlock()

	edge, ok := s.edges[edgeKey[K]{source: sourceHash, target: targetHash}]
	if !ok {
		return graph.Edge[K]{}, graph.ErrEdgeNotFound
	}

	return edge, nil
}

func (s *OrderedStore[K, T]) ListEdges() ([]graph.Edge[K], error) {
	s.lock.RLock()
	defer s.lock.RUnlock()

	res := make([]graph.Edge[K], 0, len(s.edgeOrder))
	for _, key := range s.edgeOrder {
		res = append(res, s.edges[key])
	}

	return res, nil
}

// CreatesCycle reports whether an edge from source to target would close a cycle,
// that is whether target already reaches source.
func (s *OrderedStore[K, T]) CreatesCycle(source, target K) (bool, error) {
	if _, _, err := s.Vertex(source); err != nil {
		return false, errors.Wrapf(err, "could not get vertex with hash %v", source)
	}

	if _, _, err := s.Vertex(target); err != nil {
		return false, errors.Wrapf(err, "could not get vertex with hash %v", target)
	}

	if source == target {
		return true, nil
	}

	s.lock.RLock()
	defer s.lock.RUnlock()

	stack := []K{source}
	visited := make(map[K]struct{})

	for len(stack) > 0 {
		current := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if _, ok := visited[current]; ok {
			continue
		}

		if current == target {
			return true, nil
		}

		visited[current] = struct{}{}

		for parent := range s.inEdges[current] {
			stack = append(stack, parent)
		}
	}

	return false, nil
}

var _ graph.Store[string, string] = (*OrderedStore[string, string])(nil)
