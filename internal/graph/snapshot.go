package graph

import (
	"bytes"
	"encoding/gob"
	"fmt"
	"os"
	"sort"
)

// snapshot is the portable, whole-graph serialization format (spec §4.5,
// §6.3): nodes and edges round-trip exactly through Save then Load.
type snapshot struct {
	Nodes []Node
	Edges []Edge
}

// Save serializes the entire graph to path. Saves are whole-graph; there is
// no incremental journal (spec §4.5) because the graph is cheap to
// regenerate from the corpus via a reindex.
func (s *Store) Save(path string) error {
	snap := snapshot{
		Nodes: make([]Node, 0, len(s.nodes)),
		Edges: make([]Edge, 0),
	}
	for _, n := range s.nodes {
		snap.Nodes = append(snap.Nodes, n)
	}
	for _, edges := range s.outEdges {
		snap.Edges = append(snap.Edges, edges...)
	}

	// Map iteration order is randomized per run; sort before encoding so
	// repeated saves of an identical graph produce byte-equal snapshots
	// (spec §8 invariant 5).
	sort.Slice(snap.Nodes, func(i, j int) bool {
		if snap.Nodes[i].Kind != snap.Nodes[j].Kind {
			return snap.Nodes[i].Kind < snap.Nodes[j].Kind
		}
		return snap.Nodes[i].ID < snap.Nodes[j].ID
	})
	sort.Slice(snap.Edges, func(i, j int) bool {
		if snap.Edges[i].Kind != snap.Edges[j].Kind {
			return snap.Edges[i].Kind < snap.Edges[j].Kind
		}
		if snap.Edges[i].From != snap.Edges[j].From {
			return snap.Edges[i].From < snap.Edges[j].From
		}
		return snap.Edges[i].To < snap.Edges[j].To
	})

	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(snap); err != nil {
		return fmt.Errorf("graph: encoding snapshot: %w", err)
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("graph: writing snapshot: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("graph: finalizing snapshot: %w", err)
	}
	return nil
}

// Load restores the graph from path atomically, replacing any in-memory
// state. The previous in-memory graph is left untouched until decoding
// succeeds.
func (s *Store) Load(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("graph: reading snapshot: %w", err)
	}

	var snap snapshot
	if err := gob.NewDecoder(bytes.NewReader(data)).Decode(&snap); err != nil {
		return fmt.Errorf("graph: decoding snapshot: %w", err)
	}

	loaded := New()
	for _, n := range snap.Nodes {
		loaded.nodes[nodeKey(n.Kind, n.ID)] = n
	}
	for _, e := range snap.Edges {
		fromKind := NodeSkill
		toKind := edgeToKind(e.Kind)
		from := nodeKey(fromKind, e.From)
		to := nodeKey(toKind, e.To)
		loaded.outEdges[from] = append(loaded.outEdges[from], e)
		loaded.inEdges[to] = append(loaded.inEdges[to], e)
	}

	s.nodes = loaded.nodes
	s.outEdges = loaded.outEdges
	s.inEdges = loaded.inEdges
	return nil
}
