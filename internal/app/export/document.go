package export

import "sync"

// SummaryNodeID identifies the live summary table while the modal is open.
const SummaryNodeID = "summary-table"

// Node is a rendered piece of the page that can be captured.
type Node struct {
	ID        string
	Offscreen bool
	Table     SummaryTable
	Markup    string
}

// Document tracks which nodes are currently rendered.
type Document struct {
	mu    sync.RWMutex
	nodes map[string]Node
}

func NewDocument() *Document {
	return &Document{nodes: make(map[string]Node)}
}

// Mount adds or replaces a node
func (d *Document) Mount(node Node) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.nodes[node.ID] = node
}

func (d *Document) Unmount(id string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	delete(d.nodes, id)
}

func (d *Document) Lookup(id string) (Node, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	n, ok := d.nodes[id]
	return n, ok
}

// Len counts mounted nodes, transient ones included
func (d *Document) Len() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.nodes)
}
