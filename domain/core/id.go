package core

import (
	"strconv"
	"sync"

	"github.com/google/uuid"
)

// ID represents a domain identifier
type ID string

// NewID creates a new unique identifier using UUID v7 for time-ordered generation
func NewID() ID {
	id, err := uuid.NewV7()
	if err != nil {
		// Fallback to v4 if v7 fails
		id = uuid.New()
	}
	return ID(id.String())
}

// String returns the string representation
func (id ID) String() string {
	return string(id)
}

// IsEmpty checks if the ID is empty
func (id ID) IsEmpty() bool {
	return id == ""
}

// BatchID identifies one parse invocation over one file.
type BatchID ID

func NewBatchID() BatchID { return BatchID(NewID()) }

func (id BatchID) String() string { return ID(id).String() }

const (
	firstJobSeq = 1
	// Salesman IDs start at 101 so job and salesman IDs stay visually
	// distinguishable in mixed exports.
	firstSalesmanSeq = 101
)

// SequenceGenerator hands out the sequential fallback IDs used when a source
// file carries no ID column. The sequence is shared across every file of a
// batch; callers that need per-file isolation call Reset between files.
type SequenceGenerator struct {
	mu           sync.Mutex
	nextJob      int
	nextSalesman int
}

// NewSequenceGenerator creates a generator with jobs at 1 and salesmen at 101.
func NewSequenceGenerator() *SequenceGenerator {
	return &SequenceGenerator{nextJob: firstJobSeq, nextSalesman: firstSalesmanSeq}
}

// NextJobID returns the next job fallback ID, stringified.
func (g *SequenceGenerator) NextJobID() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	id := g.nextJob
	g.nextJob++
	return strconv.Itoa(id)
}

// NextSalesmanID returns the next salesman fallback ID, stringified.
func (g *SequenceGenerator) NextSalesmanID() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	id := g.nextSalesman
	g.nextSalesman++
	return strconv.Itoa(id)
}

// Reset restarts both sequences. Owned by the caller, never by the pipeline.
func (g *SequenceGenerator) Reset() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.nextJob = firstJobSeq
	g.nextSalesman = firstSalesmanSeq
}
