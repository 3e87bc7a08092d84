package ocr

import (
	"fmt"
	"log"
)

// Descriptor records the probe outcome for one supported engine. Created once
// at process start and immutable afterwards; construction never gets retried.
type Descriptor struct {
	Name      string
	Available bool
	InitError string
	Engine    Engine // nil when unavailable
}

// Candidate names an engine and knows how to construct it once.
type Candidate struct {
	Name      string
	Construct func() (Engine, error)
}

// Registry is the process-wide set of engine descriptors in fixed priority
// order. Read-only after Probe, safe to share across concurrent requests.
type Registry struct {
	order  []*Descriptor
	byName map[string]*Descriptor
}

// NewRegistry builds a registry from prepared descriptors, keeping their
// order as the priority order.
func NewRegistry(descs ...*Descriptor) *Registry {
	r := &Registry{byName: make(map[string]*Descriptor, len(descs))}
	for _, d := range descs {
		r.order = append(r.order, d)
		r.byName[d.Name] = d
	}
	return r
}

// Probe attempts a one-time construction of every candidate engine. A failure
// (missing library data, empty API key, client error, even a panicking
// constructor) is recorded on the descriptor and never stops the process from
// starting.
func Probe(candidates ...Candidate) *Registry {
	descs := make([]*Descriptor, 0, len(candidates))
	for _, c := range candidates {
		d := &Descriptor{Name: c.Name}
		eng, err := construct(c)
		if err != nil {
			d.InitError = err.Error()
			log.Printf("engine %s is unavailable: %v", c.Name, err)
		} else {
			d.Available = true
			d.Engine = eng
		}
		descs = append(descs, d)
	}
	return NewRegistry(descs...)
}

// construct shields Probe from engine constructors that panic instead of
// returning an error.
func construct(c Candidate) (eng Engine, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			eng, err = nil, fmt.Errorf("constructor panic: %v", rec)
		}
	}()
	return c.Construct()
}

// Get returns the descriptor for an engine name, or nil.
func (r *Registry) Get(name string) *Descriptor {
	return r.byName[name]
}

// Descriptors returns the descriptors in priority order.
func (r *Registry) Descriptors() []*Descriptor {
	return r.order
}
