// Package schema declares the output contracts the LLM must satisfy per task
// and the normalizer that validates raw completions against them.
package schema

import (
	"fmt"
	"sync"
)

// Kind identifies the JSON type a contract field must hold.
type Kind int

const (
	// String is a JSON string field.
	String Kind = iota
	// Integer is a JSON number field coerced to int.
	Integer
	// Object is a nested JSON object with known sub-fields.
	Object
	// ObjectList is a JSON array whose elements are objects.
	ObjectList
)

func (k Kind) String() string {
	switch k {
	case String:
		return "string"
	case Integer:
		return "integer"
	case Object:
		return "object"
	case ObjectList:
		return "list-of-object"
	default:
		return "unknown"
	}
}

// Field describes one named field of a contract.
type Field struct {
	// Name is the JSON key the model must emit.
	Name string

	// Kind is the expected JSON type.
	Kind Kind

	// Required marks the field strictly required: absence is a schema
	// violation. Non-required fields get a typed default when missing
	// (string→"", integer→0, list→[], object→{}).
	Required bool

	// Item is the sub-schema for ObjectList elements or the known keys
	// of an Object field.
	Item []Field
}

// Contract is the declared shape a task's normalized output must satisfy.
// Contracts are defined once at package init and never mutated.
type Contract struct {
	// Task is the task type this contract belongs to.
	Task string

	// Fields is the ordered set of top-level fields.
	Fields []Field
}

// contractRegistry holds the contracts, keyed by task type.
var (
	contractRegistry = make(map[string]Contract)
	contractMu       sync.RWMutex
)

// Register adds a contract to the registry. Duplicate registration panics:
// it indicates a code defect, not a runtime condition.
func Register(c Contract) {
	contractMu.Lock()
	defer contractMu.Unlock()
	if _, exists := contractRegistry[c.Task]; exists {
		panic("schema: duplicate contract for task " + c.Task)
	}
	contractRegistry[c.Task] = c
}

// Get returns the contract for a task type. An unknown task type is a code
// defect; every supported task registers its contract at process start.
func Get(task string) (Contract, error) {
	contractMu.RLock()
	defer contractMu.RUnlock()
	c, ok := contractRegistry[task]
	if !ok {
		return Contract{}, fmt.Errorf("no contract registered for task %q", task)
	}
	return c, nil
}

// MustGet returns the contract for a task type, panicking if unregistered.
// Used when wiring task descriptors at startup.
func MustGet(task string) Contract {
	c, err := Get(task)
	if err != nil {
		panic(err)
	}
	return c
}

// Tasks returns the task types with registered contracts.
func Tasks() []string {
	contractMu.RLock()
	defer contractMu.RUnlock()
	names := make([]string, 0, len(contractRegistry))
	for name := range contractRegistry {
		names = append(names, name)
	}
	return names
}
