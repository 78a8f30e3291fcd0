package mesh

import (
	"fmt"
	"sort"
)

// MaterialRegistry maps material names to the integer codes stored in the
// material cell data. Code 0 is reserved for cells without a material.
type MaterialRegistry struct {
	codes map[string]int
	names map[int]string
	next  int
}

func NewMaterialRegistry() *MaterialRegistry {
	return &MaterialRegistry{
		codes: make(map[string]int),
		names: make(map[int]string),
		next:  1,
	}
}

// Register returns the code of name, allocating one if needed
func (mr *MaterialRegistry) Register(name string) (code int, err error) {
	if len(name) == 0 {
		return 0, fmt.Errorf("material name cannot be empty")
	}
	if code, ok := mr.codes[name]; ok {
		return code, nil
	}
	code = mr.next
	mr.next++
	mr.codes[name] = code
	mr.names[code] = name
	return code, nil
}

// RegisterCode binds name to a caller chosen code, as mesh readers do with
// physical tags
func (mr *MaterialRegistry) RegisterCode(name string, code int) error {
	if code <= 0 {
		return fmt.Errorf("material code must be positive, got %d", code)
	}
	if old, ok := mr.names[code]; ok && old != name {
		return fmt.Errorf("material code %d already bound to %q", code, old)
	}
	if old, ok := mr.codes[name]; ok && old != code {
		return fmt.Errorf("material %q already bound to code %d", name, old)
	}
	mr.codes[name] = code
	mr.names[code] = name
	if code >= mr.next {
		mr.next = code + 1
	}
	return nil
}

func (mr *MaterialRegistry) Code(name string) (int, bool) {
	code, ok := mr.codes[name]
	return code, ok
}

func (mr *MaterialRegistry) Name(code int) (string, bool) {
	name, ok := mr.names[code]
	return name, ok
}

func (mr *MaterialRegistry) Len() int { return len(mr.codes) }

// Names returns the registered names ordered by code
func (mr *MaterialRegistry) Names() []string {
	codes := make([]int, 0, len(mr.names))
	for code := range mr.names {
		codes = append(codes, code)
	}
	sort.Ints(codes)
	names := make([]string, len(codes))
	for i, code := range codes {
		names[i] = mr.names[code]
	}
	return names
}
