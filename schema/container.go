package schema

import (
	"encoding/json"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Container is the associative structure generated schemas are built
// from. The ordered implementation preserves insertion order, which keeps
// property order stable against field declaration order; the unordered
// implementation is a plain map for callers that do not care.
type Container interface {
	Set(key string, value any)
	Get(key string) (any, bool)
	Len() int
	Keys() []string
	json.Marshaler
}

// ContainerFactory produces empty containers during generation.
type ContainerFactory func() Container

// NewOrdered returns a container that preserves insertion order in both
// iteration and JSON output.
func NewOrdered() Container {
	return &orderedContainer{m: orderedmap.New[string, any]()}
}

type orderedContainer struct {
	m *orderedmap.OrderedMap[string, any]
}

func (c *orderedContainer) Set(key string, value any) { c.m.Set(key, value) }

func (c *orderedContainer) Get(key string) (any, bool) { return c.m.Get(key) }

func (c *orderedContainer) Len() int { return c.m.Len() }

func (c *orderedContainer) Keys() []string {
	keys := make([]string, 0, c.m.Len())
	for pair := c.m.Oldest(); pair != nil; pair = pair.Next() {
		keys = append(keys, pair.Key)
	}
	return keys
}

func (c *orderedContainer) MarshalJSON() ([]byte, error) { return json.Marshal(c.m) }

// NewUnordered returns a plain-map container with no ordering guarantees.
func NewUnordered() Container {
	return unorderedContainer{}
}

type unorderedContainer map[string]any

func (c unorderedContainer) Set(key string, value any) { c[key] = value }

func (c unorderedContainer) Get(key string) (any, bool) {
	v, ok := c[key]
	return v, ok
}

func (c unorderedContainer) Len() int { return len(c) }

func (c unorderedContainer) Keys() []string {
	keys := make([]string, 0, len(c))
	for k := range c {
		keys = append(keys, k)
	}
	return keys
}

func (c unorderedContainer) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]any(c))
}
