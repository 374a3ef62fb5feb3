package room

import (
	"fmt"

	"github.com/goccy/go-json"
)

// Object is a canvas object with its client-assigned id.
// The payload is kept verbatim.
type Object struct {
	Id   string
	Data json.RawMessage
}

// ParseObject extracts the id from the raw object payload.
func ParseObject(raw []byte) (Object, error) {
	var o struct {
		Id string `json:"id"`
	}
	if err := json.Unmarshal(raw, &o); err != nil {
		return Object{}, fmt.Errorf("%w: %v", ErrBadObject, err)
	}
	if o.Id == "" {
		return Object{}, fmt.Errorf("%w: no id", ErrBadObject)
	}
	return Object{Id: o.Id, Data: append(json.RawMessage(nil), raw...)}, nil
}

// CanvasState is an insertion-ordered set of canvas objects.
type CanvasState struct {
	order   []string
	objects map[string]json.RawMessage
}

func newCanvas() CanvasState { return CanvasState{objects: make(map[string]json.RawMessage)} }

// Add inserts the object or overwrites the one with the same id,
// an overwritten object keeps its place.
func (c *CanvasState) Add(o Object) {
	if _, ok := c.objects[o.Id]; !ok {
		c.order = append(c.order, o.Id)
	}
	c.objects[o.Id] = o.Data
}

// Modify overwrites only an existing object.
func (c *CanvasState) Modify(o Object) bool {
	if _, ok := c.objects[o.Id]; !ok {
		return false
	}
	c.objects[o.Id] = o.Data
	return true
}

func (c *CanvasState) Remove(id string) bool {
	if _, ok := c.objects[id]; !ok {
		return false
	}
	delete(c.objects, id)
	for i, v := range c.order {
		if v == id {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
	return true
}

func (c *CanvasState) Clear() {
	c.order = nil
	c.objects = make(map[string]json.RawMessage)
}

func (c *CanvasState) Has(id string) bool { _, ok := c.objects[id]; return ok }

func (c *CanvasState) Len() int { return len(c.order) }

// Objects returns all the objects in the insertion order.
func (c *CanvasState) Objects() []json.RawMessage {
	out := make([]json.RawMessage, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, c.objects[id])
	}
	return out
}
