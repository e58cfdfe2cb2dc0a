// Package packet contains the mutable payload container that packet events
// carry through the tap pipeline.
//
// A container is an owned, field-level view of one protocol packet. Wire
// encoding and decoding of those fields is the job of whatever codec produced
// the container; the pipeline only reads and rewrites the decoded document.
package packet

import (
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
)

// ID identifies the protocol packet type of a container.
type ID uint16

func (i ID) String() string {
	return fmt.Sprintf("0x%02X", uint16(i))
}

// Container holds one mutable packet payload: the packet type ID plus the
// decoded field document.
//
// A Container is single-writer, like the event that owns it.
type Container struct {
	id     ID
	fields bson.M
}

// NewContainer creates a container for the given packet type.
//
// The fields document is taken over by the container; nil is allowed and
// treated as an empty document.
func NewContainer(id ID, fields bson.M) *Container {
	if fields == nil {
		fields = bson.M{}
	}
	return &Container{id: id, fields: fields}
}

// ID returns the packet type ID.
func (c *Container) ID() ID {
	return c.id
}

// SetID rewrites the packet type ID.
func (c *Container) SetID(id ID) {
	c.id = id
}

// Field returns the named payload field, or nil when unset.
func (c *Container) Field(name string) any {
	return c.fields[name]
}

// SetField sets the named payload field.
func (c *Container) SetField(name string, value any) {
	c.fields[name] = value
}

// Fields returns the live field document. Mutations write through to the
// container.
func (c *Container) Fields() bson.M {
	return c.fields
}

// Clone returns a deep copy of the container.
//
// Nested documents and arrays are copied recursively; scalar fields are
// copied by value.
func (c *Container) Clone() *Container {
	return &Container{
		id:     c.id,
		fields: cloneFields(c.fields),
	}
}

func cloneFields(fields bson.M) bson.M {
	out := make(bson.M, len(fields))
	for k, v := range fields {
		out[k] = cloneValue(v)
	}
	return out
}

func cloneValue(v any) any {
	switch val := v.(type) {
	case bson.M:
		return cloneFields(val)
	case bson.A:
		out := make(bson.A, len(val))
		for i, e := range val {
			out[i] = cloneValue(e)
		}
		return out
	case []byte:
		out := make([]byte, len(val))
		copy(out, val)
		return out
	default:
		return v
	}
}

func (c *Container) Debug() string {
	return fmt.Sprintf("packet %s (%d fields)", c.id, len(c.fields))
}
