package packet

import (
	"go.mongodb.org/mongo-driver/bson"
)

// containerDoc is the durable representation of a Container.
type containerDoc struct {
	ID     uint16 `bson:"id"`
	Fields bson.M `bson:"fields"`
}

func (c *Container) MarshalBSON() ([]byte, error) {
	return bson.Marshal(containerDoc{
		ID:     uint16(c.id),
		Fields: c.fields,
	})
}

func (c *Container) UnmarshalBSON(b []byte) error {
	var doc containerDoc

	if err := bson.Unmarshal(b, &doc); err != nil {
		return err
	}

	c.id = ID(doc.ID)
	c.fields = doc.Fields
	if c.fields == nil {
		c.fields = bson.M{}
	}

	return nil
}

var (
	_ bson.Marshaler   = &Container{}
	_ bson.Unmarshaler = &Container{}
)
