package geometry

import (
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// A Coord is encoded as a list of numbers, with null for undefined
// components: [1, null, 3].

func (c Coord[T]) MarshalJSON() ([]byte, error) {
	out := make([]*T, len(c.c))
	for i := range c.c {
		if c.c[i].ok {
			out[i] = &c.c[i].v
		}
	}
	return json.Marshal(out)
}

func (c *Coord[T]) UnmarshalJSON(data []byte) error {
	var raw []*json.Number
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("geometry: decoding coordinate: %w", err)
	}
	vals := make([]Value[T], len(raw))
	for i, n := range raw {
		if n == nil {
			continue
		}
		v, err := parseValue[T](n.String())
		if err != nil {
			return fmt.Errorf("geometry: decoding coordinate component %d: %w", i, err)
		}
		vals[i] = v
	}
	c.c = vals
	return nil
}

func (c Coord[T]) MarshalYAML() (interface{}, error) {
	out := make([]interface{}, len(c.c))
	for i, x := range c.c {
		if x.ok {
			out[i] = x.v
		}
	}
	return out, nil
}

func (c *Coord[T]) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.SequenceNode {
		return fmt.Errorf("geometry: line %d: coordinate must be a sequence", node.Line)
	}
	vals := make([]Value[T], len(node.Content))
	for i, item := range node.Content {
		if item.Kind != yaml.ScalarNode {
			return fmt.Errorf("geometry: line %d: coordinate component %d must be a scalar", item.Line, i)
		}
		if item.ShortTag() == "!!null" {
			continue
		}
		v, err := parseValue[T](item.Value)
		if err != nil {
			return fmt.Errorf("geometry: line %d: coordinate component %d: %w", item.Line, i, err)
		}
		vals[i] = v
	}
	c.c = vals
	return nil
}

type regionDoc[T Scalar] struct {
	Offset Coord[T] `json:"offset" yaml:"offset"`
	Shape  Coord[T] `json:"shape" yaml:"shape"`
}

func (r Region[T]) MarshalJSON() ([]byte, error) {
	return json.Marshal(regionDoc[T]{Offset: r.offset, Shape: r.shape})
}

func (r *Region[T]) UnmarshalJSON(data []byte) error {
	var doc regionDoc[T]
	if err := json.Unmarshal(data, &doc); err != nil {
		return err
	}
	return r.set(doc)
}

func (r Region[T]) MarshalYAML() (interface{}, error) {
	return regionDoc[T]{Offset: r.offset, Shape: r.shape}, nil
}

func (r *Region[T]) UnmarshalYAML(node *yaml.Node) error {
	var doc regionDoc[T]
	if err := node.Decode(&doc); err != nil {
		return err
	}
	return r.set(doc)
}

func (r *Region[T]) set(doc regionDoc[T]) error {
	if doc.Offset.Dims() != doc.Shape.Dims() {
		return fmt.Errorf("geometry: offset dimension %d != shape dimension %d", doc.Offset.Dims(), doc.Shape.Dims())
	}
	*r = NewRegion(doc.Offset, doc.Shape)
	return nil
}
