// Package idgen hands out time-ordered identifiers for stored entities.
package idgen

import (
	"fmt"

	"github.com/bwmarrin/snowflake"
)

type Generator interface {
	Generate() string
}

// Snowflake produces 63-bit ids laid out as millisecond timestamp, node and
// per-millisecond sequence. Ids are rendered as decimal strings so JSON
// clients never round them through a float.
type Snowflake struct {
	node *snowflake.Node
}

func NewSnowflake(nodeID int64) (*Snowflake, error) {
	node, err := snowflake.NewNode(nodeID)
	if err != nil {
		return nil, fmt.Errorf("create snowflake node %d: %w", nodeID, err)
	}
	return &Snowflake{node: node}, nil
}

func (s *Snowflake) Generate() string {
	return s.node.Generate().String()
}
