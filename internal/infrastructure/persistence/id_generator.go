package persistence

import (
	"fmt"
	"sync"

	"github.com/bwmarrin/snowflake"
)

// Order ids travel as JSON numbers, so they must stay below 2^53. The layout
// is 41 bits of milliseconds since 2024-01-01 KST, 4 node bits and 8 sequence
// bits.
const (
	orderIDEpoch    = 1704034800000
	orderIDNodeBits = 4
	orderIDStepBits = 8

	// MaxOrderIDNode is the highest node id an instance may use
	MaxOrderIDNode = 1<<orderIDNodeBits - 1
)

var configureSnowflake sync.Once

// SnowflakeOrderIDGenerator issues order ids from a snowflake node.
// Ids are unique across instances as long as node ids differ.
type SnowflakeOrderIDGenerator struct {
	node *snowflake.Node
}

// NewSnowflakeOrderIDGenerator creates a generator for the given node id (0-15)
func NewSnowflakeOrderIDGenerator(nodeID int64) (*SnowflakeOrderIDGenerator, error) {
	// the layout lives in package variables read by NewNode
	configureSnowflake.Do(func() {
		snowflake.Epoch = orderIDEpoch
		snowflake.NodeBits = orderIDNodeBits
		snowflake.StepBits = orderIDStepBits
	})

	node, err := snowflake.NewNode(nodeID)
	if err != nil {
		return nil, fmt.Errorf("create snowflake node %d: %w", nodeID, err)
	}
	return &SnowflakeOrderIDGenerator{node: node}, nil
}

// NextOrderID returns a new order id
func (g *SnowflakeOrderIDGenerator) NextOrderID() int64 {
	return g.node.Generate().Int64()
}
