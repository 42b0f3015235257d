package id

import (
	"sync"

	"github.com/bwmarrin/snowflake"
)

var (
	node    *snowflake.Node
	once    sync.Once
	nodeErr error
)

// Init initializes the Snowflake node with the given node ID. Only the first call
// (or the first New, which initializes node 0) takes effect.
func Init(nodeID int64) error {
	once.Do(func() {
		node, nodeErr = snowflake.NewNode(nodeID)
	})
	return nodeErr
}

// New generates a new globally unique, time-ordered int64 ID.
func New() int64 {
	if err := Init(0); err != nil {
		panic("id: snowflake node not initialized: " + err.Error())
	}
	return node.Generate().Int64()
}
