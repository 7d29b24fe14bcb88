package common

import (
	"os"

	"github.com/bwmarrin/snowflake"
)

var snowflakeNode *snowflake.Node

func init() {
	var err error
	snowflakeNode, err = snowflake.NewNode(1)
	if err != nil {
		os.Exit(1)
	}
}

// UUIDint64 returns a sortable cluster-unique int64 identifier.
func UUIDint64() int64 {
	return snowflakeNode.Generate().Int64()
}
