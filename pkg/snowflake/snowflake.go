package snowflake

import (
	"sync"

	"github.com/bwmarrin/snowflake"
)

var (
	node *snowflake.Node
	once sync.Once
)

func getNode() *snowflake.Node {
	once.Do(func() {
		var err error
		node, err = snowflake.NewNode(1)
		if err != nil {
			panic(err)
		}
	})
	return node
}

// GenID 生成分布式唯一ID（帖子/动态/评论等内容主键）
func GenID() int64 {
	return getNode().Generate().Int64()
}
