package snowflake

import (
	"errors"
	"fmt"
	"sync"

	"github.com/bwmarrin/snowflake"
)

// nodeID 由 dataCenterID 和 machineID 拼成，两者各占 5 位。
const idBits = 5

var (
	node *snowflake.Node
	once sync.Once

	ErrNotInitialized = errors.New("snowflake: node not initialized")
)

// Init 初始化全局 ID 节点，重复调用只有第一次生效。
func Init(machineID, dataCenterID int64) error {
	var initErr error

	once.Do(func() {
		if machineID < 0 || machineID >= 1<<idBits {
			initErr = fmt.Errorf("snowflake: machine id %d out of range [0, %d]", machineID, 1<<idBits-1)
			return
		}
		if dataCenterID < 0 || dataCenterID >= 1<<idBits {
			initErr = fmt.Errorf("snowflake: data center id %d out of range [0, %d]", dataCenterID, 1<<idBits-1)
			return
		}

		n, err := snowflake.NewNode(dataCenterID<<idBits | machineID)
		if err != nil {
			initErr = err
			return
		}
		node = n
	})

	return initErr
}

// NextID 生成全局唯一的 int64 ID。
func NextID() (int64, error) {
	if node == nil {
		return 0, ErrNotInitialized
	}

	return node.Generate().Int64(), nil
}

// NextStringID 生成带业务前缀的字符串 ID，用作消息幂等键。
func NextStringID(prefix string) (string, error) {
	id, err := NextID()
	if err != nil {
		return "", err
	}

	return fmt.Sprintf("%s_%d", prefix, id), nil
}
