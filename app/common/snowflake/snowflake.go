package snowflake

import (
	"hash/fnv"
	"os"
	"sync"

	bwsnowflake "github.com/bwmarrin/snowflake"
)

// 10 node bits, the library default.
const maxNodeID = 1023

var (
	mu   sync.Mutex
	node *bwsnowflake.Node
)

// Init pins the node id. Without it the id is derived from the hostname on
// first use, which can collide across hosts; set it explicitly in config when
// several replicas publish events.
func Init(nodeID int64) error {
	n, err := bwsnowflake.NewNode(nodeID)
	if err != nil {
		return err
	}
	mu.Lock()
	node = n
	mu.Unlock()
	return nil
}

// Next returns a new, time ordered id.
func Next() int64 {
	return current().Generate().Int64()
}

// HostNodeID hashes host into the node id space.
func HostNodeID(host string) int64 {
	h := fnv.New32a()
	_, _ = h.Write([]byte(host))
	return int64(h.Sum32()) & maxNodeID
}

func current() *bwsnowflake.Node {
	mu.Lock()
	defer mu.Unlock()
	if node != nil {
		return node
	}

	host, _ := os.Hostname()
	n, err := bwsnowflake.NewNode(HostNodeID(host))
	if err != nil {
		n, _ = bwsnowflake.NewNode(1)
	}
	node = n
	return node
}
