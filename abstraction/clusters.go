package abstraction

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
)

// Clusters assigns every canonical hole class to an opponent cluster. The
// assignment comes from an external clustering of the OCHS histograms.
type Clusters struct {
	Assignment []uint32
}

// K returns the number of clusters, one past the largest id.
func (c *Clusters) K() int {
	k := 0
	for _, id := range c.Assignment {
		k = max(k, int(id)+1)
	}
	return k
}

// Validate checks that every hole class is assigned and no cluster is empty.
func (c *Clusters) Validate(classes uint64) error {
	if uint64(len(c.Assignment)) != classes {
		return fmt.Errorf("cluster assignment covers %d hole classes, want %d", len(c.Assignment), classes)
	}
	// Non-empty clusters need ids below the number of hole classes.
	used := make([]bool, len(c.Assignment))
	k := 0
	for i, id := range c.Assignment {
		if uint64(id) >= classes {
			return fmt.Errorf("hole class %d: cluster id %d exceeds %d hole classes", i, id, classes)
		}
		used[id] = true
		k = max(k, int(id)+1)
	}
	used = used[:k]
	for k, ok := range used {
		if !ok {
			return fmt.Errorf("cluster %d has no hole classes", k)
		}
	}
	return nil
}

// ParseClusters reads whitespace separated cluster ids, one per hole class in
// canonical order.
func ParseClusters(r io.Reader) (*Clusters, error) {
	sc := bufio.NewScanner(r)
	sc.Split(bufio.ScanWords)

	c := &Clusters{}
	for sc.Scan() {
		id, err := strconv.ParseUint(sc.Text(), 10, 32)
		if err != nil {
			return nil, fmt.Errorf("cluster id %d: %w", len(c.Assignment), err)
		}
		c.Assignment = append(c.Assignment, uint32(id))
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read clusters: %w", err)
	}
	return c, nil
}
