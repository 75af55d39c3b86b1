// Command treesearch-demo exercises the search engine end to end against
// the synthetic scenarios from the testable-properties table: a
// discrepancy-bounded binary tree and a runtime-limited cancellation run.
// The knapsack and Tower of Hanoi scenarios are not demonstrated; the
// repository has no program for them.
package main

import (
	"fmt"
	"time"

	"github.com/gitrdm/treesearch/pkg/treesearch/control"
	"github.com/gitrdm/treesearch/pkg/treesearch/lookahead"
	"github.com/gitrdm/treesearch/pkg/treesearch/quality"
)

func main() {
	fmt.Println("=== treesearch-demo ===")
	discrepancyBound()
	cancellation()
}

// discrepancyBound reproduces scenario 3: a 4-level binary tree whose sole
// rewarding leaf sits at the path right, left, left, right (discrepancy
// 2, since "right" is the second branch enumerated at each level).
func discrepancyBound() {
	fmt.Println("\n--- Discrepancy bound (right,left,left,right = discrepancy 2) ---")
	target := []int{1, 0, 0, 1}

	for _, maxD := range []int{1, 2} {
		root := newBinaryTree(target)
		c := control.New[binaryTree, quality.Maximize](root, control.Config[binaryTree, quality.Maximize]{})
		ld := lookahead.AnytimeLDS[binaryTree, quality.Maximize](maxD)
		if err := ld(c, root); err != nil {
			panic(err)
		}
		_, q, ok := c.Best()
		found := ok && q == quality.Maximize(100)
		fmt.Printf("D=%d: found target leaf=%v visited=%d\n", maxD, found, c.Visited())
	}
}

// cancellation reproduces scenario 6: a deep tree with no reward, bounded
// by a 10ms runtime limit. The search must return well within the
// generous 50ms ceiling the scenario allows, and no goroutine should
// outlive it.
func cancellation() {
	fmt.Println("\n--- Cancellation ---")
	root := newDeepBinaryTree(40)
	c := control.New[deepBinaryTree, quality.Maximize](root, control.Config[deepBinaryTree, quality.Maximize]{
		RuntimeLimit: 10 * time.Millisecond,
	})

	started := time.Now()
	ld := lookahead.DFS[deepBinaryTree, quality.Maximize](2, 1<<30, 0)
	if err := ld(c, root); err != nil {
		panic(err)
	}
	elapsed := time.Since(started)
	fmt.Printf("stopped after %v (limit 10ms), visited=%d, should_stop=%v\n", elapsed, c.Visited(), c.ShouldStop())
}
