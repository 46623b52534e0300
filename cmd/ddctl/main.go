// MIT License

// Command ddctl is a demonstration CLI over the ddkit decision-diagram
// kernel (spec.md §6.3), exercising the Builder and Serializer against a
// bundled demo specification rather than an arbitrary input graph --
// grounded on junjiewwang-perf-analysis's cmd/cli split between a thin
// main.go and a cobra-based cmd package.
package main

import "github.com/dalzilio/ddkit/cmd/ddctl/cmd"

func main() {
	cmd.Execute()
}
