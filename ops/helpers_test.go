package ops

import "github.com/CQCL-DEV/hugr/portgraph"

func portIn(offset int) portgraph.Port  { return portgraph.In(offset) }
func portOut(offset int) portgraph.Port { return portgraph.Out(offset) }
