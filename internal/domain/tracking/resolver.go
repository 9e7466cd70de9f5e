package tracking

// Next is the outcome of resolving a project day against its flow.
type Next struct {
	Kind     Kind // empty when Complete
	Step     int  // zero-based position of Kind in the flow
	Total    int
	Complete bool
}

// Resolve returns flow[recorded], or a complete result once recorded reaches
// the flow length. Extra punches past the end still resolve as complete.
func Resolve(flow []Kind, recorded int) Next {
	if recorded < 0 {
		recorded = 0
	}
	if recorded >= len(flow) {
		return Next{Step: len(flow), Total: len(flow), Complete: true}
	}
	return Next{Kind: flow[recorded], Step: recorded, Total: len(flow)}
}
