package reactive

import "time"

type AsyncEvent uint8

const (
	AsyncStarted AsyncEvent = iota
	AsyncSucceeded
	AsyncFailed
	AsyncCancelled
	// AsyncDiscarded is a settled result that arrived after its task was superseded.
	AsyncDiscarded
)

func (e AsyncEvent) String() string {
	switch e {
	case AsyncStarted:
		return "started"
	case AsyncSucceeded:
		return "succeeded"
	case AsyncFailed:
		return "failed"
	case AsyncCancelled:
		return "cancelled"
	case AsyncDiscarded:
		return "discarded"
	default:
		return "unknown"
	}
}

// Hooks observe graph activity. Implementations must be safe for concurrent use
// and must not write to the graph.
type Hooks interface {
	OnWrite(node NodeInfo, changed bool)
	OnRecompute(node NodeInfo)
	OnAsync(node NodeInfo, event AsyncEvent)
	OnReaction(node NodeInfo, elapsed time.Duration, err error)
}

type NopHooks struct{}

func (NopHooks) OnWrite(NodeInfo, bool)                    {}
func (NopHooks) OnRecompute(NodeInfo)                      {}
func (NopHooks) OnAsync(NodeInfo, AsyncEvent)              {}
func (NopHooks) OnReaction(NodeInfo, time.Duration, error) {}
