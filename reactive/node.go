package reactive

import (
	"fmt"

	"github.com/cespare/xxhash/v2"
	"go.uber.org/atomic"
	"go.uber.org/zap"
)

type Kind uint8

const (
	KindSignal Kind = iota
	KindDerived
	KindAsync
	KindReaction
	KindArray
)

func (k Kind) String() string {
	switch k {
	case KindSignal:
		return "signal"
	case KindDerived:
		return "derived"
	case KindAsync:
		return "async"
	case KindReaction:
		return "reaction"
	case KindArray:
		return "array"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

// NodeInfo identifies a node in logs, hooks and lifetime dumps. Named nodes get
// an id hashed from their name so it is stable across runs.
type NodeInfo struct {
	ID   uint64
	Name string
	Kind Kind
}

func (n NodeInfo) String() string {
	if n.Name == "" {
		return fmt.Sprintf("%s#%d", n.Kind, n.ID&^anonymousBit)
	}
	return fmt.Sprintf("%s(%s)", n.Kind, n.Name)
}

func (n NodeInfo) fields() []zap.Field {
	return []zap.Field{
		zap.Stringer("node", n),
		zap.Uint64("id", n.ID),
	}
}

const anonymousBit = uint64(1) << 63

var anonymousIDs = atomic.NewUint64(0)

func newNodeInfo(kind Kind, name string) NodeInfo {
	info := NodeInfo{Name: name, Kind: kind}
	if name != "" {
		info.ID = xxhash.Sum64String(name) &^ anonymousBit
	} else {
		info.ID = anonymousIDs.Inc() | anonymousBit
	}
	return info
}
