// Package inspect renders lifetime scopes for debugging.
package inspect

import (
	"fmt"

	"github.com/m1gwings/treedrawer/tree"

	"github.com/delaneyj/signalflow/reactive"
)

// Tree draws lt and its child scopes. Scopes owned by a node are labelled with
// the node.
func Tree(lt *reactive.Lifetime) string {
	t := tree.NewTree(tree.NodeString(label(lt)))
	addChildren(t, lt)
	return t.String()
}

func addChildren(t *tree.Tree, lt *reactive.Lifetime) {
	for _, child := range lt.Children() {
		addChildren(t.AddChild(tree.NodeString(label(child))), child)
	}
}

func label(lt *reactive.Lifetime) string {
	if owner, ok := lt.Owner(); ok {
		return owner.String()
	}
	return fmt.Sprintf("scope %s", lt.ID())
}

// Count tallies nodes under lt by kind, children included.
func Count(lt *reactive.Lifetime) map[reactive.Kind]int {
	counts := map[reactive.Kind]int{}
	var walk func(*reactive.Lifetime)
	walk = func(l *reactive.Lifetime) {
		for _, node := range l.Nodes() {
			counts[node.Kind]++
		}
		for _, child := range l.Children() {
			walk(child)
		}
	}
	walk(lt)
	return counts
}
