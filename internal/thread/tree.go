// Package thread turns an artwork's flat comment collection into reply trees
// and keeps the optimistic view a commenter sees while a submission is in flight.
package thread

import (
	"encoding/json"
	"sort"
	"time"

	"github.com/google/uuid"

	"lomba-poster/internal/domain"
)

// Kind tells a durable comment apart from a local overlay entry.
type Kind uint8

const (
	Confirmed Kind = iota
	Provisional
)

const localKeyPrefix = "local:"

// Item is a single comment as a reader observes it. ID is set for Confirmed
// items only; LocalID for Provisional ones.
type Item struct {
	Kind      Kind
	ID        uuid.UUID
	LocalID   string
	Text      string
	ParentID  *uuid.UUID
	CreatedAt time.Time
}

// Key is the index key used while building. Provisional keys never collide
// with a durable id, so nothing can be attached under an unconfirmed comment.
func (it Item) Key() string {
	if it.Kind == Provisional {
		return localKeyPrefix + it.LocalID
	}
	return it.ID.String()
}

func (it Item) IsProvisional() bool {
	return it.Kind == Provisional
}

func FromComment(c domain.Comment) Item {
	return Item{
		Kind:      Confirmed,
		ID:        c.ID,
		Text:      c.Text,
		ParentID:  c.ParentID,
		CreatedAt: c.CreatedAt,
	}
}

func FromComments(comments []domain.Comment) []Item {
	items := make([]Item, len(comments))
	for i, c := range comments {
		items[i] = FromComment(c)
	}
	return items
}

type Node struct {
	Item
	Replies []*Node
}

func (n *Node) MarshalJSON() ([]byte, error) {
	id := n.ID.String()
	if n.Kind == Provisional {
		id = n.Key()
	}
	replies := n.Replies
	if replies == nil {
		replies = []*Node{}
	}
	return json.Marshal(struct {
		ID          string     `json:"id"`
		Text        string     `json:"text"`
		ParentID    *uuid.UUID `json:"parent_id"`
		CreatedAt   time.Time  `json:"created_at"`
		Provisional bool       `json:"provisional,omitempty"`
		Replies     []*Node    `json:"replies"`
	}{
		ID:          id,
		Text:        n.Text,
		ParentID:    n.ParentID,
		CreatedAt:   n.CreatedAt,
		Provisional: n.Kind == Provisional,
		Replies:     replies,
	})
}

// Build converts a flat comment sequence into a forest. Roots are ordered
// newest first; replies keep the order in which they appear in items. A
// comment whose parent is not in items is a root. Nodes caught in a parent
// cycle are cut loose and promoted to roots so every item appears exactly once.
func Build(items []Item) []*Node {
	nodes := make([]*Node, len(items))
	index := make(map[string]*Node, len(items))
	for i, it := range items {
		n := &Node{Item: it}
		nodes[i] = n
		index[it.Key()] = n
	}

	parentOf := make(map[*Node]*Node, len(items))
	roots := make([]*Node, 0, len(items))
	for _, n := range nodes {
		if n.ParentID != nil {
			if parent, ok := index[n.ParentID.String()]; ok && parent != n {
				parent.Replies = append(parent.Replies, n)
				parentOf[n] = parent
				continue
			}
		}
		roots = append(roots, n)
	}

	if reached := markReachable(roots, len(nodes)); len(reached) < len(nodes) {
		for _, n := range nodes {
			if reached[n] {
				continue
			}
			detach(parentOf[n], n)
			roots = append(roots, n)
			for k, v := range markReachable([]*Node{n}, 0) {
				reached[k] = v
			}
		}
	}

	sort.SliceStable(roots, func(i, j int) bool {
		return roots[i].CreatedAt.After(roots[j].CreatedAt)
	})
	return roots
}

func markReachable(from []*Node, sizeHint int) map[*Node]bool {
	seen := make(map[*Node]bool, sizeHint)
	stack := append([]*Node(nil), from...)
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if seen[n] {
			continue
		}
		seen[n] = true
		stack = append(stack, n.Replies...)
	}
	return seen
}

func detach(parent, child *Node) {
	if parent == nil {
		return
	}
	for i, r := range parent.Replies {
		if r == child {
			parent.Replies = append(parent.Replies[:i:i], parent.Replies[i+1:]...)
			return
		}
	}
}

// Walk visits every node depth first, roots in forest order.
func Walk(forest []*Node, fn func(n *Node, depth int)) {
	var visit func(nodes []*Node, depth int)
	visit = func(nodes []*Node, depth int) {
		for _, n := range nodes {
			fn(n, depth)
			visit(n.Replies, depth+1)
		}
	}
	visit(forest, 0)
}

// Count returns the number of nodes in the forest.
func Count(forest []*Node) int {
	total := 0
	Walk(forest, func(*Node, int) { total++ })
	return total
}
