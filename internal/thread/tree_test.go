package thread

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lomba-poster/internal/domain"
)

var base = time.Date(2025, 8, 17, 10, 0, 0, 0, time.UTC)

func confirmed(id uuid.UUID, parent *uuid.UUID, at time.Time) Item {
	return Item{Kind: Confirmed, ID: id, ParentID: parent, Text: id.String()[:8], CreatedAt: at}
}

func ptr(id uuid.UUID) *uuid.UUID { return &id }

func ids(nodes []*Node) []uuid.UUID {
	out := make([]uuid.UUID, len(nodes))
	for i, n := range nodes {
		out[i] = n.ID
	}
	return out
}

func TestBuild_RootsNewestFirst(t *testing.T) {
	t1, t2, t3 := uuid.New(), uuid.New(), uuid.New()
	items := []Item{
		confirmed(t1, nil, base),                     // 10:00
		confirmed(t2, nil, base.Add(5*time.Minute)),  // 10:05
		confirmed(t3, nil, base.Add(-1*time.Hour)),   // 09:00
	}

	forest := Build(items)

	// strictly newest first: 10:05, 10:00, 09:00
	assert.Equal(t, []uuid.UUID{t2, t1, t3}, ids(forest))
	assert.NotEqual(t, []uuid.UUID{t2, t3, t1}, ids(forest))
}

func TestBuild_RepliesKeepArrivalOrder(t *testing.T) {
	root := uuid.New()
	late, early := uuid.New(), uuid.New()
	items := []Item{
		confirmed(root, nil, base),
		confirmed(late, ptr(root), base.Add(10*time.Minute)),
		confirmed(early, ptr(root), base.Add(1*time.Minute)),
	}

	forest := Build(items)

	require.Len(t, forest, 1)
	assert.Equal(t, []uuid.UUID{late, early}, ids(forest[0].Replies))
}

func TestBuild_NestsRecursively(t *testing.T) {
	// a
	// ├─ b
	// │  └─ c
	// └─ d
	a, b, c, d := uuid.New(), uuid.New(), uuid.New(), uuid.New()
	items := []Item{
		confirmed(a, nil, base),
		confirmed(b, ptr(a), base.Add(time.Minute)),
		confirmed(c, ptr(b), base.Add(2*time.Minute)),
		confirmed(d, ptr(a), base.Add(3*time.Minute)),
	}

	forest := Build(items)

	require.Len(t, forest, 1)
	assert.Equal(t, a, forest[0].ID)
	assert.Equal(t, []uuid.UUID{b, d}, ids(forest[0].Replies))
	assert.Equal(t, []uuid.UUID{c}, ids(forest[0].Replies[0].Replies))
	assert.Empty(t, forest[0].Replies[1].Replies)
}

func TestBuild_ChildBeforeParentInInput(t *testing.T) {
	parent, child := uuid.New(), uuid.New()
	items := []Item{
		confirmed(child, ptr(parent), base.Add(time.Minute)),
		confirmed(parent, nil, base),
	}

	forest := Build(items)

	require.Len(t, forest, 1)
	assert.Equal(t, parent, forest[0].ID)
	assert.Equal(t, []uuid.UUID{child}, ids(forest[0].Replies))
}

func TestBuild_OrphanBecomesRoot(t *testing.T) {
	root, orphan := uuid.New(), uuid.New()
	items := []Item{
		confirmed(root, nil, base),
		confirmed(orphan, ptr(uuid.New()), base.Add(time.Minute)),
	}

	forest := Build(items)

	assert.Equal(t, []uuid.UUID{orphan, root}, ids(forest))
}

func TestBuild_EveryItemExactlyOnce(t *testing.T) {
	var items []Item
	var all []uuid.UUID
	for i := 0; i < 40; i++ {
		id := uuid.New()
		var parent *uuid.UUID
		switch {
		case i%5 == 0:
		case i%7 == 0:
			parent = ptr(uuid.New())
		default:
			parent = ptr(all[i/2])
		}
		items = append(items, confirmed(id, parent, base.Add(time.Duration(i)*time.Second)))
		all = append(all, id)
	}

	forest := Build(items)

	seen := map[uuid.UUID]int{}
	Walk(forest, func(n *Node, _ int) { seen[n.ID]++ })
	assert.Len(t, seen, len(all))
	for _, id := range all {
		assert.Equal(t, 1, seen[id], "comment %s", id)
	}
	assert.Equal(t, len(items), Count(forest))
}

func TestBuild_CycleIsBroken(t *testing.T) {
	a, b, c := uuid.New(), uuid.New(), uuid.New()
	items := []Item{
		confirmed(a, ptr(b), base),
		confirmed(b, ptr(a), base.Add(time.Minute)),
		confirmed(c, ptr(c), base.Add(2*time.Minute)),
	}

	forest := Build(items)

	assert.Equal(t, 3, Count(forest))
	assert.Equal(t, []uuid.UUID{c, a}, ids(forest))
	assert.Equal(t, []uuid.UUID{b}, ids(forest[1].Replies))
}

func TestBuild_ProvisionalNeverAdoptsChildren(t *testing.T) {
	root := uuid.New()
	local := Item{Kind: Provisional, LocalID: root.String(), Text: "Bagus!", CreatedAt: base.Add(time.Hour)}
	reply := confirmed(uuid.New(), ptr(root), base.Add(2*time.Hour))

	forest := Build([]Item{local, reply})

	assert.Len(t, forest, 2)
	for _, n := range forest {
		assert.Empty(t, n.Replies)
	}
}

func TestBuild_Idempotent(t *testing.T) {
	a, b, c := uuid.New(), uuid.New(), uuid.New()
	items := []Item{
		confirmed(a, nil, base),
		confirmed(b, ptr(a), base.Add(time.Minute)),
		confirmed(c, nil, base.Add(2*time.Minute)),
	}

	first := Build(items)
	second := Build(items)

	assert.Equal(t, first, second)
}

func TestBuild_Empty(t *testing.T) {
	assert.Empty(t, Build(nil))
}

func TestFromComments(t *testing.T) {
	parent := uuid.New()
	c := domain.Comment{ID: uuid.New(), ArtworkID: uuid.New(), ParentID: &parent, Text: "Keren", CreatedAt: base}

	items := FromComments([]domain.Comment{c})

	require.Len(t, items, 1)
	assert.Equal(t, Confirmed, items[0].Kind)
	assert.Equal(t, c.ID, items[0].ID)
	assert.Equal(t, c.ID.String(), items[0].Key())
	assert.Equal(t, &parent, items[0].ParentID)
}

func TestNode_MarshalJSON(t *testing.T) {
	root := uuid.New()
	forest := Build([]Item{
		confirmed(root, nil, base),
		{Kind: Provisional, LocalID: "tmp1", Text: "Bagus!", ParentID: ptr(root), CreatedAt: base.Add(time.Minute)},
	})

	raw, err := json.Marshal(forest)
	require.NoError(t, err)

	var decoded []map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &decoded))
	require.Len(t, decoded, 1)
	assert.Equal(t, root.String(), decoded[0]["id"])
	assert.NotContains(t, decoded[0], "provisional")

	replies := decoded[0]["replies"].([]interface{})
	require.Len(t, replies, 1)
	reply := replies[0].(map[string]interface{})
	assert.Equal(t, "local:tmp1", reply["id"])
	assert.Equal(t, true, reply["provisional"])
	assert.Equal(t, []interface{}{}, reply["replies"])
}
