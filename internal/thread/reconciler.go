package thread

import (
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"lomba-poster/internal/domain"
)

var ErrEmptyText = errors.New("comment text is empty")

// Pending is the handle of one overlay entry. It is only meaningful to the
// Reconciler that issued it.
type Pending struct {
	LocalID   string
	Text      string
	ParentID  *uuid.UUID
	CreatedAt time.Time
}

func (p Pending) Item() Item {
	return Item{
		Kind:      Provisional,
		LocalID:   p.LocalID,
		Text:      p.Text,
		ParentID:  p.ParentID,
		CreatedAt: p.CreatedAt,
	}
}

// Reconciler keeps the last confirmed artwork snapshot and the provisional
// comments layered on top of it. It never talks to the store itself: callers
// apply an overlay, perform the store call, then Commit or Rollback.
type Reconciler struct {
	mu        sync.RWMutex
	confirmed domain.Artwork
	pending   []Pending

	forest []*Node
	fresh  bool

	now     func() time.Time
	localID func() string
}

func NewReconciler(confirmed domain.Artwork) *Reconciler {
	return &Reconciler{
		confirmed: confirmed.Clone(),
		now:       time.Now,
		localID:   uuid.NewString,
	}
}

// Apply layers a provisional comment over the confirmed state. Whitespace-only
// text is rejected and leaves the state untouched.
func (r *Reconciler) Apply(text string, parentID *uuid.UUID) (Pending, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Pending{}, ErrEmptyText
	}

	var parent *uuid.UUID
	if parentID != nil {
		id := *parentID
		parent = &id
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	p := Pending{
		LocalID:   r.localID(),
		Text:      text,
		ParentID:  parent,
		CreatedAt: r.now(),
	}
	r.pending = append(r.pending, p)
	r.fresh = false
	return p, nil
}

// Commit drops the overlay and adopts updated as the confirmed snapshot in
// full. Fields are never merged with the previous snapshot.
func (r *Reconciler) Commit(p Pending, updated domain.Artwork) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.drop(p.LocalID)
	r.confirmed = updated.Clone()
	r.fresh = false
}

// Rollback drops the overlay; the confirmed snapshot is left as it was.
func (r *Reconciler) Rollback(p Pending) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.drop(p.LocalID)
	r.fresh = false
}

// Reset replaces the confirmed snapshot with one supplied by the owning view.
// Outstanding overlays stay layered on top of it.
func (r *Reconciler) Reset(confirmed domain.Artwork) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.confirmed = confirmed.Clone()
	r.fresh = false
}

func (r *Reconciler) drop(localID string) {
	for i, p := range r.pending {
		if p.LocalID == localID {
			r.pending = append(r.pending[:i:i], r.pending[i+1:]...)
			return
		}
	}
}

func (r *Reconciler) Confirmed() domain.Artwork {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.confirmed.Clone()
}

// InFlight reports how many overlays are waiting for the store.
func (r *Reconciler) InFlight() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.pending)
}

// Comments returns the observed flat sequence: confirmed comments in stored
// order followed by overlays in the order they were applied.
func (r *Reconciler) Comments() []Item {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.items()
}

func (r *Reconciler) items() []Item {
	items := make([]Item, 0, len(r.confirmed.Comments)+len(r.pending))
	items = append(items, FromComments(r.confirmed.Comments)...)
	for _, p := range r.pending {
		items = append(items, p.Item())
	}
	return items
}

// Forest returns the observed sequence as a reply forest. The result is
// memoised until the next state change and must be treated as read-only.
func (r *Reconciler) Forest() []*Node {
	r.mu.RLock()
	if r.fresh {
		f := r.forest
		r.mu.RUnlock()
		return f
	}
	r.mu.RUnlock()

	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.fresh {
		r.forest = Build(r.items())
		r.fresh = true
	}
	return r.forest
}
