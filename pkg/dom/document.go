package dom

import "fmt"

// Document is a page: a body element, an id index, a change journal and the
// alert notices raised since the last drain.
type Document struct {
	body   *Element
	byID   map[string]*Element
	dirty  []*Element
	seen   map[*Element]bool
	alerts []string
	err    error
}

// New returns an empty document with a body element.
func New() *Document {
	d := &Document{
		byID: make(map[string]*Element),
		seen: make(map[*Element]bool),
	}
	d.body = &Element{tag: "body", doc: d}
	return d
}

// Body returns the root element.
func (d *Document) Body() *Element { return d.body }

// Create returns a new detached element owned by the document.
// A non-empty id is indexed immediately; a duplicate id is recorded as the
// document error and the new element is left unindexed.
func (d *Document) Create(tag, id string, classes ...string) *Element {
	el := &Element{id: id, tag: tag, doc: d}
	for _, c := range classes {
		if c != "" && !el.HasClass(c) {
			el.classes = append(el.classes, c)
		}
	}
	if id == "" {
		return el
	}
	if _, exists := d.byID[id]; exists {
		if d.err == nil {
			d.err = fmt.Errorf("%w: %q", ErrDuplicateID, id)
		}
		return el
	}
	d.byID[id] = el
	return el
}

// Get returns the element with the given id, or nil.
func (d *Document) Get(id string) *Element {
	return d.byID[id]
}

// Lookup returns the element with the given id or ErrElementNotFound.
func (d *Document) Lookup(id string) (*Element, error) {
	if el, ok := d.byID[id]; ok {
		return el, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrElementNotFound, id)
}

// Err returns the first structural error recorded while building the document.
func (d *Document) Err() error { return d.err }

// Alert records a blocking notice for the user.
func (d *Document) Alert(message string) {
	d.alerts = append(d.alerts, message)
}

// Alerts drains the notices raised since the last call.
func (d *Document) Alerts() []string {
	out := d.alerts
	d.alerts = nil
	return out
}

// Flush drains the change journal. It returns the changed elements that have
// an id and no changed ancestor, in the order they first changed.
func (d *Document) Flush() []*Element {
	var out []*Element
	for _, el := range d.dirty {
		if !d.hasDirtyAncestor(el) {
			out = append(out, el)
		}
	}
	d.dirty = nil
	clear(d.seen)
	return out
}

func (d *Document) hasDirtyAncestor(el *Element) bool {
	for cur := el.parent; cur != nil; cur = cur.parent {
		if d.seen[cur] {
			return true
		}
	}
	return false
}

// record journals the nearest indexed ancestor-or-self of el.
func (d *Document) record(el *Element) {
	for cur := el; cur != nil; cur = cur.parent {
		if cur.id == "" || d.byID[cur.id] != cur {
			continue
		}
		if !d.seen[cur] {
			d.seen[cur] = true
			d.dirty = append(d.dirty, cur)
		}
		return
	}
}

// register indexes the ids of el's subtree. An id already held by another
// element is recorded as the document error.
func (d *Document) register(el *Element) {
	if el.id != "" {
		switch cur, ok := d.byID[el.id]; {
		case !ok:
			d.byID[el.id] = el
		case cur != el && d.err == nil:
			d.err = fmt.Errorf("%w: %q", ErrDuplicateID, el.id)
		}
	}
	for _, c := range el.children {
		d.register(c)
	}
}

func (d *Document) unregister(el *Element) {
	if el.id != "" && d.byID[el.id] == el {
		delete(d.byID, el.id)
	}
	for _, c := range el.children {
		d.unregister(c)
	}
}
