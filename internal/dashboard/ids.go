package dashboard

import "strconv"

// RootItemID is the item id of the document root.
const RootItemID = "d0"

// firstItemID is the first number handed out by an IDAllocator. d1-d4 are
// never used.
const firstItemID = 5

// IDAllocator hands out structural item ids ("d5", "d6", ...). Use one per
// build; it is not safe for concurrent use.
type IDAllocator struct {
	next int
}

// NewIDAllocator returns an allocator whose first id is d5.
func NewIDAllocator() *IDAllocator {
	return &IDAllocator{next: firstItemID}
}

// Next returns a new id, never repeating one.
func (a *IDAllocator) Next() string {
	id := "d" + strconv.Itoa(a.next)
	a.next++
	return id
}
