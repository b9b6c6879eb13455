package storage

import "sync"

// Kind names the entity set an observer is interested in.
type Kind string

const (
	KindCategory Kind = "category"
	KindTracker  Kind = "tracker"
	KindRecord   Kind = "record"
)

// Observer is told that content of a kind changed. It carries no diff; the
// observer is expected to re-fetch.
type Observer func()

// Notifier fans committed changes out to observers. Stores embed it and call
// Notify after every successful commit. The zero value is ready to use.
type Notifier struct {
	mu        sync.Mutex
	nextID    int
	observers map[Kind]map[int]Observer
}

// Subscribe registers observer for kind and returns a function that removes it.
func (n *Notifier) Subscribe(kind Kind, observer Observer) func() {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.observers == nil {
		n.observers = make(map[Kind]map[int]Observer)
	}
	if n.observers[kind] == nil {
		n.observers[kind] = make(map[int]Observer)
	}
	id := n.nextID
	n.nextID++
	n.observers[kind][id] = observer

	return func() {
		n.mu.Lock()
		defer n.mu.Unlock()
		delete(n.observers[kind], id)
	}
}

// Notify runs every observer of the given kinds once, in subscription order.
// Observers are called without the lock held so they may re-enter the store.
func (n *Notifier) Notify(kinds ...Kind) {
	n.mu.Lock()
	var pending []Observer
	for _, kind := range kinds {
		for id := 0; id < n.nextID; id++ {
			if obs, ok := n.observers[kind][id]; ok {
				pending = append(pending, obs)
			}
		}
	}
	n.mu.Unlock()

	for _, obs := range pending {
		obs()
	}
}
