package store

import "sync"

// Topics for cross-cutting tables. Partition changes use PartitionTopic.
const (
	TopicFavorites = "favorites"
	TopicSearches  = "search_history"
)

// PartitionTopic names the change topic for one cache partition.
func PartitionTopic(filterKey string) string {
	return "partition:" + filterKey
}

type subscription struct {
	id int
	ch chan struct{}
}

// Notifier is the publish-on-commit registry the store signals after every
// successful transaction. Subscribers get a capacity-1 channel, so bursts of
// commits coalesce into a single pending signal instead of backing up.
type Notifier struct {
	mu     sync.RWMutex
	topics map[string][]subscription
	nextID int
}

func NewNotifier() *Notifier {
	return &Notifier{topics: make(map[string][]subscription)}
}

// Subscribe registers for change signals on topic. The returned cancel
// function removes the registration; the channel is never closed.
func (n *Notifier) Subscribe(topic string) (<-chan struct{}, func()) {
	n.mu.Lock()
	defer n.mu.Unlock()

	n.nextID++
	sub := subscription{id: n.nextID, ch: make(chan struct{}, 1)}
	n.topics[topic] = append(n.topics[topic], sub)

	id := sub.id
	cancel := func() {
		n.mu.Lock()
		defer n.mu.Unlock()
		subs := n.topics[topic]
		for i, s := range subs {
			if s.id == id {
				n.topics[topic] = append(subs[:i], subs[i+1:]...)
				break
			}
		}
		if len(n.topics[topic]) == 0 {
			delete(n.topics, topic)
		}
	}
	return sub.ch, cancel
}

// Publish signals every subscriber of the given topics. Never blocks: a
// subscriber with a signal already pending is left as-is.
func (n *Notifier) Publish(topics ...string) {
	n.mu.RLock()
	defer n.mu.RUnlock()

	for _, topic := range topics {
		for _, sub := range n.topics[topic] {
			select {
			case sub.ch <- struct{}{}:
			default:
			}
		}
	}
}
