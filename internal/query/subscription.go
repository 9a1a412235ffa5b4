package query

import "time"

// Subscription is a consumer's standing interest in a key prefix. The cache
// signals it whenever data under the prefix is invalidated or refreshed, and
// while active it pins matching entries past the retention window.
type Subscription struct {
	client *Client
	prefix Key
	ch     chan struct{}
	id     int64
}

// Subscribe registers interest in every key under prefix. The returned
// subscription's channel receives a signal (coalesced, buffer of one) after
// each invalidation or background refresh touching the prefix.
func (c *Client) Subscribe(prefix Key) *Subscription {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.nextSub++
	sub := &Subscription{
		client: c,
		prefix: prefix,
		ch:     make(chan struct{}, 1),
		id:     c.nextSub,
	}
	c.subs[sub.id] = sub
	return sub
}

// C returns the notification channel.
func (s *Subscription) C() <-chan struct{} {
	return s.ch
}

// Unsubscribe removes the subscription. Entries it pinned become eligible
// for eviction once the retention window passes.
func (s *Subscription) Unsubscribe() {
	c := s.client
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.subs, s.id)

	// Restart the retention clock for entries this subscriber was keeping
	// alive, so "idle since last consumer" is measured from now.
	now := time.Now()
	for _, e := range c.entries {
		if e.key.HasPrefix(s.prefix) && e.lastAccess.Before(now) {
			e.lastAccess = now
		}
	}
}

// notifySubscribersLocked signals every subscription whose prefix overlaps
// the given key: subscribers at or below the key's subtree, and subscribers
// to broader prefixes containing it. Callers must hold c.mu.
func notifySubscribersLocked(c *Client, key Key) {
	for _, sub := range c.subs {
		if sub.prefix.HasPrefix(key) || key.HasPrefix(sub.prefix) {
			select {
			case sub.ch <- struct{}{}:
			default:
				// Signal already pending; notifications coalesce.
			}
		}
	}
}
