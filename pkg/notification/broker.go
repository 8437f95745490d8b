package notification

import (
	"sync"

	"github.com/sitegrid/fm-manager/pkg/model"
	"golang.org/x/exp/maps"
)

func NewBroker() *Broker {
	return &Broker{
		subscribers: make(map[uint]subscriber),
	}
}

// Broker pushes freshly created notifications to connected recipients. Losing
// a message because the recipient is not subscribed is fine, the notification
// is persisted either way.
type Broker struct {
	subscribers map[uint]subscriber
	lock        sync.Mutex
}

type subscriber struct {
	user    model.User
	channel chan model.Notification
}

func (b *Broker) Subscribe(user model.User) {
	b.lock.Lock()
	defer b.lock.Unlock()
	b.subscribers[user.ID] = subscriber{
		user:    user,
		channel: make(chan model.Notification, 16),
	}
}

func (b *Broker) Unsubscribe(id uint) {
	b.lock.Lock()
	defer b.lock.Unlock()
	if s, ok := b.subscribers[id]; ok {
		close(s.channel)
		delete(b.subscribers, id)
	}
}

func (b *Broker) Subscribers() []model.User {
	b.lock.Lock()
	defer b.lock.Unlock()
	keys := maps.Keys(b.subscribers)
	subscribers := make([]model.User, len(keys))
	for i, key := range keys {
		subscribers[i] = b.subscribers[key].user
	}
	return subscribers
}

// Send delivers to the recipient if they are subscribed and their channel has
// room; it never blocks the caller.
func (b *Broker) Send(id uint, notification model.Notification) bool {
	b.lock.Lock()
	defer b.lock.Unlock()
	s, ok := b.subscribers[id]
	if !ok {
		return false
	}
	select {
	case s.channel <- notification:
		return true
	default:
		return false
	}
}

func (b *Broker) Receive(id uint) (model.Notification, bool) {
	b.lock.Lock()
	s, ok := b.subscribers[id]
	b.lock.Unlock()
	if !ok {
		return model.Notification{}, false
	}
	notification, ok := <-s.channel
	return notification, ok
}
