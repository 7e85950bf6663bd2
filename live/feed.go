// Package live fans accepted high scores out to websocket
// subscribers. The feed is push-only: inbound frames are read and
// discarded just to notice the peer going away.
package live

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/wfunc/spaceshooter/logger"
)

// Conn is the slice of a websocket connection the feed needs. It is
// satisfied by *websocket.Conn and by test doubles.
type Conn interface {
	WriteJSON(v interface{}) error
	WriteControl(messageType int, data []byte, deadline time.Time) error
	Close() error
}

const writeWait = 10 * time.Second

type subscriber struct {
	id        string
	conn      Conn
	sendMutex sync.Mutex
}

func (s *subscriber) send(v interface{}) error {
	s.sendMutex.Lock()
	defer s.sendMutex.Unlock()
	return s.conn.WriteJSON(v)
}

func (s *subscriber) ping() error {
	s.sendMutex.Lock()
	defer s.sendMutex.Unlock()
	return s.conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait))
}

// Feed is a mutex-guarded subscriber registry.
type Feed struct {
	subscribers map[string]*subscriber
	mutex       sync.RWMutex
}

func NewFeed() *Feed {
	return &Feed{
		subscribers: make(map[string]*subscriber),
	}
}

// Subscribe registers a connection and returns its subscription id.
func (f *Feed) Subscribe(conn Conn) string {
	id := uuid.New().String()

	f.mutex.Lock()
	defer f.mutex.Unlock()
	f.subscribers[id] = &subscriber{id: id, conn: conn}
	return id
}

// Unsubscribe drops a subscription and closes its connection. Unknown
// ids are ignored.
func (f *Feed) Unsubscribe(id string) {
	f.mutex.Lock()
	sub, exists := f.subscribers[id]
	if exists {
		delete(f.subscribers, id)
	}
	f.mutex.Unlock()

	if exists {
		sub.conn.Close()
	}
}

// Publish sends v as JSON to every subscriber. Subscribers whose
// writes fail are dropped.
func (f *Feed) Publish(v interface{}) {
	for _, sub := range f.snapshot() {
		if err := sub.send(v); err != nil {
			logger.Log.Infof("Dropping live subscriber %s: %v", sub.id, err)
			f.Unsubscribe(sub.id)
		}
	}
}

// Ping keeps idle connections open through intermediaries. Dead
// subscribers are dropped.
func (f *Feed) Ping() {
	for _, sub := range f.snapshot() {
		if err := sub.ping(); err != nil {
			logger.Log.Infof("Dropping live subscriber %s: %v", sub.id, err)
			f.Unsubscribe(sub.id)
		}
	}
}

// Count reports the current number of subscribers.
func (f *Feed) Count() int {
	f.mutex.RLock()
	defer f.mutex.RUnlock()
	return len(f.subscribers)
}

// Close drops every subscriber.
func (f *Feed) Close() {
	for _, sub := range f.snapshot() {
		f.Unsubscribe(sub.id)
	}
}

// snapshot returns a copy so Publish never writes while holding the
// registry lock.
func (f *Feed) snapshot() []*subscriber {
	f.mutex.RLock()
	defer f.mutex.RUnlock()

	subs := make([]*subscriber, 0, len(f.subscribers))
	for _, sub := range f.subscribers {
		subs = append(subs, sub)
	}
	return subs
}
