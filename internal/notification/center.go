package notification

import (
	"errors"
	"github.com/ZilDuck/nft-test-market/internal/entity"
	"github.com/patrickmn/go-cache"
	"go.uber.org/zap"
	"sort"
	"sync/atomic"
	"time"
)

var (
	ErrNotificationNotFound = errors.New("notification not found")
)

type Center interface {
	Success(message, description string) entity.Notification
	Error(message, description string) entity.Notification
	All() []entity.Notification
	Dismiss(id string) error
}

type center struct {
	cache *cache.Cache
	seq   *uint64
}

type item struct {
	notification entity.Notification
	seq          uint64
}

// NewCenter keeps notifications for ttl. A ttl below one second keeps them until dismissed.
func NewCenter(ttl time.Duration) Center {
	if ttl < time.Second {
		return center{cache.New(cache.NoExpiration, 0), new(uint64)}
	}

	return center{cache.New(ttl, 2*ttl), new(uint64)}
}

func (c center) store(n entity.Notification) {
	c.cache.Set(n.ID, item{n, atomic.AddUint64(c.seq, 1)}, cache.DefaultExpiration)
}

func (c center) Success(message, description string) entity.Notification {
	n := entity.NewNotification(entity.SuccessNotification, message, description)
	c.store(n)

	zap.L().With(zap.String("id", n.ID), zap.String("description", description)).Info(message)

	return n
}

func (c center) Error(message, description string) entity.Notification {
	n := entity.NewNotification(entity.ErrorNotification, message, description)
	c.store(n)

	zap.L().With(zap.String("id", n.ID), zap.String("description", description)).Warn(message)

	return n
}

func (c center) All() []entity.Notification {
	items := c.cache.Items()

	stored := make([]item, 0, len(items))
	for _, cached := range items {
		stored = append(stored, cached.Object.(item))
	}
	sort.Slice(stored, func(i, j int) bool {
		return stored[i].seq < stored[j].seq
	})

	notifications := make([]entity.Notification, 0, len(stored))
	for _, i := range stored {
		notifications = append(notifications, i.notification)
	}

	return notifications
}

func (c center) Dismiss(id string) error {
	if _, found := c.cache.Get(id); !found {
		return ErrNotificationNotFound
	}
	c.cache.Delete(id)

	return nil
}
