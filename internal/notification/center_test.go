package notification

import (
	"errors"
	"github.com/ZilDuck/nft-test-market/internal/entity"
	"testing"
	"time"
)

func TestCenterKeepsNotificationsInOrder(t *testing.T) {
	c := NewCenter(0)

	first := c.Error("Can not auth", "Wallet provider is not found, install it")
	second := c.Success("Purchase success", "Transaction hash: 0xabc")

	all := c.All()
	if len(all) != 2 {
		t.Fatalf("expected 2 notifications, got %d", len(all))
	}
	if all[0].ID != first.ID || all[1].ID != second.ID {
		t.Errorf("notifications out of order: %v", all)
	}
	if !all[0].IsError() || all[0].Type != entity.ErrorNotification {
		t.Errorf("expected an error notification, got %s", all[0].Type)
	}
	if all[1].Type != entity.SuccessNotification || all[1].Description != "Transaction hash: 0xabc" {
		t.Errorf("unexpected success notification %+v", all[1])
	}
}

func TestDismiss(t *testing.T) {
	c := NewCenter(0)
	n := c.Success("Purchase success", "Transaction hash: 0x1")

	if err := c.Dismiss(n.ID); err != nil {
		t.Fatalf("dismiss failed: %v", err)
	}
	if len(c.All()) != 0 {
		t.Error("notification still listed after dismiss")
	}
	if err := c.Dismiss(n.ID); !errors.Is(err, ErrNotificationNotFound) {
		t.Errorf("expected ErrNotificationNotFound, got %v", err)
	}
}

func TestNotificationsExpire(t *testing.T) {
	c := NewCenter(time.Second)
	c.Error("Purchase fail", "order not found")

	if len(c.All()) != 1 {
		t.Fatal("expected the notification to be listed before it expires")
	}

	time.Sleep(1100 * time.Millisecond)

	if len(c.All()) != 0 {
		t.Error("expected the notification to expire")
	}
}
