package bot

import (
	"sync"
	"testing"
	"time"

	"github.com/patrickmn/go-cache"
)

func newTestBot() *Bot {
	return &Bot{
		bindings: cache.New(time.Hour, time.Hour),
		stopChan: make(chan struct{}),
	}
}

func TestBindingMutationsStayLocalUntilWrittenBack(t *testing.T) {
	b := newTestBot()
	b.setBinding(7, binding{sessionID: "session-1"})

	bd, ok := b.getBinding(7)
	if !ok {
		t.Fatal("expected a binding")
	}
	bd.lastFormID = "form-1"

	cached, _ := b.getBinding(7)
	if cached.lastFormID != "" {
		t.Fatalf("mutation of a fetched copy leaked into the cache: %+v", cached)
	}

	b.setBinding(7, bd)
	cached, _ = b.getBinding(7)
	if cached.lastFormID != "form-1" {
		t.Fatalf("written-back binding lost the form ID: %+v", cached)
	}
}

func TestConcurrentBindingReadsAndWrites(t *testing.T) {
	b := newTestBot()
	b.setBinding(7, binding{sessionID: "session-1"})

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				bd, ok := b.getBinding(7)
				if !ok {
					continue
				}
				bd.lastFormID = "form-1"
				b.setBinding(7, bd)
			}
		}()
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				if bd, ok := b.getBinding(7); ok {
					_ = bd.lastFormID
				}
			}
		}()
	}
	wg.Wait()

	bd, ok := b.getBinding(7)
	if !ok || bd.sessionID != "session-1" {
		t.Fatalf("binding lost after concurrent access: %+v ok=%v", bd, ok)
	}
	if bd.lastFormID != "form-1" {
		t.Fatalf("expected last written form ID, got %+v", bd)
	}
}
