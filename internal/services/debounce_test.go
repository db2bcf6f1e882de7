package services_test

import (
	"sync"
	"testing"
	"time"

	"moodbloom/internal/services"

	"github.com/stretchr/testify/assert"
)

func TestDebouncer_Schedule(t *testing.T) {
	t.Run("a burst runs only the last value, once", func(t *testing.T) {
		debouncer := services.NewDebouncer(30 * time.Millisecond)

		var mu sync.Mutex
		var ran []string
		record := func(value string) {
			mu.Lock()
			ran = append(ran, value)
			mu.Unlock()
		}

		debouncer.Schedule("username", "a", record)
		debouncer.Schedule("username", "al", record)
		debouncer.Schedule("username", "ali", record)
		debouncer.Schedule("username", "alice", record)

		time.Sleep(100 * time.Millisecond)

		mu.Lock()
		defer mu.Unlock()
		assert.Equal(t, []string{"alice"}, ran)
	})

	t.Run("keys are independent", func(t *testing.T) {
		debouncer := services.NewDebouncer(30 * time.Millisecond)

		var mu sync.Mutex
		ran := map[string]string{}
		recordFor := func(key string) func(string) {
			return func(value string) {
				mu.Lock()
				ran[key] = value
				mu.Unlock()
			}
		}

		debouncer.Schedule("email", "a@b.co", recordFor("email"))
		debouncer.Schedule("username", "alice", recordFor("username"))

		time.Sleep(100 * time.Millisecond)

		mu.Lock()
		defer mu.Unlock()
		assert.Equal(t, "a@b.co", ran["email"])
		assert.Equal(t, "alice", ran["username"])
	})
}

func TestDebouncer_StillCurrent(t *testing.T) {
	debouncer := services.NewDebouncer(10 * time.Millisecond)

	debouncer.Schedule("username", "alice", func(string) {})
	assert.True(t, debouncer.StillCurrent("username", "alice"))

	// A newer value supersedes the old one even before its timer fires.
	debouncer.Schedule("username", "alicia", func(string) {})
	assert.False(t, debouncer.StillCurrent("username", "alice"))
	assert.True(t, debouncer.StillCurrent("username", "alicia"))
}

func TestDebouncer_Cancel(t *testing.T) {
	debouncer := services.NewDebouncer(30 * time.Millisecond)

	var mu sync.Mutex
	fired := false
	debouncer.Schedule("username", "alice", func(string) {
		mu.Lock()
		fired = true
		mu.Unlock()
	})
	debouncer.Cancel("username")

	time.Sleep(100 * time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	assert.False(t, fired, "cancelled task must not run")
}

func TestNewDebouncer_DefaultDelay(t *testing.T) {
	// A non-positive delay must not panic or fire immediately.
	debouncer := services.NewDebouncer(0)

	var mu sync.Mutex
	fired := false
	debouncer.Schedule("k", "v", func(string) {
		mu.Lock()
		fired = true
		mu.Unlock()
	})

	time.Sleep(50 * time.Millisecond)
	mu.Lock()
	assert.False(t, fired, "default delay is long enough that nothing fires this quickly")
	mu.Unlock()

	debouncer.Cancel("k")
}
