package events

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAsyncDispatcherRunsAfterCallerCancels(t *testing.T) {
	var handled atomic.Int32
	release := make(chan struct{})
	d := NewAsyncDispatcher(HandlerFunc(func(ctx context.Context, evt Event) error {
		<-release
		if ctx.Err() == nil {
			handled.Add(1)
		}
		return nil
	}), time.Second)

	ctx, cancel := context.WithCancel(context.Background())
	d.Dispatch(ctx, Event{Type: TypeInvitationSent})
	cancel()
	close(release)
	d.Wait()

	assert.Equal(t, int32(1), handled.Load())
}

func TestAsyncDispatcherSwallowsFailuresAndPanics(t *testing.T) {
	var calls atomic.Int32
	d := NewAsyncDispatcher(HandlerFunc(func(ctx context.Context, evt Event) error {
		calls.Add(1)
		if evt.Type == TypeMemberAdded {
			panic("mailer exploded")
		}
		return errors.New("smtp down")
	}), time.Second)

	assert.NotPanics(t, func() {
		d.Dispatch(context.Background(), Event{Type: TypeInvitationSent})
		d.Dispatch(context.Background(), Event{Type: TypeMemberAdded})
		d.Wait()
	})
	assert.Equal(t, int32(2), calls.Load())
}

func TestAsyncDispatcherAppliesTimeout(t *testing.T) {
	deadlineSet := make(chan bool, 1)
	d := NewAsyncDispatcher(HandlerFunc(func(ctx context.Context, evt Event) error {
		_, ok := ctx.Deadline()
		deadlineSet <- ok
		return nil
	}), 50*time.Millisecond)

	d.Dispatch(context.Background(), Event{Type: TypeInvitationSent})
	d.Wait()

	require.Len(t, deadlineSet, 1)
	assert.True(t, <-deadlineSet)
}
