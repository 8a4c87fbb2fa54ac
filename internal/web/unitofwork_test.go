package web_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/awesomefonts/foundry/internal/web"
)

func TestUnitOfWorkEmptyFlushIsNoOp(t *testing.T) {
	uow := web.NewUnitOfWork()
	require.NoError(t, uow.Flush(t.Context()))
	assert.Zero(t, uow.Len())
}

func TestUnitOfWorkDeduplicatesByKey(t *testing.T) {
	uow := web.NewUnitOfWork()

	saves := 0
	save := func(context.Context) error {
		saves++
		return nil
	}

	uow.Enqueue("session/1", save, nil)
	uow.Enqueue("session/1", save, nil)
	uow.Enqueue("user/1", save, nil)
	assert.Equal(t, 2, uow.Len())

	require.NoError(t, uow.Flush(t.Context()))
	assert.Equal(t, 2, saves)
	assert.Zero(t, uow.Len())
}

func TestUnitOfWorkPostWriteHooks(t *testing.T) {
	uow := web.NewUnitOfWork()

	var order []string
	uow.Enqueue("a", func(context.Context) error {
		order = append(order, "save-a")
		return nil
	}, func() {
		order = append(order, "hook-a")
	})
	uow.Enqueue("b", func(context.Context) error {
		order = append(order, "save-b")
		return nil
	}, func() {
		order = append(order, "hook-b")
	})

	require.NoError(t, uow.Flush(t.Context()))
	// hooks run after the whole batch has been written
	assert.Equal(t, []string{"save-a", "save-b", "hook-a", "hook-b"}, order)
}

func TestUnitOfWorkFlushErrorSkipsHook(t *testing.T) {
	uow := web.NewUnitOfWork()

	hookRan := false
	uow.Enqueue("broken", func(context.Context) error {
		return errors.New("write failed")
	}, func() {
		hookRan = true
	})
	uow.Enqueue("fine", func(context.Context) error {
		return nil
	}, nil)

	err := uow.Flush(t.Context())
	assert.Error(t, err)
	assert.False(t, hookRan)
	assert.Zero(t, uow.Len(), "the queue is cleared either way")
}

func TestUnitOfWorkRemove(t *testing.T) {
	uow := web.NewUnitOfWork()

	saves := 0
	uow.Enqueue("session/1", func(context.Context) error {
		saves++
		return nil
	}, nil)
	uow.Remove("session/1")
	uow.Remove("session/1") // removing twice is fine

	require.NoError(t, uow.Flush(t.Context()))
	assert.Zero(t, saves)
}
