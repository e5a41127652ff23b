package api_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/amane-app/amane-go/api"
)

func TestSignalDeliversToCurrentListener(t *testing.T) {
	s := api.NewSignal()

	var got int
	s.SetListener(func() { got++ })
	s.Notify()
	s.Notify()
	require.Equal(t, 2, got)
}

func TestSignalIsLostWithoutListener(t *testing.T) {
	s := api.NewSignal()
	s.Notify() // nobody registered, nothing queued

	var got int
	s.SetListener(func() { got++ })
	require.Equal(t, 0, got, "earlier signal must not be replayed")
}

func TestSignalReplacesListener(t *testing.T) {
	s := api.NewSignal()

	var first, second int
	s.SetListener(func() { first++ })
	s.SetListener(func() { second++ })
	s.Notify()
	require.Equal(t, 0, first)
	require.Equal(t, 1, second)

	s.ClearListener()
	s.Notify()
	require.Equal(t, 1, second)
}
