package store

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type counter struct {
	Names []string `json:"names"`
	Count int      `json:"count"`
	Extra string   `json:"extra"`
}

func counterConfig() Config[counter] {
	return Config[counter]{
		Name:    "counter",
		Default: func() counter { return counter{Extra: "default"} },
	}
}

func openCounter(t *testing.T, backend Backend) *Store[counter] {
	t.Helper()
	s, err := Open(context.Background(), backend, counterConfig())
	require.NoError(t, err)
	return s
}

func TestOpen_Validation(t *testing.T) {
	backend := NewMemoryBackend()
	ctx := context.Background()

	tests := []struct {
		name    string
		backend Backend
		cfg     Config[counter]
	}{
		{name: "nil backend", backend: nil, cfg: counterConfig()},
		{name: "missing name", backend: backend, cfg: Config[counter]{Default: counterConfig().Default}},
		{name: "missing default", backend: backend, cfg: Config[counter]{Name: "counter"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Open(ctx, tt.backend, tt.cfg)
			assert.Error(t, err)
		})
	}
}

func TestOpen_HydratesDefaultsWhenMissing(t *testing.T) {
	s := openCounter(t, NewMemoryBackend())
	assert.Equal(t, counter{Extra: "default"}, s.State())
	assert.Equal(t, "counter", s.Name())
}

func TestOpen_CorruptDocumentFallsBackToDefaults(t *testing.T) {
	backend := NewMemoryBackend()
	backend.Put("counter", []byte(`{"state": {"count": "not a number"`))

	s := openCounter(t, backend)
	assert.Equal(t, counter{Extra: "default"}, s.State())
}

func TestOpen_MissingFieldsKeepDefaults(t *testing.T) {
	backend := NewMemoryBackend()
	backend.Put("counter", []byte(`{"state":{"count":4},"version":0}`))

	s := openCounter(t, backend)
	assert.Equal(t, 4, s.State().Count)
	assert.Equal(t, "default", s.State().Extra)
}

func TestOpen_AppliesSanitize(t *testing.T) {
	backend := NewMemoryBackend()
	backend.Put("counter", []byte(`{"state":{"count":-3},"version":0}`))

	cfg := counterConfig()
	cfg.Sanitize = func(c counter) counter {
		c.Count = max(c.Count, 0)
		return c
	}

	s, err := Open(context.Background(), backend, cfg)
	require.NoError(t, err)
	assert.Equal(t, 0, s.State().Count)
}

func TestOpen_BackendErrorIsReturned(t *testing.T) {
	_, err := Open(context.Background(), failingLoader{}, counterConfig())
	assert.ErrorIs(t, err, errDiskGone)
}

var errDiskGone = errors.New("disk gone")

type failingLoader struct{}

func (failingLoader) Load(context.Context, string) ([]byte, error) { return nil, errDiskGone }
func (failingLoader) Save(context.Context, string, []byte) error   { return errDiskGone }

func TestStore_UpdatePersistsAndNotifies(t *testing.T) {
	backend := NewMemoryBackend()
	s := openCounter(t, backend)
	ctx := context.Background()

	var seen []int
	unsubscribe := s.Subscribe(func(c counter) { seen = append(seen, c.Count) })
	defer unsubscribe()

	require.NoError(t, s.Update(ctx, func(c counter) (counter, bool) {
		c.Count++
		return c, true
	}))

	assert.Equal(t, []int{1}, seen)
	assert.Equal(t, 1, backend.Saves())

	reopened := openCounter(t, backend)
	assert.Equal(t, 1, reopened.State().Count)
}

func TestStore_UnchangedUpdateIsNoop(t *testing.T) {
	backend := NewMemoryBackend()
	s := openCounter(t, backend)

	notified := false
	s.Subscribe(func(counter) { notified = true })

	require.NoError(t, s.Update(context.Background(), func(c counter) (counter, bool) {
		return c, false
	}))

	assert.False(t, notified)
	assert.Equal(t, 0, backend.Saves())
}

func TestStore_FailedSaveKeepsPreviousState(t *testing.T) {
	backend := NewMemoryBackend()
	s := openCounter(t, backend)
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, counter{Count: 1}))

	backend.SaveErr = errDiskGone
	notified := false
	s.Subscribe(func(counter) { notified = true })

	err := s.Set(ctx, counter{Count: 2})
	require.ErrorIs(t, err, errDiskGone)
	assert.Equal(t, 1, s.State().Count)
	assert.False(t, notified)
}

func TestStore_SubscribersRunInOrderAndUnsubscribe(t *testing.T) {
	s := openCounter(t, NewMemoryBackend())
	ctx := context.Background()

	var order []string
	unsubA := s.Subscribe(func(counter) { order = append(order, "a") })
	s.Subscribe(func(counter) { order = append(order, "b") })

	require.NoError(t, s.Set(ctx, counter{Count: 1}))
	assert.Equal(t, []string{"a", "b"}, order)

	unsubA()
	unsubA()
	order = nil

	require.NoError(t, s.Set(ctx, counter{Count: 2}))
	assert.Equal(t, []string{"b"}, order)
}

func TestStore_SubscriberMayReadState(t *testing.T) {
	s := openCounter(t, NewMemoryBackend())

	var observed int
	s.Subscribe(func(counter) { observed = s.State().Count })

	require.NoError(t, s.Set(context.Background(), counter{Count: 7}))
	assert.Equal(t, 7, observed)
}
