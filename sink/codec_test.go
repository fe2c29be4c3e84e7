package sink

import (
	"errors"
	"sync"
	"testing"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	errspkg "github.com/drblury/streamlatch/internal/errors"
)

type recordingByteSink struct {
	mu        sync.Mutex
	payloads  [][]byte
	errs      []error
	completes int
}

func (r *recordingByteSink) AcceptNext(payload []byte) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.payloads = append(r.payloads, payload)
}

func (r *recordingByteSink) AcceptError(err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.errs = append(r.errs, err)
}

func (r *recordingByteSink) AcceptComplete() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.completes++
}

func TestEncodedSinkEncodesValues(t *testing.T) {
	inner := &recordingByteSink{}
	s, err := NewEncodedSink(inner, JSONEncoder[map[string]int](), watermill.NopLogger{})
	require.NoError(t, err)

	s.AcceptNext(map[string]int{"v": 1})
	boom := errors.New("boom")
	s.AcceptError(boom)
	s.AcceptComplete()

	require.Len(t, inner.payloads, 1)
	assert.JSONEq(t, `{"v":1}`, string(inner.payloads[0]))
	require.Len(t, inner.errs, 1)
	assert.ErrorIs(t, inner.errs[0], boom)
	assert.Equal(t, 1, inner.completes)
}

func TestEncodedSinkSkipsUnencodableValues(t *testing.T) {
	inner := &recordingByteSink{}
	failing := func(value string) ([]byte, error) {
		return nil, errors.New("cannot encode")
	}
	s, err := NewEncodedSink[string](inner, failing, nil)
	require.NoError(t, err)

	assert.NotPanics(t, func() { s.AcceptNext("x") })
	assert.Empty(t, inner.payloads)
}

func TestNewEncodedSinkRequiresEncoder(t *testing.T) {
	_, err := NewEncodedSink[string](&recordingByteSink{}, nil, nil)
	assert.ErrorIs(t, err, errspkg.ErrEncoderRequired)
}

func TestNewEncodedSinkRequiresInnerSink(t *testing.T) {
	_, err := NewEncodedSink[string](nil, JSONEncoder[string](), nil)
	assert.ErrorIs(t, err, errspkg.ErrSinkRequired)
}

func TestJSONEncoderRejectsUnsupportedTypes(t *testing.T) {
	enc := JSONEncoder[chan int]()
	_, err := enc(make(chan int))
	assert.Error(t, err)
}
