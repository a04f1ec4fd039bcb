package paramguard

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

type mockDecrypter struct {
	mock.Mock
}

func (m *mockDecrypter) SafeDecryptFromURL(token string) (string, bool) {
	args := m.Called(token)
	return args.String(0), args.Bool(1)
}

func newObservedGuard(d Decrypter) (*Guard, *observer.ObservedLogs) {
	core, logs := observer.New(zapcore.DebugLevel)
	return New(d, zap.New(core)), logs
}

func TestGuard_Require_Success(t *testing.T) {
	d := new(mockDecrypter)
	d.On("SafeDecryptFromURL", "tok-a").Return("1", true)
	d.On("SafeDecryptFromURL", "tok-b").Return("2", true)

	g, logs := newObservedGuard(d)

	values, err := g.Require(Params{"order": "tok-a", "result": " tok-b "}, "order", "result")

	require.NoError(t, err)
	assert.Equal(t, map[string]string{"order": "1", "result": "2"}, values)
	assert.Equal(t, 0, logs.Len())
	d.AssertExpectations(t)
}

func TestGuard_Require_MissingParamSkipsDecode(t *testing.T) {
	tests := []struct {
		name   string
		params Params
	}{
		{name: "absent", params: Params{}},
		{name: "blank", params: Params{"id": "   "}},
		{name: "nil params", params: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := new(mockDecrypter)
			g, logs := newObservedGuard(d)

			values, err := g.Require(tt.params, "id")

			assert.Nil(t, values)
			assert.True(t, errors.Is(err, ErrNotFound))

			var nf *NotFoundError
			require.True(t, errors.As(err, &nf))
			assert.Equal(t, ReasonMissing, nf.Reason)
			assert.Equal(t, "id", nf.Param)

			d.AssertNotCalled(t, "SafeDecryptFromURL", mock.Anything)
			require.Equal(t, 1, logs.Len())
			assert.Equal(t, "Missing route parameter", logs.All()[0].Message)
		})
	}
}

func TestGuard_Require_MissingSecondParamSkipsAllDecodes(t *testing.T) {
	d := new(mockDecrypter)
	g, _ := newObservedGuard(d)

	_, err := g.Require(Params{"a": "tok"}, "a", "b")

	assert.ErrorIs(t, err, ErrNotFound)
	d.AssertNotCalled(t, "SafeDecryptFromURL", mock.Anything)
}

func TestGuard_Require_DecodeFailureLogsToken(t *testing.T) {
	d := new(mockDecrypter)
	d.On("SafeDecryptFromURL", "garbage").Return("", false)

	g, logs := newObservedGuard(d)

	value, err := g.RequireOne(Params{"id": "garbage"}, "id")

	assert.Empty(t, value)
	assert.ErrorIs(t, err, ErrNotFound)

	var nf *NotFoundError
	require.True(t, errors.As(err, &nf))
	assert.Equal(t, ReasonDecode, nf.Reason)

	entries := logs.FilterMessage("Failed to decrypt route parameter").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "garbage", entries[0].ContextMap()["encrypted"])
	d.AssertExpectations(t)
}
