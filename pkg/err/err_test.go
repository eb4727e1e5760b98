package errprocess

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	err := New(KindNotFound, "bottle not found")
	assert.Equal(t, KindNotFound, KindOf(err))
	assert.True(t, IsKind(err, KindNotFound))
	assert.False(t, IsKind(err, KindValidation))
}

func TestKindOf_Untyped(t *testing.T) {
	assert.Equal(t, Kind(""), KindOf(errors.New("plain")))
	assert.Equal(t, Kind(""), KindOf(nil))
}

func TestWrap_PreservesCause(t *testing.T) {
	cause := errors.New("connection refused")
	err := Wrap(KindStorage, "failed to claim bottle", cause)

	assert.True(t, IsKind(err, KindStorage))
	assert.True(t, errors.Is(err, cause))
	assert.Contains(t, err.Error(), "failed to claim bottle")
	assert.Contains(t, err.Error(), "connection refused")
}

func TestKindOf_SurvivesFmtWrapping(t *testing.T) {
	err := fmt.Errorf("handler: %w", New(KindAlreadyClaimed, "this bottle has already been claimed"))
	assert.True(t, IsKind(err, KindAlreadyClaimed))
}

func TestNewf(t *testing.T) {
	err := Newf(KindValidation, "message must be at least %d characters", 10)
	assert.Equal(t, "message must be at least 10 characters", err.Error())
}
