package config

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorMessage(t *testing.T) {
	tests := []struct {
		err  *Error
		want string
	}{
		{&Error{Kind: KindInvalid, Message: "bad"}, "bad"},
		{&Error{Kind: KindInvalid, Path: "p.yaml", Message: "bad"}, "p.yaml: bad"},
		{&Error{Kind: KindInvalid, Path: "p.yaml", Line: 4, Selector: "0", Message: "bad"}, "p.yaml:4: key '0': bad"},
		{&Error{Kind: KindInvalid, Line: 4, Message: "bad"}, "line 4: bad"},
		{&Error{Kind: KindParse, Err: errors.New("boom")}, "boom"},
		{&Error{Kind: KindParse}, "config_parse"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.err.Error())
	}
}

func TestKindOf(t *testing.T) {
	err := fmt.Errorf("loading: %w", &Error{Kind: KindPathNotFound})
	assert.Equal(t, KindPathNotFound, KindOf(err))
	assert.Equal(t, Kind(""), KindOf(errors.New("other")))
	assert.Equal(t, Kind(""), KindOf(nil))
}

func TestRecoverable(t *testing.T) {
	assert.True(t, (&Error{Kind: KindNotFound}).Recoverable())
	assert.True(t, (&Error{Kind: KindInvalid}).Recoverable())
	assert.True(t, (&Error{Kind: KindInvalidSelector}).Recoverable())
	assert.True(t, (&Error{Kind: KindPathNotFound}).Recoverable())
	assert.False(t, (&Error{Kind: KindParse}).Recoverable())
}

func TestSuggestion(t *testing.T) {
	assert.Contains(t, (&Error{Kind: KindNotFound}).Suggestion(), "deck-profile init")
	assert.Contains(t, (&Error{Kind: KindPathNotFound}).Suggestion(), ".webp")
	assert.Equal(t, "", (&Error{Kind: "other"}).Suggestion())
}
