package nonce_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/awesomefonts/foundry/internal/nonce"
)

func TestLoginCode(t *testing.T) {
	var src nonce.Source

	code := src.LoginCode()
	assert.Len(t, code, 40)
	assert.NotEqual(t, code, src.LoginCode())
}

func TestSessionID(t *testing.T) {
	var src nonce.Source

	id := src.SessionID()
	assert.Len(t, id, 32)
	assert.NotEqual(t, id, src.SessionID())
}
