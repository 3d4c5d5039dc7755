package main

import (
	"net/http"
	"testing"

	"github.com/ruralpay/corebank/internal/handlers"
	"github.com/stretchr/testify/assert"
)

func TestNewServer(t *testing.T) {
	server := newServer("9090", http.NotFoundHandler())

	assert.Equal(t, ":9090", server.Addr)
	assert.Greater(t, server.WriteTimeout, handlers.RequestTimeout)
	assert.Greater(t, server.ReadTimeout, handlers.RequestTimeout)
}
