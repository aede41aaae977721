package database

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestOptionsDefaults(t *testing.T) {
	got := Options{}.withDefaults()
	assert.Equal(t, 25, got.MaxOpenConns)
	assert.Equal(t, 5, got.MaxIdleConns)
	assert.Equal(t, 5*time.Second, got.PingTimeout)
	assert.Zero(t, got.ConnMaxLifetime)
}

func TestOptionsConfiguredValuesKept(t *testing.T) {
	opts := Options{
		MaxOpenConns:    50,
		MaxIdleConns:    10,
		ConnMaxLifetime: 30 * time.Minute,
		PingTimeout:     time.Second,
	}
	assert.Equal(t, opts, opts.withDefaults())
}
