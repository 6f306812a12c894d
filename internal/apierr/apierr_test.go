package apierr

import (
	"context"
	"net"
	"net/url"
	"testing"

	"github.com/adshao/go-binance/v2/common"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"

	"github.com/vadiminshakov/earnwatch/config"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected Kind
	}{
		{name: "nil", err: nil, expected: ""},
		{name: "missing credentials", err: config.ErrMissingCredentials, expected: KindConfig},
		{name: "invalid config wrapped", err: errors.Wrap(config.ErrInvalidConfig, "bad"), expected: KindConfig},
		{name: "invalid api key", err: &common.APIError{Code: -2015, Message: "Invalid API-key"}, expected: KindAuth},
		{name: "bad signature wrapped", err: errors.Wrap(&common.APIError{Code: -1022}, "get positions"), expected: KindAuth},
		{name: "not authorized", err: &common.APIError{Code: -1002}, expected: KindPermission},
		{name: "rate limited", err: &common.APIError{Code: -1003}, expected: KindExchange},
		{name: "url error", err: errors.Wrap(&url.Error{Op: "Get", URL: "https://api.binance.com", Err: errors.New("connection refused")}, "list"), expected: KindNetwork},
		{name: "net op error", err: &net.OpError{Op: "dial", Err: errors.New("no route")}, expected: KindNetwork},
		{name: "deadline", err: errors.Wrap(context.DeadlineExceeded, "call"), expected: KindNetwork},
		{name: "generic", err: errors.New("boom"), expected: KindUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Classify(tt.err))
		})
	}
}

func TestKind_Message(t *testing.T) {
	for _, k := range []Kind{KindConfig, KindAuth, KindPermission, KindNetwork, KindExchange, KindUnknown} {
		assert.NotEmpty(t, k.Message(), string(k))
	}
	assert.Equal(t, KindUnknown.Message(), Kind("other").Message())
}
