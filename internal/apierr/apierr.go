// Package apierr sorts run failures into the categories reported to the user.
package apierr

import (
	"context"
	"net"
	"net/url"

	"github.com/adshao/go-binance/v2/common"
	"github.com/pkg/errors"

	"github.com/vadiminshakov/earnwatch/config"
)

// Kind failure category.
type Kind string

const (
	KindConfig     Kind = "config"
	KindAuth       Kind = "auth"
	KindPermission Kind = "permission"
	KindNetwork    Kind = "network"
	KindExchange   Kind = "exchange"
	KindUnknown    Kind = "unknown"
)

// binance error codes, see https://developers.binance.com/docs/binance-spot-api-docs/errors
var (
	authCodes = map[int64]struct{}{
		-1022: {}, // invalid signature
		-2008: {}, // invalid api-key id
		-2014: {}, // api-key format invalid
		-2015: {}, // invalid api-key, ip, or permissions for action
	}
	permissionCodes = map[int64]struct{}{
		-1002: {}, // not authorized to execute this request
	}
)

// Classify returns the category of err. A nil error has no category.
func Classify(err error) Kind {
	if err == nil {
		return ""
	}

	if errors.Is(err, config.ErrMissingCredentials) || errors.Is(err, config.ErrInvalidConfig) {
		return KindConfig
	}

	var apiErr *common.APIError
	if errors.As(err, &apiErr) {
		if _, ok := authCodes[apiErr.Code]; ok {
			return KindAuth
		}
		if _, ok := permissionCodes[apiErr.Code]; ok {
			return KindPermission
		}
		return KindExchange
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return KindNetwork
	}
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return KindNetwork
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return KindNetwork
	}

	return KindUnknown
}

// Message user-facing description of the category.
func (k Kind) Message() string {
	switch k {
	case KindConfig:
		return "configuration error"
	case KindAuth:
		return "authentication failed, check the API key and secret"
	case KindPermission:
		return "permission denied, check the API key permissions"
	case KindNetwork:
		return "network error"
	case KindExchange:
		return "exchange error"
	default:
		return "unexpected error"
	}
}
