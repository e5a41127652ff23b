// Package services wraps the read-mostly resource endpoints of the
// backend: activities, campaigns, nissab thresholds, notifications,
// statistics, transactions, zakats, newsletter and contact mail.
//
// Every wrapper follows the same contract: a direct JSON pass-through
// with defensive shape normalization (missing or malformed fields are
// coerced to safe defaults, tolerating backend schema drift) and an
// explicit message table translating transport failures into
// user-facing constants.
package services

import (
	"github.com/pkg/errors"

	"github.com/amane-app/amane-go/api"
)

// translate maps an api error onto the service's message table. The
// original error is kept in the chain for logs; the message is what the
// UI shows.
func translate(err error, unreachableMsg, unavailableMsg, fallbackMsg string) error {
	switch {
	case api.IsNetworkError(err):
		return errors.Wrap(err, unreachableMsg)
	case api.IsServerError(err):
		return errors.Wrap(err, unavailableMsg)
	default:
		return errors.Wrap(err, fallbackMsg)
	}
}
