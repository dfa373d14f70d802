// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Ivan Volkov

// Package validators holds structural validation applied to vault data
// before it is persisted locally or shipped to the server.
package validators

import "context"

// Validator checks an object for structural integrity. Failures wrap
// [ErrValidation].
type Validator interface {
	Validate(ctx context.Context, obj any) error
}
