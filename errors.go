// Copyright (c) 2025 OISF
// SPDX-License-Identifier: MIT

package radix

import "errors"

// ErrInvalidKey is returned when a key's bit length is zero, not a
// multiple of eight, or the key stream is too short for the claimed bit
// length.
var ErrInvalidKey = errors.New("radix: invalid key")

// ErrOutOfMemory is returned in place of the original C implementation's
// fatal process exit on allocation failure. Go's allocator does not
// return allocation errors to callers; this sentinel exists for API
// completeness and is not expected to surface in practice.
var ErrOutOfMemory = errors.New("radix: out of memory")
