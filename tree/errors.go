// Copyright 2025 Naren Yellavula
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package tree

import "github.com/ansel1/merry"

var (
	// ErrDeleteUnsupported is returned by backends that do not implement key
	// removal (AVL and RBT).
	ErrDeleteUnsupported = merry.New("delete is not supported by this backend")

	// ErrUnknownBackend is returned by New for an unregistered backend name.
	ErrUnknownBackend = merry.New("unknown backend")

	// ErrInvariant is the root of every error reported by Validate.
	ErrInvariant = merry.New("tree invariant violated")
)

// violation builds an ErrInvariant carrying the offending key.
func violation(key int, format string, args ...interface{}) error {
	err := merry.WithMessagef(ErrInvariant, format, args...)
	return merry.WithValue(err, "key", key)
}

// ViolationKey returns the key attached to an invariant error, if any.
func ViolationKey(err error) (int, bool) {
	key, ok := merry.Value(err, "key").(int)
	return key, ok
}
