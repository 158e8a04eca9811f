/*
 * Copyright 2026 The Normalize Authors.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package types

// EnumValue is implemented by Go values that represent a variant of a
// declared enumeration, since Go has no native enum type. A pure enum
// returns ok=false from both backing accessors; a string-backed enum
// returns ok=true from EnumBackingString; an int-backed enum returns
// ok=true from EnumBackingInt. The default rendering rule in spec.md §6
// picks among VariantName, the string backing, or the int backing
// accordingly.
type EnumValue interface {
	EnumIdentity() EnumIdentity
	VariantName() string
	EnumBackingString() (string, bool)
	EnumBackingInt() (int64, bool)
}
