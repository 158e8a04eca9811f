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

package engine

import "time"

// dateTimeLayout renders a time.Time per the default rendering contract in
// spec.md §6: "YYYY-MM-DDTHH:MM:SS.ffffff±HH:MM" — six fractional digits,
// sign and two-digit offset components.
const dateTimeLayout = "2006-01-02T15:04:05.000000-07:00"

// renderDateTime implements the default date/time rendering contract.
func renderDateTime(t time.Time) string {
	return t.Format(dateTimeLayout)
}

// renderTimeZone implements the default time-zone rendering contract: the
// canonical zone name (e.g. "Europe/Paris").
func renderTimeZone(loc *time.Location) string {
	return loc.String()
}
