// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package exercises holds the business rules for exercise lists and scoring.

ListService validates input and enforces owner scoping before handing work to
a ListRepository. Entries keep the ordinal they were given when added:
appending continues from the highest existing ordinal and removal leaves gaps.

Scorer grades a batch of submissions against the stored answer keys and
reports the correct count, the total and a whole-number percentage rounded
half up.
*/
package exercises
