// Package translit converts Cyrillic Crimean Tatar text to its Latin-script
// equivalent using a fixed substitution table.
//
// The table covers the standard Crimean Tatar Cyrillic alphabet including the
// digraphs гъ, къ, нъ and дж, which map to single Latin letters (ğ, q, ñ, c).
// Digraphs are always substituted before the single letters that prefix them,
// so "къара" becomes "qara" rather than "kara" with a stray hard sign.
//
// Transliteration is deterministic and total: runes without a table entry pass
// through unchanged.
package translit
