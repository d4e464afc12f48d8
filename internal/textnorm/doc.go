// Package textnorm derives canonical comparison keys from raw titles and
// computes string similarity between them.
//
// Normalize collapses the two naming systems in play (Cyrillic Crimean Tatar
// and Latin-script renderings, with or without the special letters ı ğ ç ş ö
// ü ñ â) into a single ASCII key space. The final alphabet is deliberately
// plain ASCII: after transliteration the Crimean Tatar Latin letters are
// folded via NFKD decomposition and combining-mark removal, so "Бағъчаларда",
// "Bağçalarda" and "Bagcalarda" all produce the same key.
//
// Similarity implements the Ratcliff/Obershelp longest-matching-blocks ratio,
// matching the scoring behavior the engine's thresholds were tuned against.
package textnorm
