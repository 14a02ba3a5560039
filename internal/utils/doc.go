// Package utils holds the low-level helpers behind the lpp client: the JSON
// POST round-trip used for every parse call ([DoPostJSON]), lenient decoding
// of error bodies ([NormalizeJSON]), body-close logging and string
// truncation for log output.
package utils
