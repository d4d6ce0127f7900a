// Package share serializes the shareable view state into a URL query.
//
// # Token Format
//
// A birth date travels in the "date" parameter as base64 using the URL
// alphabet without padding, computed over the raw bytes of the ISO date:
//
//	share.Encode("2020-01-01") // "MjAyMC0wMS0wMQ"
//
// [Decode] additionally accepts the standard alphabet with padding, which is
// what a browser's btoa produces, so older links keep working. Decoding
// never panics: anything that is not reversible yields false.
//
// # Query Layout
//
// The language is written in clear text before the date:
//
//	?lang=de&date=MjAyMC0wMS0wMQ
//
// [ParseQuery] restores a [State]. Unknown languages are ignored and an
// undecodable or non-ISO date token is treated as if no date were present.
package share
