// Package validate runs configured data validators against converted
// datasets. Validators are resolved by name from a registry; the built-in
// set covers presence, numeric ranges, string and array lengths, regular
// expression patterns, enumerations and cross-record uniqueness, and
// applications can register their own factories for anything else.
package validate
