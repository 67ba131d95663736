// Package encode writes HOCON documents and values.
//
// A document parsed by package parse is written back exactly as it was
// read; only the entries changed since then differ. Values are written with
// [Value] inside sections and [ValueJSON] at the document root.
package encode
