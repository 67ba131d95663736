// Package token splits HOCON text into tokens.
//
// Tokenization is lossless. Whitespace, line breaks and comments are
// tokens like any other, so a document can be rebuilt byte for byte from
// its tokens. This is what lets the parse and encode packages leave the
// unedited parts of a file exactly as they were written.
//
// # Related Packages
//
//   - github.com/h0tw1r3/puppetlabs-hocon/parse - builds documents from tokens
//   - github.com/h0tw1r3/puppetlabs-hocon/encode - writes documents and values
package token
