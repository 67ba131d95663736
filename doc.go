// Package hocon manages individual settings of HOCON configuration files.
//
// An [Operation] declares that a setting of a file is present with a
// value or absent. An [Applier] validates operations, rejects two
// operations managing the same setting of the same file, and rewrites
// each file in place changing only the entries concerned, so that
// comments and layout are kept and applying the same operations again
// changes nothing.
//
// The lower layers are available on their own: package parse reads
// documents, package edit changes them and package encode writes them.
package hocon
