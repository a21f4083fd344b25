// Package mimetype resolves content-type strings from file extensions and
// from short type names like "json" or "html". It backs the content-type
// decisions of the response constructors and the WithContentType decorator.
package mimetype
