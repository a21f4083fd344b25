// Package static provides handlers that serve files and directories from
// the filesystem: single files with range-request support, and directories
// with traversal protection and directory listing disabled. The resolver
// pipeline's file-reference resolver delegates to the same serving
// machinery through the response package.
package static
