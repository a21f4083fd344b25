// Package response provides constructors for the handler.Response render
// functions the framework ultimately writes to the wire: plain text, HTML,
// JSON, raw bytes, files, downloads, streams, server-sent events,
// render-capable view components, and redirects, plus decorators
// that layer headers, cookies, cache control, status, and content-type overrides
// on top of any response.
//
// Responses are plain functions, so decorators compose freely:
//
//	resp := response.WithCache(
//		response.WithHeaders(response.JSON(data), map[string]string{
//			"X-Api-Version": "2",
//		}),
//		5*time.Minute,
//	)
package response
