package resolver

import (
	"encoding/json"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"github.com/upperxcode/shelf-plus/core/handler"
	"github.com/upperxcode/shelf-plus/core/mimetype"
	"github.com/upperxcode/shelf-plus/core/response"
)

// Data forces structured-data serialization of the wrapped value. The
// structured-data resolver claims it regardless of the value's own type,
// which is how conversion results re-enter the pipeline as JSON rather
// than being re-dispatched as text or bytes.
type Data struct {
	Value any
}

// DataMarshaler lets arbitrary types participate in resolution by
// converting themselves to structured data. The conversion result is
// wrapped in Data and re-fed into the pipeline.
type DataMarshaler interface {
	MarshalData() any
}

// FilePath marks a string as a filesystem path whose content becomes the
// response body, served with range support and a content type inferred
// from the extension.
type FilePath string

// builtins returns the built-in resolver set in its required order,
// most specific first.
func builtins[C handler.Context]() []Resolver[C] {
	return []Resolver[C]{
		Binary[C](),
		Text[C](),
		StructuredData[C](),
		Convertible[C](),
		FileReference[C](),
		NestedHandler[C](),
	}
}

// Binary claims byte slices and readers, producing an
// application/octet-stream response. Open files also satisfy io.Reader
// but carry a name to infer a content type from, so they are left for
// the file-reference resolver.
func Binary[C handler.Context]() Resolver[C] {
	return func(ctx C, value any) (any, bool) {
		switch v := value.(type) {
		case []byte:
			return response.Bytes(v, mimetype.DefaultType), true
		case *os.File:
			return nil, false
		case io.Reader:
			return response.Reader(v, mimetype.DefaultType), true
		}
		return nil, false
	}
}

// Text claims string values, producing a text/plain response.
func Text[C handler.Context]() Resolver[C] {
	return func(ctx C, value any) (any, bool) {
		if s, ok := value.(string); ok {
			return response.String(s), true
		}
		return nil, false
	}
}

// StructuredData claims generic key-value and list values, plus Data
// wrappers and pre-encoded JSON, producing an application/json response.
func StructuredData[C handler.Context]() Resolver[C] {
	return func(ctx C, value any) (any, bool) {
		switch v := value.(type) {
		case Data:
			return response.JSON(v.Value), true
		case json.RawMessage:
			return response.JSONRaw(v), true
		case map[string]any:
			return response.JSON(v), true
		case map[string]string:
			return response.JSON(v), true
		case []any:
			return response.JSON(v), true
		case []string:
			return response.JSON(v), true
		}
		return nil, false
	}
}

// Convertible claims values that know how to turn themselves into a
// response: DataMarshaler and encoding/json.Marshaler conversions re-enter
// the pipeline as structured data, render-capable views (response.Renderer)
// finalize as HTML.
func Convertible[C handler.Context]() Resolver[C] {
	return func(ctx C, value any) (any, bool) {
		switch v := value.(type) {
		case DataMarshaler:
			return Data{Value: v.MarshalData()}, true
		case json.Marshaler:
			raw, err := v.MarshalJSON()
			if err != nil {
				return failed(err), true
			}
			return json.RawMessage(raw), true
		case response.Renderer:
			return response.Component(v), true
		}
		return nil, false
	}
}

// FileReference claims open files and FilePath values, delegating to the
// static-file machinery in the response package.
func FileReference[C handler.Context]() Resolver[C] {
	return func(ctx C, value any) (any, bool) {
		switch v := value.(type) {
		case FilePath:
			return response.File(string(v)), true
		case *os.File:
			return response.Reader(v, mimetype.ByExtension(filepath.Ext(v.Name()))), true
		}
		return nil, false
	}
}

// NestedHandler claims values that are themselves handlers: the canonical
// handler shape is invoked with the live context and its result re-enters
// the pipeline; an http.Handler is served directly. A nested handler that
// returns nil declines the request, finalized as ErrHandlerDeclined so the
// error handler renders it as not-found.
func NestedHandler[C handler.Context]() Resolver[C] {
	return func(ctx C, value any) (any, bool) {
		switch v := value.(type) {
		case handler.HandlerFunc[C]:
			return nestedResult(v(ctx)), true
		case func(C) any:
			return nestedResult(v(ctx)), true
		case http.Handler:
			return handler.Response(func(w http.ResponseWriter, r *http.Request) error {
				v.ServeHTTP(w, r)
				return nil
			}), true
		}
		return nil, false
	}
}

// nestedResult maps a nested handler's nil return to a finalized decline;
// any other result re-enters the pipeline scan.
func nestedResult(v any) any {
	if v == nil {
		return failed(ErrHandlerDeclined)
	}
	return v
}

// failed finalizes resolution with an error surfaced through the
// framework's error handler at render time.
func failed(err error) handler.Response {
	return func(http.ResponseWriter, *http.Request) error {
		return err
	}
}
