package resolver_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/upperxcode/shelf-plus/core/handler"
	"github.com/upperxcode/shelf-plus/core/resolver"
)

// testContext is a minimal handler.Context for driving pipelines directly.
type testContext struct {
	w      http.ResponseWriter
	r      *http.Request
	params map[string]string
}

func newTestContext(r *http.Request) *testContext {
	return &testContext{w: httptest.NewRecorder(), r: r}
}

func (c *testContext) Deadline() (time.Time, bool) { return c.r.Context().Deadline() }

func (c *testContext) Done() <-chan struct{} { return c.r.Context().Done() }

func (c *testContext) Err() error { return c.r.Context().Err() }

func (c *testContext) Value(key any) any { return c.r.Context().Value(key) }

func (c *testContext) Request() *http.Request { return c.r }

func (c *testContext) ResponseWriter() http.ResponseWriter { return c.w }

func (c *testContext) SetValue(key, val any) {}

func (c *testContext) Param(key string) string {
	return c.params[key]
}

// render executes a resolved response against a fresh recorder.
func render(t *testing.T, ctx *testContext, resp handler.Response) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	require.NoError(t, resp(rec, ctx.Request()))
	return rec
}

type person struct {
	Name string
	Age  int
}

func (p person) MarshalData() any {
	return map[string]any{"name": p.Name, "age": p.Age}
}

type jsonSelf struct {
	ID string
}

func (j jsonSelf) MarshalJSON() ([]byte, error) {
	return []byte(`{"id":"` + j.ID + `"}`), nil
}

func TestPipeline_Resolve_BuiltinTypes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name            string
		value           any
		wantContentType string
		wantBody        string
	}{
		{
			name:            "string_to_text",
			value:           "hello world",
			wantContentType: "text/plain; charset=utf-8",
			wantBody:        "hello world",
		},
		{
			name:            "bytes_to_octet_stream",
			value:           []byte{0x01, 0x02, 0x03},
			wantContentType: "application/octet-stream",
			wantBody:        "\x01\x02\x03",
		},
		{
			name:            "reader_to_octet_stream",
			value:           bytes.NewBufferString("streamed"),
			wantContentType: "application/octet-stream",
			wantBody:        "streamed",
		},
		{
			name:            "map_to_json",
			value:           map[string]any{"key": "value"},
			wantContentType: "application/json; charset=utf-8",
			wantBody:        `{"key":"value"}` + "\n",
		},
		{
			name:            "string_map_to_json",
			value:           map[string]string{"a": "b"},
			wantContentType: "application/json; charset=utf-8",
			wantBody:        `{"a":"b"}` + "\n",
		},
		{
			name:            "string_slice_to_json",
			value:           []string{"x", "y"},
			wantContentType: "application/json; charset=utf-8",
			wantBody:        `["x","y"]` + "\n",
		},
		{
			name:            "raw_message_passthrough",
			value:           json.RawMessage(`{"raw":true}`),
			wantContentType: "application/json; charset=utf-8",
			wantBody:        `{"raw":true}`,
		},
		{
			name:            "data_wrapper_forces_json",
			value:           resolver.Data{Value: "not plain text"},
			wantContentType: "application/json; charset=utf-8",
			wantBody:        `"not plain text"` + "\n",
		},
		{
			name:            "data_marshaler_converts_then_serializes",
			value:           person{Name: "alice", Age: 30},
			wantContentType: "application/json; charset=utf-8",
			wantBody:        `{"age":30,"name":"alice"}` + "\n",
		},
		{
			name:            "json_marshaler_serializes_itself",
			value:           jsonSelf{ID: "42"},
			wantContentType: "application/json; charset=utf-8",
			wantBody:        `{"id":"42"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			ctx := newTestContext(httptest.NewRequest(http.MethodGet, "/", nil))
			pipeline := resolver.New[*testContext]()

			resp, err := pipeline.Resolve(ctx, tt.value)
			require.NoError(t, err)

			rec := render(t, ctx, resp)
			assert.Equal(t, http.StatusOK, rec.Code)
			assert.Equal(t, tt.wantContentType, rec.Header().Get("Content-Type"))
			assert.Equal(t, tt.wantBody, rec.Body.String())
		})
	}
}

func TestPipeline_Resolve_FinalResponsePassthrough(t *testing.T) {
	t.Parallel()

	ctx := newTestContext(httptest.NewRequest(http.MethodGet, "/", nil))

	called := false
	final := handler.Response(func(w http.ResponseWriter, r *http.Request) error {
		called = true
		w.WriteHeader(http.StatusTeapot)
		return nil
	})

	// A pipeline with a greedy custom resolver must still return final
	// values untouched.
	pipeline := resolver.New(func(ctx *testContext, value any) (any, bool) {
		return "hijacked", true
	})

	resp, err := pipeline.Resolve(ctx, final)
	require.NoError(t, err)

	rec := render(t, ctx, resp)
	assert.True(t, called)
	assert.Equal(t, http.StatusTeapot, rec.Code)
}

func TestPipeline_Resolve_NilValue(t *testing.T) {
	t.Parallel()

	ctx := newTestContext(httptest.NewRequest(http.MethodGet, "/", nil))
	pipeline := resolver.New[*testContext]()

	_, err := pipeline.Resolve(ctx, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, resolver.ErrUnresolvableValue)
}

func TestPipeline_Resolve_UnclaimedValue(t *testing.T) {
	t.Parallel()

	type opaque struct{ n int }

	ctx := newTestContext(httptest.NewRequest(http.MethodGet, "/", nil))
	pipeline := resolver.New[*testContext]()

	_, err := pipeline.Resolve(ctx, opaque{n: 7})
	require.Error(t, err)
	assert.ErrorIs(t, err, resolver.ErrUnresolvableValue)
	// The failure names the offending type so logs are actionable.
	assert.Contains(t, err.Error(), "opaque")
}

func TestPipeline_Resolve_CustomShadowsBuiltin(t *testing.T) {
	t.Parallel()

	ctx := newTestContext(httptest.NewRequest(http.MethodGet, "/", nil))

	// A custom resolver registered ahead of the built-ins sees strings first.
	shout := func(ctx *testContext, value any) (any, bool) {
		if s, ok := value.(string); ok && !strings.HasSuffix(s, "!") {
			return s + "!", true
		}
		return nil, false
	}

	pipeline := resolver.New(shout)

	resp, err := pipeline.Resolve(ctx, "hello")
	require.NoError(t, err)

	rec := render(t, ctx, resp)
	assert.Equal(t, "hello!", rec.Body.String())
}

func TestPipeline_Resolve_ClaimRestartsScan(t *testing.T) {
	t.Parallel()

	type wrapped struct{ payload string }

	ctx := newTestContext(httptest.NewRequest(http.MethodGet, "/", nil))

	var order []string
	first := func(ctx *testContext, value any) (any, bool) {
		order = append(order, "first")
		return nil, false
	}
	unwrap := func(ctx *testContext, value any) (any, bool) {
		order = append(order, "unwrap")
		if w, ok := value.(wrapped); ok {
			return w.payload, true
		}
		return nil, false
	}

	pipeline := resolver.New(first, unwrap)

	resp, err := pipeline.Resolve(ctx, wrapped{payload: "inner"})
	require.NoError(t, err)

	rec := render(t, ctx, resp)
	assert.Equal(t, "inner", rec.Body.String())
	// After unwrap claims, the scan restarts from the first resolver.
	assert.Equal(t, []string{"first", "unwrap", "first", "unwrap"}, order[:4])
}

func TestPipeline_Resolve_CycleTerminates(t *testing.T) {
	t.Parallel()

	type ping struct{}
	type pong struct{}

	ctx := newTestContext(httptest.NewRequest(http.MethodGet, "/", nil))

	pipeline := resolver.New(
		func(ctx *testContext, value any) (any, bool) {
			if _, ok := value.(ping); ok {
				return pong{}, true
			}
			return nil, false
		},
		func(ctx *testContext, value any) (any, bool) {
			if _, ok := value.(pong); ok {
				return ping{}, true
			}
			return nil, false
		},
	)

	_, err := pipeline.Resolve(ctx, ping{})
	require.Error(t, err)
	assert.ErrorIs(t, err, resolver.ErrUnresolvableValue)
	assert.Contains(t, err.Error(), "cycle")
}

func TestPipeline_Resolve_NestedHandler(t *testing.T) {
	t.Parallel()

	t.Run("handler_func_result_reenters_pipeline", func(t *testing.T) {
		t.Parallel()

		ctx := newTestContext(httptest.NewRequest(http.MethodGet, "/", nil))
		pipeline := resolver.New[*testContext]()

		nested := handler.HandlerFunc[*testContext](func(ctx *testContext) any {
			return map[string]any{"nested": true}
		})

		resp, err := pipeline.Resolve(ctx, nested)
		require.NoError(t, err)

		rec := render(t, ctx, resp)
		assert.Equal(t, "application/json; charset=utf-8", rec.Header().Get("Content-Type"))
		assert.JSONEq(t, `{"nested":true}`, rec.Body.String())
	})

	t.Run("plain_func_shape", func(t *testing.T) {
		t.Parallel()

		ctx := newTestContext(httptest.NewRequest(http.MethodGet, "/", nil))
		pipeline := resolver.New[*testContext]()

		resp, err := pipeline.Resolve(ctx, func(ctx *testContext) any { return "from func" })
		require.NoError(t, err)

		rec := render(t, ctx, resp)
		assert.Equal(t, "from func", rec.Body.String())
	})

	t.Run("http_handler_served_directly", func(t *testing.T) {
		t.Parallel()

		ctx := newTestContext(httptest.NewRequest(http.MethodGet, "/", nil))
		pipeline := resolver.New[*testContext]()

		h := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusAccepted)
		})

		resp, err := pipeline.Resolve(ctx, h)
		require.NoError(t, err)

		rec := render(t, ctx, resp)
		assert.Equal(t, http.StatusAccepted, rec.Code)
	})
}

func TestPipeline_Resolve_CanceledContext(t *testing.T) {
	t.Parallel()

	reqCtx, cancel := context.WithCancel(context.Background())
	cancel()

	r := httptest.NewRequest(http.MethodGet, "/", nil).WithContext(reqCtx)
	ctx := newTestContext(r)
	pipeline := resolver.New[*testContext]()

	_, err := pipeline.Resolve(ctx, "never rendered")
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestPipeline_Resolve_FileValues(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	t.Run("file_path_serves_with_extension_type", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(dir, "styles.css")
		require.NoError(t, os.WriteFile(path, []byte("body { margin: 0 }"), 0o644))

		ctx := newTestContext(httptest.NewRequest(http.MethodGet, "/", nil))
		pipeline := resolver.New[*testContext]()

		resp, err := pipeline.Resolve(ctx, resolver.FilePath(path))
		require.NoError(t, err)

		rec := render(t, ctx, resp)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "text/css; charset=utf-8", rec.Header().Get("Content-Type"))
		assert.Equal(t, "body { margin: 0 }", rec.Body.String())
	})

	// An open file is also an io.Reader, but it must reach the
	// file-reference resolver so the content type follows the extension.
	t.Run("open_file_serves_with_extension_type", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(dir, "report.html")
		require.NoError(t, os.WriteFile(path, []byte("<h1>hi</h1>"), 0o644))

		f, err := os.Open(path)
		require.NoError(t, err)

		ctx := newTestContext(httptest.NewRequest(http.MethodGet, "/", nil))
		pipeline := resolver.New[*testContext]()

		resp, err := pipeline.Resolve(ctx, f)
		require.NoError(t, err)

		rec := render(t, ctx, resp)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "text/html; charset=utf-8", rec.Header().Get("Content-Type"))
		assert.Equal(t, "<h1>hi</h1>", rec.Body.String())
	})
}

type testPage struct {
	title string
}

func (p testPage) Render(ctx context.Context, w io.Writer) error {
	_, err := io.WriteString(w, "<h1>"+p.title+"</h1>")
	return err
}

func TestPipeline_Resolve_RendererFinalizesAsHTML(t *testing.T) {
	t.Parallel()

	ctx := newTestContext(httptest.NewRequest(http.MethodGet, "/", nil))
	pipeline := resolver.New[*testContext]()

	resp, err := pipeline.Resolve(ctx, testPage{title: "welcome"})
	require.NoError(t, err)

	rec := render(t, ctx, resp)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/html; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.Equal(t, "<h1>welcome</h1>", rec.Body.String())
}

func TestPipeline_Resolve_NestedHandlerNilDeclines(t *testing.T) {
	t.Parallel()

	ctx := newTestContext(httptest.NewRequest(http.MethodGet, "/", nil))
	pipeline := resolver.New[*testContext]()

	nested := handler.HandlerFunc[*testContext](func(ctx *testContext) any {
		return nil
	})

	resp, err := pipeline.Resolve(ctx, nested)
	require.NoError(t, err)

	// The decline finalizes as an error the router maps to 404.
	renderErr := resp(httptest.NewRecorder(), ctx.Request())
	require.Error(t, renderErr)
	assert.ErrorIs(t, renderErr, resolver.ErrHandlerDeclined)
}
