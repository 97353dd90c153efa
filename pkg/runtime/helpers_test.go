package runtime_test

import (
	"io"
	"log/slog"

	"github.com/vango-dev/vrender/pkg/runtime"
	"github.com/vango-dev/vrender/pkg/vtest"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newRenderer(opts ...runtime.Option) (*runtime.Renderer, *vtest.Host) {
	host := vtest.NewHost()
	opts = append([]runtime.Option{runtime.WithLogger(quietLogger())}, opts...)
	return runtime.CreateRenderer(host, opts...), host
}
