package observe

import (
	"log/slog"
	"time"

	"github.com/vango-dev/vrender/pkg/runtime"
)

// Multi combines observers. Ends run in reverse order of begins.
func Multi(observers ...runtime.Observer) runtime.Observer {
	return runtime.ObserverFunc(func(inst *runtime.Instance, phase runtime.Phase) func(error) {
		ends := make([]func(error), 0, len(observers))
		for _, o := range observers {
			if o == nil {
				continue
			}
			if end := o.BeginRender(inst, phase); end != nil {
				ends = append(ends, end)
			}
		}
		return func(err error) {
			for i := len(ends) - 1; i >= 0; i-- {
				ends[i](err)
			}
		}
	})
}

// Logging creates an observer that logs each step at debug level and
// failures at error level.
func Logging(logger *slog.Logger) runtime.Observer {
	if logger == nil {
		logger = slog.Default()
	}
	return runtime.ObserverFunc(func(inst *runtime.Instance, phase runtime.Phase) func(error) {
		start := time.Now()
		return func(err error) {
			attrs := []any{
				"component", inst.Name(),
				"uid", inst.UID(),
				"phase", string(phase),
				"duration", time.Since(start),
			}
			if err != nil {
				logger.Error("render step failed", append(attrs, "error", err)...)
				return
			}
			logger.Debug("render step", attrs...)
		}
	})
}
