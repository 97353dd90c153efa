package runtime

import "github.com/vango-dev/vrender/internal/errors"

// Sentinel errors. Match them with errors.Is; the returned errors carry the
// same code plus the component name and details.
var (
	// ErrUnsupportedUpdate is returned when a patch would change the shape of
	// a mounted node.
	ErrUnsupportedUpdate = errors.New("E001")

	// ErrSetupFailed wraps panics and errors from a component's Setup.
	ErrSetupFailed = errors.New("E002")

	// ErrRenderFailed wraps panics from a component's render function.
	ErrRenderFailed = errors.New("E003")

	// ErrNilRender is returned when a render function returns nil.
	ErrNilRender = errors.New("E004")

	// ErrNoRender is returned when a component has nothing to render with.
	ErrNoRender = errors.New("E005")

	// ErrInvalidNode is returned for nil nodes, elements without tags and
	// components without definitions.
	ErrInvalidNode = errors.New("E007")

	// ErrAlreadyMounted is returned when a VNode is mounted a second time.
	ErrAlreadyMounted = errors.New("E008")

	// ErrNoContainer is returned when mounting into a nil container.
	ErrNoContainer = errors.New("E009")

	// ErrNoInstance is returned by Provide outside of Setup.
	ErrNoInstance = errors.New("E010")
)

func unsupported(parent *Instance, format string, args ...any) error {
	return errors.New("E001").WithComponent(parent.Name()).WithDetailf(format, args...)
}
