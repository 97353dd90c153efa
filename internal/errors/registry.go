package errors

// ErrorTemplate defines a registered error type.
type ErrorTemplate struct {
	Category Category
	Message  string
	Detail   string
}

// registry maps error codes to their templates.
var registry = map[string]ErrorTemplate{
	// ============================================
	// Renderer Errors (E001-E019)
	// ============================================

	"E001": {
		Category: CategoryUpdate,
		Message:  "Unsupported update",
		Detail:   "The new tree changes the shape of an already mounted node. Only text changes and same-length child lists can be patched in place, because host adapters cannot remove nodes.",
	},
	"E002": {
		Category: CategoryComponent,
		Message:  "Component setup failed",
		Detail:   "The component's Setup function panicked or returned an error.",
	},
	"E003": {
		Category: CategoryComponent,
		Message:  "Component render failed",
		Detail:   "The component's render function panicked.",
	},
	"E004": {
		Category: CategoryComponent,
		Message:  "Render returned nil",
		Detail:   "A component render function must return a VNode.",
	},
	"E005": {
		Category: CategoryComponent,
		Message:  "Component has no render function",
		Detail:   "The definition has no Render and Setup did not return a render function.",
	},
	"E006": {
		Category: CategoryMount,
		Message:  "Unknown node kind",
		Detail:   "The VNode kind is neither an element nor a component.",
	},
	"E007": {
		Category: CategoryMount,
		Message:  "Invalid node",
		Detail:   "The VNode is nil, or an element has no tag, or a component has no definition.",
	},
	"E008": {
		Category: CategoryMount,
		Message:  "Node already mounted",
		Detail:   "A VNode's host node or component instance may only be assigned once.",
	},
	"E009": {
		Category: CategoryMount,
		Message:  "Missing container",
		Detail:   "Mount requires a host node that can accept children.",
	},
	"E010": {
		Category: CategoryComponent,
		Message:  "Called outside of setup",
		Detail:   "Provide and Inject only work while a component's Setup is running.",
	},

	// ============================================
	// Plugin Errors (E020-E029)
	// ============================================

	"E020": {
		Category: CategoryPlugin,
		Message:  "Plugin has already been applied to target app",
	},
	"E021": {
		Category: CategoryPlugin,
		Message:  "Invalid plugin",
		Detail:   "A plugin must implement Install(app, options...) or be a function taking the app.",
	},
	"E022": {
		Category: CategoryPlugin,
		Message:  "Plugin requires a newer app version",
	},

	// ============================================
	// Tree File Errors (E040-E049)
	// ============================================

	"E040": {
		Category: CategoryTree,
		Message:  "Tree file parse error",
		Detail:   "The YAML document could not be decoded.",
	},
	"E041": {
		Category: CategoryTree,
		Message:  "Unknown component",
		Detail:   "A node references a component that is not defined in the file or registered on the app.",
	},
	"E042": {
		Category: CategoryTree,
		Message:  "Invalid tree node",
		Detail:   "A node must set exactly one of tag or component.",
	},
	"E043": {
		Category: CategoryTree,
		Message:  "Unknown state key",
	},

	// ============================================
	// Config Errors (E060-E069)
	// ============================================

	"E060": {
		Category: CategoryConfig,
		Message:  "Invalid configuration file",
		Detail:   "vrender.json could not be parsed.",
	},
	"E061": {
		Category: CategoryConfig,
		Message:  "Invalid configuration value",
	},

	// ============================================
	// Publish Errors (E080-E089)
	// ============================================

	"E080": {
		Category: CategoryPublish,
		Message:  "Invalid object URL",
		Detail:   "Expected a URL of the form s3://bucket/key.",
	},
	"E081": {
		Category: CategoryPublish,
		Message:  "Upload failed",
	},
}

// GetAllCodes returns all registered error codes.
func GetAllCodes() []string {
	codes := make([]string, 0, len(registry))
	for code := range registry {
		codes = append(codes, code)
	}
	return codes
}

// GetTemplate returns the template for an error code.
func GetTemplate(code string) (ErrorTemplate, bool) {
	t, ok := registry[code]
	return t, ok
}

// Register adds a new error template to the registry.
func Register(code string, template ErrorTemplate) {
	registry[code] = template
}
