package runtime

import (
	"fmt"
	"reflect"

	"golang.org/x/mod/semver"

	"github.com/vango-dev/vrender/internal/errors"
)

// Plugin extends an app when installed with App.Use.
type Plugin interface {
	Install(app *App, options ...any)
}

// PluginFunc adapts a function to a Plugin.
type PluginFunc func(app *App, options ...any)

// Install implements Plugin.
func (f PluginFunc) Install(app *App, options ...any) {
	f(app, options...)
}

// VersionedPlugin is a plugin that needs at least MinVersion of the app.
type VersionedPlugin interface {
	Plugin
	MinVersion() string
}

// funcKey identifies function plugins by code pointer, since Go funcs are
// not comparable. Closures built from the same literal share one identity.
type funcKey struct {
	ptr uintptr
}

// refKey identifies non-comparable reference values (maps, slices).
type refKey struct {
	typ reflect.Type
	ptr uintptr
}

func pluginKey(plugin any) any {
	v := reflect.ValueOf(plugin)
	switch v.Kind() {
	case reflect.Func:
		return funcKey{ptr: v.Pointer()}
	case reflect.Map, reflect.Slice:
		return refKey{typ: v.Type(), ptr: v.Pointer()}
	}
	if v.Type().Comparable() {
		return plugin
	}
	return refKey{typ: v.Type()}
}

// Use installs plugin once. Installing the same plugin again only warns.
// Plugins are values implementing Plugin or functions with the signature
// func(*App, ...any). Returns the app for chaining.
func (a *App) Use(plugin any, options ...any) *App {
	if plugin == nil {
		a.warn(errors.New("E021").Error(), nil)
		return a
	}

	key := pluginKey(plugin)
	if _, installed := a.installedPlugins[key]; installed {
		a.warn(errors.New("E020").Message+".", nil)
		return a
	}

	switch p := plugin.(type) {
	case Plugin:
		if vp, ok := p.(VersionedPlugin); ok && !a.satisfies(vp.MinVersion()) {
			a.warn(fmt.Sprintf("%s: needs %s, app is %s", errors.New("E022").Error(), vp.MinVersion(), a.version), nil)
			return a
		}
		a.installedPlugins[key] = struct{}{}
		p.Install(a, options...)

	case func(*App, ...any):
		a.installedPlugins[key] = struct{}{}
		p(a, options...)

	case func(*App):
		a.installedPlugins[key] = struct{}{}
		p(a)

	default:
		a.warn(errors.New("E021").Error(), nil)
	}
	return a
}

// satisfies reports whether the app version is at least min. Invalid
// versions on either side are not enforced.
func (a *App) satisfies(min string) bool {
	if !semver.IsValid(min) || !semver.IsValid(a.version) {
		return true
	}
	return semver.Compare(a.version, min) >= 0
}
