// Package htmlhost is a host adapter that builds an in-memory element tree
// and serializes it as HTML.
//
// The renderer drives the tree through the three host operations; the
// serializer walks it on demand:
//
//	host := htmlhost.New(htmlhost.Config{Pretty: true})
//	r := runtime.CreateRenderer(host)
//	root := host.Root()
//	r.CreateApp(App).Mount(root)
//	html, _ := host.RenderChildren(root)
//
// Text content is always escaped. Hosts are not safe for concurrent use;
// callers that render from several goroutines serialize access themselves.
package htmlhost
