package htmlhost

import (
	"fmt"
	"io"
	"net/http"
)

// Page describes the document wrapped around a rendered tree.
type Page struct {
	// Title is the document title.
	Title string

	// Lang is the html lang attribute. Defaults to "en".
	Lang string

	// StyleSheets are linked stylesheet URLs.
	StyleSheets []string

	// Styles are inline CSS blocks.
	Styles []string

	// Scripts are inline scripts appended to the body.
	Scripts []string
}

// WritePage writes a complete HTML document with the children of container
// as the body. When w is an http.Flusher the head is flushed before the
// body is rendered.
func (h *Host) WritePage(w io.Writer, container *Node, page Page) error {
	flusher, _ := w.(http.Flusher)
	flush := func() {
		if flusher != nil {
			flusher.Flush()
		}
	}

	lang := page.Lang
	if lang == "" {
		lang = "en"
	}

	if _, err := io.WriteString(w, "<!DOCTYPE html>\n"); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "<html lang=\"%s\">\n", escapeAttr(lang)); err != nil {
		return err
	}
	if err := writeHead(w, page); err != nil {
		return err
	}
	flush()

	if _, err := io.WriteString(w, "<body>\n"); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "<%s id=\"app\">", container.Tag); err != nil {
		return err
	}
	if err := h.renderChildrenTo(w, container, 0); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "</%s>\n", container.Tag); err != nil {
		return err
	}
	for _, script := range page.Scripts {
		if _, err := fmt.Fprintf(w, "<script>%s</script>\n", script); err != nil {
			return err
		}
	}
	if _, err := io.WriteString(w, "</body>\n</html>\n"); err != nil {
		return err
	}
	flush()
	return nil
}

func writeHead(w io.Writer, page Page) error {
	if _, err := io.WriteString(w, "<head>\n  <meta charset=\"utf-8\">\n"); err != nil {
		return err
	}
	if _, err := io.WriteString(w, "  <meta name=\"viewport\" content=\"width=device-width, initial-scale=1\">\n"); err != nil {
		return err
	}
	if page.Title != "" {
		if _, err := fmt.Fprintf(w, "  <title>%s</title>\n", escapeHTML(page.Title)); err != nil {
			return err
		}
	}
	for _, href := range page.StyleSheets {
		if _, err := fmt.Fprintf(w, "  <link rel=\"stylesheet\" href=\"%s\">\n", escapeAttr(href)); err != nil {
			return err
		}
	}
	for _, style := range page.Styles {
		if _, err := fmt.Fprintf(w, "  <style>%s</style>\n", style); err != nil {
			return err
		}
	}
	_, err := io.WriteString(w, "</head>\n")
	return err
}
