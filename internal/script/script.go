// Package script holds the JavaScript snippets chromedriver evaluates in the
// page. They are kept as plain function expressions over standard DOM APIs so
// they can be executed and unit-tested under goja with a stubbed document.
package script

import "fmt"

// boxesJS snapshots every element matching a selector. Elements are tagged
// with a ref attribute on first sight so later calls can re-identify them;
// the tag value is namespaced by the caller-supplied query id.
const boxesJS = `(function(sel, attr, qid) {
	var out = [];
	var els = document.querySelectorAll(sel);
	for (var i = 0; i < els.length; i++) {
		var el = els[i];
		var r = el.getBoundingClientRect();
		var ref = el.getAttribute(attr);
		if (!ref) {
			ref = qid + "-" + i;
			el.setAttribute(attr, ref);
		}
		var st = window.getComputedStyle(el);
		var visible = r.width > 0 && r.height > 0 &&
			st.visibility !== "hidden" && st.display !== "none" &&
			r.bottom > 0 && r.top < window.innerHeight;
		out.push({
			ref: ref,
			x: r.x, y: r.y, w: r.width, h: r.height,
			text: el.textContent || "",
			visible: visible
		});
	}
	return out;
})`

// metricsJS reads a scrollable container's geometry and offsets.
const metricsJS = `(function(sel) {
	var el = document.querySelector(sel);
	if (!el) return null;
	var r = el.getBoundingClientRect();
	return {
		x: r.x, y: r.y, w: r.width, h: r.height,
		top: el.scrollTop, left: el.scrollLeft,
		content: el.scrollHeight
	};
})`

// setScrollJS writes a scrollable container's offsets. Returns whether the
// container was found.
const setScrollJS = `(function(sel, top, left) {
	var el = document.querySelector(sel);
	if (!el) return false;
	el.scrollTop = top;
	el.scrollLeft = left;
	return true;
})`

// Boxes returns the expression snapshotting all elements matching selector,
// tagging them with refAttr values namespaced by queryID.
func Boxes(selector, refAttr, queryID string) string {
	return fmt.Sprintf("%s(%q, %q, %q)", boxesJS, selector, refAttr, queryID)
}

// Metrics returns the expression reading the container matching selector.
func Metrics(selector string) string {
	return fmt.Sprintf("%s(%q)", metricsJS, selector)
}

// SetScroll returns the expression scrolling the container matching selector.
func SetScroll(selector string, top, left float64) string {
	return fmt.Sprintf("%s(%q, %v, %v)", setScrollJS, selector, top, left)
}

// Call wraps a caller-supplied function expression in a one-argument
// invocation, for the optional line-geometry and line-count hooks.
func Call(fnExpr string, arg int) string {
	return fmt.Sprintf("(%s)(%d)", fnExpr, arg)
}

// Call0 wraps a caller-supplied function expression in a zero-argument
// invocation.
func Call0(fnExpr string) string {
	return fmt.Sprintf("(%s)()", fnExpr)
}
