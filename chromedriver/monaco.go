package chromedriver

// Ready-made page-side hooks for pages that expose the Monaco editor API as
// window.monaco. Both return null until the first editor instance and its
// model exist, which the caller treats as "capability not ready".

// MonacoLineBoxScript resolves a line to screen geometry via the first
// Monaco editor's own layout engine. Suitable for WithLineBoxScript.
const MonacoLineBoxScript = `function(line) {
	if (!window.monaco || !monaco.editor || !monaco.editor.getEditors) return null;
	var eds = monaco.editor.getEditors();
	if (!eds.length) return null;
	var ed = eds[0];
	var node = ed.getDomNode();
	if (!node) return null;
	var r = node.getBoundingClientRect();
	var top = ed.getTopForLineNumber(line) - ed.getScrollTop();
	var h = ed.getOption(monaco.editor.EditorOption.lineHeight);
	return { x: r.x, y: r.y + top, w: r.width, h: h };
}`

// MonacoLineCountScript reads the exact line count from the first Monaco
// editor's text model. Suitable for WithLineCountScript.
const MonacoLineCountScript = `function() {
	if (!window.monaco || !monaco.editor || !monaco.editor.getEditors) return null;
	var eds = monaco.editor.getEditors();
	if (!eds.length) return null;
	var model = eds[0].getModel();
	if (!model) return null;
	return model.getLineCount();
}`
