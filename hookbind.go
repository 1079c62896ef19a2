// Package hookbind rewrites the enhance-hook marker of Vue single-file
// components into native directive bindings.
//
//	<my-input v-ehb="form" />
//
// becomes
//
//	<my-input v-bind="form.bindProps" v-on="form.bindEvents" />
//
// Only the <template> region of .vue sources is rewritten.
package hookbind

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/valyala/fasttemplate"
	"go.uber.org/zap"
)

const (
	// PluginName identifies the transform in a build pipeline
	PluginName = "vite-plugin-vue-component-enhance-hook-bind"

	// FileExt is the suffix of the sources Transform rewrites
	FileExt = ".vue"
)

// Enforce is the ordering tier a transform runs in
type Enforce string

const (
	EnforcePre    Enforce = "pre"
	EnforceNormal Enforce = ""
	EnforcePost   Enforce = "post"
)

// v-bind="form.bindProps" v-on="form.bindEvents"
const replacementTpl = `{{bindDirective}}="{{expr}}.{{bindKey}}" {{eventDirective}}="{{expr}}.{{eventKey}}"`

// HookBind is the marker rewriter. It is immutable once created and safe
// for concurrent use.
type HookBind struct {
	cfg    Config
	tpl    *fasttemplate.Template
	logger *zap.Logger
}

// Result is the outcome of Rewrite
type Result struct {
	Code      string
	Rewritten int
	Skipped   []Marker
}

// Changed reports whether any marker was rewritten
func (r *Result) Changed() bool {
	return r.Rewritten > 0
}

// New creates a HookBind. It fails with ErrInvalidConfig when the
// configuration can't produce a terminating, well-formed rewrite.
func New(opts ...Option) (*HookBind, error) {
	o, err := applyOptions(opts...)
	if err != nil {
		return nil, err
	}

	tpl, err := fasttemplate.NewTemplate(replacementTpl, "{{", "}}")
	if err != nil {
		return nil, err
	}

	hb := &HookBind{
		cfg:    o.cfg,
		tpl:    tpl,
		logger: o.logger.With(zap.String("plugin", PluginName)),
	}

	return hb, nil
}

// Name returns the plugin name
func (h *HookBind) Name() string {
	return PluginName
}

// Enforce returns the tier the transform is registered in. The marker
// must be gone before the Vue compiler sees the template.
func (h *HookBind) Enforce() Enforce {
	return EnforcePre
}

// Config returns a copy of the configuration
func (h *HookBind) Config() Config {
	return h.cfg
}

// Accepts reports whether id names a source Transform rewrites
func (h *HookBind) Accepts(id string) bool {
	return strings.HasSuffix(id, FileExt)
}

// Transform rewrites code and logs skipped markers. Sources that are not
// components or contain no marker are returned unchanged.
func (h *HookBind) Transform(code, id string) (string, error) {
	res, err := h.Rewrite(code, id)
	if err != nil {
		h.logger.Warn("template not rewritten",
			zap.String("id", id),
			zap.String("class", string(Classify(err))),
			zap.Error(err),
		)
		return code, err
	}

	for _, m := range res.Skipped {
		h.logger.Warn("marker skipped",
			zap.String("id", id),
			zap.Int("line", m.Line),
			zap.Int("column", m.Column),
			zap.Error(m.Err),
		)
	}
	if res.Changed() {
		h.logger.Debug("markers rewritten", zap.String("id", id), zap.Int("count", res.Rewritten))
	}

	return res.Code, nil
}

// Rewrite replaces every well-formed marker of the template region in a
// single pass. Malformed markers are left as they are and returned in
// Result.Skipped.
func (h *HookBind) Rewrite(code, id string) (*Result, error) {
	res := &Result{Code: code}
	if !h.Accepts(id) || !strings.Contains(code, h.cfg.Prefix) {
		return res, nil
	}

	doc := Document(code)
	start, end, err := doc.TemplateRegion()
	if err != nil {
		return res, fmt.Errorf("%s: %w", id, err)
	}

	lex := NewLexicon(code, h.cfg.Prefix)
	lex.ParseMarkers(start, end)

	region := bytes.NewBuffer(make([]byte, 0, end-start))
	cursor := start
	for _, m := range lex.Markers() {
		if !m.Valid() {
			res.Skipped = append(res.Skipped, m)
			continue
		}

		region.WriteString(code[cursor:m.Start])
		region.WriteString(h.replacement(m.Expr))
		cursor = m.End
		res.Rewritten++
	}

	if res.Rewritten == 0 {
		return res, nil
	}

	region.WriteString(code[cursor:end])
	doc.Splice(start, end, region.Bytes())
	res.Code = string(doc)

	return res, nil
}

// replacement returns the directive pair for expr
func (h *HookBind) replacement(expr string) string {
	return h.tpl.ExecuteString(map[string]interface{}{
		"bindDirective":  h.cfg.BindDirective,
		"eventDirective": h.cfg.EventDirective,
		"bindKey":        h.cfg.BindKey,
		"eventKey":       h.cfg.EventKey,
		"expr":           expr,
	})
}
