package hookbind

import (
	"bytes"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// Binding is an element of the template that carries the marker
type Binding struct {
	Tag  string
	Expr string
}

// Bindings lists the elements of the template region carrying the marker,
// in document order. The HTML parser lower-cases tag names, so component
// tags like <MyInput> are reported as "myinput".
func (h *HookBind) Bindings(code string) ([]Binding, error) {
	tpl := Document(code).Template()
	if tpl == nil {
		return nil, ErrTemplateNotFound
	}

	root, err := html.Parse(bytes.NewReader(tpl))
	if err != nil {
		return nil, err
	}

	attr := strings.ToLower(h.cfg.Prefix)
	retv := []Binding{}
	goquery.NewDocumentFromNode(root).Find("*").Each(func(i int, s *goquery.Selection) {
		val, ok := s.Attr(attr)
		if !ok {
			return
		}

		retv = append(retv, Binding{
			Tag:  goquery.NodeName(s),
			Expr: strings.TrimSpace(val),
		})
	})

	return retv, nil
}
