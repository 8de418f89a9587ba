package lattice

import (
	"errors"
	"fmt"
	"io"
	"strconv"

	"gopkg.in/yaml.v3"
)

// ErrUnsupportedKind is returned when a tree document names a widget kind
// that cannot be built without a device (windows, plane windows, sprites).
var ErrUnsupportedKind = errors.New("widget kind cannot be read from a document")

// Property is one serialized widget attribute. Attrs carries qualifiers such
// as the palette group of a color.
type Property struct {
	Name  string            `yaml:"name"`
	Value string            `yaml:"value"`
	Attrs map[string]string `yaml:"attrs,omitempty"`
}

// Properties is an ordered property bag.
type Properties []Property

// Add appends a property.
func (p *Properties) Add(name, value string, attrs map[string]string) {
	*p = append(*p, Property{Name: name, Value: value, Attrs: attrs})
}

// Get returns the value of the first property called name.
func (p Properties) Get(name string) (string, bool) {
	for _, prop := range p {
		if prop.Name == name {
			return prop.Value, true
		}
	}
	return "", false
}

func itoa(v int) string { return strconv.Itoa(v) }

func ftoa(v float64) string { return strconv.FormatFloat(v, 'g', -1, 64) }

// Serialize returns the widget's state as a property bag. Defaults are
// omitted except "show", which is always present.
func (w *Widget) Serialize() Properties {
	var props Properties
	props.Add("show", strconv.FormatBool(w.Visible()), nil)
	if w.box.X != 0 {
		props.Add("x", itoa(w.box.X), nil)
	}
	if w.box.Y != 0 {
		props.Add("y", itoa(w.box.Y), nil)
	}
	if w.box.Width != 0 {
		props.Add("width", itoa(w.box.Width), nil)
	}
	if w.box.Height != 0 {
		props.Add("height", itoa(w.box.Height), nil)
	}
	if w.align != 0 {
		props.Add("align", w.align.String(), nil)
	}
	if w.borderFlags != 0 {
		props.Add("borderflags", w.borderFlags.String(), nil)
	}
	if !w.Autoresize() {
		props.Add("autoresize", "false", nil)
	}
	if w.Checked() {
		props.Add("checked", "true", nil)
	}
	if w.Disabled() {
		props.Add("disabled", "true", nil)
	}
	if w.GrabMouse() {
		props.Add("grab_mouse", "true", nil)
	}
	if w.NoLayout() {
		props.Add("no_layout", "true", nil)
	}
	if w.alpha != 1 {
		props.Add("alpha", ftoa(w.alpha), nil)
	}
	if w.padding != 0 {
		props.Add("padding", itoa(w.padding), nil)
	}
	if w.margin != 0 {
		props.Add("margin", itoa(w.margin), nil)
	}
	if w.border != 0 {
		props.Add("border", itoa(w.border), nil)
	}
	if w.borderRadius != 0 {
		props.Add("border_radius", ftoa(w.borderRadius), nil)
	}
	if w.xRatio != 0 {
		props.Add("ratio:x", itoa(w.xRatio), nil)
	}
	if w.yRatio != 0 {
		props.Add("ratio:y", itoa(w.yRatio), nil)
	}
	if w.hRatio != 0 {
		props.Add("ratio:horizontal", itoa(w.hRatio), nil)
	}
	if w.vRatio != 0 {
		props.Add("ratio:vertical", itoa(w.vRatio), nil)
	}
	if !w.fill.Empty() {
		props.Add("fillflags", w.fill.String(), nil)
	}
	if w.font != nil {
		attrs := map[string]string{"size": ftoa(w.font.Size)}
		if w.font.Weight != 0 {
			attrs["weight"] = itoa(w.font.Weight)
		}
		if w.font.Italic {
			attrs["italic"] = "true"
		}
		props.Add("font", w.font.Face, attrs)
	}
	w.palette.Each(func(id ColorID, group GroupID, c Color) {
		props.Add("color", c.Hex(), map[string]string{"id": id.String(), "group": group.String()})
	})
	return props
}

var geometryProps = map[string]bool{"x": true, "y": true, "width": true, "height": true}

// Deserialize applies props to the widget. Geometry is applied first and
// "show" last; everything else in bag order. Properties it does not know
// are returned for the caller to handle. A malformed value stops
// deserialization with an error.
func (w *Widget) Deserialize(props Properties) (Properties, error) {
	var rest Properties
	var show *Property
	for i := range props {
		if geometryProps[props[i].Name] {
			if err := w.applyProperty(props[i]); err != nil {
				return nil, err
			}
		}
	}
	for i, prop := range props {
		switch {
		case geometryProps[prop.Name]:
		case prop.Name == "show":
			show = &props[i]
		default:
			known, err := w.applyKnown(prop)
			if err != nil {
				return nil, err
			}
			if !known {
				rest = append(rest, prop)
			}
		}
	}
	if show != nil {
		v, err := strconv.ParseBool(show.Value)
		if err != nil {
			return nil, propError(*show, err)
		}
		w.SetVisible(v)
	}
	return rest, nil
}

func propError(p Property, err error) error {
	return fmt.Errorf("lattice: property %s=%q: %w", p.Name, p.Value, err)
}

func (w *Widget) applyProperty(p Property) error {
	_, err := w.applyKnown(p)
	return err
}

func (w *Widget) applyKnown(p Property) (bool, error) {
	atoi := func(set func(int)) error {
		v, err := strconv.Atoi(p.Value)
		if err != nil {
			return propError(p, err)
		}
		set(v)
		return nil
	}
	parseBool := func(set func(bool)) error {
		v, err := strconv.ParseBool(p.Value)
		if err != nil {
			return propError(p, err)
		}
		set(v)
		return nil
	}
	parseFloat := func(set func(float64)) error {
		v, err := strconv.ParseFloat(p.Value, 64)
		if err != nil {
			return propError(p, err)
		}
		set(v)
		return nil
	}

	var err error
	switch p.Name {
	case "x":
		err = atoi(w.SetX)
	case "y":
		err = atoi(w.SetY)
	case "width":
		err = atoi(w.SetWidth)
	case "height":
		err = atoi(w.SetHeight)
	case "align":
		a, ok := ParseAlign(p.Value)
		if !ok {
			return true, propError(p, errors.New("unknown alignment"))
		}
		w.SetAlign(a)
	case "borderflags":
		b, ok := ParseBorderFlags(p.Value)
		if !ok {
			return true, propError(p, errors.New("unknown border side"))
		}
		w.SetBorderFlags(b)
	case "fillflags":
		f, ok := ParseFillFlags(p.Value)
		if !ok {
			return true, propError(p, errors.New("unknown fill"))
		}
		w.SetFillFlags(f)
	case "autoresize":
		err = parseBool(w.SetAutoresize)
	case "checked":
		err = parseBool(w.SetChecked)
	case "disabled":
		err = parseBool(w.SetDisabled)
	case "grab_mouse":
		err = parseBool(w.SetGrabMouse)
	case "no_layout":
		err = parseBool(w.SetNoLayout)
	case "alpha":
		err = parseFloat(w.SetAlpha)
	case "padding":
		err = atoi(w.SetPadding)
	case "margin":
		err = atoi(w.SetMargin)
	case "border":
		err = atoi(w.SetBorder)
	case "border_radius":
		err = parseFloat(w.SetBorderRadius)
	case "ratio:x":
		err = atoi(w.SetXRatio)
	case "ratio:y":
		err = atoi(w.SetYRatio)
	case "ratio:horizontal":
		err = atoi(w.SetHorizontalRatio)
	case "ratio:vertical":
		err = atoi(w.SetVerticalRatio)
	case "font":
		f, ferr := parseFontProperty(p)
		if ferr != nil {
			return true, ferr
		}
		w.SetFont(f)
	case "color":
		id, ok := ParseColorID(p.Attrs["id"])
		if !ok {
			return true, propError(p, fmt.Errorf("unknown color id %q", p.Attrs["id"]))
		}
		group := GroupNormal
		if g, ok := p.Attrs["group"]; ok {
			if group, ok = ParseGroupID(g); !ok {
				return true, propError(p, fmt.Errorf("unknown group %q", g))
			}
		}
		c, cerr := ParseColor(p.Value)
		if cerr != nil {
			return true, propError(p, cerr)
		}
		w.SetColor(id, c, group)
	default:
		return false, nil
	}
	return true, err
}

func parseFontProperty(p Property) (Font, error) {
	f := Font{Face: p.Value}
	var err error
	if v, ok := p.Attrs["size"]; ok {
		if f.Size, err = strconv.ParseFloat(v, 64); err != nil {
			return Font{}, propError(p, err)
		}
	}
	if v, ok := p.Attrs["weight"]; ok {
		if f.Weight, err = strconv.Atoi(v); err != nil {
			return Font{}, propError(p, err)
		}
	}
	if v, ok := p.Attrs["italic"]; ok {
		if f.Italic, err = strconv.ParseBool(v); err != nil {
			return Font{}, propError(p, err)
		}
	}
	return f, nil
}

// TreeNode is the document form of a widget subtree.
type TreeNode struct {
	Kind       string     `yaml:"kind"`
	Name       string     `yaml:"name"`
	Properties Properties `yaml:"properties,omitempty"`
	Children   []TreeNode `yaml:"children,omitempty"`
}

// Tree returns the document form of the subtree rooted at w.
func (w *Widget) Tree() TreeNode {
	n := TreeNode{Kind: w.kind.String(), Name: w.name, Properties: w.Serialize()}
	for _, c := range w.children {
		n.Children = append(n.Children, c.Tree())
	}
	return n
}

// WriteTree encodes the subtree rooted at w as a YAML document.
func WriteTree(out io.Writer, w *Widget) error {
	enc := yaml.NewEncoder(out)
	enc.SetIndent(2)
	if err := enc.Encode(w.Tree()); err != nil {
		return fmt.Errorf("lattice: write tree: %w", err)
	}
	return enc.Close()
}

// ReadTree decodes a YAML document written by WriteTree and builds the
// widgets it describes. Only plain widgets and frames can be built.
// Unknown properties are logged and skipped.
func (c *Context) ReadTree(in io.Reader) (*Widget, error) {
	var n TreeNode
	if err := yaml.NewDecoder(in).Decode(&n); err != nil {
		return nil, fmt.Errorf("lattice: read tree: %w", err)
	}
	return c.BuildTree(n)
}

// BuildTree builds the widgets described by n. On error the partially
// built subtree is destroyed.
func (c *Context) BuildTree(n TreeNode) (*Widget, error) {
	var w *Widget
	switch n.Kind {
	case "", KindWidget.String():
		w = c.NewWidget(n.Name, Rect{})
	case KindFrame.String():
		w = c.NewFrame(n.Name, Rect{})
	default:
		return nil, fmt.Errorf("lattice: build %q: %s: %w", n.Name, n.Kind, ErrUnsupportedKind)
	}
	rest, err := w.Deserialize(n.Properties)
	if err != nil {
		w.Destroy()
		return nil, err
	}
	for _, p := range rest {
		c.logger.Warn("unknown property", "widget", w.String(), "name", p.Name)
	}
	for _, cn := range n.Children {
		child, err := c.BuildTree(cn)
		if err != nil {
			w.Destroy()
			return nil, err
		}
		if err := w.Add(child); err != nil {
			child.Destroy()
			w.Destroy()
			return nil, err
		}
	}
	return w, nil
}
