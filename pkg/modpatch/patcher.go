package modpatch

import (
	"errors"
	"fmt"

	"github.com/hashicorp/go-multierror"

	"github.com/crjtools/knobpatch/pkg/modelxml"
)

var (
	// ErrNodeNotFound indicates a record's ButtonId or KnobId matched no
	// component in the tree.
	ErrNodeNotFound = errors.New("node not found")

	// ErrAmbiguousNode indicates a record's ButtonId or KnobId matched more
	// than one component. Patching an ambiguous id would leave the aircraft
	// with inconsistent interactions, so the record fails instead.
	ErrAmbiguousNode = errors.New("ambiguous node")
)

const (
	// TemplateName is the infinite-push template written into every rewritten
	// template reference. It must match the Template element appended to the
	// vendor's behavior template definitions, or the simulator will drop the
	// component at load.
	TemplateName = "ASCRJ_Knob_Infinite_Push_Template"

	idAttr   = "ID"
	nameAttr = "Name"
)

// paramElements are the template parameters in the order the infinite-push
// template declares them.
var paramElements = [4]string{"KNOB_ANIM_NAME", "KNOB_CHANGE_NAME", "PUSH_ANIM_NAME", "PUSH_NAME"}

// Apply patches every catalog record into the behavior tree, in place.
// Failed records do not stop the remaining ones; all failures come back
// collected, and callers must not write any output when the result is
// non-nil.
func (c Catalog) Apply(tree *modelxml.Node) error {
	var merr error

	for _, rec := range c.Modifications {
		if err := applyRecord(tree, rec); err != nil {
			merr = multierror.Append(merr, err)
		}
	}

	return merr
}

func applyRecord(tree *modelxml.Node, rec Record) error {
	button, err := resolveOne(tree, rec.ButtonId)
	if err != nil {
		return fmt.Errorf("push button: %w", err)
	}

	knob, err := resolveOne(tree, rec.KnobId)
	if err != nil {
		return fmt.Errorf("knob: %w", err)
	}

	ref := knob.FirstChildElement()
	if ref == nil {
		return fmt.Errorf("%w: knob %q has no template reference", ErrNodeNotFound, rec.KnobId)
	}

	button.Detach()

	// Repurpose the reference: only the template name survives, and the four
	// parameters are injected in the order the template reads them.
	ref.Attrs = []modelxml.Attr{{Name: nameAttr, Value: TemplateName}}
	ref.Children = nil

	values := [4]string{rec.KnobAnimName, rec.KnobChangeName, rec.PushAnimName, rec.PushName}
	for i, name := range paramElements {
		param := modelxml.NewElement(name)
		param.AppendChild(modelxml.NewText(values[i]))
		ref.AppendChild(param)
	}

	return nil
}

// resolveOne finds the single element carrying the given ID attribute.
func resolveOne(tree *modelxml.Node, id string) (*modelxml.Node, error) {
	matches := modelxml.FindByAttr(tree, idAttr, id)

	switch len(matches) {
	case 0:
		return nil, fmt.Errorf("%w: %s=%q", ErrNodeNotFound, idAttr, id)
	case 1:
		return matches[0], nil
	default:
		return nil, fmt.Errorf("%w: %s=%q matches %d nodes", ErrAmbiguousNode, idAttr, id, len(matches))
	}
}
