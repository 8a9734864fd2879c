package model

// Annotate is the body of an annotate step.
type Annotate struct {
	Elements []Element
}

func (*Annotate) Kind() StepKind { return StepAnnotate }

func (a *Annotate) cloneBody() StepBody {
	out := &Annotate{Elements: make([]Element, len(a.Elements))}
	for i, el := range a.Elements {
		out.Elements[i] = el.Clone()
	}
	return out
}

// Add appends a default element of type t.
func (a *Annotate) Add(t ElementType) (int, error) {
	el, err := NewElement(t)
	if err != nil {
		return 0, err
	}
	a.Elements = append(a.Elements, el)
	return len(a.Elements) - 1, nil
}

// Remove deletes the element at i, keeping the order of the rest.
func (a *Annotate) Remove(i int) error {
	if err := checkIndex("element", i, len(a.Elements)); err != nil {
		return err
	}
	a.Elements = append(a.Elements[:i:i], a.Elements[i+1:]...)
	return nil
}

// Update runs fn on a copy of the element at i and stores it on success.
func (a *Annotate) Update(i int, fn func(*Element) error) error {
	if err := checkIndex("element", i, len(a.Elements)); err != nil {
		return err
	}
	el := a.Elements[i].Clone()
	if err := fn(&el); err != nil {
		return err
	}
	a.Elements[i] = el
	return nil
}
