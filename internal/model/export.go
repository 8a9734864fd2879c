package model

// Export is the body of an export step.
type Export struct {
	Destinations []Destination
}

func (*Export) Kind() StepKind { return StepExport }

func (e *Export) cloneBody() StepBody {
	out := &Export{Destinations: make([]Destination, len(e.Destinations))}
	for i, d := range e.Destinations {
		out.Destinations[i] = d.Clone()
	}
	return out
}

// Add appends a destination. Nothing is appended when the destination is
// rejected.
func (e *Export) Add(t DestinationType, path string) (int, error) {
	d, err := NewDestination(t, path)
	if err != nil {
		return 0, err
	}
	e.Destinations = append(e.Destinations, d)
	return len(e.Destinations) - 1, nil
}

// Remove deletes the destination at i.
func (e *Export) Remove(i int) error {
	if err := checkIndex("destination", i, len(e.Destinations)); err != nil {
		return err
	}
	e.Destinations = append(e.Destinations[:i:i], e.Destinations[i+1:]...)
	return nil
}
