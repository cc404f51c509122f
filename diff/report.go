package diff

// Report assembles the full failure body for one example: the rendered
// difference section followed by the Captured tag summary. Either part
// may be empty.
func Report(expected, actual string, caps []Capture, o Options) (string, error) {
	body, err := Render(expected, actual, o)
	if err != nil {
		return "", err
	}
	return body + Captured(caps, o), nil
}
