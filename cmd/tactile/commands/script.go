package commands

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/agiangrant/tactile/input"
)

// Step is one entry of a replay script. A step with Text expands into one
// character event per rune; any other step is a single raw event. Repeat
// plays the step that many times.
type Step struct {
	input.Event `yaml:",inline"`
	Text        string `yaml:"text,omitempty"`
	Repeat      int    `yaml:"repeat,omitempty"`
}

func (s Step) events() ([]input.Event, error) {
	var one []input.Event
	switch {
	case s.Text != "":
		for _, r := range s.Text {
			one = append(one, input.Character(r))
		}
	case s.Kind == 0:
		return nil, fmt.Errorf("step needs a kind or text")
	default:
		one = []input.Event{s.Event}
	}

	n := max(s.Repeat, 1)
	out := make([]input.Event, 0, n*len(one))
	for range n {
		out = append(out, one...)
	}
	return out, nil
}

// ParseScript decodes a YAML list of steps into raw events.
func ParseScript(data []byte) ([]input.Event, error) {
	var steps []Step
	if err := yaml.Unmarshal(data, &steps); err != nil {
		return nil, fmt.Errorf("failed to parse script: %w", err)
	}
	var events []input.Event
	for i, s := range steps {
		evs, err := s.events()
		if err != nil {
			return nil, fmt.Errorf("step %d: %w", i+1, err)
		}
		events = append(events, evs...)
	}
	return events, nil
}

// LoadScript reads and parses the script at path.
func LoadScript(path string) ([]input.Event, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read script: %w", err)
	}
	return ParseScript(data)
}

const defaultScript = `# Replay script for 'tactile replay'. Coordinates are in pixels.
- kind: mouse-move
  x: 120
  y: 50
- kind: lbutton-down
  x: 120
  y: 50
- kind: lbutton-up
  x: 120
  y: 50
- text: gopher
- kind: key-down
  key: backspace
- kind: key-up
  key: backspace
- kind: mouse-move
  x: 50
  y: 90
- kind: lbutton-down
  x: 50
  y: 90
- kind: lbutton-up
  x: 50
  y: 90
`
