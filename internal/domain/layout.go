package domain

import "fmt"

type CallLayout string

const (
	LayoutGrid         CallLayout = "grid"
	LayoutSpeakerLeft  CallLayout = "speaker-left"
	LayoutSpeakerRight CallLayout = "speaker-right"
)

var layoutOrder = []CallLayout{LayoutGrid, LayoutSpeakerLeft, LayoutSpeakerRight}

func DefaultLayout() CallLayout {
	return LayoutSpeakerLeft
}

func ParseCallLayout(raw string) (CallLayout, error) {
	for _, layout := range layoutOrder {
		if string(layout) == raw {
			return layout, nil
		}
	}

	return "", fmt.Errorf("unsupported call layout %q", raw)
}

func (l CallLayout) Next() CallLayout {
	for i, layout := range layoutOrder {
		if layout == l {
			return layoutOrder[(i+1)%len(layoutOrder)]
		}
	}

	return DefaultLayout()
}

// Label names the layout the way the layout menu shows it.
func (l CallLayout) Label() string {
	switch l {
	case LayoutGrid:
		return "Grid"
	case LayoutSpeakerLeft:
		return "Speaker-Left"
	case LayoutSpeakerRight:
		return "Speaker-Right"
	default:
		return string(l)
	}
}
