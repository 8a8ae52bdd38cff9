package extract

import "github.com/hjpark/nukewire/render"

// Byline maps the ordered byline bundle (category / reporter / date
// sub-elements) onto its three fields. The sites drop leading members when a
// listing omits them, so assignment depends on how many members were found:
// three or more fill all fields from the front, two mean reporter and date,
// one means date only.
func Byline(members []string) (category, reporter, date *string) {
	switch {
	case len(members) >= 3:
		return &members[0], &members[1], &members[2]
	case len(members) == 2:
		return nil, &members[0], &members[1]
	case len(members) == 1:
		return nil, nil, &members[0]
	default:
		return nil, nil, nil
	}
}

// bylineOf extracts the byline bundle from an item using the given container
// candidates, then maps it. Missing containers yield an all-nil byline; a
// field extraction never aborts record construction.
func bylineOf(item render.Item, candidates ...string) (category, reporter, date *string) {
	container := item.Find(candidates...)
	if container == nil {
		return nil, nil, nil
	}

	var members []string
	for _, em := range container.All("em") {
		if text := em.Text(); text != nil {
			members = append(members, *text)
		}
	}
	return Byline(members)
}
