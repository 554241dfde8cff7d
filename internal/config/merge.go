package config

import "fmt"

// Merge layers overlay on top of base:
//   - name, brightness: overlay wins when set
//   - device: must agree when both set; fatal error on mismatch
//   - entries: merged by selector text. An overlay entry replaces the base
//     entry with the same selector. Surviving base entries come first, then
//     every overlay entry, so overlay entries win ties of equal priority.
func Merge(base, overlay *Document) (*Document, error) {
	if base == nil {
		return overlay, nil
	}
	if overlay == nil {
		return base, nil
	}

	result := &Document{
		Name:       base.Name,
		Device:     base.Device,
		Brightness: base.Brightness,
		Path:       overlay.Path,
	}
	if overlay.Name != "" {
		result.Name = overlay.Name
	}
	if overlay.Brightness != nil {
		result.Brightness = overlay.Brightness
	}
	if err := mergeDevice(base, overlay, &result.Device); err != nil {
		return nil, err
	}

	result.Entries = mergeEntries(base.Entries, overlay.Entries)
	return result, nil
}

// MergeAll merges documents in order, lowest precedence first.
func MergeAll(docs []*Document) (*Document, error) {
	if len(docs) == 0 {
		return nil, fmt.Errorf("no profiles to merge")
	}

	result := docs[0]
	for i := 1; i < len(docs); i++ {
		var err error
		result, err = Merge(result, docs[i])
		if err != nil {
			return nil, err
		}
	}
	return result, nil
}

func mergeDevice(base, overlay *Document, out *string) error {
	switch {
	case base.Device == "":
		*out = overlay.Device
	case overlay.Device == "" || overlay.Device == base.Device:
		*out = base.Device
	default:
		return &Error{
			Kind:    KindInvalid,
			Path:    overlay.Path,
			Field:   "device",
			Value:   overlay.Device,
			Message: fmt.Sprintf("device mismatch: one profile targets '%s', another targets '%s'; layered profiles must agree on device", base.Device, overlay.Device),
		}
	}
	return nil
}

func mergeEntries(base, overlay []Entry) []Entry {
	if len(base) == 0 {
		return overlay
	}
	if len(overlay) == 0 {
		return base
	}

	replaced := make(map[string]bool, len(overlay))
	for _, e := range overlay {
		replaced[e.Raw] = true
	}

	var result []Entry
	for _, e := range base {
		if !replaced[e.Raw] {
			result = append(result, e)
		}
	}
	return append(result, overlay...)
}
