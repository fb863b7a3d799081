package render

import (
	"bufio"
	"fmt"
	"io"
	"poi-distance-service/internal/domain"
	"poi-distance-service/internal/view"
)

// WriteText prints the scene as plain lines: markers in registry order,
// the user location, then one "Distance to ..." line per distance.
func WriteText(w io.Writer, sc view.Scene) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintf(bw, "Map center %s zoom %d (%s markers)\n", sc.Map.Center, sc.Map.Zoom, sc.Style)
	for _, m := range sc.Markers {
		fmt.Fprintf(bw, "Marker %s at %s\n", m.Label, m.Position)
	}

	switch {
	case sc.UserMarker != nil:
		fmt.Fprintf(bw, "%s: %s\n", sc.UserMarker.Label, sc.UserMarker.Position)
	case sc.State == domain.StateLocationUnavailable:
		fmt.Fprintf(bw, "Location unavailable (%s)\n", sc.Reason)
	default:
		fmt.Fprintln(bw, "Waiting for location...")
	}

	for _, l := range sc.Distances {
		fmt.Fprintln(bw, l.Text)
	}

	return bw.Flush()
}
