package route

import (
	"aiintegration/internal/prompt"
)

// BuildPrompt renders the optimization request. It never fails; an empty
// request still yields the instruction lines.
func BuildPrompt(req Request) string {
	var b prompt.Builder
	b.Line("Please optimize this flight route considering these points:")
	for _, p := range req.Points {
		b.Linef("- Lat: %s, Long: %s, Alt: %s", prompt.Float(p.Latitude), prompt.Float(p.Longitude), prompt.Float(p.Altitude))
	}
	b.Section("Constraints:", "- ", req.Constraints)
	b.Line("")
	b.Line("Please return the optimized route as a JSON array of points with latitude, longitude, and altitude.")
	return b.String()
}
