package route

import "testing"

func TestBuildPrompt(t *testing.T) {
	req := Request{
		Points: []Point{
			{Latitude: 41.0082, Longitude: 28.9784, Altitude: 0},
			{Latitude: 39.9334, Longitude: 32.8597, Altitude: 10000},
		},
		Constraints: map[string]any{"maxAltitude": 35000, "avoidWeather": true},
	}
	want := "Please optimize this flight route considering these points:\n" +
		"- Lat: 41.0082, Long: 28.9784, Alt: 0\n" +
		"- Lat: 39.9334, Long: 32.8597, Alt: 10000\n" +
		"\n" +
		"Constraints:\n" +
		"- avoidWeather: true\n" +
		"- maxAltitude: 35000\n" +
		"\n" +
		"Please return the optimized route as a JSON array of points with latitude, longitude, and altitude.\n"
	if got := BuildPrompt(req); got != want {
		t.Fatalf("prompt mismatch\n got: %q\nwant: %q", got, want)
	}
}

func TestBuildPromptEmptyRequest(t *testing.T) {
	want := "Please optimize this flight route considering these points:\n" +
		"\n" +
		"Please return the optimized route as a JSON array of points with latitude, longitude, and altitude.\n"
	if got := BuildPrompt(Request{}); got != want {
		t.Fatalf("prompt mismatch\n got: %q\nwant: %q", got, want)
	}
}
