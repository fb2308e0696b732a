package catalog

import (
	"reflect"
	"testing"
)

func geoVoice(country string, lat, lon float64, mode, lang string) *Voice {
	return &Voice{
		Mode:            mode,
		CountryCode:     country,
		CountryName:     country + " name",
		Latitude:        &lat,
		Longitude:       &lon,
		LanguageDisplay: lang,
	}
}

func TestAggregateGeo(t *testing.T) {
	voices := []*Voice{
		geoVoice("DE", 50, 10, "online", "German"),
		geoVoice("DE", 52, 12, "offline", "German"),
		geoVoice("FR", 48, 2, "online", "French"),
		geoVoice("DE", 48, 8, "online", "Sorbian"),
		{CountryCode: "US", Mode: "online"}, // no coordinates, must not cluster
	}

	clusters := AggregateGeo(voices)
	if len(clusters) != 2 {
		t.Fatalf("got %d clusters, want 2", len(clusters))
	}

	de := clusters[0]
	if de.CountryCode != "DE" {
		t.Fatalf("largest cluster = %q, want DE", de.CountryCode)
	}
	if de.Count != 3 || de.OnlineCount != 2 || de.OfflineCount != 1 {
		t.Errorf("DE counts = %d/%d/%d, want 3/2/1", de.Count, de.OnlineCount, de.OfflineCount)
	}
	if de.Latitude != 50 || de.Longitude != 10 {
		t.Errorf("DE centroid = (%v, %v), want (50, 10)", de.Latitude, de.Longitude)
	}
	if !reflect.DeepEqual(de.TopLanguages, []string{"German", "Sorbian"}) {
		t.Errorf("DE languages = %v", de.TopLanguages)
	}

	// Sum of cluster counts equals the number of geo-taggable voices.
	total := 0
	for _, cl := range clusters {
		if cl.Count == 0 {
			t.Error("zero-point cluster emitted")
		}
		total += cl.Count
	}
	if total != 4 {
		t.Errorf("cluster count sum = %d, want 4", total)
	}
}

func TestAggregateGeoTieKeepsDiscoveryOrder(t *testing.T) {
	voices := []*Voice{
		geoVoice("FR", 48, 2, "online", "French"),
		geoVoice("DE", 50, 10, "online", "German"),
	}
	clusters := AggregateGeo(voices)
	if len(clusters) != 2 || clusters[0].CountryCode != "FR" || clusters[1].CountryCode != "DE" {
		t.Errorf("tied clusters out of discovery order: %+v", clusters)
	}
}

func TestAggregateGeoTopLanguagesCapped(t *testing.T) {
	langs := []string{"a", "b", "c", "d", "e", "f", "g"}
	var voices []*Voice
	for i, l := range langs {
		// Later languages occur more often so the cap has to drop "a" and "b".
		for n := 0; n <= i; n++ {
			voices = append(voices, geoVoice("SE", 59, 18, "offline", l))
		}
	}
	clusters := AggregateGeo(voices)
	if len(clusters) != 1 {
		t.Fatalf("got %d clusters, want 1", len(clusters))
	}
	want := []string{"g", "f", "e", "d", "c"}
	if !reflect.DeepEqual(clusters[0].TopLanguages, want) {
		t.Errorf("top languages = %v, want %v", clusters[0].TopLanguages, want)
	}
}

func TestAggregateGeoEmpty(t *testing.T) {
	if got := AggregateGeo(nil); len(got) != 0 {
		t.Errorf("AggregateGeo(nil) = %v, want empty", got)
	}
	lat := 1.0
	noLon := []*Voice{{CountryCode: "US", Latitude: &lat}}
	if got := AggregateGeo(noLon); len(got) != 0 {
		t.Errorf("voice missing longitude must not cluster, got %v", got)
	}
}
