// Package airq predicts an air-quality category from eight environmental
// measurements and renders it with a color, an emoji and advice.
//
// Quick start:
//
//	p, err := airq.New(airq.WithArtifactDir("models/"))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer p.Close()
//
//	res, _ := p.Predict(map[string]float64{"CO": 3.5, "PM10": 200, "NO2": 60})
//	fmt.Println(res.Category, res.Emoji) // Hazardous ☠️
//
// Features left out of the map take their default value. A Predictor is
// safe for concurrent use; create once and reuse it.
package airq
