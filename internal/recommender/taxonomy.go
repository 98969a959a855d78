package recommender

import "fmt"

// Topics enumerates the fixed topic taxonomy in wire order. The
// preference vector sent to the scorer and the boolean column stored per
// user both follow this order, so it must never be reordered; append
// only, and retrain the scorer if it ever grows.
var Topics = [...]string{
	"fantasyMyth",
	"sciFiFuturism",
	"ancientHistory",
	"americanHistory",
	"modernWars",
	"crimeMystery",
	"horrorSupernatural",
	"adventureExploration",
	"natureEnvironment",
	"transportationVehicles",
	"entertainmentPopCulture",
	"literatureBooks",
	"economicsIndustry",
	"urbanLifeProfessions",
	"historicalFictionAltHistory",
	"loveRelationships",
	"humorLighthearted",
	"gamesPuzzles",
	"artsCulture",
	"charactersCombat",
}

// NumTopics is the length of every preference vector.
const NumTopics = len(Topics)

var topicIndex = buildTopicIndex()

func buildTopicIndex() map[string]int {
	idx := make(map[string]int, NumTopics)
	for i, name := range Topics {
		idx[name] = i
	}
	return idx
}

// VectorFromMap orders the named topic map submitted by the preference
// page into the fixed taxonomy vector. Unknown topic names are rejected;
// omitted ones default to false.
func VectorFromMap(prefs map[string]bool) ([]bool, error) {
	vector := make([]bool, NumTopics)
	for name, selected := range prefs {
		i, ok := topicIndex[name]
		if !ok {
			return nil, fmt.Errorf("unknown topic %q", name)
		}
		vector[i] = selected
	}
	return vector, nil
}
