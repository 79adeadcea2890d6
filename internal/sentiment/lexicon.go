package sentiment

// Emotion is one of the five basic emotion categories.
type Emotion string

const (
	Joy      Emotion = "joy"
	Sadness  Emotion = "sadness"
	Anger    Emotion = "anger"
	Surprise Emotion = "surprise"
	Fear     Emotion = "fear"
)

// AllEmotions lists the emotion categories in tie-break order.
var AllEmotions = []Emotion{Joy, Sadness, Anger, Surprise, Fear}

type wordSet map[string]struct{}

func newWordSet(words ...string) wordSet {
	s := make(wordSet, len(words))
	for _, w := range words {
		s[w] = struct{}{}
	}
	return s
}

func (s wordSet) has(word string) bool {
	_, ok := s[word]
	return ok
}

var positiveWords = newWordSet(
	"good", "great", "excellent", "amazing", "fantastic", "wonderful", "best",
	"love", "happy", "joy", "excited", "awesome", "beautiful", "enjoy", "nice",
	"perfect", "pleasant", "delighted", "glad", "pleased", "success", "positive",
	"win", "excellent", "superb", "outstanding", "brilliant", "favorite",
)

var negativeWords = newWordSet(
	"bad", "terrible", "horrible", "awful", "worst", "hate", "sad", "angry",
	"upset", "disappointed", "frustrating", "poor", "negative", "annoying",
	"fail", "sucks", "problem", "issue", "trouble", "difficult", "wrong", "hard",
	"unhappy", "unfortunate", "scary", "terrible", "miserable", "depressing",
)

var emotionWords = map[Emotion]wordSet{
	Joy:      newWordSet("happy", "joyful", "excited", "delighted", "thrilled", "pleased"),
	Sadness:  newWordSet("sad", "unhappy", "depressed", "gloomy", "miserable", "disappointed"),
	Anger:    newWordSet("angry", "furious", "outraged", "annoyed", "irritated", "frustrated"),
	Surprise: newWordSet("surprised", "amazed", "astonished", "shocked", "stunned", "wow"),
	Fear:     newWordSet("afraid", "scared", "terrified", "nervous", "anxious", "worried"),
}

// The multi-word decrease modifiers never match a single token; they are kept
// so the lists stay in step with the published lexicon.
var (
	increaseModifiers = newWordSet("very", "extremely", "incredibly", "absolutely", "really", "so")
	decreaseModifiers = newWordSet("somewhat", "slightly", "a bit", "kind of", "sort of", "a little")
)
