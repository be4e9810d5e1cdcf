package textutil

// Stopwords is a fixed bilingual (Indonesian + English) stopword set used
// by the keyword extractor and the query processor.
var Stopwords = map[string]bool{}

func init() {
	for _, w := range stopwordList {
		Stopwords[w] = true
	}
}

var stopwordList = []string{
	// Indonesian
	"ada", "adalah", "agar", "akan", "antara", "apa", "atau", "bagaimana",
	"bagi", "bahwa", "banyak", "belum", "bisa", "bukan", "dalam", "dan",
	"dapat", "dari", "dengan", "dia", "harus", "hanya", "ini", "itu",
	"jika", "juga", "kami", "kamu", "karena", "kepada", "ketika", "kita",
	"lain", "lebih", "masih", "mereka", "milik", "oleh", "pada", "para",
	"saat", "saja", "sangat", "saya", "sebagai", "sebuah", "secara",
	"sedang", "semua", "seperti", "serta", "setelah", "siapa", "suatu",
	"sudah", "telah", "tentang", "terhadap", "tersebut", "tidak", "untuk",
	"yaitu", "yang",
	// English
	"about", "after", "all", "also", "and", "any", "are", "back", "because",
	"been", "but", "can", "come", "could", "day", "even", "first", "for",
	"from", "get", "give", "good", "have", "her", "him", "his", "how",
	"into", "its", "just", "know", "like", "look", "make", "most", "new",
	"not", "now", "one", "only", "other", "our", "out", "over", "people",
	"say", "see", "she", "some", "take", "than", "that", "the", "their",
	"them", "then", "there", "these", "they", "think", "this", "time",
	"two", "use", "want", "was", "way", "well", "were", "what", "when",
	"which", "who", "will", "with", "work", "would", "year", "your",
}
