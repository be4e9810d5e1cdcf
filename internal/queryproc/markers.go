package queryproc

import "github.com/pustaka-ai/pustaka/internal/model"

// Marker tables for pattern-based entity extraction. All matching happens
// on the cleaned (lower-cased) query, so every entry here is lower case.
// Longer markers come first so they win over their own prefixes.

var creatorMarkers = []string{
	"ditulis oleh", "dikarang oleh", "written by", "authored by",
	"penulisnya", "penulis", "pengarang", "karya", "oleh", "author", "by",
}

var publisherMarkers = []string{
	"diterbitkan oleh", "dipublikasikan oleh", "published by",
	"penerbit", "publisher",
}

var sourceMarkers = []string{
	"di jurnal", "dalam jurnal", "di konferensi", "di prosiding",
	"di majalah", "in journal", "in conference", "in proceedings",
	"jurnal", "konferensi", "prosiding", "majalah",
	"journal", "conference", "proceedings", "magazine",
}

var languageMarkers = []string{
	"dalam bahasa", "berbahasa", "in language", "bahasa",
}

// languageNames maps a language name as written in a query to its code.
var languageNames = map[string]string{
	"indonesia":  "id",
	"indonesian": "id",
	"inggris":    "en",
	"english":    "en",
	"jawa":       "jv",
	"javanese":   "jv",
	"melayu":     "ms",
	"malay":      "ms",
	"arab":       "ar",
	"arabic":     "ar",
	"jepang":     "ja",
	"japanese":   "ja",
	"mandarin":   "zh",
	"chinese":    "zh",
}

// placeNames is a fixed gazetteer evaluated after the preposition "di".
var placeNames = map[string]bool{
	"aceh": true, "bali": true, "balikpapan": true, "bandung": true,
	"banjarmasin": true, "banten": true, "batam": true, "bekasi": true,
	"blitar": true, "bogor": true, "cirebon": true, "denpasar": true,
	"depok": true, "indonesia": true, "jakarta": true, "jambi": true,
	"jayapura": true, "kalimantan": true, "kediri": true, "lampung": true,
	"lombok": true, "madura": true, "makassar": true, "malang": true,
	"manado": true, "mataram": true, "medan": true, "padang": true,
	"palembang": true, "papua": true, "pekanbaru": true, "pontianak": true,
	"semarang": true, "sulawesi": true, "sumatera": true, "surabaya": true,
	"surakarta": true, "tangerang": true, "yogyakarta": true,
}

// docTypePatterns map keywords to the document type enum; evaluated in
// order, first match wins.
var docTypePatterns = []struct {
	keyword string
	docType model.DocumentType
}{
	{"skripsi", model.DocumentTypeThesis},
	{"tesis", model.DocumentTypeThesis},
	{"disertasi", model.DocumentTypeThesis},
	{"thesis", model.DocumentTypeThesis},
	{"dissertation", model.DocumentTypeThesis},
	{"prosiding", model.DocumentTypeConference},
	{"proceedings", model.DocumentTypeConference},
	{"konferensi", model.DocumentTypeConference},
	{"conference", model.DocumentTypeConference},
	{"seminar", model.DocumentTypeConference},
	{"buku", model.DocumentTypeBook},
	{"book", model.DocumentTypeBook},
	{"laporan", model.DocumentTypeReport},
	{"report", model.DocumentTypeReport},
	{"jurnal", model.DocumentTypeJournal},
	{"journal", model.DocumentTypeJournal},
}

// valueStopwords end a multi-word entity value capture. Generic nouns like
// "artikel" are included so "siapa penulis artikel ..." never captures
// "artikel" as an author name.
var valueStopwords = map[string]bool{
	"tahun": true, "tentang": true, "pada": true, "dalam": true,
	"yang": true, "dari": true, "untuk": true, "dengan": true,
	"mengenai": true, "adalah": true, "apakah": true, "berjudul": true,
	"about": true, "from": true, "for": true, "with": true, "that": true,
	"the": true, "titled": true, "published": true, "in": true, "on": true,
	"di": true, "ke": true,
	"artikel": true, "article": true, "paper": true, "makalah": true,
	"dokumen": true, "document": true, "buku": true, "book": true,
	"jurnal": true, "journal": true, "penelitian": true, "studi": true,
	"study": true, "skripsi": true, "tesis": true, "laporan": true,
	"siapa": true, "apa": true, "ini": true, "itu": true,
}
