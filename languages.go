package gosign

import "strings"

// SignLanguageNames maps sign-language codes to human-readable names.
// Codes follow the ISO 639-3 identifiers used by the API.
var SignLanguageNames = map[string]string{
	// Tier 1 (full avatar support)
	"ase": "American Sign Language",
	"bfi": "British Sign Language",
	"gsg": "German Sign Language (DGS)",
	"fsl": "French Sign Language (LSF)",
	"ssp": "Spanish Sign Language (LSE)",
	"jsl": "Japanese Sign Language",

	// Tier 2 (avatar support, reduced recognition quality)
	"asf": "Australian Sign Language (Auslan)",
	"bzs": "Brazilian Sign Language (Libras)",
	"csl": "Chinese Sign Language",
	"dse": "Dutch Sign Language (NGT)",
	"ils": "Israeli Sign Language",
	"ise": "Italian Sign Language (LIS)",
	"kvk": "Korean Sign Language",
	"pso": "Polish Sign Language (PJM)",
	"rsl": "Russian Sign Language",
	"swl": "Swedish Sign Language",

	// Tier 3 (text-to-sign only)
	"csq": "Croatian Sign Language",
	"fse": "Finnish Sign Language",
	"gss": "Greek Sign Language",
	"icl": "Icelandic Sign Language",
	"ins": "Indian Sign Language",
	"nsl": "Norwegian Sign Language",
	"psc": "Persian Sign Language",
	"psr": "Portuguese Sign Language",
	"tsm": "Turkish Sign Language",
	"ukl": "Ukrainian Sign Language",
}

// SpokenToSign maps spoken-language codes to the default sign language
// of the same region.
var SpokenToSign = map[string]string{
	"en": "ase",
	"de": "gsg",
	"fr": "fsl",
	"es": "ssp",
	"ja": "jsl",
	"pt": "bzs",
	"zh": "csl",
	"nl": "dse",
	"he": "ils",
	"it": "ise",
	"ko": "kvk",
	"pl": "pso",
	"ru": "rsl",
	"sv": "swl",
	"tr": "tsm",
	"uk": "ukl",
}

// GetSignLanguageName returns the human-readable name for a sign-language
// code. Falls back to the code itself if not found.
func GetSignLanguageName(code string) string {
	if name, ok := SignLanguageNames[NormalizeLanguage(code)]; ok {
		return name
	}
	return code
}

// IsSupported returns true if the sign-language code is known to the client.
func IsSupported(code string) bool {
	_, ok := SignLanguageNames[NormalizeLanguage(code)]
	return ok
}

// NormalizeLanguage lowercases a language code and resolves spoken-language
// codes to their regional default sign language (e.g., "en" → "ase").
func NormalizeLanguage(code string) string {
	normalized := strings.ToLower(strings.TrimSpace(code))
	if sign, ok := SpokenToSign[normalized]; ok {
		return sign
	}
	return normalized
}
