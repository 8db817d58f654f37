package filter

// blockedTerms is the vocabulary rejected on certificates. It is a basic
// list kept deliberately short; a deployment wanting broader coverage can
// extend it without touching the checking logic. Ordered so substring scans
// are deterministic.
var blockedTerms = []string{
	"anal", "arse", "ass", "asshole",
	"bastard", "bitch", "bloody", "bollocks", "boob", "boobs", "breast",
	"bugger", "bullshit",
	"cocaine", "cock", "crack", "crap", "cum",
	"damn", "dick", "dickhead", "dildo",
	"fag", "faggot", "fuck", "fucker", "fucking",
	"goddam", "goddamn",
	"hell", "heroin", "hitler", "homo",
	"jerk",
	"kill", "kkk",
	"meth", "moron", "murder",
	"nazi", "nigga", "nigger",
	"penis", "piss", "porn", "prick", "pussy",
	"racist", "rape", "retard",
	"sex", "sexy", "shit", "shitty", "slut",
	"terrorist", "twat",
	"vagina",
	"wanker", "whore",
	"xxx",
}

// blockedTermSet backs the per-word exact check.
var blockedTermSet = func() map[string]struct{} {
	set := make(map[string]struct{}, len(blockedTerms))
	for _, term := range blockedTerms {
		set[term] = struct{}{}
	}
	return set
}()

// leetSubstitutions maps characters commonly used to disguise letters back to
// the letter they stand in for. Applied once per character during
// normalization, never re-scanned.
var leetSubstitutions = map[rune]rune{
	'0': 'o',
	'1': 'i',
	'3': 'e',
	'4': 'a',
	'5': 's',
	'7': 't',
	'8': 'b',
	'@': 'a',
	'$': 's',
	'!': 'i',
	'+': 't',
}
