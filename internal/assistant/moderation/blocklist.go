// internal/assistant/moderation/blocklist.go
package moderation

// blockWords is the curated term list checked before any prompt reaches the
// model. Single words match on word boundaries; multi-word entries match as
// phrases after normalization.
var blockWords = []string{
	// Common profanity (basic)
	"fuck", "fck", "fuk", "fuc", "fucking", "fucker", "motherfucker",
	"mf", "mofo",
	"shit", "sh1t", "sh!t", "shitt", "bullshit", "shitty",
	"bitch", "b1tch", "b!tch", "bitches", "bitching",
	"ass", "arse", "asshole", "arsehole", "asshat", "asswipe",
	"bastard", "bastards",
	"cunt", "c*nt", "c0nt", "cunts",
	"dick", "d1ck", "d!ck", "dickhead", "dicks",
	"pussy", "pussies", "puss", "puzzy",
	"cock", "c0ck", "c*ck", "cocks", "cocksucker",

	// Slurs and hate speech
	"nigger", "nigga", "n1gg", "n1gga", "n*gg", "n*gga", "niggas", "niggers",
	"fag", "faggot", "f@ggot", "fagg", "fagot",
	"retard", "retarded", "r3tard", "r*tard",
	"chink", "spic", "kike", "gook", "wetback",
	"tranny", "shemale", "ladyboy",

	// Sexual references
	"whore", "sex", "hoe", "ho", "slut", "skank", "hooker", "prostitute",
	"rape", "rapist", "raping", "raped",
	"pedo", "pedophile", "childmolester",
	"incest", "incestuous", "molest", "molester",

	// Derogatory terms
	"idiot", "moron", "imbecile", "stupid", "dumb", "dumbass",
	"fatso", "lardass", "obese", "fatass",
	"ugly", "hideous", "freak", "loser", "failure", "worthless",
	"scum", "trash", "garbage", "vermin",

	// Threatening/violent language
	"kill", "killing", "murder", "murderer",
	"die", "dying", "death",
	"stab", "stabbing", "shoot", "shooting", "gun", "guns",
	"suicide", "suicidal", "hang", "hanging", "rope",
	"beat", "beating", "attack", "attacking",
	"bomb", "explode", "terrorist", "terrorism",

	// Common bypass variations (leet speak)
	"@ss", "@$$", "4ss", "a$$", "a55", "4r5e",
	"5hit", "5h1t", "5h!t",
	"d!ckhead",
	"p0rn", "pr0n", "xxx",
	"wank", "wanker", "w4nk",
	"jerk", "jerkoff",
	"tits", "titties", "boobs", "breasts", "boobies",

	// Common offensive phrases (partial)
	"suck my", "suck your", "suck his", "suck her",
	"lick my", "lick your", "eat my", "eat your",
	"blow me", "blow job",
	"go to hell", "burn in hell",
	"you suck", "you're dead", "i'll kill",

	// Regional/cultural variations
	"bloody", "bugger", "tosser", "knob", "bellend", "twat", "berk", "git",
	"puta", "cabron", "coño", "mierda", "chinga",
	"scheiße", "arschloch", "hurensohn",
	"merde", "putain", "connard", "salope",
	"kurwa", "chuj", "pizda",

	// Additional strong profanity
	"scumbag", "douche", "douchebag", "douchecanoe",
	"screw", "screwing", "screwed",
	"sonofabitch", "sob",
	"crap", "crappy", "craps",
	"damn", "goddamn", "damnit",
	"hell", "heck", "satan", "devil", "demon",

	// Numbers used as letters
	"d1ckhead", "f4ggot", "f4t", "l0ser", "m0ron", "h0e", "wh0re",
}
