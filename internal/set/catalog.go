package set

import "time"

// Builtin lists the constructors of the sets compiled into the binary.
// Default registers them in this order.
var Builtin = []Constructor{
	LimitedEditionAlpha,
	LimitedEditionBeta,
	UnlimitedEdition,
	ArabianNights,
	Unhinged,
	Magic2010,
	Zendikar,
	Commander2013,
	Dominaria,
	CoreSet2019,
	StarWars,
}

// LimitedEditionAlpha is the first printing of the core game
func LimitedEditionAlpha() Descriptor {
	return Descriptor{Code: "LEA", Name: "Limited Edition Alpha", Type: TypeCore, ReleaseDate: date(1993, time.August, 5)}
}

// LimitedEditionBeta is the corrected second printing
func LimitedEditionBeta() Descriptor {
	return Descriptor{Code: "LEB", Name: "Limited Edition Beta", Type: TypeCore, ReleaseDate: date(1993, time.October, 4)}
}

// UnlimitedEdition is the first white-bordered core set
func UnlimitedEdition() Descriptor {
	return Descriptor{Code: "2ED", Name: "Unlimited Edition", Type: TypeCore, ReleaseDate: date(1993, time.December, 1)}
}

// ArabianNights is the first expansion
func ArabianNights() Descriptor {
	return Descriptor{Code: "ARN", Name: "Arabian Nights", Type: TypeExpansion, ReleaseDate: date(1993, time.December, 17)}
}

// Unhinged is a joke set and not legal in any format
func Unhinged() Descriptor {
	return Descriptor{Code: "UNH", Name: "Unhinged", Type: TypeJokeSet, ReleaseDate: date(2004, time.November, 19)}
}

// Magic2010 is the first core set with new cards
func Magic2010() Descriptor {
	return Descriptor{Code: "M10", Name: "Magic 2010", Type: TypeCore, ReleaseDate: date(2009, time.July, 17)}
}

// Zendikar opens the Zendikar block
func Zendikar() Descriptor {
	return Descriptor{
		Code:        "ZEN",
		Name:        "Zendikar",
		Type:        TypeExpansion,
		ReleaseDate: date(2009, time.October, 2),
		BlockName:   "Zendikar",
	}
}

// Commander2013 is a set of preconstructed multiplayer decks
func Commander2013() Descriptor {
	return Descriptor{Code: "C13", Name: "Commander 2013 Edition", Type: TypeSupplemental, ReleaseDate: date(2013, time.November, 1)}
}

// Dominaria returns to the original plane
func Dominaria() Descriptor {
	return Descriptor{Code: "DOM", Name: "Dominaria", Type: TypeExpansion, ReleaseDate: date(2018, time.April, 27)}
}

// CoreSet2019 brought core sets back after a three year break
func CoreSet2019() Descriptor {
	return Descriptor{Code: "M19", Name: "Core Set 2019", Type: TypeCore, ReleaseDate: date(2018, time.July, 13)}
}

// StarWars is a fan-made set shipped with the catalog
func StarWars() Descriptor {
	return Descriptor{Code: "SWS", Name: "Star Wars", Type: TypeCustom, ReleaseDate: date(2017, time.January, 1)}
}
