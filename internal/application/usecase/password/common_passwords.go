package password

// commonPasswords is a static set of frequently used passwords checked
// offline, independently of the breach oracle, so the penalty applies even
// when the network path is unavailable.
var commonPasswords = map[string]struct{}{
	"password":    {},
	"password1":   {},
	"password123": {},
	"123456":      {},
	"12345678":    {},
	"123456789":   {},
	"1234567890":  {},
	"qwerty":      {},
	"qwerty123":   {},
	"abc123":      {},
	"letmein":     {},
	"welcome":     {},
	"welcome1":    {},
	"admin":       {},
	"iloveyou":    {},
	"monkey":      {},
	"dragon":      {},
	"sunshine":    {},
	"princess":    {},
	"football":    {},
	"baseball":    {},
	"master":      {},
	"superman":    {},
	"trustno1":    {},
	"login":       {},
	"passw0rd":    {},
	"starwars":    {},
	"whatever":    {},
	"freedom":     {},
	"shadow":      {},
}

// IsCommonPassword reports whether the lower-cased secret is in the static
// common-password set.
func IsCommonPassword(lowered string) bool {
	_, ok := commonPasswords[lowered]
	return ok
}
