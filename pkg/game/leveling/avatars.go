package leveling

// Avatar is a selectable character portrait
type Avatar struct {
	Emoji string
	Title string
}

// Avatars lists the portraits offered by character selection
var Avatars = []Avatar{
	{"🧙", "Wizard"},
	{"🧝", "Elf Ranger"},
	{"🥷", "Ninja"},
	{"🧛", "Night Trader"},
	{"🦸", "Hero"},
	{"🧜", "Tide Caller"},
	{"🤖", "Bot"},
	{"🦄", "Unicorn"},
}

// AvatarByIndex returns the avatar at i, wrapping around the list
func AvatarByIndex(i int) Avatar {
	n := len(Avatars)
	return Avatars[((i%n)+n)%n]
}
