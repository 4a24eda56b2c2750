package core

// Color is a 24-bit color written as "#rrggbb".
// The platform layer turns it into a terminal style.
type Color string

// ColorDefault leaves the terminal's own color in place.
const ColorDefault Color = ""

// Palette colors for the court and its entities.
const (
	ColorForeground  Color = "#f2d2b6"
	ColorShadow      Color = "#f2ad94"
	ColorBlock       Color = "#387f3a"
	ColorBlockShadow Color = "#0d6410"
)

// TrailColors are blended from oldest to newest along the ball trail.
var TrailColors = []Color{"#f2ad94", "#f28972", "#bacac0"}

// LevelBackgrounds is indexed by the level index (score / points per level, mod 10).
var LevelBackgrounds = [10]Color{
	"#193b59",
	"#038a8a",
	"#5040ff",
	"#cf8072",
	"#be9640",
	"#852982",
	"#075f1a",
	"#a8afaa",
	"#b9aee6",
	"#000000",
}

// LevelBackground returns the background color for a level index.
// Out-of-range indices wrap.
func LevelBackground(index int) Color {
	n := len(LevelBackgrounds)
	return LevelBackgrounds[((index%n)+n)%n]
}
