package realm

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// OKLCH is a color in the OKLCH perceptually-uniform space: lightness in
// [0,1], chroma (roughly [0,0.4] for displayable colors) and hue in degrees
// [0,360). It implements image/color.Color via conversion to sRGB.
type OKLCH struct {
	L float64
	C float64
	H float64
}

// String renders the color in the oklch() form accepted by ParseColor.
func (c OKLCH) String() string {
	return fmt.Sprintf("oklch(%.1f%% %.3f %.1f)", c.L*100, c.C, c.H)
}

// RGBA implements color.Color.
func (c OKLCH) RGBA() (r, g, b, a uint32) {
	rf, gf, bf := c.SRGB()
	return uint32(rf*0xffff + 0.5), uint32(gf*0xffff + 0.5), uint32(bf*0xffff + 0.5), 0xffff
}

// SRGB converts to gamma-encoded sRGB components in [0,1], clamped into
// gamut.
func (c OKLCH) SRGB() (r, g, b float64) {
	hRad := c.H * math.Pi / 180
	a := c.C * math.Cos(hRad)
	bb := c.C * math.Sin(hRad)

	l_ := c.L + 0.3963377774*a + 0.2158037573*bb
	m_ := c.L - 0.1055613458*a - 0.0638541728*bb
	s_ := c.L - 0.0894841775*a - 1.2914855480*bb

	l := l_ * l_ * l_
	m := m_ * m_ * m_
	s := s_ * s_ * s_

	lr := +4.0767416621*l - 3.3077115913*m + 0.2309699292*s
	lg := -1.2684380046*l + 2.6097574011*m - 0.3413193965*s
	lb := -0.0041960863*l - 0.7034186147*m + 1.7076147010*s

	return gammaEncode(lr), gammaEncode(lg), gammaEncode(lb)
}

func gammaEncode(v float64) float64 {
	if v <= 0 {
		return 0
	}
	if v >= 1 {
		return 1
	}
	if v <= 0.0031308 {
		return 12.92 * v
	}
	return 1.055*math.Pow(v, 1/2.4) - 0.055
}

func gammaDecode(v float64) float64 {
	if v <= 0.04045 {
		return v / 12.92
	}
	return math.Pow((v+0.055)/1.055, 2.4)
}

// fromSRGB converts gamma-encoded sRGB components in [0,1] to OKLCH.
func fromSRGB(r, g, b float64) OKLCH {
	lr := gammaDecode(r)
	lg := gammaDecode(g)
	lb := gammaDecode(b)

	l := 0.4122214708*lr + 0.5363325363*lg + 0.0514459929*lb
	m := 0.2119034982*lr + 0.6806995451*lg + 0.1073969566*lb
	s := 0.0883024619*lr + 0.2817188376*lg + 0.6299787005*lb

	l_ := math.Cbrt(l)
	m_ := math.Cbrt(m)
	s_ := math.Cbrt(s)

	okL := 0.2104542553*l_ + 0.7936177850*m_ - 0.0040720468*s_
	okA := 1.9779984951*l_ - 2.4285922050*m_ + 0.4505937099*s_
	okB := 0.0259040371*l_ + 0.7827717662*m_ - 0.8086757660*s_

	c := math.Sqrt(okA*okA + okB*okB)
	h := math.Atan2(okB, okA) * 180 / math.Pi
	if h < 0 {
		h += 360
	}
	return OKLCH{L: okL, C: c, H: h}
}

// ParseColor parses an override color string. Accepted forms are
// "oklch(L% C H)" (lightness also accepted as a bare 0..1 number) and hex
// "#rrggbb" / "#rgb". Anything else is rejected so the caller can fall
// through to the derived color.
func ParseColor(s string) (OKLCH, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return OKLCH{}, false
	}
	if strings.HasPrefix(s, "#") {
		return parseHexColor(s)
	}
	lower := strings.ToLower(s)
	if strings.HasPrefix(lower, "oklch(") && strings.HasSuffix(lower, ")") {
		return parseOKLCH(lower[len("oklch(") : len(lower)-1])
	}
	return OKLCH{}, false
}

func parseOKLCH(body string) (OKLCH, bool) {
	fields := strings.Fields(strings.ReplaceAll(body, ",", " "))
	if len(fields) != 3 {
		return OKLCH{}, false
	}

	lField := fields[0]
	percent := strings.HasSuffix(lField, "%")
	lField = strings.TrimSuffix(lField, "%")
	l, err := strconv.ParseFloat(lField, 64)
	if err != nil {
		return OKLCH{}, false
	}
	if percent {
		l /= 100
	}

	c, err := strconv.ParseFloat(fields[1], 64)
	if err != nil {
		return OKLCH{}, false
	}

	hField := strings.TrimSuffix(fields[2], "deg")
	h, err := strconv.ParseFloat(hField, 64)
	if err != nil {
		return OKLCH{}, false
	}

	if l < 0 || l > 1 || c < 0 {
		return OKLCH{}, false
	}
	h = math.Mod(h, 360)
	if h < 0 {
		h += 360
	}
	return OKLCH{L: l, C: c, H: h}, true
}

func parseHexColor(s string) (OKLCH, bool) {
	hex := s[1:]
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) != 6 {
		return OKLCH{}, false
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return OKLCH{}, false
	}
	r := float64(v>>16&0xff) / 255
	g := float64(v>>8&0xff) / 255
	b := float64(v&0xff) / 255
	return fromSRGB(r, g, b), true
}

// HashString is a 31-multiplier polynomial rolling hash with 32-bit
// wraparound. It is the seed for every derived color, so it must stay
// stable across platforms: pure integer arithmetic, no locale dependence.
func HashString(s string) uint32 {
	var h uint32
	for i := 0; i < len(s); i++ {
		h = h*31 + uint32(s[i])
	}
	return h
}

// unitHash maps a salted region id to [0,1).
func unitHash(id, salt string) float64 {
	return float64(HashString(id+salt)) / (1 << 32)
}

// Perturbation ranges. Lightness and chroma move a little, hue moves a lot,
// so siblings within one parent group read as related but distinguishable.
const (
	perturbLightness = 0.12 // total span, centered on the base
	perturbChroma    = 0.06
	perturbHue       = 80.0
)

// PerturbColor derives a child shade from its parent's resolved color using
// deltas seeded by the child's id. The same id always produces the same
// offset.
func PerturbColor(base OKLCH, id string) OKLCH {
	l := base.L + (unitHash(id, "|l")-0.5)*perturbLightness
	c := base.C + (unitHash(id, "|c")-0.5)*perturbChroma
	h := math.Mod(base.H+(unitHash(id, "|h")-0.5)*perturbHue, 360)
	if h < 0 {
		h += 360
	}
	return OKLCH{
		L: clampFloat(l, 0.15, 0.95),
		C: clampFloat(c, 0.02, 0.30),
		H: h,
	}
}

// FallbackColor is the hash-of-id color used when a region has neither an
// explicit color nor a perturbable parent chain: the hash picks a hue in
// [0,360) at fixed lightness and chroma.
func FallbackColor(id string) OKLCH {
	return OKLCH{L: 0.62, C: 0.11, H: float64(HashString(id) % 360)}
}

func clampFloat(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// ResolveColor computes the display color for a region. Precedence: an
// explicit override color; else the parent's resolved color perturbed by
// this region's id; else the hash fallback. Recursion climbs at most to the
// empire, so depth is bounded by the hierarchy.
func ResolveColor(level Level, id string, overrides *RegionOverrides, w *WorldMap) OKLCH {
	if meta, ok := overrides.Lookup(level, id); ok {
		if c, valid := ParseColor(meta.Color); valid {
			return c
		}
	}
	parentLevel, parentID, ok := parentRegion(w, level, id)
	if ok {
		return PerturbColor(ResolveColor(parentLevel, parentID, overrides, w), id)
	}
	return FallbackColor(id)
}

// parentRegion returns the resolved parent of a region, or false for the
// empire and for ids unknown to the world map.
func parentRegion(w *WorldMap, level Level, id string) (Level, string, bool) {
	if w == nil {
		return 0, "", false
	}
	switch level {
	case LevelCounty:
		if c, ok := w.Counties[id]; ok && c.Duchy != "" {
			return LevelDuchy, c.Duchy, true
		}
	case LevelDuchy:
		if d, ok := w.Duchies[id]; ok && d.Kingdom != "" {
			return LevelKingdom, d.Kingdom, true
		}
	case LevelKingdom:
		if _, ok := w.Kingdoms[id]; ok {
			return LevelEmpire, EmpireID, true
		}
	}
	return 0, "", false
}
